// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package s3fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go/transport/http"

	"github.com/navwar/gomirror/pkg/fs"
)

// S3FileSystem implements fs.FileSystem for a single bucket and key prefix.
// Names are rooted at the prefix and use forward slashes, so a source
// configured as s3://bucket/raw sees "/index.html" as key "raw/index.html".
type S3FileSystem struct {
	client   *s3.Client
	bucket   string
	prefix   string
	maxPages int
}

func (s3fs *S3FileSystem) key(name string) string {
	k := path.Join(s3fs.prefix, strings.TrimPrefix(name, "/"))
	if k == "." {
		return ""
	}
	return k
}

// Chtimes is not supported, as the last modified timestamp of an object
// cannot be set.
func (s3fs *S3FileSystem) Chtimes(ctx context.Context, name string, atime time.Time, mtime time.Time) error {
	return nil
}

func (s3fs *S3FileSystem) Dir(name string) string {
	return path.Dir(name)
}

func (s3fs *S3FileSystem) IsNotExist(err error) bool {
	var responseError *http.ResponseError
	if errors.As(err, &responseError) {
		if responseError.HTTPStatusCode() == 404 {
			return true
		}
	}
	return errors.Is(err, os.ErrNotExist)
}

func (s3fs *S3FileSystem) Join(name ...string) string {
	return path.Join(name...)
}

// MkdirAll is a no-op, as directories exist implicitly through keys.
func (s3fs *S3FileSystem) MkdirAll(ctx context.Context, name string, mode os.FileMode) error {
	return nil
}

func (s3fs *S3FileSystem) Open(ctx context.Context, name string) (fs.File, error) {
	getObjectOutput, err := s3fs.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s3fs.bucket),
		Key:    aws.String(s3fs.key(name)),
	})
	if err != nil {
		return nil, err
	}
	return NewS3ReadFile(name, getObjectOutput.Body), nil
}

func (s3fs *S3FileSystem) OpenFile(ctx context.Context, name string, flag int, perm os.FileMode) (fs.File, error) {
	if flag&os.O_CREATE == 0 {
		return s3fs.Open(ctx, name)
	}
	return NewS3WriteFile(ctx, name, s3fs.client, s3fs.bucket, s3fs.key(name)), nil
}

func (s3fs *S3FileSystem) ReadDir(ctx context.Context, name string) ([]fs.DirectoryEntry, error) {
	prefix := ""
	if k := s3fs.key(name); len(k) > 0 {
		prefix = k + "/"
	}
	directoryEntries := []fs.DirectoryEntry{}
	var continuationToken *string
	for i := 0; s3fs.maxPages == -1 || i < s3fs.maxPages; i++ {
		listObjectsOutput, err := s3fs.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s3fs.bucket),
			Prefix:            aws.String(prefix),
			Delimiter:         aws.String("/"),
			ContinuationToken: continuationToken,
		})
		if err != nil {
			return nil, fmt.Errorf("error listing objects with prefix %q: %w", prefix, err)
		}
		for _, commonPrefix := range listObjectsOutput.CommonPrefixes {
			directoryEntries = append(directoryEntries, &S3DirectoryEntry{
				name:    path.Base(strings.TrimSuffix(aws.ToString(commonPrefix.Prefix), "/")),
				dir:     true,
				modTime: time.Time{},
				size:    0,
			})
		}
		for _, object := range listObjectsOutput.Contents {
			key := aws.ToString(object.Key)
			if key == prefix {
				// zero-byte folder marker
				continue
			}
			directoryEntries = append(directoryEntries, &S3DirectoryEntry{
				name:    path.Base(key),
				dir:     false,
				modTime: aws.ToTime(object.LastModified),
				size:    aws.ToInt64(object.Size),
			})
		}
		if !aws.ToBool(listObjectsOutput.IsTruncated) {
			break
		}
		continuationToken = listObjectsOutput.NextContinuationToken
	}
	return directoryEntries, nil
}

func (s3fs *S3FileSystem) Remove(ctx context.Context, name string) error {
	_, err := s3fs.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s3fs.bucket),
		Key:    aws.String(s3fs.key(name)),
	})
	if err != nil {
		return fmt.Errorf("error deleting object %q: %w", s3fs.key(name), err)
	}
	return nil
}

// RemoveDir is a no-op, as prefixes disappear with their last object.
func (s3fs *S3FileSystem) RemoveDir(ctx context.Context, name string) error {
	return nil
}

func (s3fs *S3FileSystem) Root() string {
	if len(s3fs.prefix) > 0 {
		return "s3://" + s3fs.bucket + "/" + s3fs.prefix
	}
	return "s3://" + s3fs.bucket
}

func (s3fs *S3FileSystem) Size(ctx context.Context, name string) (int64, error) {
	fi, err := s3fs.Stat(ctx, name)
	if err != nil {
		return int64(0), err
	}
	return fi.Size(), nil
}

func (s3fs *S3FileSystem) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	if name == "/" || name == "" {
		_, err := s3fs.client.HeadBucket(ctx, &s3.HeadBucketInput{
			Bucket: aws.String(s3fs.bucket),
		})
		if err != nil {
			return nil, err
		}
		return NewS3FileInfo(name, time.Time{}, true, int64(0)), nil
	}
	headObjectOutput, headObjectError := s3fs.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s3fs.bucket),
		Key:    aws.String(s3fs.key(name)),
	})
	if headObjectError == nil {
		return NewS3FileInfo(
			name,
			aws.ToTime(headObjectOutput.LastModified),
			false,
			aws.ToInt64(headObjectOutput.ContentLength),
		), nil
	}
	if !s3fs.IsNotExist(headObjectError) {
		return nil, headObjectError
	}
	// no object with this key, but it may still be a prefix with children
	directoryEntries, readDirError := s3fs.ReadDir(ctx, name)
	if readDirError != nil {
		return nil, readDirError
	}
	if len(directoryEntries) > 0 {
		return NewS3FileInfo(name, time.Time{}, true, int64(0)), nil
	}
	return nil, headObjectError
}

func NewS3FileSystem(client *s3.Client, bucket string, prefix string, maxPages int) *S3FileSystem {
	return &S3FileSystem{
		client:   client,
		bucket:   bucket,
		prefix:   strings.Trim(prefix, "/"),
		maxPages: maxPages,
	}
}
