// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package s3fs

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3File is either a reader over an object body or a write buffer uploaded
// as a whole object on Close. Staged wiki files are small enough that a
// multipart upload is not worth the bookkeeping.
type S3File struct {
	name   string
	body   io.ReadCloser
	buffer *bytes.Buffer
	// ctx is retained from OpenFile because Close carries no context
	ctx    context.Context
	client *s3.Client
	bucket string
	key    string
}

func (f *S3File) Close() error {
	if f.body != nil {
		return f.body.Close()
	}
	_, err := f.client.PutObject(f.ctx, &s3.PutObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key),
		Body:   bytes.NewReader(f.buffer.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("error putting object %q: %w", f.key, err)
	}
	return nil
}

func (f *S3File) Name() string {
	return f.name
}

func (f *S3File) Read(s []byte) (int, error) {
	if f.body == nil {
		return 0, fmt.Errorf("file %q is open for writing", f.name)
	}
	return f.body.Read(s)
}

func (f *S3File) Write(s []byte) (int, error) {
	if f.buffer == nil {
		return 0, fmt.Errorf("file %q is open for reading", f.name)
	}
	return f.buffer.Write(s)
}

func NewS3ReadFile(name string, body io.ReadCloser) *S3File {
	return &S3File{
		name: name,
		body: body,
	}
}

func NewS3WriteFile(ctx context.Context, name string, client *s3.Client, bucket string, key string) *S3File {
	return &S3File{
		name:   name,
		buffer: bytes.NewBuffer(nil),
		ctx:    ctx,
		client: client,
		bucket: bucket,
		key:    key,
	}
}
