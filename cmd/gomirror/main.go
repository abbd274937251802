// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package main

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"os/signal"
	"path"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/navwar/gomirror/pkg/fs"
	"github.com/navwar/gomirror/pkg/lfs"
	"github.com/navwar/gomirror/pkg/log"
	"github.com/navwar/gomirror/pkg/mirror"
	"github.com/navwar/gomirror/pkg/registry"
	"github.com/navwar/gomirror/pkg/rules"
	"github.com/navwar/gomirror/pkg/s3fs"
	"github.com/navwar/gomirror/pkg/ts"
)

const (
	GoMirrorVersion = "0.0.1"
)

// Exit codes distinguish a run where some source failed from a run that
// never started because the configuration was invalid.
const (
	ExitCodeSuccess            = 0
	ExitCodeFailure            = 1
	ExitCodeConfigurationError = 2
)

// Configuration Flag
const (
	flagConfig = "config"
)

// Sync Flags
const (
	flagSource   = "source"
	flagDryRun   = "dry-run"
	flagFailFast = "fail-fast"
	//
	flagDelete           = "delete"
	flagParents          = "parents"
	flagCompress         = "compress"
	flagPreserveMetadata = "preserve-metadata"
	flagThreads          = "threads"
	//
	flagCheckTimestamps    = "check-timestamps"
	flagTimestampPrecision = "timestamp-precision"
)

// Sync Defaults
const (
	DefaultConfigPath         = "gomirror.yaml"
	DefaultTimestampPrecision = time.Second
)

// AWS Flags
const (
	// Profile
	flagAWSProfile       = "aws-profile"
	flagAWSDefaultRegion = "aws-default-region"
	flagAWSRegion        = "aws-region"
	// Credentials
	flagAWSAccessKeyID     = "aws-access-key-id"
	flagAWSSecretAccessKey = "aws-secret-access-key"
	flagAWSSessionToken    = "aws-session-token"
	// Client
	flagAWSRetryMaxAttempts = "aws-retry-max-attempts"
	// TLS
	flagAWSInsecureSkipVerify = "aws-insecure-skip-verify"
	// Miscellaneous
	flagAWSS3Endpoint     = "aws-s3-endpoint"
	flagAWSS3UsePathStyle = "aws-s3-use-path-style"
	flagMaxPages          = "max-pages"
)

// Debug Flag
const (
	flagDebug = "debug"
)

// List Flags
const (
	flagLogFormat             = "log-format"
	flagTimeLayout            = "time-layout"
	flagTimeZone              = "time-zone"
	flagHumanReadableFileSize = "human-readable-file-size"
)

// List Defaults
const (
	DefaultFormat = "text"
)

// Log Flags
const (
	flagLogPath            = "log-path"
	flagLogPerm            = "log-perm"
	flagLogClientSigning   = "log-client-signing"
	flagLogClientRequests  = "log-client-requests"
	flagLogClientResponses = "log-client-responses"
	flagLogClientRetries   = "log-client-retries"
)

func initConfigFlags(flag *pflag.FlagSet) {
	flag.StringP(flagConfig, "c", DefaultConfigPath, "path to the source registry configuration file")
}

func initAWSFlags(flag *pflag.FlagSet) {
	// Profile
	flag.String(flagAWSProfile, "default", "AWS Profile")
	flag.String(flagAWSDefaultRegion, "", "AWS Default Region")
	flag.String(flagAWSRegion, "", "AWS Region (overrides default region)")
	// Credentials
	flag.String(flagAWSAccessKeyID, "", "AWS Access Key ID")
	flag.String(flagAWSSecretAccessKey, "", "AWS Secret Access Key")
	flag.String(flagAWSSessionToken, "", "AWS Session Token")
	// Client
	flag.Int(flagAWSRetryMaxAttempts, 5, "the maximum number attempts an AWS API client will call an operation that fails with a retryable error.")
	// TLS
	flag.Bool(flagAWSInsecureSkipVerify, false, "Skip verification of AWS TLS certificate")
	// Miscellaneous
	flag.String(flagAWSS3Endpoint, "", "AWS S3 Endpoint URL")
	flag.Bool(flagAWSS3UsePathStyle, false, "Use path-style addressing (default is to use virtual-host-style addressing)")
	flag.Int(flagMaxPages, -1, "maximum number of pages to request when listing objects")
}

func initDebugFlags(flag *pflag.FlagSet) {
	flag.BoolP(flagDebug, "d", false, "print debug messages, including per-file copy and delete events")
}

func initSyncFlags(flag *pflag.FlagSet) {
	flag.StringSliceP(flagSource, "s", []string{}, "restrict the run to the named source, repeatable")
	flag.Bool(flagDryRun, false, "report planned transfers and deletions without executing them")
	flag.Bool(flagFailFast, false, "abort the run on the first source failure")
	flag.Bool(flagDelete, true, "delete files at destination that are no longer present at the remote source")
	flag.BoolP(flagParents, "p", true, "create destination directories if they do not exist")
	flag.Bool(flagCompress, false, "request transport-level compression where the transport supports it")
	flag.Bool(flagPreserveMetadata, true, "preserve source modification times on copied files")
	flag.Int(flagThreads, 1, "maximum number of parallel file copies within one source")
	flag.Bool(flagCheckTimestamps, false, "also compare modification times when deciding whether a file changed")
	flag.Duration(flagTimestampPrecision, DefaultTimestampPrecision, "precision to use when comparing timestamps")
}

func initListFlags(flag *pflag.FlagSet) {
	flag.StringP(flagLogFormat, "f", DefaultFormat, "output format.  Either jsonl or text.")
	flag.StringP(flagTimeLayout, "t", "Default", "the layout to use for file timestamps.  Use go layout format, or the name of a layout.  Use gomirror layouts to show all named layouts.")
	flag.StringP(flagTimeZone, "z", "Local", "the timezone to use for file timestamps")
	flag.Bool(flagHumanReadableFileSize, false, "display file sizes in human-readable format")
}

func initLogFlags(flag *pflag.FlagSet) {
	flag.String(flagLogPath, "-", "path to the log output.  Defaults to the operating system's stdout device.")
	flag.String(flagLogPerm, "0600", "file permissions for log output file as unix file mode.")
	flag.Bool(flagLogClientSigning, false, "log AWS client signature requests")
	flag.Bool(flagLogClientRequests, false, "log AWS client requests")
	flag.Bool(flagLogClientResponses, false, "log AWS client responses")
	flag.Bool(flagLogClientRetries, false, "log AWS client retries")
}

func initSyncCommandFlags(flag *pflag.FlagSet) {
	initConfigFlags(flag)
	initDebugFlags(flag)
	initAWSFlags(flag)
	initSyncFlags(flag)
	initLogFlags(flag)
}

func initListCommandFlags(flag *pflag.FlagSet) {
	initConfigFlags(flag)
	initDebugFlags(flag)
	initAWSFlags(flag)
	initListFlags(flag)
	initLogFlags(flag)
}

func initViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	err := v.BindPFlags(cmd.Flags())
	if err != nil {
		return v, fmt.Errorf("error binding flag set to viper: %w", err)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv() // set environment variables to overwrite config
	return v, nil
}

func checkLogConfig(v *viper.Viper) error {
	logPath := v.GetString(flagLogPath)
	if len(logPath) == 0 {
		return fmt.Errorf("log path is missing")
	}
	logPerm := v.GetString(flagLogPerm)
	if len(logPerm) == 0 {
		return fmt.Errorf("log perm is missing")
	}
	_, err := strconv.ParseUint(logPerm, 8, 32)
	if err != nil {
		return fmt.Errorf("invalid format for log perm: %s", logPerm)
	}
	return nil
}

func checkSyncConfig(v *viper.Viper, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("expecting no positional arguments, but found %d arguments", len(args))
	}
	if len(v.GetString(flagConfig)) == 0 {
		return fmt.Errorf("configuration file path is missing")
	}
	if threads := v.GetInt(flagThreads); threads == 0 {
		return errors.New("threads cannot be zero")
	}
	if precision := v.GetDuration(flagTimestampPrecision); precision <= 0 {
		return errors.New("timestamp precision must be positive")
	}
	if err := checkLogConfig(v); err != nil {
		return fmt.Errorf("error with log configuration: %w", err)
	}
	return nil
}

func checkListConfig(v *viper.Viper, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expecting 1 positional argument for the source name, but found %d arguments", len(args))
	}
	if len(v.GetString(flagConfig)) == 0 {
		return fmt.Errorf("configuration file path is missing")
	}
	if err := checkLogConfig(v); err != nil {
		return fmt.Errorf("error with log configuration: %w", err)
	}
	return nil
}

// checkRegistryPaths rejects registry entries whose local destination
// overlaps a local remote root, which would make the mirror eat its source.
func checkRegistryPaths(r *registry.Registry) error {
	for _, source := range r.Sources {
		if strings.HasPrefix(source.RemoteRoot, "s3://") {
			continue
		}
		remotePath := strings.TrimPrefix(source.RemoteRoot, "file://")
		localPath := strings.TrimPrefix(source.LocalRoot, "file://")
		if err := lfs.Check(remotePath, localPath); err != nil {
			return fmt.Errorf("invalid roots for source %q: %w", source.Name, err)
		}
	}
	return nil
}

type InitS3ClientInput struct {
	Profile string
	Region  string
	// AWS Client
	Endpoint           string
	InsecureSkipVerify bool
	RetryMaxAttempts   int
	UsePathStyle       bool
	// AWS Credentials
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	// Client Log Mode
	LogClientSigning   bool
	LogClientRetries   bool
	LogClientRequests  bool
	LogClientResponses bool
}

func InitS3Client(ctx context.Context, input *InitS3ClientInput) *s3.Client {
	clientLogMode := aws.ClientLogMode(0)
	if input.LogClientSigning {
		clientLogMode |= aws.LogSigning
	}
	if input.LogClientRetries {
		clientLogMode |= aws.LogRetries
	}
	if input.LogClientRequests {
		clientLogMode |= aws.LogRequest
	}
	if input.LogClientResponses {
		clientLogMode |= aws.LogResponse
	}

	c := aws.Config{
		ClientLogMode:    clientLogMode,
		RetryMaxAttempts: input.RetryMaxAttempts,
		Region:           input.Region,
		Logger:           log.NewClientLogger(os.Stdout),
	}

	if len(input.AccessKeyID) > 0 && len(input.SecretAccessKey) > 0 {
		c.Credentials = credentials.NewStaticCredentialsProvider(
			input.AccessKeyID,
			input.SecretAccessKey,
			input.SessionToken)
	} else {
		sharedConfig, err := awsconfig.LoadSharedConfigProfile(ctx, input.Profile)
		if err == nil {
			c.Credentials = credentials.NewStaticCredentialsProvider(
				sharedConfig.Credentials.AccessKeyID,
				sharedConfig.Credentials.SecretAccessKey,
				"")
		}
	}

	if input.InsecureSkipVerify {
		c.HTTPClient = &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true,
				},
			},
		}
	}

	client := s3.NewFromConfig(c, func(o *s3.Options) {
		o.UsePathStyle = input.UsePathStyle
		if len(input.Endpoint) > 0 {
			o.BaseEndpoint = aws.String(input.Endpoint)
		}
	})

	return client
}

func resolveRegion(ctx context.Context, v *viper.Viper, profile string) string {
	region := v.GetString(flagAWSRegion)
	if len(region) == 0 {
		region = v.GetString(flagAWSDefaultRegion)
	}
	// if neither region nor default region is specified
	if len(region) == 0 {
		sharedConfig, loadSharedConfigProfileError := awsconfig.LoadSharedConfigProfile(ctx, profile)
		if loadSharedConfigProfileError == nil {
			region = sharedConfig.Region
		}
	}
	return region
}

// InitFileSystemFactory returns the factory the driver uses to open each
// configured root. Roots with the "s3://" scheme open an S3-backed
// filesystem; everything else opens the local filesystem, read-only for
// remote roots.
func InitFileSystemFactory(v *viper.Viper) mirror.FileSystemFactory {
	return func(ctx context.Context, root string, readOnly bool) (fs.FileSystem, error) {
		if strings.HasPrefix(root, "s3://") {
			parts := s3fs.Split(root[len("s3://"):])
			if len(parts) == 0 || len(parts[0]) == 0 {
				return nil, fmt.Errorf("missing bucket in root %q", root)
			}
			bucket := parts[0]
			prefix := strings.Join(parts[1:], "/")
			profile := v.GetString(flagAWSProfile)
			if len(profile) == 0 {
				profile = "default"
			}
			client := InitS3Client(ctx, &InitS3ClientInput{
				Profile: profile,
				Region:  resolveRegion(ctx, v, profile),
				// AWS Client
				Endpoint:           v.GetString(flagAWSS3Endpoint),
				InsecureSkipVerify: v.GetBool(flagAWSInsecureSkipVerify),
				RetryMaxAttempts:   v.GetInt(flagAWSRetryMaxAttempts),
				UsePathStyle:       v.GetBool(flagAWSS3UsePathStyle),
				// AWS Credentials
				AccessKeyID:     v.GetString(flagAWSAccessKeyID),
				SecretAccessKey: v.GetString(flagAWSSecretAccessKey),
				SessionToken:    v.GetString(flagAWSSessionToken),
				// Client Mode
				LogClientSigning:   v.GetBool(flagLogClientSigning),
				LogClientRetries:   v.GetBool(flagLogClientRetries),
				LogClientRequests:  v.GetBool(flagLogClientRequests),
				LogClientResponses: v.GetBool(flagLogClientResponses),
			})
			return s3fs.NewS3FileSystem(client, bucket, prefix, v.GetInt(flagMaxPages)), nil
		}
		localPath := strings.TrimPrefix(root, "file://")
		if readOnly {
			return lfs.NewReadOnlyLocalFileSystem(localPath), nil
		}
		return lfs.NewLocalFileSystem(localPath), nil
	}
}

func initLogger(path string, perm string) (*log.SimpleLogger, error) {

	if path == os.DevNull {
		return log.NewSimpleLogger(io.Discard), nil
	}

	if path == "-" {
		return log.NewSimpleLogger(os.Stdout), nil
	}

	fileMode := os.FileMode(0600)

	if len(perm) > 0 {
		fm, err := strconv.ParseUint(perm, 8, 32)
		if err != nil {
			return nil, fmt.Errorf("error parsing file permissions for log file from %q", perm)
		}
		fileMode = os.FileMode(fm)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, fileMode)
	if err != nil {
		return nil, fmt.Errorf("error opening log file %q: %w", path, err)
	}

	return log.NewSimpleLogger(f), nil
}

func formatHumanReadableFileSize(size int64) string {
	str := ""
	if size <= int64(math.Pow(2, 10)) {
		str = fmt.Sprintf("%dB", size)
	} else if size <= int64(math.Pow(2, 20)) {
		f := float64(size) / math.Pow(2, 10)
		if f > 10 {
			str = fmt.Sprintf("%.0fK", f)
		} else {
			str = fmt.Sprintf("%.1fK", f)
		}
	} else if size <= int64(math.Pow(2, 30)) {
		str = fmt.Sprintf("%.0fM", float64(size)/math.Pow(2, 20))
	} else {
		str = fmt.Sprintf("%.0fG", float64(size)/math.Pow(2, 30))
	}
	return fmt.Sprintf("%5s", str)
}

type listEntry struct {
	path  string
	entry fs.DirectoryEntry
}

// collectEligible walks the remote tree and returns the entries a sync run
// would consider for transfer, in depth-first order.
func collectEligible(ctx context.Context, fileSystem fs.FileSystem, ruleSet *rules.RuleSet, dir string) ([]listEntry, error) {
	directoryEntries, err := fileSystem.ReadDir(ctx, "/"+dir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %q: %w", dir, err)
	}
	entries := []listEntry{}
	for _, directoryEntry := range directoryEntries {
		rel := path.Join(dir, directoryEntry.Name())
		disposition := ruleSet.Disposition(rel)
		if directoryEntry.IsDir() {
			if disposition == rules.DispositionProtect {
				continue
			}
			children, err := collectEligible(ctx, fileSystem, ruleSet, rel)
			if err != nil {
				return nil, err
			}
			entries = append(entries, children...)
			continue
		}
		if disposition == rules.DispositionTransfer {
			entries = append(entries, listEntry{path: rel, entry: directoryEntry})
		}
	}
	return entries, nil
}

func main() {
	rootCommand := &cobra.Command{
		Use:                   `gomirror [flags]`,
		DisableFlagsInUseLine: true,
		Short: strings.Join([]string{
			"gomirror is a simple command line program for mirroring a filtered subset of several named remote content sources into local staging directories.",
			"gomirror sync runs every source in the registry in order and reports per-source status.",
			"Local roots are specified using the \"file://\" scheme or a path without a scheme.",
			"S3 roots are specified using the \"s3://\" scheme.",
		}, "\n"),
	}

	layoutsCommand := &cobra.Command{
		Use:                   `layouts`,
		DisableFlagsInUseLine: true,
		Short:                 "show supported timestamp layouts",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0, len(ts.NamedLayouts))
			for name := range ts.NamedLayouts {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("%s: %s\n", name, ts.NamedLayouts[name])
			}
			return nil
		},
	}

	syncCommand := &cobra.Command{
		Use:                   "sync",
		DisableFlagsInUseLine: true,
		Short:                 "sync",
		Long:                  "mirror every source in the registry into its local destination",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {

			ctx := cmd.Context()

			v, err := initViper(cmd)
			if err != nil {
				return fmt.Errorf("error initializing viper: %w", err)
			}

			if errConfig := checkSyncConfig(v, args); errConfig != nil {
				return errConfig
			}

			logger, err := initLogger(v.GetString(flagLogPath), v.GetString(flagLogPerm))
			if err != nil {
				return fmt.Errorf("error initializing logger: %w", err)
			}

			sourceRegistry, err := registry.LoadFile(v.GetString(flagConfig))
			if err != nil {
				_ = logger.Log("Configuration error", map[string]interface{}{
					"err": err.Error(),
				})
				os.Exit(ExitCodeConfigurationError)
			}

			if err := checkRegistryPaths(sourceRegistry); err != nil {
				_ = logger.Log("Configuration error", map[string]interface{}{
					"err": err.Error(),
				})
				os.Exit(ExitCodeConfigurationError)
			}

			driver := &mirror.Driver{
				Factory: InitFileSystemFactory(v),
				Logger:  logger,
				Debug:   v.GetBool(flagDebug),
			}

			run, err := driver.Run(ctx, &mirror.RunInput{
				Registry: sourceRegistry,
				Only:     v.GetStringSlice(flagSource),
				Policy: mirror.Policy{
					Compress:           v.GetBool(flagCompress),
					PreserveMetadata:   v.GetBool(flagPreserveMetadata),
					Delete:             v.GetBool(flagDelete),
					Parents:            v.GetBool(flagParents),
					CheckTimestamps:    v.GetBool(flagCheckTimestamps),
					TimestampPrecision: v.GetDuration(flagTimestampPrecision),
				},
				DryRun:     v.GetBool(flagDryRun),
				FailFast:   v.GetBool(flagFailFast),
				MaxThreads: v.GetInt(flagThreads),
			})
			if err != nil {
				_ = logger.Log("Configuration error", map[string]interface{}{
					"err": err.Error(),
				})
				os.Exit(ExitCodeConfigurationError)
			}

			if run.Failed() {
				os.Exit(ExitCodeFailure)
			}

			return nil

		},
	}
	initSyncCommandFlags(syncCommand.Flags())

	listCommand := &cobra.Command{
		Use:                   "list SOURCE",
		DisableFlagsInUseLine: true,
		Short:                 "list",
		Long:                  "list the files of a registered source that are eligible for transfer",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {

			ctx := cmd.Context()

			v, err := initViper(cmd)
			if err != nil {
				return fmt.Errorf("error initializing viper: %w", err)
			}

			if errConfig := checkListConfig(v, args); errConfig != nil {
				return errConfig
			}

			logger, err := initLogger(v.GetString(flagLogPath), v.GetString(flagLogPerm))
			if err != nil {
				return fmt.Errorf("error initializing logger: %w", err)
			}

			sourceRegistry, err := registry.LoadFile(v.GetString(flagConfig))
			if err != nil {
				_ = logger.Log("Configuration error", map[string]interface{}{
					"err": err.Error(),
				})
				os.Exit(ExitCodeConfigurationError)
			}

			sources, err := sourceRegistry.Select(args[:1])
			if err != nil {
				_ = logger.Log("Configuration error", map[string]interface{}{
					"err": err.Error(),
				})
				os.Exit(ExitCodeConfigurationError)
			}
			source := sources[0]

			ruleSet, err := rules.Compile(sourceRegistry.RulesFor(source))
			if err != nil {
				_ = logger.Log("Configuration error", map[string]interface{}{
					"err": err.Error(),
				})
				os.Exit(ExitCodeConfigurationError)
			}

			factory := InitFileSystemFactory(v)
			fileSystem, err := factory(ctx, source.RemoteRoot, true)
			if err != nil {
				_ = logger.Log("Error opening remote", map[string]interface{}{
					"remote": source.RemoteRoot,
					"err":    err.Error(),
				})
				os.Exit(ExitCodeFailure)
			}

			entries, err := collectEligible(ctx, fileSystem, ruleSet, "")
			if err != nil {
				_ = logger.Log("Error listing", map[string]interface{}{
					"remote": source.RemoteRoot,
					"err":    err.Error(),
				})
				os.Exit(ExitCodeFailure)
			}

			logFormat := v.GetString(flagLogFormat)
			humanReadableFileSize := v.GetBool(flagHumanReadableFileSize)
			timeLayout := ts.ParseLayout(v.GetString(flagTimeLayout))
			timeZone, err := ts.ParseLocation(v.GetString(flagTimeZone))
			if err != nil {
				return fmt.Errorf("error parsing time zone location %q: %w", v.GetString(flagTimeZone), err)
			}

			switch logFormat {
			case "text":
				maxFileSize := int64(0)
				for _, e := range entries {
					if size := e.entry.Size(); size > maxFileSize {
						maxFileSize = size
					}
				}
				spaces := len(fmt.Sprintf("%d", maxFileSize))
				_, _ = fmt.Fprintf(os.Stdout, "%s %s %s\n",
					fmt.Sprintf("%"+strconv.Itoa(spaces)+"s", "size"),
					fmt.Sprintf("%"+strconv.Itoa(len(timeLayout))+"s", "modified"),
					"name",
				)
				for _, e := range entries {
					size := ""
					if humanReadableFileSize {
						size = formatHumanReadableFileSize(e.entry.Size())
					} else {
						size = fmt.Sprintf("%"+strconv.Itoa(spaces)+"d", e.entry.Size())
					}
					_, _ = fmt.Fprintf(os.Stdout, "%s %s %s\n",
						size,
						timeLayout.Format(e.entry.ModTime().In(timeZone)),
						e.path)
				}
			case "jsonl":
				encoder := json.NewEncoder(os.Stdout)
				for _, e := range entries {
					m := map[string]any{}
					m["name"] = e.path
					m["mod_time"] = timeLayout.Format(e.entry.ModTime().In(timeZone))
					if humanReadableFileSize {
						m["size"] = strings.TrimSpace(formatHumanReadableFileSize(e.entry.Size()))
					} else {
						m["size"] = e.entry.Size()
					}
					err := encoder.Encode(m)
					if err != nil {
						return fmt.Errorf("error encoding directory entry %#v: %w", e.path, err)
					}
				}
			default:
				_ = logger.Log("Unknown log format", map[string]interface{}{
					"format": logFormat,
				})
				os.Exit(ExitCodeFailure)
			}

			return nil

		},
	}
	initListCommandFlags(listCommand.Flags())

	schemesCommand := &cobra.Command{
		Use:                   `schemes`,
		DisableFlagsInUseLine: true,
		Short:                 "show supported schemes",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("file")
			fmt.Println("s3")
			return nil
		},
	}

	versionCommand := &cobra.Command{
		Use:                   `version`,
		DisableFlagsInUseLine: true,
		Short:                 "show version",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(GoMirrorVersion)
			return nil
		},
	}

	rootCommand.AddCommand(layoutsCommand, syncCommand, listCommand, schemesCommand, versionCommand)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCommand.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "gomirror: "+err.Error())
		fmt.Fprintln(os.Stderr, "Try \"gomirror --help\" for more information.")
		os.Exit(ExitCodeFailure)
	}
}
