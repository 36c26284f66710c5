// Command md5sum prints or checks message digests of files.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"md5sum/internal/config"
	"md5sum/internal/digest"
	"md5sum/internal/metrics"
	"md5sum/internal/progress"
	"md5sum/internal/target"
	"md5sum/internal/verify"
)

const version = "0.1.0"

const exitUsage = 2

const longHelp = `Print or check message digests (MD5 by default).

With no FILE, or when FILE is -, read standard input.

The following five options are useful only when verifying checksums:
  --ignore-missing  don't fail or report status for missing files
  --quiet           don't print OK for each successfully verified file
  --status          don't output anything, status code shows success
  --strict          exit non-zero for improperly formatted checksum lines
  -w, --warn        warn about improperly formatted checksum lines

The default mode is to print a line with checksum, two spaces and name for
each FILE. When checking, the input should be a former output of this
program.`

type options struct {
	settings   config.Settings
	configPath string
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	s := &o.settings

	fs.BoolVarP(&s.Check, "check", "c", false, "read checksums from the FILEs and check them")
	fs.BoolVar(&s.Run.IgnoreMissing, "ignore-missing", false, "don't fail or report status for missing files")
	fs.BoolVar(&s.Run.Quiet, "quiet", false, "don't print OK for each successfully verified file")
	fs.BoolVar(&s.Run.Status, "status", false, "don't output anything, status code shows success")
	fs.BoolVar(&s.Run.Strict, "strict", false, "exit non-zero for improperly formatted checksum lines")
	fs.BoolVarP(&s.Run.Warn, "warn", "w", false, "warn about improperly formatted checksum lines")

	fs.StringVarP(&s.Algorithm, "algorithm", "a", s.Algorithm, fmt.Sprintf("digest algorithm %v", digest.Algorithms()))
	fs.BoolVar(&s.Progress, "progress", false, "show hashing progress on standard error")
	fs.StringVar(&s.Stats, "stats", "", "print run statistics to standard error (text, json)")
	fs.StringVar(&s.LogLevel, "log-level", s.LogLevel, "minimum log level (debug, info, warn, error)")
	fs.StringVar(&s.LogFormat, "log-format", s.LogFormat, "log output format (text, json)")
	fs.StringVar(&o.configPath, "config", os.Getenv(config.EnvFile), "YAML file with default settings")
}

// resolve merges the defaults file under the flags the user actually set.
func (o *options) resolve(fs *pflag.FlagSet) (config.Settings, error) {
	s := o.settings
	if o.configPath != "" {
		f, err := config.Load(o.configPath)
		if err != nil {
			return config.Settings{}, err
		}
		f.Apply(&s, fs.Changed)
	}
	if err := s.Validate(); err != nil {
		return config.Settings{}, err
	}
	return s, nil
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer, status *int) *cobra.Command {
	o := &options{settings: config.Defaults()}

	cmd := &cobra.Command{
		Use:           "md5sum [OPTION]... [FILE]...",
		Short:         "Print or check message digests.",
		Long:          longHelp,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := o.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			slog.SetDefault(settings.NewLogger(stderr))

			p, err := digest.New(settings.Algorithm)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				args = []string{target.StdinName}
			}

			*status = execute(settings, p, args, stdin, verify.Console{Out: stdout, Err: stderr})
			return nil
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate("md5sum {{.Version}}\n")
	o.addFlags(cmd.Flags())

	return cmd
}

func execute(settings config.Settings, p digest.Primitive, args []string, stdin io.Reader, console verify.Console) int {
	stats := &metrics.Stats{}
	stats.Start()

	engine := verify.NewEngine(target.FS{Stdin: stdin}, p, stats)

	var bar *progress.Bar
	if settings.Progress {
		var err error
		bar, err = progress.New(console.Err, stats.Snapshot)
		if err != nil {
			slog.Warn("progress bar disabled", "error", err)
		} else {
			engine.OnProgress = bar.AddBytes
		}
	}

	var status int
	if settings.Check {
		status = verify.Check(args, engine, verify.NewAggregator(settings.Run, console, stats))
	} else {
		status = verify.Produce(args, engine, console, settings.Run.Quiet)
	}

	if bar != nil {
		bar.Close()
	}
	stats.Stop()

	if settings.Stats != "" {
		if err := metrics.Print(console.Err, stats.Snapshot(), settings.Stats); err != nil {
			slog.Error("print stats", "error", err)
		}
	}

	slog.Debug("run finished", "check", settings.Check, "algorithm", p.Name(), "status", status)
	return status
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	status := verify.ExitOK
	cmd := newRootCommand(stdin, stdout, stderr, &status)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(stderr, "md5sum: %v\n", err)
		return exitUsage
	}
	return status
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
