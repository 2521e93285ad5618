// Package cli provides the command-line interface for speedcfg.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	speederrors "github.com/princespaghetti/speedcfg/internal/errors"
	"github.com/princespaghetti/speedcfg/internal/fetcher"
	"github.com/princespaghetti/speedcfg/internal/logging"
	"github.com/princespaghetti/speedcfg/internal/speedconfig"
)

// Version information (will be set by build flags in production).
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

// NewRootCmd builds the root command with its own viper instance so that
// each invocation resolves settings independently.
func NewRootCmd() *cobra.Command {
	v := newViper()

	rootCmd := &cobra.Command{
		Use:   "speedcfg",
		Short: "Fetch and display the speedtest.net client configuration",
		Long: `speedcfg downloads the speedtest.net configuration document and prints
the client, times, download and upload settings it contains.

Every flag can also be set through a SPEEDCFG_* environment variable
(e.g. SPEEDCFG_TIMEOUT=5) or a YAML config file passed with --config.

Examples:
  speedcfg
  speedcfg --timeout 5 --format json
  speedcfg --format yaml --out speedtest-config.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(v)
			if err != nil {
				return err
			}
			logger := logging.New(cmd.ErrOrStderr(), s.LogLevel, s.LogFormat)
			logging.SetDefault(logger)
			return run(cmd.Context(), s, cmd.OutOrStdout(), logger)
		},
	}

	flags := rootCmd.Flags()
	flags.StringP("timeout", "t", v.GetString("timeout"), "HTTP timeout in seconds. Default 10")
	flags.StringP("server", "s", v.GetString("server"), "Specify a server ID to test against")
	flags.String("format", v.GetString("format"), "Output format: text, json or yaml")
	flags.StringP("out", "o", "", "Also write the rendered config to this file")
	flags.String("user-agent", fetcher.DefaultUserAgent, "User-Agent header sent with the request")
	flags.String("url", fetcher.DefaultConfigURL, "URL of the configuration document")
	flags.String("log-level", v.GetString("log.level"), "Log level: error, warn, info or debug")
	flags.String("log-format", v.GetString("log.format"), "Log format: text or json")
	flags.String("config", "", "Path to a YAML config file")
	_ = flags.MarkHidden("url")

	_ = v.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = v.BindPFlag("server", flags.Lookup("server"))
	_ = v.BindPFlag("format", flags.Lookup("format"))
	_ = v.BindPFlag("out", flags.Lookup("out"))
	_ = v.BindPFlag("user_agent", flags.Lookup("user-agent"))
	_ = v.BindPFlag("url", flags.Lookup("url"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = v.BindPFlag("config", flags.Lookup("config"))

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", speederrors.ErrInvalidConfig, err)
	})

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "speedcfg version %s\n", Version)
			fmt.Fprintf(out, "  commit: %s\n", GitCommit)
			fmt.Fprintf(out, "  built:  %s\n", BuildDate)
		},
	}
}

// run fetches the configuration, renders it to stdout and optionally to the
// output file.
func run(ctx context.Context, s *Settings, stdout io.Writer, logger *logging.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Info("timeout configured", "seconds", int(s.Timeout.Seconds()))
	// The server id is accepted for compatibility but does not affect the fetch.
	logger.Info("server id configured", "server", s.ServerID)

	rec, err := speedconfig.GetConfig(ctx, speedconfig.Options{
		URL:       s.URL,
		UserAgent: s.UserAgent,
		Timeout:   s.Timeout,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("failed to load config", "kind", speederrors.KindOf(err).String(), "error", err)
		return err
	}
	logger.Info("config loaded",
		"client", len(rec.Client),
		"times", len(rec.Times),
		"download", len(rec.Download),
		"upload", len(rec.Upload))

	data, err := Render(rec, s.Format)
	if err != nil {
		return fmt.Errorf("render config: %w", err)
	}
	if _, err := stdout.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if s.Out != "" {
		if err := writeFileLocked(ctx, s.Out, data); err != nil {
			return err
		}
		logger.Info("config written", "path", s.Out)
	}
	return nil
}

// Execute runs the root command and exits with a code matching the failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(speederrors.ExitCode(err))
	}
}
