/*
Copyright © 2026 Ladle Contributors

Ladle is a CLI client for the ladle refining calculation service.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/trobanga/ladle/internal/lib"
	"github.com/trobanga/ladle/internal/observability"
	"github.com/trobanga/ladle/internal/services"
	"github.com/trobanga/ladle/internal/ui"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	baseURL string
	noColor bool

	shutdownTracing func(context.Context) error
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ladle",
	Short: "Ladle - deoxidation and desulfurization calculation client",
	Long: `Ladle drives a remote thermodynamic calculation service that estimates how
much of a solving species (e.g. Ca) must be added to a steel/slag system to
reach a target Al, O or S content.

The CLI loads the service's option catalog, checks species/target
combinations, submits calculation jobs, waits for them to finish and renders
the resulting steel and slag compositions.

Example:
  ladle options
  ladle check Ca S
  ladle calc --calc-type desulfurization --set Fe_g=100000 --target-value 0.005
  ladle job list
  ladle job download <job-id>`,
	Version:            "0.1.0",
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setupGlobals,
	PersistentPostRunE: teardownGlobals,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprint(os.Stderr, describeError(err).UserMessage())
		stop()
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./ladle.yaml, ~/.config/ladle/ladle.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "calculation service base URL (overrides service.base_url)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	_ = services.BindFlagToConfig(rootCmd.PersistentFlags().Lookup("base-url"), "service.base_url")

	// Add version template
	rootCmd.SetVersionTemplate("Ladle version {{.Version}}\n")
}

func setupGlobals(cmd *cobra.Command, args []string) error {
	if noColor || os.Getenv("NO_COLOR") != "" {
		ui.DisableColor()
	}

	shutdown, err := observability.InitTracing(cmd.Context())
	if err != nil {
		// Tracing is optional; the command still runs without it
		lib.DefaultLogger.Warn("Tracing disabled", "error", err)
		return nil
	}
	shutdownTracing = shutdown
	return nil
}

func teardownGlobals(cmd *cobra.Command, args []string) error {
	if shutdownTracing == nil {
		return nil
	}
	return shutdownTracing(cmd.Context())
}

// describeError maps any command error to a categorized error with guidance
func describeError(err error) *lib.AppError {
	var appErr *lib.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var failed *services.JobFailedError
	if errors.As(err, &failed) {
		return &lib.AppError{
			Category: lib.CategoryJob,
			Message:  fmt.Sprintf("Job %s failed: %s", failed.JobID, failed.Message),
			Guidance: []string{
				"Check the inputs and submit a new job",
				"Use 'ladle job status " + failed.JobID + "' to inspect the job",
			},
		}
	}

	if errors.Is(err, services.ErrPollTimeout) {
		return &lib.AppError{
			Category: lib.CategoryJob,
			Message:  "Stopped waiting for the job",
			Cause:    err,
			Guidance: []string{
				"The job keeps running on the service",
				"Use 'ladle job wait <job-id>' to resume waiting",
				"Raise polling.max_wait_seconds (0 waits indefinitely)",
			},
			IsRetryable: true,
		}
	}

	if errors.Is(err, context.Canceled) {
		return lib.WrapError(lib.CategoryJob, "Interrupted", err,
			"A submitted job keeps running on the service; use 'ladle job list' to find it")
	}

	var reqErr *services.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.StatusCode == 0 {
			return lib.ErrNetworkUnreachable(currentBaseURL(), err)
		}
		return lib.ErrServiceRejected(reqErr.StatusCode, reqErr.Message)
	}

	return lib.ClassifyError(err)
}

func currentBaseURL() string {
	if baseURL != "" {
		return baseURL
	}
	if cfg, err := services.LoadConfig(cfgFile); err == nil {
		return cfg.Service.BaseURL
	}
	return "the configured service"
}
