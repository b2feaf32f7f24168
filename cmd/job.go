package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/trobanga/ladle/internal/lib"
	"github.com/trobanga/ladle/internal/models"
	"github.com/trobanga/ladle/internal/services"
	"github.com/trobanga/ladle/internal/ui"
)

var (
	jobOutDir     string
	jobNoProgress bool
	jobDownload   bool
	jobHistory    bool
)

// jobCmd represents the job command group
var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Inspect calculation jobs",
	Long: `Inspect calculation jobs held by the service: list recent jobs, show one
job, wait for a job to finish and download its result archive.

Available subcommands:
  list     - List the most recent jobs
  status   - Show one job
  wait     - Wait for a job to finish
  download - Download a job's result archive`,
}

// jobListCmd represents the job list command
var jobListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent jobs",
	Long: `List the most recent jobs, newest first (at most history.limit, default 20).

Shows:
  - Job ID
  - Calc type
  - Solved amount for completed jobs
  - Status
  - Creation time

Example:
  ladle job list`,
	Args: cobra.NoArgs,
	RunE: runJobList,
}

var jobStatusCmd = &cobra.Command{
	Use:   "status <job-id>",
	Short: "Show one job",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobStatus,
}

var jobWaitCmd = &cobra.Command{
	Use:   "wait <job-id>",
	Short: "Wait for a job to finish and show its result",
	Long: `Poll a job until it completes or fails.

Polling stops after polling.max_wait_seconds (0 waits indefinitely); the job
itself keeps running on the service and can be waited for again.`,
	Args: cobra.ExactArgs(1),
	RunE: runJobWait,
}

var jobDownloadCmd = &cobra.Command{
	Use:   "download <job-id>",
	Short: "Download a job's result archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobDownload,
}

func init() {
	rootCmd.AddCommand(jobCmd)
	jobCmd.AddCommand(jobListCmd)
	jobCmd.AddCommand(jobStatusCmd)
	jobCmd.AddCommand(jobWaitCmd)
	jobCmd.AddCommand(jobDownloadCmd)

	jobWaitCmd.Flags().BoolVar(&jobDownload, "download", false, "download the result archive when the job completes")
	jobWaitCmd.Flags().BoolVar(&jobHistory, "history", false, "print the job history after the job finishes")
	jobWaitCmd.Flags().StringVarP(&jobOutDir, "out", "o", "", "download directory (default: download_dir from config)")
	jobDownloadCmd.Flags().StringVarP(&jobOutDir, "out", "o", "", "download directory (default: download_dir from config)")
	jobDownloadCmd.Flags().BoolVar(&jobNoProgress, "no-progress", false, "disable the progress bar")
}

func runJobList(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	rows, err := rt.history.Refresh(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}

	ui.PrintHistory(os.Stdout, rows)
	return nil
}

func runJobStatus(cmd *cobra.Command, args []string) error {
	jobID := args[0]

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	job, err := rt.jobs.GetJob(cmd.Context(), jobID)
	if err != nil {
		return notFound(jobID, err)
	}

	fmt.Printf("Job:     %s\n", ui.Bold.Render(job.JobID))
	fmt.Printf("Type:    %s\n", ui.CalcTypeLabel(job.CalcType))
	fmt.Printf("Status:  %s\n", ui.StatusCell(job.Status, 0))
	if job.CreatedAt != "" {
		fmt.Printf("Created: %s\n", job.CreatedAt)
	}

	switch job.Status {
	case models.JobStatusCompleted:
		fmt.Println()
		ui.PrintResult(os.Stdout, job.Result)
		fmt.Printf("\nDownload: %s\n", ui.Info.Render(rt.jobs.DownloadURL(job.JobID)))
	case models.JobStatusFailed:
		msg := job.Error
		if msg == "" {
			msg = services.DefaultJobFailureMessage
		}
		fmt.Printf("Error:   %s\n", ui.Error.Render(msg))
	default:
		fmt.Printf("\nWait for it with: ladle job wait %s\n", job.JobID)
	}
	return nil
}

func runJobWait(cmd *cobra.Command, args []string) error {
	jobID := args[0]
	ctx := cmd.Context()

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	result, history, err := awaitJob(ctx, rt, jobID, jobHistory)
	if err != nil {
		err = notFound(jobID, err)
	}
	printOutcome(rt, jobID, result, history, err)
	if err != nil {
		return err
	}

	if jobDownload {
		return downloadArtifact(ctx, rt, jobID, jobOutDir, ui.IsTerminal(os.Stderr))
	}
	return nil
}

func runJobDownload(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	return downloadArtifact(cmd.Context(), rt, args[0], jobOutDir, !jobNoProgress && ui.IsTerminal(os.Stderr))
}

func downloadArtifact(ctx context.Context, rt *runtime, jobID string, outDir string, showProgress bool) error {
	if outDir == "" {
		outDir = rt.config.DownloadDir
	}

	res, err := rt.jobs.DownloadArtifact(ctx, jobID, outDir, showProgress)
	if err != nil {
		return notFound(jobID, err)
	}

	fmt.Printf("%s Saved %s (%s)\n", ui.Success.Render(ui.IconPass), res.Path, ui.FormatBytes(res.Bytes))
	return nil
}

// notFound turns a 404 for a job into a job-not-found error
func notFound(jobID string, err error) error {
	var reqErr *services.RequestError
	if errors.As(err, &reqErr) && reqErr.IsNotFound() {
		return lib.ErrJobNotFound(jobID)
	}
	return err
}
