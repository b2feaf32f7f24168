package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/trobanga/ladle/internal/models"
	"github.com/trobanga/ladle/internal/services"
	"github.com/trobanga/ladle/internal/ui"
)

// awaitJob polls jobID with a spinner on stderr. The job history is refreshed
// once the job is terminal, on success and failure; the rows are returned for
// printing only when showHistory is set.
func awaitJob(ctx context.Context, rt *runtime, jobID string, showHistory bool) (*models.Result, []models.HistoryRow, error) {
	spinner := ui.StartSpinner(os.Stderr, fmt.Sprintf("Waiting for job %s", jobID))
	defer spinner.Stop()

	var history []models.HistoryRow
	opts := services.AwaitOptions{
		Observer: func(u services.PollUpdate) {
			spinner.UpdateMessage(pollMessage(u))
		},
		OnTerminal: func(job models.Job) {
			rows, err := rt.history.Refresh(ctx)
			if err != nil {
				// Best effort: the job outcome is reported either way
				rt.logger.Warn("History refresh failed", "job_id", job.JobID, "error", err)
				return
			}
			rt.logger.Debug("History refreshed", "job_id", job.JobID, "rows", len(rows))
			if showHistory {
				history = rows
			}
		},
	}

	result, err := rt.jobs.AwaitCompletion(ctx, jobID, opts)
	spinner.Stop()
	return result, history, err
}

func pollMessage(u services.PollUpdate) string {
	msg := fmt.Sprintf("Job %s %s %s", u.JobID, ui.StatusSymbol(u.Status), u.Status)
	if u.Slow {
		msg += " (taking longer than expected)"
	}
	return msg
}

// printOutcome renders the terminal outcome of a job followed by the refreshed history
func printOutcome(rt *runtime, jobID string, result *models.Result, history []models.HistoryRow, err error) {
	if history != nil {
		defer func() {
			fmt.Println()
			ui.PrintHistory(os.Stdout, history)
		}()
	}
	if err != nil {
		var failed *services.JobFailedError
		if errors.As(err, &failed) {
			fmt.Printf("%s Job %s failed: %s\n", ui.Error.Render(ui.IconFail), jobID, failed.Message)
		}
		return
	}

	fmt.Printf("%s Job %s completed\n\n", ui.Success.Render(ui.IconPass), jobID)
	ui.PrintResult(os.Stdout, result)
	fmt.Printf("\nDownload: %s\n", ui.Info.Render(rt.jobs.DownloadURL(jobID)))
	fmt.Printf("          ladle job download %s\n", jobID)
}
