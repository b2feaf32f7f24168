package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/trobanga/ladle/internal/lib"
	"github.com/trobanga/ladle/internal/models"
)

// HistoryService builds the recent jobs view
type HistoryService struct {
	jobs        *JobClient
	limit       int
	concurrency int
	logger      *lib.Logger
}

// NewHistoryService creates a history service
func NewHistoryService(jobs *JobClient, cfg models.HistoryConfig, logger *lib.Logger) *HistoryService {
	limit := cfg.Limit
	if limit <= 0 {
		limit = models.DefaultConfig().History.Limit
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &HistoryService{
		jobs:        jobs,
		limit:       limit,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Refresh lists the most recent jobs in service order (newest first), keeping
// at most the configured limit. Completed rows are enriched with the solved
// amount from their job detail; those fetches run concurrently and a failed
// fetch only degrades its own row. Only the list fetch can fail the refresh.
func (h *HistoryService) Refresh(ctx context.Context) ([]models.HistoryRow, error) {
	summaries, err := h.jobs.ListJobs(ctx)
	if err != nil {
		return nil, err
	}
	if len(summaries) > h.limit {
		summaries = summaries[:h.limit]
	}

	rows := make([]models.HistoryRow, len(summaries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency)

	for i, s := range summaries {
		rows[i] = models.HistoryRow{
			JobID:     s.JobID,
			CalcType:  s.CalcType,
			Status:    s.Status,
			CreatedAt: s.CreatedAt,
			Solved:    models.SolvedPlaceholder,
		}
		if s.Status != models.JobStatusCompleted {
			continue
		}

		g.Go(func() error {
			job, err := h.jobs.GetJob(gctx, s.JobID)
			if err != nil {
				h.logger.Debug("History detail unavailable", "job_id", s.JobID, "error", err)
				return nil
			}
			if job.Result != nil {
				rows[i].Solved = FormatSolved(job.Result)
			}
			return nil
		})
	}

	// Row goroutines never return an error
	_ = g.Wait()

	h.logger.Debug("History refreshed", "rows", len(rows))
	return rows, nil
}

// FormatSolved renders the solved amount of a result with four decimals
func FormatSolved(r *models.Result) string {
	if r == nil {
		return models.SolvedPlaceholder
	}
	return fmt.Sprintf("%.4f", r.AlphaG)
}
