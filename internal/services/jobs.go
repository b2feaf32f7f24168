package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/trobanga/ladle/internal/lib"
	"github.com/trobanga/ladle/internal/models"
)

var tracer = otel.Tracer("ladle/jobs")

// DefaultJobFailureMessage is shown when a failed job carries no error text
const DefaultJobFailureMessage = "calculation failed"

// SubmissionError is returned when the service does not accept a job
type SubmissionError struct {
	Cause error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission failed: %v", e.Cause)
}

func (e *SubmissionError) Unwrap() error {
	return e.Cause
}

// JobFailedError is returned when a job reaches status failed
type JobFailedError struct {
	JobID   string
	Message string
}

func (e *JobFailedError) Error() string {
	return e.Message
}

// JobClient submits calculation jobs and waits for them to finish
type JobClient struct {
	http    *HTTPClient
	polling models.PollingConfig
	logger  *lib.Logger
}

// AwaitOptions carries the callbacks of a single wait
type AwaitOptions struct {
	// Observer is invoked after every poll
	Observer StatusObserver
	// OnTerminal is invoked once when the job reaches completed or failed
	OnTerminal func(models.Job)
}

// NewJobClient creates a job lifecycle client
func NewJobClient(httpClient *HTTPClient, polling models.PollingConfig, logger *lib.Logger) *JobClient {
	return &JobClient{
		http:    httpClient,
		polling: polling,
		logger:  logger,
	}
}

// CheckSubmittable is the local gate run before any network call.
// Each refusal has its own message.
func CheckSubmittable(req models.CalculationRequest, verdict models.CombinationVerdict) error {
	if req.Steel.FeG == 0 {
		return lib.ErrRequiredField("steel.Fe_g", "Provide the Fe mass basis in grams, e.g. --set Fe_g=100000")
	}
	if req.Target.Value == 0 {
		return lib.ErrRequiredField("target.value", "Provide the target content, e.g. --target-value 0.03")
	}
	if verdict.Blocking() {
		return lib.ErrCombinationRejected(req.SolveSpecies, req.Target.Element, verdict.Message)
	}
	return nil
}

// Submit runs the local gate and posts the request, returning the job id
func (c *JobClient) Submit(ctx context.Context, req models.CalculationRequest, verdict models.CombinationVerdict) (string, error) {
	if err := CheckSubmittable(req, verdict); err != nil {
		return "", err
	}
	req = models.WithRequestDefaults(req)

	c.logger.Debug("Submitting calculation", "request", req.String())

	var resp models.SubmitResponse
	if err := c.http.PostJSON(ctx, "/calculate", req, &resp); err != nil {
		return "", &SubmissionError{Cause: err}
	}
	if resp.JobID == "" {
		return "", &SubmissionError{Cause: errors.New("service returned no job_id")}
	}

	lib.LogJobSubmitted(c.logger, resp.JobID, string(req.CalcType))
	return resp.JobID, nil
}

// GetJob fetches one job snapshot
func (c *JobClient) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	var job models.Job
	if err := c.http.Get(ctx, jobPath(jobID), &job); err != nil {
		return nil, err
	}
	if job.JobID == "" {
		job.JobID = jobID
	}
	return &job, nil
}

// ListJobs fetches the job summaries, newest first as served
func (c *JobClient) ListJobs(ctx context.Context) ([]models.JobSummary, error) {
	var jobs []models.JobSummary
	if err := c.http.Get(ctx, "/jobs", &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// DownloadURL returns the absolute URL of a job's result artifact
func (c *JobClient) DownloadURL(jobID string) string {
	return c.http.URL(jobPath(jobID) + "/download")
}

// AwaitCompletion polls the job at a fixed interval until it is completed or
// failed. Polls are strictly sequential. Observed statuses never move
// backwards: a stale snapshot is logged and skipped. A completed job yields its
// result; a failed job yields *JobFailedError. Cancel ctx to abandon the wait.
func (c *JobClient) AwaitCompletion(ctx context.Context, jobID string, opts AwaitOptions) (*models.Result, error) {
	ctx, span := tracer.Start(ctx, "job.await", trace.WithAttributes(attribute.String("job.id", jobID)))
	defer span.End()

	pc := NewPollConfig(c.polling)
	var last models.JobStatus

	for {
		if pc.CheckTimeout() {
			c.logger.Error("Job wait exceeded maximum",
				"job_id", jobID,
				"elapsed", pc.GetElapsedTime(),
				"polls", pc.PollCount)
			err := fmt.Errorf("%w: job %s still %s after %s", ErrPollTimeout, jobID, last, pc.MaxWait)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}

		pc.IncrementPollCount()
		job, err := c.GetJob(ctx, jobID)
		if err != nil {
			c.logger.Error("Job poll failed", "job_id", jobID, "attempt", pc.PollCount, "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "poll failed")
			return nil, err
		}

		status, accepted := models.ObserveStatus(last, job.Status)
		if !accepted {
			c.logger.Warn("Ignoring out-of-order job status",
				"job_id", jobID,
				"observed", last,
				"polled", job.Status)
		} else if status != last {
			if last != "" && !last.CanTransitionTo(status) {
				c.logger.Debug("Job skipped a status between polls", "job_id", jobID, "from", last, "to", status)
			}
			span.AddEvent("job.status", trace.WithAttributes(attribute.String("status", string(status))))
			last = status
		}

		if opts.Observer != nil && last != "" {
			opts.Observer(PollUpdate{
				JobID:   jobID,
				Status:  last,
				Attempt: pc.PollCount,
				Elapsed: pc.GetElapsedTime(),
				Slow:    pc.IsSlow(),
			})
		}

		if accepted && status.IsTerminal() {
			lib.LogJobTerminal(c.logger, jobID, string(status), pc.PollCount, pc.GetElapsedTime())
			result, err := c.finish(job, opts.OnTerminal)
			if err != nil {
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetStatus(codes.Ok, "")
			}
			return result, err
		}

		if err := lib.Sleep(ctx, pc.Interval); err != nil {
			return nil, err
		}
	}
}

// Run submits a request and waits for its outcome
func (c *JobClient) Run(ctx context.Context, req models.CalculationRequest, verdict models.CombinationVerdict, opts AwaitOptions) (string, *models.Result, error) {
	jobID, err := c.Submit(ctx, req, verdict)
	if err != nil {
		return "", nil, err
	}
	result, err := c.AwaitCompletion(ctx, jobID, opts)
	return jobID, result, err
}

// finish maps a terminal snapshot to exactly one of result or error and fires the terminal hook
func (c *JobClient) finish(job *models.Job, onTerminal func(models.Job)) (*models.Result, error) {
	if onTerminal != nil {
		defer onTerminal(*job)
	}

	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("job %s: %w", job.JobID, err)
	}

	if job.Status == models.JobStatusFailed {
		msg := job.Error
		if msg == "" {
			msg = DefaultJobFailureMessage
		}
		return nil, &JobFailedError{JobID: job.JobID, Message: msg}
	}

	return job.Result, nil
}

func jobPath(jobID string) string {
	return "/jobs/" + url.PathEscape(jobID)
}
