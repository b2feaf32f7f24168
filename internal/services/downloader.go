package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/trobanga/ladle/internal/lib"
	"github.com/trobanga/ladle/internal/ui"
)

// DownloadResult describes a downloaded job artifact
type DownloadResult struct {
	JobID string
	Path  string
	Bytes int64
}

// DownloadArtifact writes the result archive of a job into destinationDir.
// The file name comes from the Content-Disposition header, falling back to
// "<job_id>_result.zip". A failed download leaves no partial file behind.
func (c *JobClient) DownloadArtifact(ctx context.Context, jobID string, destinationDir string, showProgress bool) (*DownloadResult, error) {
	if err := os.MkdirAll(destinationDir, 0755); err != nil {
		return nil, lib.WrapError(lib.CategoryFileSystem, "failed to create download directory", err,
			fmt.Sprintf("Check that %s is writable", destinationDir))
	}

	path := jobPath(jobID) + "/download"
	resp, err := c.http.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	fileName := artifactFileName(resp.Header.Get("Content-Disposition"), jobID)
	destPath := filepath.Join(destinationDir, fileName)

	c.logger.Info("Downloading job artifact", "job_id", jobID, "file", destPath)

	destFile, err := os.Create(destPath)
	if err != nil {
		return nil, lib.WrapError(lib.CategoryFileSystem, "failed to create artifact file", err)
	}

	var w io.Writer = destFile
	var bar *ui.ProgressBar
	if showProgress {
		total := resp.ContentLength
		if total <= 0 {
			total = -1
		}
		bar = ui.NewProgressBar(total, "Downloading "+fileName)
		w = io.MultiWriter(destFile, bar)
	}

	n, copyErr := io.Copy(w, resp.Body)
	closeErr := destFile.Close()
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		_ = os.Remove(destPath)
		return nil, fmt.Errorf("download failed: %w", c.http.networkError("GET", path, copyErr))
	}
	if bar != nil {
		_ = bar.Finish()
	}

	c.logger.Info("Artifact downloaded", "job_id", jobID, "file", destPath, "size", ui.FormatBytes(n))
	return &DownloadResult{JobID: jobID, Path: destPath, Bytes: n}, nil
}

// artifactFileName extracts a safe file name from a Content-Disposition header
func artifactFileName(disposition string, jobID string) string {
	fallback := jobID + "_result.zip"
	if disposition == "" {
		return sanitizeFileName(fallback)
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return sanitizeFileName(fallback)
	}
	name := params["filename"]
	if unquoted, err := strconv.Unquote(name); err == nil {
		name = unquoted
	}
	name = sanitizeFileName(name)
	if name == "" {
		return sanitizeFileName(fallback)
	}
	return name
}

func sanitizeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}
