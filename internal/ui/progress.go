package ui

import (
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// ProgressBar shows byte progress of an artifact download.
// A total of -1 means the size is unknown and renders as a spinner.
type ProgressBar struct {
	bar       *progressbar.ProgressBar
	total     int64
	current   int64
	startTime time.Time
}

// NewProgressBar creates a download progress bar on stderr
func NewProgressBar(total int64, description string) *ProgressBar {
	return NewProgressBarWithWriter(total, description, os.Stderr)
}

// NewProgressBarWithWriter creates a progress bar that writes to a specific writer
func NewProgressBarWithWriter(total int64, description string, writer io.Writer) *ProgressBar {
	bar := progressbar.NewOptions64(
		total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetWriter(writer),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionEnableColorCodes(false),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(writer, "\n")
		}),
	)

	return &ProgressBar{
		bar:       bar,
		total:     total,
		startTime: time.Now(),
	}
}

// Write advances the bar by len(p), so the bar can sit in an io.MultiWriter
func (p *ProgressBar) Write(b []byte) (int, error) {
	p.current += int64(len(b))
	return p.bar.Write(b)
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() error {
	return p.bar.Finish()
}

// Current returns the bytes seen so far
func (p *ProgressBar) Current() int64 {
	return p.current
}

// GetPercentage returns current completion percentage (0-100), 0 when the size is unknown
func (p *ProgressBar) GetPercentage() float64 {
	if p.total <= 0 {
		return 0
	}
	return (float64(p.current) / float64(p.total)) * 100
}

// GetElapsedTime returns time elapsed since progress bar was created
func (p *ProgressBar) GetElapsedTime() time.Duration {
	return time.Since(p.startTime)
}
