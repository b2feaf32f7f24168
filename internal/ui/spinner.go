package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var frames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧"}

// Spinner shows an animated message while a job is awaited.
// On non-TTY writers each distinct message is printed once on its own line.
type Spinner struct {
	w         io.Writer
	mu        sync.Mutex
	msg       string
	done      chan struct{}
	wg        sync.WaitGroup
	isTTY     bool
	startTime time.Time
	stopped   bool
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// StartSpinner begins displaying msg. Call Stop when the operation completes.
func StartSpinner(w io.Writer, msg string) *Spinner {
	s := &Spinner{
		w:         w,
		msg:       msg,
		done:      make(chan struct{}),
		isTTY:     IsTerminal(w),
		startTime: time.Now(),
	}

	if !s.isTTY {
		_, _ = fmt.Fprintf(w, "%s\n", msg)
		return s
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		i := 0
		for {
			select {
			case <-s.done:
				_, _ = fmt.Fprintf(s.w, "\r\033[K")
				return
			case <-ticker.C:
				s.mu.Lock()
				msg := s.msg
				s.mu.Unlock()
				elapsed := time.Since(s.startTime).Round(time.Second)
				_, _ = fmt.Fprintf(s.w, "\r\033[K%s %s %s", Dim.Render(frames[i%len(frames)]), msg, Dim.Render(elapsed.String()))
				i++
			}
		}
	}()

	return s
}

// UpdateMessage replaces the message shown by a running spinner
func (s *Spinner) UpdateMessage(msg string) {
	s.mu.Lock()
	changed := msg != s.msg
	s.msg = msg
	stopped := s.stopped
	s.mu.Unlock()

	if !s.isTTY && changed && !stopped {
		_, _ = fmt.Fprintf(s.w, "%s\n", msg)
	}
}

// Message returns the current message
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.msg
}

// Stop ends the animation and clears the line. Safe to call more than once.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	if !s.isTTY {
		return
	}
	close(s.done)
	s.wg.Wait()
}
