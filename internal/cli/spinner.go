package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames cycle on stderr while a slow stage runs.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a status line on stderr while a pipeline stage
// (layout, rasterization) runs. It stops on demand or when its context
// is cancelled, and always clears the line it drew.
type Spinner struct {
	message string
	ctx     context.Context
	cancel  context.CancelFunc
	stop    sync.Once
	done    chan struct{}
	drained chan struct{}
	mu      sync.Mutex
}

// newSpinnerWithContext creates a spinner tied to ctx; cancelling the
// context ends the animation without further calls.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message: message,
		ctx:     sctx,
		cancel:  cancel,
		done:    make(chan struct{}),
		drained: make(chan struct{}),
	}
}

// Start begins drawing frames in a background goroutine.
func (s *Spinner) Start() {
	go func() {
		defer close(s.drained)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				s.mu.Lock()
				fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop ends the animation, waits for the draw goroutine to exit, and
// clears the status line. Safe to call more than once.
func (s *Spinner) Stop() {
	s.cancel()
	s.stop.Do(func() { close(s.done) })
	<-s.drained
	s.clearLine()
}

// StopWithError stops the spinner and replaces the line with an error.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context ended the animation.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
