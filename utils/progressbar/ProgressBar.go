// Package progressbar implements functionality of printing a progress
// bar to a terminal
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// ProgressBar implements a concurrent progress bar. The bar is redrawn
// in a separate goroutine so that it can be displayed while the
// process it tracks runs.
type ProgressBar struct {
	out io.Writer

	// width is the number of characters wide that the bar is drawn
	width int

	// maxProgress is the number of times Increment() should be called
	// before the progress bar reaches 100%
	maxProgress int

	mu              sync.Mutex
	currentProgress int
	start           time.Time

	updateEvery time.Duration
	closeEvent  chan struct{}
	done        chan struct{}
	closed      bool
}

// New returns a new progress bar that is width characters wide and
// reaches 100% capacity after max Increment() calls. The bar is
// redrawn to out every updateEvery.
func New(out io.Writer, width, max int,
	updateEvery time.Duration) *ProgressBar {
	return &ProgressBar{
		out:         out,
		width:       width,
		maxProgress: max,
		updateEvery: updateEvery,
		closeEvent:  make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Increment increments the interal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ProgressBar) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.currentProgress < p.maxProgress {
		p.currentProgress++
	}
}

// Progress returns the number of calls to Increment so far, capped at
// the maximum progress
func (p *ProgressBar) Progress() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentProgress
}

// Display starts drawing the progress bar. It should only be called
// once.
func (p *ProgressBar) Display() {
	p.mu.Lock()
	p.start = time.Now()
	p.mu.Unlock()

	go func() {
		defer close(p.done)
		tick := time.NewTicker(p.updateEvery)
		defer tick.Stop()

		for {
			select {
			case <-tick.C:
				p.draw()

			case <-p.closeEvent:
				p.draw()
				return
			}
		}
	}()
}

// Close draws the progress bar a final time and stops displaying it
func (p *ProgressBar) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		panic("close: close on closed progress bar")
	}
	p.closed = true
	started := !p.start.IsZero()
	p.mu.Unlock()

	close(p.closeEvent)
	if started {
		<-p.done
	}
	fmt.Fprintln(p.out)
}

func (p *ProgressBar) draw() {
	fmt.Fprintf(p.out, "\r\033[K%v", p.String())
}

// String returns the current state of the progress bar
func (p *ProgressBar) String() string {
	p.mu.Lock()
	progress, elapsed := p.currentProgress, time.Since(p.start)
	p.mu.Unlock()

	fraction := 1.0
	if p.maxProgress > 0 {
		fraction = float64(progress) / float64(p.maxProgress)
	}
	filled := int(fraction * float64(p.width))

	var bar strings.Builder
	bar.WriteString("|")
	bar.WriteString(strings.Repeat("█", filled))
	bar.WriteString(strings.Repeat(" ", p.width-filled))
	fmt.Fprintf(&bar, "| [%.2f%% | elapsed: %v]", fraction*100,
		elapsed.Truncate(time.Millisecond))

	return bar.String()
}
