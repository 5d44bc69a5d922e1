// Package progress reports batch progress for the convert command.
// Reporters are safe for concurrent use; workers report as they finish.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback while converting a batch of files.
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	Fail(name string, err error)
	Finish()
}

// NewReporter returns a CIReporter when running under CI and a
// TerminalReporter otherwise.
func NewReporter(description string) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{Out: os.Stderr, Description: description}
	}
	return &TerminalReporter{Description: description}
}

// TerminalReporter displays a progress bar on stderr. Failures are
// counted and summarised when the bar finishes.
type TerminalReporter struct {
	Description string

	mu     sync.Mutex
	bar    *progressbar.ProgressBar
	failed int
}

func (r *TerminalReporter) Start(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = 0
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(r.Description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(current int, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar == nil {
		return
	}
	r.bar.Describe(fmt.Sprintf("%s %s", r.Description, message))
	_ = r.bar.Set(current)
}

func (r *TerminalReporter) Fail(string, error) {
	r.mu.Lock()
	r.failed++
	r.mu.Unlock()
}

func (r *TerminalReporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar == nil {
		return
	}
	_ = r.bar.Finish()
	if r.failed > 0 {
		fmt.Fprintf(os.Stderr, "%s: %d failed\n", r.Description, r.failed)
	}
}

// CIReporter prints one line per event, suitable for CI logs.
type CIReporter struct {
	Out         io.Writer
	Description string

	mu    sync.Mutex
	total int
}

func (r *CIReporter) Start(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total = total
	fmt.Fprintf(r.Out, "%s: %d files\n", r.Description, total)
}

func (r *CIReporter) Update(current int, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.Out, "[%d/%d] %s\n", current, r.total, message)
}

func (r *CIReporter) Fail(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.Out, "FAILED %s: %v\n", name, err)
}

func (r *CIReporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.Out, "%s: done\n", r.Description)
}
