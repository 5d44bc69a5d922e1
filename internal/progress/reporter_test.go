package progress

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Out: &buf, Description: "Converting"}

	r.Start(2)
	r.Update(1, "a.html")
	r.Fail("b.md", errors.New("provider down"))
	r.Update(2, "b.md")
	r.Finish()

	want := "Converting: 2 files\n[1/2] a.html\nFAILED b.md: provider down\n[2/2] b.md\nConverting: done\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestNewReporterInCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter("Converting").(*CIReporter); !ok {
		t.Error("expected a CIReporter when CI is set")
	}
}

func TestTerminalReporterWithoutStart(t *testing.T) {
	r := &TerminalReporter{Description: "Converting"}
	// Update and Finish before Start must not panic.
	r.Update(1, strings.Repeat("x", 3))
	r.Finish()
}

func TestCIReporterConcurrentUpdates(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Out: &buf, Description: "Converting"}
	r.Start(20)

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Update(i, "f")
		}(i)
	}
	wg.Wait()
	r.Finish()

	if got := strings.Count(buf.String(), "\n"); got != 22 {
		t.Errorf("got %d lines, want 22", got)
	}
}
