package convert

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ziadkadry99/accessblock/internal/bionic"
	"github.com/ziadkadry99/accessblock/internal/logging"
	"github.com/ziadkadry99/accessblock/internal/progress"
)

// boldFirst marks every input with a fixed prefix so the output is easy to check.
var boldFirst = bionic.TransformerFunc(func(_ context.Context, content string, _ bionic.Controls) (string, error) {
	return "<b>B</b>" + content, nil
})

func newTestConverter(t bionic.Transformer, opts Options) *Converter {
	opts.Controls = bionic.DefaultControls()
	opts.Labels = bionic.DefaultLabels()
	return New(t, opts, logging.Discard())
}

func quietReporter() progress.Reporter {
	return &progress.CIReporter{Out: io.Discard, Description: "test"}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestConvertReplacesRegionOnly(t *testing.T) {
	c := newTestConverter(boldFirst, Options{})
	doc := `<html><body><nav>menu</nav><div id="region-main">Hello<br>world</div></body></html>`

	out, err := c.Convert(context.Background(), []byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	got := string(out)
	if !strings.Contains(got, `<div id="region-main"><p><b>B</b>Hello world </p></div>`) {
		t.Errorf("region not transformed:\n%s", got)
	}
	if !strings.Contains(got, "<nav>menu</nav>") {
		t.Errorf("content outside the region changed:\n%s", got)
	}
}

func TestConvertFallsBackToBody(t *testing.T) {
	c := newTestConverter(boldFirst, Options{Region: "missing"})
	out, err := c.Convert(context.Background(), []byte(`plain text`))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "<body><p><b>B</b>plain text </p></body>") {
		t.Errorf("body not transformed:\n%s", out)
	}
}

func TestConvertProviderFailure(t *testing.T) {
	failing := bionic.TransformerFunc(func(context.Context, string, bionic.Controls) (string, error) {
		return "", &bionic.TransformationError{StatusCode: 502, Err: errors.New("bad gateway")}
	})
	c := newTestConverter(failing, Options{})

	_, err := c.Convert(context.Background(), []byte(`<div id="region-main">x</div>`))
	var terr *bionic.TransformationError
	if !errors.As(err, &terr) || terr.StatusCode != 502 {
		t.Errorf("got %v, want TransformationError(502)", err)
	}
}

func TestConvertRejectsInvalidControls(t *testing.T) {
	c := New(boldFirst, Options{Controls: bionic.Controls{Fixation: 99}}, logging.Discard())
	_, err := c.Convert(context.Background(), []byte(`<p>x</p>`))
	if !errors.Is(err, bionic.ErrInvalidControls) {
		t.Errorf("got %v, want ErrInvalidControls", err)
	}
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.html"), "<p>a</p>")
	writeFile(t, filepath.Join(dir, "docs", "b.md"), "# b")
	writeFile(t, filepath.Join(dir, "docs", "deep", "c.htm"), "<p>c</p>")
	writeFile(t, filepath.Join(dir, "docs", "notes.txt"), "skip")
	writeFile(t, filepath.Join(dir, "a.bionic.html"), "already converted")

	files, err := Expand([]string{filepath.Join(dir, "**", "*"), filepath.Join(dir, "a.html")})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.html"),
		filepath.Join(dir, "docs", "b.md"),
		filepath.Join(dir, "docs", "deep", "c.htm"),
	}
	if strings.Join(files, ",") != strings.Join(want, ",") {
		t.Errorf("got %v, want %v", files, want)
	}

	if _, err := Expand([]string{filepath.Join(dir, "*.xml")}); err == nil {
		t.Error("expected an error for a pattern with no matches")
	}
}

func TestOutputPath(t *testing.T) {
	c := newTestConverter(boldFirst, Options{})
	if got := c.OutputPath(filepath.Join("site", "page.html")); got != filepath.Join("site", "page.bionic.html") {
		t.Errorf("got %s", got)
	}
	c = newTestConverter(boldFirst, Options{OutDir: "out"})
	if got := c.OutputPath(filepath.Join("site", "notes.md")); got != filepath.Join("out", "notes.bionic.html") {
		t.Errorf("got %s", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	page, err := RenderMarkdown([]byte("# Title\n\nSome *text*.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"))
	if err != nil {
		t.Fatal(err)
	}
	got := string(page)
	for _, want := range []string{`<main id="region-main">`, `<h1 id="title">Title</h1>`, "<em>text</em>", "<table>"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestRunConvertsBatch(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	writeFile(t, filepath.Join(dir, "one.html"), `<div id="region-main">one</div>`)
	writeFile(t, filepath.Join(dir, "two.md"), "two")
	writeFile(t, filepath.Join(dir, "bad.html"), `<div id="region-main">bad</div>`)

	var calls atomic.Int32
	tr := bionic.TransformerFunc(func(_ context.Context, content string, _ bionic.Controls) (string, error) {
		calls.Add(1)
		if strings.Contains(content, "bad") {
			return "", errors.New("provider down")
		}
		return "<b>B</b>" + content, nil
	})
	c := newTestConverter(tr, Options{OutDir: out, Concurrency: 2})

	files := []string{
		filepath.Join(dir, "bad.html"),
		filepath.Join(dir, "one.html"),
		filepath.Join(dir, "two.md"),
	}
	results, err := c.Run(context.Background(), files, quietReporter())
	if err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 3 {
		t.Errorf("provider called %d times, want 3", calls.Load())
	}
	if results[0].Err == nil {
		t.Error("bad.html should have failed")
	}
	if _, err := os.Stat(filepath.Join(out, "bad.bionic.html")); !os.IsNotExist(err) {
		t.Error("failed conversion wrote an output file")
	}

	data, err := os.ReadFile(filepath.Join(out, "two.bionic.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<b>B</b>") {
		t.Errorf("markdown output not transformed:\n%s", data)
	}
	if results[1].Output != filepath.Join(out, "one.bionic.html") || results[1].Err != nil {
		t.Errorf("one.html result %+v", results[1])
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.html"), "<p>a</p>")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestConverter(boldFirst, Options{})
	if _, err := c.Run(ctx, []string{filepath.Join(dir, "a.html")}, quietReporter()); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
