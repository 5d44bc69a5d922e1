// Package convert applies reading mode to HTML and Markdown files on disk.
// Each file gets its own bionic.Session, so the output is exactly what a
// page view would show after one activation.
package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/accessblock/internal/bionic"
	"github.com/ziadkadry99/accessblock/internal/progress"
	"github.com/ziadkadry99/accessblock/internal/region"
)

// OutputSuffix replaces the input extension on converted files.
const OutputSuffix = ".bionic.html"

// Options configure a batch conversion.
type Options struct {
	Region      string // element id to transform; empty means region.DefaultID
	OutDir      string // empty writes next to each input
	Concurrency int
	Controls    bionic.Controls
	Labels      bionic.Labels
}

// Result describes one converted file.
type Result struct {
	Input  string
	Output string
	Err    error
}

// Converter runs files through a Transformer.
type Converter struct {
	transformer bionic.Transformer
	opts        Options
	logger      *logrus.Entry
}

// New creates a Converter.
func New(t bionic.Transformer, opts Options, logger *logrus.Entry) *Converter {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.Region == "" {
		opts.Region = region.DefaultID
	}
	return &Converter{transformer: t, opts: opts, logger: logger}
}

// Expand resolves glob patterns (with ** support) into a sorted,
// de-duplicated list of HTML and Markdown files. A pattern without
// meta characters is taken literally.
func Expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %q matched no files", p)
		}
		for _, m := range matches {
			if seen[m] || !Supported(m) || strings.HasSuffix(m, OutputSuffix) {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

// Supported reports whether the file extension is one convert understands.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".md", ".markdown":
		return true
	}
	return false
}

// OutputPath returns where the converted form of input is written.
func (c *Converter) OutputPath(input string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + OutputSuffix
	if c.opts.OutDir != "" {
		return filepath.Join(c.opts.OutDir, base)
	}
	return filepath.Join(filepath.Dir(input), base)
}

// Run converts every file with bounded concurrency. A failing file does
// not stop the batch; its error is reported in its Result.
func (c *Converter) Run(ctx context.Context, files []string, reporter progress.Reporter) ([]Result, error) {
	if c.opts.OutDir != "" {
		if err := os.MkdirAll(c.opts.OutDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	results := make([]Result, len(files))
	var done atomic.Int64

	reporter.Start(len(files))
	defer reporter.Finish()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Concurrency)
	for i, f := range files {
		g.Go(func() error {
			out, err := c.File(gctx, f)
			results[i] = Result{Input: f, Output: out, Err: err}
			if err != nil {
				c.logger.WithError(err).WithField("file", f).Debug("conversion failed")
				reporter.Fail(filepath.Base(f), err)
			}
			reporter.Update(int(done.Add(1)), filepath.Base(f))
			// Cancellation is the only batch-level failure.
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// File converts a single input and returns the output path.
func (c *Converter) File(ctx context.Context, input string) (string, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", input, err)
	}
	if isMarkdown(input) {
		data, err = RenderMarkdown(data)
		if err != nil {
			return "", fmt.Errorf("rendering %s: %w", input, err)
		}
	}

	out, err := c.Convert(ctx, data)
	if err != nil {
		return "", fmt.Errorf("converting %s: %w", input, err)
	}

	path := c.OutputPath(input)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// Convert transforms the configured region of an HTML document.
func (c *Converter) Convert(ctx context.Context, document []byte) ([]byte, error) {
	doc, err := region.Parse(bytes.NewReader(document))
	if err != nil {
		return nil, err
	}
	target, err := doc.Lookup(c.opts.Region)
	if err != nil {
		return nil, err
	}
	current, err := target.InnerHTML()
	if err != nil {
		return nil, err
	}

	session := bionic.NewSession(c.opts.Labels)
	_, req, err := session.Activate(current, c.opts.Controls)
	if err != nil {
		return nil, err
	}
	markup, terr := c.transformer.Transform(ctx, req.Content, req.Controls)
	render, _ := session.Resolve(req.Ticket, markup, terr)
	if render.Err != nil {
		return nil, render.Err
	}

	if err := target.Replace(render.Content); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
