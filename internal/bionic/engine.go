package bionic

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Renderer applies a Render to the page. It is only ever called from the
// engine's Run goroutine.
type Renderer interface {
	Render(Render)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Render)

func (f RendererFunc) Render(r Render) { f(r) }

type eventKind int

const (
	evActivate eventKind = iota
	evDeactivate
	evToggle
	evResolve
)

type event struct {
	kind     eventKind
	content  string
	controls Controls
	ticket   uint64
	markup   string
	err      error
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithTimeout bounds each transformation. Zero, the default, waits for
// the provider indefinitely.
func WithTimeout(d time.Duration) EngineOption {
	return func(e *Engine) { e.timeout = d }
}

// Engine drives one Session from a single event loop. Control events
// and transformation results are all serialized through Run, so the
// session and the renderer never see concurrent calls.
type Engine struct {
	session     *Session
	transformer Transformer
	renderer    Renderer
	logger      *logrus.Entry
	timeout     time.Duration

	events chan event
	done   chan struct{}
}

// NewEngine creates an engine for one page view.
func NewEngine(session *Session, transformer Transformer, renderer Renderer, logger *logrus.Entry, opts ...EngineOption) *Engine {
	e := &Engine{
		session:     session,
		transformer: transformer,
		renderer:    renderer,
		logger:      logger,
		events:      make(chan event, 16),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Activate posts an activation with the region's current content and
// the control values read right now.
func (e *Engine) Activate(content string, controls Controls) {
	e.post(event{kind: evActivate, content: content, controls: controls})
}

// Deactivate posts a deactivation.
func (e *Engine) Deactivate() {
	e.post(event{kind: evDeactivate})
}

// Toggle posts a toggle.
func (e *Engine) Toggle(content string, controls Controls) {
	e.post(event{kind: evToggle, content: content, controls: controls})
}

// Done is closed when Run returns.
func (e *Engine) Done() <-chan struct{} { return e.done }

func (e *Engine) post(ev event) {
	select {
	case e.events <- ev:
	case <-e.done:
	}
}

// Run processes events until ctx is cancelled. Cancelling ctx also
// cancels any transformation in flight.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-e.events:
			e.handle(ctx, ev)
		}
	}
}

func (e *Engine) handle(ctx context.Context, ev event) {
	switch ev.kind {
	case evActivate, evToggle:
		var (
			r   Render
			req *Request
			err error
		)
		if ev.kind == evToggle {
			r, req, err = e.session.Toggle(ev.content, ev.controls)
		} else {
			r, req, err = e.session.Activate(ev.content, ev.controls)
		}
		if err != nil {
			r.Err = err
			e.logger.WithError(err).Debug("Activation rejected")
		}
		e.renderer.Render(r)
		if req != nil {
			go e.transform(ctx, *req)
		}

	case evDeactivate:
		e.renderer.Render(e.session.Deactivate())

	case evResolve:
		r, ok := e.session.Resolve(ev.ticket, ev.markup, ev.err)
		if !ok {
			e.logger.WithField("ticket", ev.ticket).Debug("Dropped stale transformation")
			return
		}
		if r.Err != nil {
			e.logger.WithError(r.Err).Warn("Transformation failed, original content restored")
		}
		e.renderer.Render(r)
	}
}

// transform runs one request and posts exactly one completion.
func (e *Engine) transform(ctx context.Context, req Request) {
	tctx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		tctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	markup, err := e.transformer.Transform(tctx, req.Content, req.Controls)
	e.post(event{kind: evResolve, ticket: req.Ticket, markup: markup, err: err})
}
