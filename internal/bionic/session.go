package bionic

// State is the toggle state of a page view.
type State int

const (
	Inactive State = iota
	Loading
	Active
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Active:
		return "active"
	}
	return "inactive"
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Labels are the texts of the toggle control in each state, plus the
// notice shown when a transformation fails.
type Labels struct {
	Activate   string `json:"activate"`
	Loading    string `json:"loading"`
	Deactivate string `json:"deactivate"`
	Failure    string `json:"failure"`
}

// DefaultLabels returns the stock English labels.
func DefaultLabels() Labels {
	return Labels{
		Activate:   "Toggle Bionic Mode",
		Loading:    "This might take a moment.",
		Deactivate: "Return to Default Text",
		Failure:    "Bionic mode is unavailable right now. Please try again.",
	}
}

// Render tells an adapter what to display. Content is only meaningful
// when Replace is set.
type Render struct {
	State   State
	Label   string
	Content string
	Replace bool
	Notice  string
	Err     error
}

// Session is the toggle state of one page view. It performs no I/O; the
// caller runs the Requests it returns and hands results to Resolve. A
// Session is not safe for concurrent use.
type Session struct {
	labels Labels

	state       State
	snapshot    string
	captured    bool
	transformed string
	controls    Controls
	ticket      uint64
}

// NewSession creates an Inactive session.
func NewSession(labels Labels) *Session {
	return &Session{labels: labels, controls: DefaultControls()}
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Snapshot returns the original region content and whether it has been
// captured yet.
func (s *Session) Snapshot() (string, bool) { return s.snapshot, s.captured }

// Transformed returns the last normalized transformation, or "".
func (s *Session) Transformed() string { return s.transformed }

// Controls returns the control values of the latest activation.
func (s *Session) Controls() Controls { return s.controls }

// Activate starts a transformation of the region. current is the region's
// content right now; it is captured as the snapshot on the first
// activation of the page view only, and every request transforms the
// snapshot. While Loading or Active, Activate does nothing and returns a
// nil Request. Invalid controls leave the session Inactive.
func (s *Session) Activate(current string, controls Controls) (Render, *Request, error) {
	if s.state != Inactive {
		return s.current(), nil, nil
	}
	if err := controls.Validate(); err != nil {
		return s.current(), nil, err
	}

	if !s.captured {
		s.snapshot = current
		s.captured = true
	}
	s.controls = controls
	s.ticket++
	s.state = Loading

	req := &Request{Ticket: s.ticket, Content: s.snapshot, Controls: controls}
	return Render{State: Loading, Label: s.labels.Loading}, req, nil
}

// Deactivate restores the snapshot. It never fails and needs no network
// call. A request still in flight is invalidated.
func (s *Session) Deactivate() Render {
	if s.state == Inactive {
		return s.current()
	}
	// A later Resolve for the outstanding ticket becomes stale.
	s.ticket++
	s.state = Inactive
	return s.restore()
}

// Toggle activates an Inactive session and deactivates an Active one.
// While Loading it is ignored like any other activation.
func (s *Session) Toggle(current string, controls Controls) (Render, *Request, error) {
	if s.state == Active {
		return s.Deactivate(), nil, nil
	}
	return s.Activate(current, controls)
}

// Resolve completes the request identified by ticket. Stale completions
// are dropped and reported with ok=false. A failed or malformed result
// returns the session to Inactive with the snapshot restored.
func (s *Session) Resolve(ticket uint64, markup string, err error) (r Render, ok bool) {
	if s.state != Loading || ticket != s.ticket {
		return Render{}, false
	}

	if err == nil {
		if verr := ValidateMarkup(markup); verr != nil {
			err = &TransformationError{Err: verr}
		}
	}
	if err != nil {
		s.state = Inactive
		r = s.restore()
		r.Notice = s.labels.Failure
		r.Err = err
		return r, true
	}

	s.transformed = Normalize(markup)
	s.state = Active
	return Render{State: Active, Label: s.labels.Deactivate, Content: s.transformed, Replace: true}, true
}

func (s *Session) restore() Render {
	return Render{State: Inactive, Label: s.labels.Activate, Content: s.snapshot, Replace: s.captured}
}

func (s *Session) current() Render {
	switch s.state {
	case Loading:
		return Render{State: Loading, Label: s.labels.Loading}
	case Active:
		return Render{State: Active, Label: s.labels.Deactivate}
	}
	return Render{State: Inactive, Label: s.labels.Activate}
}
