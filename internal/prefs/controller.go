package prefs

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Recorder receives a line for every successful persist.
type Recorder interface {
	RecordChange(ctx context.Context, userID, op, previous, current string) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithInstances enables per-instance scheme overrides.
func WithInstances(s *InstanceStore) Option {
	return func(c *Controller) { c.instances = s }
}

// WithRecorder sets the change recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// Controller mediates every preference mutation. Adjustments change the
// user's working preference; Persist writes selected fields to the
// repository.
type Controller struct {
	repo      Repository
	catalogue Catalogue
	instances *InstanceStore
	recorder  Recorder
	sessions  *Sessions
	logger    *logrus.Entry
}

// NewController creates a Controller. repo may be nil, in which case
// adjustments still work but Persist reports an UnavailableError.
func NewController(repo Repository, catalogue Catalogue, logger *logrus.Entry, opts ...Option) *Controller {
	c := &Controller{
		repo:      repo,
		catalogue: catalogue,
		sessions:  NewSessions(),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Catalogue returns the site-wide scheme catalogue.
func (c *Controller) Catalogue() Catalogue { return c.catalogue }

// Current returns the user's working preference, loading it from the
// repository on first access.
func (c *Controller) Current(ctx context.Context, userID string) (Preference, error) {
	if p, ok := c.sessions.Get(userID); ok {
		return p, nil
	}
	if c.repo == nil {
		return Preference{}, nil
	}

	stored, err := c.repo.Get(ctx, userID)
	if err != nil {
		return Preference{}, &UnavailableError{Op: "load", Err: err}
	}
	var p Preference
	if stored != nil {
		p = stored.Normalized()
	}
	c.sessions.Set(userID, p)
	return p, nil
}

// Affordances returns the working preference with the state of each control.
func (c *Controller) Affordances(ctx context.Context, userID string) (Affordances, error) {
	p, err := c.Current(ctx, userID)
	if err != nil {
		return Affordances{}, err
	}
	return affordancesFor(p), nil
}

func affordancesFor(p Preference) Affordances {
	step := DefaultFontStep
	if p.FontStep != nil {
		step = *p.FontStep
	}
	return Affordances{
		Preference:            p,
		FontPercent:           FontPercent(step),
		IncreaseDisabled:      step >= MaxFontStep,
		DecreaseDisabled:      step <= MinFontStep,
		ResetDisabled:         p.FontStep == nil,
		DefaultSchemeDisabled: p.ColourScheme == nil,
	}
}

// ChangeSize moves the working font step. Nothing is persisted.
func (c *Controller) ChangeSize(ctx context.Context, userID string, dir Direction) (FontStepResult, error) {
	p, err := c.Current(ctx, userID)
	if err != nil {
		return FontStepResult{}, err
	}
	res, err := ApplyFontStep(p.FontStep, dir)
	if err != nil {
		return FontStepResult{}, err
	}
	if res.Changed {
		p.FontStep = res.Step
		c.sessions.Set(userID, p.Normalized())
	}
	return res, nil
}

// ChangeColour selects the working colour scheme. Nothing is persisted.
func (c *Controller) ChangeColour(ctx context.Context, userID string, id int) (Preference, error) {
	scheme, err := ApplyColourScheme(id)
	if err != nil {
		return Preference{}, err
	}
	p, err := c.Current(ctx, userID)
	if err != nil {
		return Preference{}, err
	}
	p.ColourScheme = scheme
	p = p.Normalized()
	c.sessions.Set(userID, p)
	return p, nil
}

// Persist applies change to the stored record. A save copies the selected
// working fields into the record; a reset clears them from both the record
// and the working preference. A record left with only default fields is
// deleted. On failure the working preference is left untouched.
func (c *Controller) Persist(ctx context.Context, userID string, change Change) (Preference, error) {
	if err := change.Validate(); err != nil {
		return Preference{}, err
	}
	if c.repo == nil {
		return Preference{}, &UnavailableError{Op: string(change.Op), Err: ErrNoStore}
	}

	working, err := c.Current(ctx, userID)
	if err != nil {
		return Preference{}, err
	}
	stored, err := c.repo.Get(ctx, userID)
	if err != nil {
		return Preference{}, &UnavailableError{Op: string(change.Op), Err: err}
	}

	var record Preference
	if stored != nil {
		record = stored.Clone()
	}
	next := working.Clone()

	switch change.Op {
	case OpSave:
		if change.Size {
			record.FontStep = copyInt(working.FontStep)
		}
		if change.Scheme {
			record.ColourScheme = copyInt(working.ColourScheme)
		}
	case OpReset:
		if change.Size {
			record.FontStep = nil
			next.FontStep = nil
		}
		if change.Scheme {
			record.ColourScheme = nil
			next.ColourScheme = nil
		}
	}
	record = record.Normalized()

	op := string(change.Op)
	if record.IsDefault() {
		if stored != nil {
			err = c.repo.Delete(ctx, userID)
			op = "delete"
		}
	} else {
		err = c.repo.Upsert(ctx, userID, record)
	}
	if err != nil {
		c.logger.WithError(err).WithField("user_id", userID).Warn("Preference store unavailable")
		return Preference{}, &UnavailableError{Op: string(change.Op), Err: err}
	}

	// A user back at the defaults with nothing stored needs no session.
	if record.IsDefault() && next.IsDefault() {
		c.sessions.Forget(userID)
	} else {
		c.sessions.Set(userID, next)
	}

	previous := "default"
	if stored != nil {
		previous = stored.String()
	}
	c.logger.WithFields(logrus.Fields{
		"user_id":  userID,
		"op":       op,
		"previous": previous,
		"current":  record.String(),
	}).Info("Preference persisted")

	if c.recorder != nil {
		if err := c.recorder.RecordChange(ctx, userID, op, previous, record.String()); err != nil {
			c.logger.WithError(err).Warn("Failed to record preference change")
		}
	}
	return next, nil
}

// StyleSheet renders the user's working preference against the catalogue
// of the given block instance.
func (c *Controller) StyleSheet(ctx context.Context, userID, instanceID string) ([]byte, error) {
	p, err := c.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	return RenderStyleSheet(&p, c.instanceCatalogue(ctx, instanceID)), nil
}

func (c *Controller) instanceCatalogue(ctx context.Context, instanceID string) Catalogue {
	if c.instances == nil || instanceID == "" {
		return c.catalogue
	}
	cat, err := c.instances.Catalogue(ctx, instanceID, c.catalogue)
	if err != nil {
		c.logger.WithError(err).WithField("instance_id", instanceID).Warn("Falling back to site colour schemes")
		return c.catalogue
	}
	return cat
}

// InstanceSchemes returns the effective catalogue of an instance.
func (c *Controller) InstanceSchemes(ctx context.Context, instanceID string) ([]Scheme, error) {
	if c.instances == nil {
		return c.catalogue.Schemes(), nil
	}
	cat, err := c.instances.Catalogue(ctx, instanceID, c.catalogue)
	if err != nil {
		return nil, err
	}
	return cat.Schemes(), nil
}

// SetInstanceScheme stores a scheme override for one instance.
func (c *Controller) SetInstanceScheme(ctx context.Context, instanceID string, s Scheme) error {
	if c.instances == nil {
		return &UnavailableError{Op: "instance scheme", Err: ErrNoStore}
	}
	return c.instances.SetScheme(ctx, instanceID, s)
}
