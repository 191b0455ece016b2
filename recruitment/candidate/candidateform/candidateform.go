package candidateform

import (
	"context"
	"sync"

	"github.com/Abraxas-365/seeker/pkg/errx"
	"github.com/Abraxas-365/seeker/pkg/kernel"
	"github.com/Abraxas-365/seeker/pkg/logx"
	"github.com/Abraxas-365/seeker/recruitment/candidate"
)

// Dispatcher runs a submit intent in the background and reports back through
// done. Implementations must not block the caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, intent candidate.SubmitIntent, done func(candidate.Record, error))
}

// Fetcher loads the persisted candidate of a user
type Fetcher interface {
	FetchCandidate(ctx context.Context, userID kernel.UserID) (candidate.Record, error)
}

// Controller owns one editing session of the candidate wizard
type Controller struct {
	mu         sync.Mutex
	dispatcher Dispatcher

	step   candidate.Step
	record candidate.FormRecord
	errors candidate.ValidationErrors

	existingID   kernel.CandidateID
	resumeOnFile bool
	inFlight     bool
	closed       bool
}

// NewController starts a session on the first step with an empty record
func NewController(dispatcher Dispatcher) *Controller {
	return &Controller{
		dispatcher: dispatcher,
		step:       candidate.FirstStep,
		record:     candidate.NewFormRecord(),
		errors:     candidate.ValidationErrors{},
	}
}

// ============================================================================
// Field editing
// ============================================================================

// SetField overwrites a text field and clears its error without re-validating
func (c *Controller) SetField(name candidate.FieldName, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.record.Set(name, value); err != nil {
		return err
	}
	delete(c.errors, name)
	return nil
}

// SetResume replaces the attachment. nil removes it.
func (c *Controller) SetResume(att *candidate.Attachment) error {
	if att.Size() > candidate.MaxResumeSize {
		return candidate.ErrResumeTooLarge().
			WithDetail("size", att.Size()).
			WithDetail("max_size", candidate.MaxResumeSize)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.record.Resume = att
	delete(c.errors, candidate.FieldResume)
	return nil
}

// ============================================================================
// Navigation
// ============================================================================

// Next validates the current step and advances when it passes. It reports
// whether the step changed.
func (c *Controller) Next() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	errs := candidate.Validate(c.step, c.record, c.resumeOnFile)
	if !errs.Empty() {
		c.errors = errs
		return false
	}
	c.errors = errs
	if c.step >= candidate.LastStep {
		return false
	}
	c.step++
	return true
}

// Previous goes back one step. Errors are left as they are.
func (c *Controller) Previous() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step <= candidate.FirstStep {
		return false
	}
	c.step--
	return true
}

// ============================================================================
// Loading
// ============================================================================

// Load merges a fetched record into the form. Every text field is replaced by
// its normalized value and the attachment is dropped, so loading the same
// record twice yields the same state.
func (c *Controller) Load(rec candidate.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load(rec)
}

func (c *Controller) load(rec candidate.Record) {
	for _, spec := range candidate.TextFields() {
		_ = c.record.Set(spec.Name, rec.Text(spec.Name))
	}
	c.record.Resume = nil
	c.existingID = rec.ID()
	c.resumeOnFile = rec.HasResume()
}

// Hydrate fetches the user's persisted candidate and loads it. A missing
// record leaves the form empty so the next submit creates one. Results that
// arrive after Close are dropped.
func (c *Controller) Hydrate(ctx context.Context, fetcher Fetcher, userID kernel.UserID) error {
	if userID.IsEmpty() {
		return candidate.ErrNotAuthenticated()
	}

	rec, err := fetcher.FetchCandidate(ctx, userID)
	if err != nil {
		if errx.IsCode(err, candidate.CodeCandidateNotFound) {
			logx.Debugf("no candidate on file for user %s", userID)
			return nil
		}
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		logx.Debugf("dropping candidate fetched after close for user %s", userID)
		return nil
	}
	c.load(rec)
	return nil
}

// Close ends the session. Pending fetches and submits still complete but
// their results are no longer applied.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// ============================================================================
// Submission
// ============================================================================

// Submit checks the identity and the resume step, then hands a create or
// update intent to the dispatcher and returns without waiting for it.
func (c *Controller) Submit(ctx context.Context, identity kernel.Identity) (*candidate.SubmitIntent, error) {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return nil, candidate.ErrSessionClosed()
	}
	if err := candidate.Authorize(identity); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	if c.inFlight {
		c.mu.Unlock()
		return nil, candidate.ErrSubmissionInFlight()
	}

	errs := candidate.Validate(candidate.StepResume, c.record, c.resumeOnFile)
	c.errors = errs
	if !errs.Empty() {
		c.mu.Unlock()
		return nil, candidate.ErrFormInvalid(errs)
	}

	intent := candidate.NewSubmitIntent(c.record, identity.UserID, c.existingID)
	c.inFlight = true
	c.mu.Unlock()

	logx.Infof("dispatching %s intent for user %s", intent.Kind, identity.UserID)
	c.dispatcher.Dispatch(ctx, intent, c.complete)
	return &intent, nil
}

func (c *Controller) complete(rec candidate.Record, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight = false
	if c.closed {
		return
	}
	if err != nil {
		logx.Warnf("candidate submit failed: %v", err)
		return
	}
	if rec == nil {
		return
	}
	if id := rec.ID(); !id.IsEmpty() {
		c.existingID = id
	}
	if rec.HasResume() {
		c.resumeOnFile = true
	}
}

// ============================================================================
// Accessors
// ============================================================================

func (c *Controller) Step() candidate.Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Errors returns a copy of the current validation errors
func (c *Controller) Errors() candidate.ValidationErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors.Clone()
}

// Record returns a copy of the form values
func (c *Controller) Record() candidate.FormRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record.Clone()
}

func (c *Controller) CandidateID() kernel.CandidateID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.existingID
}

func (c *Controller) ResumeOnFile() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resumeOnFile
}

// Submitting reports whether a submit is still awaiting its result
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}
