package wizard

import (
	"context"
	"fmt"
	"sync"

	apperrors "github.com/tsenako/console-service/pkg/util/errorutil"
)

// FileRef is an opaque handle for an uploaded file. The payload lives in
// external storage; only presence is checked after intake.
type FileRef struct {
	Name       string
	StorageKey string
	SizeBytes  int64
}

// Step declares one page of a multi-step form with its required fields.
type Step struct {
	Index    int
	Name     string
	Required []string
}

// Submitter receives the accumulated field values when the final step
// validates cleanly. Implementations persist the application, post to an
// API, etc.
type Submitter interface {
	Submit(ctx context.Context, values map[string]any) error
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, values map[string]any) error

func (f SubmitterFunc) Submit(ctx context.Context, values map[string]any) error {
	return f(ctx, values)
}

// Controller drives a multi-step form: it holds field values, validates
// the current step's required fields, moves between steps, and hands the
// full value map to a Submitter from the last step.
type Controller struct {
	mu         sync.Mutex
	steps      []Step
	current    int
	values     map[string]any
	errors     map[string]string
	submitting bool
	submitter  Submitter
}

// NewController builds a controller positioned on the first step.
func NewController(steps []Step, submitter Submitter) *Controller {
	return &Controller{
		steps:     steps,
		current:   1,
		values:    make(map[string]any),
		errors:    make(map[string]string),
		submitter: submitter,
	}
}

// Current returns the 1-based index of the active step.
func (c *Controller) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Value returns the stored value for a field.
func (c *Controller) Value(name string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[name]
}

// Values returns a copy of all stored field values.
func (c *Controller) Values() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// Errors returns a copy of the current step's validation errors.
func (c *Controller) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// SetField stores a value verbatim and clears any existing error for the
// field.
func (c *Controller) SetField(name string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[name] = value
	delete(c.errors, name)
}

// ValidateStep returns an error entry for every required field of the
// given step whose value is empty. An empty map means the step is clean.
func (c *Controller) ValidateStep(stepIndex int) map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateStepLocked(stepIndex)
}

func (c *Controller) validateStepLocked(stepIndex int) map[string]string {
	result := make(map[string]string)
	step, ok := c.stepAt(stepIndex)
	if !ok {
		return result
	}
	for _, field := range step.Required {
		if isEmpty(c.values[field]) {
			result[field] = fmt.Sprintf("%s is required", field)
		}
	}
	return result
}

// Advance validates the current step. On errors it stores them and stays
// put; otherwise it clears errors and moves forward, clamped to the last
// step.
func (c *Controller) Advance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	errs := c.validateStepLocked(c.current)
	if len(errs) > 0 {
		c.errors = errs
		return false
	}
	c.errors = make(map[string]string)
	if c.current < len(c.steps) {
		c.current++
	}
	return true
}

// Retreat moves one step back without re-validating, clamped to the
// first step.
func (c *Controller) Retreat() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current > 1 {
		c.current--
	}
}

// Submitting reports whether a submission is in flight.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Submit finalizes the form. It is only callable from the last step,
// re-validates that step, and hands the accumulated values to the
// submitter. A second submit while one is in flight is refused. Failures
// surface as SUBMISSION_FAILED; there is no automatic retry.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.current != len(c.steps) {
		c.mu.Unlock()
		return apperrors.NewInvalidState("submit is only available from the last step", map[string]any{
			"current_step": c.current,
			"last_step":    len(c.steps),
		})
	}
	if c.submitting {
		c.mu.Unlock()
		return apperrors.NewInvalidState("a submission is already in flight", nil)
	}
	errs := c.validateStepLocked(c.current)
	if len(errs) > 0 {
		c.errors = errs
		c.mu.Unlock()
		return apperrors.NewValidationError("required fields missing", errorDetails(errs))
	}
	c.submitting = true
	values := make(map[string]any, len(c.values))
	for k, v := range c.values {
		values[k] = v
	}
	c.mu.Unlock()

	err := c.submitter.Submit(ctx, values)

	c.mu.Lock()
	c.submitting = false
	c.mu.Unlock()

	if err != nil {
		return apperrors.NewSubmissionError(err)
	}
	return nil
}

func (c *Controller) stepAt(index int) (Step, bool) {
	if index < 1 || index > len(c.steps) {
		return Step{}, false
	}
	return c.steps[index-1], true
}

// isEmpty implements the per-type emptiness rules: empty string for
// text and enumerated selections, nil or zero-value reference for files.
func isEmpty(v any) bool {
	switch typed := v.(type) {
	case nil:
		return true
	case string:
		return typed == ""
	case *FileRef:
		return typed == nil
	case FileRef:
		return typed == (FileRef{})
	case bool:
		return !typed
	default:
		return false
	}
}

func errorDetails(errs map[string]string) map[string]any {
	details := make(map[string]any, len(errs))
	for field, msg := range errs {
		details[field] = msg
	}
	return details
}
