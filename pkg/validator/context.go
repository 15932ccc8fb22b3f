package validator

import (
	"fmt"

	"github.com/dmitrymomot/taskkit/pkg/taskerr"
)

// Context accumulates validation failures within one batch scope. It runs
// individual checks, captures their recognized failures instead of letting
// them propagate, and hands the collected records to the scope boundary.
//
// A Context is confined to a single goroutine. Each batch constructs its own
// instance; there is no shared state between scopes.
type Context struct {
	errors taskerr.Collection
}

// NewContext returns an empty accumulator. Most callers obtain one through
// Batch instead of constructing it directly.
func NewContext() *Context {
	return &Context{}
}

// Validate runs check and reports whether it passed. A recognized validation
// failure returned by check is recorded and swallowed: the caller's batch
// continues, and the aggregate surfaces at the scope boundary. Exactly one
// record is appended per failed call; a returned aggregate is flattened into
// its member records.
//
// Any other error returned by check is a bug in the checker wiring, not a
// data problem, and must not be absorbed into the batch: Validate panics
// with it, aborting the scope immediately.
func (c *Context) Validate(check func() error) bool {
	if err := check(); err != nil {
		c.record(err)
		return false
	}
	return true
}

// Value runs a checker that produces a normalized value. On success the
// value is returned with ok=true. A recognized failure is recorded exactly
// like Validate, and the zero value is returned with ok=false. Unrecognized
// errors panic, as in Validate.
//
// Value is the normalized-value counterpart to the boolean Validate
// convention; methods cannot be generic, hence the package-level function.
func Value[T any](c *Context, check func() (T, error)) (T, bool) {
	v, err := check()
	if err != nil {
		c.record(err)
		var zero T
		return zero, false
	}
	return v, true
}

// AddError records a caller-constructed failure directly, bypassing check
// execution. Used when a failure condition is detected by ad hoc logic rather
// than by one of the shared checkers. Nil records are ignored.
func (c *Context) AddError(err *taskerr.Error) {
	c.errors.Add(err)
}

// HasErrors reports whether any failure has been recorded.
func (c *Context) HasErrors() bool {
	return len(c.errors) > 0
}

// Errors returns the recorded failures in insertion order. The returned
// collection is a copy; mutating it does not affect the accumulator.
func (c *Context) Errors() taskerr.Collection {
	if len(c.errors) == 0 {
		return nil
	}
	out := make(taskerr.Collection, len(c.errors))
	copy(out, c.errors)
	return out
}

// Reset discards all recorded failures so the same scope can start over,
// e.g. to retry a sub-block. It does not end the scope.
func (c *Context) Reset() {
	c.errors = nil
}

// record captures a recognized failure or panics on anything else. The
// aggregate check runs first: a Collection unwraps into its members, so the
// single-record check would otherwise match its first element.
func (c *Context) record(err error) {
	if coll, ok := taskerr.AsCollection(err); ok {
		c.errors = append(c.errors, coll...)
		return
	}
	if e, ok := taskerr.AsError(err); ok {
		c.errors.Add(e)
		return
	}
	panic(fmt.Errorf("validator: check returned a non-validation error: %w", err))
}

// Batch runs fn with a fresh Context and finalizes the scope when fn
// completes normally: with at least one recorded failure the aggregate
// collection is returned, otherwise nil.
//
// An error returned by fn itself is an in-flight failure from the block
// body: Batch returns it unchanged and whatever was accumulated is
// discarded. Panics (including the one Validate raises for unrecognized
// checker errors) unwind through Batch unrecovered, so aggregation never
// masks a programming error.
func Batch(fn func(*Context) error) error {
	c := NewContext()
	if err := fn(c); err != nil {
		return err
	}
	if c.HasErrors() {
		return c.Errors()
	}
	return nil
}
