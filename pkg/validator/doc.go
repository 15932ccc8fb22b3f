// Package validator provides batch validation for the taskkit data model:
// a scope that runs multiple independent field checks, suppresses each one's
// immediate failure, and surfaces every problem at once as a single aggregate
// error instead of failing fast on the first bad field.
//
// The package also ships the shared field checkers (email, username, hex
// color, future date, non-empty string), each a pure function from a raw
// input to a normalized value or a taskerr failure record with a stable
// machine code.
//
// # Architecture
//
// Two pieces form the batching mechanism:
//   - Context – a mutable accumulator, live within one scope, that runs
//     checks via Validate/Value and records their failures in insertion
//     order instead of propagating them
//   - Batch   – the scope boundary: constructs a Context, runs the caller's
//     block, and on normal completion converts the accumulated records into
//     one taskerr.Collection
//
// Checkers live in per-family files (string_checks.go, format_checks.go,
// identifier_checks.go, date_checks.go) and hold no state; a Context is the
// only mutable value, owned by exactly one scope.
//
// # Usage
//
//	err := validator.Batch(func(vc *validator.Context) error {
//	    vc.Validate(func() error {
//	        _, err := validator.Username(rawUsername)
//	        return err
//	    })
//	    email, ok := validator.Value(vc, func() (string, error) {
//	        return validator.Email(rawEmail)
//	    })
//	    if ok && banned[email] {
//	        vc.AddError(taskerr.NewField("email", "domain is not allowed").
//	            WithCode("TEMP_EMAIL_NOT_ALLOWED"))
//	    }
//	    return nil
//	})
//
// A non-nil err is a taskerr.Collection holding every failure from the scope
// in the order the checks ran; render it with Format or map it per field.
//
// # Error Handling
//
// Only recognized validation failures (taskerr records and collections) are
// captured. Any other error returned by a check signals a bug in the checker
// wiring: Validate and Value panic with it so the scope aborts immediately
// instead of absorbing it into the batch. An error returned by the block
// body itself passes through Batch unchanged and discards the accumulated
// records.
//
// # Concurrency
//
// A Context must not be shared across goroutines. Concurrent batches each
// call Batch and get their own accumulator; the checkers themselves are
// stateless and safe to call from anywhere.
package validator
