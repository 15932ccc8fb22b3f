// Package taskerr defines the failure records shared by every validating
// component of taskkit: a single Error type tagged with a Kind, carrying a
// stable machine code, an optional field name, a human message, the offending
// value, and a free-form details mapping.
//
// The package deliberately models the failure variants as one tagged struct
// rather than a type per variant: consumers that care about the category
// branch on Kind, consumers that map errors to UI fields read Field and Code,
// and everything else treats records uniformly.
//
// # Architecture
//
// Two types cover all failure reporting:
//   - Error      – one failure record, built by a Kind-specific constructor
//     and refined with the chainable WithCode/WithValue/WithDetail setters
//   - Collection – the ordered aggregate a batch validation scope produces;
//     implements error and unwraps into its member records
//
// Records are plain values with no hidden state. Treat an Error as immutable
// once it has been recorded into a Collection or returned to a caller.
//
// # Usage
//
//	err := taskerr.NewField("email", "Email address must contain '@' symbol").
//	    WithCode("EMAIL_MISSING_AT").
//	    WithValue(raw)
//
//	var errs taskerr.Collection
//	errs.Add(err)
//	fmt.Println(errs.Format(true))
//
// # Error Handling
//
// Recognition goes through errors.As so wrapped records still match:
// IsValidation reports whether an error is a recognized failure at all,
// Is checks a specific Kind, and AsError/AsCollection extract the records.
// A Collection unwraps into its members, so errors.As(err, &fieldErr) finds
// the first matching record inside an aggregate.
package taskerr
