// Package errs holds the error taxonomy shared by the domain, the commands and
// the adapters.
//
// Every kind has a sentinel (ErrObjectNotFound, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrValueIsRequired, ErrVersionIsInvalid) and a struct
// that unwraps to it, so callers branch with errors.Is:
//
//	if errors.Is(err, errs.ErrObjectNotFound) { ... }
//
// The "WithCause" constructors keep the underlying reason. A cause is also
// matched by errors.Is, which lets a domain sentinel such as a refused status
// transition travel inside a ValueIsInvalidError.
//
// IsValidation groups the three input kinds the chat gateways answer with a
// hint and a repeated prompt.
package errs
