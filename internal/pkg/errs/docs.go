// Package errs provides standardized error types for the tracking application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ObjectNotFoundError: For when an object cannot be found (or is soft-deleted)
//   - AccessDeniedError: For when an actor lacks tenant/ownership rights
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its bounds
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach improves error reporting and enables callers to
// classify failures with errors.Is and translate them into distinct outward
// signals (for example HTTP status codes).
package errs
