// Package errs provides standardized error types for the bondi unit of work.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used by the coordinator, the storage adapters and the use cases.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: a required value is missing (misuse at a boundary)
//   - ValueIsInvalidError: a value is present but invalid
//   - ObjectNotFoundError: no stored state exists for an identifier
//   - ObjectAlreadyExistsError: an identifier is already taken
//   - StorageFailureError: the storage medium could not complete an operation
//   - BatchError: one or more aggregates failed during commit or rollback
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
package errs
