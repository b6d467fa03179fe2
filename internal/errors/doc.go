// Package apperrors defines the structured error types used across the
// application, keeping error classes (configuration, validation, calculation,
// timeout, memory) distinguishable while carrying the underlying cause.
//
// Errors wrap with fmt.Errorf and %w throughout; the wrapping types implement
// Unwrap, so errors.Is and errors.As see through the chain and exit-code
// mapping works no matter how deeply a cause is buried.
package apperrors
