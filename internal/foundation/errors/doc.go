// Package errors provides the classified error primitives used across docsite.
//
// A ClassifiedError carries a category, a severity and structured context so
// the CLI can pick an exit code and log the failure without string matching.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryNavigation, "sidebar rejected").
//		WithContext("sidebar", name).
//		Build()
package errors
