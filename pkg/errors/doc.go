// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeUnavailable,
//	    "failed to list documents",
//	    cause,
//	    map[string]any{
//	        "collection": "projects",
//	        "store":      "sqlite",
//	    },
//	)
package errors
