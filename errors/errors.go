// Package errors provides error handling for sdkforge.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints surfaced to the build-system user
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrCollision) {
//	    // handle atom collision
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapOnce    = crdb.UnwrapOnce
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for use across sdkforge.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrMalformedManifest indicates a manifest or IR file failed to decode
	// or is missing required fields
	ErrMalformedManifest = New("malformed manifest")

	// ErrCollision indicates two atoms share an identifier but differ in content
	ErrCollision = New("atom collision")

	// ErrMissingDependency indicates an atom depends on an identifier that is
	// not present in any loaded manifest
	ErrMissingDependency = New("missing dependency")

	// ErrCategoryViolation indicates an atom's publication category is weaker
	// than required, either by a dependent atom or by a minimum constraint
	ErrCategoryViolation = New("category violation")

	// ErrIncompatible indicates a FIDL diff detected at least one ABI-breaking
	// change between the compared libraries
	ErrIncompatible = New("incompatible change")

	// ErrToolNotFound indicates a prebuilt host tool could not be resolved
	ErrToolNotFound = New("tool not found")
)

// IsMalformedManifestError checks if an error is or wraps ErrMalformedManifest
func IsMalformedManifestError(err error) bool {
	return err != nil && Is(err, ErrMalformedManifest)
}

// IsCollisionError checks if an error is or wraps ErrCollision
func IsCollisionError(err error) bool {
	return err != nil && Is(err, ErrCollision)
}

// NewMalformedManifestError creates a malformed-manifest error with a formatted message
func NewMalformedManifestError(format string, args ...interface{}) error {
	return Wrap(ErrMalformedManifest, Newf(format, args...).Error())
}

// NewCollisionError creates a collision error with a formatted message
func NewCollisionError(format string, args ...interface{}) error {
	return Wrap(ErrCollision, Newf(format, args...).Error())
}
