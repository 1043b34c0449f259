package strata

import (
	"fmt"

	"github.com/xraph/go-utils/errs"
)

// =============================================================================
// ERROR CODES
// =============================================================================

const (
	// CodeInvalidFactory indicates a factory function is invalid or nil
	CodeInvalidFactory = "INVALID_FACTORY"

	// CodeBindingAlreadyExists indicates a binding is already registered for a key
	CodeBindingAlreadyExists = "BINDING_ALREADY_EXISTS"

	// CodeBindingNotFound indicates no binding is registered for a key
	CodeBindingNotFound = "BINDING_NOT_FOUND"

	// CodeConstructionFailed indicates a factory returned an error
	CodeConstructionFailed = "CONSTRUCTION_FAILED"

	// CodeCircularDependency indicates a circular dependency was detected
	CodeCircularDependency = "CIRCULAR_DEPENDENCY"

	// CodeScopeEnded indicates operation on an ended scope
	CodeScopeEnded = "SCOPE_ENDED"

	// CodeTypeMismatch indicates a type mismatch during resolution
	CodeTypeMismatch = "TYPE_MISMATCH"

	// CodeUnknownScope indicates a scope tag that was never declared
	CodeUnknownScope = "UNKNOWN_SCOPE"

	// CodeScopeViolation indicates a binding used outside the scopes that can see it
	CodeScopeViolation = "SCOPE_VIOLATION"

	// CodeSeedMissing indicates a seeded binding that the scope was opened without
	CodeSeedMissing = "SEED_MISSING"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

// ErrInvalidFactory is returned when a nil or invalid factory is provided.
var ErrInvalidFactory = errs.NewError(CodeInvalidFactory, "factory cannot be nil", nil)

// ErrBindingNotFoundSentinel matches any binding-not-found error.
var ErrBindingNotFoundSentinel = errs.NewError(CodeBindingNotFound, "binding not found", nil)

// ErrCircularDependencySentinel matches any circular dependency error.
var ErrCircularDependencySentinel = errs.NewError(CodeCircularDependency, "circular dependency", nil)

// ErrScopeEnded is returned when operations are attempted on an ended scope.
var ErrScopeEnded = errs.NewError(CodeScopeEnded, "scope has ended", nil)

// ErrTypeMismatchSentinel matches any type mismatch error.
var ErrTypeMismatchSentinel = errs.NewError(CodeTypeMismatch, "type mismatch", nil)

// ErrScopeViolationSentinel matches any scope violation error.
var ErrScopeViolationSentinel = errs.NewError(CodeScopeViolation, "scope violation", nil)

// ErrUnknownScopeSentinel matches any unknown scope error.
var ErrUnknownScopeSentinel = errs.NewError(CodeUnknownScope, "unknown scope", nil)

// ErrConstructionFailedSentinel matches any construction failure.
var ErrConstructionFailedSentinel = errs.NewError(CodeConstructionFailed, "construction failed", nil)

// ErrSeedMissingSentinel matches any missing seed error.
var ErrSeedMissingSentinel = errs.NewError(CodeSeedMissing, "seed missing", nil)

// =============================================================================
// ERROR CONSTRUCTORS
// =============================================================================

// ErrBindingAlreadyExists creates an error for a key registered twice.
func ErrBindingAlreadyExists(binding string) *errs.Error {
	return errs.NewError(
		CodeBindingAlreadyExists,
		fmt.Sprintf("binding '%s' already exists", binding),
		nil,
	).WithContext("binding", binding).(*errs.Error)
}

// ErrBindingNotFound creates an error for a key with no binding.
func ErrBindingNotFound(binding string) *errs.Error {
	return errs.NewError(
		CodeBindingNotFound,
		fmt.Sprintf("binding '%s' not found", binding),
		nil,
	).WithContext("binding", binding).(*errs.Error)
}

// NewConstructionError wraps the error a factory returned while building a binding in a scope.
func NewConstructionError(binding string, scope ScopeTag, cause error) *errs.Error {
	return errs.NewError(
		CodeConstructionFailed,
		fmt.Sprintf("binding '%s' could not be constructed in scope '%s'", binding, scope),
		cause,
	).WithContext("binding", binding).
		WithContext("scope", string(scope)).(*errs.Error)
}

// ErrCircularDependency creates an error for a dependency cycle.
func ErrCircularDependency(cycle []string) *errs.Error {
	return errs.NewError(
		CodeCircularDependency,
		fmt.Sprintf("circular dependency detected: %v", cycle),
		nil,
	).WithContext("cycle", cycle).(*errs.Error)
}

// ErrTypeMismatch creates an error for a resolved value of the wrong type.
func ErrTypeMismatch(binding string, actual any) *errs.Error {
	return errs.NewError(
		CodeTypeMismatch,
		fmt.Sprintf("binding '%s' type mismatch: got %T", binding, actual),
		nil,
	).WithContext("binding", binding).
		WithContext("actual_type", fmt.Sprintf("%T", actual)).(*errs.Error)
}

// ErrUnknownScope creates an error for an undeclared scope tag.
func ErrUnknownScope(tag ScopeTag) *errs.Error {
	return errs.NewError(
		CodeUnknownScope,
		fmt.Sprintf("scope '%s' is not declared", tag),
		nil,
	).WithContext("scope", string(tag)).(*errs.Error)
}

// ErrScopeViolation creates an error for a binding installed in a scope that
// is not visible from where it is requested.
func ErrScopeViolation(binding string, installed, requested ScopeTag) *errs.Error {
	return errs.NewError(
		CodeScopeViolation,
		fmt.Sprintf("binding '%s' is installed in scope '%s', which is not visible from '%s'", binding, installed, requested),
		nil,
	).WithContext("binding", binding).
		WithContext("installed", string(installed)).
		WithContext("requested", string(requested)).(*errs.Error)
}

// ErrSeedMissing creates an error for a seeded binding whose scope was opened without it.
func ErrSeedMissing(binding string, scope ScopeTag) *errs.Error {
	return errs.NewError(
		CodeSeedMissing,
		fmt.Sprintf("scope '%s' was opened without a seed for '%s'", scope, binding),
		nil,
	).WithContext("binding", binding).
		WithContext("scope", string(scope)).(*errs.Error)
}
