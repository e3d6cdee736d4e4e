package strand

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases. Typed errors below match
// these via errors.Is so callers can branch on the class without
// holding the concrete type.
var (
	// ErrNotFound is returned when an identity reference cannot be resolved.
	ErrNotFound = errors.New("strand: object not found")

	// ErrDuplicateIdentity is returned when adding an object whose
	// identity is already present in the document.
	ErrDuplicateIdentity = errors.New("strand: duplicate identity")

	// ErrAmbiguousName is returned when a display-name lookup matches
	// more than one object.
	ErrAmbiguousName = errors.New("strand: name is not unique")

	// ErrStructuralOrder indicates that a part's meets relations do not
	// form a single simple path over its slots.
	ErrStructuralOrder = errors.New("strand: slot order unresolvable")

	// ErrEmptyCandidates indicates a variable slot whose flattened
	// candidate set is empty.
	ErrEmptyCandidates = errors.New("strand: empty candidate set")

	// ErrDuplicateTarget indicates the same template was passed twice
	// to one expansion run.
	ErrDuplicateTarget = errors.New("strand: duplicate expansion target")

	// ErrScopeMismatch indicates an expansion target that does not
	// belong to the run's document.
	ErrScopeMismatch = errors.New("strand: expansion target out of scope")
)

// OrderReason classifies why slot ordering failed.
type OrderReason int

const (
	// OrderCycleOrDisconnected means no slot was unblocked: the meets
	// relations contain a cycle or a fragment disconnected from the path.
	OrderCycleOrDisconnected OrderReason = iota
	// OrderBranching means more than one slot was unblocked, or one
	// slot had several outgoing meets edges: the path branches.
	OrderBranching
	// OrderIncomplete means the meets relations were consumed without
	// covering every slot.
	OrderIncomplete
)

// String returns the reason in the form used by diagnostics.
func (r OrderReason) String() string {
	switch r {
	case OrderCycleOrDisconnected:
		return "cycle or disconnected fragment"
	case OrderBranching:
		return "branching path"
	}
	return "incomplete path"
}

// OrderError reports that a part's meets relations are not a single
// simple path. It is a structural defect in the input; retrying with
// the same input yields the same result.
type OrderError struct {
	// PartID is the identity of the ill-formed part.
	PartID string
	// Reason classifies the defect.
	Reason OrderReason
	// Remaining holds the identities of the slots that could not be
	// placed, for diagnostics.
	Remaining []string
}

// Error implements the error interface.
func (e *OrderError) Error() string {
	var b strings.Builder
	b.WriteString("strand: slot order unresolvable")
	if e.PartID != "" {
		b.WriteString(" for part ")
		b.WriteString(e.PartID)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason.String())
	if len(e.Remaining) > 0 {
		fmt.Fprintf(&b, " (%d slots unplaced)", len(e.Remaining))
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for OrderError.
func (e *OrderError) Is(target error) bool {
	return target == ErrStructuralOrder
}

// NewOrderError creates a new OrderError.
func NewOrderError(partID string, reason OrderReason, remaining []string) *OrderError {
	return &OrderError{PartID: partID, Reason: reason, Remaining: remaining}
}

// IsOrderError reports whether the error is an OrderError.
func IsOrderError(err error) bool {
	var orderErr *OrderError
	return errors.As(err, &orderErr) || errors.Is(err, ErrStructuralOrder)
}

// NotFoundError reports an identity reference that resolves to nothing.
type NotFoundError struct {
	// Identity is the dangling reference.
	Identity string
	// Referrer is the identity of the object holding the reference, if known.
	Referrer string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Referrer != "" {
		return fmt.Sprintf("strand: %s not found (referenced by %s)", e.Identity, e.Referrer)
	}
	return fmt.Sprintf("strand: %s not found", e.Identity)
}

// Is reports whether the target matches the sentinel error for NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(identity, referrer string) *NotFoundError {
	return &NotFoundError{Identity: identity, Referrer: referrer}
}

// IsNotFound reports whether the error is a NotFoundError.
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr) || errors.Is(err, ErrNotFound)
}

// EmptyCandidateError reports a variable slot whose flattened candidate
// set is empty. A zero-way choice is always an authoring defect, never
// a legitimate empty design space.
type EmptyCandidateError struct {
	TemplateID string
	SlotID     string
}

// Error implements the error interface.
func (e *EmptyCandidateError) Error() string {
	return fmt.Sprintf("strand: empty candidate set for slot %s of template %s", e.SlotID, e.TemplateID)
}

// Is reports whether the target matches the sentinel error for EmptyCandidateError.
func (e *EmptyCandidateError) Is(target error) bool {
	return target == ErrEmptyCandidates
}

// NewEmptyCandidateError creates a new EmptyCandidateError.
func NewEmptyCandidateError(templateID, slotID string) *EmptyCandidateError {
	return &EmptyCandidateError{TemplateID: templateID, SlotID: slotID}
}

// IsEmptyCandidate reports whether the error is an EmptyCandidateError.
func IsEmptyCandidate(err error) bool {
	var emptyErr *EmptyCandidateError
	return errors.As(err, &emptyErr) || errors.Is(err, ErrEmptyCandidates)
}

// DuplicateTargetError reports a template passed more than once to a
// single expansion run.
type DuplicateTargetError struct {
	TemplateID string
}

// Error implements the error interface.
func (e *DuplicateTargetError) Error() string {
	return fmt.Sprintf("strand: duplicate expansion target %s", e.TemplateID)
}

// Is reports whether the target matches the sentinel error for DuplicateTargetError.
func (e *DuplicateTargetError) Is(target error) bool {
	return target == ErrDuplicateTarget
}

// NewDuplicateTargetError creates a new DuplicateTargetError.
func NewDuplicateTargetError(templateID string) *DuplicateTargetError {
	return &DuplicateTargetError{TemplateID: templateID}
}

// IsDuplicateTarget reports whether the error is a DuplicateTargetError.
func IsDuplicateTarget(err error) bool {
	var dupErr *DuplicateTargetError
	return errors.As(err, &dupErr) || errors.Is(err, ErrDuplicateTarget)
}

// ScopeMismatchError reports an expansion target that is not owned by
// the run's document.
type ScopeMismatchError struct {
	TemplateID string
}

// Error implements the error interface.
func (e *ScopeMismatchError) Error() string {
	return fmt.Sprintf("strand: expansion target %s is not in the run's document", e.TemplateID)
}

// Is reports whether the target matches the sentinel error for ScopeMismatchError.
func (e *ScopeMismatchError) Is(target error) bool {
	return target == ErrScopeMismatch
}

// NewScopeMismatchError creates a new ScopeMismatchError.
func NewScopeMismatchError(templateID string) *ScopeMismatchError {
	return &ScopeMismatchError{TemplateID: templateID}
}

// IsScopeMismatch reports whether the error is a ScopeMismatchError.
func IsScopeMismatch(err error) bool {
	var scopeErr *ScopeMismatchError
	return errors.As(err, &scopeErr) || errors.Is(err, ErrScopeMismatch)
}
