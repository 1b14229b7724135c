package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	appErrors "github.com/campusware/university-api/pkg/errors"
)

// ReferenceKind names an entity kind for foreign reference checks.
type ReferenceKind string

const (
	RefAdministrator ReferenceKind = "administrator"
	RefFaculty       ReferenceKind = "faculty"
	RefDepartment    ReferenceKind = "department"
	RefMajor         ReferenceKind = "major"
	RefInstructor    ReferenceKind = "instructor"
	RefCourse        ReferenceKind = "course"
	RefStudent       ReferenceKind = "student"
)

// ExistenceChecker reports whether a row with the given ID exists.
type ExistenceChecker interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
}

// ReferenceResolver validates foreign references before a mutation stores
// them. A malformed ID is rejected before touching the database; a
// well-formed ID pointing at nothing is a dangling reference, reported as a
// 400-level failure rather than 404.
type ReferenceResolver struct {
	checkers map[ReferenceKind]ExistenceChecker
}

// NewReferenceResolver constructs a resolver over the per-entity repositories.
func NewReferenceResolver(checkers map[ReferenceKind]ExistenceChecker) *ReferenceResolver {
	if checkers == nil {
		checkers = map[ReferenceKind]ExistenceChecker{}
	}
	return &ReferenceResolver{checkers: checkers}
}

// CheckSyntax validates that the ID is well formed without hitting storage.
func (r *ReferenceResolver) CheckSyntax(kind ReferenceKind, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return appErrors.Clone(appErrors.ErrInvalidID, fmt.Sprintf("malformed %s id", kind))
	}
	return nil
}

// Resolve validates the ID syntax and confirms the referenced row exists.
func (r *ReferenceResolver) Resolve(ctx context.Context, kind ReferenceKind, id string) error {
	if err := r.CheckSyntax(kind, id); err != nil {
		return err
	}
	checker, ok := r.checkers[kind]
	if !ok {
		return appErrors.Wrap(fmt.Errorf("no checker registered for %s", kind),
			appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve reference")
	}
	exists, err := checker.ExistsByID(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
			fmt.Sprintf("failed to resolve %s reference", kind))
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrInvalidReference, fmt.Sprintf("%s %s does not exist", kind, id))
	}
	return nil
}
