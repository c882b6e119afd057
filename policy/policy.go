// Package policy holds the catalog access rules as pure decision functions
// over (identity, role, resource). Every mutating handler calls these on
// each request; decisions are never cached because role and ownership can
// change between calls.
package policy

import (
	"github.com/courseland/backend/models"
)

// Identity is the authenticated caller attached by the auth middleware.
type Identity struct {
	ID       uint
	Email    string
	Username string
	Role     models.Role
}

// ListScope narrows a catalog listing for a viewer. Nil fields mean no
// restriction.
type ListScope struct {
	CreatorID *uint
	Category  *models.Category
}

// CourseListScope decides which courses a viewer may list. Teachers see only
// their own courses; everyone else (including anonymous viewers) sees all.
// A category filter applies within that subset unless it is ALL.
func CourseListScope(viewer *Identity, category models.Category) ListScope {
	var scope ListScope

	if viewer != nil && viewer.Role == models.RoleTeacher {
		creatorID := viewer.ID
		scope.CreatorID = &creatorID
	}

	if category != "" && category != models.CategoryAll {
		c := category
		scope.Category = &c
	}

	return scope
}

// Decision is an explicit allow/deny with a reason for the deny case.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Reason: reason}
}

// CanMutateCourse permits updating or deleting a course to admins and to the
// course's creator.
func CanMutateCourse(viewer Identity, creatorID uint) Decision {
	if viewer.Role == models.RoleAdmin {
		return allow()
	}
	if viewer.ID == creatorID {
		return allow()
	}
	return deny("You can only modify your own courses")
}

// CanDeleteModule permits deleting a module only while no course links it.
func CanDeleteModule(linkedCourses int64) Decision {
	if linkedCourses == 0 {
		return allow()
	}
	return deny("Module is linked to courses and cannot be deleted")
}

// CanAdminister gates the admin-only user management endpoints.
func CanAdminister(viewer Identity) Decision {
	if viewer.Role == models.RoleAdmin {
		return allow()
	}
	return deny("Admin access required")
}
