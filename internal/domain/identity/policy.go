package identity

// ══════════════════════════════════════════════════════════════════════════════
// AUTHORIZATION POLICY
// Authorization is a declared table rather than ad-hoc per-call checks, so the
// gating of every operation is a visible configuration choice. Notably the
// training registry is deliberately ungated while the course catalog is
// admin-only: that asymmetry is now an explicit policy entry.
// ══════════════════════════════════════════════════════════════════════════════

// Operation names a role-sensitive operation of the hub.
type Operation string

const (
	// OpAddCourse - append a course to the catalog.
	OpAddCourse Operation = "catalog.add_course"
	// OpMarkStudentProgress - teacher-assisted progress marking.
	OpMarkStudentProgress Operation = "progress.mark_student"
	// OpPostAnnouncement - post to the notification feed.
	OpPostAnnouncement Operation = "notification.post"
	// OpAddTraining - add a training resource.
	OpAddTraining Operation = "training.add"
)

// Policy maps operations to the roles allowed to perform them.
// An operation absent from the table is open to every role.
type Policy map[Operation][]Role

// DefaultPolicy returns the hub's standard authorization table.
func DefaultPolicy() Policy {
	return Policy{
		OpAddCourse:           {RoleAdmin},
		OpMarkStudentProgress: {RoleTeacher},
		OpPostAnnouncement:    {RoleTeacher, RoleAdmin},
		// OpAddTraining is intentionally unlisted: the registry is open.
	}
}

// Allows reports whether the role may perform the operation.
func (p Policy) Allows(role Role, op Operation) bool {
	allowed, gated := p[op]
	if !gated {
		return true
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// Gated reports whether the operation has a role restriction at all.
func (p Policy) Gated(op Operation) bool {
	_, ok := p[op]
	return ok
}
