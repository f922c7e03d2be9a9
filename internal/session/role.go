// ABOUTME: Role type and privilege ordering for session role checks
// ABOUTME: SuperAdmin outranks Admin which outranks User; other roles only match exactly

package session

import (
	"fmt"
	"strings"
)

// Role is a granted role name. Roles outside the known set are kept
// verbatim and compare by exact match only.
type Role string

const (
	RoleUser       Role = "User"
	RoleAdmin      Role = "Admin"
	RoleSuperAdmin Role = "SuperAdmin"
)

// roleRank defines the privilege level for each known role.
// Higher value means more privilege.
var roleRank = map[Role]int{
	RoleUser:       1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
}

// KnownRoles lists the ranked roles from least to most privileged.
var KnownRoles = []Role{RoleUser, RoleAdmin, RoleSuperAdmin}

// ParseRole canonicalizes a role name. The backend spells the top role
// "Super Admin"; both spellings map to RoleSuperAdmin. Anything else is
// returned unchanged apart from surrounding whitespace.
func ParseRole(s string) Role {
	s = strings.TrimSpace(s)
	if s == "Super Admin" {
		return RoleSuperAdmin
	}
	return Role(s)
}

// MustParseKnownRole is ParseRole for configuration values that must name
// a ranked role. Panics otherwise so that misconfiguration is caught at startup.
func MustParseKnownRole(s string) Role {
	r := ParseRole(s)
	if !r.Ranked() {
		panic(fmt.Sprintf("session: unknown role %q; valid roles: %v", s, KnownRoles))
	}
	return r
}

// Ranked reports whether the role takes part in the hierarchy.
func (r Role) Ranked() bool {
	_, ok := roleRank[r]
	return ok
}

// Satisfies reports whether holding r is enough for a check requiring required.
func (r Role) Satisfies(required Role) bool {
	have, okHave := roleRank[r]
	need, okNeed := roleRank[required]
	if okHave && okNeed {
		return have >= need
	}
	return r == required
}

// Label is the human-facing spelling used by the backend.
func (r Role) Label() string {
	if r == RoleSuperAdmin {
		return "Super Admin"
	}
	return string(r)
}

func (r Role) String() string {
	return string(r)
}
