package models

import "strings"

// Role identifies which part of the platform an account belongs to.
type Role string

const (
	RoleParent     Role = "parent"
	RoleTherapist  Role = "therapist"
	RoleTeacher    Role = "teacher"
	RoleResearcher Role = "researcher"
	RoleAdmin      Role = "admin"
)

// rolePrefixes maps each role to the prefix used for its public role ID.
var rolePrefixes = map[Role]string{
	RoleParent:     "PAR",
	RoleTherapist:  "THR",
	RoleTeacher:    "TEA",
	RoleResearcher: "RES",
	RoleAdmin:      "ADM",
}

// ParseRole normalizes a role string. The second return is false for unknown roles.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	_, ok := rolePrefixes[r]
	return r, ok
}

// IDPrefix returns the role ID prefix for r.
func (r Role) IDPrefix() (string, bool) {
	p, ok := rolePrefixes[r]
	return p, ok
}

func (r Role) Valid() bool {
	_, ok := rolePrefixes[r]
	return ok
}
