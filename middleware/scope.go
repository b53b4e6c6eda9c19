package middleware

import (
	"net/http"

	"asdcare/models"

	"github.com/gin-gonic/gin"
)

// Resource names a collection whose reads are narrowed per role.
type Resource string

const (
	ResourceAppointments Resource = "appointments"
	ResourceChildren     Resource = "children"
	ResourceAnalytics    Resource = "analytics"
)

// Scope narrows a query to the documents a caller may see. An empty Field
// means no ownership filter.
type Scope struct {
	Field      string
	Value      string
	Anonymized bool
	Denied     bool
}

// Filter returns the ownership filter for the scope, or nil when unrestricted.
func (s Scope) Filter() map[string]string {
	if s.Field == "" {
		return nil
	}
	return map[string]string{s.Field: s.Value}
}

type scopeRule struct {
	field      string
	anonymized bool
	denied     bool
}

var scopeTable = map[Resource]map[models.Role]scopeRule{
	ResourceAppointments: {
		models.RoleParent:    {field: "parentId"},
		models.RoleTherapist: {field: "therapistId"},
		models.RoleAdmin:     {},
	},
	ResourceChildren: {
		models.RoleParent:     {field: "parentId"},
		models.RoleTherapist:  {field: "therapistId"},
		models.RoleTeacher:    {denied: true},
		models.RoleResearcher: {anonymized: true},
		models.RoleAdmin:      {},
	},
	ResourceAnalytics: {
		models.RoleAdmin:      {},
		models.RoleResearcher: {anonymized: true},
		models.RoleTherapist:  {field: "therapistId", anonymized: true},
		models.RoleParent:     {denied: true},
		models.RoleTeacher:    {denied: true},
	},
}

// ScopeFor computes the scope of role on resource. ok is false when the
// table has no entry for the pair.
func ScopeFor(resource Resource, role models.Role, userID string) (Scope, bool) {
	rule, ok := scopeTable[resource][role]
	if !ok {
		if resource == ResourceAnalytics {
			return Scope{Denied: true}, true
		}
		return Scope{}, false
	}
	s := Scope{Field: rule.field, Anonymized: rule.anonymized, Denied: rule.denied}
	if s.Field != "" {
		s.Value = userID
	}
	return s, true
}

const ctxScope = "scope"

// ResourceScope stores the caller's Scope for resource in the context and
// refuses denied callers.
func ResourceScope(resource Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := ScopeFor(resource, RoleOf(c), UserID(c))
		if !ok {
			c.Next()
			return
		}
		if s.Denied {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Set(ctxScope, s)
		c.Next()
	}
}

// ScopeOf returns the scope set by ResourceScope.
func ScopeOf(c *gin.Context) (Scope, bool) {
	v, ok := c.Get(ctxScope)
	if !ok {
		return Scope{}, false
	}
	s, ok := v.(Scope)
	return s, ok
}
