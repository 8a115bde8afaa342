package repository

import (
	"strings"

	"github.com/google/uuid"
	"github.com/straye-as/sales-crm-api/internal/hierarchy"
	"gorm.io/gorm"
)

// MaxPageSize is the maximum allowed page size for paginated queries
const MaxPageSize = 200

// SortOrder represents the sort direction
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// SortConfig holds sorting configuration for list queries
type SortConfig struct {
	Field string    // API field name
	Order SortOrder // asc or desc
}

// ParseSortOrder parses a string into SortOrder, defaulting to desc
func ParseSortOrder(s string) SortOrder {
	if strings.ToLower(s) == "asc" {
		return SortOrderAsc
	}
	return SortOrderDesc
}

// BuildOrderClause maps an API sort field through fieldMap to a column.
// Fields outside the whitelist fall back to defaultColumn.
func BuildOrderClause(config SortConfig, fieldMap map[string]string, defaultColumn string) string {
	column, ok := fieldMap[config.Field]
	if !ok {
		column = defaultColumn
	}

	order := "DESC"
	if config.Order == SortOrderAsc {
		order = "ASC"
	}
	return column + " " + order
}

// Owners restricts a query to a set of identity subjects.
// The zero value matches nothing.
type Owners struct {
	All bool
	IDs []uuid.UUID
}

// AllOwners matches every row
func AllOwners() Owners {
	return Owners{All: true}
}

// OwnersOf matches rows owned by ids; an empty list matches nothing
func OwnersOf(ids ...uuid.UUID) Owners {
	return Owners{IDs: ids}
}

// ScopeOwners converts a visibility scope into an owner restriction on user IDs
func ScopeOwners(scope hierarchy.Scope) Owners {
	if scope.Unrestricted {
		return AllOwners()
	}
	return OwnersOf(scope.UserIDs()...)
}

// Apply adds the restriction to query. An empty restriction fails closed.
func (o Owners) Apply(query *gorm.DB, column string) *gorm.DB {
	switch {
	case o.All:
		return query
	case len(o.IDs) == 0:
		return query.Where("1 = 0")
	default:
		return query.Where(column+" IN ?", o.IDs)
	}
}

// ApplyOwnerScope restricts column (holding identity subjects) to the scope
func ApplyOwnerScope(query *gorm.DB, column string, scope hierarchy.Scope) *gorm.DB {
	return ScopeOwners(scope).Apply(query, column)
}

func likePattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}
