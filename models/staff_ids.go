package models

import (
	"database/sql/driver"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StaffIDs is the set of user profile ids assigned to a job or route.
// Postgres stores it as text[]; other dialects get the same literal in a text column.
type StaffIDs []string

// Value encodes the ids as a postgres array literal
func (s StaffIDs) Value() (driver.Value, error) {
	if s == nil {
		return pq.StringArray{}.Value()
	}
	return pq.StringArray(s).Value()
}

// Scan decodes a postgres array literal
func (s *StaffIDs) Scan(src interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*s = StaffIDs(arr)
	return nil
}

// GormDataType implements schema.GormDataTypeInterface
func (StaffIDs) GormDataType() string {
	return "text[]"
}

// GormDBDataType implements migrator.GormDBDataTypeInterface
func (StaffIDs) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// Contains reports whether id is in the set
func (s StaffIDs) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Normalize drops blanks and duplicates while keeping order
func (s StaffIDs) Normalize() StaffIDs {
	out := StaffIDs{}
	seen := make(map[string]bool, len(s))
	for _, v := range s {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
