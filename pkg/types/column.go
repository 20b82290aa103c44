package types

import (
	"fmt"
	"regexp"
	"strings"
)

// ColumnType is the semantic type of a column.
type ColumnType int

// Column types. The zero value is invalid so an unset type is caught by Validate.
const (
	ColumnInvalid ColumnType = iota
	ColumnInteger
	ColumnDouble
	ColumnText
	ColumnDate
)

var columnTypeNames = map[ColumnType]string{
	ColumnInteger: "integer",
	ColumnDouble:  "double",
	ColumnText:    "text",
	ColumnDate:    "date",
}

// ParseColumnType maps a type name to a ColumnType. Matching is
// case-insensitive and ignores surrounding whitespace, so both fixture
// names ("double") and SQLite declared types ("DOUBLE") are accepted.
func ParseColumnType(s string) (ColumnType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for t, n := range columnTypeNames {
		if n == name {
			return t, nil
		}
	}
	return ColumnInvalid, fmt.Errorf("%w: unknown column type %q", ErrSchema, s)
}

// String returns the lowercase type name.
func (t ColumnType) String() string {
	if n, ok := columnTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("ColumnType(%d)", int(t))
}

// SQL returns the declared type used in CREATE TABLE.
func (t ColumnType) SQL() string {
	return strings.ToUpper(t.String())
}

// Valid reports whether t is one of the known column types.
func (t ColumnType) Valid() bool {
	_, ok := columnTypeNames[t]
	return ok
}

// MarshalText implements encoding.TextMarshaler.
func (t ColumnType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: cannot marshal %s", ErrSchema, t)
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ColumnType) UnmarshalText(b []byte) error {
	parsed, err := ParseColumnType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Column is one (name, type) pair of a snapshot.
type Column struct {
	Name string     `json:"name" yaml:"name"`
	Type ColumnType `json:"type" yaml:"type"`
}

// identPattern restricts names to plain SQL identifiers.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether name can be used unquoted as a table or
// column name.
func ValidIdentifier(name string) bool {
	return identPattern.MatchString(name)
}

// Validate checks the column name and type.
func (c Column) Validate() error {
	if !ValidIdentifier(c.Name) {
		return fmt.Errorf("%w: invalid column name %q", ErrSchema, c.Name)
	}
	if !c.Type.Valid() {
		return fmt.Errorf("%w: column %s has invalid type %s", ErrSchema, c.Name, c.Type)
	}
	return nil
}

func (c Column) String() string {
	return c.Name + " " + c.Type.String()
}
