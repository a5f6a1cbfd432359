package schema

import (
	"fmt"
	"reflect"

	"github.com/iancoleman/strcase"
)

// Columns is the ordered list of column names of a row struct
type Columns []string

// ColumnsFromStruct builds the column list for a struct (or pointer to struct) from its exported fields,
// in declaration order
// the column name is taken from the `column` tag if present, otherwise it is the snake cased field name
// fields tagged `column:"-"` are skipped
func ColumnsFromStruct(s any) (Columns, error) {
	t := reflect.TypeOf(s)
	if t == nil {
		return nil, fmt.Errorf("cannot build columns from nil")
	}
	// If s is a pointer, get the element type
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot build columns from %s: expected struct", t.Kind())
	}

	var res Columns
	seen := make(map[string]string)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Tag.Get("column")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strcase.ToSnake(field.Name)
		}
		if other, ok := seen[name]; ok {
			return nil, fmt.Errorf("fields %s and %s both map to column %s", other, field.Name, name)
		}
		seen[name] = field.Name
		res = append(res, name)
	}
	return res, nil
}

// Index returns the position of the named column, or -1 if there is no such column
func (c Columns) Index(name string) int {
	for i, n := range c {
		if n == name {
			return i
		}
	}
	return -1
}
