package field

// Field is an abstract searchable registry column.
type Field string

// Searchable fields.
const (
	Name        Field = "name"
	Description Field = "description"
	ID          Field = "id"
)

// All returns every searchable field.
func All() []Field {
	return []Field{Name, Description, ID}
}

// Contains reports whether fs includes f.
func Contains(fs []Field, f Field) bool {
	for _, x := range fs {
		if x == f {
			return true
		}
	}
	return false
}
