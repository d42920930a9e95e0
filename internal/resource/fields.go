package resource

// SetString records a PATCH string column. Absent, null and empty values
// are not updates.
func SetString(fields map[string]any, column string, v *string) {
	if v != nil && *v != "" {
		fields[column] = *v
	}
}

// Set records any other PATCH column when it was supplied.
func Set[V any](fields map[string]any, column string, v *V) {
	if v != nil {
		fields[column] = *v
	}
}
