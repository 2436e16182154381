package utils

// Ptr returns a pointer to a copy of v, for optional SDK fields.
func Ptr[T any](v T) *T {
	return &v
}
