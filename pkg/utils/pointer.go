package utils

// Ptr returns a pointer to v. Useful for the presence-typed optional fields
// on query specs and book records.
func Ptr[T any](v T) *T {
	return &v
}

// ValueOr dereferences p, falling back to def when p is nil.
func ValueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
