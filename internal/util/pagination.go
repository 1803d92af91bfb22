package util

const DefaultPageSize = 10

// Calculate turns a 1-based page and requested size into an offset/limit
// pair, clamping the size to a sane range.
func Calculate(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = DefaultPageSize
	}
	return (page - 1) * size, size
}
