package database

import "gorm.io/gorm"

// DefaultPageSize is the fixed feed page size.
const DefaultPageSize = 10

// clampPage resolves a requested page index against the total row count.
// Page indexes start at 1; anything below clamps to the first page and
// anything past the end clamps to the last valid page instead of erroring.
func clampPage(page int, total int64, perPage int) int {
	if page < 1 {
		page = 1
	}
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	if page > lastPage {
		page = lastPage
	}
	return page
}

// paginate applies the clamped offset/limit to a counted query.
func paginate(q *gorm.DB, page int, total int64, perPage int) (*gorm.DB, int) {
	page = clampPage(page, total, perPage)
	return q.Offset((page - 1) * perPage).Limit(perPage), page
}
