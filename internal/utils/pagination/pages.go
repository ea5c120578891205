package pagination

// DefaultPageSize is the number of entries shown per page unless overridden
// via configuration.
const DefaultPageSize = 25

// TotalPages returns the page count for a total row count and page size.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	pages := int(total / int64(pageSize))
	if total%int64(pageSize) != 0 {
		pages++
	}
	return pages
}

// PageRange returns the window of page numbers to render around the current
// page: the full range when there are five pages or fewer, otherwise a
// five-page window kept inside [1, totalPages].
func PageRange(page, totalPages int) []int {
	if totalPages <= 0 {
		return []int{}
	}

	start, end := 1, totalPages
	if totalPages > 5 {
		if page > 3 {
			start = page - 2
			end = page + 2
			if end > totalPages {
				end = totalPages
				start = totalPages - 4
			}
		} else {
			start = 1
			end = 5
		}
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Offset converts a 1-based page number to a row offset.
func Offset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
