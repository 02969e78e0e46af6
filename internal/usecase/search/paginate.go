package search

import "github.com/vietbites/discovery/internal/domain/search/result"

// paginate slices the ranked list into one page. A page past the end yields
// an empty page; total always reflects the full post-filter count.
func paginate(items []result.Item, page, pageSize int) result.Page {
	total := len(items)

	start := (page - 1) * pageSize
	if start >= total {
		return result.NewPage(nil, total, page, pageSize)
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return result.NewPage(items[start:end], total, page, pageSize)
}
