package catalog

import "SqueezeFM/model"

// Ellipsis marks a collapsed run in a page button sequence.
const Ellipsis = -1

// Paginate slices an ordered sequence into the 1-based page window of the
// given size. The page is clamped into the valid range; an empty sequence
// yields page 1 of 0 total pages with an empty window.
func Paginate(tracks []*model.Track, page, pageSize int) ([]*model.Track, int, int) {
	if pageSize <= 0 {
		pageSize = 25
	}
	totalPages := (len(tracks) + pageSize - 1) / pageSize

	if page < 1 {
		page = 1
	}
	if totalPages == 0 {
		page = 1
	} else if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	if start >= len(tracks) {
		return []*model.Track{}, page, totalPages
	}
	end := start + pageSize
	if end > len(tracks) {
		end = len(tracks)
	}
	return tracks[start:end], page, totalPages
}

// PageButtons generates the pagination control sequence: at most 7 entries,
// always keeping the first page, the last page and a window around the
// current page visible, collapsing the rest into Ellipsis markers.
func PageButtons(current, totalPages int) []int {
	if totalPages <= 0 {
		return []int{}
	}
	if totalPages <= 7 {
		out := make([]int, totalPages)
		for i := range out {
			out[i] = i + 1
		}
		return out
	}

	if current <= 4 {
		return []int{1, 2, 3, 4, 5, Ellipsis, totalPages}
	}
	if current >= totalPages-3 {
		return []int{1, Ellipsis, totalPages - 4, totalPages - 3, totalPages - 2, totalPages - 1, totalPages}
	}
	return []int{1, Ellipsis, current - 1, current, current + 1, Ellipsis, totalPages}
}
