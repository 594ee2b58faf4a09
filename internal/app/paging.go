package app

// DefaultItemsPerPage applies when a block does not configure a usable page size.
const DefaultItemsPerPage = 10

// ComputeTotalPages returns ceil(n/k); zero for an empty collection.
func ComputeTotalPages(collectionSize, itemsPerPage int) int {
	if collectionSize <= 0 || itemsPerPage <= 0 {
		return 0
	}
	return (collectionSize + itemsPerPage - 1) / itemsPerPage
}

// SliceBounds returns the [start, end) item range of page.
// The last page always ends at collectionSize so it absorbs any remainder.
func SliceBounds(page, totalPages, collectionSize, itemsPerPage int) (int, int) {
	start := (page - 1) * itemsPerPage
	if page == totalPages {
		return start, collectionSize
	}
	return start, page * itemsPerPage
}
