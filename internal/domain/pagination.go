package domain

// PaginationState is the paging position of one block instance.
// CurrentPage stays within [1, TotalPages] once a session has items.
type PaginationState struct {
	ItemsPerPage int `json:"itemsPerPage"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
}

// NavButton is the model of one numbered page button.
type NavButton struct {
	Key     int  `json:"key"`
	Active  bool `json:"active"`
	Visible bool `json:"visible"`
}

// Navigation is the page-selector strip: prev, numbered buttons with ellipses, next.
// Buttons holds one entry per page, in page order.
type Navigation struct {
	TotalPages       int         `json:"totalPages"`
	CurrentPage      int         `json:"currentPage"`
	PrevDisabled     bool        `json:"prevDisabled"`
	NextDisabled     bool        `json:"nextDisabled"`
	LeadingEllipsis  bool        `json:"leadingEllipsis"`
	TrailingEllipsis bool        `json:"trailingEllipsis"`
	Buttons          []NavButton `json:"buttons"`
}

// Button returns the button for page key, or false if there is none.
func (n Navigation) Button(key int) (NavButton, bool) {
	if key < 1 || key > len(n.Buttons) {
		return NavButton{}, false
	}
	return n.Buttons[key-1], true
}

// VisibleKeys lists the pages whose buttons are shown.
func (n Navigation) VisibleKeys() []int {
	keys := make([]int, 0, len(n.Buttons))
	for _, b := range n.Buttons {
		if b.Visible {
			keys = append(keys, b.Key)
		}
	}
	return keys
}

// ListEntry is one rendered item of the visible page.
type ListEntry struct {
	Date         string `json:"date"`
	Title        string `json:"title"`
	Href         string `json:"href"`
	ReadMoreText string `json:"readMoreText"`
}
