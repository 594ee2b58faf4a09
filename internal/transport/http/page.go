package http

import (
	"strconv"

	"github.com/NewsFeedBlocks/internal/app"
)

// navItem is one element of the rendered pagination strip.
type navItem struct {
	Class    string
	Label    string
	Key      int
	Href     string
	Active   bool
	Hidden   bool
	Disabled bool
	Ellipsis bool
}

type pageData struct {
	View app.BlockView
	Nav  []navItem
}

func newPageData(s *app.Session) pageData {
	view := s.View()
	data := pageData{View: view}
	if view.Navigation == nil {
		return data
	}

	nav := view.Navigation
	current := nav.CurrentPage
	u := s.URL()

	items := make([]navItem, 0, len(nav.Buttons)+4)
	items = append(items, navItem{
		Class:    "prev-page-button",
		Label:    "«",
		Href:     u.Href(clampPage(current-1, nav.TotalPages, current)),
		Disabled: nav.PrevDisabled,
	})

	page := func(key int) navItem {
		b, _ := nav.Button(key)
		item := navItem{
			Label:  strconv.Itoa(key),
			Key:    key,
			Href:   u.Href(key),
			Active: b.Active,
			Hidden: !b.Visible,
		}
		if b.Active {
			item.Class = "active-page"
		}
		return item
	}

	items = append(items, page(1))
	items = append(items, navItem{Class: "start-elipses", Label: "...", Ellipsis: true, Hidden: !nav.LeadingEllipsis})
	for key := 2; key < nav.TotalPages; key++ {
		items = append(items, page(key))
	}
	items = append(items, navItem{Class: "end-elipses", Label: "...", Ellipsis: true, Hidden: !nav.TrailingEllipsis})
	if nav.TotalPages > 1 {
		items = append(items, page(nav.TotalPages))
	}
	items = append(items, navItem{
		Class:    "next-page-button",
		Label:    "»",
		Href:     u.Href(clampPage(current+1, nav.TotalPages, current)),
		Disabled: nav.NextDisabled,
	})

	data.Nav = items
	return data
}

// clampPage returns page, or current when page is outside [1, total]. An
// out-of-range step leaves the block where it is.
func clampPage(page, total, current int) int {
	if page < 1 || page > total {
		return current
	}
	return page
}
