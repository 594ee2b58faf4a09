package app

import "github.com/NewsFeedBlocks/internal/domain"

// windowSize is how many numbered buttons show near either end of the strip.
const windowSize = 7

// windowRadius is how many neighbours show on each side of the current page mid-strip.
const windowRadius = 3

// Navigator retains the button models of one navigation strip and updates
// them in place on every page change.
type Navigator struct {
	nav domain.Navigation
}

// NewNavigator builds one button per page. Nothing is active until Update.
func NewNavigator(totalPages int) *Navigator {
	if totalPages < 0 {
		totalPages = 0
	}
	buttons := make([]domain.NavButton, totalPages)
	for i := range buttons {
		buttons[i] = domain.NavButton{Key: i + 1}
	}
	return &Navigator{nav: domain.Navigation{TotalPages: totalPages, Buttons: buttons}}
}

// Update applies the windowing rule for current and returns a snapshot.
func (n *Navigator) Update(current int) domain.Navigation {
	total := n.nav.TotalPages
	n.nav.CurrentPage = current
	n.nav.PrevDisabled = current == 1
	// Disables one page early; kept as the block has always behaved.
	n.nav.NextDisabled = current == total-1

	switch {
	case current < windowSize:
		n.nav.LeadingEllipsis = false
		n.nav.TrailingEllipsis = true
		n.show(func(key int) bool { return key <= windowSize })
	case current > total-windowSize:
		n.nav.LeadingEllipsis = true
		n.nav.TrailingEllipsis = false
		n.show(func(key int) bool { return key > total-windowSize })
	default:
		n.nav.LeadingEllipsis = true
		n.nav.TrailingEllipsis = true
		n.show(func(key int) bool {
			return key >= current-windowRadius && key <= current+windowRadius
		})
	}

	for i := range n.nav.Buttons {
		b := &n.nav.Buttons[i]
		b.Active = b.Key == current
		// First and last page stay reachable whatever the window.
		if b.Key == 1 || b.Key == total {
			b.Visible = true
		}
	}

	return n.Snapshot()
}

// Snapshot returns a copy that later updates do not mutate.
func (n *Navigator) Snapshot() domain.Navigation {
	out := n.nav
	out.Buttons = append([]domain.NavButton(nil), n.nav.Buttons...)
	return out
}

func (n *Navigator) show(visible func(key int) bool) {
	for i := range n.nav.Buttons {
		n.nav.Buttons[i].Visible = visible(n.nav.Buttons[i].Key)
	}
}

// RenderNavigation is the pure form of Navigator: the strip for (total, current).
func RenderNavigation(totalPages, currentPage int) domain.Navigation {
	return NewNavigator(totalPages).Update(currentPage)
}
