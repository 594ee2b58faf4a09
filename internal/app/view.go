package app

import "github.com/NewsFeedBlocks/internal/domain"

// MostRecentHeading titles the item list of every block.
const MostRecentHeading = "Most Recent"

// BlockView is a serializable snapshot of a session.
type BlockView struct {
	Block      string                 `json:"block"`
	Heading    string                 `json:"heading"`
	Empty      bool                   `json:"empty"`
	Message    string                 `json:"message,omitempty"`
	State      domain.PaginationState `json:"state"`
	Entries    []domain.ListEntry     `json:"entries"`
	Pending    bool                   `json:"pending"`
	Navigation *domain.Navigation     `json:"navigation,omitempty"`
}

// View snapshots the session. Empty sessions carry the no-results message
// and no navigation strip.
func (s *Session) View() BlockView {
	if s.Empty() {
		return BlockView{
			Block:   s.block,
			Heading: MostRecentHeading,
			Empty:   true,
			Message: NoResultsMessage,
			State:   s.State(),
			Entries: []domain.ListEntry{},
		}
	}

	list := s.renderer.View()
	nav := s.Navigation()
	entries := list.Entries
	if entries == nil {
		entries = []domain.ListEntry{}
	}
	return BlockView{
		Block:      s.block,
		Heading:    MostRecentHeading,
		State:      s.State(),
		Entries:    entries,
		Pending:    list.Pending,
		Navigation: &nav,
	}
}
