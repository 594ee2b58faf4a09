package transformer

import (
	"fmt"

	"github.com/NewsFeedBlocks/internal/domain"
)

// GetTransformer returns the appropriate transformer by name.
// This acts as a factory/registry.
func GetTransformer(name string) (domain.Transformer, error) {
	switch name {
	case SheetName, "":
		return NewSheetTransformer(), nil
	case RSSName:
		return NewRSSTransformer(), nil
	default:
		return nil, fmt.Errorf("transformer not found: %s", name)
	}
}
