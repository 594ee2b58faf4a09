package domain

import "io"

// Transformer decodes a raw source payload into feed items, oldest-first.
type Transformer interface {
	Transform(reader io.Reader) (FeedCollection, error)
}
