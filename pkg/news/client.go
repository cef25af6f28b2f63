package news

import (
	"context"
	"time"
)

// Article is one provider headline. PublishedAt is zero when the provider
// sent no parseable time.
type Article struct {
	Headline    string
	Publisher   string
	PublishedAt time.Time
}

type NewsClient interface {
	Fetch(ctx context.Context, limit int) ([]Article, error)
	Name() string
}
