package upstream

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the upstream does not know the requested id.
var ErrNotFound = errors.New("upstream: not found")

// Client is the narrow interface to the upstream video platform. The
// implementation behind it is a black box; the gateway only depends on the
// structured objects it returns.
type Client interface {
	Search(ctx context.Context, query string) ([]SearchHit, error)
	Suggestions(ctx context.Context, query string) ([]string, error)
	Video(ctx context.Context, id string) (*VideoInfo, error)
	Channel(ctx context.Context, id string) (*ChannelInfo, error)
	Trending(ctx context.Context) ([]SearchHit, error)
	Lyrics(ctx context.Context, videoID string) (*LyricsInfo, error)
}
