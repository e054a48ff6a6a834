package client

import (
	"context"
	"errors"
	"sync"

	"github.com/janisto/huma-feed/internal/service/mutation"
)

// ErrBusy is returned when a publish is already in flight.
var ErrBusy = errors.New("operation already in progress")

// FeedView holds the last fetched feed and the compose box. It never
// inserts posts optimistically: a successful publish is followed by a
// refetch, so the view only shows what the server returned.
type FeedView struct {
	api      API
	notifier Notifier
	userID   string

	mu         sync.Mutex
	entries    []Entry
	loaded     bool
	compose    string
	publishing bool
}

// NewFeedView shows the global feed.
func NewFeedView(api API, notifier Notifier) *FeedView {
	return &FeedView{api: api, notifier: orDiscard(notifier), entries: []Entry{}}
}

// NewUserFeedView shows the posts of a single author.
func NewUserFeedView(api API, notifier Notifier, userID string) *FeedView {
	v := NewFeedView(api, notifier)
	v.userID = userID
	return v
}

// Refresh refetches the feed and replaces the entries. When fetches overlap,
// whichever response arrives last wins. On failure the previous entries stay.
func (v *FeedView) Refresh(ctx context.Context) error {
	var (
		entries []Entry
		err     error
	)
	if v.userID == "" {
		entries, err = v.api.GlobalFeed(ctx)
	} else {
		entries, err = v.api.UserFeed(ctx, v.userID)
	}
	if err != nil {
		v.notifier.Notify(failure("Could not load feed", err))
		return err
	}
	if entries == nil {
		entries = []Entry{}
	}

	v.mu.Lock()
	v.entries = entries
	v.loaded = true
	v.mu.Unlock()
	return nil
}

// Entries returns a copy of the current entries, newest first.
func (v *FeedView) Entries() []Entry {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]Entry{}, v.entries...)
}

// Loaded reports whether a fetch has succeeded yet.
func (v *FeedView) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

// SetCompose replaces the pending post text.
func (v *FeedView) SetCompose(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.compose = text
}

// Compose returns the pending post text.
func (v *FeedView) Compose() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.compose
}

// Remaining is the number of characters still available; negative when the
// text is too long.
func (v *FeedView) Remaining() int {
	return mutation.MaxContentLength - mutation.ContentLength(v.Compose())
}

// CanPublish reports whether the compose text would pass validation and no
// publish is in flight.
func (v *FeedView) CanPublish() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := mutation.ContentLength(v.compose)
	return !v.publishing && n > 0 && n <= mutation.MaxContentLength
}

// Publish submits the compose text. On success the compose box is cleared
// and the feed refetched; on failure the text is kept for another attempt.
func (v *FeedView) Publish(ctx context.Context) (*Post, error) {
	v.mu.Lock()
	if v.publishing {
		v.mu.Unlock()
		return nil, ErrBusy
	}
	v.publishing = true
	content := v.compose
	v.mu.Unlock()

	p, err := v.api.CreatePost(ctx, content)

	v.mu.Lock()
	v.publishing = false
	if err == nil && v.compose == content {
		v.compose = ""
	}
	v.mu.Unlock()

	if err != nil {
		v.notifier.Notify(failure("Could not create post", err))
		return nil, err
	}
	v.notifier.Notify(success("Post created", "Your post has been published."))

	// The post exists; a failed refetch is reported by Refresh itself.
	_ = v.Refresh(ctx)
	return p, nil
}
