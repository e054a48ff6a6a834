package client

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// fakeAPI is an in-memory API. Failures are injected per method.
type fakeAPI struct {
	mu       sync.Mutex
	self     string
	profiles map[string]*Profile
	entries  []Entry
	seq      int

	failCreate  error
	failFeed    error
	failProfile error
	failUpdate  error

	creates int
	updates int
	feeds   int
	lastBio *string
}

func newFakeAPI(self string) *fakeAPI {
	return &fakeAPI{self: self, profiles: map[string]*Profile{}}
}

func (f *fakeAPI) addProfile(userID, name string, bio *string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[userID] = &Profile{ID: "p-" + userID, UserID: userID, FullName: name, Email: userID + "@example.com", Bio: bio}
}

func (f *fakeAPI) CreatePost(_ context.Context, content string) (*Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	f.seq++
	now := time.Date(2026, 1, 1, 0, 0, f.seq, 0, time.UTC)
	p := &Post{ID: "post-" + strconv.Itoa(f.seq), Content: content, AuthorUserID: f.self, CreatedAt: now}
	author := f.profiles[f.self]
	f.entries = append([]Entry{{
		PostID: p.ID, Content: content, AuthorUserID: f.self,
		AuthorName: author.FullName, AuthorEmail: author.Email, CreatedAt: now,
	}}, f.entries...)
	return p, nil
}

func (f *fakeAPI) GlobalFeed(_ context.Context) ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feeds++
	if f.failFeed != nil {
		return nil, f.failFeed
	}
	return append([]Entry{}, f.entries...), nil
}

func (f *fakeAPI) UserFeed(_ context.Context, userID string) ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feeds++
	if f.failFeed != nil {
		return nil, f.failFeed
	}
	out := []Entry{}
	for _, e := range f.entries {
		if e.AuthorUserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeAPI) GetProfile(_ context.Context, userID string) (*Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failProfile != nil {
		return nil, f.failProfile
	}
	if userID == "" {
		userID = f.self
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, &APIError{Status: 404, Title: "Not Found"}
	}
	cp := *p
	return &cp, nil
}

func (f *fakeAPI) UpdateProfile(_ context.Context, fullName string, bio *string) (*Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	f.lastBio = bio
	if f.failUpdate != nil {
		return nil, f.failUpdate
	}
	p, ok := f.profiles[f.self]
	if !ok {
		return nil, &APIError{Status: 404}
	}
	p.FullName = fullName
	p.Bio = bio
	cp := *p
	return &cp, nil
}

func (f *fakeAPI) ProvisionProfile(_ context.Context, fullName string) (*Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[f.self]; ok {
		return nil, &APIError{Status: 409}
	}
	p := &Profile{ID: "p-" + f.self, UserID: f.self, FullName: fullName, Email: f.self + "@example.com"}
	f.profiles[f.self] = p
	cp := *p
	return &cp, nil
}

var _ API = (*fakeAPI)(nil)
