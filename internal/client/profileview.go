package client

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Mode is the editing state of a ProfileView.
type Mode int

const (
	Viewing Mode = iota
	Editing
	Saving
)

func (m Mode) String() string {
	switch m {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	}
	return "unknown"
}

// State errors.
var (
	ErrNotLoaded  = errors.New("profile not loaded")
	ErrNotOwner   = errors.New("profile belongs to another user")
	ErrNotEditing = errors.New("no edit in progress")
)

// EditDraft is the pending copy of the editable fields.
type EditDraft struct {
	FullName string
	Bio      string
}

// ProfileView shows one profile with its posts and drives the edit flow.
type ProfileView struct {
	api      API
	notifier Notifier
	selfID   string
	userID   string

	mu       sync.Mutex
	profile  *Profile
	entries  []Entry
	notFound bool
	mode     Mode
	draft    EditDraft
}

// NewProfileView shows userID's profile; an empty userID means selfID's own.
// When both are empty the view shows the caller's profile and learns the
// caller's id from the first successful Load.
func NewProfileView(api API, notifier Notifier, selfID, userID string) *ProfileView {
	if userID == "" {
		userID = selfID
	}
	return &ProfileView{
		api:      api,
		notifier: orDiscard(notifier),
		selfID:   selfID,
		userID:   userID,
		entries:  []Entry{},
	}
}

// Load fetches the profile and then the author's posts. A missing profile is
// not an error: the view switches to its not-found state.
func (v *ProfileView) Load(ctx context.Context) error {
	v.mu.Lock()
	lookup := v.userID
	if lookup == v.selfID {
		lookup = ""
	}
	v.mu.Unlock()

	p, err := v.api.GetProfile(ctx, lookup)
	if errors.Is(err, ErrNotFound) {
		v.mu.Lock()
		v.profile = nil
		v.entries = []Entry{}
		v.notFound = true
		v.mode = Viewing
		v.mu.Unlock()
		return nil
	}
	if err != nil {
		v.notifier.Notify(failure("Could not load profile", err))
		return err
	}

	entries, err := v.api.UserFeed(ctx, p.UserID)
	if err != nil {
		v.notifier.Notify(failure("Could not load posts", err))
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if lookup == "" {
		v.selfID = p.UserID
		v.userID = p.UserID
	}
	v.profile = p
	v.notFound = false
	if err == nil {
		if entries == nil {
			entries = []Entry{}
		}
		v.entries = entries
	}
	return err
}

// Profile returns a copy of the loaded profile, or nil.
func (v *ProfileView) Profile() *Profile {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.profile == nil {
		return nil
	}
	p := *v.profile
	return &p
}

// Entries returns a copy of the author's posts.
func (v *ProfileView) Entries() []Entry {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]Entry{}, v.entries...)
}

// PostCount is the number of loaded posts.
func (v *ProfileView) PostCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.entries)
}

func (v *ProfileView) NotFound() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.notFound
}

// IsOwn reports whether the view shows the signed-in user's profile.
func (v *ProfileView) IsOwn() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.isOwn()
}

func (v *ProfileView) isOwn() bool {
	return v.selfID != "" && v.userID == v.selfID
}

func (v *ProfileView) Mode() Mode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode
}

// BeginEdit snapshots the profile into a fresh draft. Calling it while
// already editing discards unsent changes.
func (v *ProfileView) BeginEdit() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.profile == nil {
		return ErrNotLoaded
	}
	if !v.isOwn() {
		return ErrNotOwner
	}
	if v.mode == Saving {
		return ErrBusy
	}
	v.draft = EditDraft{FullName: v.profile.FullName}
	if v.profile.Bio != nil {
		v.draft.Bio = *v.profile.Bio
	}
	v.mode = Editing
	return nil
}

// SetDraft replaces the draft.
func (v *ProfileView) SetDraft(d EditDraft) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.mode != Editing {
		return ErrNotEditing
	}
	v.draft = d
	return nil
}

// Draft returns the current draft; ok is false outside of editing.
func (v *ProfileView) Draft() (EditDraft, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.mode == Viewing {
		return EditDraft{}, false
	}
	return v.draft, true
}

// Cancel discards the draft without contacting the server.
func (v *ProfileView) Cancel() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.mode != Editing {
		return ErrNotEditing
	}
	v.draft = EditDraft{}
	v.mode = Viewing
	return nil
}

// Save sends the draft. On success the returned profile replaces the local
// one; on failure the draft is kept and the view returns to editing.
func (v *ProfileView) Save(ctx context.Context) error {
	v.mu.Lock()
	if v.mode != Editing {
		v.mu.Unlock()
		return ErrNotEditing
	}
	v.mode = Saving
	draft := v.draft
	v.mu.Unlock()

	var bio *string
	if strings.TrimSpace(draft.Bio) != "" {
		b := draft.Bio
		bio = &b
	}
	p, err := v.api.UpdateProfile(ctx, draft.FullName, bio)

	v.mu.Lock()
	if err != nil {
		v.mode = Editing
		v.mu.Unlock()
		v.notifier.Notify(failure("Could not update profile", err))
		return err
	}
	v.profile = p
	v.draft = EditDraft{}
	v.mode = Viewing
	v.mu.Unlock()

	v.notifier.Notify(success("Profile updated", "Your profile has been saved."))
	return nil
}
