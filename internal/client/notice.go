package client

import (
	"errors"
	"sync"
)

// NoticeKind distinguishes success from failure notices.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeFailure
)

func (k NoticeKind) String() string {
	if k == NoticeSuccess {
		return "success"
	}
	return "failure"
}

// Notice is a transient, user-facing outcome message. Inline notices carry
// field-level validation problems meant to be shown next to the input.
type Notice struct {
	Kind    NoticeKind
	Title   string
	Message string
	Inline  bool
	Fields  map[string]string
}

// Notifier presents notices.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

type discard struct{}

func (discard) Notify(Notice) {}

// Recorder keeps every notice it receives.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of the recorded notices.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Last returns the most recent notice.
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

func orDiscard(n Notifier) Notifier {
	if n == nil {
		return discard{}
	}
	return n
}

func success(title, message string) Notice {
	return Notice{Kind: NoticeSuccess, Title: title, Message: message}
}

// failure builds a failure notice for err. Validation problems become inline
// notices keyed by field.
func failure(title string, err error) Notice {
	n := Notice{Kind: NoticeFailure, Title: title, Message: err.Error()}
	var apiErr *APIError
	if errors.As(err, &apiErr) && errors.Is(err, ErrValidation) {
		n.Inline = true
		if len(apiErr.Errors) > 0 {
			n.Fields = make(map[string]string, len(apiErr.Errors))
			for _, fe := range apiErr.Errors {
				n.Fields[fe.Field()] = fe.Message
			}
		}
	}
	return n
}
