package flow

import (
	"sync"
	"time"
)

// Kind identifies which conversation a session belongs to.
type Kind string

const (
	KindBrowse Kind = "browse"
	KindWizard Kind = "wizard"
)

// Session is one live conversation for one user. Data holds the
// flow-specific state; the registry only tracks identity and deadline.
type Session struct {
	UserID   int64
	ChatID   int64
	Kind     Kind
	Data     any
	Deadline time.Time
	started  time.Time
}

// Age returns how long the session has existed.
func (s *Session) Age() time.Duration {
	return time.Since(s.started)
}

// Registry tracks at most one session per (user, kind). All methods are
// safe for concurrent use; the sweeper and update handlers race freely.
type Registry struct {
	mu       sync.Mutex
	sessions map[sessionKey]*Session
	now      func() time.Time
}

type sessionKey struct {
	userID int64
	kind   Kind
}

// NewRegistry returns an empty session registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[sessionKey]*Session),
		now:      time.Now,
	}
}

// Begin starts a session, replacing any previous one of the same kind
// for the same user. The returned session is live until ttl elapses
// without a Touch.
func (r *Registry) Begin(userID, chatID int64, kind Kind, data any, ttl time.Duration) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	s := &Session{
		UserID:   userID,
		ChatID:   chatID,
		Kind:     kind,
		Data:     data,
		Deadline: now.Add(ttl),
		started:  now,
	}
	r.sessions[sessionKey{userID, kind}] = s
	return s
}

// Get returns the live session of the given kind for the user.
// An expired session is removed and not returned.
func (r *Registry) Get(userID int64, kind Kind) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := sessionKey{userID, kind}
	s, ok := r.sessions[key]
	if !ok {
		return nil, false
	}
	if r.now().After(s.Deadline) {
		delete(r.sessions, key)
		return nil, false
	}
	return s, true
}

// Touch extends the session deadline after a valid user reply.
func (r *Registry) Touch(userID int64, kind Kind, ttl time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionKey{userID, kind}]
	if !ok {
		return false
	}
	s.Deadline = r.now().Add(ttl)
	return true
}

// End removes the session if present and returns it.
func (r *Registry) End(userID int64, kind Kind) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := sessionKey{userID, kind}
	s, ok := r.sessions[key]
	if ok {
		delete(r.sessions, key)
	}
	return s, ok
}

// Peek returns the session of the given kind whether or not it has
// expired, without touching it. Callers that must react to expiry
// (timeout notices) use this instead of Get.
func (r *Registry) Peek(userID int64, kind Kind) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionKey{userID, kind}]
	return s, ok
}

// TakeExpired removes and returns the session only when its deadline
// has passed, so the caller can deliver the timeout notice itself
// before the janitor gets to it.
func (r *Registry) TakeExpired(userID int64, kind Kind) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := sessionKey{userID, kind}
	s, ok := r.sessions[key]
	if !ok || !r.now().After(s.Deadline) {
		return nil, false
	}
	delete(r.sessions, key)
	return s, true
}

// Sweep removes every expired session and returns them so the caller
// can emit timeout notices.
func (r *Registry) Sweep() []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	var expired []*Session
	for key, s := range r.sessions {
		if now.After(s.Deadline) {
			delete(r.sessions, key)
			expired = append(expired, s)
		}
	}
	return expired
}

// Len returns the number of tracked sessions, expired ones included.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
