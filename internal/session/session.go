// Package session tracks live websocket form sessions in memory.
package session

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Info describes one open session.
type Info struct {
	ID           string    `json:"id"`
	Remote       string    `json:"remote,omitempty"`
	Citadel      string    `json:"citadel"`
	Mode         string    `json:"mode"`
	Calculations int       `json:"calculations"`
	Opened       time.Time `json:"opened"`
	Updated      time.Time `json:"updated"`
}

type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Info
	daily    map[string]int // calculations per UTC date
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Info),
		daily:    make(map[string]int),
		now:      time.Now,
	}
}

// Open registers a new session and returns its id.
func (r *Registry) Open(remote, citadel, mode string) string {
	id := uuid.NewString()
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = &Info{ID: id, Remote: remote, Citadel: citadel, Mode: mode, Opened: now, Updated: now}
	return id
}

// Update records the current citadel and mode of a session.
func (r *Registry) Update(id, citadel, mode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.Citadel, s.Mode, s.Updated = citadel, mode, r.now()
	}
}

// Calculated counts a finished calculation against the session and the current day.
// An empty id counts only toward the day, for stateless API calls.
func (r *Registry) Calculated(id string) {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.Calculations++
		s.Updated = now
	}
	r.daily[dateKey(now)]++
}

func (r *Registry) Close(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *Registry) Get(id string) (Info, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return Info{}, false
	}
	return *s, true
}

// List returns copies of all open sessions, oldest first.
func (r *Registry) List() []Info {
	r.mu.Lock()
	out := make([]Info, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, *s)
	}
	r.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Opened.Equal(out[j].Opened) {
			return out[i].ID < out[j].ID
		}
		return out[i].Opened.Before(out[j].Opened)
	})
	return out
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
