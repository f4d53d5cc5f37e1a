// Package runtime wires sessions, rooms, and external capabilities
// together. It orchestrates the system without containing wire-format
// or transport logic.
package runtime

import (
	"sync"

	"groupchat/domain"
)

// Registry is the process-wide name to Room directory. Rooms are
// created lazily on first reference and live for the rest of the
// process: the room count is bounded by the number of distinct names
// clients ever use, so no eviction is performed.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*domain.Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*domain.Room)}
}

// Get returns the Room registered under name, creating an empty one on
// first reference. The check-then-create step runs under the lock so
// two concurrent first joins to the same name cannot produce two
// distinct rooms.
func (r *Registry) Get(name string) *domain.Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[name]
	if !ok {
		room = domain.NewRoom(name)
		r.rooms[name] = room
	}
	return room
}

// Len reports how many rooms have been created so far.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}
