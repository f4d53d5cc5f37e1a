package domain

import (
	"fmt"
	"sync"

	"github.com/samber/lo"

	"groupchat/errors"
)

// Member is one joined participant as the Room sees it: a display name
// and a fire-and-forget delivery operation.
type Member interface {
	Name() string
	Deliver(msg Message)
}

// Room is a named broadcast domain. Membership keeps set semantics
// (a member is present at most once) while preserving join order so
// that listings are stable.
//
// Room is safe for concurrent use by many sessions.
type Room struct {
	name string

	mu      sync.RWMutex
	members []Member
	present map[Member]struct{}
}

func NewRoom(name string) *Room {
	return &Room{
		name:    name,
		present: make(map[Member]struct{}),
	}
}

func (r *Room) Name() string { return r.name }

// Join adds m to the room. Joining twice is a no-op.
func (r *Room) Join(m Member) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.present[m]; ok {
		return
	}
	r.present[m] = struct{}{}
	r.members = append(r.members, m)
}

// Leave removes m from the room. Removing an absent member is a no-op
// so a double close on the transport side stays harmless.
func (r *Room) Leave(m Member) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.present[m]; !ok {
		return
	}
	delete(r.present, m)
	for i, existing := range r.members {
		if existing == m {
			r.members = append(r.members[:i], r.members[i+1:]...)
			break
		}
	}
}

// Broadcast delivers msg to every member present when the call is
// made. The snapshot is taken under the read lock and delivery happens
// outside of it: a member joining or leaving mid-broadcast neither
// corrupts the iteration nor blocks on a slow recipient's lock.
// Per-recipient failures are the member's own problem; Deliver never
// reports them back.
func (r *Room) Broadcast(msg Message) {
	for _, m := range r.snapshot() {
		m.Deliver(msg)
	}
}

// MemberNames lists display names in join order.
func (r *Room) MemberNames() []string {
	return lo.Map(r.snapshot(), func(m Member, _ int) string {
		return m.Name()
	})
}

// Member returns the first member (in join order) whose display name
// matches exactly.
func (r *Room) Member(name string) (Member, error) {
	for _, m := range r.snapshot() {
		if m.Name() == name {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", errors.ErrRecipientNotFound, name)
}

// Len reports how many members are currently joined.
func (r *Room) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.present)
}

func (r *Room) snapshot() []Member {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Member, len(r.members))
	copy(out, r.members)
	return out
}
