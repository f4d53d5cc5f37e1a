package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"groupchat/errors"
)

type fakeMember struct {
	name string
	got  []Message
}

func (f *fakeMember) Name() string        { return f.name }
func (f *fakeMember) Deliver(msg Message) { f.got = append(f.got, msg) }

func TestRoom_Join_IsSetNotMultiset(t *testing.T) {
	req := require.New(t)
	room := NewRoom("lobby")
	alice := &fakeMember{name: "alice"}

	room.Join(alice)
	room.Join(alice)

	req.Equal(1, room.Len())
	req.Equal([]string{"alice"}, room.MemberNames())
}

func TestRoom_Leave_AbsentMemberIsNoOp(t *testing.T) {
	req := require.New(t)
	room := NewRoom("lobby")
	alice := &fakeMember{name: "alice"}
	bob := &fakeMember{name: "bob"}

	room.Join(alice)
	room.Leave(bob)
	req.Equal(1, room.Len())

	room.Leave(alice)
	room.Leave(alice)
	req.Equal(0, room.Len())
	req.Empty(room.MemberNames())
}

func TestRoom_MemberNames_KeepsJoinOrder(t *testing.T) {
	req := require.New(t)
	room := NewRoom("lobby")
	names := []string{"carol", "alice", "bob"}
	members := make([]*fakeMember, 0, len(names))
	for _, n := range names {
		m := &fakeMember{name: n}
		members = append(members, m)
		room.Join(m)
	}

	req.Equal(names, room.MemberNames())

	// Removing from the middle must not disturb the order of the rest.
	room.Leave(members[1])
	req.Equal([]string{"carol", "bob"}, room.MemberNames())
}

func TestRoom_Broadcast_ReachesEveryMemberIncludingSender(t *testing.T) {
	req := require.New(t)
	room := NewRoom("lobby")
	alice := &fakeMember{name: "alice"}
	bob := &fakeMember{name: "bob"}
	room.Join(alice)
	room.Join(bob)

	msg := Chat("alice", "hello")
	room.Broadcast(msg)

	req.Equal([]Message{msg}, alice.got)
	req.Equal([]Message{msg}, bob.got)
}

func TestRoom_Broadcast_SkipsMembersWhoLeft(t *testing.T) {
	req := require.New(t)
	room := NewRoom("lobby")
	alice := &fakeMember{name: "alice"}
	bob := &fakeMember{name: "bob"}
	room.Join(alice)
	room.Join(bob)
	room.Leave(bob)

	room.Broadcast(Note("ping"))

	req.Len(alice.got, 1)
	req.Empty(bob.got)
}

func TestRoom_Member_ExactNameLookup(t *testing.T) {
	req := require.New(t)
	room := NewRoom("lobby")
	alice := &fakeMember{name: "alice"}
	room.Join(alice)

	found, err := room.Member("alice")
	req.NoError(err)
	req.Same(alice, found)

	_, err = room.Member("ali")
	req.ErrorIs(err, errors.ErrRecipientNotFound)

	_, err = room.Member("bob")
	req.ErrorIs(err, errors.ErrRecipientNotFound)
}
