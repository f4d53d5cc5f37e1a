package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/abadojack/whatlanggo"
	"github.com/google/uuid"

	"groupchat/contract"
	"groupchat/domain"
	"groupchat/errors"
	"groupchat/moderation"
)

type sessionState int

const (
	stateUnjoined sessionState = iota
	stateJoined
	stateClosed
)

// Session is one connected participant's server-side state: a display
// name, the single room the connection is bound to, and the outbound
// send capability supplied by the transport.
//
// A session moves from Unjoined (no name yet) to Joined on its first
// join command, and to Closed when the connection ends. There is no
// way back: a name change keeps the session Joined, and every command
// other than join is rejected until the session has joined.
type Session struct {
	id     uuid.UUID
	room   *domain.Room
	sender contract.Sender
	quips  contract.QuipProvider
	censor *moderation.Moderator
	log    *slog.Logger

	mu    sync.Mutex
	name  string
	state sessionState

	closeOnce sync.Once
}

// NewSession creates a session bound to room, in the Unjoined state.
// censor may be nil to disable moderation.
func NewSession(log *slog.Logger, room *domain.Room, sender contract.Sender,
	quips contract.QuipProvider, censor *moderation.Moderator) *Session {
	s := &Session{
		id:     uuid.New(),
		room:   room,
		sender: sender,
		quips:  quips,
		censor: censor,
	}
	s.log = log.With("session_id", s.id.String(), "room", room.Name())
	return s
}

func (s *Session) ID() uuid.UUID { return s.id }

// Name returns the current display name, empty until the session has
// joined.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Deliver pushes one message to this session's client. A send failure
// is logged and dropped right here: a dead recipient must never abort
// the broadcast or handler that reached it.
func (s *Session) Deliver(msg domain.Message) {
	if err := s.sender.Send(msg); err != nil {
		s.log.Debug("dropping undeliverable message", "type", msg.Type, "error", err)
	}
}

// HandleMessage decodes one inbound frame and runs the matching
// handler. A returned error describes that frame only; the transport
// decides whether to notify the client or drop the connection.
func (s *Session) HandleMessage(ctx context.Context, raw []byte) error {
	cmd, err := domain.DecodeCommand(raw)
	if err != nil {
		return err
	}

	switch cmd.Type {
	case domain.TypeJoin:
		return s.handleJoin(cmd.Name)
	case domain.TypeChat:
		return s.handleChat(cmd.Text)
	case domain.TypeJoke:
		return s.handleJoke(ctx)
	case domain.TypeMembers:
		return s.handleMembers()
	case domain.TypePriv:
		return s.handlePrivate(cmd.Text)
	case domain.TypeName:
		return s.handleRename(cmd.Text)
	default:
		// DecodeCommand already rejects unknown discriminators.
		return fmt.Errorf("%w: %q", errors.ErrUnknownMessageType, cmd.Type)
	}
}

// HandleClose removes the session from its room and announces the
// departure to the remaining members. The transport calls it when the
// connection ends; calling it again is a no-op.
func (s *Session) HandleClose() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		name := s.name
		wasJoined := s.state == stateJoined
		s.state = stateClosed
		s.mu.Unlock()

		s.room.Leave(s)
		if wasJoined {
			s.room.Broadcast(domain.Note(fmt.Sprintf("%s left %s.", name, s.room.Name())))
		}
		s.log.Info("session closed", "name", name)
	})
}

func (s *Session) handleJoin(name string) error {
	s.mu.Lock()
	switch s.state {
	case stateJoined:
		s.mu.Unlock()
		return errors.ErrAlreadyJoined
	case stateClosed:
		s.mu.Unlock()
		return errors.ErrSessionClosed
	}
	s.name = name
	s.state = stateJoined
	// Membership must change in step with the state, under the same
	// lock: a close landing between the two would leave a closed
	// session stranded in the room.
	s.room.Join(s)
	s.mu.Unlock()

	s.room.Broadcast(domain.Note(fmt.Sprintf("%s joined %q.", name, s.room.Name())))
	s.log.Info("session joined", "name", name)
	return nil
}

func (s *Session) handleChat(text string) error {
	name, err := s.requireJoined()
	if err != nil {
		return err
	}
	s.room.Broadcast(domain.Chat(name, s.moderate(text)))
	return nil
}

// handleJoke fetches one quip and sends it to this session only. The
// call blocks this session's own read loop but holds no room-wide
// state, so other sessions keep processing. A provider failure is
// answered with an apology instead of surfacing to the room.
func (s *Session) handleJoke(ctx context.Context) error {
	if _, err := s.requireJoined(); err != nil {
		return err
	}
	quip, err := s.quips.Quip(ctx)
	if err != nil {
		s.log.Warn("quip fetch failed", "error", err)
		s.Deliver(domain.ServerChat("Sorry, no jokes available right now."))
		return nil
	}
	s.Deliver(domain.ServerChat(quip))
	return nil
}

func (s *Session) handleMembers() error {
	if _, err := s.requireJoined(); err != nil {
		return err
	}
	names := s.room.MemberNames()
	s.Deliver(domain.ServerChat("In room: " + strings.Join(names, " ")))
	return nil
}

// handlePrivate relays "priv <name> <message>" to a single member and
// echoes a confirmation back to the sender. A missing target is
// answered with a note to the sender, never raised as a fault.
func (s *Session) handlePrivate(text string) error {
	senderName, err := s.requireJoined()
	if err != nil {
		return err
	}

	parts := strings.SplitN(text, " ", 3)
	if len(parts) < 3 || parts[1] == "" || strings.TrimSpace(parts[2]) == "" {
		s.Deliver(domain.Note("usage: priv <name> <message>"))
		return nil
	}
	target, message := parts[1], parts[2]

	member, err := s.room.Member(target)
	if err != nil {
		s.log.Debug("private message dropped", "target", target, "error", err)
		s.Deliver(domain.Note(fmt.Sprintf("No member named %q in this room.", target)))
		return nil
	}

	member.Deliver(domain.Chat("PM from "+senderName, message))
	s.Deliver(domain.Chat("You send PM to "+member.Name(), message))
	return nil
}

// handleRename changes the display name and announces it to the room.
func (s *Session) handleRename(text string) error {
	if _, err := s.requireJoined(); err != nil {
		return err
	}

	parts := strings.Fields(text)
	if len(parts) < 2 {
		s.Deliver(domain.Note("usage: name <newName>"))
		return nil
	}
	newName := parts[1]

	s.mu.Lock()
	oldName := s.name
	s.name = newName
	s.mu.Unlock()

	s.room.Broadcast(domain.Note(fmt.Sprintf("%s changed to %q.", oldName, newName)))
	return nil
}

// requireJoined returns the current display name, or the reason this
// session may not act yet.
func (s *Session) requireJoined() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case stateUnjoined:
		return "", errors.ErrNotJoined
	case stateClosed:
		return "", errors.ErrSessionClosed
	}
	return s.name, nil
}

func (s *Session) moderate(text string) string {
	if s.censor == nil {
		return text
	}
	censored, masked := s.censor.Censor(text)
	if masked > 0 {
		info := whatlanggo.Detect(text)
		s.log.Info("chat text censored",
			"masked_words", masked,
			"lang", info.Lang.Iso6391())
	}
	return censored
}
