// Package domain contains core concepts of the chat system.
// This file defines the wire messages exchanged with clients.
// No runtime, network, or UI logic should be added here.
package domain

// Message type discriminators. Inbound frames use the first six,
// outbound frames only ever carry TypeNote or TypeChat.
const (
	TypeJoin    = "join"
	TypeChat    = "chat"
	TypeJoke    = "joke"
	TypeMembers = "members"
	TypePriv    = "priv"
	TypeName    = "name"
	TypeNote    = "note"
)

// ServerName labels messages authored by the system itself.
const ServerName = "Server"

// Message is one outbound frame, ready to be serialized by the
// transport layer.
type Message struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	Text string `json:"text"`
}

// Note builds a system announcement visible to a whole room.
func Note(text string) Message {
	return Message{Type: TypeNote, Text: text}
}

// Chat builds a chat message attributed to a display name.
func Chat(name, text string) Message {
	return Message{Type: TypeChat, Name: name, Text: text}
}

// ServerChat builds a chat message authored by the server.
func ServerChat(text string) Message {
	return Chat(ServerName, text)
}
