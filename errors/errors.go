package errors

import "fmt"

var (
	ErrMalformedMessage   = fmt.Errorf("malformed message")
	ErrUnknownMessageType = fmt.Errorf("unknown message type")
	ErrRecipientNotFound  = fmt.Errorf("recipient not found")
	ErrDeliveryFailed     = fmt.Errorf("delivery failed")
	ErrQuipUnavailable    = fmt.Errorf("quip provider unavailable")
	ErrNotJoined          = fmt.Errorf("session has not joined yet")
	ErrAlreadyJoined      = fmt.Errorf("session already joined")
	ErrSessionClosed      = fmt.Errorf("session closed")
	ErrEmptyWords         = fmt.Errorf("no words have been found")
)
