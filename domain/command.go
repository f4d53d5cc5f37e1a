package domain

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"groupchat/errors"
)

var validate = validator.New()

// Command is one decoded inbound frame. Which of Name and Text is
// meaningful depends on Type.
type Command struct {
	Type string `json:"type" validate:"required"`
	Name string `json:"name" validate:"omitempty,min=1,max=64"`
	Text string `json:"text"`
}

// DecodeCommand parses a raw inbound frame into a Command and checks
// the per-type required fields. It distinguishes undecodable payloads
// (ErrMalformedMessage) from decodable ones carrying an unknown type
// discriminator (ErrUnknownMessageType).
func DecodeCommand(raw []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return Command{}, fmt.Errorf("%w: %v", errors.ErrMalformedMessage, err)
	}
	if err := validate.Struct(cmd); err != nil {
		return Command{}, fmt.Errorf("%w: %v", errors.ErrMalformedMessage, err)
	}

	switch cmd.Type {
	case TypeJoin:
		if cmd.Name == "" {
			return Command{}, fmt.Errorf("%w: join requires a name", errors.ErrMalformedMessage)
		}
	case TypeChat, TypePriv, TypeName:
		if cmd.Text == "" {
			return Command{}, fmt.Errorf("%w: %s requires a text", errors.ErrMalformedMessage, cmd.Type)
		}
	case TypeJoke, TypeMembers:
		// No payload beyond the discriminator.
	default:
		return Command{}, fmt.Errorf("%w: %q", errors.ErrUnknownMessageType, cmd.Type)
	}
	return cmd, nil
}
