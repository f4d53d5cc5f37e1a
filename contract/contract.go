//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"

	"groupchat/domain"
)

// Sender pushes one outbound message toward a connected client.
// Implementations are owned by the transport layer. Delivery is
// best-effort: an error means this single frame was not queued, and
// callers are expected to drop it rather than retry.
type Sender interface {
	Send(msg domain.Message) error
}

// QuipProvider returns one short humorous line from an external
// source. A failure only affects the request that triggered it.
type QuipProvider interface {
	Quip(ctx context.Context) (string, error)
}
