package ws

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"groupchat/domain"
	"groupchat/errors"
)

func TestClient_Send_DropsWhenBufferFull(t *testing.T) {
	req := require.New(t)
	client := NewClient(logs.GetLoggerFromLevel(slog.LevelDebug), nil, 1)

	req.NoError(client.Send(domain.Note("first")))

	err := client.Send(domain.Note("second"))
	req.ErrorIs(err, errors.ErrDeliveryFailed)
}

// A broadcast snapshot can still hold a client whose connection just
// went away. Delivering to it must report a failure, not panic on the
// closed outbound channel.
func TestClient_Send_AfterDisconnectReportsFailure(t *testing.T) {
	req := require.New(t)
	client := NewClient(logs.GetLoggerFromLevel(slog.LevelDebug), nil, 1)
	client.close()
	client.close()

	err := client.Send(domain.Note("late broadcast"))
	req.ErrorIs(err, errors.ErrDeliveryFailed)
}

func TestClient_Send_RacingDisconnectNeverPanics(t *testing.T) {
	req := require.New(t)
	client := NewClient(logs.GetLoggerFromLevel(slog.LevelDebug), nil, 4)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = client.Send(domain.Note("tick"))
		}
	}()
	go func() {
		defer wg.Done()
		client.close()
	}()
	wg.Wait()

	req.ErrorIs(client.Send(domain.Note("after")), errors.ErrDeliveryFailed)
}
