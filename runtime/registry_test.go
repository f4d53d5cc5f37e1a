package runtime

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"groupchat/domain"
)

func TestRegistry_Get_SameNameSameRoom(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	lobby := registry.Get("lobby")
	req.NotNil(lobby)
	req.Equal("lobby", lobby.Name())

	req.Same(lobby, registry.Get("lobby"))
	req.Equal(1, registry.Len())
}

func TestRegistry_Get_DistinctNamesDistinctRooms(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	lobby := registry.Get("lobby")
	den := registry.Get("den")

	req.NotSame(lobby, den)
	req.Equal(2, registry.Len())
}

func TestRegistry_Get_ConcurrentFirstReference(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	const workers = 32
	rooms := make(chan *domain.Room, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rooms <- registry.Get("lobby")
		}()
	}
	wg.Wait()
	close(rooms)

	first := <-rooms
	for room := range rooms {
		req.Same(first, room)
	}
	req.Equal(1, registry.Len())
}

func TestRegistry_Get_ConcurrentDistinctNames(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	const roomCount = 16
	var wg sync.WaitGroup
	for i := 0; i < roomCount; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			// Two racing first references per name.
			registry.Get(fmt.Sprintf("room-%d", n))
			registry.Get(fmt.Sprintf("room-%d", n))
		}(i)
	}
	wg.Wait()

	req.Equal(roomCount, registry.Len())
}
