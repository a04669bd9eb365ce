package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabha-hub/nabha-learning-hub/internal/domain/shared"
)

func TestInMemoryEventBus_SyncDelivery(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultConfig())
	defer bus.Close()

	var received []shared.Event
	err := bus.Subscribe(shared.EventUserLoggedIn, func(e shared.Event) error {
		received = append(received, e)
		return nil
	})
	require.NoError(t, err)

	event := shared.NewUserLoggedInEvent("amrit", "student", true)
	require.NoError(t, bus.Publish(event))

	// Sync mode: delivery completes before Publish returns.
	require.Len(t, received, 1)
	got, ok := received[0].(shared.UserLoggedInEvent)
	require.True(t, ok)
	assert.Equal(t, "amrit", got.Username)
	assert.True(t, got.IsNewUser)
}

func TestInMemoryEventBus_TypeFiltering(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultConfig())
	defer bus.Close()

	var loginCount, allCount int
	require.NoError(t, bus.Subscribe(shared.EventUserLoggedIn, func(shared.Event) error {
		loginCount++
		return nil
	}))
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		allCount++
		return nil
	}))

	require.NoError(t, bus.Publish(shared.NewUserLoggedInEvent("amrit", "student", false)))
	require.NoError(t, bus.Publish(shared.NewCourseAddedEvent("course3", "Science Club", "admin1")))

	assert.Equal(t, 1, loginCount)
	assert.Equal(t, 2, allCount)
}

func TestInMemoryEventBus_HandlerErrorDoesNotFailPublish(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultConfig())
	defer bus.Close()

	require.NoError(t, bus.Subscribe(shared.EventBadgeAwarded, func(shared.Event) error {
		return assert.AnError
	}))

	// Handler failures are logged, never surfaced to the publisher.
	assert.NoError(t, bus.Publish(shared.NewBadgeAwardedEvent("amrit", "Welcome Badge")))
	assert.Equal(t, int64(1), bus.Metrics().HandlerFailures)
}

func TestInMemoryEventBus_ClosedRejectsPublish(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultConfig())
	require.NoError(t, bus.Close())

	err := bus.Publish(shared.NewUserLoggedInEvent("amrit", "student", false))
	assert.ErrorIs(t, err, ErrEventBusClosed)

	err = bus.Subscribe(shared.EventUserLoggedIn, func(shared.Event) error { return nil })
	assert.ErrorIs(t, err, ErrEventBusClosed)

	// Closing twice is fine.
	assert.NoError(t, bus.Close())
}

func TestInMemoryEventBus_Metrics(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultConfig())
	defer bus.Close()

	require.NoError(t, bus.Subscribe(shared.EventQuizFinished, func(shared.Event) error { return nil }))
	require.NoError(t, bus.Publish(shared.NewQuizFinishedEvent("math", "amrit", "amrit", 1, 1)))
	require.NoError(t, bus.Publish(shared.NewQuizFinishedEvent("math", "", "guest", 0, 1)))

	m := bus.Metrics()
	assert.Equal(t, int64(2), m.Published(shared.EventQuizFinished))
	assert.Equal(t, int64(2), m.HandlerExecutions)
	assert.Equal(t, int64(2), m.HandlerSuccesses)
}
