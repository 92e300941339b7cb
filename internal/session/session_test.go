package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/afos-pos/internal/checkout"
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	"github.com/aaravmahajanofficial/afos-pos/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

var profile = models.UserProfile{Name: "Wiron R", Balance: 200000, ServiceNumber: "RDF-0042"}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Create And Get", func(t *testing.T) {
		// Arrange
		store := session.NewMemoryStore(time.Hour, nil)

		// Act
		s, err := store.Create(ctx, profile)

		// Assert
		require.NoError(t, err)
		assert.NotEmpty(t, s.ID)
		assert.Equal(t, profile, s.User)
		assert.Equal(t, 1, store.Len())

		got, ok := store.Get(ctx, s.ID)
		require.True(t, ok)
		assert.Same(t, s, got)
	})

	t.Run("Success - Delete", func(t *testing.T) {
		store := session.NewMemoryStore(time.Hour, nil)
		s, _ := store.Create(ctx, profile)

		store.Delete(ctx, s.ID)

		_, ok := store.Get(ctx, s.ID)
		assert.False(t, ok)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("Failure - Unknown Id", func(t *testing.T) {
		store := session.NewMemoryStore(time.Hour, nil)

		_, ok := store.Get(ctx, "missing")

		assert.False(t, ok)
	})

	t.Run("Failure - Expired Session", func(t *testing.T) {
		c := &clock{now: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)}
		store := session.NewMemoryStore(time.Hour, c.Now)
		s, _ := store.Create(ctx, profile)

		c.Advance(time.Hour)

		_, ok := store.Get(ctx, s.ID)
		assert.False(t, ok)
		assert.Equal(t, 1, store.Len(), "kept until swept")
	})
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	c := &clock{now: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)}
	store := session.NewMemoryStore(time.Hour, c.Now)

	old, _ := store.Create(ctx, profile)
	old.Lock()
	old.Cart().AddItem(models.Product{ID: "rice", Price: 1000})
	old.Unlock()

	c.Advance(30 * time.Minute)
	fresh, _ := store.Create(ctx, profile)
	c.Advance(31 * time.Minute)

	removed := store.Sweep()

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Len())
	_, ok := store.Get(ctx, fresh.ID)
	assert.True(t, ok)

	old.Lock()
	defer old.Unlock()
	assert.True(t, old.Ended())
	assert.True(t, old.Cart().IsEmpty())
}

func TestRun(t *testing.T) {
	c := &clock{now: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)}
	store := session.NewMemoryStore(time.Minute, c.Now)
	_, _ = store.Create(context.Background(), profile)
	c.Advance(2 * time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestEndStopsPendingAttempt(t *testing.T) {
	store := session.NewMemoryStore(time.Hour, nil)
	s, _ := store.Create(context.Background(), profile)

	m := checkout.NewMachine(checkout.Config{ProcessingDwell: 20 * time.Millisecond, SuccessDwell: 20 * time.Millisecond})

	s.Lock()
	s.Cart().AddItem(models.Product{ID: "rice", Price: 1000})
	s.SetAttempt(m.Start(checkout.StartParams{Total: 1000, Method: models.PaymentMethodMomo, Lines: s.Cart().Lines()}))
	assert.True(t, s.CheckoutActive())
	s.Unlock()

	store.Close()
	time.Sleep(60 * time.Millisecond)

	s.Lock()
	defer s.Unlock()
	assert.True(t, s.Ended())
	assert.False(t, s.CheckoutActive())
	assert.Equal(t, models.CheckoutStateProcessing, s.Attempt().State(), "no transition after teardown")
	assert.Equal(t, 0, store.Len())
}

func TestConversation(t *testing.T) {
	s := session.New("id", profile, time.Now(), time.Hour)

	s.Lock()
	defer s.Unlock()

	for i := range 6 {
		s.AppendConversation(4,
			models.ChatMessage{Role: models.ChatRoleUser, Text: string(rune('a' + i))},
		)
	}

	conv := s.Conversation()
	require.Len(t, conv, 4)
	assert.Equal(t, "c", conv[0].Text)
	assert.Equal(t, "f", conv[3].Text)

	conv[0].Text = "mutated"
	assert.Equal(t, "c", s.Conversation()[0].Text)
}
