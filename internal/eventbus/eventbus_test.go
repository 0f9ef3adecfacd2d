package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSubscribe(t *testing.T) {
	b := New[int]()
	sub := b.Subscribe()
	b.Publish(7)
	select {
	case v := <-sub:
		assert.Equal(t, 7, v)
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestPublishNonBlockingOnFullBuffer(t *testing.T) {
	b := New[int]()
	_ = b.Subscribe()
	for i := 0; i < 100; i++ {
		b.Publish(i) // must not deadlock
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := New[string]()
	sub := b.Subscribe()
	b.Unsubscribe(sub)
	_, open := <-sub
	assert.False(t, open)
}

func TestCloseStopsDelivery(t *testing.T) {
	b := New[int]()
	sub := b.Subscribe()
	b.Close()
	_, open := <-sub
	require.False(t, open)
	b.Publish(1) // dropped, no panic
}
