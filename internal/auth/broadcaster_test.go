package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBroadcasterPublishAndUnsubscribe(t *testing.T) {
	b := NewBroadcaster()

	var got []string
	unsub := b.Subscribe(func(key string) { got = append(got, key) })

	b.Publish("alice@example.com")
	b.Publish("")
	assert.Equal(t, []string{"alice@example.com", ""}, got)

	unsub()
	b.Publish("bob@example.com")
	assert.Len(t, got, 2)

	// unsubscribing twice is harmless
	unsub()
}

func TestBroadcasterMultipleSubscribers(t *testing.T) {
	b := NewBroadcaster()

	var a, c int
	b.Subscribe(func(string) { a++ })
	b.Subscribe(func(string) { c++ })

	b.Publish("x")
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, c)
}
