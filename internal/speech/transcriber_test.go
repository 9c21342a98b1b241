package speech

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranscriberAccumulates(t *testing.T) {
	tr := New()
	tr.Start()
	assert.True(t, tr.IsRecording())

	assert.True(t, tr.Feed("hello"))
	assert.True(t, tr.Feed("  world  "))
	assert.Equal(t, "hello world", tr.Transcript())

	tr.Reset()
	assert.Empty(t, tr.Transcript())
}

func TestTranscriberDropsWhenStopped(t *testing.T) {
	tr := New()
	tr.Start()
	tr.Stop()

	assert.False(t, tr.Feed("ignored"))
	assert.Empty(t, tr.Transcript())
}

func TestTranscriberDropsEmptyChunks(t *testing.T) {
	tr := New()
	tr.Start()
	assert.False(t, tr.Feed("   "))
	assert.Empty(t, tr.Transcript())
}
