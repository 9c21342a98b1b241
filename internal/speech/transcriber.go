package speech

import (
	"strings"
	"sync"
)

// Transcriber accumulates recognized speech for one interview. Recognition
// itself happens on the client; the server only collects text chunks, so the
// transcript is interchangeable with typed answers downstream.
type Transcriber struct {
	mu        sync.Mutex
	recording bool
	parts     []string
}

func New() *Transcriber {
	return &Transcriber{}
}

func (t *Transcriber) Start() {
	t.mu.Lock()
	t.recording = true
	t.mu.Unlock()
}

func (t *Transcriber) Stop() {
	t.mu.Lock()
	t.recording = false
	t.mu.Unlock()
}

func (t *Transcriber) IsRecording() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.recording
}

// Feed appends a chunk; chunks arriving while not recording are dropped.
func (t *Transcriber) Feed(chunk string) bool {
	chunk = strings.TrimSpace(chunk)
	if chunk == "" {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.recording {
		return false
	}
	t.parts = append(t.parts, chunk)
	return true
}

func (t *Transcriber) Transcript() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.Join(t.parts, " ")
}

func (t *Transcriber) Reset() {
	t.mu.Lock()
	t.parts = nil
	t.mu.Unlock()
}
