package feed

import (
	"sync"

	"github.com/rs/zerolog/log"

	"example.com/relieftrack/services/tracker/internal/model"
)

// Feed fans activity entries out to live subscribers. Publishing never
// blocks: a subscriber whose channel is full misses the entry and can
// re-query the log to catch up.
type Feed struct {
	mu      sync.Mutex
	subs    map[uint64]chan model.ActivityLog
	nextID  uint64
	bufSize int
	closed  bool
}

// New creates a feed whose subscriber channels hold bufSize entries.
func New(bufSize int) *Feed {
	if bufSize <= 0 {
		bufSize = 64
	}
	return &Feed{
		subs:    make(map[uint64]chan model.ActivityLog),
		bufSize: bufSize,
	}
}

// Subscribe registers a listener. The returned cancel func must be called
// when the listener goes away; it closes the channel.
func (f *Feed) Subscribe() (<-chan model.ActivityLog, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan model.ActivityLog, f.bufSize)
	if f.closed {
		close(ch)
		return ch, func() {}
	}

	id := f.nextID
	f.nextID++
	f.subs[id] = ch

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if sub, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers an entry to every subscriber
func (f *Feed) Publish(entry model.ActivityLog) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, ch := range f.subs {
		select {
		case ch <- entry:
		default:
			log.Warn().Uint64("subscriber", id).Msg("Feed subscriber full, dropping entry")
		}
	}
}

// SubscriberCount returns the number of active subscribers
func (f *Feed) SubscriberCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Close shuts the feed down and closes all subscriber channels
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	for id, ch := range f.subs {
		delete(f.subs, id)
		close(ch)
	}
}
