package memory

import (
	"context"
	"sync"
)

type feeds struct {
	mu   sync.Mutex
	subs map[Topic]map[chan struct{}]struct{}
}

func newFeeds() *feeds {
	return &feeds{subs: map[Topic]map[chan struct{}]struct{}{}}
}

// publish avisa a los suscriptores sin bloquear; avisos pendientes se fusionan en uno.
func (f *feeds) publish(t Topic) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs[t] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Feed emite una señal por cada escritura confirmada en su colección.
type Feed struct {
	feeds *feeds
	topic Topic
}

// Changes registra un suscriptor; el canal se cierra al cancelar ctx.
func (f *Feed) Changes(ctx context.Context) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)
	f.feeds.mu.Lock()
	if f.feeds.subs[f.topic] == nil {
		f.feeds.subs[f.topic] = map[chan struct{}]struct{}{}
	}
	f.feeds.subs[f.topic][ch] = struct{}{}
	f.feeds.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.feeds.mu.Lock()
		delete(f.feeds.subs[f.topic], ch)
		close(ch)
		f.feeds.mu.Unlock()
	}()
	return ch, nil
}
