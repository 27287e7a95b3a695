// Package live mantiene vistas en vivo: cada cambio confirmado en la colección observada
// provoca una relectura completa y una nueva emisión. Nunca se aplican parches incrementales.
package live

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Source emite una señal por cada escritura confirmada en la colección observada.
// El canal se cierra al cancelar ctx.
type Source interface {
	Changes(ctx context.Context) (<-chan struct{}, error)
}

// LoadFunc lectura completa de la vista.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// Watcher suscripción a una vista en vivo. Attach y Detach son idempotentes;
// cada Watcher atiende a un único suscriptor.
type Watcher[T any] struct {
	source Source
	load   LoadFunc[T]
	log    zerolog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWatcher construye un watcher sin adjuntar.
func NewWatcher[T any](source Source, load LoadFunc[T], log zerolog.Logger) *Watcher[T] {
	return &Watcher[T]{source: source, load: load, log: log}
}

// Attach emite la vista actual y una nueva vista tras cada cambio hasta Detach o hasta que ctx
// se cancele. Si ya está adjunto no hace nada. onUpdate no debe llamar a Detach.
func (w *Watcher[T]) Attach(ctx context.Context, onUpdate func(T, error)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return nil
	}

	wctx, cancel := context.WithCancel(ctx)
	changes, err := w.source.Changes(wctx)
	if err != nil {
		cancel()
		return err
	}
	done := make(chan struct{})
	w.cancel, w.done = cancel, done

	go func() {
		defer close(done)
		w.emit(wctx, onUpdate)
		for {
			select {
			case <-wctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				w.emit(wctx, onUpdate)
			}
		}
	}()
	return nil
}

func (w *Watcher[T]) emit(ctx context.Context, onUpdate func(T, error)) {
	v, err := w.load(ctx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		w.log.Warn().Err(err).Msg("no se pudo releer la vista en vivo")
	}
	onUpdate(v, err)
}

// Detach detiene las emisiones y espera a que termine la emisión en curso.
// Tras volver no se invoca más onUpdate. Llamarlo sin Attach no hace nada.
func (w *Watcher[T]) Detach() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Attached indica si hay una suscripción activa.
func (w *Watcher[T]) Attached() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cancel != nil
}
