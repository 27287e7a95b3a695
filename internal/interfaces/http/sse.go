package http

import (
	"bufio"
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/lotes-api/internal/application/dto"
	"github.com/jhoicas/lotes-api/internal/application/live"
)

const sseHeartbeat = 25 * time.Second

type sseEvent struct {
	name string
	data interface{}
}

// streamView abre un stream SSE respaldado por un live.Watcher: un evento "update" con la vista
// completa al conectar y otro tras cada cambio confirmado. La suscripción se suelta cuando
// el cliente se desconecta (la escritura falla).
func streamView[T any](c *fiber.Ctx, source live.Source, load live.LoadFunc[T], log zerolog.Logger) error {
	if source == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "LIVE_UNAVAILABLE", Message: "vista en vivo no disponible"})
	}
	encode := c.App().Config().JSONEncoder

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		updates := make(chan sseEvent, 8)
		watcher := live.NewWatcher(source, load, log)
		defer func() {
			cancel()
			watcher.Detach()
		}()

		err := watcher.Attach(ctx, func(v T, err error) {
			ev := sseEvent{name: "update", data: v}
			if err != nil {
				ev = sseEvent{name: "error", data: dto.ErrorResponse{Code: "LIVE_READ", Message: err.Error()}}
			}
			select {
			case updates <- ev:
			case <-ctx.Done():
			}
		})
		if err != nil {
			log.Warn().Err(err).Msg("no se pudo abrir la suscripción en vivo")
			_ = writeSSE(w, encode, sseEvent{name: "error", data: dto.ErrorResponse{Code: "LIVE_UNAVAILABLE", Message: err.Error()}})
			return
		}

		ticker := time.NewTicker(sseHeartbeat)
		defer ticker.Stop()
		for {
			select {
			case ev := <-updates:
				if err := writeSSE(w, encode, ev); err != nil {
					log.Debug().Err(err).Msg("cliente SSE desconectado")
					return
				}
			case <-ticker.C:
				if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

func writeSSE(w *bufio.Writer, encode utils.JSONMarshal, ev sseEvent) error {
	payload, err := encode(ev.data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.name, payload); err != nil {
		return err
	}
	return w.Flush()
}
