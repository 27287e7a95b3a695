package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Canales publicados por los triggers de 000002_change_notifications.
const (
	ChannelLots        = "lots_changed"
	ChannelOrders      = "orders_changed"
	ChannelSales       = "sales_changed"
	ChannelCommissions = "commissions_changed"
)

// Notifier convierte LISTEN/NOTIFY en fuentes de cambios para las vistas en vivo.
type Notifier struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewNotifier construye el notificador.
func NewNotifier(pool *pgxpool.Pool, log zerolog.Logger) *Notifier {
	return &Notifier{pool: pool, log: log.With().Str("component", "notifier").Logger()}
}

// Feed fuente de cambios de un canal.
func (n *Notifier) Feed(channel string) *Feed {
	return &Feed{n: n, channel: channel}
}

// Feed escucha un canal con una conexión dedicada del pool mientras ctx siga vivo.
type Feed struct {
	n       *Notifier
	channel string
}

// Changes emite una señal por cada NOTIFY recibido; avisos pendientes se fusionan en uno.
func (f *Feed) Changes(ctx context.Context) (<-chan struct{}, error) {
	conn, err := f.n.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", f.channel, err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{f.channel}.Sanitize()); err != nil {
		conn.Release()
		return nil, fmt.Errorf("listen %s: %w", f.channel, err)
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		defer func() {
			unlistenCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_, _ = conn.Exec(unlistenCtx, "UNLISTEN *")
			conn.Release()
		}()
		for {
			if _, err := conn.Conn().WaitForNotification(ctx); err != nil {
				if ctx.Err() == nil {
					f.n.log.Warn().Err(err).Str("channel", f.channel).Msg("escucha de cambios interrumpida")
				}
				return
			}
			select {
			case ch <- struct{}{}:
			default:
			}
		}
	}()
	return ch, nil
}
