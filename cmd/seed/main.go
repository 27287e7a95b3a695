// seed carga datos en la base PostgreSQL configurada.
//
// Uso:
//
//	go run ./cmd/seed -demo
//	go run ./cmd/seed -csv lotes.csv [-comma ';'] [-latin1] [-admin admin-1]
//
// El CSV debe traer cabecera con al menos product_name y quantity; columnas opcionales:
// category, size, unit_price, serial_number, order_id, seller_id, purchased_at.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/lotes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/lotes-api/internal/infrastructure/seed"
	"github.com/jhoicas/lotes-api/pkg/config"
	"github.com/jhoicas/lotes-api/pkg/logger"
)

func main() {
	demo := flag.Bool("demo", false, "cargar vendedores, pedidos y lotes de ejemplo")
	csvPath := flag.String("csv", "", "archivo CSV de lotes a importar")
	comma := flag.String("comma", ",", "separador del CSV")
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1")
	adminID := flag.String("admin", "admin", "admin_id asignado a los lotes importados")
	flag.Parse()

	if !*demo && *csvPath == "" {
		fmt.Fprintln(os.Stderr, "indique -demo o -csv <archivo>")
		flag.Usage()
		os.Exit(2)
	}
	sep, size := utf8.DecodeRuneInString(*comma)
	if size == 0 || size != len(*comma) {
		fmt.Fprintf(os.Stderr, "separador inválido %q\n", *comma)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, App: "seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	lots := postgres.NewLotRepository(pool)
	now := time.Now()

	if *demo {
		err := seed.Demo(ctx, seed.Targets{
			Agents: postgres.NewAgentRepository(pool),
			Orders: postgres.NewOrderRepository(pool),
			Lots:   lots,
		}, now)
		if err != nil {
			log.Fatal().Err(err).Msg("cargar datos de ejemplo")
		}
		log.Info().Msg("datos de ejemplo cargados")
	}

	if *csvPath != "" {
		f, err := os.Open(*csvPath)
		if err != nil {
			log.Fatal().Err(err).Str("file", *csvPath).Msg("abrir CSV")
		}
		defer f.Close()

		n, err := seed.ImportLots(ctx, f, seed.ImportOptions{Comma: sep, Latin1: *latin1, AdminID: *adminID}, lots, now)
		if err != nil {
			log.Fatal().Err(err).Int("created", n).Str("file", *csvPath).Msg("importar lotes")
		}
		log.Info().Int("created", n).Str("file", *csvPath).Msg("lotes importados")
	}
}
