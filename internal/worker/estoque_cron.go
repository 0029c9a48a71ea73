package worker

// estoque_cron.go
// Background goroutine that periodically scans for products below the
// low-stock threshold and enqueues an alert email to the configured admin
// address. Disabled when no recipient is set.

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Cxldas/Sistema-de-estoque/internal/repository"

	"github.com/rs/zerolog/log"
)

// EstoqueCronConfig holds all dependencies for the alert goroutine.
type EstoqueCronConfig struct {
	ProdutoRepo repository.ProdutoRepository
	Dispatcher  *Dispatcher
	Limiar      int
	Destino     string
	Intervalo   time.Duration
}

// StartEstoqueCron launches a background goroutine that ticks on the
// configured interval and emails a low-stock summary when anything is below
// the threshold. It respects the context for graceful shutdown.
func StartEstoqueCron(ctx context.Context, cfg EstoqueCronConfig) {
	if cfg.Destino == "" {
		log.Info().Msg("estoque_cron: no ALERTA_EMAIL configured, disabled")
		return
	}

	go func() {
		ticker := time.NewTicker(cfg.Intervalo)
		defer ticker.Stop()

		log.Info().Dur("intervalo", cfg.Intervalo).Msg("estoque_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("estoque_cron: shutting down")
				return
			case <-ticker.C:
				verificarEstoque(ctx, cfg)
			}
		}
	}()
}

func verificarEstoque(ctx context.Context, cfg EstoqueCronConfig) {
	produtos, err := cfg.ProdutoRepo.ListAbaixoDe(ctx, cfg.Limiar)
	if err != nil {
		log.Error().Err(err).Msg("estoque_cron: failed to query low stock")
		return
	}
	if len(produtos) == 0 {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Produtos abaixo do limiar de estoque (%d):\n\n", cfg.Limiar)
	for i := range produtos {
		fmt.Fprintf(&b, "- %s (%s): %d unidade(s)\n", produtos[i].Nome, produtos[i].Categoria, produtos[i].Quantidade)
	}

	payload := EmailJobPayload{
		Para:    cfg.Destino,
		Assunto: fmt.Sprintf("Alerta de estoque baixo: %d produto(s)", len(produtos)),
		Corpo:   b.String(),
	}
	if err := cfg.Dispatcher.EnqueueEmail(ctx, payload); err != nil {
		log.Error().Err(err).Msg("estoque_cron: failed to enqueue alert email")
		return
	}
	log.Info().Int("produtos", len(produtos)).Msg("estoque_cron: alert enqueued")
}
