package worker

import (
	"context"
	"encoding/json"

	"github.com/Cxldas/Sistema-de-estoque/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// EmailJobPayload is what producers put on QueueEmail: password-recovery
// tokens and low-stock alert summaries.
type EmailJobPayload struct {
	Para    string `json:"para"`
	Assunto string `json:"assunto"`
	Corpo   string `json:"corpo"`
}

// EmailWorker delivers queued emails over SMTP.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process decodes and sends one email job. Undeliverable jobs go to the DLQ;
// malformed or recipient-less payloads are dropped, since requeueing them
// can never succeed.
func (w *EmailWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var p EmailJobPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Error().Err(err).Msg("email job with malformed payload dropped")
		return
	}
	if p.Para == "" {
		log.Warn().Msg("email job without recipient dropped")
		return
	}

	if err := w.mailer.Send(p.Para, p.Assunto, p.Corpo); err != nil {
		log.Error().Err(err).Str("para", p.Para).Msg("email delivery failed")
		SendToDLQ(ctx, rdb, QueueEmail, "email", raw, err.Error(), 1)
		return
	}
	log.Info().Str("para", p.Para).Msg("email sent")
}
