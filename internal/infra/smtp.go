package infra

import (
	"fmt"
	"net/smtp"

	"github.com/Cxldas/Sistema-de-estoque/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer sends the system's transactional emails (password recovery,
// low-stock alerts) through a single configured SMTP account.
type Mailer struct {
	cfg *config.Config
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers one plain-text message.
func (m *Mailer) Send(para, assunto, corpo string) error {
	msg := email.NewEmail()
	msg.From = m.cfg.SMTPUser
	msg.To = []string{para}
	msg.Subject = assunto
	msg.Text = []byte(corpo)

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	return msg.Send(addr, auth)
}
