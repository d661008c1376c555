// Package mailer envia as notificações de pedido por SMTP. Sem SMTP_HOST
// configurado o envio vira no-op, para ambientes de desenvolvimento.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"github.com/rs/zerolog/log"

	"github.com/rmacedo/portal-pedidos-api/internal/application/orders"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
	"github.com/rmacedo/portal-pedidos-api/pkg/brl"
	"github.com/rmacedo/portal-pedidos-api/pkg/config"
)

var _ orders.Mailer = (*SMTPMailer)(nil)

// SMTPMailer implementa orders.Mailer via SMTP com autenticação PLAIN.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// New constrói o mailer. Se a configuração estiver vazia, os envios são
// descartados com um log de debug.
func New(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// OrderCreated envia ao vendedor o resumo do pedido recém-criado.
func (m *SMTPMailer) OrderCreated(ctx context.Context, to string, order *entity.Order, client *entity.Client) error {
	if !m.cfg.Enabled() {
		log.Debug().Str("para", to).Msg("SMTP desabilitado; notificação descartada")
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Novo pedido de %s\r\n\r\n", client.RazaoSocial)
	fmt.Fprintf(&b, "Pedido: %s\r\n", order.ID)
	fmt.Fprintf(&b, "Data: %s\r\n\r\n", order.CreatedAt.Format("02/01/2006 15:04"))
	for _, it := range order.Items {
		fmt.Fprintf(&b, "  %dx %s (%s): %s\r\n",
			it.Quantity, it.ProductName, it.ProductSKU, brl.Format(it.Subtotal))
	}
	fmt.Fprintf(&b, "\r\nTotal: %s\r\n", brl.Format(order.TotalAmount))
	if order.Notes != "" {
		fmt.Fprintf(&b, "\r\nObservações: %s\r\n", order.Notes)
	}

	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Novo pedido de %s (%s)", client.RazaoSocial, brl.Format(order.TotalAmount))
	e.Text = []byte(b.String())

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}
	if err := e.Send(m.cfg.Addr(), auth); err != nil {
		return fmt.Errorf("enviar e-mail: %w", err)
	}
	return nil
}
