// Package pricing concentra as regras puras de precificação do portal:
// o estado de vigência das tabelas de preço, a calculadora de desconto,
// a resolução da tabela efetiva de um cliente e a trava de pedido mínimo.
//
// Nada aqui toca rede ou banco: toda função é determinística sobre os
// campos armazenados mais o instante recebido por parâmetro.
package pricing

import (
	"time"

	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
)

// TableStatus é o estado derivado de vigência de uma tabela de preço.
// Nunca é persistido: recalculado em toda leitura para não divergir do relógio.
type TableStatus string

const (
	StatusInativa  TableStatus = "INATIVA"
	StatusAgendada TableStatus = "AGENDADA"
	StatusExpirada TableStatus = "EXPIRADA"
	StatusVigente  TableStatus = "VIGENTE"
)

// Status deriva o estado de vigência da tabela no instante now.
//
// O flag Active é deliberadamente independente da janela de datas: uma tabela
// com datas definidas porém desativada permanece INATIVA ("agenda pausada").
func Status(t *entity.PriceTable, now time.Time) TableStatus {
	if !t.Active {
		return StatusInativa
	}
	if t.ValidFrom != nil && t.ValidFrom.After(now) {
		return StatusAgendada
	}
	if t.ValidUntil != nil && t.ValidUntil.Before(now) {
		return StatusExpirada
	}
	return StatusVigente
}
