package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de precificação de um item de tabela.
const (
	PriceTypeBase     = "base"     // usa o preço base do produto
	PriceTypeDesconto = "desconto" // Value é o preço final após desconto percentual
	PriceTypeFixo     = "fixo"     // Value é o preço final após desconto em valor
)

// PriceTable representa uma tabela de preço de um cliente. Um cliente pode
// ter várias tabelas ao longo do tempo, mas no máximo uma deve estar ativa
// e dentro da janela [ValidFrom, ValidUntil] em um dado instante.
//
// O estado de vigência (INATIVA/AGENDADA/EXPIRADA/VIGENTE) é derivado dos
// campos armazenados mais o relógio; nunca é persistido. Ver pricing.Status.
type PriceTable struct {
	ID           string
	ClientID     string
	VendedorID   string
	Name         string
	Active       bool
	MinOrder     decimal.Decimal
	ValidFrom    *time.Time // nil = sem início definido
	ValidUntil   *time.Time // nil = sem fim definido
	PaymentTerms string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PausedSchedule indica o estado "agenda pausada": datas definidas com a
// tabela desativada. Comportamento intencional porém confuso para o operador;
// a API sinaliza para que a UI possa alertar.
func (t *PriceTable) PausedSchedule() bool {
	return !t.Active && (t.ValidFrom != nil || t.ValidUntil != nil)
}

// PriceTableItem é a regra de preço/quantidade de um produto dentro de uma
// tabela. Value guarda o preço final já calculado (exceto para o tipo base,
// em que o preço vem do produto no momento da leitura).
type PriceTableItem struct {
	ID           string
	PriceTableID string
	ProductID    string
	PriceType    string // base, desconto, fixo
	Value        decimal.Decimal
	MinQuantity  int
	CreatedAt    time.Time
}
