// Package pricing orquestra as tabelas de preço: CRUD, itens com a
// calculadora de desconto e o contrato de ativação transacional.
package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rmacedo/portal-pedidos-api/internal/application/dto"
	"github.com/rmacedo/portal-pedidos-api/internal/domain"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
	domainpricing "github.com/rmacedo/portal-pedidos-api/internal/domain/pricing"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/repository"
)

// PriceTableUseCase casos de uso de tabelas de preço.
type PriceTableUseCase struct {
	repo        repository.PriceTableRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	tx          TxRunner
	now         func() time.Time
}

// NewPriceTableUseCase constrói o caso de uso. nowFn nil usa time.Now.
func NewPriceTableUseCase(
	repo repository.PriceTableRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	tx TxRunner,
	nowFn func() time.Time,
) *PriceTableUseCase {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &PriceTableUseCase{repo: repo, productRepo: productRepo, clientRepo: clientRepo, tx: tx, now: nowFn}
}

// Create cria uma tabela desativada; a ativação é operação explícita.
func (uc *PriceTableUseCase) Create(ctx context.Context, vendedorID string, in dto.CreatePriceTableRequest) (*dto.PriceTableResponse, error) {
	client, err := uc.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNaoEncontrado
	}
	if in.MinOrder.IsNegative() {
		return nil, domain.ErrEntradaInvalida
	}
	if in.ValidFrom != nil && in.ValidUntil != nil && in.ValidUntil.Before(*in.ValidFrom) {
		return nil, domain.ErrEntradaInvalida
	}
	now := uc.now()
	table := &entity.PriceTable{
		ID:           uuid.New().String(),
		ClientID:     in.ClientID,
		VendedorID:   vendedorID,
		Name:         in.Name,
		Active:       false,
		MinOrder:     in.MinOrder,
		ValidFrom:    in.ValidFrom,
		ValidUntil:   in.ValidUntil,
		PaymentTerms: in.PaymentTerms,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, table); err != nil {
		return nil, err
	}
	return uc.toResponse(table), nil
}

// GetByID obtém uma tabela com o status derivado no instante da leitura.
func (uc *PriceTableUseCase) GetByID(ctx context.Context, id string) (*dto.PriceTableResponse, error) {
	table, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, nil
	}
	return uc.toResponse(table), nil
}

// Update edita as configurações da tabela (não mexe em Active).
func (uc *PriceTableUseCase) Update(ctx context.Context, id string, in dto.UpdatePriceTableRequest) (*dto.PriceTableResponse, error) {
	table, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, nil
	}
	if in.Name != nil {
		table.Name = *in.Name
	}
	if in.MinOrder != nil {
		if in.MinOrder.IsNegative() {
			return nil, domain.ErrEntradaInvalida
		}
		table.MinOrder = *in.MinOrder
	}
	if in.ClearWindow {
		table.ValidFrom = nil
		table.ValidUntil = nil
	} else {
		if in.ValidFrom != nil {
			table.ValidFrom = in.ValidFrom
		}
		if in.ValidUntil != nil {
			table.ValidUntil = in.ValidUntil
		}
	}
	if table.ValidFrom != nil && table.ValidUntil != nil && table.ValidUntil.Before(*table.ValidFrom) {
		return nil, domain.ErrEntradaInvalida
	}
	if in.PaymentTerms != nil {
		table.PaymentTerms = *in.PaymentTerms
	}
	if in.Notes != nil {
		table.Notes = *in.Notes
	}
	table.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, table); err != nil {
		return nil, err
	}
	return uc.toResponse(table), nil
}

// Activate ativa a tabela e desativa todas as outras do mesmo cliente dentro
// de UMA transação. Após o commit, exatamente uma tabela do cliente tem
// active=true; uma falha no meio não deixa estado parcial.
func (uc *PriceTableUseCase) Activate(ctx context.Context, id string) (*dto.PriceTableResponse, error) {
	table, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, domain.ErrNaoEncontrado
	}
	err = uc.tx.RunPricing(ctx, func(repo repository.PriceTableRepository) error {
		if err := repo.DeactivateAllByClient(ctx, table.ClientID); err != nil {
			return err
		}
		return repo.SetActive(ctx, id, true)
	})
	if err != nil {
		return nil, err
	}
	table.Active = true
	table.UpdatedAt = uc.now()
	return uc.toResponse(table), nil
}

// Deactivate desliga a tabela (escrita simples, sem transação).
func (uc *PriceTableUseCase) Deactivate(ctx context.Context, id string) (*dto.PriceTableResponse, error) {
	table, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, domain.ErrNaoEncontrado
	}
	if err := uc.repo.SetActive(ctx, id, false); err != nil {
		return nil, err
	}
	table.Active = false
	table.UpdatedAt = uc.now()
	return uc.toResponse(table), nil
}

// List lista tabelas, opcionalmente restritas a um vendedor.
func (uc *PriceTableUseCase) List(ctx context.Context, vendedorID string, limit, offset int) (*dto.PriceTableListResponse, error) {
	list, err := uc.repo.List(ctx, vendedorID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PriceTableResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *uc.toResponse(t))
	}
	return &dto.PriceTableListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListByClient lista todas as tabelas de um cliente (histórico completo).
func (uc *PriceTableUseCase) ListByClient(ctx context.Context, clientID string) ([]dto.PriceTableResponse, error) {
	list, err := uc.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PriceTableResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *uc.toResponse(t))
	}
	return items, nil
}

// Delete remove a tabela. Tabelas referenciadas por pedidos históricos não
// são removíveis (ErrConflito via FK).
func (uc *PriceTableUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// AddItem adiciona um produto à tabela com o preço final da calculadora.
func (uc *PriceTableUseCase) AddItem(ctx context.Context, tableID string, in dto.AddPriceTableItemRequest) (*dto.PriceTableItemResponse, error) {
	table, err := uc.repo.GetByID(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, domain.ErrNaoEncontrado
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNaoEncontrado
	}
	minQty := in.MinQuantity
	if minQty < 1 {
		minQty = 1
	}
	item := &entity.PriceTableItem{
		ID:           uuid.New().String(),
		PriceTableID: tableID,
		ProductID:    in.ProductID,
		PriceType:    in.PriceType,
		MinQuantity:  minQty,
		CreatedAt:    uc.now(),
	}
	item.Value = computeItemValue(product.BasePrice, in.PriceType, in.DiscountValue)
	if err := uc.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item, product), nil
}

// UpdateItem atualiza a regra de preço de um item, recalculando o valor.
func (uc *PriceTableUseCase) UpdateItem(ctx context.Context, itemID string, in dto.UpdatePriceTableItemRequest) (*dto.PriceTableItemResponse, error) {
	item, err := uc.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	product, err := uc.productRepo.GetByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNaoEncontrado
	}
	if in.PriceType != nil {
		item.PriceType = *in.PriceType
	}
	if in.DiscountValue != nil {
		item.Value = computeItemValue(product.BasePrice, item.PriceType, *in.DiscountValue)
	}
	if in.MinQuantity != nil && *in.MinQuantity >= 1 {
		item.MinQuantity = *in.MinQuantity
	}
	if err := uc.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item, product), nil
}

// ListItems lista os itens da tabela com os dados do produto.
func (uc *PriceTableUseCase) ListItems(ctx context.Context, tableID string) ([]dto.PriceTableItemResponse, error) {
	items, err := uc.repo.ListItems(ctx, tableID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := uc.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceTableItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toItemResponse(it, products[it.ProductID]))
	}
	return out, nil
}

// DeleteItem remove um item da tabela.
func (uc *PriceTableUseCase) DeleteItem(ctx context.Context, itemID string) error {
	return uc.repo.DeleteItem(ctx, itemID)
}

// PreviewDiscount expõe a calculadora pura para a prévia da UI. Nunca grava.
func (uc *PriceTableUseCase) PreviewDiscount(in dto.DiscountPreviewRequest) dto.DiscountPreviewResponse {
	res := domainpricing.CalculateDiscount(in.BasePrice, in.Mode, in.Value)
	return dto.DiscountPreviewResponse{
		DiscountAmount:    res.DiscountAmount,
		FinalPrice:        res.FinalPrice,
		EquivalentPercent: res.EquivalentPercent,
	}
}

// computeItemValue traduz o tipo de preço do item para a calculadora:
// desconto aplica percentual, fixo aplica valor; base não grava valor próprio.
func computeItemValue(basePrice decimal.Decimal, priceType string, discountValue decimal.Decimal) decimal.Decimal {
	switch priceType {
	case entity.PriceTypeDesconto:
		return domainpricing.CalculateDiscount(basePrice, domainpricing.DiscountPercent, discountValue).FinalPrice
	case entity.PriceTypeFixo:
		return domainpricing.CalculateDiscount(basePrice, domainpricing.DiscountFixed, discountValue).FinalPrice
	default:
		return decimal.Zero
	}
}

func (uc *PriceTableUseCase) toResponse(t *entity.PriceTable) *dto.PriceTableResponse {
	return &dto.PriceTableResponse{
		ID:             t.ID,
		ClientID:       t.ClientID,
		VendedorID:     t.VendedorID,
		Name:           t.Name,
		Active:         t.Active,
		Status:         string(domainpricing.Status(t, uc.now())),
		PausedSchedule: t.PausedSchedule(),
		MinOrder:       t.MinOrder,
		ValidFrom:      t.ValidFrom,
		ValidUntil:     t.ValidUntil,
		PaymentTerms:   t.PaymentTerms,
		Notes:          t.Notes,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func toItemResponse(it *entity.PriceTableItem, product *entity.Product) *dto.PriceTableItemResponse {
	resp := &dto.PriceTableItemResponse{
		ID:           it.ID,
		PriceTableID: it.PriceTableID,
		ProductID:    it.ProductID,
		PriceType:    it.PriceType,
		Value:        it.Value,
		MinQuantity:  it.MinQuantity,
	}
	if product != nil {
		resp.ProductSKU = product.SKU
		resp.ProductName = product.Name
		resp.BasePrice = product.BasePrice
		unit := domainpricing.UnitPrice(it, product.BasePrice)
		resp.Value = unit
		resp.DiscountAmount = product.BasePrice.Sub(unit)
		if product.BasePrice.IsPositive() {
			resp.EquivalentPercent = resp.DiscountAmount.Div(product.BasePrice).Mul(decimal.NewFromInt(100))
		}
	}
	return resp
}
