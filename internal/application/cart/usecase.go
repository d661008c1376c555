// Package cart mantém o carrinho persistido de cada perfil: uma lista de
// itens serializada em JSON sob uma chave fixa por perfil, reidratada a cada
// leitura com fallback para carrinho vazio em caso de payload corrompido.
package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/rmacedo/portal-pedidos-api/internal/application/dto"
	apppricing "github.com/rmacedo/portal-pedidos-api/internal/application/pricing"
	"github.com/rmacedo/portal-pedidos-api/internal/domain"
	domainpricing "github.com/rmacedo/portal-pedidos-api/internal/domain/pricing"
)

// Store porta de persistência do carrinho. Get devolve nil sem erro quando
// não há carrinho gravado.
type Store interface {
	Get(ctx context.Context, profileID string) ([]byte, error)
	Set(ctx context.Context, profileID string, data []byte) error
	Delete(ctx context.Context, profileID string) error
}

// Item é a linha do carrinho como serializada no store.
type Item struct {
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"min_quantity"`
}

// Cart é o documento serializado.
type Cart struct {
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Total soma os subtotais dos itens.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Decode reidrata um carrinho serializado. Payload corrompido degrada para
// carrinho vazio; nunca derruba a sessão do usuário por um JSON inválido.
func Decode(data []byte) Cart {
	if len(data) == 0 {
		return Cart{}
	}
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		log.Warn().Err(err).Msg("carrinho corrompido no store; descartando")
		return Cart{}
	}
	return c
}

// UseCase operações do carrinho do cliente autenticado.
type UseCase struct {
	store   Store
	catalog *apppricing.CatalogUseCase
	now     func() time.Time
}

// NewUseCase constrói o caso de uso. nowFn nil usa time.Now.
func NewUseCase(store Store, catalog *apppricing.CatalogUseCase, nowFn func() time.Time) *UseCase {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &UseCase{store: store, catalog: catalog, now: nowFn}
}

func (uc *UseCase) load(ctx context.Context, profileID string) (Cart, error) {
	data, err := uc.store.Get(ctx, profileID)
	if err != nil {
		return Cart{}, err
	}
	return Decode(data), nil
}

func (uc *UseCase) save(ctx context.Context, profileID string, c Cart) error {
	c.UpdatedAt = uc.now()
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return uc.store.Set(ctx, profileID, data)
}

// Get devolve o carrinho com totais e a situação da trava de pedido mínimo
// frente à tabela vigente do cliente.
func (uc *UseCase) Get(ctx context.Context, profileID, clientID string) (*dto.CartResponse, error) {
	c, err := uc.load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	minOrder := decimal.Zero
	if cat, err := uc.catalog.Resolve(ctx, clientID); err == nil {
		minOrder = cat.Table.MinOrder
	}
	// Sem tabela vigente o carrinho ainda é exibível; o envio do pedido é
	// que falha com a condição terminal.
	return uc.toResponse(c, minOrder), nil
}

// AddItem adiciona um produto do catálogo vigente ao carrinho. A quantidade
// entra já submetida ao piso do item.
func (uc *UseCase) AddItem(ctx context.Context, profileID, clientID string, in dto.AddCartItemRequest) (*dto.CartResponse, error) {
	cat, err := uc.catalog.Resolve(ctx, clientID)
	if err != nil {
		return nil, err
	}
	catItem, ok := cat.Items[in.ProductID]
	if !ok {
		return nil, domain.ErrNaoEncontrado // produto fora da tabela vigente
	}
	c, err := uc.load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	qty := domainpricing.ClampQuantity(in.Quantity, catItem.MinQuantity)
	found := false
	for i := range c.Items {
		if c.Items[i].ProductID == in.ProductID {
			c.Items[i].Quantity = domainpricing.ClampQuantity(c.Items[i].Quantity+qty, catItem.MinQuantity)
			c.Items[i].UnitPrice = catItem.UnitPrice // re-precifica na tabela vigente
			found = true
			break
		}
	}
	if !found {
		c.Items = append(c.Items, Item{
			ProductID:   catItem.ProductID,
			SKU:         catItem.SKU,
			Name:        catItem.Name,
			UnitPrice:   catItem.UnitPrice,
			Quantity:    qty,
			MinQuantity: catItem.MinQuantity,
		})
	}
	if err := uc.save(ctx, profileID, c); err != nil {
		return nil, err
	}
	return uc.toResponse(c, cat.Table.MinOrder), nil
}

// UpdateQuantity altera a quantidade de um item. O valor pedido é submetido
// ao piso do item: sobe livre, nunca desce abaixo de min_quantity.
func (uc *UseCase) UpdateQuantity(ctx context.Context, profileID, clientID, productID string, requested int) (*dto.CartResponse, error) {
	c, err := uc.load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = domainpricing.ClampQuantity(requested, c.Items[i].MinQuantity)
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrNaoEncontrado
	}
	if err := uc.save(ctx, profileID, c); err != nil {
		return nil, err
	}
	return uc.Get(ctx, profileID, clientID)
}

// RemoveItem retira um produto do carrinho.
func (uc *UseCase) RemoveItem(ctx context.Context, profileID, clientID, productID string) (*dto.CartResponse, error) {
	c, err := uc.load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	items := c.Items[:0]
	for _, it := range c.Items {
		if it.ProductID != productID {
			items = append(items, it)
		}
	}
	c.Items = items
	if err := uc.save(ctx, profileID, c); err != nil {
		return nil, err
	}
	return uc.Get(ctx, profileID, clientID)
}

// Clear esvazia o carrinho.
func (uc *UseCase) Clear(ctx context.Context, profileID string) error {
	return uc.store.Delete(ctx, profileID)
}

// Load expõe o carrinho cru para o fluxo de criação de pedido.
func (uc *UseCase) Load(ctx context.Context, profileID string) (Cart, error) {
	return uc.load(ctx, profileID)
}

func (uc *UseCase) toResponse(c Cart, minOrder decimal.Decimal) *dto.CartResponse {
	items := make([]dto.CartItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, dto.CartItemResponse{
			ProductID:   it.ProductID,
			SKU:         it.SKU,
			Name:        it.Name,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			MinQuantity: it.MinQuantity,
			Subtotal:    it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))),
		})
	}
	total := c.Total()
	gap := domainpricing.MinOrderGap(total, minOrder)
	if gap.IsNegative() {
		gap = decimal.Zero
	}
	return &dto.CartResponse{
		Items:         items,
		Total:         total,
		MinOrder:      minOrder,
		MeetsMinOrder: domainpricing.MeetsMinOrder(total, minOrder),
		Gap:           gap,
	}
}
