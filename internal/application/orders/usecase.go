// Package orders implementa o ciclo de vida do pedido: criação a partir do
// carrinho (precificada e validada no servidor), histórico de status
// append-only e listagens com escopo por papel.
package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/rmacedo/portal-pedidos-api/internal/application/cart"
	"github.com/rmacedo/portal-pedidos-api/internal/application/dto"
	apppricing "github.com/rmacedo/portal-pedidos-api/internal/application/pricing"
	"github.com/rmacedo/portal-pedidos-api/internal/domain"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
	domainpricing "github.com/rmacedo/portal-pedidos-api/internal/domain/pricing"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/repository"
)

// Actor identifica quem chama a operação, extraído do token.
type Actor struct {
	ProfileID string
	Role      string
	ClientID  string // preenchido apenas para papel cliente
}

// UseCase operações de pedido.
type UseCase struct {
	orders   repository.OrderRepository
	clients  repository.ClientRepository
	profiles repository.ProfileRepository
	cart     *cart.UseCase
	catalog  *apppricing.CatalogUseCase
	tx       TxRunner
	mailer   Mailer
	now      func() time.Time
}

// NewUseCase constrói o caso de uso. mailer nil desabilita a notificação;
// nowFn nil usa time.Now.
func NewUseCase(
	orders repository.OrderRepository,
	clients repository.ClientRepository,
	profiles repository.ProfileRepository,
	cartUC *cart.UseCase,
	catalog *apppricing.CatalogUseCase,
	tx TxRunner,
	mailer Mailer,
	nowFn func() time.Time,
) *UseCase {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &UseCase{
		orders:   orders,
		clients:  clients,
		profiles: profiles,
		cart:     cartUC,
		catalog:  catalog,
		tx:       tx,
		mailer:   mailer,
		now:      nowFn,
	}
}

// Create fecha o carrinho do perfil em um pedido. Os preços e pisos de
// quantidade são recalculados da tabela vigente no servidor; o conteúdo do
// carrinho nunca é confiado cegamente. Cabeça e itens entram na mesma
// transação; o carrinho só é esvaziado depois do commit.
func (uc *UseCase) Create(ctx context.Context, actor Actor, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if actor.ClientID == "" {
		return nil, domain.ErrAcessoNegado
	}
	c, err := uc.cart.Load(ctx, actor.ProfileID)
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, domain.ErrCarrinhoVazio
	}

	cat, err := uc.catalog.Resolve(ctx, actor.ClientID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	order := &entity.Order{
		ID:        uuid.NewString(),
		ClientID:  actor.ClientID,
		Status:    entity.OrderEnviado,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	total := decimal.Zero
	for _, it := range c.Items {
		catItem, ok := cat.Items[it.ProductID]
		if !ok {
			// produto saiu da tabela entre o carrinho e o envio
			return nil, domain.ErrNaoEncontrado
		}
		qty := domainpricing.ClampQuantity(it.Quantity, catItem.MinQuantity)
		subtotal := catItem.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
		order.Items = append(order.Items, entity.OrderItem{
			ID:          uuid.NewString(),
			OrderID:     order.ID,
			ProductID:   catItem.ProductID,
			ProductSKU:  catItem.SKU,
			ProductName: catItem.Name,
			Quantity:    qty,
			UnitPrice:   catItem.UnitPrice,
			Subtotal:    subtotal,
		})
		total = total.Add(subtotal)
	}
	order.TotalAmount = total

	if !domainpricing.MeetsMinOrder(total, cat.Table.MinOrder) {
		return nil, &MinOrderError{
			MinOrder: cat.Table.MinOrder,
			Total:    total,
			Gap:      domainpricing.MinOrderGap(total, cat.Table.MinOrder),
		}
	}

	err = uc.tx.RunOrders(ctx, func(repo repository.OrderRepository) error {
		if err := repo.Create(ctx, order); err != nil {
			return err
		}
		return repo.CreateItems(ctx, order.Items)
	})
	if err != nil {
		return nil, err
	}

	if err := uc.cart.Clear(ctx, actor.ProfileID); err != nil {
		// pedido já está gravado; carrinho residual não corrompe nada
		log.Warn().Err(err).Str("pedido", order.ID).Msg("falha ao esvaziar carrinho após o pedido")
	}

	uc.notifySeller(order)

	return uc.toResponse(order, true), nil
}

// notifySeller dispara o e-mail para o vendedor do cliente em background.
// Falhas só geram log; o pedido já foi gravado.
func (uc *UseCase) notifySeller(order *entity.Order) {
	if uc.mailer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		client, err := uc.clients.GetByID(ctx, order.ClientID)
		if err != nil || client == nil || client.VendedorID == "" {
			return
		}
		seller, err := uc.profiles.GetByID(ctx, client.VendedorID)
		if err != nil || seller == nil || seller.Email == "" {
			return
		}
		if err := uc.mailer.OrderCreated(ctx, seller.Email, order, client); err != nil {
			log.Warn().Err(err).
				Str("pedido", order.ID).
				Str("vendedor", seller.Email).
				Msg("falha ao notificar vendedor")
		}
	}()
}

// GetByID devolve o pedido com itens e histórico, respeitando o escopo do
// chamador.
func (uc *UseCase) GetByID(ctx context.Context, actor Actor, id string) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNaoEncontrado
	}
	if err := uc.authorize(ctx, actor, order); err != nil {
		return nil, err
	}
	return uc.toResponse(order, true), nil
}

// UpdateStatus troca o status do pedido e anexa a transição ao histórico.
// Não há grafo de transição: qualquer status vale a partir de qualquer
// status, inclusive repetido. O array armazenado só cresce.
func (uc *UseCase) UpdateStatus(ctx context.Context, actor Actor, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if actor.Role != entity.RoleAdmin && actor.Role != entity.RoleVendedor {
		return nil, domain.ErrAcessoNegado
	}
	if !entity.ValidOrderStatus(in.Status) {
		return nil, domain.ErrEntradaInvalida
	}
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNaoEncontrado
	}
	if err := uc.authorize(ctx, actor, order); err != nil {
		return nil, err
	}

	now := uc.now()
	order.Status = in.Status
	order.StatusHistory = append(order.StatusHistory, entity.StatusChange{
		Status:    in.Status,
		UpdatedAt: now,
	})
	order.UpdatedAt = now

	if err := uc.orders.UpdateStatus(ctx, order); err != nil {
		return nil, err
	}
	return uc.toResponse(order, true), nil
}

// List devolve os pedidos visíveis ao chamador: cliente vê os da própria
// empresa, vendedor os dos clientes da sua carteira, admin todos.
func (uc *UseCase) List(ctx context.Context, actor Actor, f repository.OrderFilter, page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.DefaultPage()
	switch actor.Role {
	case entity.RoleCliente:
		f.ClientID = actor.ClientID
		f.VendedorID = ""
	case entity.RoleVendedor:
		f.VendedorID = actor.ProfileID
	case entity.RoleAdmin:
		// filtros livres
	default:
		return nil, domain.ErrAcessoNegado
	}
	list, err := uc.orders.List(ctx, f, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *uc.toResponse(o, false))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *UseCase) authorize(ctx context.Context, actor Actor, order *entity.Order) error {
	switch actor.Role {
	case entity.RoleAdmin:
		return nil
	case entity.RoleCliente:
		if order.ClientID != actor.ClientID {
			return domain.ErrAcessoNegado
		}
		return nil
	case entity.RoleVendedor:
		client, err := uc.clients.GetByID(ctx, order.ClientID)
		if err != nil {
			return err
		}
		if client == nil || client.VendedorID != actor.ProfileID {
			return domain.ErrAcessoNegado
		}
		return nil
	}
	return domain.ErrAcessoNegado
}

// StatusLabel é o rótulo de exibição de cada status.
func StatusLabel(status string) string {
	switch status {
	case entity.OrderRascunho:
		return "Rascunho"
	case entity.OrderEnviado:
		return "Pedido Enviado"
	case entity.OrderAprovado:
		return "Aprovado"
	case entity.OrderFaturado:
		return "Faturado"
	case entity.OrderEntregue:
		return "Entregue"
	case entity.OrderCancelado:
		return "Cancelado"
	}
	return status
}

// History monta o histórico de exibição: a primeira entrada é sintetizada da
// criação do pedido (nunca é gravada), seguida das transições armazenadas.
func History(order *entity.Order) []dto.StatusChangeResponse {
	out := make([]dto.StatusChangeResponse, 0, len(order.StatusHistory)+1)
	out = append(out, dto.StatusChangeResponse{
		Status:    entity.OrderEnviado,
		Label:     StatusLabel(entity.OrderEnviado),
		UpdatedAt: order.CreatedAt,
	})
	for _, ch := range order.StatusHistory {
		out = append(out, dto.StatusChangeResponse{
			Status:    ch.Status,
			Label:     StatusLabel(ch.Status),
			UpdatedAt: ch.UpdatedAt,
		})
	}
	return out
}

func (uc *UseCase) toResponse(order *entity.Order, full bool) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:          order.ID,
		ClientID:    order.ClientID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Notes:       order.Notes,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
	if !full {
		return out
	}
	for _, it := range order.Items {
		out.Items = append(out.Items, dto.OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductSKU:  it.ProductSKU,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	out.History = History(order)
	return out
}
