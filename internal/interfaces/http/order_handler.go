package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rmacedo/portal-pedidos-api/internal/application/dto"
	"github.com/rmacedo/portal-pedidos-api/internal/application/orders"
	"github.com/rmacedo/portal-pedidos-api/internal/application/usecase"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/repository"
)

// OrderPDF gera o espelho de um pedido em PDF.
type OrderPDF interface {
	Order(order *dto.OrderResponse, clientName string) ([]byte, error)
}

// OrderHandler trata o ciclo de vida do pedido.
type OrderHandler struct {
	uc      *orders.UseCase
	clients *usecase.ClientUseCase
	pdf     OrderPDF
}

// NewOrderHandler constrói o handler.
func NewOrderHandler(uc *orders.UseCase, clients *usecase.ClientUseCase, pdf OrderPDF) *OrderHandler {
	return &OrderHandler{uc: uc, clients: clients, pdf: pdf}
}

// Create godoc
// @Summary      Fechar o carrinho em um pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Observações"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse  "Carrinho vazio"
// @Failure      422   {object}  dto.ErrorResponse  "Total abaixo do pedido mínimo (gap no corpo)"
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	}
	out, err := h.uc.Create(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter pedido com itens e histórico
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar pedidos visíveis ao chamador
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status     query  string  false  "Filtro por status"
// @Param        client_id  query  string  false  "Filtro por cliente (admin)"
// @Param        from       query  string  false  "Data inicial YYYY-MM-DD"
// @Param        to         query  string  false  "Data final YYYY-MM-DD (inclusiva)"
// @Param        limit      query  int     false  "Limite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "VALIDATION", "paginação inválida")
	}
	f := repository.OrderFilter{
		Status:   c.Query("status"),
		ClientID: c.Query("client_id"),
	}
	if v := c.Query("from"); v != "" {
		from, err := time.Parse("2006-01-02", v)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "VALIDATION", "from: use o formato YYYY-MM-DD")
		}
		f.From = from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse("2006-01-02", v)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "VALIDATION", "to: use o formato YYYY-MM-DD")
		}
		f.To = to.AddDate(0, 0, 1) // limite superior exclusivo no dia seguinte
	}
	out, err := h.uc.List(c.UserContext(), actorFrom(c), f, page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Trocar status do pedido (anexa ao histórico)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Novo status"
// @Success      200   {object}  dto.OrderResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Espelho do pedido em PDF
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID do pedido"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/pdf [get]
func (h *OrderHandler) PDF(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	clientName := out.ClientID
	if client, err := h.clients.GetByID(c.UserContext(), out.ClientID); err == nil && client != nil {
		clientName = client.RazaoSocial
	}
	doc, err := h.pdf.Order(out, clientName)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="pedido-`+out.ID+`.pdf"`)
	return c.Send(doc)
}
