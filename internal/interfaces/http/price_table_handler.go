package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rmacedo/portal-pedidos-api/internal/application/dto"
	"github.com/rmacedo/portal-pedidos-api/internal/application/pricing"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
)

// PriceTableHandler trata tabelas de preço: CRUD, ativação transacional,
// itens com a calculadora de desconto e a prévia da calculadora.
type PriceTableHandler struct {
	uc *pricing.PriceTableUseCase
}

// NewPriceTableHandler constrói o handler.
func NewPriceTableHandler(uc *pricing.PriceTableUseCase) *PriceTableHandler {
	return &PriceTableHandler{uc: uc}
}

// Create godoc
// @Summary      Criar tabela de preço (nasce desativada)
// @Tags         price-tables
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePriceTableRequest  true  "Dados da tabela"
// @Success      201   {object}  dto.PriceTableResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/price-tables [post]
func (h *PriceTableHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePriceTableRequest
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	}
	out, err := h.uc.Create(c.UserContext(), GetProfileID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter tabela por ID (status derivado na leitura)
// @Tags         price-tables
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da tabela"
// @Success      200  {object}  dto.PriceTableResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/price-tables/{id} [get]
func (h *PriceTableHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return jsonError(c, fiber.StatusNotFound, "NOT_FOUND", "tabela não encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar tabelas de preço
// @Tags         price-tables
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.PriceTableListResponse
// @Router       /api/price-tables [get]
func (h *PriceTableHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "VALIDATION", "paginação inválida")
	}
	page.DefaultPage()
	vendedorID := ""
	if GetRole(c) == entity.RoleVendedor {
		vendedorID = GetProfileID(c)
	}
	out, err := h.uc.List(c.UserContext(), vendedorID, page.Limit, page.Offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ListByClient godoc
// @Summary      Listar todas as tabelas de um cliente
// @Tags         price-tables
// @Security     Bearer
// @Produce      json
// @Param        clientID  path  string  true  "ID do cliente"
// @Success      200  {array}  dto.PriceTableResponse
// @Router       /api/price-tables/client/{clientID} [get]
func (h *PriceTableHandler) ListByClient(c *fiber.Ctx) error {
	out, err := h.uc.ListByClient(c.UserContext(), c.Params("clientID"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar configurações da tabela
// @Tags         price-tables
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da tabela"
// @Param        body  body  dto.UpdatePriceTableRequest  true  "Dados a atualizar"
// @Success      200   {object}  dto.PriceTableResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/price-tables/{id} [put]
func (h *PriceTableHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePriceTableRequest
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return jsonError(c, fiber.StatusNotFound, "NOT_FOUND", "tabela não encontrada")
	}
	return c.JSON(out)
}

// Activate godoc
// @Summary      Ativar a tabela (desativa as demais do cliente na mesma transação)
// @Tags         price-tables
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da tabela"
// @Success      200  {object}  dto.PriceTableResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/price-tables/{id}/activate [post]
func (h *PriceTableHandler) Activate(c *fiber.Ctx) error {
	out, err := h.uc.Activate(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desativar a tabela
// @Tags         price-tables
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da tabela"
// @Success      200  {object}  dto.PriceTableResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/price-tables/{id}/deactivate [post]
func (h *PriceTableHandler) Deactivate(c *fiber.Ctx) error {
	out, err := h.uc.Deactivate(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Remover tabela
// @Tags         price-tables
// @Security     Bearer
// @Param        id  path  string  true  "ID da tabela"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "Tabela referenciada por pedidos"
// @Router       /api/price-tables/{id} [delete]
func (h *PriceTableHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddItem godoc
// @Summary      Adicionar produto à tabela
// @Tags         price-tables
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da tabela"
// @Param        body  body  dto.AddPriceTableItemRequest  true  "Regra de preço"
// @Success      201   {object}  dto.PriceTableItemResponse
// @Failure      409   {object}  dto.ErrorResponse  "Produto já presente na tabela"
// @Router       /api/price-tables/{id}/items [post]
func (h *PriceTableHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddPriceTableItemRequest
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	}
	out, err := h.uc.AddItem(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListItems godoc
// @Summary      Listar itens da tabela
// @Tags         price-tables
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da tabela"
// @Success      200  {array}  dto.PriceTableItemResponse
// @Router       /api/price-tables/{id}/items [get]
func (h *PriceTableHandler) ListItems(c *fiber.Ctx) error {
	out, err := h.uc.ListItems(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// UpdateItem godoc
// @Summary      Atualizar item da tabela (recalcula o valor)
// @Tags         price-tables
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        itemID  path  string  true  "ID do item"
// @Param        body    body  dto.UpdatePriceTableItemRequest  true  "Regra a atualizar"
// @Success      200     {object}  dto.PriceTableItemResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/price-tables/items/{itemID} [put]
func (h *PriceTableHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdatePriceTableItemRequest
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	}
	out, err := h.uc.UpdateItem(c.UserContext(), c.Params("itemID"), in)
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return jsonError(c, fiber.StatusNotFound, "NOT_FOUND", "item não encontrado")
	}
	return c.JSON(out)
}

// DeleteItem godoc
// @Summary      Remover item da tabela
// @Tags         price-tables
// @Security     Bearer
// @Param        itemID  path  string  true  "ID do item"
// @Success      204
// @Router       /api/price-tables/items/{itemID} [delete]
func (h *PriceTableHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.uc.DeleteItem(c.UserContext(), c.Params("itemID")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PreviewDiscount godoc
// @Summary      Prévia da calculadora de desconto (não grava nada)
// @Tags         price-tables
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DiscountPreviewRequest  true  "Preço base e regra"
// @Success      200   {object}  dto.DiscountPreviewResponse
// @Router       /api/price-tables/discount-preview [post]
func (h *PriceTableHandler) PreviewDiscount(c *fiber.Ctx) error {
	var in dto.DiscountPreviewRequest
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	}
	return c.JSON(h.uc.PreviewDiscount(in))
}
