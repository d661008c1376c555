package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rmacedo/portal-pedidos-api/internal/application/cart"
	"github.com/rmacedo/portal-pedidos-api/internal/application/dto"
)

// CartHandler trata o carrinho persistido do cliente autenticado.
type CartHandler struct {
	uc *cart.UseCase
}

// NewCartHandler constrói o handler.
func NewCartHandler(uc *cart.UseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Get godoc
// @Summary      Carrinho atual com totais e situação do pedido mínimo
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetProfileID(c), GetClientID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Adicionar produto ao carrinho (quantidade sujeita ao piso)
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCartItemRequest  true  "Produto e quantidade"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse  "Produto fora da tabela vigente"
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	}
	out, err := h.uc.AddItem(c.UserContext(), GetProfileID(c), GetClientID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// UpdateItem godoc
// @Summary      Alterar quantidade de um item (nunca abaixo do piso)
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productID  path  string  true  "ID do produto"
// @Param        body       body  dto.UpdateCartItemRequest  true  "Nova quantidade"
// @Success      200        {object}  dto.CartResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/cart/items/{productID} [put]
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	}
	out, err := h.uc.UpdateQuantity(c.UserContext(), GetProfileID(c), GetClientID(c), c.Params("productID"), in.Quantity)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Retirar produto do carrinho
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        productID  path  string  true  "ID do produto"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart/items/{productID} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(c.UserContext(), GetProfileID(c), GetClientID(c), c.Params("productID"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Esvaziar o carrinho
// @Tags         cart
// @Security     Bearer
// @Success      204
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(c.UserContext(), GetProfileID(c)); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
