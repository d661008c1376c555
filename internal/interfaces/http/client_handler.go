package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/rmacedo/portal-pedidos-api/internal/application/dto"
	"github.com/rmacedo/portal-pedidos-api/internal/application/usecase"
	"github.com/rmacedo/portal-pedidos-api/internal/domain"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
)

// ClientHandler trata o CRUD de clientes (empresas compradoras).
type ClientHandler struct {
	uc *usecase.ClientUseCase
}

// NewClientHandler constrói o handler.
func NewClientHandler(uc *usecase.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create godoc
// @Summary      Criar cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClientRequest  true  "Dados do cliente"
// @Success      201   {object}  dto.ClientResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter cliente por ID
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return jsonError(c, fiber.StatusNotFound, "NOT_FOUND", "cliente não encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar clientes
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.ClientListResponse
// @Router       /api/clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "VALIDATION", "paginação inválida")
	}
	page.DefaultPage()
	// vendedor enxerga somente a própria carteira
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

// Update godoc
// @Summary      Atualizar cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do cliente"
// @Param        body  body  dto.UpdateClientRequest  true  "Dados a atualizar"
// @Success      200   {object}  dto.ClientResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
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
		return jsonError(c, fiber.StatusNotFound, "NOT_FOUND", "cliente não encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Remover cliente
// @Tags         clients
// @Security     Bearer
// @Param        id  path  string  true  "ID do cliente"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "Cliente com pedidos; use a desativação"
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrConflito) {
			return jsonError(c, fiber.StatusConflict, "CONFLICT",
				"cliente possui pedidos vinculados; desative-o em POST /api/clients/{id}/deactivate")
		}
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Deactivate godoc
// @Summary      Desativar cliente
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id}/deactivate [post]
func (h *ClientHandler) Deactivate(c *fiber.Ctx) error {
	out, err := h.uc.Deactivate(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
