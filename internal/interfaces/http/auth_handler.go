package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rmacedo/portal-pedidos-api/internal/application/auth"
	"github.com/rmacedo/portal-pedidos-api/internal/application/dto"
	"github.com/rmacedo/portal-pedidos-api/internal/application/usecase"
)

// AuthHandler trata login, cadastro e troca de senha.
type AuthHandler struct {
	uc    *auth.AuthUseCase
	users *usecase.UserUseCase
}

// NewAuthHandler constrói o handler.
func NewAuthHandler(uc *auth.AuthUseCase, users *usecase.UserUseCase) *AuthHandler {
	return &AuthHandler{uc: uc, users: users}
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciais"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Register godoc
// @Summary      Cadastrar usuário (admin)
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Dados do usuário"
// @Success      201   {object}  dto.ProfileResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdatePassword godoc
// @Summary      Trocar a própria senha
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.UpdatePasswordRequest  true  "Senha atual e nova"
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/password [put]
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	var in dto.UpdatePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	}
	if err := h.uc.UpdatePassword(c.UserContext(), GetProfileID(c), in); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary      Perfil autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProfileResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.users.GetByID(c.UserContext(), GetProfileID(c))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return jsonError(c, fiber.StatusNotFound, "NOT_FOUND", "perfil não encontrado")
	}
	return c.JSON(out)
}
