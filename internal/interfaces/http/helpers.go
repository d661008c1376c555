// Package http expõe a API REST do portal sobre Fiber: rotas, middleware de
// autenticação com RBAC e os handlers de cada recurso.
package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/rmacedo/portal-pedidos-api/internal/application/dto"
	"github.com/rmacedo/portal-pedidos-api/internal/application/orders"
	"github.com/rmacedo/portal-pedidos-api/internal/domain"
)

var validate = validator.New()

// jsonError escreve o corpo de erro padrão.
func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// fail traduz erros de domínio para a resposta HTTP correspondente.
// O erro de pedido mínimo carrega o gap no corpo para a UI exibir quanto
// falta para liberar o envio.
func fail(c *fiber.Ctx, err error) error {
	var minErr *orders.MinOrderError
	switch {
	case errors.As(err, &minErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "PEDIDO_MINIMO",
			Message: minErr.Error(),
			Gap:     minErr.Gap.StringFixed(2),
		})
	case errors.Is(err, domain.ErrSemTabelaVigente):
		return jsonError(c, fiber.StatusNotFound, "SEM_TABELA_VIGENTE", err.Error())
	case errors.Is(err, domain.ErrCarrinhoVazio):
		return jsonError(c, fiber.StatusBadRequest, "CARRINHO_VAZIO", err.Error())
	case errors.Is(err, domain.ErrEntradaInvalida):
		return jsonError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	case errors.Is(err, domain.ErrNaoAutorizado):
		return jsonError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, domain.ErrAcessoNegado):
		return jsonError(c, fiber.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, domain.ErrNaoEncontrado), errors.Is(err, domain.ErrUsuarioNaoEncontrado):
		return jsonError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrEmailJaCadastrado), errors.Is(err, domain.ErrDuplicado):
		return jsonError(c, fiber.StatusConflict, "DUPLICATE", err.Error())
	case errors.Is(err, domain.ErrConflito):
		return jsonError(c, fiber.StatusConflict, "CONFLICT", err.Error())
	}
	return jsonError(c, fiber.StatusInternalServerError, "INTERNAL", err.Error())
}

// actorFrom monta o ator das operações de pedido a partir dos claims do token.
func actorFrom(c *fiber.Ctx) orders.Actor {
	return orders.Actor{
		ProfileID: GetProfileID(c),
		Role:      GetRole(c),
		ClientID:  GetClientID(c),
	}
}
