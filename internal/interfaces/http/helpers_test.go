package http

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmacedo/portal-pedidos-api/internal/application/dto"
	"github.com/rmacedo/portal-pedidos-api/internal/application/orders"
	"github.com/rmacedo/portal-pedidos-api/internal/domain"
)

func failApp(err error) *fiber.App {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error { return fail(c, err) })
	return app
}

func doFail(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	resp, reqErr := failApp(err).Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, reqErr)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestFail_PedidoMinimoCarregaGap(t *testing.T) {
	err := &orders.MinOrderError{
		MinOrder: decimal.NewFromInt(700),
		Total:    decimal.NewFromInt(642),
		Gap:      decimal.NewFromInt(58),
	}
	status, body := doFail(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "PEDIDO_MINIMO", body.Code)
	assert.Equal(t, "58.00", body.Gap)
}

func TestFail_MapeamentoDeSentinelas(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrSemTabelaVigente, fiber.StatusNotFound, "SEM_TABELA_VIGENTE"},
		{domain.ErrCarrinhoVazio, fiber.StatusBadRequest, "CARRINHO_VAZIO"},
		{domain.ErrEntradaInvalida, fiber.StatusBadRequest, "VALIDATION"},
		{domain.ErrNaoAutorizado, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrAcessoNegado, fiber.StatusForbidden, "FORBIDDEN"},
		{domain.ErrNaoEncontrado, fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrEmailJaCadastrado, fiber.StatusConflict, "DUPLICATE"},
		{domain.ErrDuplicado, fiber.StatusConflict, "DUPLICATE"},
		{domain.ErrConflito, fiber.StatusConflict, "CONFLICT"},
		{errors.New("algo inesperado"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		status, body := doFail(t, tc.err)
		assert.Equal(t, tc.status, status, tc.code)
		assert.Equal(t, tc.code, body.Code)
	}
}

func TestFail_ErroEmbrulhadoAindaMapeia(t *testing.T) {
	wrapped := errors.Join(errors.New("contexto"), domain.ErrSemTabelaVigente)
	status, body := doFail(t, wrapped)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "SEM_TABELA_VIGENTE", body.Code)
}
