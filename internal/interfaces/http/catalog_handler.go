package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rmacedo/portal-pedidos-api/internal/application/pricing"
)

// CatalogHandler entrega o catálogo personalizado do cliente autenticado.
type CatalogHandler struct {
	uc *pricing.CatalogUseCase
}

// NewCatalogHandler constrói o handler.
func NewCatalogHandler(uc *pricing.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Get godoc
// @Summary      Catálogo do cliente autenticado (tabela vigente)
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CatalogResponse
// @Failure      404  {object}  dto.ErrorResponse  "Nenhuma tabela vigente"
// @Router       /api/catalog [get]
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	clientID := GetClientID(c)
	if clientID == "" {
		return jsonError(c, fiber.StatusForbidden, "FORBIDDEN", "perfil sem vínculo com cliente")
	}
	out, err := h.uc.GetCatalog(c.UserContext(), clientID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
