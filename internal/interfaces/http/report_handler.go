package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/rmacedo/portal-pedidos-api/internal/application/dto"
	"github.com/rmacedo/portal-pedidos-api/internal/application/reports"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
)

// ReportHandler trata o relatório de vendas em JSON, CSV e PDF.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler constrói o handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// parseFilters lê e valida os filtros do relatório; vendedor fica preso à
// própria carteira independentemente do que pedir na query.
func (h *ReportHandler) parseFilters(c *fiber.Ctx) (dto.ReportRequest, error) {
	var in dto.ReportRequest
	if err := c.QueryParser(&in); err != nil {
		return in, err
	}
	if err := validate.Struct(in); err != nil {
		return in, err
	}
	if GetRole(c) == entity.RoleVendedor {
		in.VendedorID = GetProfileID(c)
	}
	return in, nil
}

// Summary godoc
// @Summary      Resumo de vendas do período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from         query  string  false  "Data inicial YYYY-MM-DD"
// @Param        to           query  string  false  "Data final YYYY-MM-DD (inclusiva)"
// @Param        client_id    query  string  false  "Filtro por cliente"
// @Param        vendedor_id  query  string  false  "Filtro por vendedor (admin)"
// @Param        status       query  string  false  "Filtro por status"
// @Param        top_n        query  int     false  "Tamanho do ranking de produtos"  default(10)
// @Success      200  {object}  dto.SalesReportDTO
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	in, err := h.parseFilters(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	}
	out, err := h.uc.Summary(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// CSV godoc
// @Summary      Exportação CSV dos pedidos do período
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  file
// @Router       /api/reports/sales/csv [get]
func (h *ReportHandler) CSV(c *fiber.Ctx) error {
	in, err := h.parseFilters(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	}
	var buf bytes.Buffer
	if err := h.uc.CSV(c.UserContext(), in, &buf); err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="relatorio-vendas.csv"`)
	return c.Send(buf.Bytes())
}

// PDF godoc
// @Summary      Relatório gerencial de vendas em PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  file
// @Router       /api/reports/sales/pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	in, err := h.parseFilters(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	}
	doc, err := h.uc.PDF(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="relatorio-vendas.pdf"`)
	return c.Send(doc)
}

// OrdersPDF godoc
// @Summary      Exportação detalhada dos pedidos em PDF (uma página por pedido)
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  file
// @Router       /api/reports/sales/orders-pdf [get]
func (h *ReportHandler) OrdersPDF(c *fiber.Ctx) error {
	in, err := h.parseFilters(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	}
	doc, err := h.uc.OrdersPDF(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="pedidos.pdf"`)
	return c.Send(doc)
}
