package pdf

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/rmacedo/portal-pedidos-api/internal/application/dto"
	appreports "github.com/rmacedo/portal-pedidos-api/internal/application/reports"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/repository"
	"github.com/rmacedo/portal-pedidos-api/pkg/brl"
)

var _ appreports.Renderer = (*Generator)(nil)

// SalesReport gera o relatório gerencial: cartões de resumo, receita por
// vendedor, ranking de produtos e a listagem detalhada dos pedidos.
func (g *Generator) SalesReport(summary dto.SalesReportDTO, orders []repository.ReportOrder, generatedAt time.Time) ([]byte, error) {
	m := maroto.New(pageConfig("Relatório de Vendas").Build())

	m.AddRows(reportHeaderRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(summaryCardsRow(summary))
	if summary.Truncated {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New("Atenção: o teto de pedidos do relatório foi atingido; os números cobrem apenas a amostra carregada.",
				props.Text{Size: 7.5, Color: colorGray, Top: 1}),
		)))
	}

	m.AddRows(row.New(7).Add(sectionTitle("RECEITA POR VENDEDOR")))
	m.AddRows(row.New(6).Add(
		headerCell("Vendedor", 6, align.Left),
		headerCell("Pedidos", 3, align.Center),
		headerCell("Receita", 3, align.Right),
	))
	for _, s := range summary.BySeller {
		m.AddRows(row.New(5).Add(
			bodyCell(s.VendedorName, 6, align.Left),
			bodyCell(strconv.Itoa(s.OrderCount), 3, align.Center),
			bodyCell(brl.Format(s.Revenue), 3, align.Right),
		))
	}

	m.AddRows(row.New(7).Add(sectionTitle("PRODUTOS MAIS VENDIDOS")))
	m.AddRows(row.New(6).Add(
		headerCell("SKU", 3, align.Left),
		headerCell("Produto", 6, align.Left),
		headerCell("Qtd. vendida", 3, align.Right),
	))
	for _, p := range summary.TopProducts {
		m.AddRows(row.New(5).Add(
			bodyCell(p.SKU, 3, align.Left),
			bodyCell(p.Name, 6, align.Left),
			bodyCell(strconv.Itoa(p.Quantity), 3, align.Right),
		))
	}

	m.AddRows(row.New(7).Add(sectionTitle("PEDIDOS DO PERÍODO")))
	m.AddRows(row.New(6).Add(
		headerCell("Data", 2, align.Left),
		headerCell("Cliente", 4, align.Left),
		headerCell("Vendedor", 3, align.Left),
		headerCell("Status", 1, align.Center),
		headerCell("Total", 2, align.Right),
	))
	for _, o := range orders {
		m.AddRows(row.New(5).Add(
			bodyCell(o.CreatedAt.Format("02/01/2006"), 2, align.Left),
			bodyCell(o.ClientName, 4, align.Left),
			bodyCell(o.VendedorName, 3, align.Left),
			bodyCell(o.Status, 1, align.Center),
			bodyCell(brl.Format(o.Total), 2, align.Right),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar relatório: %w", err)
	}
	return doc.GetBytes(), nil
}

func reportHeaderRow(generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Relatório de Vendas", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// summaryCardsRow: três indicadores lado a lado.
func summaryCardsRow(summary dto.SalesReportDTO) core.Row {
	card := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 1,
			}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center,
				Color: colorPrimary, Top: 6,
			}),
		)
	}
	return row.New(16).Add(
		card("Pedidos", strconv.Itoa(summary.OrderCount)),
		card("Receita total", brl.Format(summary.TotalRevenue)),
		card("Tíquete médio", brl.Format(summary.AverageTicket)),
	)
}
