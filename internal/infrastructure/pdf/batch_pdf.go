package pdf

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/rmacedo/portal-pedidos-api/internal/domain/repository"
	"github.com/rmacedo/portal-pedidos-api/pkg/brl"
)

// OrderBatch gera a exportação detalhada dos pedidos filtrados: uma página
// por pedido, com cabeçalho e itens.
func (g *Generator) OrderBatch(orders []repository.ReportOrder, generatedAt time.Time) ([]byte, error) {
	m := maroto.New(pageConfig("Exportação de Pedidos").Build())

	for _, o := range orders {
		m.AddPages(page.New().Add(batchOrderRows(o, generatedAt)...))
	}
	if len(orders) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Nenhum pedido no período filtrado.", props.Text{Size: 9, Color: colorGray, Top: 2}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar exportação de pedidos: %w", err)
	}
	return doc.GetBytes(), nil
}

func batchOrderRows(o repository.ReportOrder, generatedAt time.Time) []core.Row {
	rows := []core.Row{
		row.New(18).Add(
			col.New(7).Add(
				text.New(o.ClientName, props.Text{
					Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
				}),
				text.New("Vendedor: "+o.VendedorName, props.Text{
					Size: 8, Top: 9, Color: colorGray,
				}),
			),
			col.New(5).Add(
				text.New("PEDIDO "+o.ID, props.Text{
					Style: fontstyle.Bold, Size: 8, Align: align.Right,
					Color: colorPrimary, Top: 1,
				}),
				text.New(o.CreatedAt.Format("02/01/2006")+"  ·  "+o.Status, props.Text{
					Size: 8, Align: align.Right, Top: 8, Color: colorGray,
				}),
				text.New("Gerado em: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
					Size: 7, Align: align.Right, Top: 14, Color: colorGray,
				}),
			),
		),
		line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}),
		row.New(7).Add(
			headerCell("Qtd.", 1, align.Center),
			headerCell("SKU", 2, align.Left),
			headerCell("Produto", 5, align.Left),
			headerCell("Preço Unit.", 2, align.Right),
			headerCell("Subtotal", 2, align.Right),
		),
	}
	for _, it := range o.Items {
		rows = append(rows, row.New(6).Add(
			bodyCell(strconv.Itoa(it.Quantity), 1, align.Center),
			bodyCell(it.ProductSKU, 2, align.Left),
			bodyCell(it.ProductName, 5, align.Left),
			bodyCell(brl.Format(it.UnitPrice), 2, align.Right),
			bodyCell(brl.Format(it.Subtotal), 2, align.Right),
		))
	}
	rows = append(rows,
		line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}),
		row.New(10).Add(
			col.New(7),
			col.New(3).Add(text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 2, Right: 2,
			})),
			col.New(2).Add(text.New(brl.Format(o.Total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 2, Right: 1,
			})),
		),
	)
	return rows
}
