package pdf

import (
	"fmt"
	"strconv"

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
	"github.com/rmacedo/portal-pedidos-api/pkg/brl"
)

// Order gera o espelho de um pedido: cabeçalho, itens e histórico de status.
func (g *Generator) Order(order *dto.OrderResponse, clientName string) ([]byte, error) {
	m := maroto.New(pageConfig("Pedido " + order.ID).Build())

	m.AddRows(orderHeaderRow(order, clientName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(row.New(6).Add(sectionTitle("ITENS DO PEDIDO")))
	m.AddRows(orderItemsHeaderRow())
	for _, it := range order.Items {
		m.AddRows(orderItemRow(it))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(orderTotalRow(order))

	if order.Notes != "" {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Observações: "+order.Notes, props.Text{Size: 8, Color: colorGray, Top: 2}),
		)))
	}

	m.AddRows(row.New(6).Add(sectionTitle("HISTÓRICO DE STATUS")))
	for _, h := range order.History {
		m.AddRows(row.New(5).Add(
			bodyCell(h.UpdatedAt.Format("02/01/2006 15:04"), 3, align.Left),
			bodyCell(h.Label, 9, align.Left),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar pedido: %w", err)
	}
	return doc.GetBytes(), nil
}

// orderHeaderRow: cliente (esq) e número + data do pedido (dir).
func orderHeaderRow(order *dto.OrderResponse, clientName string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(clientName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Status: "+order.Status, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PEDIDO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(order.ID, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+order.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func orderItemsHeaderRow() core.Row {
	return row.New(7).Add(
		headerCell("Qtd.", 1, align.Center),
		headerCell("SKU", 2, align.Left),
		headerCell("Produto", 5, align.Left),
		headerCell("Preço Unit.", 2, align.Right),
		headerCell("Subtotal", 2, align.Right),
	)
}

func orderItemRow(it dto.OrderItemResponse) core.Row {
	return row.New(6).Add(
		bodyCell(strconv.Itoa(it.Quantity), 1, align.Center),
		bodyCell(it.ProductSKU, 2, align.Left),
		bodyCell(it.ProductName, 5, align.Left),
		bodyCell(brl.Format(it.UnitPrice), 2, align.Right),
		bodyCell(brl.Format(it.Subtotal), 2, align.Right),
	)
}

func orderTotalRow(order *dto.OrderResponse) core.Row {
	return row.New(10).Add(
		col.New(7),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(2).Add(text.New(brl.Format(order.TotalAmount), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}
