// Package reports agrega pedidos em memória para o painel gerencial e gera
// as exportações (CSV e PDF). A busca é limitada por um teto configurável;
// acima dele o relatório é marcado como truncado em vez de estourar memória.
package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/portal-pedidos-api/internal/application/dto"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/repository"
)

const defaultTopN = 10

// Aggregate computa o resumo de vendas sobre a amostra carregada: receita
// total, tíquete médio, quebra por vendedor e ranking de produtos por
// quantidade. Função pura; a ordenação é determinística (desempate por nome).
func Aggregate(orders []repository.ReportOrder, topN int) dto.SalesReportDTO {
	if topN <= 0 {
		topN = defaultTopN
	}

	out := dto.SalesReportDTO{
		OrderCount:   len(orders),
		TotalRevenue: decimal.Zero,
	}

	type sellerAcc struct {
		id, name string
		count    int
		revenue  decimal.Decimal
	}
	type productAcc struct {
		sku, name string
		quantity  int
	}
	sellers := map[string]*sellerAcc{}
	products := map[string]*productAcc{}

	for _, o := range orders {
		out.TotalRevenue = out.TotalRevenue.Add(o.Total)

		key := o.VendedorID
		s, ok := sellers[key]
		if !ok {
			name := o.VendedorName
			if key == "" {
				name = "Sem vendedor"
			}
			s = &sellerAcc{id: key, name: name, revenue: decimal.Zero}
			sellers[key] = s
		}
		s.count++
		s.revenue = s.revenue.Add(o.Total)

		for _, it := range o.Items {
			p, ok := products[it.ProductSKU]
			if !ok {
				p = &productAcc{sku: it.ProductSKU, name: it.ProductName}
				products[it.ProductSKU] = p
			}
			p.quantity += it.Quantity
		}
	}

	if out.OrderCount > 0 {
		out.AverageTicket = out.TotalRevenue.Div(decimal.NewFromInt(int64(out.OrderCount))).Round(2)
	} else {
		out.AverageTicket = decimal.Zero
	}

	out.BySeller = make([]dto.SellerBreakdownDTO, 0, len(sellers))
	for _, s := range sellers {
		out.BySeller = append(out.BySeller, dto.SellerBreakdownDTO{
			VendedorID:   s.id,
			VendedorName: s.name,
			OrderCount:   s.count,
			Revenue:      s.revenue,
		})
	}
	sort.Slice(out.BySeller, func(i, j int) bool {
		a, b := out.BySeller[i], out.BySeller[j]
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		return a.VendedorName < b.VendedorName
	})

	ranking := make([]dto.TopProductDTO, 0, len(products))
	for _, p := range products {
		ranking = append(ranking, dto.TopProductDTO{SKU: p.sku, Name: p.name, Quantity: p.quantity})
	}
	sort.Slice(ranking, func(i, j int) bool {
		a, b := ranking[i], ranking[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.SKU < b.SKU
	})
	if len(ranking) > topN {
		ranking = ranking[:topN]
	}
	out.TopProducts = ranking

	return out
}
