package reports

import (
	"encoding/csv"
	"io"

	"github.com/rmacedo/portal-pedidos-api/internal/domain/repository"
	"github.com/rmacedo/portal-pedidos-api/pkg/brl"
)

// csvHeader é o cabeçalho fixo da exportação, na ordem de exibição do painel.
var csvHeader = []string{"ID", "DATA", "CLIENTE", "VENDEDOR", "STATUS", "TOTAL"}

// WriteCSV escreve os pedidos filtrados como CSV, uma linha por pedido, data
// em dd/mm/aaaa e total em formato pt-BR sem símbolo de moeda.
func WriteCSV(w io.Writer, orders []repository.ReportOrder) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, o := range orders {
		row := []string{
			o.ID,
			o.CreatedAt.Format("02/01/2006"),
			o.ClientName,
			o.VendedorName,
			o.Status,
			brl.FormatPlain(o.Total),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
