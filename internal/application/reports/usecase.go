package reports

import (
	"context"
	"io"
	"time"

	"github.com/rmacedo/portal-pedidos-api/internal/application/dto"
	"github.com/rmacedo/portal-pedidos-api/internal/domain"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/repository"
)

// Renderer gera os PDFs de relatório: o gerencial e a exportação detalhada
// dos pedidos (uma página por pedido).
type Renderer interface {
	SalesReport(summary dto.SalesReportDTO, orders []repository.ReportOrder, generatedAt time.Time) ([]byte, error)
	OrderBatch(orders []repository.ReportOrder, generatedAt time.Time) ([]byte, error)
}

// UseCase monta relatórios de vendas a partir dos pedidos filtrados.
type UseCase struct {
	repo      repository.ReportRepository
	pdf       Renderer
	maxOrders int
	now       func() time.Time
}

// NewUseCase constrói o caso de uso. maxOrders é o teto de pedidos carregados
// por relatório; nowFn nil usa time.Now.
func NewUseCase(repo repository.ReportRepository, pdf Renderer, maxOrders int, nowFn func() time.Time) *UseCase {
	if maxOrders <= 0 {
		maxOrders = 10000
	}
	if nowFn == nil {
		nowFn = time.Now
	}
	return &UseCase{repo: repo, pdf: pdf, maxOrders: maxOrders, now: nowFn}
}

// Filter converte a requisição em filtro de repositório. Datas no formato
// YYYY-MM-DD; To é inclusivo até o fim do dia.
func Filter(in dto.ReportRequest) (repository.OrderFilter, error) {
	f := repository.OrderFilter{
		ClientID:   in.ClientID,
		VendedorID: in.VendedorID,
		Status:     in.Status,
	}
	if in.From != "" {
		from, err := time.Parse("2006-01-02", in.From)
		if err != nil {
			return f, domain.ErrEntradaInvalida
		}
		f.From = from
	}
	if in.To != "" {
		to, err := time.Parse("2006-01-02", in.To)
		if err != nil {
			return f, domain.ErrEntradaInvalida
		}
		f.To = to.AddDate(0, 0, 1) // limite superior exclusivo no dia seguinte
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return f, domain.ErrEntradaInvalida
	}
	return f, nil
}

// fetch busca até maxOrders pedidos e informa se o teto foi atingido.
func (uc *UseCase) fetch(ctx context.Context, in dto.ReportRequest) ([]repository.ReportOrder, bool, error) {
	f, err := Filter(in)
	if err != nil {
		return nil, false, err
	}
	// um a mais para detectar truncamento sem segunda consulta
	orders, err := uc.repo.FetchOrders(ctx, f, uc.maxOrders+1)
	if err != nil {
		return nil, false, err
	}
	if len(orders) > uc.maxOrders {
		return orders[:uc.maxOrders], true, nil
	}
	return orders, false, nil
}

// Summary devolve a agregação de vendas do período filtrado.
func (uc *UseCase) Summary(ctx context.Context, in dto.ReportRequest) (*dto.SalesReportDTO, error) {
	orders, truncated, err := uc.fetch(ctx, in)
	if err != nil {
		return nil, err
	}
	out := Aggregate(orders, in.TopN)
	out.Truncated = truncated
	return &out, nil
}

// CSV escreve a exportação dos pedidos filtrados em w.
func (uc *UseCase) CSV(ctx context.Context, in dto.ReportRequest, w io.Writer) error {
	orders, _, err := uc.fetch(ctx, in)
	if err != nil {
		return err
	}
	return WriteCSV(w, orders)
}

// PDF gera o relatório gerencial completo em PDF.
func (uc *UseCase) PDF(ctx context.Context, in dto.ReportRequest) ([]byte, error) {
	orders, truncated, err := uc.fetch(ctx, in)
	if err != nil {
		return nil, err
	}
	summary := Aggregate(orders, in.TopN)
	summary.Truncated = truncated
	return uc.pdf.SalesReport(summary, orders, uc.now())
}

// OrdersPDF gera a exportação detalhada dos pedidos filtrados, uma página
// por pedido com os itens.
func (uc *UseCase) OrdersPDF(ctx context.Context, in dto.ReportRequest) ([]byte, error) {
	orders, _, err := uc.fetch(ctx, in)
	if err != nil {
		return nil, err
	}
	return uc.pdf.OrderBatch(orders, uc.now())
}
