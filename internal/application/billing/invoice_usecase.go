// Package billing crea facturas a partir de pedidos y genera sus comprobantes PDF.
package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Carnes-api/internal/application/dto"
	"github.com/jhoicas/Carnes-api/internal/domain"
	dombilling "github.com/jhoicas/Carnes-api/internal/domain/billing"
	"github.com/jhoicas/Carnes-api/internal/domain/entity"
	"github.com/jhoicas/Carnes-api/internal/domain/repository"
	"github.com/jhoicas/Carnes-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// Settings parámetros de facturación.
type Settings struct {
	TaxRate         decimal.Decimal // porcentaje
	InvoicePrefix   string
	PaymentTermDays int
	CreatedBy       string
}

// DefaultSettings IVA 10 %, prefijo INV, 14 días de plazo.
func DefaultSettings() Settings {
	return Settings{
		TaxRate:         entity.DefaultTaxRate,
		InvoicePrefix:   dombilling.DefaultInvoicePrefix,
		PaymentTermDays: 14,
		CreatedBy:       "Administrator",
	}
}

// InvoiceUseCase facturas respaldadas por un pedido (uno a uno).
type InvoiceUseCase struct {
	txRunner repository.TxRunner
	repo     repository.InvoiceRepository
	orders   repository.OrderRepository
	settings Settings
	log      *logger.Logger
	now      func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner repository.TxRunner,
	repo repository.InvoiceRepository,
	orders repository.OrderRepository,
	settings Settings,
	log *logger.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner: txRunner,
		repo:     repo,
		orders:   orders,
		settings: settings,
		log:      log.Named("invoices"),
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *InvoiceUseCase) WithClock(now func() time.Time) *InvoiceUseCase {
	uc.now = now
	return uc
}

// Create factura el pedido: copia su total, aplica la tasa configurada y asigna el siguiente
// número del consecutivo anual. ErrConflict si el pedido ya tiene factura.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	now := uc.now()
	issue, err := parseDate("issue_date", in.IssueDate, startOfDay(now))
	if err != nil {
		return nil, err
	}
	var due *time.Time
	if in.DueDate != "" {
		t, err := parseDate("due_date", in.DueDate, time.Time{})
		if err != nil {
			return nil, err
		}
		due = &t
	} else {
		t := issue.AddDate(0, 0, uc.settings.PaymentTermDays)
		due = &t
	}
	if due.Before(issue) {
		return nil, domain.NewValidationError("due_date", "el vencimiento no puede ser anterior a la emisión")
	}

	inv := &entity.Invoice{
		ID:        uuid.New().String(),
		OrderID:   strings.TrimSpace(in.OrderID),
		IssueDate: issue,
		DueDate:   due,
		TaxRate:   uc.settings.TaxRate,
		Notes:     in.Notes,
		Status:    entity.InvoiceStatusUnpaid,
		CreatedBy: uc.settings.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	var order *entity.Order
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		o, err := repos.Orders.GetByID(ctx, inv.OrderID)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("pedido %s: %w", inv.OrderID, domain.ErrNotFound)
		}
		existing, err := repos.Invoices.GetByOrderID(ctx, o.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: el pedido %s ya tiene la factura %s", domain.ErrConflict, o.ID, existing.InvoiceNumber)
		}
		seq, err := repos.Sequences.Next(ctx, issue.Year())
		if err != nil {
			return fmt.Errorf("consecutivo de factura: %w", err)
		}
		inv.Sequence = seq
		inv.InvoiceNumber = dombilling.FormatInvoiceNumber(uc.settings.InvoicePrefix, issue.Year(), seq)
		inv.TotalAmount = o.TotalAmount
		inv.CalculateTotals()
		if err := repos.Invoices.Create(ctx, inv); err != nil {
			return fmt.Errorf("crear factura: %w", err)
		}
		order = o
		return nil
	})
	if err != nil {
		uc.logFailure(err, inv.OrderID, "crear factura")
		return nil, err
	}
	uc.log.Info().
		Str("invoice_number", inv.InvoiceNumber).
		Str("order_id", inv.OrderID).
		Str("total", inv.GrandTotal.StringFixed(entity.MoneyScale)).
		Msg("factura creada")
	out := dto.ToInvoiceResponse(inv)
	ord := dto.ToOrderResponse(order)
	out.Order = &ord
	return &out, nil
}

// CreateFromOrder factura el pedido con fechas por defecto.
func (uc *InvoiceUseCase) CreateFromOrder(ctx context.Context, orderID string) (*dto.InvoiceResponse, error) {
	return uc.Create(ctx, dto.CreateInvoiceRequest{OrderID: orderID})
}

// Update reemplaza los campos editables y recalcula impuesto y total. TotalAmount no cambia.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	var updated *entity.Invoice
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		inv, err := repos.Invoices.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("factura %s: %w", id, domain.ErrNotFound)
		}
		if err := applyInvoiceUpdate(inv, in); err != nil {
			return err
		}
		inv.CalculateTotals()
		inv.UpdatedAt = uc.now()
		if err := repos.Invoices.Update(ctx, inv); err != nil {
			return fmt.Errorf("actualizar factura: %w", err)
		}
		updated = inv
		return nil
	})
	if err != nil {
		uc.logFailure(err, id, "actualizar factura")
		return nil, err
	}
	uc.log.Info().
		Str("invoice_number", updated.InvoiceNumber).
		Str("status", updated.Status).
		Str("total", updated.GrandTotal.StringFixed(entity.MoneyScale)).
		Msg("factura actualizada")
	out := dto.ToInvoiceResponse(updated)
	return &out, nil
}

// Delete elimina la factura; el pedido queda libre para volver a facturarse.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("factura %s: %w", id, domain.ErrNotFound)
		}
		uc.log.Error().Err(err).Str("invoice_id", id).Msg("eliminar factura")
		return err
	}
	uc.log.Info().Str("invoice_id", id).Msg("factura eliminada")
	return nil
}

// GetByID factura con su pedido.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		uc.log.Warn().Str("invoice_id", id).Msg("factura no encontrada")
		return nil, fmt.Errorf("factura %s: %w", id, domain.ErrNotFound)
	}
	return uc.withOrder(ctx, inv)
}

// GetByNumber busca por número de factura.
func (uc *InvoiceUseCase) GetByNumber(ctx context.Context, number string) (*dto.InvoiceResponse, error) {
	inv, err := uc.repo.GetByNumber(ctx, strings.TrimSpace(number))
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("factura %s: %w", number, domain.ErrNotFound)
	}
	return uc.withOrder(ctx, inv)
}

// GetByOrder factura de un pedido.
func (uc *InvoiceUseCase) GetByOrder(ctx context.Context, orderID string) (*dto.InvoiceResponse, error) {
	inv, err := uc.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("factura del pedido %s: %w", orderID, domain.ErrNotFound)
	}
	return uc.withOrder(ctx, inv)
}

// List todas las facturas (sin pedido), la más reciente primero.
func (uc *InvoiceUseCase) List(ctx context.Context) ([]dto.InvoiceResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, dto.ToInvoiceResponse(inv))
	}
	return out, nil
}

// MarkOverdue pasa a OVERDUE las facturas impagas vencidas a la fecha actual.
func (uc *InvoiceUseCase) MarkOverdue(ctx context.Context) (int64, error) {
	n, err := uc.repo.MarkOverdue(ctx, uc.now())
	if err != nil {
		uc.log.Error().Err(err).Msg("marcar facturas vencidas")
		return 0, err
	}
	if n > 0 {
		uc.log.Info().Int64("invoices", n).Msg("facturas marcadas como vencidas")
	}
	return n, nil
}

func (uc *InvoiceUseCase) withOrder(ctx context.Context, inv *entity.Invoice) (*dto.InvoiceResponse, error) {
	out := dto.ToInvoiceResponse(inv)
	o, err := uc.orders.GetByID(ctx, inv.OrderID)
	if err != nil {
		return nil, err
	}
	if o != nil {
		ord := dto.ToOrderResponse(o)
		out.Order = &ord
	}
	return &out, nil
}

func (uc *InvoiceUseCase) logFailure(err error, ref, op string) {
	ev := uc.log.Error()
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrConflict) {
		ev = uc.log.Warn()
	}
	ev.Err(err).Str("ref", ref).Msg(op)
}

func applyInvoiceUpdate(inv *entity.Invoice, in dto.UpdateInvoiceRequest) error {
	verr := &domain.ValidationError{}
	if in.IssueDate != nil {
		if t, err := time.Parse(dto.DateLayout, *in.IssueDate); err != nil {
			verr.Add("issue_date", "formato esperado YYYY-MM-DD")
		} else {
			inv.IssueDate = t
		}
	}
	if in.DueDate != nil {
		if *in.DueDate == "" {
			inv.DueDate = nil
		} else if t, err := time.Parse(dto.DateLayout, *in.DueDate); err != nil {
			verr.Add("due_date", "formato esperado YYYY-MM-DD")
		} else {
			inv.DueDate = &t
		}
	}
	if in.TaxRate != nil {
		if in.TaxRate.IsNegative() || in.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
			verr.Add("tax_rate", "debe estar entre 0 y 100")
		} else {
			inv.TaxRate = *in.TaxRate
		}
	}
	if in.Notes != nil {
		inv.Notes = *in.Notes
	}
	if in.Status != nil {
		status := strings.ToUpper(strings.TrimSpace(*in.Status))
		if !entity.ValidInvoiceStatus(status) {
			verr.Add("status", "estado inválido")
		} else {
			inv.Status = status
		}
	}
	if inv.DueDate != nil && inv.DueDate.Before(inv.IssueDate) {
		verr.Add("due_date", "el vencimiento no puede ser anterior a la emisión")
	}
	return verr.OrNil()
}

func parseDate(field, s string, def time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	t, err := time.Parse(dto.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "formato esperado YYYY-MM-DD")
	}
	return t, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
