// Package sales contiene el motor de precios de pedidos y la reserva de peso en lotes.
package sales

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Carnes-api/internal/application/dto"
	appinventory "github.com/jhoicas/Carnes-api/internal/application/inventory"
	"github.com/jhoicas/Carnes-api/internal/domain"
	"github.com/jhoicas/Carnes-api/internal/domain/entity"
	"github.com/jhoicas/Carnes-api/internal/domain/repository"
	"github.com/jhoicas/Carnes-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// OrderUseCase crea y edita pedidos resolviendo precios desde lotes o productos,
// y mantiene las reservas de peso de los lotes referenciados.
//
// Reglas de precio:
//   - Create: el precio del lote (o del producto) siempre reemplaza al del cliente.
//   - Update: se conserva el precio del cliente salvo que sea nulo o cero.
//
// Reservas: un pedido no cancelado retiene el peso de sus líneas con lote.
type OrderUseCase struct {
	txRunner repository.TxRunner
	repo     repository.OrderRepository
	log      *logger.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner repository.TxRunner, repo repository.OrderRepository, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, repo: repo, log: log.Named("orders")}
}

// Create crea el pedido. Cada línea toma el precio autoritativo de su lote o producto.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.OrderRequest) (*dto.OrderResponse, error) {
	status, err := validateOrderRequest(in, entity.OrderStatusPending)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	o := &entity.Order{
		ID:              uuid.New().String(),
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		CustomerAddress: strings.TrimSpace(in.CustomerAddress),
		Status:          status,
		OrderDate:       now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		items, err := resolveItems(ctx, repos, in.Items, false)
		if err != nil {
			return err
		}
		o.Items = items
		o.CalculateTotal()
		if err := repos.Orders.Create(ctx, o); err != nil {
			return fmt.Errorf("crear pedido: %w", err)
		}
		if o.IsCancelled() {
			return nil
		}
		return reserveItems(ctx, repos.Lots, o.Items)
	})
	if err != nil {
		uc.logFailure(err, o.ID, "crear pedido")
		return nil, err
	}
	uc.log.Info().
		Str("order_id", o.ID).
		Str("customer", o.CustomerName).
		Int("items", len(o.Items)).
		Str("total", o.TotalAmount.StringFixed(entity.MoneyScale)).
		Msg("pedido creado")
	out := dto.ToOrderResponse(o)
	return &out, nil
}

// Update reemplaza datos del cliente, estado y todas las líneas. Libera las reservas anteriores
// y reserva las nuevas (salvo que el pedido quede cancelado).
func (uc *OrderUseCase) Update(ctx context.Context, id string, in dto.OrderRequest) (*dto.OrderResponse, error) {
	var updated *entity.Order
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		o, err := repos.Orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("pedido %s: %w", id, domain.ErrNotFound)
		}
		status, err := validateOrderRequest(in, o.Status)
		if err != nil {
			return err
		}
		if !o.IsCancelled() {
			if err := releaseItems(ctx, repos.Lots, o.Items); err != nil {
				return err
			}
		}
		items, err := resolveItems(ctx, repos, in.Items, true)
		if err != nil {
			return err
		}
		o.CustomerName = strings.TrimSpace(in.CustomerName)
		o.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
		o.CustomerAddress = strings.TrimSpace(in.CustomerAddress)
		o.Status = status
		o.Items = items
		o.UpdatedAt = time.Now()
		o.CalculateTotal()
		if err := repos.Orders.Update(ctx, o); err != nil {
			return fmt.Errorf("actualizar pedido: %w", err)
		}
		if !o.IsCancelled() {
			if err := reserveItems(ctx, repos.Lots, o.Items); err != nil {
				return err
			}
		}
		updated = o
		return nil
	})
	if err != nil {
		uc.logFailure(err, id, "actualizar pedido")
		return nil, err
	}
	uc.log.Info().
		Str("order_id", id).
		Str("status", updated.Status).
		Str("total", updated.TotalAmount.StringFixed(entity.MoneyScale)).
		Msg("pedido actualizado")
	out := dto.ToOrderResponse(updated)
	return &out, nil
}

// UpdateStatus cambia el estado. Cancelar libera las reservas; reactivar un pedido cancelado las vuelve a tomar.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.OrderResponse, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, domain.NewValidationError("status", "estado inválido")
	}
	var updated *entity.Order
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		o, err := repos.Orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("pedido %s: %w", id, domain.ErrNotFound)
		}
		wasCancelled := o.IsCancelled()
		o.Status = status
		switch {
		case !wasCancelled && o.IsCancelled():
			err = releaseItems(ctx, repos.Lots, o.Items)
		case wasCancelled && !o.IsCancelled():
			err = reserveItems(ctx, repos.Lots, o.Items)
		}
		if err != nil {
			return err
		}
		if err := repos.Orders.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		o.UpdatedAt = time.Now()
		updated = o
		return nil
	})
	if err != nil {
		uc.logFailure(err, id, "cambiar estado del pedido")
		return nil, err
	}
	uc.log.Info().Str("order_id", id).Str("status", status).Msg("estado del pedido actualizado")
	out := dto.ToOrderResponse(updated)
	return &out, nil
}

// Delete elimina el pedido liberando sus reservas (salvo que esté cancelado). ErrConflict si está facturado.
func (uc *OrderUseCase) Delete(ctx context.Context, id string) error {
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		o, err := repos.Orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("pedido %s: %w", id, domain.ErrNotFound)
		}
		if !o.IsCancelled() {
			if err := releaseItems(ctx, repos.Lots, o.Items); err != nil {
				return err
			}
		}
		if err := repos.Orders.Delete(ctx, id); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return fmt.Errorf("%w: el pedido %s tiene factura", domain.ErrConflict, id)
			}
			return err
		}
		return nil
	})
	if err != nil {
		uc.logFailure(err, id, "eliminar pedido")
		return err
	}
	uc.log.Info().Str("order_id", id).Msg("pedido eliminado")
	return nil
}

// GetByID obtiene un pedido con sus líneas.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		uc.log.Warn().Str("order_id", id).Msg("pedido no encontrado")
		return nil, fmt.Errorf("pedido %s: %w", id, domain.ErrNotFound)
	}
	out := dto.ToOrderResponse(o)
	return &out, nil
}

// List lista todos los pedidos.
func (uc *OrderUseCase) List(ctx context.Context) ([]dto.OrderResponse, error) {
	return toOrderResponses(uc.repo.List(ctx))
}

// Search busca por subcadena del nombre del cliente.
func (uc *OrderUseCase) Search(ctx context.Context, customerName string) ([]dto.OrderResponse, error) {
	return toOrderResponses(uc.repo.SearchByCustomerName(ctx, strings.TrimSpace(customerName)))
}

// ListByStatus pedidos en un estado.
func (uc *OrderUseCase) ListByStatus(ctx context.Context, status string) ([]dto.OrderResponse, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !entity.ValidOrderStatus(status) {
		return nil, domain.NewValidationError("status", "estado inválido")
	}
	return toOrderResponses(uc.repo.ListByStatus(ctx, status))
}

// ListCustomers clientes únicos (por nombre, sin distinguir mayúsculas) con los datos de su pedido más reciente.
func (uc *OrderUseCase) ListCustomers(ctx context.Context) ([]dto.CustomerResponse, error) {
	orders, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]dto.CustomerResponse)
	for _, o := range orders {
		key := strings.ToLower(strings.TrimSpace(o.CustomerName))
		if key == "" {
			continue
		}
		if cur, ok := byName[key]; ok && !o.OrderDate.After(cur.LastOrderDate) {
			continue
		}
		byName[key] = dto.CustomerResponse{
			Name:          o.CustomerName,
			Phone:         o.CustomerPhone,
			Address:       o.CustomerAddress,
			LastOrderDate: o.OrderDate,
		}
	}
	out := make([]dto.CustomerResponse, 0, len(byName))
	for _, c := range byName {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (uc *OrderUseCase) logFailure(err error, id, op string) {
	ev := uc.log.Error()
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrInsufficientCapacity) || errors.Is(err, domain.ErrConflict) {
		ev = uc.log.Warn()
	}
	ev.Err(err).Str("order_id", id).Msg(op)
}

func toOrderResponses(list []*entity.Order, err error) ([]dto.OrderResponse, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.ToOrderResponse(o))
	}
	return out, nil
}

// validateOrderRequest valida campos y devuelve el estado efectivo (def si viene vacío).
func validateOrderRequest(in dto.OrderRequest, def string) (string, error) {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(in.CustomerName) == "" {
		verr.Add("customer_name", "el nombre del cliente es obligatorio")
	}
	status := strings.ToUpper(strings.TrimSpace(in.Status))
	if status == "" {
		status = def
	}
	if !entity.ValidOrderStatus(status) {
		verr.Add("status", "estado inválido")
	}
	if len(in.Items) == 0 {
		verr.Add("items", "el pedido debe tener al menos una línea")
	}
	for i, it := range in.Items {
		if it.LotID == "" && it.ProductID == "" {
			verr.Add(fmt.Sprintf("items[%d]", i), "debe indicar meat_cut_id o product_id")
		}
		// Se valida el peso que se guarda: 0.0004 kg redondea a 0.
		if !entity.RoundWeight(it.Weight).IsPositive() {
			verr.Add(fmt.Sprintf("items[%d].weight", i), "el peso debe ser al menos 0.001")
		}
		if it.UnitPrice != nil && it.UnitPrice.IsNegative() {
			verr.Add(fmt.Sprintf("items[%d].unit_price", i), "el precio debe ser positivo o cero")
		}
	}
	return status, verr.OrNil()
}

// resolveItems resuelve cada línea contra su lote (prioritario) o producto.
// keepClientPrice=false: el precio resuelto siempre gana (creación).
// keepClientPrice=true: gana el precio del cliente salvo nulo o cero (edición).
func resolveItems(ctx context.Context, repos repository.Repos, in []dto.OrderItemRequest, keepClientPrice bool) ([]*entity.OrderItem, error) {
	items := make([]*entity.OrderItem, 0, len(in))
	for i, req := range in {
		item := &entity.OrderItem{
			ID:     uuid.New().String(),
			Weight: entity.RoundWeight(req.Weight),
		}
		var resolved decimal.Decimal
		if req.LotID != "" {
			lot, err := repos.Lots.GetByID(ctx, req.LotID)
			if err != nil {
				return nil, err
			}
			if lot == nil {
				return nil, fmt.Errorf("items[%d]: lote %s: %w", i, req.LotID, domain.ErrNotFound)
			}
			// La línea guarda también el producto del lote: sobrevive a la baja de la faena.
			item.LotID = lot.ID
			item.ProductID = lot.ProductID
			resolved = lot.PricePerUnitWeight
			if p, err := repos.Products.GetByID(ctx, lot.ProductID); err == nil && p != nil {
				item.ItemName = p.Name
			}
		} else {
			p, err := repos.Products.GetByID(ctx, req.ProductID)
			if err != nil {
				return nil, err
			}
			if p == nil {
				return nil, fmt.Errorf("items[%d]: producto %s: %w", i, req.ProductID, domain.ErrNotFound)
			}
			item.ProductID = p.ID
			item.ItemName = p.Name
			resolved = p.Price
		}
		item.UnitPrice = resolved
		if keepClientPrice && req.UnitPrice != nil && !req.UnitPrice.IsZero() {
			item.UnitPrice = entity.RoundMoney(*req.UnitPrice)
		}
		items = append(items, item)
	}
	return items, nil
}

func reserveItems(ctx context.Context, lots repository.LotRepository, items []*entity.OrderItem) error {
	for _, it := range items {
		if !it.IsLotItem() {
			continue
		}
		if err := appinventory.ReserveLotWeight(ctx, lots, it.LotID, it.Weight); err != nil {
			return err
		}
	}
	return nil
}

func releaseItems(ctx context.Context, lots repository.LotRepository, items []*entity.OrderItem) error {
	for _, it := range items {
		if !it.IsLotItem() {
			continue
		}
		if err := appinventory.ReleaseLotWeight(ctx, lots, it.LotID, it.Weight); err != nil {
			return err
		}
	}
	return nil
}
