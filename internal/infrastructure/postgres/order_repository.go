package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Carnes-api/internal/domain"
	"github.com/jhoicas/Carnes-api/internal/domain/entity"
	"github.com/jhoicas/Carnes-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, customer_name, COALESCE(customer_phone, ''), COALESCE(customer_address, ''), status,
	total_amount, order_date, created_at, updated_at`

// OrderRepo persiste pedidos y order_items.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta el pedido y sus líneas.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, customer_name, customer_phone, customer_address, status, total_amount, order_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CustomerName, nullIfEmpty(o.CustomerPhone), nullIfEmpty(o.CustomerAddress),
		o.Status, o.TotalAmount, o.OrderDate, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return r.insertItems(ctx, o)
}

// GetByID obtiene el pedido con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if o.Items, err = r.items(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

// Update reemplaza los datos del pedido y todas sus líneas.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	query := `
		UPDATE orders SET customer_name = $2, customer_phone = $3, customer_address = $4, status = $5,
		       total_amount = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		o.ID, o.CustomerName, nullIfEmpty(o.CustomerPhone), nullIfEmpty(o.CustomerAddress),
		o.Status, o.TotalAmount, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, o.ID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return r.insertItems(ctx, o)
}

// UpdateStatus cambia solo el estado.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el pedido (líneas en cascada). ErrConflict si tiene factura.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista pedidos, el más reciente primero.
func (r *OrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY order_date DESC, id`)
}

// SearchByCustomerName subcadena del nombre del cliente, sin distinguir mayúsculas.
func (r *OrderRepo) SearchByCustomerName(ctx context.Context, name string) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE customer_name ILIKE '%' || $1 || '%' ORDER BY order_date DESC, id`, name)
}

// ListByStatus pedidos en un estado.
func (r *OrderRepo) ListByStatus(ctx context.Context, status string) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE status = $1 ORDER BY order_date DESC, id`, status)
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		if o.Items, err = r.items(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// items carga las líneas resolviendo el nombre del producto (vía lote o directo).
func (r *OrderRepo) items(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.meat_cut_id, oi.weight, oi.unit_price, oi.subtotal,
		       COALESCE(lp.name, p.name, '')
		FROM order_items oi
		LEFT JOIN meat_cuts mc ON mc.id = oi.meat_cut_id
		LEFT JOIN products lp ON lp.id = mc.product_id
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.position, oi.id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		var productID, lotID *string
		if err := rows.Scan(&it.ID, &it.OrderID, &productID, &lotID, &it.Weight, &it.UnitPrice, &it.Subtotal, &it.ItemName); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		it.ProductID = derefStr(productID)
		it.LotID = derefStr(lotID)
		list = append(list, &it)
	}
	return list, rows.Err()
}

func (r *OrderRepo) insertItems(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, meat_cut_id, weight, unit_price, subtotal, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i, it := range o.Items {
		_, err := r.q.Exec(ctx, query,
			it.ID, o.ID, nullIfEmpty(it.ProductID), nullIfEmpty(it.LotID), it.Weight, it.UnitPrice, it.Subtotal, i,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.CustomerAddress, &o.Status,
		&o.TotalAmount, &o.OrderDate, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
