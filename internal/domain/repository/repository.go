package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Carnes-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Convención: GetByID devuelve (nil, nil) cuando el registro no existe.

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Product, error)
	SearchByName(ctx context.Context, name string) ([]*entity.Product, error)
	// AdjustManualQuantity suma delta a la cantidad manual de forma atómica, con piso en 0.
	AdjustManualQuantity(ctx context.Context, id string, delta decimal.Decimal) error
	SetManualQuantity(ctx context.Context, id string, qty decimal.Decimal) error
	// MarkLotBacked fija el modo LOT (irreversible una vez que algún lote referencia al producto).
	MarkLotBacked(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// SlaughterRepository persiste faenas junto con sus lotes (agregado).
type SlaughterRepository interface {
	Create(ctx context.Context, s *entity.Slaughter) error
	GetByID(ctx context.Context, id string) (*entity.Slaughter, error)
	// Update reemplaza los datos de la faena y su colección de lotes.
	Update(ctx context.Context, s *entity.Slaughter) error
	// Delete elimina la faena y sus lotes en cascada.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Slaughter, error)
	SearchByCowTag(ctx context.Context, tag string) ([]*entity.Slaughter, error)
	// ListByDateRange rango inclusivo por fecha de faena.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Slaughter, error)
}

// LotRepository acceso a lotes de inventario (meat cuts).
type LotRepository interface {
	GetByID(ctx context.Context, id string) (*entity.InventoryLot, error)
	// GetForUpdate bloquea el lote hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryLot, error)
	UpdateAvailableWeight(ctx context.Context, id string, available decimal.Decimal) error
	List(ctx context.Context) ([]*entity.InventoryLot, error)
	// ListAvailable lotes con peso disponible > 0, faena más reciente primero.
	ListAvailable(ctx context.Context) ([]*entity.InventoryLot, error)
	ListBySlaughter(ctx context.Context, slaughterID string) ([]*entity.InventoryLot, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryLot, error)
	SearchByProductAndMinWeight(ctx context.Context, productID string, minWeight decimal.Decimal) ([]*entity.InventoryLot, error)
	// ListAvailabilityByProduct lotes con disponibilidad del producto, con datos de faena y producto.
	ListAvailabilityByProduct(ctx context.Context, productID string) ([]*entity.LotAvailability, error)
}

// OrderRepository persiste pedidos junto con sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// Update reemplaza los datos del pedido y sus líneas.
	Update(ctx context.Context, o *entity.Order) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Order, error)
	SearchByCustomerName(ctx context.Context, name string) ([]*entity.Order, error)
	ListByStatus(ctx context.Context, status string) ([]*entity.Order, error)
}

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*entity.Invoice, error)
	GetByOrderID(ctx context.Context, orderID string) (*entity.Invoice, error)
	Update(ctx context.Context, inv *entity.Invoice) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Invoice, error)
	// MarkOverdue pasa a OVERDUE las facturas UNPAID con vencimiento anterior a asOf. Devuelve cuántas cambió.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

// InvoiceSequenceRepository consecutivo anual de facturas.
type InvoiceSequenceRepository interface {
	// Next reserva y devuelve el siguiente consecutivo del año (empieza en 1).
	Next(ctx context.Context, year int) (int64, error)
}

// Repos agrupa los repositorios atados a una misma unidad de trabajo.
type Repos struct {
	Products   ProductRepository
	Slaughters SlaughterRepository
	Lots       LotRepository
	Orders     OrderRepository
	Invoices   InvoiceRepository
	Sequences  InvoiceSequenceRepository
}

// TxRunner ejecuta fn dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se revierte todo lo hecho por fn.
// Dentro de fn solo deben usarse los repositorios recibidos.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}
