package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Carnes-api/internal/application/dto"
	"github.com/jhoicas/Carnes-api/internal/domain"
	"github.com/jhoicas/Carnes-api/internal/domain/entity"
	"github.com/jhoicas/Carnes-api/internal/domain/inventory"
	"github.com/jhoicas/Carnes-api/internal/domain/repository"
	"github.com/jhoicas/Carnes-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// ProductUseCase casos de uso del catálogo. La cantidad manual solo cambia vía faenas o SetManualStock.
type ProductUseCase struct {
	repo     repository.ProductRepository
	lotRepo  repository.LotRepository
	txRunner repository.TxRunner
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, lotRepo repository.LotRepository, txRunner repository.TxRunner, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, lotRepo: lotRepo, txRunner: txRunner, log: log.Named("products")}
}

// Create crea un nuevo producto. Cantidad manual inicia en 0; modo por defecto MANUAL.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product, err := newProduct(in, time.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("crear producto: %w", err)
	}
	uc.log.Info().Str("product_id", product.ID).Str("name", product.Name).Msg("producto creado")
	return toProductResponse(product), nil
}

// CreateBulk crea varios productos en una sola transacción.
func (uc *ProductUseCase) CreateBulk(ctx context.Context, in []dto.CreateProductRequest) ([]dto.ProductResponse, error) {
	if len(in) == 0 {
		return nil, domain.NewValidationError("products", "la lista no puede estar vacía")
	}
	now := time.Now()
	products := make([]*entity.Product, 0, len(in))
	for i, req := range in {
		p, err := newProduct(req, now)
		if err != nil {
			return nil, fmt.Errorf("producto %d: %w", i, err)
		}
		products = append(products, p)
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		for _, p := range products {
			if err := repos.Products.Create(ctx, p); err != nil {
				return fmt.Errorf("crear producto %q: %w", p.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("count", len(products)).Msg("productos creados en lote")
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza datos de catálogo; nunca la cantidad ni el modo de stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.NewValidationError("name", "el nombre es obligatorio")
		}
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.NewValidationError("price", "el precio debe ser positivo o cero")
		}
		product.Price = entity.RoundMoney(*in.Price)
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.MeatCutType != nil {
		product.MeatCutType = *in.MeatCutType
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("actualizar producto: %w", err)
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto. ErrConflict si algún lote lo referencia.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar producto: %w", err)
	}
	uc.log.Info().Str("product_id", id).Msg("producto eliminado")
	return nil
}

// List lista todos los productos.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Search busca productos por subcadena del nombre (sin distinguir mayúsculas).
func (uc *ProductUseCase) Search(ctx context.Context, name string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.SearchByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// ListWithStock lista productos con su stock disponible calculado al momento.
func (uc *ProductUseCase) ListWithStock(ctx context.Context) ([]dto.ProductWithStockResponse, error) {
	products, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	lots, err := uc.lotRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductWithStockResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductWithStockResponse{
			ProductResponse: dto.ToProductResponse(p),
			AvailableStock:  inventory.AvailableStock(p, lots),
		})
	}
	return out, nil
}

// GetWithStock producto con su stock disponible.
func (uc *ProductUseCase) GetWithStock(ctx context.Context, id string) (*dto.ProductWithStockResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	stock, err := uc.availableStock(ctx, p)
	if err != nil {
		return nil, err
	}
	return &dto.ProductWithStockResponse{ProductResponse: dto.ToProductResponse(p), AvailableStock: stock}, nil
}

// AvailableStock stock disponible de un producto.
func (uc *ProductUseCase) AvailableStock(ctx context.Context, id string) (*dto.AvailableStockResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	stock, err := uc.availableStock(ctx, p)
	if err != nil {
		return nil, err
	}
	return &dto.AvailableStockResponse{ProductID: p.ID, StockMode: p.StockMode, AvailableStock: stock}, nil
}

// SetManualStock fija la cantidad de un producto MANUAL. Para productos LOT el stock sale de los lotes.
func (uc *ProductUseCase) SetManualStock(ctx context.Context, id string, qty decimal.Decimal) (*dto.ProductWithStockResponse, error) {
	if qty.IsNegative() {
		return nil, domain.NewValidationError("quantity", "la cantidad debe ser positiva o cero")
	}
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsLotBacked() {
		return nil, fmt.Errorf("%w: el stock del producto %s se deriva de sus lotes", domain.ErrConflict, id)
	}
	qty = entity.RoundWeight(qty)
	if err := uc.repo.SetManualQuantity(ctx, id, qty); err != nil {
		return nil, fmt.Errorf("fijar stock manual: %w", err)
	}
	p.ManualQuantity = qty
	uc.log.Info().Str("product_id", id).Str("quantity", qty.String()).Msg("stock manual actualizado")
	return &dto.ProductWithStockResponse{ProductResponse: dto.ToProductResponse(p), AvailableStock: qty}, nil
}

// InitDefaultProducts reemplaza el catálogo por el surtido por defecto. ErrConflict si ya existen lotes.
func (uc *ProductUseCase) InitDefaultProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	now := time.Now()
	defaults := DefaultProducts()
	products := make([]*entity.Product, 0, len(defaults))
	for _, req := range defaults {
		p, err := newProduct(req, now)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		if err := repos.Products.DeleteAll(ctx); err != nil {
			return fmt.Errorf("vaciar catálogo: %w", err)
		}
		for _, p := range products {
			if err := repos.Products.Create(ctx, p); err != nil {
				return fmt.Errorf("crear producto %q: %w", p.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("count", len(products)).Msg("catálogo por defecto inicializado")
	return toProductResponses(products), nil
}

// InitializeDefaultProducts agrega los productos por defecto que faltan (por nombre).
// Con overwrite los existentes toman los datos del surtido; el modo de stock no cambia.
func (uc *ProductUseCase) InitializeDefaultProducts(ctx context.Context, overwrite bool) ([]dto.ProductResponse, error) {
	now := time.Now()
	defaults := DefaultProducts()
	out := make([]*entity.Product, 0, len(defaults))
	created, updated := 0, 0
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		existing, err := repos.Products.List(ctx)
		if err != nil {
			return fmt.Errorf("listar productos: %w", err)
		}
		byName := make(map[string]*entity.Product, len(existing))
		for _, p := range existing {
			byName[strings.ToLower(p.Name)] = p
		}
		for _, req := range defaults {
			current, found := byName[strings.ToLower(req.Name)]
			switch {
			case found && !overwrite:
				out = append(out, current)
			case found:
				current.Description = req.Description
				current.Price = entity.RoundMoney(req.Price)
				current.ImageURL = req.ImageURL
				current.MeatCutType = req.MeatCutType
				current.UpdatedAt = now
				if err := repos.Products.Update(ctx, current); err != nil {
					return fmt.Errorf("actualizar producto %q: %w", current.Name, err)
				}
				updated++
				out = append(out, current)
			default:
				p, err := newProduct(req, now)
				if err != nil {
					return err
				}
				if err := repos.Products.Create(ctx, p); err != nil {
					return fmt.Errorf("crear producto %q: %w", p.Name, err)
				}
				created++
				out = append(out, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("created", created).Int("updated", updated).Bool("overwrite", overwrite).Msg("catálogo por defecto completado")
	return toProductResponses(out), nil
}

// ClearProducts vacía el catálogo y devuelve cuántos productos había. ErrConflict si existen lotes.
func (uc *ProductUseCase) ClearProducts(ctx context.Context) (int, error) {
	count := 0
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		existing, err := repos.Products.List(ctx)
		if err != nil {
			return fmt.Errorf("listar productos: %w", err)
		}
		count = len(existing)
		if err := repos.Products.DeleteAll(ctx); err != nil {
			return fmt.Errorf("vaciar catálogo: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	uc.log.Warn().Int("count", count).Msg("catálogo vaciado")
	return count, nil
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		uc.log.Warn().Str("product_id", id).Msg("producto no encontrado")
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return product, nil
}

func (uc *ProductUseCase) availableStock(ctx context.Context, p *entity.Product) (decimal.Decimal, error) {
	if !p.IsLotBacked() {
		return inventory.AvailableStock(p, nil), nil
	}
	lots, err := uc.lotRepo.ListByProduct(ctx, p.ID)
	if err != nil {
		return decimal.Zero, err
	}
	return inventory.AvailableStock(p, lots), nil
}

func newProduct(in dto.CreateProductRequest, now time.Time) (*entity.Product, error) {
	verr := &domain.ValidationError{}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		verr.Add("name", "el nombre es obligatorio")
	}
	if in.Price.IsNegative() {
		verr.Add("price", "el precio debe ser positivo o cero")
	}
	mode := in.StockMode
	if mode == "" {
		mode = entity.StockModeManual
	}
	if !entity.ValidStockMode(mode) {
		verr.Add("stock_mode", "debe ser LOT o MANUAL")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return &entity.Product{
		ID:             uuid.New().String(),
		Name:           name,
		Description:    in.Description,
		Price:          entity.RoundMoney(in.Price),
		ImageURL:       in.ImageURL,
		MeatCutType:    in.MeatCutType,
		ManualQuantity: decimal.Zero,
		StockMode:      mode,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	r := dto.ToProductResponse(p)
	return &r
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ToProductResponse(p))
	}
	return items
}
