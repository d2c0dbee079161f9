package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/rajgarments/storefront/internal/apperr"
	"github.com/rajgarments/storefront/internal/model"
	"github.com/rajgarments/storefront/internal/storage/db"
)

type ListProductsParams struct {
	CategoryID   *int64
	FeaturedOnly bool
}

type CreateProductParams struct {
	Name          string
	Slug          string
	Description   string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	ImageURL      *string
	CategoryID    *int64
	Stock         *int
	Featured      *bool
}

// UpdateProductParams holds a partial update; nil fields keep their value.
type UpdateProductParams struct {
	Name          *string
	Slug          *string
	Description   *string
	Price         *decimal.Decimal
	OriginalPrice *decimal.Decimal
	ImageURL      *string
	CategoryID    *int64
	Stock         *int
	Featured      *bool
	IsActive      *bool
}

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error)
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	UpdateProduct(ctx context.Context, id int64, params UpdateProductParams) (model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `
	p.id, p.name, p.slug, COALESCE(p.description, ''), p.price, p.original_price,
	p.image_url, p.category_id, p.stock, p.featured, p.is_active, p.created_at, p.updated_at`

func (r productRepository) ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error) {
	var (
		sb   strings.Builder
		args = pgx.NamedArgs{}
	)
	sb.WriteString("SELECT " + productColumns + " FROM products p WHERE p.is_active")
	if params.CategoryID != nil {
		sb.WriteString(" AND p.category_id = @category_id")
		args["category_id"] = *params.CategoryID
	}
	if params.FeaturedOnly {
		sb.WriteString(" AND p.featured")
	}
	sb.WriteString(" ORDER BY p.created_at DESC NULLS LAST, p.id DESC")

	rows, err := r.db.Query(ctx, sb.String(), args)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Product, error) {
		return scanProduct(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect products: %w", err)
	}

	return products, nil
}

func (r productRepository) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products p
		WHERE p.is_active
			AND (p.name ILIKE @pattern OR p.description ILIKE @pattern)
		ORDER BY p.created_at DESC NULLS LAST, p.id DESC
	`, pgx.NamedArgs{
		"pattern": "%" + escapeLike(query) + "%",
	})
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Product, error) {
		return scanProduct(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect products: %w", err)
	}

	return products, nil
}

func (r productRepository) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id)

	product, err := scanProduct(row)
	if err != nil {
		if db.IsNoRows(err) {
			return model.Product{}, apperr.ProductNotFoundErr.WrapParent(err)
		}
		return model.Product{}, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

func (r productRepository) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO products AS p (
			name, slug, description, price, original_price, image_url,
			category_id, stock, featured
		) VALUES (
			@name, @slug, @description, @price, @original_price, @image_url,
			@category_id, COALESCE(@stock, 0), COALESCE(@featured, FALSE)
		)
		RETURNING `+productColumns,
		pgx.NamedArgs{
			"name":           params.Name,
			"slug":           params.Slug,
			"description":    params.Description,
			"price":          params.Price,
			"original_price": nullDecimal(params.OriginalPrice),
			"image_url":      params.ImageURL,
			"category_id":    params.CategoryID,
			"stock":          params.Stock,
			"featured":       params.Featured,
		})

	product, err := scanProduct(row)
	if err != nil {
		if db.IsUniqueViolation(err, "products_slug_key") {
			return model.Product{}, apperr.SlugConflictErr.WrapParent(err)
		}
		return model.Product{}, fmt.Errorf("insert product: %w", err)
	}

	return product, nil
}

func (r productRepository) UpdateProduct(ctx context.Context, id int64, params UpdateProductParams) (model.Product, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE products AS p SET
			name           = COALESCE(@name, p.name),
			slug           = COALESCE(@slug, p.slug),
			description    = COALESCE(@description, p.description),
			price          = COALESCE(@price, p.price),
			original_price = COALESCE(@original_price, p.original_price),
			image_url      = COALESCE(@image_url, p.image_url),
			category_id    = COALESCE(@category_id, p.category_id),
			stock          = COALESCE(@stock, p.stock),
			featured       = COALESCE(@featured, p.featured),
			is_active      = COALESCE(@is_active, p.is_active),
			updated_at     = NOW()
		WHERE p.id = @id
		RETURNING `+productColumns,
		pgx.NamedArgs{
			"id":             id,
			"name":           params.Name,
			"slug":           params.Slug,
			"description":    params.Description,
			"price":          nullDecimal(params.Price),
			"original_price": nullDecimal(params.OriginalPrice),
			"image_url":      params.ImageURL,
			"category_id":    params.CategoryID,
			"stock":          params.Stock,
			"featured":       params.Featured,
			"is_active":      params.IsActive,
		})

	product, err := scanProduct(row)
	if err != nil {
		switch {
		case db.IsNoRows(err):
			return model.Product{}, apperr.ProductNotFoundErr.WrapParent(err)
		case db.IsUniqueViolation(err, "products_slug_key"):
			return model.Product{}, apperr.SlugConflictErr.WrapParent(err)
		}
		return model.Product{}, fmt.Errorf("update product: %w", err)
	}

	return product, nil
}

func (r productRepository) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ProductNotFoundErr
	}

	return nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		p             model.Product
		originalPrice decimal.NullDecimal
	)
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.Price,
		&originalPrice,
		&p.ImageURL,
		&p.CategoryID,
		&p.Stock,
		&p.Featured,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return model.Product{}, err
	}

	if originalPrice.Valid {
		p.OriginalPrice = &originalPrice.Decimal
	}

	return p, nil
}

// nullDecimal keeps nil pointers as SQL NULL.
func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
