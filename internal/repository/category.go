package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rajgarments/storefront/internal/apperr"
	"github.com/rajgarments/storefront/internal/model"
	"github.com/rajgarments/storefront/internal/storage/db"
)

type CreateCategoryParams struct {
	Name        string
	Slug        string
	Description string
}

type CategoryRepository interface {
	WithDB(db db.DB) CategoryRepository
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id int64) (model.Category, error)
	CreateCategory(ctx context.Context, params CreateCategoryParams) (model.Category, error)
}

type categoryRepository struct {
	db db.DB
}

func NewCategoryRepository(db db.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r categoryRepository) WithDB(db db.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

const categoryColumns = `id, name, slug, COALESCE(description, ''), created_at`

func (r categoryRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Category, error) {
		return scanCategory(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect categories: %w", err)
	}

	return categories, nil
}

func (r categoryRepository) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	category, err := scanCategory(r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		if db.IsNoRows(err) {
			return model.Category{}, apperr.CategoryNotFoundErr.WrapParent(err)
		}
		return model.Category{}, fmt.Errorf("get category: %w", err)
	}

	return category, nil
}

func (r categoryRepository) CreateCategory(ctx context.Context, params CreateCategoryParams) (model.Category, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO categories (name, slug, description)
		VALUES (@name, @slug, NULLIF(@description, ''))
		RETURNING `+categoryColumns,
		pgx.NamedArgs{
			"name":        params.Name,
			"slug":        params.Slug,
			"description": params.Description,
		})

	category, err := scanCategory(row)
	if err != nil {
		if db.IsUniqueViolation(err, "categories_slug_key") {
			return model.Category{}, apperr.SlugConflictErr.WrapParent(err)
		}
		return model.Category{}, fmt.Errorf("insert category: %w", err)
	}

	return category, nil
}

func scanCategory(row pgx.Row) (model.Category, error) {
	var c model.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt)
	return c, err
}
