package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/rajgarments/storefront/internal/apperr"
	"github.com/rajgarments/storefront/internal/model"
	"github.com/rajgarments/storefront/internal/repository"
	"github.com/rajgarments/storefront/internal/storage/db"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeDB runs transactions inline. Only WithTx is usable.
type fakeDB struct {
	db.DB
	txCount int
}

func (f *fakeDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	f.txCount++
	return txFunc(f)
}

type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	getErr  error
	deleted []string
	gets    chan string
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gets != nil {
		c.gets <- key
	}
	if c.getErr != nil {
		return false, c.getErr
	}
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (c *memCache) Set(_ context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	c.deleted = append(c.deleted, keys...)
	return nil
}

type fakeProductRepo struct {
	mu        sync.Mutex
	products  []model.Product
	listCalls int
	getCalls  int
	nextID    int64

	onList func(ctx context.Context) error
}

func (r *fakeProductRepo) WithDB(db.DB) repository.ProductRepository { return r }

func (r *fakeProductRepo) ListProducts(ctx context.Context, params repository.ListProductsParams) ([]model.Product, error) {
	if r.onList != nil {
		if err := r.onList(ctx); err != nil {
			return nil, err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	var out []model.Product
	for _, p := range r.products {
		if params.CategoryID != nil && !p.InCategory(*params.CategoryID) {
			continue
		}
		if params.FeaturedOnly && !p.IsFeatured() {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) SearchProducts(context.Context, string) ([]model.Product, error) {
	return r.products, nil
}

func (r *fakeProductRepo) GetProduct(_ context.Context, id int64) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, apperr.ProductNotFoundErr
}

func (r *fakeProductRepo) CreateProduct(_ context.Context, params repository.CreateProductParams) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p := model.Product{
		ID:          100 + r.nextID,
		Name:        params.Name,
		Slug:        params.Slug,
		Description: params.Description,
		Price:       params.Price,
		CategoryID:  params.CategoryID,
		Stock:       params.Stock,
		Featured:    params.Featured,
		IsActive:    true,
	}
	r.products = append(r.products, p)
	return p, nil
}

func (r *fakeProductRepo) UpdateProduct(_ context.Context, id int64, params repository.UpdateProductParams) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID != id {
			continue
		}
		if params.Name != nil {
			p.Name = *params.Name
		}
		if params.Price != nil {
			p.Price = *params.Price
		}
		if params.CategoryID != nil {
			p.CategoryID = params.CategoryID
		}
		r.products[i] = p
		return p, nil
	}
	return model.Product{}, apperr.ProductNotFoundErr
}

func (r *fakeProductRepo) DeleteProduct(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id {
			r.products = slices.Delete(r.products, i, i+1)
			return nil
		}
	}
	return apperr.ProductNotFoundErr
}

type fakeCategoryRepo struct {
	categories []model.Category
	listCalls  int
}

func (r *fakeCategoryRepo) WithDB(db.DB) repository.CategoryRepository { return r }

func (r *fakeCategoryRepo) ListCategories(context.Context) ([]model.Category, error) {
	r.listCalls++
	return r.categories, nil
}

func (r *fakeCategoryRepo) GetCategory(_ context.Context, id int64) (model.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Category{}, apperr.CategoryNotFoundErr
}

func (r *fakeCategoryRepo) CreateCategory(_ context.Context, params repository.CreateCategoryParams) (model.Category, error) {
	for _, c := range r.categories {
		if c.Slug == params.Slug {
			return model.Category{}, apperr.SlugConflictErr
		}
	}
	c := model.Category{
		ID:          int64(len(r.categories) + 1),
		Name:        params.Name,
		Slug:        params.Slug,
		Description: params.Description,
	}
	r.categories = append(r.categories, c)
	return c, nil
}

type fakeCartRepo struct {
	items  []model.CartItem
	nextID int64
}

func (r *fakeCartRepo) WithDB(db.DB) repository.CartRepository { return r }

func (r *fakeCartRepo) ListCartItems(_ context.Context, userID string) ([]model.CartItem, error) {
	var out []model.CartItem
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeCartRepo) GetCartItem(_ context.Context, userID string, id int64) (model.CartItem, error) {
	for _, item := range r.items {
		if item.UserID == userID && item.ID == id {
			return item, nil
		}
	}
	return model.CartItem{}, apperr.CartItemNotFoundErr
}

func (r *fakeCartRepo) AddCartItem(_ context.Context, params repository.AddCartItemParams) (int64, error) {
	for i, item := range r.items {
		if item.UserID == params.UserID && item.ProductID == params.ProductID &&
			equalPtr(item.Size, params.Size) && equalPtr(item.Color, params.Color) {
			r.items[i].Quantity += params.Quantity
			return item.ID, nil
		}
	}
	r.nextID++
	r.items = append(r.items, model.CartItem{
		ID:        r.nextID,
		UserID:    params.UserID,
		ProductID: params.ProductID,
		Quantity:  params.Quantity,
		Size:      params.Size,
		Color:     params.Color,
		Product:   model.Product{ID: params.ProductID},
	})
	return r.nextID, nil
}

func (r *fakeCartRepo) UpdateCartItemQuantity(_ context.Context, userID string, id int64, quantity int) error {
	for i, item := range r.items {
		if item.UserID == userID && item.ID == id {
			r.items[i].Quantity = quantity
			return nil
		}
	}
	return apperr.CartItemNotFoundErr
}

func (r *fakeCartRepo) DeleteCartItem(_ context.Context, userID string, id int64) error {
	for i, item := range r.items {
		if item.UserID == userID && item.ID == id {
			r.items = slices.Delete(r.items, i, i+1)
			return nil
		}
	}
	return apperr.CartItemNotFoundErr
}

func (r *fakeCartRepo) ClearCart(_ context.Context, userID string) error {
	r.items = slices.DeleteFunc(r.items, func(item model.CartItem) bool {
		return item.UserID == userID
	})
	return nil
}

type fakeOrderRepo struct {
	orders []model.Order
}

func (r *fakeOrderRepo) WithDB(db.DB) repository.OrderRepository { return r }

func (r *fakeOrderRepo) CreateOrder(_ context.Context, params repository.CreateOrderParams) (model.Order, error) {
	o := model.Order{
		ID:              int64(len(r.orders) + 1),
		UserID:          params.UserID,
		Total:           params.Total,
		Status:          params.Status,
		ShippingAddress: params.ShippingAddress,
	}
	for i, item := range params.Items {
		productID := item.ProductID
		o.Items = append(o.Items, model.OrderItem{
			ID:        int64(i + 1),
			OrderID:   o.ID,
			ProductID: &productID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Size:      item.Size,
			Color:     item.Color,
		})
	}
	r.orders = append(r.orders, o)
	return o, nil
}

func (r *fakeOrderRepo) ListOrders(_ context.Context, userID string) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) GetOrder(_ context.Context, id int64) (model.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return model.Order{}, apperr.OrderNotFoundErr
}

type fakeOutboxRepo struct {
	msgs []repository.CreateOutboxMsgParams
}

func (r *fakeOutboxRepo) WithDB(db.DB) repository.OutboxMsgRepository { return r }

func (r *fakeOutboxRepo) CreateOutboxMsg(_ context.Context, params repository.CreateOutboxMsgParams) error {
	r.msgs = append(r.msgs, params)
	return nil
}

func (r *fakeOutboxRepo) ListUnprocessedOutboxMsgs(context.Context, repository.ListUnprocessedOutboxMsgsParams) ([]repository.ListUnprocessedOutboxMsgsResult, error) {
	return nil, nil
}

func (r *fakeOutboxRepo) BulkUpdateOutboxMsgs(context.Context, repository.BulkUpdateOutboxMsgsParams) error {
	return nil
}

func (r *fakeOutboxRepo) topics() []string {
	topics := make([]string, 0, len(r.msgs))
	for _, m := range r.msgs {
		topics = append(topics, m.Topic)
	}
	return topics
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
