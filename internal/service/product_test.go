package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajgarments/storefront/internal/apperr"
	"github.com/rajgarments/storefront/internal/event"
	"github.com/rajgarments/storefront/internal/model"
	"github.com/rajgarments/storefront/internal/storage/cache"
	"github.com/rajgarments/storefront/pkg/correlationid"
	"github.com/rajgarments/storefront/pkg/ptr"
)

type productFixture struct {
	svc        ProductService
	db         *fakeDB
	products   *fakeProductRepo
	categories *fakeCategoryRepo
	outbox     *fakeOutboxRepo
	cache      *memCache
}

func newProductFixture() productFixture {
	f := productFixture{
		db: &fakeDB{},
		products: &fakeProductRepo{products: []model.Product{
			{ID: 1, Name: "Linen Shirt", Price: decimal.RequireFromString("899"), CategoryID: ptr.New(int64(1)), Featured: ptr.New(true), IsActive: true},
			{ID: 2, Name: "Silk Saree", Price: decimal.RequireFromString("2499"), CategoryID: ptr.New(int64(2)), IsActive: true},
		}},
		categories: &fakeCategoryRepo{categories: []model.Category{
			{ID: 1, Name: "Men", Slug: "men"},
			{ID: 2, Name: "Women", Slug: "women"},
		}},
		outbox: &fakeOutboxRepo{},
		cache:  newMemCache(),
	}
	f.svc = NewProductService(f.db, f.products, f.categories, f.outbox, f.cache, discardLogger())
	return f
}

func TestProductService_ListProducts(t *testing.T) {
	t.Run("cached after first read", func(t *testing.T) {
		f := newProductFixture()
		ctx := context.Background()

		first, err := f.svc.ListProducts(ctx, ListProductsParams{})
		require.NoError(t, err)
		second, err := f.svc.ListProducts(ctx, ListProductsParams{})
		require.NoError(t, err)

		assert.Len(t, first, 2)
		assert.Equal(t, len(first), len(second))
		assert.Equal(t, first[0].Price.String(), second[0].Price.String())
		assert.Equal(t, 1, f.products.listCalls)
	})

	t.Run("filters use separate keys", func(t *testing.T) {
		f := newProductFixture()
		ctx := context.Background()

		featured, err := f.svc.ListProducts(ctx, ListProductsParams{FeaturedOnly: true})
		require.NoError(t, err)
		women, err := f.svc.ListProducts(ctx, ListProductsParams{CategoryID: ptr.New(int64(2))})
		require.NoError(t, err)

		require.Len(t, featured, 1)
		assert.Equal(t, int64(1), featured[0].ID)
		require.Len(t, women, 1)
		assert.Equal(t, int64(2), women[0].ID)
		assert.Equal(t, 2, f.products.listCalls)
	})

	t.Run("cache failure falls through to repository", func(t *testing.T) {
		f := newProductFixture()
		f.cache.getErr = errors.New("redis down")

		products, err := f.svc.ListProducts(context.Background(), ListProductsParams{})

		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("cancelled caller does not fail a shared load", func(t *testing.T) {
		f := newProductFixture()
		f.cache.gets = make(chan string, 2)

		var (
			once    sync.Once
			loadCtx context.Context
		)
		started := make(chan struct{})
		release := make(chan struct{})
		f.products.onList = func(ctx context.Context) error {
			once.Do(func() {
				loadCtx = ctx
				close(started)
			})
			select {
			case <-release:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		ctxA, cancelA := context.WithCancel(context.Background())
		errA := make(chan error, 1)
		go func() {
			_, err := f.svc.ListProducts(ctxA, ListProductsParams{})
			errA <- err
		}()
		<-f.cache.gets
		<-started

		type result struct {
			products []model.Product
			err      error
		}
		resB := make(chan result, 1)
		go func() {
			products, err := f.svc.ListProducts(context.Background(), ListProductsParams{})
			resB <- result{products, err}
		}()
		<-f.cache.gets
		time.Sleep(20 * time.Millisecond)

		cancelA()
		require.ErrorIs(t, <-errA, context.Canceled)
		assert.NoError(t, loadCtx.Err())

		close(release)
		b := <-resB
		require.NoError(t, b.err)
		assert.Len(t, b.products, 2)
	})
}

func TestProductService_GetProduct(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()

	p, err := f.svc.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Linen Shirt", p.Name)

	_, err = f.svc.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, f.products.getCalls)

	_, err = f.svc.GetProduct(ctx, 404)
	assert.ErrorIs(t, err, apperr.ProductNotFoundErr)
}

func TestProductService_CreateProduct(t *testing.T) {
	t.Run("writes outbox message", func(t *testing.T) {
		f := newProductFixture()
		ctx := correlationid.NewContext(context.Background(), "corr-1")

		p, err := f.svc.CreateProduct(ctx, CreateProductParams{
			Name:       "Cotton Kurta",
			Slug:       "cotton-kurta",
			Price:      decimal.RequireFromString("1299.00"),
			CategoryID: ptr.New(int64(1)),
		})

		require.NoError(t, err)
		assert.Equal(t, "Cotton Kurta", p.Name)
		assert.Equal(t, 1, f.db.txCount)
		require.Len(t, f.outbox.msgs, 1)

		msg := f.outbox.msgs[0]
		assert.Equal(t, event.TopicProductCreated, msg.Topic)
		assert.Equal(t, "corr-1", msg.Headers[correlationid.Header])
		require.NotNil(t, msg.PartitionKey)

		var ev event.ProductChangedEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &ev))
		assert.Equal(t, p.ID, ev.ProductID)
		assert.Equal(t, []int64{1}, ev.CategoryIDs)
		assert.True(t, ev.Price.Equal(decimal.RequireFromString("1299")))
	})

	t.Run("unknown category", func(t *testing.T) {
		f := newProductFixture()

		_, err := f.svc.CreateProduct(context.Background(), CreateProductParams{
			Name:       "Cotton Kurta",
			Slug:       "cotton-kurta",
			CategoryID: ptr.New(int64(99)),
		})

		assert.ErrorIs(t, err, apperr.CategoryNotFoundErr)
		assert.Empty(t, f.outbox.msgs)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	f := newProductFixture()

	p, err := f.svc.UpdateProduct(context.Background(), 1, UpdateProductParams{
		Name:       ptr.New("Linen Shirt Slim"),
		CategoryID: ptr.New(int64(2)),
	})

	require.NoError(t, err)
	assert.Equal(t, "Linen Shirt Slim", p.Name)
	assert.Equal(t, []string{event.TopicProductUpdated}, f.outbox.topics())

	var ev event.ProductChangedEvent
	require.NoError(t, json.Unmarshal(f.outbox.msgs[0].Payload, &ev))
	assert.Equal(t, []int64{1, 2}, ev.CategoryIDs)
}

func TestProductService_DeleteProduct(t *testing.T) {
	t.Run("deletes and publishes", func(t *testing.T) {
		f := newProductFixture()

		require.NoError(t, f.svc.DeleteProduct(context.Background(), 2))

		assert.Equal(t, []string{event.TopicProductDeleted}, f.outbox.topics())
		var ev event.ProductDeletedEvent
		require.NoError(t, json.Unmarshal(f.outbox.msgs[0].Payload, &ev))
		assert.Equal(t, int64(2), ev.ProductID)
		assert.Equal(t, []int64{2}, ev.CategoryIDs)
	})

	t.Run("missing product", func(t *testing.T) {
		f := newProductFixture()

		err := f.svc.DeleteProduct(context.Background(), 404)

		assert.ErrorIs(t, err, apperr.ProductNotFoundErr)
		assert.Empty(t, f.outbox.msgs)
	})
}

func TestCategoryService(t *testing.T) {
	categories := &fakeCategoryRepo{categories: []model.Category{{ID: 1, Name: "Men", Slug: "men"}}}
	outbox := &fakeOutboxRepo{}
	c := newMemCache()
	svc := NewCategoryService(&fakeDB{}, categories, outbox, c, discardLogger())
	ctx := context.Background()

	for range 3 {
		list, err := svc.ListCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	}
	assert.Equal(t, 1, categories.listCalls)
	assert.Contains(t, c.data, cache.KeyCategories)

	created, err := svc.CreateCategory(ctx, CreateCategoryParams{Name: "Kids", Slug: "kids"})
	require.NoError(t, err)
	assert.Equal(t, "kids", created.Slug)
	assert.Equal(t, []string{event.TopicCategoryCreated}, outbox.topics())

	_, err = svc.CreateCategory(ctx, CreateCategoryParams{Name: "Kids", Slug: "kids"})
	assert.ErrorIs(t, err, apperr.SlugConflictErr)
}
