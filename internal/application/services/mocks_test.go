package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/zatekoja/goparaty/internal/domain/entities"
	"github.com/zatekoja/goparaty/internal/domain/providers"
)

type mockBusinessRepository struct {
	mock.Mock
}

func (m *mockBusinessRepository) List(ctx context.Context) ([]*entities.Business, error) {
	args := m.Called(ctx)
	businesses, _ := args.Get(0).([]*entities.Business)
	return businesses, args.Error(1)
}

func (m *mockBusinessRepository) GetByID(ctx context.Context, id string) (*entities.Business, error) {
	args := m.Called(ctx, id)
	business, _ := args.Get(0).(*entities.Business)
	return business, args.Error(1)
}

type mockTotemRepository struct {
	mock.Mock
}

func (m *mockTotemRepository) List(ctx context.Context) ([]*entities.Totem, error) {
	args := m.Called(ctx)
	totems, _ := args.Get(0).([]*entities.Totem)
	return totems, args.Error(1)
}

type mockLeadRepository struct {
	mock.Mock
}

func (m *mockLeadRepository) Create(ctx context.Context, lead *entities.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *entities.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepository) ListByBusiness(ctx context.Context, businessID string, limit int) ([]*entities.Review, error) {
	args := m.Called(ctx, businessID, limit)
	reviews, _ := args.Get(0).([]*entities.Review)
	return reviews, args.Error(1)
}

// memoryCache is an in-process CacheProvider for service tests.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if !ok {
		return nil, providers.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok, nil
}

func (c *memoryCache) Increment(_ context.Context, key string, _ time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	if v, ok := c.entries[key]; ok {
		n = int64(len(v))
	}
	n++
	c.entries[key] = make([]byte, n)
	return n, nil
}

func (c *memoryCache) TTL(_ context.Context, key string) (time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttls[key], nil
}

// staticSnapshot serves a fixed catalog.
type staticSnapshot struct {
	snapshot *entities.CatalogSnapshot
	err      error
}

func (s staticSnapshot) Snapshot(context.Context) (*entities.CatalogSnapshot, error) {
	return s.snapshot, s.err
}
