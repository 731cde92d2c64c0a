package service

import (
	"context"
	"fmt"
	"time"

	"edu-commerce-be/internal/entity"
	"edu-commerce-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type ICatalogService interface {
	// GetItem returns the purchasable item, or nil when it does not exist.
	GetItem(ctx context.Context, itemType entity.ItemType, itemId uuid.UUID) (*entity.CatalogItem, error)
}

type catalogService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *cache.Cache
}

// NewCatalogService wraps the catalog tables with a short-TTL in-process
// cache. Stale pricing is bounded by the TTL; the coupon and totals checks at
// confirmation time run against the persisted invoice, never the cache.
func NewCatalogService(uowFactory unitofwork.RepositoryFactory, ttl time.Duration) ICatalogService {
	c := cache.New(ttl, 2*ttl)
	return &catalogService{
		uowFactory: uowFactory,
		cache:      c,
	}
}

func (s *catalogService) GetItem(ctx context.Context, itemType entity.ItemType, itemId uuid.UUID) (*entity.CatalogItem, error) {
	key := fmt.Sprintf("%s:%s", itemType, itemId)
	if x, found := s.cache.Get(key); found {
		return x.(*entity.CatalogItem), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	item, err := uow.CatalogRepository().GetPurchasableItem(ctx, itemType, itemId)
	if err != nil {
		return nil, err
	}
	if item == nil {
		// Misses are not cached so newly published items show up immediately.
		return nil, nil
	}

	s.cache.Set(key, item, cache.DefaultExpiration)
	return item, nil
}
