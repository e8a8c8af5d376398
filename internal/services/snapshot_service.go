package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"stockconsole/internal/caching"
	"stockconsole/internal/models"
	"stockconsole/internal/normalize"
	"stockconsole/internal/upstream"
)

// Snapshot holds the four collections a warehouse report is built from.
// A collection whose fetch failed is empty.
type Snapshot struct {
	Warehouses []models.Warehouse
	Products   []models.Product
	Inventory  []models.InventoryRecord
	Suppliers  []models.Supplier
	FetchedAt  time.Time
}

type SnapshotService interface {
	// Fetch loads the report collections concurrently. Only an upstream
	// authorization failure is returned as an error.
	Fetch(ctx context.Context, sess models.Session) (*Snapshot, error)
	// Raw returns the body of one list endpoint, served from the payload
	// cache when fresh.
	Raw(ctx context.Context, sess models.Session, res upstream.Resource) ([]byte, error)
	Invalidate(ctx context.Context, resources ...upstream.Resource)
}

type snapshotService struct {
	client   UpstreamClient
	cacheSvc caching.CacheService
	ttl      time.Duration
}

// NewSnapshotService creates the fetch layer. A nil cache or a non-positive
// ttl disables payload caching.
func NewSnapshotService(client UpstreamClient, cacheSvc caching.CacheService, ttl time.Duration) SnapshotService {
	return &snapshotService{
		client:   client,
		cacheSvc: cacheSvc,
		ttl:      ttl,
	}
}

func (s *snapshotService) Fetch(ctx context.Context, sess models.Session) (*Snapshot, error) {
	snap := &Snapshot{}
	var g errgroup.Group

	load := func(res upstream.Resource, assign func(body []byte)) {
		g.Go(func() error {
			body, err := s.Raw(ctx, sess, res)
			if err != nil {
				if errors.Is(err, upstream.ErrUnauthorized) {
					return err
				}
				log.Printf("WARN: fetching %s failed, using an empty collection: %v", res, err)
				return nil
			}
			assign(body)
			return nil
		})
	}

	load(upstream.Warehouses, func(b []byte) { snap.Warehouses = normalize.Warehouses(b) })
	load(upstream.Products, func(b []byte) { snap.Products = normalize.Products(b) })
	load(upstream.Inventory, func(b []byte) { snap.Inventory = normalize.Inventory(b) })
	load(upstream.Suppliers, func(b []byte) { snap.Suppliers = normalize.Suppliers(b) })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	snap.FetchedAt = time.Now()
	return snap, nil
}

func (s *snapshotService) cacheEnabled() bool {
	return s.cacheSvc != nil && s.ttl > 0
}

func (s *snapshotService) Raw(ctx context.Context, sess models.Session, res upstream.Resource) ([]byte, error) {
	scope := sess.ID
	if scope == "" {
		scope = "anonymous"
	}

	if s.cacheEnabled() {
		cached, err := s.cacheSvc.GetPayload(ctx, scope, string(res))
		if err != nil {
			log.Printf("WARN: payload cache read failed for %s: %v", res, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	body, err := s.client.List(ctx, sess, res)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled() {
		if err := s.cacheSvc.SetPayload(ctx, scope, string(res), body, s.ttl); err != nil {
			log.Printf("WARN: payload cache write failed for %s: %v", res, err)
		}
	}
	return body, nil
}

func (s *snapshotService) Invalidate(ctx context.Context, resources ...upstream.Resource) {
	if s.cacheSvc == nil || len(resources) == 0 {
		return
	}
	keys := make([]string, len(resources))
	for i, res := range resources {
		keys[i] = string(res)
	}
	if err := s.cacheSvc.InvalidatePayloads(ctx, keys...); err != nil {
		log.Printf("WARN: payload cache invalidation failed: %v", err)
	}
}

func fetchList[T any](ctx context.Context, snapshots SnapshotService, sess models.Session, res upstream.Resource, decode func([]byte) []T) ([]T, error) {
	body, err := snapshots.Raw(ctx, sess, res)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", res, err)
	}
	return decode(body), nil
}
