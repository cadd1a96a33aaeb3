package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lifedeck/coaching-engine/internal/core/domain"
)

var _ domain.TemplateCatalog = (*CachedTemplateCatalog)(nil)

// CachedTemplateCatalog is a read-through redis decorator over the
// template store. Templates are static seed data, so a long TTL is safe;
// every redis failure falls through to the underlying catalog.
type CachedTemplateCatalog struct {
	next  domain.TemplateCatalog
	cache *redis.Client
	ttl   time.Duration
}

func NewCachedTemplateCatalog(next domain.TemplateCatalog, cache *redis.Client) *CachedTemplateCatalog {
	return &CachedTemplateCatalog{
		next:  next,
		cache: cache,
		ttl:   12 * time.Hour,
	}
}

func (c *CachedTemplateCatalog) cacheKey(d domain.LifeDomain, band domain.ScoreBand) string {
	return fmt.Sprintf("templates:%s:%s", d, band)
}

func (c *CachedTemplateCatalog) GetTemplates(ctx context.Context, d domain.LifeDomain, band domain.ScoreBand) ([]*domain.CardTemplate, error) {
	key := c.cacheKey(d, band)

	val, err := c.cache.Get(ctx, key).Result()
	if err == nil {
		var templates []*domain.CardTemplate
		if err := json.Unmarshal([]byte(val), &templates); err == nil {
			return templates, nil
		}

		log.Printf("[CACHE] Corrupted template data for %s, cleaning up key", key)
		c.cache.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	templates, err := c.next.GetTemplates(ctx, d, band)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(templates); err == nil {
		if setErr := c.cache.Set(ctx, key, data, c.ttl).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return templates, nil
}
