package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	productKeyPrefix = "catalog:product:"
	listKeyPrefix    = "catalog:list:"
	trendingKey      = "catalog:trending:"
	categoriesKey    = "catalog:categories"
	generationKey    = "catalog:gen"

	productTTL    = 5 * time.Minute
	listTTL       = 2 * time.Minute
	categoriesTTL = 5 * time.Minute
)

// CachedRepo fronts a Repository with Redis on the hot read paths. List keys
// embed a generation counter that admin writes bump, so stale listings expire
// immediately instead of waiting out the TTL. Any cache error falls through
// to the database.
type CachedRepo struct {
	Repository
	rdb *redis.Client
}

func NewCachedRepo(inner Repository, rdb *redis.Client) *CachedRepo {
	return &CachedRepo{Repository: inner, rdb: rdb}
}

func (r *CachedRepo) generation(ctx context.Context) string {
	gen, err := r.rdb.Get(ctx, generationKey).Result()
	if err != nil {
		return "0"
	}
	return gen
}

func (r *CachedRepo) bumpGeneration(ctx context.Context) {
	_ = r.rdb.Incr(ctx, generationKey).Err()
}

func (r *CachedRepo) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	key := productKeyPrefix + slug
	if raw, err := r.rdb.Get(ctx, key).Bytes(); err == nil {
		var p Product
		if json.Unmarshal(raw, &p) == nil {
			return &p, nil
		}
	}

	p, err := r.Repository.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(p); err == nil {
		_ = r.rdb.Set(ctx, key, raw, productTTL).Err()
	}
	return p, nil
}

func (r *CachedRepo) List(ctx context.Context, q Query) ([]Product, error) {
	key := fmt.Sprintf("%s%s:%s:%s:%d:%d:%s:%d:%d", listKeyPrefix, r.generation(ctx),
		q.Category, q.Condition, q.MinPrice, q.MaxPrice, q.Sort, q.Limit, q.Offset)
	if raw, err := r.rdb.Get(ctx, key).Bytes(); err == nil {
		var out []Product
		if json.Unmarshal(raw, &out) == nil {
			return out, nil
		}
	}

	out, err := r.Repository.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(out); err == nil {
		_ = r.rdb.Set(ctx, key, raw, listTTL).Err()
	}
	return out, nil
}

func (r *CachedRepo) Trending(ctx context.Context, limit int) ([]Product, error) {
	key := fmt.Sprintf("%s%s:%d", trendingKey, r.generation(ctx), limit)
	if raw, err := r.rdb.Get(ctx, key).Bytes(); err == nil {
		var out []Product
		if json.Unmarshal(raw, &out) == nil {
			return out, nil
		}
	}

	out, err := r.Repository.Trending(ctx, limit)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(out); err == nil {
		_ = r.rdb.Set(ctx, key, raw, listTTL).Err()
	}
	return out, nil
}

func (r *CachedRepo) ListCategories(ctx context.Context) ([]Category, error) {
	if raw, err := r.rdb.Get(ctx, categoriesKey).Bytes(); err == nil {
		var out []Category
		if json.Unmarshal(raw, &out) == nil {
			return out, nil
		}
	}

	out, err := r.Repository.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(out); err == nil {
		_ = r.rdb.Set(ctx, categoriesKey, raw, categoriesTTL).Err()
	}
	return out, nil
}

func (r *CachedRepo) Create(ctx context.Context, p *Product, categoryIDs []string) error {
	if err := r.Repository.Create(ctx, p, categoryIDs); err != nil {
		return err
	}
	r.bumpGeneration(ctx)
	return nil
}

func (r *CachedRepo) Update(ctx context.Context, p *Product) error {
	if err := r.Repository.Update(ctx, p); err != nil {
		return err
	}
	_ = r.rdb.Del(ctx, productKeyPrefix+p.Slug).Err()
	r.bumpGeneration(ctx)
	return nil
}

func (r *CachedRepo) SetStatus(ctx context.Context, id, status string) error {
	if err := r.Repository.SetStatus(ctx, id, status); err != nil {
		return err
	}
	if p, err := r.Repository.GetByID(ctx, id); err == nil {
		_ = r.rdb.Del(ctx, productKeyPrefix+p.Slug).Err()
	}
	r.bumpGeneration(ctx)
	return nil
}
