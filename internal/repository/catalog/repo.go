// Package catalog is the read-mostly restaurant catalog backed by Redis
// hashes with an FT index. The search engine treats it as an external,
// read-only collaborator; writes come only from the ingest path that keeps
// the projection current.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/vietbites/discovery/internal/db"
	"github.com/vietbites/discovery/internal/domain"
	"github.com/vietbites/discovery/internal/domain/restaurant"
	"github.com/vietbites/discovery/internal/domain/search/query"
)

const defaultMaxCandidates = 5000

// store is the consumer interface for catalog operations (ISP).
type store interface {
	Search(ctx context.Context, q *db.Query) (*db.Result, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	Del(ctx context.Context, key string) error
}

// Repo implements the search pipeline's Catalog contract.
type Repo struct {
	store         store
	keyPrefix     string
	maxCandidates int
}

// New creates a catalog repository. keyPrefix namespaces all keys.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix, maxCandidates: defaultMaxCandidates}
}

// WithMaxCandidates caps how many entries a single Find may fetch for
// in-memory ranking.
func (r *Repo) WithMaxCandidates(n int) *Repo {
	if n > 0 {
		r.maxCandidates = n
	}
	return r
}

func (r *Repo) indexName() string {
	return r.keyPrefix + "restaurant:idx"
}

func (r *Repo) key(id string) string {
	return r.keyPrefix + "restaurant:" + id
}

// EnsureIndex creates the restaurant FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.indexName())
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}

	def := db.NewIndex(r.indexName()).
		Prefix(r.keyPrefix + "restaurant:").
		Text("name").
		Text("description").
		Tag("cuisine_ids").
		Tag("tag_ids").
		Numeric("rating").
		Numeric("min_price").
		Numeric("max_price").
		MustBuild()

	if err := r.store.CreateIndex(ctx, def); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Find returns catalog entries matching the facet pre-filter. The engine's
// in-memory stages remain authoritative; this pushdown only trims the
// candidate set the store has to ship.
func (r *Repo) Find(ctx context.Context, f query.Facets) ([]restaurant.Restaurant, error) {
	q := &db.Query{
		IndexName: r.indexName(),
		Query: db.And(
			db.TagClause("cuisine_ids", f.CuisineIDs),
			db.TagClause("tag_ids", f.TagIDs),
			ratingClause(f.MinRating),
			priceClauses(f.MinPrice, f.MaxPrice),
		),
		Limit: r.maxCandidates,
	}

	res, err := r.store.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	out := make([]restaurant.Restaurant, 0, len(res.Entries))
	for _, entry := range res.Entries {
		id := strings.TrimPrefix(entry.Key, r.keyPrefix+"restaurant:")
		rec, err := restaurantFromHash(id, entry.Fields)
		if err != nil {
			// Skip corrupt projections rather than failing the search.
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// Count returns the number of catalog entries.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, r.indexName(), db.MatchAll)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	return n, nil
}

// Save upserts one catalog entry.
func (r *Repo) Save(ctx context.Context, rec *restaurant.Restaurant) error {
	fields, err := restaurantToHash(rec)
	if err != nil {
		return fmt.Errorf("encode restaurant %s: %w", rec.ID(), err)
	}
	if err := r.store.HSet(ctx, r.key(rec.ID()), fields); err != nil {
		return fmt.Errorf("save restaurant %s: %w", rec.ID(), err)
	}
	return nil
}

// SaveAll upserts a batch of catalog entries in one round-trip.
func (r *Repo) SaveAll(ctx context.Context, recs []restaurant.Restaurant) error {
	items := make([]db.HashSetItem, 0, len(recs))
	for i := range recs {
		fields, err := restaurantToHash(&recs[i])
		if err != nil {
			return fmt.Errorf("encode restaurant %s: %w", recs[i].ID(), err)
		}
		items = append(items, db.HashSetItem{Key: r.key(recs[i].ID()), Fields: fields})
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("save batch: %w", err)
	}
	return nil
}

// Delete removes a catalog entry.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, r.key(id)); err != nil {
		return fmt.Errorf("delete restaurant %s: %w", id, err)
	}
	return nil
}

func ratingClause(minRating *float64) string {
	if minRating == nil {
		return ""
	}
	return db.NumericClause("rating", minRating, nil)
}

// priceClauses builds the price pushdown. A bounded query requires the entry
// to carry its own bounds; entries without price fields simply never match
// the numeric clause, which is exactly the exclusion the engine wants.
func priceClauses(minPrice, maxPrice *float64) string {
	var parts []string
	if minPrice != nil {
		parts = append(parts, db.NumericClause("min_price", minPrice, nil))
	}
	if maxPrice != nil {
		parts = append(parts, db.NumericClause("max_price", nil, maxPrice))
	}
	return strings.Join(parts, " ")
}
