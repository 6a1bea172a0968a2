package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paper-app/backend/internal/domain"
)

// SearchRepository backs C8. Unlike the harvester's SerialDB, the
// search path is read-only and independent of ingest, so it pools
// connections directly — grounded on the bb8 pool (max_size 16) in the
// original webapp's main.rs, mirrored here with pgxpool.
type SearchRepository struct {
	pool *pgxpool.Pool
}

func NewSearchRepository(pool *pgxpool.Pool) *SearchRepository {
	return &SearchRepository{pool: pool}
}

const searchTimeout = 5 * time.Second

func (r *SearchRepository) Search(ctx context.Context, query string) (domain.SearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	var result domain.SearchResult

	rows, err := r.pool.Query(ctx, `
		SELECT e.entry_id, e.title,
		       ts_rank_cd(e.search_vector, websearch_to_tsquery('simple', $1)) AS rank
		FROM entry e
		WHERE e.search_vector @@ websearch_to_tsquery('simple', $1)
		ORDER BY rank DESC
		LIMIT 10
	`, query)
	if err != nil {
		return result, fmt.Errorf("postgres: search query: %w", err)
	}
	for rows.Next() {
		var hit domain.SearchHit
		if err := rows.Scan(&hit.EntryID, &hit.Title, &hit.Rank); err != nil {
			rows.Close()
			return result, fmt.Errorf("postgres: scan search hit: %w", err)
		}
		result.Entries = append(result.Entries, hit)
	}
	rowErr := rows.Err()
	rows.Close()
	if rowErr != nil {
		return result, fmt.Errorf("postgres: iterate search hits: %w", rowErr)
	}

	library, err := r.facet(ctx, query, `
		SELECT l.library_id::text, l.name, count(*)
		FROM entry e
		JOIN datasource d ON d.entry_id = e.entry_id
		JOIN site s ON s.site_id = d.site_id
		JOIN library l ON l.library_id = s.library_id
		WHERE e.search_vector @@ websearch_to_tsquery('simple', $1)
		GROUP BY l.library_id, l.name
		ORDER BY count(*) DESC
	`)
	if err != nil {
		return result, err
	}
	result.Facets.Library = library

	creator, err := r.facet(ctx, query, `
		SELECT a.agent_id::text, a.full_name, count(*)
		FROM entry e
		JOIN entry_agent ea ON ea.entry_id = e.entry_id
		JOIN agent a ON a.agent_id = ea.agent_id
		WHERE e.search_vector @@ websearch_to_tsquery('simple', $1)
		GROUP BY a.agent_id, a.full_name
		ORDER BY count(*) DESC
	`)
	if err != nil {
		return result, err
	}
	result.Facets.Creator = creator

	language, err := r.facet(ctx, query, `
		SELECT kl.language_code,
		       COALESCE(NULLIF(kl.native_name, ''), NULLIF(kl.english_name, ''), kl.language_code),
		       count(*)
		FROM entry e
		JOIN entry_language el ON el.entry_id = e.entry_id
		JOIN known_language kl ON kl.language_code = el.language_code
		WHERE e.search_vector @@ websearch_to_tsquery('simple', $1)
		GROUP BY kl.language_code, kl.native_name, kl.english_name
		ORDER BY count(*) DESC
	`)
	if err != nil {
		return result, err
	}
	result.Facets.Language = language

	return result, nil
}

// facet runs one of the three GROUP BY breakdowns of spec §4.8, each
// shaped id, term, count and ordered by descending count.
func (r *SearchRepository) facet(ctx context.Context, query, sql string) ([]domain.FacetItem, error) {
	rows, err := r.pool.Query(ctx, sql, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: facet query: %w", err)
	}
	defer rows.Close()

	var items []domain.FacetItem
	for rows.Next() {
		var item domain.FacetItem
		if err := rows.Scan(&item.ID, &item.Term, &item.Count); err != nil {
			return nil, fmt.Errorf("postgres: scan facet: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate facet: %w", err)
	}
	return items, nil
}
