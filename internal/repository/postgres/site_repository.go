package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/paper-app/backend/internal/domain"
)

// SiteRepository lists harvestable sites from the shared serial
// connection, grounded on the site-listing query in the Rust
// harvester's main.rs.
type SiteRepository struct {
	db *SerialDB
}

func NewSiteRepository(db *SerialDB) *SiteRepository {
	return &SiteRepository{db: db}
}

func (r *SiteRepository) ListHarvestable(ctx context.Context) ([]domain.Site, error) {
	var sites []domain.Site
	err := r.db.Query(ctx, `
		SELECT s.site_id, s.library_id, l.name, s.base_url, s.site_type, s.last_harvested
		FROM site s
		JOIN library l ON l.library_id = s.library_id
		ORDER BY s.base_url
	`, nil, func(rows pgx.Rows) error {
		for rows.Next() {
			var (
				site     domain.Site
				siteType string
			)
			if err := rows.Scan(&site.SiteID, &site.LibraryID, &site.LibraryName, &site.BaseURL, &siteType, &site.LastHarvested); err != nil {
				return fmt.Errorf("scan site: %w", err)
			}
			site.SiteType = domain.SiteType(siteType)
			if !site.SiteType.Valid() {
				continue
			}
			sites = append(sites, site)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: list sites: %w", err)
	}
	return sites, nil
}
