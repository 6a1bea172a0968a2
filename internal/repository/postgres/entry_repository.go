// Package postgres implements C6 Persistence and the read side of C8
// Search against the schema in migrations/0001_init.sql, grounded on
// mycorrhiza.rs's insert_harvested_record three-stage upsert.
package postgres

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/paper-app/backend/internal/domain"
	"github.com/paper-app/backend/internal/fulltext"
	"github.com/paper-app/backend/internal/marc"
	"github.com/paper-app/backend/internal/textutil"
)

// EntryRepository performs the idempotent three-stage ingest of spec
// §4.6: Entry keyed by checksum, then Agents and Languages (linked via
// bridge tables), then the per-site Datasource row. Only the Entry
// stage is fatal to the whole record — a failed agent, language, or
// datasource write is logged and the caller moves to the next record,
// since the Entry itself is already durable.
type EntryRepository struct {
	db       *SerialDB
	fulltext *fulltext.Fetcher
}

func NewEntryRepository(db *SerialDB, ft *fulltext.Fetcher) *EntryRepository {
	return &EntryRepository{db: db, fulltext: ft}
}

func (r *EntryRepository) InsertHarvestedRecord(ctx context.Context, site domain.Site, rec domain.HarvestedRecord) (int32, error) {
	entryID, err := r.upsertEntry(ctx, rec)
	if err != nil {
		return 0, fmt.Errorf("postgres: entry upsert: %w", err)
	}

	for _, name := range rec.Authors() {
		if name == "" {
			continue
		}
		if err := r.linkAgent(ctx, entryID, name); err != nil {
			log.Printf("postgres: agent %q for entry %d: %v", name, entryID, err)
		}
	}

	for _, code := range rec.Languages() {
		if code == "" {
			continue
		}
		if err := r.linkLanguage(ctx, entryID, code); err != nil {
			log.Printf("postgres: language %q for entry %d: %v", code, entryID, err)
		}
	}

	if err := r.upsertDatasource(ctx, site, rec, entryID); err != nil {
		log.Printf("postgres: datasource %s for entry %d: %v", rec.OAIPMHIdentifier(), entryID, err)
	}

	return entryID, nil
}

func (r *EntryRepository) upsertEntry(ctx context.Context, rec domain.HarvestedRecord) (int32, error) {
	title := rec.Title()
	subtitle := rec.Subtitle()
	searchText := textutil.StripDiacritics(title + " " + subtitle)

	var entryID int32
	err := r.db.QueryRow(ctx, `
		INSERT INTO entry (title, subtitle, checksum, search_text, last_indexed)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (checksum) DO UPDATE
			SET last_indexed = now()
		RETURNING entry_id
	`, []any{title, subtitle, rec.Checksum(), searchText}, func(row pgx.Row) error {
		return row.Scan(&entryID)
	})
	return entryID, err
}

func (r *EntryRepository) linkAgent(ctx context.Context, entryID int32, fullName string) error {
	searchText := textutil.StripDiacritics(fullName)

	var agentID int32
	err := r.db.QueryRow(ctx, `
		INSERT INTO agent (full_name, search_text, last_modified)
		VALUES ($1, $2, now())
		ON CONFLICT (full_name) DO UPDATE
			SET last_modified = now()
		RETURNING agent_id
	`, []any{fullName, searchText}, func(row pgx.Row) error {
		return row.Scan(&agentID)
	})
	if err != nil {
		return fmt.Errorf("upsert agent: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO entry_agent (entry_id, agent_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, entryID, agentID)
	if err != nil {
		return fmt.Errorf("link entry_agent: %w", err)
	}
	return nil
}

func (r *EntryRepository) linkLanguage(ctx context.Context, entryID int32, code string) error {
	native, english := marc.LanguageNames(code)
	_, err := r.db.Exec(ctx, `
		INSERT INTO known_language (language_code, native_name, english_name, last_modified)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (language_code) DO NOTHING
	`, code, native, english)
	if err != nil {
		return fmt.Errorf("upsert known_language: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO entry_language (entry_id, language_code)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, entryID, code)
	if err != nil {
		return fmt.Errorf("link entry_language: %w", err)
	}
	return nil
}

func (r *EntryRepository) upsertDatasource(ctx context.Context, site domain.Site, rec domain.HarvestedRecord, entryID int32) error {
	datestamp, err := time.Parse(time.RFC3339, rec.Datestamp())
	if err != nil {
		log.Printf("postgres: record %s has unparseable datestamp %q, using now(): %v", rec.OAIPMHIdentifier(), rec.Datestamp(), err)
		datestamp = time.Now().UTC()
	}

	years := rec.EditionYears()
	var yearEdition, yearFirstEdition *int32
	if len(years) > 0 {
		last := int32(years[len(years)-1])
		first := int32(years[0])
		yearEdition = &last
		yearFirstEdition = &first
	}

	var uri, label, contentType *string
	if u, l, ct, ok := rec.ResolvedURI(); ok {
		uri, label, contentType = &u, &l, &ct
	}

	fullText := ""
	if uri != nil && r.fulltext != nil {
		text, err := r.fulltext.Fetch(ctx, site.SiteType, *uri)
		if err != nil && err != fulltext.ErrUnsupported {
			log.Printf("postgres: full-text fetch for %s: %v", rec.OAIPMHIdentifier(), err)
		} else if err == nil {
			fullText = text
		}
	}

	searchText := textutil.StripDiacritics(fullText)

	_, err = r.db.Exec(ctx, `
		INSERT INTO datasource (
			site_id, oai_pmh_identifier, entry_id, datestamp, description,
			year_edition, year_first_edition, publisher, isbn,
			uri, uri_label, content_type,
			material_description, shelf_location_code, edition_statement,
			place_date_of_publication_distribution, search_text, last_modified
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12,
			$13, $14, $15,
			$16, $17, now()
		)
		ON CONFLICT (site_id, oai_pmh_identifier) DO UPDATE
			SET entry_id = EXCLUDED.entry_id,
			    datestamp = EXCLUDED.datestamp,
			    description = EXCLUDED.description,
			    year_edition = EXCLUDED.year_edition,
			    year_first_edition = EXCLUDED.year_first_edition,
			    publisher = EXCLUDED.publisher,
			    isbn = EXCLUDED.isbn,
			    uri = EXCLUDED.uri,
			    uri_label = EXCLUDED.uri_label,
			    content_type = EXCLUDED.content_type,
			    material_description = EXCLUDED.material_description,
			    shelf_location_code = EXCLUDED.shelf_location_code,
			    edition_statement = EXCLUDED.edition_statement,
			    place_date_of_publication_distribution = EXCLUDED.place_date_of_publication_distribution,
			    search_text = EXCLUDED.search_text,
			    last_modified = now()
	`,
		site.SiteID, rec.OAIPMHIdentifier(), entryID, datestamp, rec.Description(),
		yearEdition, yearFirstEdition, rec.Publisher(), rec.ISBN(),
		uri, label, contentType,
		rec.MaterialDescription(), rec.ShelfLocationCode(), rec.EditionStatement(),
		rec.PlaceDateOfPublicationDistribution(), searchText,
	)
	return err
}
