package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mki/isnad/pkg/errors"
	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/repository"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS narrators (
		idx        INTEGER PRIMARY KEY,
		name_en    TEXT NOT NULL DEFAULT '',
		name_ar    TEXT NOT NULL DEFAULT '',
		name_fr    TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT '',
		generation TEXT NOT NULL DEFAULT '',
		grade      TEXT NOT NULL DEFAULT '',
		birth_year INTEGER,
		death_year INTEGER,
		bio_en     TEXT NOT NULL DEFAULT '',
		bio_ar     TEXT NOT NULL DEFAULT '',
		bio_fr     TEXT NOT NULL DEFAULT '',
		search_key TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS hadiths (
		id      TEXT PRIMARY KEY,
		source  TEXT NOT NULL DEFAULT '',
		number  INTEGER,
		text_en TEXT NOT NULL DEFAULT '',
		text_ar TEXT NOT NULL DEFAULT '',
		text_fr TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_hadiths_source ON hadiths(source, number)`,
	`CREATE TABLE IF NOT EXISTS hadith_chains (
		hadith_id    TEXT NOT NULL REFERENCES hadiths(id) ON DELETE CASCADE,
		chain_no     INTEGER NOT NULL,
		position     INTEGER NOT NULL,
		narrator_idx INTEGER NOT NULL,
		PRIMARY KEY (hadith_id, chain_no, position)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_chains_narrator ON hadith_chains(narrator_idx)`,
}

// Migrate creates the schema. It is idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(errors.ErrCodeRepository, err, "migrate")
		}
	}
	return nil
}

// Import upserts narrators and hadiths in one transaction. The chains of
// an imported hadith replace any stored before.
func (s *Store) Import(ctx context.Context, narrators []isnad.Narrator, hadiths []isnad.Hadith) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRepository, err, "begin import")
	}
	defer tx.Rollback()

	if err := s.importNarrators(ctx, tx, narrators); err != nil {
		return errors.Wrap(errors.ErrCodeRepository, err, "import narrators")
	}
	if err := s.importHadiths(ctx, tx, hadiths); err != nil {
		return errors.Wrap(errors.ErrCodeRepository, err, "import hadiths")
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeRepository, err, "commit import")
	}
	return nil
}

func (s *Store) importNarrators(ctx context.Context, tx *sql.Tx, ns []isnad.Narrator) error {
	stmt, err := tx.PrepareContext(ctx, s.rebind(`INSERT INTO narrators
		(idx, name_en, name_ar, name_fr, status, generation, grade, birth_year, death_year,
		 bio_en, bio_ar, bio_fr, search_key)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (idx) DO UPDATE SET
			name_en = excluded.name_en, name_ar = excluded.name_ar, name_fr = excluded.name_fr,
			status = excluded.status, generation = excluded.generation, grade = excluded.grade,
			birth_year = excluded.birth_year, death_year = excluded.death_year,
			bio_en = excluded.bio_en, bio_ar = excluded.bio_ar, bio_fr = excluded.bio_fr,
			search_key = excluded.search_key`))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, n := range ns {
		_, err := stmt.ExecContext(ctx, n.Index,
			n.Names[isnad.LocaleEnglish], n.Names[isnad.LocaleArabic], n.Names[isnad.LocaleFrench],
			string(n.Status), string(n.Generation), n.Grade,
			nullInt(n.BirthYear), nullInt(n.DeathYear),
			n.Biography[isnad.LocaleEnglish], n.Biography[isnad.LocaleArabic], n.Biography[isnad.LocaleFrench],
			repository.SearchKey(n))
		if err != nil {
			return fmt.Errorf("narrator %d: %w", n.Index, err)
		}
	}
	return nil
}

func (s *Store) importHadiths(ctx context.Context, tx *sql.Tx, hs []isnad.Hadith) error {
	upsert, err := tx.PrepareContext(ctx, s.rebind(`INSERT INTO hadiths (id, source, number, text_en, text_ar, text_fr)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			source = excluded.source, number = excluded.number,
			text_en = excluded.text_en, text_ar = excluded.text_ar, text_fr = excluded.text_fr`))
	if err != nil {
		return err
	}
	defer upsert.Close()

	unlink, err := tx.PrepareContext(ctx, s.rebind(`DELETE FROM hadith_chains WHERE hadith_id = ?`))
	if err != nil {
		return err
	}
	defer unlink.Close()

	link, err := tx.PrepareContext(ctx, s.rebind(
		`INSERT INTO hadith_chains (hadith_id, chain_no, position, narrator_idx) VALUES (?, ?, ?, ?)`))
	if err != nil {
		return err
	}
	defer link.Close()

	for _, h := range hs {
		var number any
		if h.Number != 0 {
			number = h.Number
		}
		if _, err := upsert.ExecContext(ctx, h.ID, h.Source, number,
			h.Text[isnad.LocaleEnglish], h.Text[isnad.LocaleArabic], h.Text[isnad.LocaleFrench]); err != nil {
			return fmt.Errorf("hadith %s: %w", h.ID, err)
		}
		if _, err := unlink.ExecContext(ctx, h.ID); err != nil {
			return fmt.Errorf("hadith %s: %w", h.ID, err)
		}
		for ci, c := range h.Chains {
			for pos, idx := range c.NarratorIndices {
				if _, err := link.ExecContext(ctx, h.ID, ci, pos, idx); err != nil {
					return fmt.Errorf("hadith %s chain %d: %w", h.ID, ci, err)
				}
			}
		}
	}
	return nil
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}
