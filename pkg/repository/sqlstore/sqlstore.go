package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mki/isnad/pkg/errors"
	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/isnad/textnorm"
	"github.com/mki/isnad/pkg/repository"
)

// Dialect selects the SQL flavor.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// maxParams bounds the number of placeholders in one IN list.
const maxParams = 500

// Store is a SQL backed narrator and hadith store.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

var _ repository.Store = (*Store)(nil)

// Open connects to dsn. For SQLite dsn is a file path; WAL journaling and
// a busy timeout are enabled unless dsn already carries options.
func Open(dialect Dialect, dsn string) (*Store, error) {
	var driver string
	switch dialect {
	case SQLite:
		driver = "sqlite3"
		if !strings.Contains(dsn, "?") {
			dsn += "?_journal=WAL&_timeout=5000"
		}
	case Postgres:
		driver = "postgres"
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown SQL dialect %q", dialect)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRepository, err, "open %s database", dialect)
	}
	if dialect == SQLite {
		db.SetMaxOpenConns(1)
	}
	return New(db, dialect), nil
}

// New wraps an open database handle.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// Name implements repository.Named.
func (s *Store) Name() string { return string(s.dialect) }

// DB returns the underlying handle.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeRepository, err, "ping %s database", s.dialect)
	}
	return nil
}

// rebind rewrites "?" placeholders to "$n" for PostgreSQL.
func (s *Store) rebind(q string) string {
	if s.dialect != Postgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

const narratorColumns = `idx, name_en, name_ar, name_fr, status, generation, grade,
	birth_year, death_year, bio_en, bio_ar, bio_fr`

type scanner interface {
	Scan(dest ...any) error
}

func scanNarrator(row scanner) (isnad.Narrator, error) {
	var (
		n                      isnad.Narrator
		nameEn, nameAr, nameFr string
		bioEn, bioAr, bioFr    string
		status, generation     string
		birth, death           sql.NullInt64
	)
	err := row.Scan(&n.Index, &nameEn, &nameAr, &nameFr, &status, &generation, &n.Grade,
		&birth, &death, &bioEn, &bioAr, &bioFr)
	if err != nil {
		return n, err
	}
	n.Names = localized(nameEn, nameAr, nameFr)
	n.Biography = localized(bioEn, bioAr, bioFr)
	n.Status = isnad.Status(status)
	n.Generation = isnad.Generation(generation)
	if birth.Valid {
		y := int(birth.Int64)
		n.BirthYear = &y
	}
	if death.Valid {
		y := int(death.Int64)
		n.DeathYear = &y
	}
	return n, nil
}

func localized(en, ar, fr string) isnad.LocalizedText {
	t := isnad.LocalizedText{}
	for l, s := range map[isnad.Locale]string{isnad.LocaleEnglish: en, isnad.LocaleArabic: ar, isnad.LocaleFrench: fr} {
		if s != "" {
			t[l] = s
		}
	}
	return t
}

func (s *Store) FetchNarrators(ctx context.Context, indices []int) ([]isnad.Narrator, error) {
	var out []isnad.Narrator
	for start := 0; start < len(indices); start += maxParams {
		batch := indices[start:min(start+maxParams, len(indices))]
		args := make([]any, len(batch))
		for i, idx := range batch {
			args[i] = idx
		}
		q := s.rebind(fmt.Sprintf("SELECT %s FROM narrators WHERE idx IN (%s)", narratorColumns, placeholders(len(batch))))
		ns, err := s.queryNarrators(ctx, q, args...)
		if err != nil {
			return nil, err
		}
		out = append(out, ns...)
	}
	return out, nil
}

func (s *Store) SearchNarrators(ctx context.Context, query string, limit int) ([]isnad.Narrator, error) {
	q := s.rebind(fmt.Sprintf(
		`SELECT %s FROM narrators WHERE search_key LIKE ? ESCAPE '\' ORDER BY idx LIMIT ?`, narratorColumns))
	return s.queryNarrators(ctx, q, likePattern(query), repository.ClampLimit(limit))
}

func (s *Store) queryNarrators(ctx context.Context, q string, args ...any) ([]isnad.Narrator, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query narrators: %w", err)
	}
	defer rows.Close()

	var out []isnad.Narrator
	for rows.Next() {
		n, err := scanNarrator(rows)
		if err != nil {
			return nil, fmt.Errorf("scan narrator: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) FetchHadith(ctx context.Context, id string) (*isnad.Hadith, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT id, source, number, text_en, text_ar, text_fr FROM hadiths WHERE id = ?`), id)
	h, err := scanHadith(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query hadith %s: %w", id, err)
	}

	chains, err := s.chains(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	h.Chains = chains[id]
	return &h, nil
}

func (s *Store) ListHadiths(ctx context.Context, offset, limit int, source string) ([]isnad.Hadith, int, error) {
	where, args := "", []any{}
	if source != "" {
		where, args = " WHERE source = ?", append(args, source)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, s.rebind("SELECT COUNT(*) FROM hadiths"+where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count hadiths: %w", err)
	}
	if offset >= total {
		return nil, total, nil
	}

	q := s.rebind(`SELECT id, source, number, text_en, text_ar, text_fr FROM hadiths` + where +
		` ORDER BY source, number, id LIMIT ? OFFSET ?`)
	rows, err := s.db.QueryContext(ctx, q, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list hadiths: %w", err)
	}
	defer rows.Close()

	var (
		out []isnad.Hadith
		ids []string
	)
	for rows.Next() {
		h, err := scanHadith(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan hadith: %w", err)
		}
		out = append(out, h)
		ids = append(ids, h.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	chains, err := s.chains(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range out {
		out[i].Chains = chains[out[i].ID]
	}
	return out, total, nil
}

func scanHadith(row scanner) (isnad.Hadith, error) {
	var (
		h          isnad.Hadith
		en, ar, fr string
		number     sql.NullInt64
	)
	if err := row.Scan(&h.ID, &h.Source, &number, &en, &ar, &fr); err != nil {
		return h, err
	}
	h.Number = int(number.Int64)
	h.Text = localized(en, ar, fr)
	return h, nil
}

// chains loads the chains of the given hadiths, keyed by hadith id.
func (s *Store) chains(ctx context.Context, ids []string) (map[string][]isnad.Chain, error) {
	out := make(map[string][]isnad.Chain, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	q := s.rebind(fmt.Sprintf(`SELECT hadith_id, chain_no, narrator_idx FROM hadith_chains
		WHERE hadith_id IN (%s) ORDER BY hadith_id, chain_no, position`, placeholders(len(ids))))
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query chains: %w", err)
	}
	defer rows.Close()

	lastChain := make(map[string]int)
	for rows.Next() {
		var (
			id          string
			chainNo, ix int
		)
		if err := rows.Scan(&id, &chainNo, &ix); err != nil {
			return nil, fmt.Errorf("scan chain: %w", err)
		}
		cs := out[id]
		if last, ok := lastChain[id]; !ok || last != chainNo {
			cs = append(cs, isnad.Chain{})
			lastChain[id] = chainNo
		}
		cs[len(cs)-1].NarratorIndices = append(cs[len(cs)-1].NarratorIndices, ix)
		out[id] = cs
	}
	return out, rows.Err()
}

func likePattern(query string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(textnorm.Fold(query)) + "%"
}
