// Package sqlstore keeps narrators and hadiths in a SQL database.
//
// Two dialects are supported: SQLite through mattn/go-sqlite3 and
// PostgreSQL through lib/pq. Queries are written with "?" placeholders and
// rebound for PostgreSQL.
//
// Schema:
//
//	narrators(idx, name_en, name_ar, name_fr, status, generation, grade,
//	          birth_year, death_year, bio_en, bio_ar, bio_fr, search_key)
//	hadiths(id, source, number, text_en, text_ar, text_fr)
//	hadith_chains(hadith_id, chain_no, position, narrator_idx)
//
// search_key holds the folded names and grade of a narrator (see
// textnorm.Fold) so that searches ignore case and Arabic diacritics
// without database specific collations.
package sqlstore
