// Package csvstore loads narrators and hadiths from CSV exports.
//
// The narrator file is the raw scholar dump with the columns
//
//	scholar_indx, name, grade, parents, teachers, students,
//	birth_date_place, death_date_place
//
// where name reads "English Name ( Arabic Name (" and the date fields are
// free text such as "571 CE / Makkah". The hadith file has the columns
//
//	id, source, hadith_no, text_en, text_ar, chain_indx
//
// with chain_indx holding comma separated narrator indices, collector
// first. Several chains for the same hadith are separated by "|".
//
// Columns are matched by header name, so extra columns and a different
// column order are accepted. Rows that cannot be parsed are skipped and
// counted in [Stats].
//
// The loaded records are served from memory through [memstore.Store].
package csvstore
