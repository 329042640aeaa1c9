package csvstore

import (
	"encoding/csv"
	stderrors "errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/mki/isnad/pkg/errors"
	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/isnad/textnorm"
)

// Stats reports how many rows a read kept and skipped.
type Stats struct {
	Rows    int
	Skipped int
}

var (
	arabicRun = regexp.MustCompile(`[\x{0600}-\x{06FF}][\x{0600}-\x{06FF}\s]+`)
	firstInt  = regexp.MustCompile(`-?\d+`)
)

// ParseName splits a raw name field into its English and Arabic parts.
// Arabic honorifics are removed.
func ParseName(field string) (en, ar string) {
	field = strings.TrimSpace(field)
	if field == "" {
		return "", ""
	}
	if m := arabicRun.FindString(field); m != "" {
		ar = textnorm.StripHonorifics(m)
	}
	if i := strings.Index(field, "("); i >= 0 {
		en = strings.TrimSpace(field[:i])
	} else if ar == "" {
		en = field
	} else {
		en = strings.TrimSpace(arabicRun.ReplaceAllString(field, ""))
	}
	return en, ar
}

// ParseYear returns the first integer in a free text date field.
func ParseYear(field string) *int {
	m := firstInt.FindString(field)
	if m == "" {
		return nil
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &y
}

// ParseChains splits a chain_indx cell into chains.
func ParseChains(cell string) ([]isnad.Chain, error) {
	var chains []isnad.Chain
	for _, part := range strings.Split(cell, "|") {
		idx, err := errors.ParseIndexList(part)
		if err != nil {
			return nil, err
		}
		if len(idx) > 0 {
			chains = append(chains, isnad.Chain{NarratorIndices: idx})
		}
	}
	return chains, nil
}

// ReadNarrators parses a narrator CSV. Status and generation are left
// empty; the repository adapter classifies them from the grade.
func ReadNarrators(r io.Reader) ([]isnad.Narrator, Stats, error) {
	var (
		out   []isnad.Narrator
		stats Stats
	)
	err := readRows(r, []string{"scholar_indx", "name"}, func(row record) {
		idx, err := errors.ParseIndex(row.get("scholar_indx"))
		if err != nil {
			stats.Skipped++
			return
		}
		en, ar := ParseName(row.get("name"))
		n := isnad.Narrator{
			Index:     idx,
			Names:     isnad.LocalizedText{},
			Grade:     row.get("grade"),
			BirthYear: ParseYear(row.get("birth_date_place")),
			DeathYear: ParseYear(row.get("death_date_place")),
		}
		if en != "" {
			n.Names[isnad.LocaleEnglish] = en
		}
		if ar != "" {
			n.Names[isnad.LocaleArabic] = ar
		}
		out = append(out, n)
		stats.Rows++
	})
	return out, stats, err
}

// ReadHadiths parses a hadith CSV. A row without an id gets
// "<source>-<hadith_no>".
func ReadHadiths(r io.Reader) ([]isnad.Hadith, Stats, error) {
	var (
		out   []isnad.Hadith
		stats Stats
	)
	err := readRows(r, []string{"chain_indx"}, func(row record) {
		chains, err := ParseChains(row.get("chain_indx"))
		if err != nil {
			stats.Skipped++
			return
		}
		h := isnad.Hadith{
			ID:     row.get("id"),
			Source: row.get("source"),
			Text:   isnad.LocalizedText{},
			Chains: chains,
		}
		if no := row.get("hadith_no"); no != "" {
			h.Number, _ = strconv.Atoi(no)
			if h.ID == "" && h.Source != "" {
				h.ID = h.Source + "-" + no
			}
		}
		if h.ID == "" || errors.ValidateHadithID(h.ID) != nil {
			stats.Skipped++
			return
		}
		if s := row.get("text_en"); s != "" {
			h.Text[isnad.LocaleEnglish] = s
		}
		if s := row.get("text_ar"); s != "" {
			h.Text[isnad.LocaleArabic] = s
		}
		out = append(out, h)
		stats.Rows++
	})
	return out, stats, err
}

type record struct {
	cols   map[string]int
	fields []string
}

func (r record) get(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func readRows(r io.Reader, required []string, fn func(record)) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return errors.New(errors.ErrCodeInvalidFormat, "CSV file is empty")
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "read CSV header")
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		cols[h] = i
	}
	for _, c := range required {
		if _, ok := cols[c]; !ok {
			return errors.New(errors.ErrCodeInvalidFormat, "CSV header is missing column %q", c)
		}
	}

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		var perr *csv.ParseError
		if stderrors.As(err, &perr) {
			continue
		}
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "read CSV")
		}
		if blank(fields) {
			continue
		}
		fn(record{cols: cols, fields: fields})
	}
}

func blank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
