package csvstore

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/mki/isnad/pkg/errors"
	"github.com/mki/isnad/pkg/httputil"
	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/repository/memstore"
)

// Store serves CSV-loaded records from memory.
type Store struct {
	*memstore.Store
	Narrators Stats
	Hadiths   Stats
}

// Name implements repository.Named.
func (s *Store) Name() string { return "csv" }

// Load reads both files. hadiths may be nil when only narrator lookups
// are needed.
func Load(narrators, hadiths io.Reader) (*Store, error) {
	ns, nstats, err := ReadNarrators(narrators)
	if err != nil {
		return nil, err
	}
	var (
		hs     []isnad.Hadith
		hstats Stats
	)
	if hadiths != nil {
		if hs, hstats, err = ReadHadiths(hadiths); err != nil {
			return nil, err
		}
	}
	return &Store{Store: memstore.New(ns, hs), Narrators: nstats, Hadiths: hstats}, nil
}

// LoadFile reads the narrator file at narratorsPath and, when
// hadithsPath is not empty, the hadith file.
func LoadFile(narratorsPath, hadithsPath string) (*Store, error) {
	nf, err := os.Open(narratorsPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRepository, err, "open narrators CSV")
	}
	defer nf.Close()

	var hr io.Reader
	if hadithsPath != "" {
		hf, err := os.Open(hadithsPath)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRepository, err, "open hadiths CSV")
		}
		defer hf.Close()
		hr = hf
	}

	s, err := Load(nf, hr)
	if err != nil {
		return nil, err
	}
	logLoaded(s, narratorsPath)
	return s, nil
}

// LoadURL downloads the CSV files through client, which retries
// transient failures and caches the bodies.
func LoadURL(ctx context.Context, client *httputil.Client, narratorsURL, hadithsURL string) (*Store, error) {
	nb, err := client.Get(ctx, "csv", narratorsURL)
	if err != nil {
		return nil, err
	}
	var hr io.Reader
	if hadithsURL != "" {
		hb, err := client.Get(ctx, "csv", hadithsURL)
		if err != nil {
			return nil, err
		}
		hr = bytes.NewReader(hb)
	}

	s, err := Load(bytes.NewReader(nb), hr)
	if err != nil {
		return nil, err
	}
	logLoaded(s, narratorsURL)
	return s, nil
}

func logLoaded(s *Store, from string) {
	log.Debug("loaded CSV store", "from", from,
		"narrators", s.Narrators.Rows, "narrators_skipped", s.Narrators.Skipped,
		"hadiths", s.Hadiths.Rows, "hadiths_skipped", s.Hadiths.Skipped)
}
