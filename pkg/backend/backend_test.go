package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mki/isnad/internal/fixtures"
	"github.com/mki/isnad/pkg/cache"
	"github.com/mki/isnad/pkg/config"
	"github.com/mki/isnad/pkg/errors"
	"github.com/mki/isnad/pkg/repository/sqlstore"
)

func TestOpenMemoryStore(t *testing.T) {
	s, err := OpenStore(context.Background(), config.StoreConfig{Kind: config.StoreMemory}, nil, nil)
	require.NoError(t, err)
	defer s.Close()

	h, err := s.FetchHadith(context.Background(), fixtures.TwoChainID)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Len(t, h.Chains, 2)
}

func TestOpenCSVStore(t *testing.T) {
	dir := t.TempDir()
	narrators := filepath.Join(dir, "all_rawis.csv")
	hadiths := filepath.Join(dir, "hadiths.csv")
	require.NoError(t, os.WriteFile(narrators, []byte("scholar_indx,name,grade\n1,Muhammad ( محمد ( ﷺ,Prophet\n"), 0o644))
	require.NoError(t, os.WriteFile(hadiths, []byte("id,source,hadith_no,chain_indx\nh1,bukhari,1,1\n"), 0o644))

	s, err := OpenStore(context.Background(), config.StoreConfig{Kind: config.StoreCSV, Narrators: narrators, Hadiths: hadiths}, nil, nil)
	require.NoError(t, err)
	defer s.Close()

	ns, err := s.FetchNarrators(context.Background(), []int{1})
	require.NoError(t, err)
	require.Len(t, ns, 1)
	assert.Equal(t, "Muhammad", ns[0].Names.Get("en"))

	_, err = OpenStore(context.Background(), config.StoreConfig{Kind: config.StoreCSV, Narrators: filepath.Join(dir, "nope.csv"), Hadiths: hadiths}, nil, nil)
	assert.True(t, errors.Is(err, errors.ErrCodeRepository))
}

func TestOpenSQLiteStoreMigrates(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "isnad.db")
	s, err := OpenStore(context.Background(), config.StoreConfig{Kind: config.StoreSQLite, DSN: dsn}, nil, nil)
	require.NoError(t, err)
	defer s.Close()

	ss, ok := s.(*sqlstore.Store)
	require.True(t, ok)
	var imp Importer = ss
	require.NoError(t, imp.Import(context.Background(), fixtures.Narrators(), fixtures.Hadiths()))

	h, err := s.FetchHadith(context.Background(), fixtures.SingleChainID)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, []int{fixtures.Muslim, fixtures.SufyanUyayna, fixtures.Amash, fixtures.IbnAbbas, fixtures.Prophet}, h.Chains[0].NarratorIndices)
}

func TestOpenStoreUnknownKind(t *testing.T) {
	_, err := OpenStore(context.Background(), config.StoreConfig{Kind: "oracle"}, nil, nil)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	c, keyer, err := OpenCache(ctx, config.CacheConfig{Kind: config.CacheNone, Prefix: "isnad:"})
	require.NoError(t, err)
	_, isNull := c.(cache.NullCache)
	assert.True(t, isNull)
	assert.Equal(t, "isnad:http:csv:u", keyer.HTTPKey("csv", "u"))

	dir := filepath.Join(t.TempDir(), "cache")
	c, _, err = OpenCache(ctx, config.CacheConfig{Kind: config.CacheFile, Dir: dir})
	require.NoError(t, err)
	fc, ok := c.(*cache.FileCache)
	require.True(t, ok)
	assert.Equal(t, dir, fc.Dir())

	_, _, err = OpenCache(ctx, config.CacheConfig{Kind: "memcached"})
	assert.Error(t, err)
}
