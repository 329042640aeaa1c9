package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mki/isnad/internal/fixtures"
	"github.com/mki/isnad/pkg/buildinfo"
	"github.com/mki/isnad/pkg/cache"
	"github.com/mki/isnad/pkg/errors"
	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/pipeline"
	"github.com/mki/isnad/pkg/repository"
	"github.com/mki/isnad/pkg/repository/memstore"
)

func newTestServer(t *testing.T) (*Server, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := log.New(&logs)
	store := memstore.New(fixtures.Narrators(), fixtures.Hadiths())
	runner := pipeline.NewRunner(
		repository.NewNarrators(store, logger),
		repository.NewHadiths(store, logger),
		cache.NewNullCache(), nil, logger)
	return New(runner, Options{Logger: logger}), &logs
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestVersion(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/version")
	require.Equal(t, http.StatusOK, rec.Code)
	info := decode[buildinfo.Info](t, rec)
	assert.Equal(t, buildinfo.Version, info.Version)
}

func TestRequestID(t *testing.T) {
	s, logs := newTestServer(t)

	rec := get(t, s, "/healthz")
	id := rec.Header().Get(HeaderRequestID)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), id)

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, incoming)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, incoming, rec.Header().Get(HeaderRequestID))

	req.Header.Set(HeaderRequestID, "not-a-uuid")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(HeaderRequestID))
}

func TestListHadiths(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/api/hadiths?page=1&size=2")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[repository.Page](t, rec)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 2, page.PageCount)
	assert.Len(t, page.Items, 2)

	rec = get(t, s, "/api/hadiths?source=muslim")
	page = decode[repository.Page](t, rec)
	require.Len(t, page.Items, 1)
	assert.Equal(t, fixtures.SingleChainID, page.Items[0].ID)

	rec = get(t, s, "/api/hadiths?page=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errors.ErrCodeInvalidPage, decode[errorResponse](t, rec).Code)
}

func TestGetHadith(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/api/hadiths/"+fixtures.TwoChainID)
	require.Equal(t, http.StatusOK, rec.Code)
	h := decode[isnad.Hadith](t, rec)
	assert.Len(t, h.Chains, 2)

	rec = get(t, s, "/api/hadiths/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[errorResponse](t, rec)
	assert.Equal(t, errors.ErrCodeHadithNotFound, body.Code)
	assert.Contains(t, body.Message, "unknown")
}

func TestGetGraph(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/api/hadiths/"+fixtures.TwoChainID+"/graph?locale=fr")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[graphResponse](t, rec)
	assert.Equal(t, "fr", resp.Diagram.Locale)
	assert.Len(t, resp.Diagram.Nodes, 10)
	assert.Len(t, resp.Diagram.Edges, 11)
	require.NotNil(t, resp.CommonLink)
	assert.Equal(t, fixtures.Amash, resp.CommonLink.Index)
	assert.False(t, resp.Empty)

	rec = get(t, s, "/api/hadiths/"+fixtures.PartialID+"/graph")
	resp = decode[graphResponse](t, rec)
	require.Len(t, resp.Gaps, 1)
	assert.Equal(t, fixtures.Missing, resp.Gaps[0].Index)

	rec = get(t, s, "/api/hadiths/"+fixtures.EmptyID+"/graph")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[graphResponse](t, rec).Empty)

	rec = get(t, s, "/api/hadiths/"+fixtures.TwoChainID+"/graph?locale=de")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetGraphArtifact(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/api/hadiths/"+fixtures.TwoChainID+"/graph.mermaid")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pipeline.ContentTypes[pipeline.FormatMermaid], rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "flowchart TB"))

	rec = get(t, s, "/api/hadiths/"+fixtures.TwoChainID+"/graph.dot")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "digraph")

	rec = get(t, s, "/api/hadiths/"+fixtures.TwoChainID+"/graph.gif")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errors.ErrCodeInvalidFormat, decode[errorResponse](t, rec).Code)
}

func TestNarrators(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/api/narrators?q=abdullah")
	require.Equal(t, http.StatusOK, rec.Code)
	ns := decode[[]isnad.Narrator](t, rec)
	require.Len(t, ns, 2)
	assert.Equal(t, fixtures.IbnMasud, ns[0].Index)

	rec = get(t, s, "/api/narrators?q=zzzz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	rec = get(t, s, "/api/narrators?q=")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, s, "/api/narrators/6")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Sulayman al-A'mash", decode[isnad.Narrator](t, rec).Names.Get(isnad.LocaleEnglish))

	rec = get(t, s, "/api/narrators/9999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errors.ErrCodeNarratorNotFound, decode[errorResponse](t, rec).Code)

	rec = get(t, s, "/api/narrators/x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/api/nothing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errors.ErrCodeNotFound, decode[errorResponse](t, rec).Code)
}
