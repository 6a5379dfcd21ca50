package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/matchlog-io/matchlog-engine/pkg/importer"
	"github.com/matchlog-io/matchlog-engine/pkg/services"
)

// mockImportService implements services.ImportService for handler tests.
type mockImportService struct {
	summary *services.ImportSummary
	err     error
	got     []importer.RawRecord
}

func (m *mockImportService) Run(ctx context.Context, records []importer.RawRecord) (*services.ImportSummary, error) {
	m.got = records
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

func postImport(t *testing.T, h *ImportHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.Import(rec, req)
	return rec
}

func TestImportHandler_Success(t *testing.T) {
	mock := &mockImportService{summary: &services.ImportSummary{
		Received:   2,
		Normalized: 2,
		Deduped:    1,
		Wiped:      true,
		Inserted:   services.InsertedCounts{Players: 2, Sessions: 1, Rounds: 1, Games: 1},
		Warnings:   []string{},
	}}
	h := NewImportHandler(mock, zap.NewNop())

	rec := postImport(t, h, `{"games":[{"date":"2026-02-12","player":"a","opponent":"b","my_score":1,"opp_score":2}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ImportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, 2, resp.Received)
	assert.Equal(t, 1, resp.Deduped)
	require.NotNil(t, resp.Inserted)
	assert.Equal(t, 1, resp.Inserted.Games)
	assert.Len(t, mock.got, 1)
}

func TestImportHandler_GuardedNoOp(t *testing.T) {
	mock := &mockImportService{summary: &services.ImportSummary{
		Received: 1,
		Message:  "no valid records in import; existing data left untouched",
		Warnings: []string{"record 0: missing or invalid score"},
	}}
	h := NewImportHandler(mock, zap.NewNop())

	rec := postImport(t, h, `{"games":[{"date":"2026-02-12","player":"a","opponent":"b"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ImportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.False(t, resp.Wiped)
	assert.Nil(t, resp.Inserted)
	assert.NotEmpty(t, resp.Message)
	assert.Len(t, resp.Warnings, 1)
}

func TestImportHandler_MalformedJSON(t *testing.T) {
	h := NewImportHandler(&mockImportService{}, zap.NewNop())

	rec := postImport(t, h, `{"games": not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postImport(t, h, `{"games": "not an array"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportHandler_MissingGamesArray(t *testing.T) {
	h := NewImportHandler(&mockImportService{}, zap.NewNop())

	rec := postImport(t, h, `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["ok"])
}

func TestImportHandler_StorageFailure(t *testing.T) {
	mock := &mockImportService{err: errors.New("failed to insert player: connection reset")}
	h := NewImportHandler(mock, zap.NewNop())

	rec := postImport(t, h, `{"games":[{"date":"2026-02-12","player":"a","opponent":"b","my_score":1,"opp_score":2}]}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["ok"])
	assert.Contains(t, resp["error"], "connection reset")
}
