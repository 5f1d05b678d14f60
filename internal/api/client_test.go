package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := New(srv.URL, WithToken("test-token"), WithOrganization("acme"))
	return srv, client
}

func TestListRecords_PreservesServerOrder(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/masters/projects", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "acme", r.Header.Get("X-Organization"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"records": []map[string]any{
				{"id": "p-3", "name": "zeta"},
				{"id": "p-1", "name": "alpha"},
				{"id": "p-2", "name": "mid"},
			},
		})
	})

	records, err := client.ListRecords(context.Background(), "projects")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "p-3", records[0].ID())
	assert.Equal(t, "p-1", records[1].ID())
	assert.Equal(t, "p-2", records[2].ID())
	assert.Equal(t, "alpha", records[1].Field("name"))
	assert.Empty(t, records[0].Field("missing"))
}

func TestSearchAudit_SendsQueryBody(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/audit/search", r.URL.Path)

		var query AuditQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&query))
		assert.Equal(t, "who deleted projects last week", query.Query)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"entries": []map[string]any{
				{"id": "a-1", "actor": "kim", "action": "delete", "entity": "projects"},
			},
		})
	})

	entries, err := client.SearchAudit(context.Background(), AuditQuery{Query: "who deleted projects last week"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kim", entries[0].Actor)
}

func TestUpdateWebhook_RoundTrip(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/webhooks/wh-1", r.URL.Path)

		var hook Webhook
		require.NoError(t, json.NewDecoder(r.Body).Decode(&hook))
		hook.LastStatus = 200
		_ = json.NewEncoder(w).Encode(hook)
	})

	updated, err := client.UpdateWebhook(context.Background(), Webhook{
		ID: "wh-1", URL: "https://hooks.example.com/pfa", Events: []string{"record.updated"}, Enabled: true,
	})
	require.NoError(t, err)
	assert.True(t, updated.Enabled)
	assert.Equal(t, 200, updated.LastStatus)
}

func TestRollback_ErrorEnvelope(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":   "version conflict",
			"details": "record changed since version 3",
		})
	})

	_, err := client.Rollback(context.Background(), "projects", "p-1", 3)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "version conflict")
	assert.Contains(t, apiErr.Error(), "record changed since version 3")
}

func TestIsNotFound(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "no such record"})
	})

	_, err := client.GetRecord(context.Background(), "projects", "nope")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(errors.New("other")))
}

func TestCheckServerVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr error
	}{
		{name: "supported", version: "2.2.4"},
		{name: "too old", version: "2.1.0", wantErr: ErrUnsupportedServer},
		{name: "next major", version: "3.0.0", wantErr: ErrUnsupportedServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(HealthResponse{Status: "ok", Version: tt.version})
			})

			err := client.CheckServerVersion(context.Background())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateImport_AndCommit(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/imports/projects/validate":
			assert.Equal(t, "text/csv", r.Header.Get("Content-Type"))
			_ = json.NewEncoder(w).Encode(ImportValidation{
				JobID: "01JABCDEF", TotalRows: 10, ValidRows: 10,
			})
		case "/api/v1/imports/01JABCDEF/commit":
			_ = json.NewEncoder(w).Encode(ImportResult{JobID: "01JABCDEF", Created: 7, Updated: 3})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	validation, err := client.ValidateImport(context.Background(), "projects", []byte("id,name\n1,a\n"))
	require.NoError(t, err)
	assert.True(t, validation.Valid())

	result, err := client.CommitImport(context.Background(), validation.JobID)
	require.NoError(t, err)
	assert.Equal(t, 7, result.Created)
	assert.Equal(t, 3, result.Updated)
}
