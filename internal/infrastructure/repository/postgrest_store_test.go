package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/repositories"
)

type recordedRequest struct {
	method string
	path   string
	query  map[string][]string
	prefer string
	apikey string
	body   map[string]interface{}
}

func newPostgrestServer(t *testing.T, status int, response string) (*PostgrestStore, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.Query(),
			prefer: r.Header.Get("Prefer"),
			apikey: r.Header.Get("apikey"),
		}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &rec.body)
		}
		requests = append(requests, rec)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	return NewPostgrestStore(srv.URL+"/", "service-key"), &requests
}

func TestPostgrestStore_Select(t *testing.T) {
	store, requests := newPostgrestServer(t, http.StatusOK, `[{"id":"r1","user_id":"u1","ticket_size_min":50000,"legal_domicile":["Kenya"]}]`)

	rows, err := store.Select(context.Background(), "survey_responses_2024", repositories.Query{
		Filters: []repositories.Filter{repositories.Eq("user_id", "u1"), repositories.NotNull("completed_at")},
		Limit:   1,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "r1", rows[0]["id"])
	assert.Equal(t, 50000.0, rows[0]["ticket_size_min"])

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodGet, req.method)
	assert.Equal(t, "/rest/v1/survey_responses_2024", req.path)
	assert.Equal(t, "service-key", req.apikey)
	assert.Equal(t, []string{"eq.u1"}, req.query["user_id"])
	assert.Equal(t, []string{"not.is.null"}, req.query["completed_at"])
	assert.Equal(t, []string{"1"}, req.query["limit"])
}

func TestPostgrestStore_Upsert(t *testing.T) {
	store, requests := newPostgrestServer(t, http.StatusCreated, ``)

	err := store.Upsert(context.Background(), "survey_responses_2024", repositories.Row{
		"id":           "r1",
		"user_id":      "u1",
		"year":         2024,
		"completed_at": nil,
	}, "user_id", "year")
	require.NoError(t, err)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, []string{"user_id,year"}, req.query["on_conflict"])
	assert.Contains(t, req.prefer, "merge-duplicates")
	assert.Equal(t, "u1", req.body["user_id"])
	assert.Contains(t, req.body, "completed_at")
	assert.Nil(t, req.body["completed_at"])
}

func TestPostgrestStore_SelectError(t *testing.T) {
	store, _ := newPostgrestServer(t, http.StatusBadRequest, `{"code":"42P01","message":"relation does not exist"}`)

	_, err := store.Select(context.Background(), "missing", repositories.Query{})
	assert.Error(t, err)
}

func TestPostgrestStore_RPC(t *testing.T) {
	store, requests := newPostgrestServer(t, http.StatusOK, `{"user_id":"u9","survey_id":"s9"}`)

	var out struct {
		UserID   string `json:"user_id"`
		SurveyID string `json:"survey_id"`
	}
	err := store.RPC(context.Background(), "create_viewer_with_survey", map[string]interface{}{
		"viewer_email": "viewer@lcp.example",
		"survey_year":  2024,
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "u9", out.UserID)
	assert.Equal(t, "s9", out.SurveyID)

	req := (*requests)[0]
	assert.Equal(t, "/rest/v1/rpc/create_viewer_with_survey", req.path)
	assert.Equal(t, "viewer@lcp.example", req.body["viewer_email"])
}

func TestPostgrestStore_RPCErrorBody(t *testing.T) {
	store, _ := newPostgrestServer(t, http.StatusBadRequest, `{"code":"P0001","message":"email already registered"}`)

	err := store.RPC(context.Background(), "create_viewer_with_survey", map[string]interface{}{}, nil)
	assert.ErrorContains(t, err, "email already registered")
}

func TestPostgrestStore_HonorsCanceledContext(t *testing.T) {
	store, requests := newPostgrestServer(t, http.StatusOK, `[]`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Select(ctx, "survey_responses_2024", repositories.Query{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, *requests)
}
