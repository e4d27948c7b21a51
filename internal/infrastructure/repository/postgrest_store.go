package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	postgrest "github.com/supabase-community/postgrest-go"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/repositories"
)

// PostgrestStore talks to the Supabase REST API with the service key.
// postgrest-go has no context support, so cancellation is only checked
// before each request.
type PostgrestStore struct {
	client *postgrest.Client
	// Rpc reports failures through the shared ClientError field
	rpcMu sync.Mutex
}

// NewPostgrestStore builds a client for <supabaseURL>/rest/v1.
func NewPostgrestStore(supabaseURL, serviceKey string) *PostgrestStore {
	restURL := strings.TrimRight(supabaseURL, "/") + "/rest/v1"
	client := postgrest.NewClient(restURL, "public", map[string]string{
		"apikey":        serviceKey,
		"Authorization": "Bearer " + serviceKey,
	})
	return &PostgrestStore{client: client}
}

func (s *PostgrestStore) Select(ctx context.Context, table string, q repositories.Query) ([]repositories.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	columns := "*"
	if len(q.Columns) > 0 {
		columns = strings.Join(q.Columns, ",")
	}
	fb := applyPostgrestFilters(s.client.From(table).Select(columns, "", false), q.Filters)
	if q.OrderBy != "" {
		fb = fb.Order(q.OrderBy, &postgrest.OrderOpts{Ascending: !q.Desc})
	}
	if q.Limit > 0 {
		fb = fb.Limit(q.Limit, "")
	}

	var rows []map[string]interface{}
	if _, err := fb.ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	return rows, nil
}

func (s *PostgrestStore) Insert(ctx context.Context, table string, row repositories.Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, _, err := s.client.From(table).Insert(jsonRow(row), false, "", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func (s *PostgrestStore) Upsert(ctx context.Context, table string, row repositories.Row, conflict ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	onConflict := strings.Join(conflict, ",")
	if _, _, err := s.client.From(table).Upsert(jsonRow(row), onConflict, "minimal", "").Execute(); err != nil {
		return fmt.Errorf("upsert %s: %w", table, err)
	}
	return nil
}

func (s *PostgrestStore) Update(ctx context.Context, table string, row repositories.Row, filters ...repositories.Filter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(filters) == 0 {
		return fmt.Errorf("update %s: at least one filter is required", table)
	}
	fb := applyPostgrestFilters(s.client.From(table).Update(jsonRow(row), "minimal", ""), filters)
	if _, _, err := fb.Execute(); err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	return nil
}

func (s *PostgrestStore) RPC(ctx context.Context, fn string, args map[string]interface{}, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.rpcMu.Lock()
	s.client.ClientError = nil
	body := s.client.Rpc(fn, "", args)
	err := s.client.ClientError
	s.rpcMu.Unlock()
	if err != nil {
		return fmt.Errorf("rpc %s: %w", fn, err)
	}

	// Rpc does not check the status code; PostgREST errors carry code and message.
	var apiErr struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal([]byte(body), &apiErr) == nil && apiErr.Code != "" && apiErr.Message != "" {
		return fmt.Errorf("rpc %s: (%s) %s", fn, apiErr.Code, apiErr.Message)
	}
	if out == nil || body == "" || body == "null" {
		return nil
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return fmt.Errorf("rpc %s: decode result: %w", fn, err)
	}
	return nil
}

func applyPostgrestFilters(fb *postgrest.FilterBuilder, filters []repositories.Filter) *postgrest.FilterBuilder {
	for _, f := range filters {
		switch f.Op {
		case repositories.OpEq:
			fb = fb.Eq(f.Column, filterValue(f.Value))
		case repositories.OpNotNull:
			fb = fb.Not(f.Column, "is", "null")
		}
	}
	return fb
}

func filterValue(v interface{}) string {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if t != nil {
			return t.UTC().Format(time.RFC3339Nano)
		}
	}
	return fmt.Sprint(v)
}

// jsonRow dereferences typed nil pointers so they encode as JSON null.
func jsonRow(row repositories.Row) map[string]interface{} {
	out := make(map[string]interface{}, len(row))
	for k, v := range row {
		if t, ok := v.(*time.Time); ok {
			if t == nil {
				out[k] = nil
				continue
			}
			out[k] = t.UTC()
			continue
		}
		out[k] = v
	}
	return out
}
