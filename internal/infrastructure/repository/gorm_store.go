// Package repository implements repositories.Store over the two supported
// backends: a direct SQL connection (gorm) and Supabase PostgREST.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/repositories"
)

var identifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// GormStore reads and writes rows through gorm using untyped maps.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Select(ctx context.Context, table string, q repositories.Query) ([]repositories.Row, error) {
	tx := s.db.WithContext(ctx).Table(table)
	if len(q.Columns) > 0 {
		tx = tx.Select(q.Columns)
	}
	tx = applyFilters(tx, q.Filters)
	if q.OrderBy != "" {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: q.OrderBy}, Desc: q.Desc})
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var rows []map[string]interface{}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	return rows, nil
}

func (s *GormStore) Insert(ctx context.Context, table string, row repositories.Row) error {
	if err := s.db.WithContext(ctx).Table(table).Create(map[string]interface{}(row)).Error; err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

// Upsert never overwrites the id or created_at of an existing row.
func (s *GormStore) Upsert(ctx context.Context, table string, row repositories.Row, conflict ...string) error {
	keys := map[string]bool{"id": true, "created_at": true}
	columns := make([]clause.Column, 0, len(conflict))
	for _, c := range conflict {
		keys[c] = true
		columns = append(columns, clause.Column{Name: c})
	}

	updates := make([]string, 0, len(row))
	for col := range row {
		if !keys[col] {
			updates = append(updates, col)
		}
	}
	sort.Strings(updates)

	err := s.db.WithContext(ctx).Table(table).Clauses(clause.OnConflict{
		Columns:   columns,
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(map[string]interface{}(row)).Error
	if err != nil {
		return fmt.Errorf("upsert %s: %w", table, err)
	}
	return nil
}

func (s *GormStore) Update(ctx context.Context, table string, row repositories.Row, filters ...repositories.Filter) error {
	if len(filters) == 0 {
		return fmt.Errorf("update %s: at least one filter is required", table)
	}
	tx := applyFilters(s.db.WithContext(ctx).Table(table), filters)
	if err := tx.Updates(map[string]interface{}(row)).Error; err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	return nil
}

// RPC calls a Postgres function with named arguments. Composite arguments
// are sent as jsonb and the result is read back as JSON text.
func (s *GormStore) RPC(ctx context.Context, fn string, args map[string]interface{}, out interface{}) error {
	if !identifier.MatchString(fn) {
		return fmt.Errorf("rpc: invalid function name %q", fn)
	}

	names := make([]string, 0, len(args))
	for name := range args {
		if !identifier.MatchString(name) {
			return fmt.Errorf("rpc %s: invalid argument name %q", fn, name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	params := make([]string, 0, len(names))
	values := make([]interface{}, 0, len(names))
	for _, name := range names {
		switch v := args[name].(type) {
		case map[string]interface{}, []interface{}, []string:
			b, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("rpc %s: encode %s: %w", fn, name, err)
			}
			params = append(params, name+" => CAST(? AS jsonb)")
			values = append(values, string(b))
		default:
			params = append(params, name+" => ?")
			values = append(values, v)
		}
	}

	query := fmt.Sprintf("SELECT %s(%s)::text AS result", fn, strings.Join(params, ", "))
	var res struct {
		Result sql.NullString
	}
	if err := s.db.WithContext(ctx).Raw(query, values...).Scan(&res).Error; err != nil {
		return fmt.Errorf("rpc %s: %w", fn, err)
	}
	if out == nil || !res.Result.Valid {
		return nil
	}
	if err := json.Unmarshal([]byte(res.Result.String), out); err != nil {
		return fmt.Errorf("rpc %s: decode result: %w", fn, err)
	}
	return nil
}

func applyFilters(tx *gorm.DB, filters []repositories.Filter) *gorm.DB {
	for _, f := range filters {
		col := clause.Column{Name: f.Column}
		switch f.Op {
		case repositories.OpEq:
			tx = tx.Where(clause.Eq{Column: col, Value: f.Value})
		case repositories.OpNotNull:
			tx = tx.Where(clause.Neq{Column: col, Value: nil})
		}
	}
	return tx
}
