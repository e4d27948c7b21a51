package repositories

import (
	"context"
	"errors"
)

// ErrNotFound indica que nenhuma linha atende ao filtro
var ErrNotFound = errors.New("record not found")

// Row é uma linha crua de tabela, na codificação em que foi armazenada
type Row = map[string]interface{}

// Op é o operador de um filtro
type Op string

const (
	OpEq      Op = "eq"
	OpNotNull Op = "not_null"
)

// Filter restringe uma consulta por coluna
type Filter struct {
	Column string
	Op     Op
	Value  interface{}
}

func Eq(column string, value interface{}) Filter { return Filter{Column: column, Op: OpEq, Value: value} }

func NotNull(column string) Filter { return Filter{Column: column, Op: OpNotNull} }

// Query descreve uma leitura; Columns vazio seleciona todas as colunas
type Query struct {
	Columns []string
	Filters []Filter
	OrderBy string
	Desc    bool
	Limit   int
}

// Store é o backend de armazenamento de linhas usado por todos os repositórios.
// Existem duas implementações: SQL direto (gorm) e a API REST do Supabase (PostgREST).
type Store interface {
	Select(ctx context.Context, table string, q Query) ([]Row, error)
	Insert(ctx context.Context, table string, row Row) error
	// Upsert insere ou, havendo conflito nas colunas informadas, atualiza as demais.
	// O id e o created_at de uma linha existente devem ser enviados inalterados.
	Upsert(ctx context.Context, table string, row Row, conflict ...string) error
	Update(ctx context.Context, table string, row Row, filters ...Filter) error
	// RPC executa uma função do banco com argumentos nomeados e decodifica o JSON retornado em out
	RPC(ctx context.Context, fn string, args map[string]interface{}, out interface{}) error
}
