package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/entities"
	"github.com/PavaniTiago/lcp-network-api/internal/domain/survey"
)

// SurveyRepository implementa o acesso às tabelas de respostas, uma por ano
type SurveyRepository struct {
	store    Store
	registry *survey.Registry
	log      *zap.Logger
	now      func() time.Time
}

// NewSurveyRepository cria uma nova instância de SurveyRepository
func NewSurveyRepository(store Store, registry *survey.Registry, log *zap.Logger) *SurveyRepository {
	return &SurveyRepository{
		store:    store,
		registry: registry,
		log:      log,
		now:      time.Now,
	}
}

// FindByUser retorna a resposta do usuário para o ano, ou ErrNotFound
func (r *SurveyRepository) FindByUser(ctx context.Context, userID string, year int) (*entities.SurveyResponse, error) {
	schema, err := r.registry.Schema(year)
	if err != nil {
		return nil, err
	}

	rows, err := r.store.Select(ctx, schema.Table, Query{
		Filters: []Filter{Eq("user_id", userID)},
		Limit:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar pesquisa %d: %w", year, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	resp := r.decode(schema, rows[0])
	return &resp, nil
}

// FindByYear retorna todas as respostas de um ano, mais recentes primeiro
func (r *SurveyRepository) FindByYear(ctx context.Context, year int, completedOnly bool) ([]entities.SurveyResponse, error) {
	schema, err := r.registry.Schema(year)
	if err != nil {
		return nil, err
	}

	q := Query{OrderBy: "created_at", Desc: true}
	if completedOnly {
		q.Filters = append(q.Filters, NotNull("completed_at"))
	}

	rows, err := r.store.Select(ctx, schema.Table, q)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pesquisas %d: %w", year, err)
	}

	responses := make([]entities.SurveyResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, r.decode(schema, row))
	}
	return responses, nil
}

// Save grava a resposta (insert ou update pela chave user_id + year).
// Um ID já existente e seu created_at são preservados.
func (r *SurveyRepository) Save(ctx context.Context, resp *entities.SurveyResponse) error {
	schema, err := r.registry.Schema(resp.Year)
	if err != nil {
		return err
	}

	now := r.now().UTC()
	if resp.ID == "" {
		resp.ID = uuid.NewString()
	}
	if resp.CreatedAt.IsZero() {
		resp.CreatedAt = now
	}
	resp.UpdatedAt = now

	row := schema.Serialize(resp.Record)
	// campos limpos pelo usuário precisam sobrescrever o valor anterior
	for _, col := range schema.Columns() {
		if _, ok := row[col]; !ok {
			row[col] = nil
		}
	}
	row["id"] = resp.ID
	row["user_id"] = resp.UserID
	row["year"] = resp.Year
	row["created_at"] = resp.CreatedAt
	row["updated_at"] = resp.UpdatedAt
	row["completed_at"] = resp.CompletedAt

	if err := r.store.Upsert(ctx, schema.Table, row, "user_id", "year"); err != nil {
		return fmt.Errorf("erro ao salvar pesquisa %d: %w", resp.Year, err)
	}
	return nil
}

// Statuses retorna a situação do usuário em cada ano registrado
func (r *SurveyRepository) Statuses(ctx context.Context, userID string) ([]entities.SurveyStatus, error) {
	statuses := make([]entities.SurveyStatus, 0, len(r.registry.Years()))
	for _, schema := range r.registry.Schemas() {
		rows, err := r.store.Select(ctx, schema.Table, Query{
			Columns: []string{"id", "completed_at"},
			Filters: []Filter{Eq("user_id", userID)},
			Limit:   1,
		})
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar status %d: %w", schema.Year, err)
		}

		status := entities.SurveyStatus{Year: schema.Year}
		if len(rows) > 0 {
			status.Started = true
			status.CompletedAt = timeOf(rows[0]["completed_at"])
			status.Completed = status.CompletedAt != nil
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func (r *SurveyRepository) decode(schema *survey.Schema, row Row) entities.SurveyResponse {
	rec, malformed := schema.Normalize(row)
	id := stringOf(row["id"])
	if len(malformed) > 0 {
		r.log.Warn("Campos mal formados na pesquisa armazenada",
			zap.String("table", schema.Table),
			zap.String("id", id),
			zap.Strings("fields", malformed),
		)
	}

	return entities.SurveyResponse{
		Base: entities.Base{
			ID:        id,
			CreatedAt: timeOrZero(row["created_at"]),
			UpdatedAt: timeOrZero(row["updated_at"]),
		},
		UserID:      stringOf(row["user_id"]),
		Year:        schema.Year,
		Record:      rec,
		CompletedAt: timeOf(row["completed_at"]),
	}
}

// IsNotFound é um atalho para errors.Is(err, ErrNotFound)
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
