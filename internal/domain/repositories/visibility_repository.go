package repositories

import (
	"context"
	"fmt"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/entities"
)

const fieldVisibilityTable = "field_visibility"

// VisibilityRepository lê as regras de visibilidade de campos das análises
type VisibilityRepository struct {
	store Store
}

func NewVisibilityRepository(store Store) *VisibilityRepository {
	return &VisibilityRepository{store: store}
}

// FindByYear retorna as regras configuradas para o ano, indexadas pelo nome do campo
func (r *VisibilityRepository) FindByYear(ctx context.Context, year int) (entities.VisibilityMap, error) {
	rows, err := r.store.Select(ctx, fieldVisibilityTable, Query{
		Filters: []Filter{Eq("survey_year", year)},
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar visibilidade %d: %w", year, err)
	}

	out := make(entities.VisibilityMap, len(rows))
	for _, row := range rows {
		v := entities.FieldVisibility{
			SurveyYear: intOf(row["survey_year"]),
			FieldName:  stringOf(row["field_name"]),
			Category:   stringOf(row["field_category"]),
			Viewer:     boolOf(row["viewer_visible"]),
			Member:     boolOf(row["member_visible"]),
			Admin:      boolOf(row["admin_visible"]),
		}
		out[v.FieldName] = v
	}
	return out, nil
}
