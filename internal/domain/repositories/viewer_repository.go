package repositories

import (
	"context"
	"fmt"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/entities"
)

const createViewerFn = "create_viewer_with_survey"

// ViewerRepository cria contas de visualizador pela função do banco, que
// cadastra o login e a pesquisa numa única transação.
type ViewerRepository struct {
	store Store
}

func NewViewerRepository(store Store) *ViewerRepository {
	return &ViewerRepository{store: store}
}

// Create chama create_viewer_with_survey; surveyData já deve estar serializado
func (r *ViewerRepository) Create(ctx context.Context, v entities.NewViewer, surveyData map[string]interface{}) (*entities.ViewerAccount, error) {
	var result struct {
		UserID   string `json:"user_id"`
		SurveyID string `json:"survey_id"`
	}

	err := r.store.RPC(ctx, createViewerFn, map[string]interface{}{
		"viewer_email":    v.Email,
		"viewer_password": v.Password,
		"survey_data":     surveyData,
		"survey_year":     v.SurveyYear,
	}, &result)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar visualizador: %w", err)
	}

	return &entities.ViewerAccount{
		UserID:   result.UserID,
		SurveyID: result.SurveyID,
		Email:    v.Email,
	}, nil
}
