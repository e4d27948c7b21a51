package usecases

import (
	"context"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/entities"
)

// SurveyStore é o acesso às respostas usado pelos casos de uso
type SurveyStore interface {
	FindByUser(ctx context.Context, userID string, year int) (*entities.SurveyResponse, error)
	FindByYear(ctx context.Context, year int, completedOnly bool) ([]entities.SurveyResponse, error)
	Save(ctx context.Context, resp *entities.SurveyResponse) error
	Statuses(ctx context.Context, userID string) ([]entities.SurveyStatus, error)
}

// ProjectionStore grava a projeção do diretório da rede
type ProjectionStore interface {
	Upsert(ctx context.Context, p *entities.MemberSurvey) error
}

// VisibilityStore lê as regras de visibilidade por ano
type VisibilityStore interface {
	FindByYear(ctx context.Context, year int) (entities.VisibilityMap, error)
}

// ViewerStore cria contas de visualizador com sua pesquisa
type ViewerStore interface {
	Create(ctx context.Context, v entities.NewViewer, surveyData map[string]interface{}) (*entities.ViewerAccount, error)
}
