package usecases

import (
	"time"

	"go.uber.org/zap"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/survey"
)

// Repositories agrupa os repositórios de que os casos de uso dependem
type Repositories struct {
	Surveys     SurveyStore
	Projections ProjectionStore
	Visibility  VisibilityStore
	Viewers     ViewerStore
}

// UseCases agrupa todos os casos de uso expostos pela API
type UseCases struct {
	Registry   *survey.Registry
	Submission *SubmissionUseCase
	Status     *StatusUseCase
	Analytics  *AnalyticsUseCase
	Viewers    *ViewerUseCase
}

// New monta os casos de uso sobre os repositórios informados
func New(registry *survey.Registry, repos Repositories, statusTTL time.Duration, location *time.Location, log *zap.Logger) *UseCases {
	status := NewStatusUseCase(repos.Surveys, statusTTL)
	return &UseCases{
		Registry:   registry,
		Submission: NewSubmissionUseCase(registry, repos.Surveys, repos.Projections, status, log),
		Status:     status,
		Analytics:  NewAnalyticsUseCase(registry, repos.Surveys, repos.Visibility, location),
		Viewers:    NewViewerUseCase(registry, repos.Viewers),
	}
}
