package usecases

import (
	"context"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/entities"
	"github.com/PavaniTiago/lcp-network-api/internal/domain/survey"
)

// ViewerUseCase cria contas de visualizador já com a pesquisa do ano preenchida
type ViewerUseCase struct {
	registry *survey.Registry
	viewers  ViewerStore
}

// NewViewerUseCase cria uma nova instância de ViewerUseCase
func NewViewerUseCase(registry *survey.Registry, viewers ViewerStore) *ViewerUseCase {
	return &ViewerUseCase{registry: registry, viewers: viewers}
}

// CreateViewer valida a conta e a pesquisa e cria ambas numa única chamada ao banco
func (u *ViewerUseCase) CreateViewer(ctx context.Context, account entities.NewViewer, input map[string]interface{}) (*entities.ViewerAccount, error) {
	errs := survey.ValidateAccount(account)
	if len(errs) > 0 {
		return nil, errs
	}

	schema, err := u.registry.Schema(account.SurveyYear)
	if err != nil {
		return nil, err
	}

	rec, errs := schema.Validate(input)
	if len(errs) > 0 {
		return nil, errs
	}

	return u.viewers.Create(ctx, account, schema.Serialize(rec))
}
