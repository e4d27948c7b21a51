package usecases

import (
	"context"
	"time"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/entities"
	"github.com/PavaniTiago/lcp-network-api/internal/infrastructure/cache"
)

// StatusUseCase informa em quais anos o usuário iniciou ou concluiu a pesquisa.
// O resultado fica em cache por usuário e consultas simultâneas compartilham a mesma busca.
type StatusUseCase struct {
	surveys SurveyStore
	cache   *cache.Cache
}

// NewStatusUseCase cria uma nova instância de StatusUseCase
func NewStatusUseCase(surveys SurveyStore, ttl time.Duration) *StatusUseCase {
	return &StatusUseCase{
		surveys: surveys,
		cache:   cache.New(ttl),
	}
}

// Statuses retorna a situação do usuário em cada ano registrado
func (u *StatusUseCase) Statuses(ctx context.Context, userID string) ([]entities.SurveyStatus, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	v, err := u.cache.GetOrLoad(ctx, statusKey(userID), func(ctx context.Context) (interface{}, error) {
		return u.surveys.Statuses(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]entities.SurveyStatus), nil
}

// Invalidate descarta o status em cache do usuário
func (u *StatusUseCase) Invalidate(userID string) {
	u.cache.Delete(statusKey(userID))
}

func statusKey(userID string) string {
	return "status:" + userID
}
