package usecases

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/entities"
	"github.com/PavaniTiago/lcp-network-api/internal/domain/repositories"
	"github.com/PavaniTiago/lcp-network-api/internal/domain/survey"
)

// SubmissionUseCase grava rascunhos e envios das pesquisas.
// O envio grava primeiro a resposta e depois, em melhor esforço, a projeção
// do diretório: uma falha na projeção é registrada em log e nunca desfaz o envio.
type SubmissionUseCase struct {
	registry    *survey.Registry
	surveys     SurveyStore
	projections ProjectionStore
	status      *StatusUseCase
	log         *zap.Logger
	now         func() time.Time

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewSubmissionUseCase cria uma nova instância de SubmissionUseCase
func NewSubmissionUseCase(registry *survey.Registry, surveys SurveyStore, projections ProjectionStore, status *StatusUseCase, log *zap.Logger) *SubmissionUseCase {
	return &SubmissionUseCase{
		registry:    registry,
		surveys:     surveys,
		projections: projections,
		status:      status,
		log:         log,
		now:         time.Now,
		inflight:    make(map[string]struct{}),
	}
}

// Get retorna a resposta do usuário para o ano, ou repositories.ErrNotFound
func (u *SubmissionUseCase) Get(ctx context.Context, userID string, year int) (*entities.SurveyResponse, error) {
	if _, err := u.schema(userID, year); err != nil {
		return nil, err
	}
	return u.surveys.FindByUser(ctx, userID, year)
}

// SaveDraft grava uma resposta parcial; regras de obrigatoriedade só valem no envio
func (u *SubmissionUseCase) SaveDraft(ctx context.Context, userID string, year int, input map[string]interface{}) (*entities.SurveyResponse, error) {
	schema, err := u.schema(userID, year)
	if err != nil {
		return nil, err
	}

	rec, errs := schema.Decode(input)
	if len(errs) > 0 {
		return nil, errs
	}

	return u.persist(ctx, userID, year, rec, false)
}

// Submit valida a resposta completa, grava com completed_at e atualiza a projeção
func (u *SubmissionUseCase) Submit(ctx context.Context, userID string, year int, input map[string]interface{}) (*entities.SurveyResponse, error) {
	schema, err := u.schema(userID, year)
	if err != nil {
		return nil, err
	}

	rec, errs := schema.Validate(input)
	if len(errs) > 0 {
		return nil, errs
	}
	if err := schema.CheckAllocations(rec); err != nil {
		return nil, err
	}

	resp, err := u.persist(ctx, userID, year, rec, true)
	if err != nil {
		return nil, err
	}

	projection := survey.DeriveProjection(*resp, u.now().UTC())
	if err := u.projections.Upsert(ctx, &projection); err != nil {
		u.log.Error("Falha ao atualizar a projeção do diretório",
			zap.String("user_id", userID),
			zap.Int("year", year),
			zap.Error(err),
		)
	}
	return resp, nil
}

func (u *SubmissionUseCase) schema(userID string, year int) (*survey.Schema, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if year == 0 {
		return nil, ErrMissingYear
	}
	return u.registry.Schema(year)
}

// persist aplica a trava de reentrada e grava a resposta preservando id e created_at
func (u *SubmissionUseCase) persist(ctx context.Context, userID string, year int, rec entities.Record, complete bool) (*entities.SurveyResponse, error) {
	release, ok := u.acquire(userID, year)
	if !ok {
		return nil, ErrSubmissionInFlight
	}
	defer release()

	existing, err := u.surveys.FindByUser(ctx, userID, year)
	switch {
	case err == nil:
		if existing.Completed() {
			return nil, ErrSurveyCompleted
		}
	case errors.Is(err, repositories.ErrNotFound):
		existing = &entities.SurveyResponse{UserID: userID, Year: year}
	default:
		return nil, &SubmissionError{Year: year, Err: fmt.Errorf("load existing response: %w", err)}
	}

	resp := *existing
	resp.Record = rec
	if complete {
		completedAt := u.now().UTC()
		resp.CompletedAt = &completedAt
	}

	if err := u.surveys.Save(ctx, &resp); err != nil {
		return nil, &SubmissionError{Year: year, Err: err}
	}

	u.status.Invalidate(userID)
	return &resp, nil
}

// acquire impede dois envios simultâneos para o mesmo usuário e ano
func (u *SubmissionUseCase) acquire(userID string, year int) (func(), bool) {
	key := fmt.Sprintf("%s:%d", userID, year)

	u.mu.Lock()
	defer u.mu.Unlock()
	if _, busy := u.inflight[key]; busy {
		return nil, false
	}
	u.inflight[key] = struct{}{}

	return func() {
		u.mu.Lock()
		delete(u.inflight, key)
		u.mu.Unlock()
	}, true
}
