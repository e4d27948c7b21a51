package usecases

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/PavaniTiago/lcp-network-api/internal/application/domain/model"
	"github.com/PavaniTiago/lcp-network-api/internal/domain/analytics"
	"github.com/PavaniTiago/lcp-network-api/internal/domain/entities"
	"github.com/PavaniTiago/lcp-network-api/internal/domain/survey"
	"github.com/PavaniTiago/lcp-network-api/internal/utils"
)

// AnalyticsUseCase implementa os casos de uso do painel de análises
type AnalyticsUseCase struct {
	registry   *survey.Registry
	surveys    SurveyStore
	visibility VisibilityStore
	loader     *Loader
	location   *time.Location
	now        func() time.Time
}

// NewAnalyticsUseCase cria uma nova instância de AnalyticsUseCase
func NewAnalyticsUseCase(registry *survey.Registry, surveys SurveyStore, visibility VisibilityStore, location *time.Location) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		registry:   registry,
		surveys:    surveys,
		visibility: visibility,
		loader:     NewLoader(),
		location:   location,
		now:        time.Now,
	}
}

// Overview retorna as métricas principais do ano. viewKey identifica quem
// consulta: uma consulta nova da mesma chave descarta a anterior.
func (u *AnalyticsUseCase) Overview(ctx context.Context, viewKey string, year int, completedOnly bool) (*model.Overview, error) {
	if _, err := u.schema(year); err != nil {
		return nil, err
	}

	v, err := u.loader.Run(ctx, viewKey, func(ctx context.Context) (interface{}, error) {
		responses, err := u.surveys.FindByYear(ctx, year, completedOnly)
		if err != nil {
			return nil, fmt.Errorf("erro ao carregar respostas %d: %w", year, err)
		}
		return u.overview(year, completedOnly, responses), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Overview), nil
}

func (u *AnalyticsUseCase) overview(year int, completedOnly bool, responses []entities.SurveyResponse) *model.Overview {
	rows := records(responses)
	now := u.now()

	out := &model.Overview{
		Year:                year,
		CompletedOnly:       completedOnly,
		Responses:           len(rows),
		TotalCapital:        analytics.TotalCapital(rows),
		AverageTicketSize:   analytics.AverageTicketSize(rows),
		MedianTicketSize:    analytics.MedianTicketSize(rows),
		CapitalEfficiency:   analytics.CapitalEfficiency(rows),
		GeographicDiversity: analytics.GeographicDiversity(rows),
		Domiciles:           analytics.Series(analytics.DistributionBy(rows, analytics.Field(survey.FieldLegalDomicile)), len(rows)),
		FundStages:          analytics.Series(analytics.DistributionBy(rows, analytics.Field(survey.FieldFundStage)), len(rows)),
		SectorAllocation:    shares(analytics.AllocationAverage(rows, survey.FieldSectorsAllocation)),
	}

	for _, r := range responses {
		if !r.Completed() {
			continue
		}
		out.Completed++
		if utils.SameMonth(*r.CompletedAt, now, u.location) {
			out.CompletedThisMonth++
		}
	}
	return out
}

// Distribution conta as respostas de um campo, respeitando a visibilidade do papel.
// Cada campo é um gráfico próprio: consultas de campos diferentes não se descartam.
func (u *AnalyticsUseCase) Distribution(ctx context.Context, viewKey string, role entities.Role, year int, field string) (*model.Distribution, error) {
	_, category, err := u.visibleField(ctx, role, year, field)
	if err != nil {
		return nil, err
	}

	v, err := u.loader.Run(ctx, fieldKey(viewKey, field), func(ctx context.Context) (interface{}, error) {
		responses, err := u.surveys.FindByYear(ctx, year, true)
		if err != nil {
			return nil, fmt.Errorf("erro ao carregar respostas %d: %w", year, err)
		}
		rows := records(responses)
		return &model.Distribution{
			Year:      year,
			Field:     field,
			Category:  category,
			Responses: len(rows),
			Points:    analytics.Series(analytics.DistributionBy(rows, analytics.Field(field)), len(rows)),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Distribution), nil
}

// Stats resume um campo numérico, respeitando a visibilidade do papel
func (u *AnalyticsUseCase) Stats(ctx context.Context, viewKey string, role entities.Role, year int, field string) (*model.FieldStats, error) {
	f, category, err := u.visibleField(ctx, role, year, field)
	if err != nil {
		return nil, err
	}
	if f.Kind != entities.KindNumber {
		return nil, fmt.Errorf("%w: %s", ErrNotNumeric, field)
	}

	v, err := u.loader.Run(ctx, fieldKey(viewKey, field), func(ctx context.Context) (interface{}, error) {
		responses, err := u.surveys.FindByYear(ctx, year, true)
		if err != nil {
			return nil, fmt.Errorf("erro ao carregar respostas %d: %w", year, err)
		}
		return &model.FieldStats{
			Year:     year,
			Field:    field,
			Category: category,
			Stats:    analytics.NumericStats(records(responses), field),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.FieldStats), nil
}

func (u *AnalyticsUseCase) schema(year int) (*survey.Schema, error) {
	if year == 0 {
		return nil, ErrMissingYear
	}
	return u.registry.Schema(year)
}

// visibleField valida o campo e aplica a regra de visibilidade; campos sem
// regra configurada são exclusivos de administradores
func (u *AnalyticsUseCase) visibleField(ctx context.Context, role entities.Role, year int, field string) (survey.Field, string, error) {
	schema, err := u.schema(year)
	if err != nil {
		return survey.Field{}, "", err
	}
	f, ok := schema.Field(field)
	if !ok {
		return survey.Field{}, "", fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	rules, err := u.visibility.FindByYear(ctx, year)
	if err != nil {
		return survey.Field{}, "", err
	}
	if !rules.CanView(field, role) {
		return survey.Field{}, "", fmt.Errorf("%w: %s", ErrFieldNotVisible, field)
	}
	return f, rules[field].Category, nil
}

// fieldKey separa os gráficos de um mesmo painel por campo
func fieldKey(viewKey, field string) string {
	return viewKey + ":" + field
}

func records(responses []entities.SurveyResponse) []entities.Record {
	rows := make([]entities.Record, 0, len(responses))
	for _, r := range responses {
		rows = append(rows, r.Record)
	}
	return rows
}

func shares(avg map[string]float64) []model.AllocationShare {
	out := make([]model.AllocationShare, 0, len(avg))
	for name, pct := range avg {
		out = append(out, model.AllocationShare{Name: name, Percentage: pct})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Percentage != out[j].Percentage {
			return out[i].Percentage > out[j].Percentage
		}
		return out[i].Name < out[j].Name
	})
	return out
}
