package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/entities"
)

const memberSurveysTable = "member_surveys"

// MemberSurveyRepository mantém a projeção usada pelo diretório da rede
type MemberSurveyRepository struct {
	store Store
}

func NewMemberSurveyRepository(store Store) *MemberSurveyRepository {
	return &MemberSurveyRepository{store: store}
}

// FindByUser retorna a projeção do usuário, ou ErrNotFound
func (r *MemberSurveyRepository) FindByUser(ctx context.Context, userID string) (*entities.MemberSurvey, error) {
	rows, err := r.store.Select(ctx, memberSurveysTable, Query{
		Filters: []Filter{Eq("user_id", userID)},
		Limit:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar projeção: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	row := rows[0]
	p := &entities.MemberSurvey{
		ID:                      stringOf(row["id"]),
		UserID:                  stringOf(row["user_id"]),
		SurveyYear:              intOf(row["survey_year"]),
		FundName:                stringOf(row["fund_name"]),
		Website:                 stringOf(row["website"]),
		FundType:                stringOf(row["fund_type"]),
		PrimaryInvestmentRegion: stringOf(row["primary_investment_region"]),
		TypicalCheckSize:        stringOf(row["typical_check_size"]),
		AUM:                     stringOf(row["aum"]),
		InvestmentThesis:        stringOf(row["investment_thesis"]),
		SectorFocus:             stringList(row["sector_focus"]),
		StageFocus:              stringList(row["stage_focus"]),
		CompletedAt:             timeOf(row["completed_at"]),
		UpdatedAt:               timeOrZero(row["updated_at"]),
	}
	if v, ok := row["year_founded"]; ok && v != nil {
		n := intOf(v)
		p.YearFounded = &n
	}
	if v, ok := row["team_size"]; ok && v != nil {
		n := intOf(v)
		p.TeamSize = &n
	}
	return p, nil
}

// Upsert substitui a projeção do usuário (uma por user_id)
func (r *MemberSurveyRepository) Upsert(ctx context.Context, p *entities.MemberSurvey) error {
	if p.ID == "" {
		existing, err := r.FindByUser(ctx, p.UserID)
		switch {
		case err == nil:
			p.ID = existing.ID
		case IsNotFound(err):
			p.ID = uuid.NewString()
		default:
			return err
		}
	}

	row := Row{
		"id":                        p.ID,
		"user_id":                   p.UserID,
		"survey_year":               p.SurveyYear,
		"fund_name":                 p.FundName,
		"website":                   nullable(p.Website),
		"fund_type":                 p.FundType,
		"primary_investment_region": nullable(p.PrimaryInvestmentRegion),
		"year_founded":              intPtr(p.YearFounded),
		"team_size":                 intPtr(p.TeamSize),
		"typical_check_size":        nullable(p.TypicalCheckSize),
		"aum":                       nullable(p.AUM),
		"investment_thesis":         nullable(p.InvestmentThesis),
		"sector_focus":              jsonList(p.SectorFocus),
		"stage_focus":               jsonList(p.StageFocus),
		"completed_at":              p.CompletedAt,
		"updated_at":                p.UpdatedAt,
	}

	if err := r.store.Upsert(ctx, memberSurveysTable, row, "user_id"); err != nil {
		return fmt.Errorf("erro ao gravar projeção: %w", err)
	}
	return nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func intPtr(n *int) interface{} {
	if n == nil {
		return nil
	}
	return *n
}

func jsonList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return string(b)
}

func stringList(v interface{}) []string {
	switch l := v.(type) {
	case []interface{}:
		out := make([]string, 0, len(l))
		for _, item := range l {
			out = append(out, stringOf(item))
		}
		return out
	case []byte, string:
		out := []string{}
		if s := stringOf(l); s != "" {
			_ = json.Unmarshal([]byte(s), &out)
		}
		return out
	}
	return []string{}
}
