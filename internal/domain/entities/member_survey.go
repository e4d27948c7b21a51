package entities

import "time"

// MemberSurvey é a projeção desnormalizada usada pelo diretório da rede.
// Sempre reflete a última pesquisa enviada pelo usuário.
type MemberSurvey struct {
	ID                      string     `json:"id"`
	UserID                  string     `json:"user_id"`
	SurveyYear              int        `json:"survey_year"`
	FundName                string     `json:"fund_name"`
	Website                 string     `json:"website,omitempty"`
	FundType                string     `json:"fund_type"`
	PrimaryInvestmentRegion string     `json:"primary_investment_region,omitempty"`
	YearFounded             *int       `json:"year_founded,omitempty"`
	TeamSize                *int       `json:"team_size,omitempty"`
	TypicalCheckSize        string     `json:"typical_check_size,omitempty"`
	AUM                     string     `json:"aum,omitempty"`
	InvestmentThesis        string     `json:"investment_thesis,omitempty"`
	SectorFocus             []string   `json:"sector_focus"`
	StageFocus              []string   `json:"stage_focus"`
	CompletedAt             *time.Time `json:"completed_at,omitempty"`
	UpdatedAt               time.Time  `json:"updated_at"`
}
