package survey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/entities"
)

func TestDeriveProjection(t *testing.T) {
	s := schema2024(t)
	rec, malformed := s.Normalize(map[string]interface{}{
		FieldVehicleName:       "Acacia Fund",
		FieldVehicleWebsites:   `["https://acacia.example","https://old.example"]`,
		FieldVehicleType:       "Closed-end fund",
		FieldThesis:            "Climate-smart agri SMEs",
		FieldMarketsOperated:   `{"Uganda":40,"Kenya":60}`,
		FieldSectorsAllocation: `{"Fintech":30,"Agriculture":70}`,
		FieldFundStage:         `["First close"]`,
		FieldLegalEntityFrom:   2019,
		FieldTeamSizeMax:       "6",
		FieldTicketSizeMin:     50000,
		FieldTicketSizeMax:     250000,
		FieldCapitalRaised:     1250000,
	})
	require.Empty(t, malformed)

	completed := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	now := completed.Add(time.Minute)
	p := DeriveProjection(entities.SurveyResponse{UserID: "u1", Year: 2024, Record: rec, CompletedAt: &completed}, now)

	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, 2024, p.SurveyYear)
	assert.Equal(t, "Acacia Fund", p.FundName)
	assert.Equal(t, "https://acacia.example", p.Website)
	assert.Equal(t, "Closed-end fund", p.FundType)
	assert.Equal(t, "Kenya, Uganda", p.PrimaryInvestmentRegion)
	require.NotNil(t, p.YearFounded)
	assert.Equal(t, 2019, *p.YearFounded)
	require.NotNil(t, p.TeamSize)
	assert.Equal(t, 6, *p.TeamSize)
	assert.Equal(t, "$50,000 - $250,000", p.TypicalCheckSize)
	assert.Equal(t, "$1,250,000", p.AUM)
	assert.Equal(t, []string{"Agriculture", "Fintech"}, p.SectorFocus)
	assert.Equal(t, []string{"First close"}, p.StageFocus)
	assert.Equal(t, &completed, p.CompletedAt)
	assert.Equal(t, now, p.UpdatedAt)
}

func TestDeriveProjection_Defaults(t *testing.T) {
	p := DeriveProjection(entities.SurveyResponse{UserID: "u2", Year: 2023, Record: entities.NewRecord(2023)}, time.Now())

	assert.Equal(t, "Unknown Fund", p.FundName)
	assert.Equal(t, "Unknown", p.FundType)
	assert.Empty(t, p.Website)
	assert.Empty(t, p.TypicalCheckSize)
	assert.Nil(t, p.YearFounded)
	assert.NotNil(t, p.SectorFocus)
	assert.NotNil(t, p.StageFocus)
}
