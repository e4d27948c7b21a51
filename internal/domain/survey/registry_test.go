package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Schema(t *testing.T) {
	reg := DefaultRegistry()

	assert.Equal(t, []int{2021, 2022, 2023, 2024}, reg.Years())

	s, err := reg.Schema(2024)
	require.NoError(t, err)
	assert.Equal(t, "survey_responses_2024", s.Table)

	_, ok := s.Field(FieldVehicleName)
	assert.True(t, ok)

	_, err = reg.Schema(2019)
	assert.ErrorIs(t, err, ErrUnknownYear)
}

func TestRegistry_SharedFieldsInEveryEdition(t *testing.T) {
	for _, s := range DefaultRegistry().Schemas() {
		for _, name := range []string{FieldMarketsOperated, FieldTicketSizeMin, FieldLegalDomicile, FieldLegalEntityTo} {
			_, ok := s.Field(name)
			assert.True(t, ok, "%d is missing %s", s.Year, name)
		}
		assert.Equal(t, []string{FieldMarketsOperated}, s.Capped)
	}
}
