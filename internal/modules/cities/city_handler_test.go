package cities

import (
	"testing"

	"freight-dispatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTitleCasesAndUppersState(t *testing.T) {
	city, err := Normalize("new hampton, ia", 43.06, -92.31)
	require.NoError(t, err)

	assert.Equal(t, "New Hampton", city.Name)
	assert.Equal(t, "IA", city.State)
	assert.Equal(t, "New Hampton, IA", city.FullName)
	assert.Equal(t, 43.06, city.Latitude)
}

func TestNormalizeRejectsUnsupportedStates(t *testing.T) {
	_, err := Normalize("Anchorage, AK", 61.21, -149.89)
	assert.ErrorIs(t, err, models.ErrStateNotServiced)

	_, err = Normalize("no comma here", 0, 0)
	assert.Error(t, err)
}

func TestIsStateAllowed(t *testing.T) {
	assert.True(t, IsStateAllowed("TX"))
	assert.True(t, IsStateAllowed("tx"), "state codes match regardless of casing")
	assert.True(t, IsStateAllowed("RI"))
	assert.False(t, IsStateAllowed("AK"))
	assert.False(t, IsStateAllowed("HI"))
	assert.False(t, IsStateAllowed("ZZ"))
}
