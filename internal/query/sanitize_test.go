package query

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/player-records-service/internal/domain/players"
)

func nanValue() float64 { return math.NaN() }

func TestSanitizeFloat(t *testing.T) {
	assert.Nil(t, SanitizeFloat(nil))
	assert.Nil(t, SanitizeFloat(players.Float(math.NaN())))
	assert.Nil(t, SanitizeFloat(players.Float(math.Inf(1))))
	assert.Nil(t, SanitizeFloat(players.Float(math.Inf(-1))))

	v := SanitizeFloat(players.Float(198.12))
	require.NotNil(t, v)
	assert.Equal(t, 198.12, *v)
}

func TestSanitizeFloatIsIdempotent(t *testing.T) {
	for _, in := range []*float64{nil, players.Float(math.NaN()), players.Float(0), players.Float(-3.5)} {
		once := SanitizeFloat(in)
		assert.Equal(t, once, SanitizeFloat(once))
	}
}

func TestFlatRecordEncodesNaNHeightAsNull(t *testing.T) {
	r := row("Tall", "Unknown", "Team", 2023, "C")
	r.Height = players.Float(math.NaN())
	r.Weight = players.Float(math.Inf(1))
	r.Birthdate = nil

	raw, err := json.Marshal(FlatRecordFromRow(r))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, col := range players.Columns {
		assert.Contains(t, decoded, col)
	}
	assert.Nil(t, decoded["Height"])
	assert.Nil(t, decoded["Weight"])
	assert.Nil(t, decoded["Birthdate"])
	assert.Equal(t, "Tall", decoded["FirstName"])
	assert.Equal(t, float64(2023), decoded["Season"])
}
