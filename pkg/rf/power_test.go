package rf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBmRoundTrip(t *testing.T) {
	for dbm := -150.0; dbm <= 90; dbm += 7.5 {
		w, err := DBmToWatts(dbm)
		require.NoError(t, err)
		back, err := WattsToDBm(w)
		require.NoError(t, err)
		assert.InDelta(t, dbm, back, 1e-9)
	}
}

func TestConvertPower_30dBm(t *testing.T) {
	level, err := ConvertPower(FromDBm, 30, 50)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, level.Watts, 1e-12)
	assert.InDelta(t, 7.07, level.Vrms, 0.01)
	assert.Equal(t, 30.0, level.DBm)
}

func TestConvertPower_EntryPointsAgree(t *testing.T) {
	ref, err := ConvertPower(FromDBm, 13, 75)
	require.NoError(t, err)

	fromW, err := ConvertPower(FromWatts, ref.Watts, 75)
	require.NoError(t, err)
	fromV, err := ConvertPower(FromVrms, ref.Vrms, 75)
	require.NoError(t, err)

	for _, l := range []PowerLevel{fromW, fromV} {
		assert.InDelta(t, ref.DBm, l.DBm, 1e-9)
		assert.InEpsilon(t, ref.Watts, l.Watts, 1e-9)
		assert.InEpsilon(t, ref.Vrms, l.Vrms, 1e-9)
	}
}

func TestConvertPower_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		known PowerQuantity
		value float64
		z0    float64
	}{
		{"zero watts", FromWatts, 0, 50},
		{"negative watts", FromWatts, -1, 50},
		{"zero volts", FromVrms, 0, 50},
		{"negative volts", FromVrms, -1, 50},
		{"zero impedance", FromDBm, 0, 0},
		{"negative impedance", FromDBm, 0, -50},
		{"dBm underflows", FromDBm, -4000, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConvertPower(tt.known, tt.value, tt.z0)
			assert.ErrorIs(t, err, ErrOutOfDomain)
		})
	}

	_, err := ConvertPower("amps", 1, 50)
	assert.Error(t, err)
}

func TestVrmsToWatts_ZeroVoltage(t *testing.T) {
	w, err := VrmsToWatts(0, 50)
	require.NoError(t, err)
	assert.Equal(t, 0.0, w)
}

func TestPower_ExtremeMagnitudes(t *testing.T) {
	dbm, err := WattsToDBm(1e306)
	require.NoError(t, err)
	assert.InDelta(t, 3090, dbm, 1e-9)

	v, err := WattsToVrms(1e306, 1e4)
	require.NoError(t, err)
	assert.InDelta(t, 1e155, v, 1e142)

	tests := []struct {
		name string
		fn   func() (float64, error)
	}{
		{"volts squared overflow", func() (float64, error) { return VrmsToWatts(1e200, 50) }},
		{"vrms overflow", func() (float64, error) { return WattsToVrms(math.MaxFloat64, math.MaxFloat64) }},
		{"dBm overflow", func() (float64, error) { return DBmToWatts(4000) }},
		{"dBm underflow", func() (float64, error) { return DBmToWatts(-4000) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn()
			assert.ErrorIs(t, err, ErrOutOfDomain)
		})
	}

	_, err = ConvertPower(FromWatts, 1e306, 1e10)
	require.NoError(t, err)

	_, err = ConvertPower(FromDBm, -4000, 50)
	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "dbm", de.Param)
	assert.Equal(t, "outside the representable range", de.Reason)
}
