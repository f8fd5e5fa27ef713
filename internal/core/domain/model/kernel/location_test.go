package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

func TestNewLocation(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		wantErr   bool
	}{
		{
			name:      "valid location",
			latitude:  40.7128,
			longitude: -74.0060,
			wantErr:   false,
		},
		{
			name:      "valid location at min bounds",
			latitude:  kernel.LocationMinLatitude,
			longitude: kernel.LocationMinLongitude,
			wantErr:   false,
		},
		{
			name:      "valid location at max bounds",
			latitude:  kernel.LocationMaxLatitude,
			longitude: kernel.LocationMaxLongitude,
			wantErr:   false,
		},
		{
			name:      "invalid latitude too small",
			latitude:  -90.5,
			longitude: 0,
			wantErr:   true,
		},
		{
			name:      "invalid latitude too large",
			latitude:  90.5,
			longitude: 0,
			wantErr:   true,
		},
		{
			name:      "invalid longitude too small",
			latitude:  0,
			longitude: -180.5,
			wantErr:   true,
		},
		{
			name:      "invalid longitude too large",
			latitude:  0,
			longitude: 180.5,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := kernel.NewLocation(tt.latitude, tt.longitude)
			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				return
			}

			require.NoError(t, err)
			assert.InEpsilon(t, tt.latitude, loc.Latitude(), 1e-9, "latitude")
			assert.InEpsilon(t, tt.longitude, loc.Longitude(), 1e-9, "longitude")
		})
	}
}

func TestLocation_Validate(t *testing.T) {
	t.Run("constructed location is valid", func(t *testing.T) {
		loc, err := kernel.NewLocation(55.7558, 37.6173)
		require.NoError(t, err)
		require.NoError(t, loc.Validate())
	})

	t.Run("zero value location is invalid", func(t *testing.T) {
		var loc kernel.Location
		err := loc.Validate()
		require.Error(t, err)
		assert.Equal(t, kernel.ErrLocationIsNotConstructed, err)
	})
}

func TestLocation_IsEqual(t *testing.T) {
	a, err := kernel.NewLocation(10, 20)
	require.NoError(t, err)
	b, err := kernel.NewLocation(10, 20)
	require.NoError(t, err)
	c, err := kernel.NewLocation(10, 21)
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestLocation_String(t *testing.T) {
	loc, err := kernel.NewLocation(40.7128, -74.0060)
	require.NoError(t, err)
	assert.Equal(t, "Location(40.712800,-74.006000)", loc.String())
}
