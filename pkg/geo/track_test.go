package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paddlespot/paddlespot/pkg/geo"
)

func TestDecodeTrack_KnownPolyline(t *testing.T) {
	// Reference example from the encoded polyline format documentation.
	points, err := geo.DecodeTrack("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.InDelta(t, 38.5, points[0].Lat, 1e-9)
	assert.InDelta(t, -120.2, points[0].Lon, 1e-9)
	assert.InDelta(t, 40.7, points[1].Lat, 1e-9)
	assert.InDelta(t, -120.95, points[1].Lon, 1e-9)
	assert.InDelta(t, 43.252, points[2].Lat, 1e-9)
	assert.InDelta(t, -126.453, points[2].Lon, 1e-9)
}

func TestEncodeTrack_KnownPolyline(t *testing.T) {
	encoded := geo.EncodeTrack([]geo.Point{
		{Lat: 38.5, Lon: -120.2},
		{Lat: 40.7, Lon: -120.95},
		{Lat: 43.252, Lon: -126.453},
	})
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", encoded)
}

func TestTrack_Empty(t *testing.T) {
	points, err := geo.DecodeTrack("")
	require.NoError(t, err)
	assert.Empty(t, points)
	assert.Equal(t, "", geo.EncodeTrack(nil))
	assert.Zero(t, geo.PathLengthKm(nil))
}

func TestTrack_DecodeTruncated(t *testing.T) {
	_, err := geo.DecodeTrack("_p~iF~ps|U_ulL")
	assert.ErrorIs(t, err, geo.ErrMalformedTrack)

	_, err = geo.DecodeTrack("_p~i")
	assert.ErrorIs(t, err, geo.ErrMalformedTrack)
}

func TestTrack_PathLengthKm(t *testing.T) {
	// Lac-Beauport shoreline loop, roughly 1.1 km each leg.
	track := []geo.Point{
		{Lat: 46.9620, Lon: -71.2930},
		{Lat: 46.9720, Lon: -71.2930},
		{Lat: 46.9720, Lon: -71.2790},
	}

	got := geo.PathLengthKm(track)
	want := track[0].DistanceTo(track[1]) + track[1].DistanceTo(track[2])
	assert.InDelta(t, want, got, 1e-9)
	assert.InDelta(t, 2.18, got, 0.1)

	decoded, err := geo.DecodeTrack(geo.EncodeTrack(track))
	require.NoError(t, err)
	assert.InDelta(t, got, geo.PathLengthKm(decoded), 0.01)
}
