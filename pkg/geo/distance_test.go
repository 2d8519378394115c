package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paddlespot/paddlespot/pkg/geo"
)

func TestDistanceKm_Identity(t *testing.T) {
	assert.Equal(t, 0.0, geo.DistanceKm(45.5, -73.57, 45.5, -73.57))
	assert.Equal(t, 0.0, geo.DistanceKm(0, 0, 0, 0))
}

func TestDistanceKm_KnownDistance(t *testing.T) {
	// Montreal to Quebec City is roughly 233 km as the crow flies.
	d := geo.DistanceKm(45.5017, -73.5673, 46.8139, -71.2080)
	assert.InDelta(t, 233, d, 3)
}

func TestDistanceKm_Symmetric(t *testing.T) {
	points := []geo.Point{
		{Lat: 45.50, Lon: -73.57},
		{Lat: 46.81, Lon: -71.21},
		{Lat: -33.87, Lon: 151.21},
		{Lat: 0, Lon: 179.9},
		{Lat: 0, Lon: -179.9},
	}

	for _, a := range points {
		for _, b := range points {
			assert.Equal(t, geo.DistanceKm(a.Lat, a.Lon, b.Lat, b.Lon), geo.DistanceKm(b.Lat, b.Lon, a.Lat, a.Lon))
		}
	}
}

func TestDistanceKm_TriangleInequality(t *testing.T) {
	a := geo.Point{Lat: 45.50, Lon: -73.57}
	b := geo.Point{Lat: 46.34, Lon: -72.54}
	c := geo.Point{Lat: 46.81, Lon: -71.21}

	assert.LessOrEqual(t, a.DistanceTo(c), a.DistanceTo(b)+b.DistanceTo(c)+1e-9)
	assert.LessOrEqual(t, a.DistanceTo(b), a.DistanceTo(c)+c.DistanceTo(b)+1e-9)
}

func TestDistanceKm_AntimeridianIsShort(t *testing.T) {
	d := geo.DistanceKm(0, 179.9, 0, -179.9)
	assert.InDelta(t, 22.2, d, 0.5)
}

func TestDecodeTrack(t *testing.T) {
	points, err := geo.DecodeTrack("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.InDelta(t, 38.5, points[0].Lat, 1e-5)
	assert.InDelta(t, -120.2, points[0].Lon, 1e-5)
	assert.InDelta(t, 40.7, points[1].Lat, 1e-5)
	assert.InDelta(t, -120.95, points[1].Lon, 1e-5)
	assert.InDelta(t, 43.252, points[2].Lat, 1e-5)
	assert.InDelta(t, -126.453, points[2].Lon, 1e-5)
}

func TestDecodeTrack_Empty(t *testing.T) {
	points, err := geo.DecodeTrack("")
	require.NoError(t, err)
	assert.Nil(t, points)
}

func TestDecodeTrack_Truncated(t *testing.T) {
	for _, encoded := range []string{"_p~iF", "_p~i"} {
		_, err := geo.DecodeTrack(encoded)
		assert.ErrorIs(t, err, geo.ErrMalformedTrack, encoded)
	}
}

func TestEncodeTrack_RoundTrip(t *testing.T) {
	track := []geo.Point{
		{Lat: 45.51, Lon: -73.58},
		{Lat: 45.515, Lon: -73.585},
		{Lat: 45.52, Lon: -73.57},
	}

	encoded := geo.EncodeTrack(track)
	decoded, err := geo.DecodeTrack(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, len(track))
	for i := range track {
		assert.InDelta(t, track[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, track[i].Lon, decoded[i].Lon, 1e-5)
	}
}

func TestPathLengthKm(t *testing.T) {
	assert.Equal(t, 0.0, geo.PathLengthKm(nil))
	assert.Equal(t, 0.0, geo.PathLengthKm([]geo.Point{{Lat: 45, Lon: -73}}))

	a := geo.Point{Lat: 45.50, Lon: -73.57}
	b := geo.Point{Lat: 45.51, Lon: -73.58}
	c := geo.Point{Lat: 45.52, Lon: -73.57}
	assert.InDelta(t, a.DistanceTo(b)+b.DistanceTo(c), geo.PathLengthKm([]geo.Point{a, b, c}), 1e-9)
}
