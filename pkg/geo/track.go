package geo

import (
	"errors"
	"math"
)

// ErrMalformedTrack is returned when an encoded track ends mid-value.
var ErrMalformedTrack = errors.New("malformed encoded track")

// DecodeTrack decodes a Google-encoded polyline (precision 5) into points.
// GPS tracks recorded during a session are stored in this format.
func DecodeTrack(encoded string) ([]Point, error) {
	if encoded == "" {
		return nil, nil
	}

	var (
		points   []Point
		lat, lon int
		idx      int
	)

	for idx < len(encoded) {
		dLat, next, ok := readVarint(encoded, idx)
		if !ok {
			return nil, ErrMalformedTrack
		}
		dLon, next, ok := readVarint(encoded, next)
		if !ok {
			return nil, ErrMalformedTrack
		}
		idx = next

		lat += dLat
		lon += dLon
		points = append(points, Point{Lat: float64(lat) / 1e5, Lon: float64(lon) / 1e5})
	}

	return points, nil
}

// EncodeTrack encodes points as a Google polyline with precision 5.
func EncodeTrack(points []Point) string {
	if len(points) == 0 {
		return ""
	}

	buf := make([]byte, 0, len(points)*6)
	var prevLat, prevLon int
	for _, p := range points {
		lat := int(math.Round(p.Lat * 1e5))
		lon := int(math.Round(p.Lon * 1e5))
		buf = appendVarint(buf, lat-prevLat)
		buf = appendVarint(buf, lon-prevLon)
		prevLat, prevLon = lat, lon
	}
	return string(buf)
}

// PathLengthKm sums the Haversine distance between consecutive points.
func PathLengthKm(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += points[i-1].DistanceTo(points[i])
	}
	return total
}

// readVarint reads one zig-zag encoded value. ok is false if the input
// ends before the terminating chunk.
func readVarint(s string, idx int) (value, next int, ok bool) {
	var result, shift int
	for idx < len(s) {
		b := int(s[idx]) - 63
		idx++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			if result&1 != 0 {
				return ^(result >> 1), idx, true
			}
			return result >> 1, idx, true
		}
	}
	return 0, idx, false
}

func appendVarint(buf []byte, v int) []byte {
	if v < 0 {
		v = ^(v << 1)
	} else {
		v <<= 1
	}
	for v >= 0x20 {
		buf = append(buf, byte((v&0x1f)|0x20)+63)
		v >>= 5
	}
	return append(buf, byte(v)+63)
}
