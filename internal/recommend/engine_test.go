package recommend_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paddlespot/paddlespot/internal/recommend"
	"github.com/paddlespot/paddlespot/internal/spot"
	"github.com/paddlespot/paddlespot/internal/weather"
	"github.com/paddlespot/paddlespot/pkg/geo"
)

// fakeWeather returns a fixed observation per coordinate, or def.
type fakeWeather struct {
	byCoord map[string]*weather.Observation
	failing map[string]bool
	def     *weather.Observation
	calls   atomic.Int32
}

func key(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lon)
}

func (f *fakeWeather) GetCurrentWeather(_ context.Context, lat, lon float64) (*weather.Observation, error) {
	f.calls.Add(1)
	k := key(lat, lon)
	if f.failing[k] {
		return nil, weather.ErrProviderUnavailable
	}
	if obs, ok := f.byCoord[k]; ok {
		copied := *obs
		return &copied, nil
	}
	copied := *f.def
	return &copied, nil
}

func obs(windKmh, tempC float64, cond weather.Condition) *weather.Observation {
	return &weather.Observation{WindSpeed: windKmh, Temperature: tempC, Condition: cond}
}

var montreal = geo.Point{Lat: 45.50, Lon: -73.57}

func newEngine(w recommend.WeatherSource) *recommend.Engine {
	return recommend.NewEngine(recommend.EngineConfig{
		Weather: w,
		Logger:  zerolog.Nop(),
	})
}

func calmLake() spot.Spot {
	return spot.Spot{ID: "calm", Name: "Lac Calme", Latitude: 45.51, Longitude: -73.58}
}

func TestRecommend_CalmLakeBeginner(t *testing.T) {
	w := &fakeWeather{def: obs(5.5, 22, weather.ConditionSunny)}
	spots := []spot.Spot{calmLake()}

	res, err := newEngine(w).Recommend(context.Background(), spots, recommend.UserContext{
		Location:   &montreal,
		SkillLevel: recommend.SkillBeginner,
	})
	require.NoError(t, err)
	require.Len(t, res.ScoredSpots, 1)

	s := res.ScoredSpots[0]
	assert.False(t, s.Eliminated)
	assert.Empty(t, s.EliminationReasons)
	assert.Equal(t, recommend.WaterLake, s.WaterType)
	assert.Same(t, &spots[0], s.Spot)
	assert.InDelta(t, 100, s.Breakdown.SafetyScore, 1e-9)
	assert.InDelta(t, 100, s.Breakdown.AccessibilityScore, 1e-9)
	assert.InDelta(t, 100, s.Breakdown.ExperienceScore, 1e-9)
	assert.InDelta(t, 100, s.Score, 1e-9)
	assert.Equal(t, s.Score, s.Breakdown.FinalScore)
	assert.Contains(t, s.Warnings, recommend.WarningWearPFD)

	require.Len(t, res.TopRecommendations, 1)
	assert.Len(t, res.MandatorySafetyWarnings, 5)
}

func TestRecommend_ThunderstormVetoesEverySkill(t *testing.T) {
	w := &fakeWeather{def: obs(3, 25, weather.ConditionStormy)}
	spots := []spot.Spot{calmLake()}

	for _, skill := range []recommend.SkillLevel{
		recommend.SkillBeginner, recommend.SkillIntermediate, recommend.SkillAdvanced, recommend.SkillExpert,
	} {
		t.Run(string(skill), func(t *testing.T) {
			res, err := newEngine(w).Recommend(context.Background(), spots, recommend.UserContext{
				Location:   &montreal,
				SkillLevel: skill,
			})
			require.NoError(t, err)
			require.Len(t, res.ScoredSpots, 1)

			s := res.ScoredSpots[0]
			assert.True(t, s.Eliminated)
			assert.Zero(t, s.Score)
			require.Len(t, s.EliminationReasons, 1)
			assert.Contains(t, s.EliminationReasons[0], "Thunderstorm")
			assert.Empty(t, res.TopRecommendations)
		})
	}
}

func TestRecommend_AbsoluteWindCeiling(t *testing.T) {
	w := &fakeWeather{def: obs(40, 25, weather.ConditionSunny)}
	spots := []spot.Spot{calmLake()}

	for _, skill := range []recommend.SkillLevel{recommend.SkillAdvanced, recommend.SkillExpert} {
		res, err := newEngine(w).Recommend(context.Background(), spots, recommend.UserContext{
			Location:   &montreal,
			SkillLevel: skill,
		})
		require.NoError(t, err)
		assert.True(t, res.ScoredSpots[0].Eliminated, skill)
		assert.Len(t, res.ScoredSpots[0].EliminationReasons, 1, skill)
	}

	res, err := newEngine(w).Recommend(context.Background(), spots, recommend.UserContext{
		Location:   &montreal,
		SkillLevel: recommend.SkillBeginner,
	})
	require.NoError(t, err)
	assert.True(t, res.ScoredSpots[0].Eliminated)
	assert.Len(t, res.ScoredSpots[0].EliminationReasons, 2, "skill and absolute limits both reported")
}

func TestRecommend_BeginnerWindMonotonic(t *testing.T) {
	spots := []spot.Spot{calmLake()}
	user := recommend.UserContext{Location: &montreal, SkillLevel: recommend.SkillBeginner}

	for _, wind := range []float64{0, 10, 20, 22} {
		res, err := newEngine(&fakeWeather{def: obs(wind, 22, weather.ConditionSunny)}).Recommend(context.Background(), spots, user)
		require.NoError(t, err)
		assert.False(t, res.ScoredSpots[0].Eliminated, "wind %v", wind)
	}
	for _, wind := range []float64{22.5, 25, 30} {
		res, err := newEngine(&fakeWeather{def: obs(wind, 22, weather.ConditionSunny)}).Recommend(context.Background(), spots, user)
		require.NoError(t, err)
		assert.True(t, res.ScoredSpots[0].Eliminated, "wind %v", wind)
	}

	// Advanced paddlers keep the spot in the same wind.
	user.SkillLevel = recommend.SkillAdvanced
	res, err := newEngine(&fakeWeather{def: obs(30, 22, weather.ConditionSunny)}).Recommend(context.Background(), spots, user)
	require.NoError(t, err)
	assert.False(t, res.ScoredSpots[0].Eliminated)
	assert.InDelta(t, 25*0.4+100*0.1+100*0.3+100*0.2, res.ScoredSpots[0].Breakdown.SafetyScore, 1e-9)
}

func TestRecommend_DistanceGate(t *testing.T) {
	w := &fakeWeather{def: obs(5, 22, weather.ConditionSunny)}

	// About 150 km north of the user.
	far := spot.Spot{ID: "far", Name: "Lac Lointain", Latitude: 45.50 + 150/111.195, Longitude: -73.57}
	near := calmLake()
	spots := []spot.Spot{far, near}
	require.InDelta(t, 150, geo.DistanceKm(montreal.Lat, montreal.Lon, far.Latitude, far.Longitude), 0.5)

	res, err := newEngine(w).Recommend(context.Background(), spots, recommend.UserContext{
		Location:   &montreal,
		SkillLevel: recommend.SkillBeginner,
	})
	require.NoError(t, err)
	require.Len(t, res.ScoredSpots, 1)
	assert.Equal(t, "calm", res.ScoredSpots[0].Spot.ID)
	assert.Equal(t, int32(1), w.calls.Load(), "no lookup for gated spots")

	res, err = newEngine(w).Recommend(context.Background(), spots, recommend.UserContext{
		Location:      &montreal,
		SkillLevel:    recommend.SkillBeginner,
		MaxDistanceKm: 200,
	})
	require.NoError(t, err)
	require.Len(t, res.ScoredSpots, 2)
	assert.InDelta(t, 15, res.ScoredSpots[1].Breakdown.AccessibilityScore, 0.1)
}

func TestRecommend_MissingLocation(t *testing.T) {
	w := &fakeWeather{def: obs(5, 22, weather.ConditionSunny)}

	res, err := newEngine(w).Recommend(context.Background(), []spot.Spot{calmLake()}, recommend.UserContext{
		SkillLevel: recommend.SkillBeginner,
	})
	require.NoError(t, err)
	assert.NotNil(t, res.ScoredSpots)
	assert.Empty(t, res.ScoredSpots)
	assert.Empty(t, res.TopRecommendations)
	assert.Equal(t, recommend.MandatorySafetyWarnings(), res.MandatorySafetyWarnings)
	assert.Zero(t, w.calls.Load())
}

func TestRecommend_EmptySpots(t *testing.T) {
	res, err := newEngine(&fakeWeather{}).Recommend(context.Background(), nil, recommend.UserContext{
		Location:   &montreal,
		SkillLevel: recommend.SkillExpert,
	})
	require.NoError(t, err)
	assert.Empty(t, res.ScoredSpots)
	assert.Len(t, res.MandatorySafetyWarnings, 5)
}

func TestRecommend_InvalidInput(t *testing.T) {
	engine := newEngine(&fakeWeather{})

	tests := []struct {
		name string
		user recommend.UserContext
	}{
		{"unknown skill", recommend.UserContext{Location: &montreal, SkillLevel: "pro"}},
		{"empty skill", recommend.UserContext{Location: &montreal}},
		{"unknown water type", recommend.UserContext{Location: &montreal, SkillLevel: recommend.SkillBeginner, PreferredWaterType: "pond"}},
		{"negative radius", recommend.UserContext{Location: &montreal, SkillLevel: recommend.SkillBeginner, MaxDistanceKm: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Recommend(context.Background(), nil, tt.user)
			assert.ErrorIs(t, err, recommend.ErrInvalidInput)
		})
	}
}

func TestRecommend_ProviderFailureIsolated(t *testing.T) {
	a := spot.Spot{ID: "a", Name: "Lac A", Latitude: 45.52, Longitude: -73.57}
	b := spot.Spot{ID: "b", Name: "Lac B", Latitude: 45.53, Longitude: -73.57}
	w := &fakeWeather{
		def:     obs(3, 22, weather.ConditionSunny),
		failing: map[string]bool{key(b.Latitude, b.Longitude): true},
	}

	res, err := newEngine(w).Recommend(context.Background(), []spot.Spot{a, b}, recommend.UserContext{
		Location:   &montreal,
		SkillLevel: recommend.SkillBeginner,
	})
	require.NoError(t, err)
	require.Len(t, res.ScoredSpots, 2)
	assert.Equal(t, int32(2), w.calls.Load(), "one lookup per spot, no retry")

	assert.Equal(t, "a", res.ScoredSpots[0].Spot.ID)
	degraded := res.ScoredSpots[1]
	assert.Equal(t, "b", degraded.Spot.ID)
	assert.False(t, degraded.Eliminated)
	assert.Nil(t, degraded.Weather)
	assert.Equal(t, recommend.UnavailableScore, degraded.Breakdown.SafetyScore)
	assert.Equal(t, recommend.UnavailableScore, degraded.Breakdown.ExperienceScore)
	assert.Equal(t, recommend.WarningWeatherUnavailable, degraded.Warnings[0])
}

func TestRecommend_NoWeatherSourceKeepsHazardRules(t *testing.T) {
	dam := spot.Spot{ID: "dam", Name: "Barrage", Latitude: 45.52, Longitude: -73.57,
		Hazards: &spot.Hazards{LowHeadDam: true}}

	res, err := newEngine(nil).Recommend(context.Background(), []spot.Spot{dam, calmLake()}, recommend.UserContext{
		Location:   &montreal,
		SkillLevel: recommend.SkillExpert,
	})
	require.NoError(t, err)
	require.Len(t, res.ScoredSpots, 2)
	assert.Equal(t, "calm", res.ScoredSpots[0].Spot.ID)
	assert.True(t, res.ScoredSpots[1].Eliminated)
	assert.Contains(t, res.ScoredSpots[1].EliminationReasons[0], "Low-head dam")
}

func TestRecommend_Hazards(t *testing.T) {
	w := &fakeWeather{def: obs(3, 22, weather.ConditionSunny)}
	spots := []spot.Spot{
		{ID: "r2", Name: "Rivière douce", Latitude: 45.52, Longitude: -73.57,
			Hazards: &spot.Hazards{Rapids: true, RapidsClass: "R2"}},
		{ID: "r3", Name: "Rivière vive", Latitude: 45.53, Longitude: -73.57,
			Hazards: &spot.Hazards{Rapids: true, RapidsClass: "R3"}},
		{ID: "both", Name: "Rivière du moulin", Latitude: 45.54, Longitude: -73.57,
			Hazards: &spot.Hazards{Rapids: true, RapidsClass: "R5", LowHeadDam: true}},
	}

	res, err := newEngine(w).Recommend(context.Background(), spots, recommend.UserContext{
		Location:   &montreal,
		SkillLevel: recommend.SkillExpert,
	})
	require.NoError(t, err)
	require.Len(t, res.ScoredSpots, 3)

	byID := map[string]recommend.ScoredSpot{}
	for _, s := range res.ScoredSpots {
		byID[s.Spot.ID] = s
	}

	r2 := byID["r2"]
	assert.False(t, r2.Eliminated)
	assert.Equal(t, recommend.WaterRiver, r2.WaterType)
	assert.Contains(t, r2.Warnings, "River with moderate current. Requires experience.")
	assert.InDelta(t, 100*0.4+100*0.1+100*0.3+70*0.2, r2.Breakdown.SafetyScore, 1e-9)
	assert.Equal(t, 90.0, r2.Breakdown.ExperienceScore)

	assert.True(t, byID["r3"].Eliminated)
	assert.Len(t, byID["both"].EliminationReasons, 2)
}

func TestRecommend_PreferenceRelabelsAllSpots(t *testing.T) {
	w := &fakeWeather{def: obs(3, 22, weather.ConditionSunny)}
	spots := []spot.Spot{
		calmLake(),
		{ID: "river", Name: "Rivière des Prairies", Latitude: 45.52, Longitude: -73.57},
	}

	res, err := newEngine(w).Recommend(context.Background(), spots, recommend.UserContext{
		Location:           &montreal,
		SkillLevel:         recommend.SkillIntermediate,
		PreferredWaterType: recommend.WaterOcean,
	})
	require.NoError(t, err)
	require.Len(t, res.ScoredSpots, 2)
	for _, s := range res.ScoredSpots {
		assert.Equal(t, recommend.WaterOcean, s.WaterType)
		assert.Contains(t, s.Warnings, "Open sea. Watch out for tides and waves.")
		assert.Equal(t, 50.0, s.Breakdown.ExperienceScore)
	}

	res, err = newEngine(w).Recommend(context.Background(), spots, recommend.UserContext{
		Location:           &montreal,
		SkillLevel:         recommend.SkillIntermediate,
		PreferredWaterType: recommend.WaterCalm,
	})
	require.NoError(t, err)
	for _, s := range res.ScoredSpots {
		assert.Equal(t, recommend.WaterLake, s.WaterType)
	}
}

func TestRecommend_TopRecommendationsOrderedSubsequence(t *testing.T) {
	w := &fakeWeather{
		def:     obs(3, 22, weather.ConditionSunny),
		byCoord: map[string]*weather.Observation{},
	}

	var spots []spot.Spot
	for i := range 9 {
		s := spot.Spot{ID: fmt.Sprintf("s%d", i), Name: fmt.Sprintf("Lac %d", i),
			Latitude: 45.50 + float64(i)*0.1, Longitude: -73.57}
		spots = append(spots, s)
		if i%3 == 0 {
			w.byCoord[key(s.Latitude, s.Longitude)] = obs(3, 22, weather.ConditionStormy)
		}
	}

	res, err := newEngine(w).Recommend(context.Background(), spots, recommend.UserContext{
		Location:   &montreal,
		SkillLevel: recommend.SkillBeginner,
	})
	require.NoError(t, err)
	require.Len(t, res.ScoredSpots, 9)
	require.Len(t, res.TopRecommendations, 5)

	for i := 1; i < len(res.ScoredSpots); i++ {
		assert.GreaterOrEqual(t, res.ScoredSpots[i-1].Score, res.ScoredSpots[i].Score)
	}
	for _, s := range res.ScoredSpots[6:] {
		assert.True(t, s.Eliminated)
	}

	// Subsequence check preserving relative order.
	j := 0
	for _, s := range res.ScoredSpots {
		if j < len(res.TopRecommendations) && s.Spot == res.TopRecommendations[j].Spot {
			j++
		}
	}
	assert.Equal(t, len(res.TopRecommendations), j)

	for _, s := range res.ScoredSpots {
		for _, v := range []float64{s.Score, s.Breakdown.SafetyScore, s.Breakdown.AccessibilityScore, s.Breakdown.ExperienceScore} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 100.0)
		}
	}
}

func TestRecommend_StableTies(t *testing.T) {
	w := &fakeWeather{def: obs(3, 22, weather.ConditionSunny)}
	spots := []spot.Spot{
		{ID: "first", Name: "Lac Un", Latitude: 45.51, Longitude: -73.57},
		{ID: "second", Name: "Lac Deux", Latitude: 45.49, Longitude: -73.57},
		{ID: "third", Name: "Lac Trois", Latitude: 45.50, Longitude: -73.56},
	}

	res, err := newEngine(w).Recommend(context.Background(), spots, recommend.UserContext{
		Location:   &montreal,
		SkillLevel: recommend.SkillBeginner,
	})
	require.NoError(t, err)

	ids := []string{res.ScoredSpots[0].Spot.ID, res.ScoredSpots[1].Spot.ID, res.ScoredSpots[2].Spot.ID}
	assert.Equal(t, []string{"first", "second", "third"}, ids)
}

func TestRecommend_Idempotent(t *testing.T) {
	w := &fakeWeather{def: obs(12, 12, weather.ConditionCloudy)}
	spots := []spot.Spot{
		calmLake(),
		{ID: "river", Name: "Rivière Rouge", Latitude: 45.60, Longitude: -73.70},
		{ID: "sea", Name: "Baie", Description: "Bord de mer", Latitude: 45.80, Longitude: -73.30},
	}
	user := recommend.UserContext{Location: &montreal, SkillLevel: recommend.SkillIntermediate}
	engine := newEngine(w)

	first, err := engine.Recommend(context.Background(), spots, user)
	require.NoError(t, err)
	second, err := engine.Recommend(context.Background(), spots, user)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRecommend_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newEngine(&fakeWeather{def: obs(3, 22, weather.ConditionSunny)}).Recommend(ctx, []spot.Spot{calmLake()}, recommend.UserContext{
		Location:   &montreal,
		SkillLevel: recommend.SkillBeginner,
	})
	assert.True(t, errors.Is(err, context.Canceled))
}

// cancellingWeather cancels the pass on its first call.
type cancellingWeather struct {
	cancel context.CancelFunc
}

func (c *cancellingWeather) GetCurrentWeather(ctx context.Context, _, _ float64) (*weather.Observation, error) {
	c.cancel()
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestRecommend_CancelledDuringLookup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	spots := []spot.Spot{
		calmLake(),
		{ID: "b", Name: "Lac B", Latitude: 45.53, Longitude: -73.57},
	}
	res, err := newEngine(&cancellingWeather{cancel: cancel}).Recommend(ctx, spots, recommend.UserContext{
		Location:   &montreal,
		SkillLevel: recommend.SkillBeginner,
	})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRecommend_ModerateWindColdOcean(t *testing.T) {
	// 16.67 km/h is 9 knots; 12°C air puts the water near 7°C.
	w := &fakeWeather{def: obs(16.67, 12, weather.ConditionCloudy)}
	sea := spot.Spot{ID: "sea", Name: "Plage de la mer", Latitude: 45.77, Longitude: -73.57}

	res, err := newEngine(w).Recommend(context.Background(), []spot.Spot{sea}, recommend.UserContext{
		Location:   &montreal,
		SkillLevel: recommend.SkillAdvanced,
	})
	require.NoError(t, err)
	require.Len(t, res.ScoredSpots, 1)

	s := res.ScoredSpots[0]
	assert.False(t, s.Eliminated)
	assert.Equal(t, recommend.WaterOcean, s.WaterType)
	assert.InDelta(t, 54, s.Breakdown.SafetyScore, 1e-9)
	assert.InDelta(t, 90, s.Breakdown.ExperienceScore, 1e-9)
	assert.InDelta(t, 74.97, s.Breakdown.AccessibilityScore, 0.05)
	assert.Less(t, s.Breakdown.FinalScore, recommend.PFDReminderThreshold)

	require.Len(t, s.Warnings, 3)
	assert.Contains(t, s.Warnings[0], "Moderate wind of 9.0 knots")
	assert.Contains(t, s.Warnings[1], "Estimated water temperature 7°C")
	assert.Equal(t, "Open sea. Watch out for tides and waves.", s.Warnings[2])
}

func TestRecommend_TopNCapped(t *testing.T) {
	var spots []spot.Spot
	for i := range 8 {
		spots = append(spots, spot.Spot{ID: fmt.Sprintf("s%d", i), Name: "Lac", Latitude: 45.50 + float64(i)*0.01, Longitude: -73.57})
	}
	engine := recommend.NewEngine(recommend.EngineConfig{
		Weather: &fakeWeather{def: obs(3, 22, weather.ConditionSunny)},
		Logger:  zerolog.Nop(),
		TopN:    20,
	})

	res, err := engine.Recommend(context.Background(), spots, recommend.UserContext{
		Location:   &montreal,
		SkillLevel: recommend.SkillBeginner,
	})
	require.NoError(t, err)
	assert.Len(t, res.TopRecommendations, recommend.DefaultTopN)
}
