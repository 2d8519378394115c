package recommend

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/paddlespot/paddlespot/internal/spot"
	"github.com/paddlespot/paddlespot/internal/telemetry"
	"github.com/paddlespot/paddlespot/internal/weather"
	"github.com/paddlespot/paddlespot/pkg/geo"
)

// DefaultConcurrency bounds in-flight weather lookups per pass.
const DefaultConcurrency = 8

// EngineConfig holds configuration for the recommendation engine.
type EngineConfig struct {
	Weather         WeatherSource
	Logger          zerolog.Logger
	Concurrency     int
	DefaultRadiusKm float64
	TopN            int // at most DefaultTopN
	Tracer          trace.Tracer
}

// Engine scores spots against a user context.
type Engine struct {
	weather         WeatherSource
	logger          zerolog.Logger
	concurrency     int
	defaultRadiusKm float64
	topN            int
	tracer          trace.Tracer
}

// NewEngine creates a new recommendation engine.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.DefaultRadiusKm <= 0 {
		cfg.DefaultRadiusKm = DefaultMaxDistanceKm
	}
	if cfg.TopN <= 0 || cfg.TopN > DefaultTopN {
		cfg.TopN = DefaultTopN
	}
	if cfg.Tracer == nil {
		cfg.Tracer = telemetry.Tracer("github.com/paddlespot/paddlespot/internal/recommend")
	}

	return &Engine{
		weather:         cfg.Weather,
		logger:          cfg.Logger,
		concurrency:     cfg.Concurrency,
		defaultRadiusKm: cfg.DefaultRadiusKm,
		topN:            cfg.TopN,
		tracer:          cfg.Tracer,
	}
}

// Recommend runs one scoring pass over spots. The spots slice is only read;
// each ScoredSpot points back into it.
//
// A nil user location yields an empty result with the mandatory warnings.
// A weather failure for one spot degrades that spot only. The only errors
// are ErrInvalidInput and the context error when ctx ends mid-pass.
func (e *Engine) Recommend(ctx context.Context, spots []spot.Spot, user UserContext) (*Result, error) {
	if err := e.validate(user); err != nil {
		return nil, err
	}

	result := &Result{
		ScoredSpots:             []ScoredSpot{},
		TopRecommendations:      []ScoredSpot{},
		MandatorySafetyWarnings: MandatorySafetyWarnings(),
	}
	if user.Location == nil {
		return result, nil
	}

	radius := user.MaxDistanceKm
	if radius == 0 {
		radius = e.defaultRadiusKm
	}

	ctx, span := e.tracer.Start(ctx, "recommend.Recommend",
		trace.WithAttributes(
			attribute.String("recommend.skill_level", string(user.SkillLevel)),
			attribute.Float64("recommend.max_distance_km", radius),
			attribute.Int("recommend.candidates", len(spots)),
		),
	)
	defer span.End()

	candidates := e.gate(spots, *user.Location, radius)
	observations, err := e.lookupWeather(ctx, candidates)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	scored := make([]ScoredSpot, len(candidates))
	unavailable := 0
	for i, c := range candidates {
		if observations[i] == nil {
			unavailable++
		}
		scored[i] = evaluate(c, observations[i], user)
	}

	slices.SortStableFunc(scored, func(a, b ScoredSpot) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	result.ScoredSpots = scored

	for _, s := range scored {
		if len(result.TopRecommendations) == e.topN {
			break
		}
		if !s.Eliminated {
			result.TopRecommendations = append(result.TopRecommendations, s)
		}
	}

	span.SetAttributes(
		attribute.Int("recommend.in_radius", len(scored)),
		attribute.Int("recommend.eliminated", len(scored)-countSurvivors(scored)),
		attribute.Int("recommend.weather_unavailable", unavailable),
	)

	e.logger.Debug().
		Str("skill_level", string(user.SkillLevel)).
		Int("candidates", len(spots)).
		Int("in_radius", len(scored)).
		Int("recommended", len(result.TopRecommendations)).
		Int("weather_unavailable", unavailable).
		Msg("recommendation pass complete")

	return result, nil
}

func (e *Engine) validate(user UserContext) error {
	if !user.SkillLevel.Valid() {
		return fmt.Errorf("%w: unknown skill level %q", ErrInvalidInput, user.SkillLevel)
	}
	if user.PreferredWaterType != "" && !user.PreferredWaterType.Valid() {
		return fmt.Errorf("%w: unknown water type %q", ErrInvalidInput, user.PreferredWaterType)
	}
	if user.MaxDistanceKm < 0 {
		return fmt.Errorf("%w: negative search radius", ErrInvalidInput)
	}
	return nil
}

type candidate struct {
	spot       *spot.Spot
	distanceKm float64
}

// gate keeps spots within radius, in input order.
func (e *Engine) gate(spots []spot.Spot, from geo.Point, radius float64) []candidate {
	out := make([]candidate, 0, len(spots))
	for i := range spots {
		s := &spots[i]
		d := from.DistanceTo(s.Point())
		if d > radius {
			continue
		}
		out = append(out, candidate{spot: s, distanceKm: d})
	}
	return out
}

// lookupWeather fetches weather for each candidate once, concurrently.
// A failed lookup leaves a nil entry. The only error is ctx ending.
func (e *Engine) lookupWeather(ctx context.Context, candidates []candidate) ([]*weather.Observation, error) {
	out := make([]*weather.Observation, len(candidates))
	if e.weather == nil {
		return out, ctx.Err()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, c := range candidates {
		g.Go(func() error {
			obs, err := e.weather.GetCurrentWeather(gctx, c.spot.Latitude, c.spot.Longitude)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				e.logger.Warn().
					Err(err).
					Str("spot_id", c.spot.ID).
					Msg("weather unavailable for spot")
				return nil
			}
			out[i] = obs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, ctx.Err()
}

func evaluate(c candidate, obs *weather.Observation, user UserContext) ScoredSpot {
	facts := spotFacts{
		waterType:  Classify(c.spot, user.PreferredWaterType),
		hasRapids:  c.spot.HasRapids(),
		distanceKm: c.distanceKm,
	}

	scored := ScoredSpot{
		Spot:               c.spot,
		WaterType:          facts.waterType,
		DistanceKm:         c.distanceKm,
		Weather:            obs,
		EliminationReasons: []string{},
		Warnings:           []string{},
	}

	if reasons := eliminationReasons(c.spot, obs, user.SkillLevel); len(reasons) > 0 {
		scored.Eliminated = true
		scored.EliminationReasons = reasons
		return scored
	}

	safety, warnings := safetyScore(facts, obs)
	accessibility := accessibilityScore(facts.distanceKm)
	experience := experienceScore(facts, obs, user.SkillLevel)
	final := finalScore(safety, accessibility, experience)

	if final > PFDReminderThreshold {
		warnings = append(warnings, WarningWearPFD)
	}

	scored.Score = final
	scored.Breakdown = Breakdown{
		SafetyScore:        safety,
		AccessibilityScore: accessibility,
		ExperienceScore:    experience,
		FinalScore:         final,
	}
	if warnings != nil {
		scored.Warnings = warnings
	}
	return scored
}

func countSurvivors(scored []ScoredSpot) int {
	n := 0
	for _, s := range scored {
		if !s.Eliminated {
			n++
		}
	}
	return n
}
