package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carelinkhq/carebundle/internal/bundling"
	"github.com/carelinkhq/carebundle/internal/config"
	"github.com/carelinkhq/carebundle/internal/domain/profile"
	"github.com/carelinkhq/carebundle/internal/domain/scenario"
	"github.com/carelinkhq/carebundle/pkg/metrics"
)

// ScenarioService generates and compares care scenario bundles. It builds
// (or fetches) the needs profile first, then delegates to the stateless
// generator.
type ScenarioService struct {
	profiles  *ProfileService
	generator *bundling.Generator
	collector *metrics.Collector
	log       *zap.Logger
	cfg       config.BundlingConfig
}

func NewScenarioService(
	profiles *ProfileService,
	generator *bundling.Generator,
	collector *metrics.Collector,
	log *zap.Logger,
	cfg config.BundlingConfig,
) *ScenarioService {
	return &ScenarioService{
		profiles:  profiles,
		generator: generator,
		collector: collector,
		log:       log,
		cfg:       cfg,
	}
}

// GenerateRequest narrows the configured generation defaults for one call.
type GenerateRequest struct {
	Build        BuildOptions
	MaxScenarios int
	ReferenceCap float64
	Required     []scenario.Axis
	Excluded     []scenario.Axis
}

// GenerateResult pairs the bundles with the profile they were derived from,
// so callers can show provenance without a second profile fetch.
type GenerateResult struct {
	Profile *profile.NeedsProfile
	Bundles []*scenario.Bundle
}

// Axes returns the scenario axes that apply to the patient's current
// profile, in selection priority order.
func (s *ScenarioService) Axes(ctx context.Context, patientID uuid.UUID, opts BuildOptions) ([]scenario.Axis, error) {
	p, err := s.profiles.BuildProfile(ctx, patientID, opts)
	if err != nil {
		return nil, err
	}
	return bundling.SelectAxes(p, bundling.SelectOptions{MaxAxes: s.cfg.MaxAxes}), nil
}

// GenerateScenarios builds the profile and produces the comparison set of
// bundles. Invalid bundles are returned with their errors attached, never
// silently dropped.
func (s *ScenarioService) GenerateScenarios(ctx context.Context, patientID uuid.UUID, req GenerateRequest) (*GenerateResult, error) {
	if err := validateAxes(req.Required, req.Excluded); err != nil {
		return nil, err
	}

	p, err := s.profiles.BuildProfile(ctx, patientID, req.Build)
	if err != nil {
		return nil, err
	}

	opts := bundling.GenerateOptions{
		MinScenarios: s.cfg.MinScenarios,
		MaxScenarios: req.MaxScenarios,
		ReferenceCap: req.ReferenceCap,
		Required:     req.Required,
		Excluded:     req.Excluded,
	}
	if opts.MaxScenarios <= 0 {
		opts.MaxScenarios = s.cfg.MaxScenarios
	}
	if opts.ReferenceCap <= 0 {
		opts.ReferenceCap = s.cfg.ReferenceCap
	}

	bundles := s.generator.GenerateScenarios(p, opts)

	for _, b := range bundles {
		s.collector.ScenariosGeneratedTotal.Inc()
		if !b.Meta.Valid {
			s.collector.ScenarioValidationFailures.Inc()
			s.log.Warn("generated scenario failed validation",
				zap.String("patient_id", patientID.String()),
				zap.String("axis", string(b.Axis)),
				zap.Strings("errors", b.Meta.Errors),
			)
		}
	}

	return &GenerateResult{Profile: p, Bundles: bundles}, nil
}

// Compare diffs two bundles from the same generation run.
func (s *ScenarioService) Compare(a, b *scenario.Bundle) *scenario.Diff {
	return bundling.CompareScenarios(a, b)
}

func validateAxes(required, excluded []scenario.Axis) error {
	var errs []string
	for _, a := range required {
		if !a.IsValid() {
			errs = append(errs, "unknown required axis: "+string(a))
		}
	}
	excludedSet := make(map[scenario.Axis]bool, len(excluded))
	for _, a := range excluded {
		if !a.IsValid() {
			errs = append(errs, "unknown excluded axis: "+string(a))
		}
		excludedSet[a] = true
	}
	for _, a := range required {
		if excludedSet[a] {
			errs = append(errs, "axis both required and excluded: "+string(a))
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
