package bundling

import (
	"time"

	"github.com/google/uuid"

	"github.com/carelinkhq/carebundle/internal/bundling/cost"
	"github.com/carelinkhq/carebundle/internal/bundling/template"
	"github.com/carelinkhq/carebundle/internal/domain/profile"
	"github.com/carelinkhq/carebundle/internal/domain/scenario"
)

// Generation bounds. Requests may narrow them but defaults come from here.
const (
	DefaultMinScenarios = 3
	DefaultMaxScenarios = 5
)

// GenerateOptions control one generation run.
type GenerateOptions struct {
	MinScenarios int
	MaxScenarios int
	ReferenceCap float64
	Required     []scenario.Axis
	Excluded     []scenario.Axis
}

func (o GenerateOptions) normalized() GenerateOptions {
	if o.MinScenarios <= 0 {
		o.MinScenarios = DefaultMinScenarios
	}
	if o.MaxScenarios <= 0 {
		o.MaxScenarios = DefaultMaxScenarios
	}
	if o.MaxScenarios < o.MinScenarios {
		o.MaxScenarios = o.MinScenarios
	}
	if o.ReferenceCap <= 0 {
		o.ReferenceCap = cost.DefaultReferenceCap
	}
	return o
}

// Generator builds scenario bundles from a profile. It is stateless and
// deterministic: identical profiles and options yield identical bundles
// (IDs and timestamps aside).
type Generator struct {
	resolver  template.Resolver
	annotator *cost.Annotator
	now       func() time.Time
}

func NewGenerator(resolver template.Resolver, annotator *cost.Annotator) *Generator {
	return &Generator{resolver: resolver, annotator: annotator, now: time.Now}
}

// GenerateScenarios produces between MinScenarios and MaxScenarios bundles,
// one per selected axis, each validated and cost-annotated. Exactly one
// bundle is flagged recommended: the one matching the profile's dominant
// axis, or the balanced baseline.
func (g *Generator) GenerateScenarios(p *profile.NeedsProfile, opts GenerateOptions) []*scenario.Bundle {
	opts = opts.normalized()

	axes := SelectAxes(p, SelectOptions{
		MaxAxes:  opts.MaxScenarios,
		Required: opts.Required,
		Excluded: opts.Excluded,
	})
	axes = padAxes(axes, opts)

	bundles := make([]*scenario.Bundle, 0, len(axes))
	for _, axis := range axes {
		bundles = append(bundles, g.GenerateSingleScenario(p, axis, nil, opts))
	}

	markRecommended(bundles, DominantAxis(p))
	return bundles
}

// GenerateSingleScenario builds and annotates one bundle for the given axis.
// Secondary axes contribute their modifiers only for categories the primary
// axis leaves untouched.
func (g *Generator) GenerateSingleScenario(p *profile.NeedsProfile, axis scenario.Axis, secondary []scenario.Axis, opts GenerateOptions) *scenario.Bundle {
	opts = opts.normalized()

	lines := g.resolver.Resolve(p.EpisodeType, p.NeedsCluster)
	lines = applyAxis(lines, axis)
	for _, sec := range secondary {
		lines = applySecondary(lines, axis, sec)
	}

	b := &scenario.Bundle{
		ID:            uuid.New(),
		Axis:          axis,
		SecondaryAxes: secondary,
		ServiceLines:  lines,
		GeneratedAt:   g.now(),
	}

	res := ValidateScenario(b, p)
	b.Meta = scenario.Meta{
		Valid:    res.Valid,
		Warnings: res.Warnings,
		Errors:   res.Errors,
	}

	return g.annotator.AnnotateScenario(b, opts.ReferenceCap)
}

// applyAxis reweights template lines with the axis's category modifiers.
// Categories without a modifier keep their template defaults.
func applyAxis(lines []scenario.ServiceLine, axis scenario.Axis) []scenario.ServiceLine {
	mods := axis.Config().Modifiers
	out := make([]scenario.ServiceLine, len(lines))
	for i, l := range lines {
		if m, ok := mods[l.Category]; ok {
			l.WeeklyFrequency *= m.FrequencyMultiplier
			l.Priority = m.Priority
			if m.DeliveryMode != "" {
				l.DeliveryMode = m.DeliveryMode
			}
		}
		out[i] = l
	}
	return out
}

func applySecondary(lines []scenario.ServiceLine, primary, secondary scenario.Axis) []scenario.ServiceLine {
	primaryMods := primary.Config().Modifiers
	mods := secondary.Config().Modifiers
	out := make([]scenario.ServiceLine, len(lines))
	for i, l := range lines {
		if _, claimed := primaryMods[l.Category]; !claimed {
			if m, ok := mods[l.Category]; ok {
				l.WeeklyFrequency *= m.FrequencyMultiplier
				l.Priority = m.Priority
				if m.DeliveryMode != "" {
					l.DeliveryMode = m.DeliveryMode
				}
			}
		}
		out[i] = l
	}
	return out
}

// padAxes extends the axis list to MinScenarios by walking the static
// priority order, so thin profiles still yield a full comparison set.
func padAxes(axes []scenario.Axis, opts GenerateOptions) []scenario.Axis {
	if len(axes) >= opts.MinScenarios {
		return axes
	}
	excluded := make(map[scenario.Axis]bool, len(opts.Excluded))
	for _, a := range opts.Excluded {
		excluded[a] = true
	}
	chosen := make(map[scenario.Axis]bool, len(axes))
	for _, a := range axes {
		chosen[a] = true
	}
	for _, a := range scenario.AllAxes {
		if len(axes) >= opts.MinScenarios {
			break
		}
		if !chosen[a] && !excluded[a] {
			axes = append(axes, a)
			chosen[a] = true
		}
	}
	return axes
}

// markRecommended flags exactly one bundle: the dominant axis when present,
// the balanced baseline otherwise, and failing both the first bundle.
func markRecommended(bundles []*scenario.Bundle, dominant scenario.Axis) {
	if len(bundles) == 0 {
		return
	}
	for _, b := range bundles {
		if b.Axis == dominant {
			b.Meta.IsRecommended = true
			return
		}
	}
	for _, b := range bundles {
		if b.Axis == scenario.AxisBalanced {
			b.Meta.IsRecommended = true
			return
		}
	}
	bundles[0].Meta.IsRecommended = true
}
