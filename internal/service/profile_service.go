package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/carelinkhq/carebundle/internal/cache"
	"github.com/carelinkhq/carebundle/internal/config"
	"github.com/carelinkhq/carebundle/internal/deriver"
	"github.com/carelinkhq/carebundle/internal/domain/assessment"
	"github.com/carelinkhq/carebundle/internal/domain/family"
	"github.com/carelinkhq/carebundle/internal/domain/patient"
	"github.com/carelinkhq/carebundle/internal/domain/profile"
	"github.com/carelinkhq/carebundle/internal/domain/referral"
	"github.com/carelinkhq/carebundle/internal/mapper"
	"github.com/carelinkhq/carebundle/pkg/metrics"
)

// BuildOptions control one profile build. Zero values mean "use the
// configured defaults": CutoffDays 0 falls back to the configured window,
// and referral/family sources are included unless explicitly excluded.
type BuildOptions struct {
	ForceRefresh       bool
	CutoffDays         int
	ExcludeReferral    bool
	ExcludeFamilyInput bool
}

// ProfileService builds needs profiles by fusing every available source for
// a patient. A build never fails for missing sources: absence degrades
// confidence and completeness, not correctness. The only errors are an
// unknown patient and infrastructure failures.
type ProfileService struct {
	patients    patient.Repository
	assessments assessment.Repository
	referrals   referral.Repository
	familyInput family.Repository
	store       cache.ProfileCache
	collector   *metrics.Collector
	log         *zap.Logger
	cfg         config.BundlingConfig

	full     *mapper.FullMapper
	contact  *mapper.ContactMapper
	screener *mapper.ScreenerMapper
	refMap   *mapper.ReferralMapper

	// totalFields is the size of the full profile field space, the
	// denominator of the completeness metric.
	totalFields int

	// Optional single-flight: concurrent builds for the same cache key are
	// coalesced into one. Without it concurrent builders race and the last
	// writer wins, which is acceptable because builds are deterministic.
	singleFlight bool
	flights      singleflight.Group

	now func() time.Time
}

func NewProfileService(
	patients patient.Repository,
	assessments assessment.Repository,
	referrals referral.Repository,
	familyInput family.Repository,
	store cache.ProfileCache,
	collector *metrics.Collector,
	log *zap.Logger,
	cfg config.BundlingConfig,
	singleFlight bool,
) *ProfileService {
	s := &ProfileService{
		patients:     patients,
		assessments:  assessments,
		referrals:    referrals,
		familyInput:  familyInput,
		store:        store,
		collector:    collector,
		log:          log,
		cfg:          cfg,
		full:         mapper.NewFullMapper(),
		contact:      mapper.NewContactMapper(),
		screener:     mapper.NewScreenerMapper(),
		refMap:       mapper.NewReferralMapper(),
		singleFlight: singleFlight,
		now:          time.Now,
	}
	s.totalFields = countUniqueFields(
		s.full.PopulatableFields(),
		s.contact.PopulatableFields(),
		s.screener.PopulatableFields(),
		s.refMap.PopulatableFields(),
	)
	return s
}

// BuildProfile returns the needs profile for a patient, from cache when a
// fresh build is not forced. The profile is a value object: callers must not
// mutate it.
func (s *ProfileService) BuildProfile(ctx context.Context, patientID uuid.UUID, opts BuildOptions) (*profile.NeedsProfile, error) {
	if opts.CutoffDays <= 0 {
		opts.CutoffDays = s.cfg.AssessmentCutoffDays
	}

	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	key := cache.Key(patientID, opts.CutoffDays, !opts.ExcludeReferral)

	if !opts.ForceRefresh {
		if cached, ok, err := s.store.Get(ctx, key); err != nil {
			s.log.Warn("profile cache read failed, rebuilding", zap.Error(err))
		} else if ok {
			s.collector.ProfileCacheHits.Inc()
			return cached, nil
		} else {
			s.collector.ProfileCacheMisses.Inc()
		}

		if s.singleFlight {
			v, err, _ := s.flights.Do(key, func() (interface{}, error) {
				// Another builder may have finished while we queued.
				if cached, ok, err := s.store.Get(ctx, key); err == nil && ok {
					s.collector.ProfileCacheHits.Inc()
					return cached, nil
				}
				return s.buildAndStore(ctx, p, key, opts)
			})
			if err != nil {
				return nil, err
			}
			return v.(*profile.NeedsProfile), nil
		}
	}

	return s.buildAndStore(ctx, p, key, opts)
}

func (s *ProfileService) buildAndStore(ctx context.Context, p *patient.Patient, key string, opts BuildOptions) (*profile.NeedsProfile, error) {
	start := s.now()
	built, err := s.build(ctx, p, opts)
	if err != nil {
		return nil, err
	}
	s.collector.ProfileBuildDuration.Observe(s.now().Sub(start).Seconds())
	s.collector.ProfilesBuiltTotal.WithLabelValues(string(built.EpisodeType)).Inc()

	if err := s.store.Set(ctx, key, built); err != nil {
		s.log.Warn("profile cache write failed", zap.Error(err),
			zap.String("patient_id", p.ID.String()))
	}

	return built, nil
}

func (s *ProfileService) build(ctx context.Context, p *patient.Patient, opts BuildOptions) (*profile.NeedsProfile, error) {
	now := s.now()
	cutoff := now.AddDate(0, 0, -opts.CutoffDays)

	fullA, err := s.assessments.LatestByType(ctx, p.ID, assessment.TypeFull, cutoff)
	if err != nil {
		return nil, err
	}
	contactA, err := s.assessments.LatestByType(ctx, p.ID, assessment.TypeContact, cutoff)
	if err != nil {
		return nil, err
	}
	screenerA, err := s.assessments.LatestByType(ctx, p.ID, assessment.TypeScreener, cutoff)
	if err != nil {
		return nil, err
	}

	var ref *referral.Referral
	if !opts.ExcludeReferral {
		ref, err = s.referrals.Latest(ctx, p.ID, cutoff)
		if err != nil {
			return nil, err
		}
	}

	var fam *family.Input
	if !opts.ExcludeFamilyInput {
		fam, err = s.familyInput.Latest(ctx, p.ID, cutoff)
		if err != nil {
			return nil, err
		}
	}

	// Merge in strict priority order. The referral mapper sits last: it only
	// fills gaps no assessment covered. The behavioural screener is a
	// supplement, not an anchor: it contributes fields only alongside a
	// full assessment, contact assessment, or referral.
	hasFull := fullA != nil && fullA.HasPayload()
	hasContact := contactA != nil && contactA.HasPayload()
	hasScreener := screenerA != nil && screenerA.HasPayload()
	hasAnchor := hasFull || hasContact || ref != nil

	sources := make(map[profile.Source]profile.SourceAvailability)
	var ordered []mapper.Fields
	var weights []float64

	if hasFull {
		ordered = append(ordered, s.full.MapToProfileFields(fullA))
		weights = append(weights, s.full.ConfidenceWeight())
		sources[profile.SourceFullAssessment] = available(fullA.AssessedAt)
	} else {
		sources[profile.SourceFullAssessment] = profile.SourceAvailability{}
	}
	if hasContact {
		ordered = append(ordered, s.contact.MapToProfileFields(contactA))
		weights = append(weights, s.contact.ConfidenceWeight())
		sources[profile.SourceContactAssessment] = available(contactA.AssessedAt)
	} else {
		sources[profile.SourceContactAssessment] = profile.SourceAvailability{}
	}
	if hasScreener {
		sources[profile.SourceScreener] = available(screenerA.AssessedAt)
		if hasAnchor {
			ordered = append(ordered, s.screener.MapToProfileFields(screenerA))
			weights = append(weights, s.screener.ConfidenceWeight())
		}
	} else {
		sources[profile.SourceScreener] = profile.SourceAvailability{}
	}
	if ref != nil {
		ordered = append(ordered, s.refMap.MapToProfileFields(ref))
		weights = append(weights, s.refMap.ConfidenceWeight())
		sources[profile.SourceReferral] = available(ref.ReferralDate)
	} else {
		sources[profile.SourceReferral] = profile.SourceAvailability{}
	}
	if fam != nil {
		sources[profile.SourceFamilyInput] = available(fam.ReceivedAt)
	} else {
		sources[profile.SourceFamilyInput] = profile.SourceAvailability{}
	}

	fields := mapper.MergeFields(ordered...)

	var rug string
	if fullA != nil && fullA.Full != nil {
		rug = deriver.DeriveRUGCategory(fullA.Full)
	}

	episode, method := deriver.DeriveEpisodeType(deriver.EpisodeInput{
		Fields:      fields,
		Referral:    ref,
		RUGCategory: rug,
		Now:         now,
	})
	s.collector.EpisodeDerivationsTotal.WithLabelValues(string(method)).Inc()

	rehab := deriver.DeriveRehabPotential(deriver.RehabInput{
		Episode:       episode,
		EpisodeMethod: method,
		Fields:        fields,
		Referral:      ref,
	})

	cluster := deriver.DeriveNeedsCluster(fields, episode, rehab.HasPotential)

	confidence := 0.0
	if len(weights) > 0 {
		for _, w := range weights {
			confidence += w
		}
		confidence /= float64(len(weights))
	}
	completeness := float64(fields.CountPopulated()) / float64(s.totalFields)

	np := &profile.NeedsProfile{
		PatientID:        p.ID,
		BuiltAt:          now,
		CutoffWindowDays: opts.CutoffDays,

		ADLSupportLevel:       mapper.IntOr(fields.ADLSupportLevel, 0),
		IADLSupportLevel:      mapper.IntOr(fields.IADLSupportLevel, 0),
		MobilityComplexity:    mapper.IntOr(fields.MobilityComplexity, 0),
		CognitiveComplexity:   mapper.IntOr(fields.CognitiveComplexity, 0),
		BehaviouralComplexity: mapper.IntOr(fields.BehaviouralComplexity, 0),
		HealthInstability:     mapper.IntOr(fields.HealthInstability, 0),
		FallsRiskLevel:        mapper.IntOr(fields.FallsRiskLevel, 0),

		EpisodeType:         episode,
		EpisodeDerivedBy:    method,
		EpisodeConfidence:   method.Confidence(),
		RehabPotentialScore: rehab.Score,
		HasRehabPotential:   rehab.HasPotential,
		RehabFactors:        rehab.Factors,
		RUGCategory:         rug,
		NeedsCluster:        cluster,

		WeeklyTherapyMinutes: mapper.IntOr(fields.WeeklyTherapyMinutes, 0),
		ActiveConditions:     fields.ActiveConditions,
		RecentDecline:        mapper.BoolOr(fields.RecentDecline, false),
		HospiceEnrolled:      mapper.BoolOr(fields.HospiceEnrolled, false),

		LivesAlone: p.IsAlone(),

		Sources:      sources,
		Confidence:   confidence,
		Completeness: completeness,
		Minimal:      !hasAnchor,
	}

	// Caregiver and readiness signals: family input when present, the
	// patient record's caregiver otherwise.
	if fam != nil {
		np.CaregiverStress = fam.CaregiverStress
		np.CaregiverAvailable = fam.CaregiverAvailable
		np.TechReady = fam.TechComfortable || fam.PrefersVirtual
	} else if p.PrimaryCaregiver != nil {
		np.CaregiverAvailable = true
	}

	if np.Minimal {
		s.log.Info("built minimal profile with no anchor source",
			zap.String("patient_id", p.ID.String()))
	}

	return np, nil
}

// HasSufficientData reports whether an anchor source, a full assessment,
// contact assessment, or referral, exists inside the cutoff window. A
// behavioural screener alone does not count. A profile can always be built
// regardless; this exists so callers can warn before presenting a minimal
// one.
func (s *ProfileService) HasSufficientData(ctx context.Context, patientID uuid.UUID, cutoffDays int) (bool, error) {
	if cutoffDays <= 0 {
		cutoffDays = s.cfg.AssessmentCutoffDays
	}
	cutoff := s.now().AddDate(0, 0, -cutoffDays)

	for _, t := range []assessment.Type{assessment.TypeFull, assessment.TypeContact} {
		a, err := s.assessments.LatestByType(ctx, patientID, t, cutoff)
		if err != nil {
			return false, err
		}
		if a != nil {
			return true, nil
		}
	}

	ref, err := s.referrals.Latest(ctx, patientID, cutoff)
	if err != nil {
		return false, err
	}
	return ref != nil, nil
}

// AvailableSources reports per-source availability without building a
// profile.
func (s *ProfileService) AvailableSources(ctx context.Context, patientID uuid.UUID, cutoffDays int) (map[profile.Source]profile.SourceAvailability, error) {
	if cutoffDays <= 0 {
		cutoffDays = s.cfg.AssessmentCutoffDays
	}
	cutoff := s.now().AddDate(0, 0, -cutoffDays)

	out := map[profile.Source]profile.SourceAvailability{
		profile.SourceFullAssessment:    {},
		profile.SourceContactAssessment: {},
		profile.SourceScreener:          {},
		profile.SourceReferral:          {},
		profile.SourceFamilyInput:       {},
	}

	types := map[assessment.Type]profile.Source{
		assessment.TypeFull:     profile.SourceFullAssessment,
		assessment.TypeContact:  profile.SourceContactAssessment,
		assessment.TypeScreener: profile.SourceScreener,
	}
	for t, src := range types {
		a, err := s.assessments.LatestByType(ctx, patientID, t, cutoff)
		if err != nil {
			return nil, err
		}
		if a != nil {
			out[src] = available(a.AssessedAt)
		}
	}

	ref, err := s.referrals.Latest(ctx, patientID, cutoff)
	if err != nil {
		return nil, err
	}
	if ref != nil {
		out[profile.SourceReferral] = available(ref.ReferralDate)
	}

	fam, err := s.familyInput.Latest(ctx, patientID, cutoff)
	if err != nil {
		return nil, err
	}
	if fam != nil {
		out[profile.SourceFamilyInput] = available(fam.ReceivedAt)
	}

	return out, nil
}

// InvalidateCache drops every cached profile for the patient.
func (s *ProfileService) InvalidateCache(ctx context.Context, patientID uuid.UUID) error {
	return s.store.Invalidate(ctx, patientID)
}

func available(at time.Time) profile.SourceAvailability {
	t := at
	return profile.SourceAvailability{Available: true, RecordedAt: &t}
}

func countUniqueFields(lists ...[]string) int {
	seen := make(map[string]bool)
	for _, l := range lists {
		for _, f := range l {
			seen[f] = true
		}
	}
	return len(seen)
}
