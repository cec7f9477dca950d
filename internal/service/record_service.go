package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carelinkhq/carebundle/internal/domain/assessment"
	"github.com/carelinkhq/carebundle/internal/domain/family"
	"github.com/carelinkhq/carebundle/internal/domain/referral"
	"github.com/carelinkhq/carebundle/pkg/metrics"
)

// RecordService ingests the clinical source records profiles are built from:
// assessments, referrals, and family input. Every successful write
// invalidates the patient's cached profiles so the next build sees the new
// data.
type RecordService struct {
	assessments assessment.Repository
	referrals   referral.Repository
	familyInput family.Repository
	profiles    *ProfileService
	collector   *metrics.Collector
	log         *zap.Logger
}

func NewRecordService(
	assessments assessment.Repository,
	referrals referral.Repository,
	familyInput family.Repository,
	profiles *ProfileService,
	collector *metrics.Collector,
	log *zap.Logger,
) *RecordService {
	return &RecordService{
		assessments: assessments,
		referrals:   referrals,
		familyInput: familyInput,
		profiles:    profiles,
		collector:   collector,
		log:         log,
	}
}

func (s *RecordService) RecordAssessment(ctx context.Context, cmd *assessment.CreateAssessmentCommand) (*assessment.Assessment, error) {
	if err := validateAssessmentCommand(cmd); err != nil {
		return nil, err
	}

	a := &assessment.Assessment{
		PatientID:  cmd.PatientID,
		Type:       cmd.Type,
		AssessedAt: cmd.AssessedAt,
		AssessorID: cmd.AssessorID,
		Full:       cmd.Full,
		Contact:    cmd.Contact,
		Screener:   cmd.Screener,
		CreatedBy:  cmd.CreatedBy,
	}

	if err := s.assessments.Create(ctx, a); err != nil {
		s.log.Error("failed to record assessment", zap.Error(err))
		return nil, err
	}

	s.collector.AssessmentsRecordedTotal.WithLabelValues(string(a.Type)).Inc()
	s.invalidate(ctx, a.PatientID)

	s.log.Info("assessment recorded",
		zap.String("patient_id", a.PatientID.String()),
		zap.String("type", string(a.Type)),
	)
	return a, nil
}

func (s *RecordService) GetAssessment(ctx context.Context, id uuid.UUID) (*assessment.Assessment, error) {
	return s.assessments.GetByID(ctx, id)
}

func (s *RecordService) ListAssessments(ctx context.Context, patientID uuid.UUID) ([]*assessment.Assessment, error) {
	return s.assessments.ListByPatient(ctx, patientID)
}

func (s *RecordService) RecordReferral(ctx context.Context, cmd *referral.CreateReferralCommand) (*referral.Referral, error) {
	if err := validateReferralCommand(cmd); err != nil {
		return nil, err
	}

	r := &referral.Referral{
		PatientID:                cmd.PatientID,
		ReferralDate:             cmd.ReferralDate,
		ReferralType:             strings.TrimSpace(cmd.ReferralType),
		Source:                   strings.TrimSpace(cmd.Source),
		Program:                  strings.TrimSpace(cmd.Program),
		HospitalDischargeDate:    cmd.HospitalDischargeDate,
		SurgeryType:              strings.TrimSpace(cmd.SurgeryType),
		ExpectedLengthOfStayDays: cmd.ExpectedLengthOfStayDays,
		Reason:                   cmd.Reason,
		Notes:                    cmd.Notes,
		ReferringProvider:        cmd.ReferringProvider,
		CreatedBy:                cmd.CreatedBy,
	}

	if err := s.referrals.Create(ctx, r); err != nil {
		s.log.Error("failed to record referral", zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx, r.PatientID)

	s.log.Info("referral recorded",
		zap.String("patient_id", r.PatientID.String()),
		zap.String("referral_type", r.ReferralType),
	)
	return r, nil
}

func (s *RecordService) ListReferrals(ctx context.Context, patientID uuid.UUID) ([]*referral.Referral, error) {
	return s.referrals.ListByPatient(ctx, patientID)
}

func (s *RecordService) RecordFamilyInput(ctx context.Context, cmd *family.CreateInputCommand) (*family.Input, error) {
	if cmd.PatientID == uuid.Nil {
		return nil, &ValidationError{Fields: []string{"patient_id is required"}}
	}
	if cmd.ReceivedAt.IsZero() {
		cmd.ReceivedAt = time.Now()
	}

	in := &family.Input{
		PatientID:          cmd.PatientID,
		ReceivedAt:         cmd.ReceivedAt,
		Relationship:       strings.TrimSpace(cmd.Relationship),
		CaregiverStress:    cmd.CaregiverStress,
		CaregiverAvailable: cmd.CaregiverAvailable,
		TechComfortable:    cmd.TechComfortable,
		PrefersVirtual:     cmd.PrefersVirtual,
		Comments:           cmd.Comments,
		CreatedBy:          cmd.CreatedBy,
	}

	if err := s.familyInput.Create(ctx, in); err != nil {
		s.log.Error("failed to record family input", zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx, in.PatientID)
	return in, nil
}

// invalidate drops the patient's cached profiles. A failure here is logged
// and swallowed: the record write already succeeded, and a stale cache entry
// is bounded by the TTL.
func (s *RecordService) invalidate(ctx context.Context, patientID uuid.UUID) {
	if err := s.profiles.InvalidateCache(ctx, patientID); err != nil {
		s.log.Warn("profile cache invalidation failed",
			zap.Error(err),
			zap.String("patient_id", patientID.String()),
		)
	}
}

func validateAssessmentCommand(cmd *assessment.CreateAssessmentCommand) error {
	var errs []string

	if cmd.PatientID == uuid.Nil {
		errs = append(errs, "patient_id is required")
	}
	if !cmd.Type.IsValid() {
		errs = append(errs, "type must be one of full, contact, behavioural_screener")
	}
	if cmd.AssessedAt.IsZero() {
		errs = append(errs, "assessed_at is required")
	}
	if cmd.AssessedAt.After(time.Now()) {
		errs = append(errs, "assessed_at cannot be in the future")
	}

	switch cmd.Type {
	case assessment.TypeFull:
		if cmd.Full == nil {
			errs = append(errs, "full record payload is required for type full")
		}
	case assessment.TypeContact:
		if cmd.Contact == nil {
			errs = append(errs, "contact record payload is required for type contact")
		}
	case assessment.TypeScreener:
		if cmd.Screener == nil {
			errs = append(errs, "screener record payload is required for type behavioural_screener")
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func validateReferralCommand(cmd *referral.CreateReferralCommand) error {
	var errs []string

	if cmd.PatientID == uuid.Nil {
		errs = append(errs, "patient_id is required")
	}
	if cmd.ReferralDate.IsZero() {
		errs = append(errs, "referral_date is required")
	}
	if cmd.ReferralDate.After(time.Now()) {
		errs = append(errs, "referral_date cannot be in the future")
	}
	if cmd.HospitalDischargeDate != nil && cmd.ReferralDate.Before(*cmd.HospitalDischargeDate) {
		errs = append(errs, "referral_date cannot precede hospital_discharge_date")
	}
	if cmd.ExpectedLengthOfStayDays != nil && *cmd.ExpectedLengthOfStayDays <= 0 {
		errs = append(errs, "expected_length_of_stay_days must be positive")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
