package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carelinkhq/carebundle/internal/domain/patient"
)

type PatientService struct {
	repo patient.Repository
	log  *zap.Logger
}

func NewPatientService(repo patient.Repository, log *zap.Logger) *PatientService {
	return &PatientService{
		repo: repo,
		log:  log,
	}
}

func (s *PatientService) CreatePatient(ctx context.Context, cmd *patient.CreatePatientCommand) (*patient.Patient, error) {
	if err := validateCreateCommand(cmd); err != nil {
		return nil, err
	}

	if hcn := strings.TrimSpace(cmd.HealthCardNumber); hcn != "" {
		exists, err := s.repo.ExistsByHealthCardNumber(ctx, hcn)
		if err != nil {
			s.log.Error("failed to check health card number uniqueness", zap.Error(err))
			return nil, fmt.Errorf("checking uniqueness: %w", err)
		}
		if exists {
			return nil, patient.ErrPatientAlreadyExists
		}
	}

	arrangement := cmd.LivingArrangement
	if arrangement == "" {
		arrangement = patient.LivingUnknown
	}

	p := &patient.Patient{
		FirstName:        strings.TrimSpace(cmd.FirstName),
		LastName:         strings.TrimSpace(cmd.LastName),
		DateOfBirth:      cmd.DateOfBirth,
		HealthCardNumber: strings.TrimSpace(cmd.HealthCardNumber),
		ContactInfo: patient.ContactInfo{
			Phone:   strings.TrimSpace(cmd.Phone),
			Email:   strings.ToLower(strings.TrimSpace(cmd.Email)),
			Address: cmd.Address,
			City:    cmd.City,
			ZipCode: cmd.ZipCode,
		},
		LivingArrangement: arrangement,
		PrimaryCaregiver:  cmd.PrimaryCaregiver,
		ChronicConditions: cmd.ChronicConditions,
		Notes:             cmd.Notes,
		Status:            patient.StatusActive,
		CreatedBy:         cmd.CreatedBy,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to create patient", zap.Error(err))
		return nil, fmt.Errorf("creating patient: %w", err)
	}

	s.log.Info("patient created",
		zap.String("patient_id", p.ID.String()),
	)

	return p, nil
}

func (s *PatientService) GetPatient(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PatientService) ListPatients(ctx context.Context, q *patient.ListPatientsQuery) (*patient.PagedPatients, error) {
	if q.PageSize <= 0 || q.PageSize > 100 {
		q.PageSize = 20
	}
	if q.Page <= 0 {
		q.Page = 1
	}

	return s.repo.List(ctx, q)
}

func validateCreateCommand(cmd *patient.CreatePatientCommand) error {
	var errs []string

	if strings.TrimSpace(cmd.FirstName) == "" {
		errs = append(errs, "first_name is required")
	}
	if strings.TrimSpace(cmd.LastName) == "" {
		errs = append(errs, "last_name is required")
	}
	if cmd.DateOfBirth.IsZero() {
		errs = append(errs, "date_of_birth is required")
	}
	if cmd.DateOfBirth.After(time.Now()) {
		errs = append(errs, "date_of_birth cannot be in the future")
	}
	if cmd.LivingArrangement != "" {
		switch cmd.LivingArrangement {
		case patient.LivesAlone, patient.LivesWithFamily, patient.LivesWithOther, patient.LivingUnknown:
		default:
			errs = append(errs, "living_arrangement is invalid")
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
