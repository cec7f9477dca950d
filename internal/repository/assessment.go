package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carelinkhq/carebundle/internal/domain/assessment"
)

type AssessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

func (r *AssessmentRepository) Create(ctx context.Context, a *assessment.Assessment) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("inserting assessment: %w", err)
	}
	return nil
}

func (r *AssessmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*assessment.Assessment, error) {
	var a assessment.Assessment
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, assessment.ErrAssessmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching assessment: %w", err)
	}
	return &a, nil
}

func (r *AssessmentRepository) LatestByType(ctx context.Context, patientID uuid.UUID, t assessment.Type, cutoff time.Time) (*assessment.Assessment, error) {
	var a assessment.Assessment
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND type = ? AND assessed_at >= ?", patientID, t, cutoff).
		Order("assessed_at DESC").
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching latest %s assessment: %w", t, err)
	}
	return &a, nil
}

func (r *AssessmentRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*assessment.Assessment, error) {
	var list []*assessment.Assessment
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("assessed_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("listing assessments: %w", err)
	}
	return list, nil
}
