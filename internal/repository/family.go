package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carelinkhq/carebundle/internal/domain/family"
)

type FamilyInputRepository struct {
	db *gorm.DB
}

func NewFamilyInputRepository(db *gorm.DB) *FamilyInputRepository {
	return &FamilyInputRepository{db: db}
}

func (r *FamilyInputRepository) Create(ctx context.Context, in *family.Input) error {
	if err := r.db.WithContext(ctx).Create(in).Error; err != nil {
		return fmt.Errorf("inserting family input: %w", err)
	}
	return nil
}

func (r *FamilyInputRepository) Latest(ctx context.Context, patientID uuid.UUID, cutoff time.Time) (*family.Input, error) {
	var in family.Input
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND received_at >= ?", patientID, cutoff).
		Order("received_at DESC").
		First(&in).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching latest family input: %w", err)
	}
	return &in, nil
}
