package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carelinkhq/carebundle/internal/domain/referral"
)

type ReferralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

func (r *ReferralRepository) Create(ctx context.Context, ref *referral.Referral) error {
	if err := r.db.WithContext(ctx).Create(ref).Error; err != nil {
		return fmt.Errorf("inserting referral: %w", err)
	}
	return nil
}

func (r *ReferralRepository) Latest(ctx context.Context, patientID uuid.UUID, cutoff time.Time) (*referral.Referral, error) {
	var ref referral.Referral
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND referral_date >= ?", patientID, cutoff).
		Order("referral_date DESC").
		First(&ref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching latest referral: %w", err)
	}
	return &ref, nil
}

func (r *ReferralRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*referral.Referral, error) {
	var list []*referral.Referral
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("referral_date DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("listing referrals: %w", err)
	}
	return list, nil
}
