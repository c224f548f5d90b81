package repository

import (
	"errors"
	"time"

	"github.com/SilverSkills/user_service/internal/domain"
	"gorm.io/gorm"
)

// ErrPendingExists is returned by CreatePending when the user already has an
// open request. The check runs inside the same transaction as the insert, so
// two concurrent submissions cannot both slip past it.
var ErrPendingExists = errors.New("a verification request is already pending")

// ErrNotPending is returned by Approve/Reject when the request left PENDING
// between the caller's precondition check and the guarded update.
var ErrNotPending = errors.New("request is not pending")

type VerificationRepository interface {
	CreatePending(userID uint, note *string) (*domain.VerificationRequest, error)
	FindByID(requestID uint) (*domain.VerificationRequest, error)
	ListPending() ([]domain.VerificationRequest, error)
	ListRecentByUserID(userID uint, limit int) ([]domain.VerificationRequest, error)

	Approve(requestID uint, adminNote *string) (*domain.VerificationRequest, *domain.User, error)
	Reject(requestID uint, reason string) (*domain.VerificationRequest, *domain.User, error)
}

type verificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

// CreatePending inserts a PENDING request and flips the user's status to
// PENDING in one transaction.
func (v *verificationRepository) CreatePending(userID uint, note *string) (*domain.VerificationRequest, error) {
	req := &domain.VerificationRequest{
		UserID: userID,
		Note:   note,
		Status: domain.VerificationPending,
	}

	err := v.db.Transaction(func(tx *gorm.DB) error {
		var pending int64
		if err := tx.Model(&domain.VerificationRequest{}).
			Where("user_id = ? AND status = ?", userID, domain.VerificationPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return ErrPendingExists
		}

		if err := tx.Create(req).Error; err != nil {
			return err
		}

		return tx.Model(&domain.User{}).
			Where("id = ?", userID).
			Update("verification_status", domain.VerificationPending).Error
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (v *verificationRepository) FindByID(requestID uint) (*domain.VerificationRequest, error) {
	var req domain.VerificationRequest
	if err := v.db.First(&req, requestID).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (v *verificationRepository) ListPending() ([]domain.VerificationRequest, error) {
	var reqs []domain.VerificationRequest

	err := v.db.
		Preload("User").
		Where("status = ?", domain.VerificationPending).
		Order("created_at ASC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (v *verificationRepository) ListRecentByUserID(userID uint, limit int) ([]domain.VerificationRequest, error) {
	var reqs []domain.VerificationRequest

	err := v.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// Approve marks the request VERIFIED and the owning user VERIFIED with
// verified_at = now, all in one transaction. The request keeps its original
// note unless an admin note is supplied; the admin note is only stored on
// the user when supplied.
func (v *verificationRepository) Approve(requestID uint, adminNote *string) (*domain.VerificationRequest, *domain.User, error) {
	now := time.Now()

	var req domain.VerificationRequest
	var user domain.User

	err := v.db.Transaction(func(tx *gorm.DB) error {
		reqUpdates := map[string]any{
			"status": domain.VerificationVerified,
		}
		userUpdates := map[string]any{
			"verification_status": domain.VerificationVerified,
			"verified_at":         now,
		}
		if adminNote != nil {
			reqUpdates["note"] = *adminNote
			userUpdates["verification_note"] = *adminNote
		}

		res := tx.Model(&domain.VerificationRequest{}).
			Where("id = ? AND status = ?", requestID, domain.VerificationPending).
			Updates(reqUpdates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}

		if err := tx.First(&req, requestID).Error; err != nil {
			return err
		}

		if err := tx.Model(&domain.User{}).
			Where("id = ?", req.UserID).
			Updates(userUpdates).Error; err != nil {
			return err
		}

		return tx.First(&user, req.UserID).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &req, &user, nil
}

// Reject marks the request UNVERIFIED with the reason as its note and copies
// the reason onto the user, in one transaction. The request is terminal
// afterwards; the user may submit a new one.
func (v *verificationRepository) Reject(requestID uint, reason string) (*domain.VerificationRequest, *domain.User, error) {
	var req domain.VerificationRequest
	var user domain.User

	err := v.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.VerificationRequest{}).
			Where("id = ? AND status = ?", requestID, domain.VerificationPending).
			Updates(map[string]any{
				"status": domain.VerificationUnverified,
				"note":   reason,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}

		if err := tx.First(&req, requestID).Error; err != nil {
			return err
		}

		if err := tx.Model(&domain.User{}).
			Where("id = ?", req.UserID).
			Updates(map[string]any{
				"verification_status": domain.VerificationUnverified,
				"verification_note":   reason,
			}).Error; err != nil {
			return err
		}

		return tx.First(&user, req.UserID).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &req, &user, nil
}
