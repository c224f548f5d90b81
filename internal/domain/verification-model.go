package domain

import "gorm.io/gorm"

type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "UNVERIFIED"
	VerificationPending    VerificationStatus = "PENDING"
	VerificationVerified   VerificationStatus = "VERIFIED"
)

// VerificationRequest is one submission in the identity-verification queue.
// A request is terminal once its status leaves PENDING; a new attempt is a
// new record. Requests are kept as history and only removed when the owning
// user is deleted.
type VerificationRequest struct {
	ID     uint               `gorm:"primaryKey" json:"id"`
	UserID uint               `gorm:"not null;index" json:"user_id"`
	Note   *string            `gorm:"type:text" json:"note,omitempty"`
	Status VerificationStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`

	User User `gorm:"foreignKey:UserID" json:"-"`

	gorm.Model
}
