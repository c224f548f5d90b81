package domain

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Name         string `gorm:"not null" json:"name"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `gorm:"not null;default:false" json:"is_admin"`

	// Profile
	Bio                *string `gorm:"type:text" json:"bio,omitempty"`
	Age                *int    `json:"age,omitempty"`
	Address            *string `json:"address,omitempty"`
	AvailableMorning   bool    `gorm:"not null;default:false" json:"available_morning"`
	AvailableAfternoon bool    `gorm:"not null;default:false" json:"available_afternoon"`
	AvailableEvening   bool    `gorm:"not null;default:false" json:"available_evening"`
	AvatarURL          *string `gorm:"type:text" json:"avatar_url,omitempty"`

	// Identity verification.
	// VERIFIED implies VerifiedAt is set; PENDING implies exactly one
	// pending VerificationRequest exists for this user.
	VerificationStatus VerificationStatus `gorm:"type:varchar(20);not null;default:'UNVERIFIED'" json:"verification_status"`
	VerificationNote   *string            `gorm:"type:text" json:"verification_note,omitempty"`
	VerifiedAt         *time.Time         `json:"verified_at,omitempty"`

	// Login lockout
	FailedLoginAttempts int        `gorm:"not null;default:0" json:"-"`
	LockoutUntil        *time.Time `json:"-"`

	// Relations
	Skills               []UserSkill           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:UserID" json:"skills,omitempty"`
	VerificationRequests []VerificationRequest `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:UserID" json:"verification_requests,omitempty"`

	gorm.Model
}
