package domain

import "gorm.io/gorm"

type Skill struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	gorm.Model
}

// UserSkill links a user to a skill they can share.
type UserSkill struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	UserID  uint `gorm:"not null;uniqueIndex:uidx_user_skill" json:"user_id"`
	SkillID uint `gorm:"not null;uniqueIndex:uidx_user_skill" json:"skill_id"`

	gorm.Model
}
