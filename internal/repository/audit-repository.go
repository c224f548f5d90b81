package repository

import (
	"github.com/SilverSkills/user_service/internal/domain"
	"gorm.io/gorm"
)

type AuditRepository interface {
	Create(entry *domain.AuditLog) error
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (a *auditRepository) Create(entry *domain.AuditLog) error {
	return a.db.Create(entry).Error
}
