package repository

import (
	"github.com/SilverSkills/user_service/internal/domain"
	"gorm.io/gorm"
)

type SkillRepository interface {
	ListSkills() ([]domain.Skill, error)
	GetUserSkillIDs(userID uint) ([]uint, error)
	ReplaceUserSkills(userID uint, skillIDs []uint) error
}

type skillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

func (s *skillRepository) ListSkills() ([]domain.Skill, error) {
	var skills []domain.Skill
	if err := s.db.Order("name ASC").Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

func (s *skillRepository) GetUserSkillIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&domain.UserSkill{}).
		Where("user_id = ?", userID).
		Pluck("skill_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ReplaceUserSkills overwrites the user's selection with the given set.
func (s *skillRepository) ReplaceUserSkills(userID uint, skillIDs []uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&domain.UserSkill{}).Error; err != nil {
			return err
		}

		if len(skillIDs) == 0 {
			return nil
		}

		links := make([]domain.UserSkill, 0, len(skillIDs))
		for _, id := range skillIDs {
			links = append(links, domain.UserSkill{
				UserID:  userID,
				SkillID: id,
			})
		}
		return tx.Create(&links).Error
	})
}
