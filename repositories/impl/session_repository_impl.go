package impl

import (
	"SlowDown/models"
	"SlowDown/repositories"

	"gorm.io/gorm"
)

type SessionRepositoryImpl struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) repositories.SessionRepository {
	return &SessionRepositoryImpl{DB: db}
}

func (r *SessionRepositoryImpl) Create(session *models.Session) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepositoryImpl) FindActiveByUser(userID string) ([]models.Session, error) {
	var sessions []models.Session
	err := r.DB.Where("user_id = ? AND is_active = ?", userID, true).
		Order("last_activity DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *SessionRepositoryImpl) Deactivate(sessionID string) error {
	return r.DB.Model(&models.Session{}).
		Where("id = ?", sessionID).
		Update("is_active", false).Error
}
