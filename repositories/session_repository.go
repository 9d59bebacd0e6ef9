package repositories

import "SlowDown/models"

type SessionRepository interface {
	Create(session *models.Session) error
	FindActiveByUser(userID string) ([]models.Session, error)
	Deactivate(sessionID string) error
}
