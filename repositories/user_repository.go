package repositories

import "SlowDown/models"

type UserRepository interface {
	FindByID(id string) (models.User, error)
	FindByEmail(email string) (models.User, error)
	FindAll() ([]models.User, error)
	Create(user *models.User) error
	Save(user models.User) error
}
