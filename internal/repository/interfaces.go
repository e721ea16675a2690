package repository

import "github.com/windoze95/paleofinder-api/internal/models"

// UserRepo is the interface for user repository operations.
type UserRepo interface {
	CreateUser(user *models.User) (*models.User, error)
	GetUserByID(userID uint) (*models.User, error)
	GetUserAuthByUsername(username string) (*models.User, error)
	UsernameExists(username string) (bool, error)
}
