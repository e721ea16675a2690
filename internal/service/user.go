package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	goaway "github.com/TwiN/go-away"
	"github.com/asaskevich/govalidator"
	"github.com/windoze95/paleofinder-api/internal/config"
	"github.com/windoze95/paleofinder-api/internal/models"
	"github.com/windoze95/paleofinder-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by LoginUser for an unknown user or a
// wrong password; the two are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("Password entered incorrectly or user does not exist.")

const minPasswordLength = 8

// UserService is the business logic layer for user-related operations.
type UserService struct {
	Cfg  *config.Config
	Repo repository.UserRepo
}

// UserResponse is the response object for user-related operations.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserService is the constructor function for initializing a new UserService
func NewUserService(cfg *config.Config, repo repository.UserRepo) *UserService {
	return &UserService{
		Cfg:  cfg,
		Repo: repo,
	}
}

// CreateUser creates a new user.
func (s *UserService) CreateUser(username, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username: username,
		Auth: &models.UserAuth{
			HashedPassword: string(hashedPassword),
			AuthType:       models.Standard,
		},
	}

	return s.Repo.CreateUser(user)
}

// LoginUser logs in a user.
func (s *UserService) LoginUser(username, password string) (*models.User, error) {
	user, err := s.Repo.GetUserAuthByUsername(username)
	if err != nil {
		var notFound repository.NotFoundError
		if errors.As(err, &notFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Auth == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Auth.HashedPassword), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByID gets a user by their ID.
func (s *UserService) GetUserByID(userID uint) (*models.User, error) {
	return s.Repo.GetUserByID(userID)
}

// ToUserResponse converts a User to a UserResponse.
func ToUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        strconv.FormatUint(uint64(user.ID), 10),
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

var forbiddenUsernames = []string{
	"admin",
	"administrator",
	"root",
	"sys",
	"sysadmin",
	"system",
	"test",
	"testuser",
	"login",
	"logout",
	"register",
	"password",
	"user",
	"newuser",
	"support",
	"help",
	"faq",
	"find",
	"search",
	"paleo",
	"paleofinder",
	"paleofinderadmin",
}

// ValidateUsername validates a username against a set of rules.
func (s *UserService) ValidateUsername(username string) error {
	if username == "" {
		return errors.New("must provide username")
	}

	// Also caught as a unique violation in the repository.
	exists, err := s.Repo.UsernameExists(username)
	if err != nil {
		return fmt.Errorf("error checking username: %w", err)
	}
	if exists {
		return errors.New("username is already taken")
	}

	minLength := 3
	if len(username) < minLength {
		return fmt.Errorf("username must be at least %d characters", minLength)
	}

	if !govalidator.IsAlphanumeric(username) {
		return errors.New("username can only contain alphanumeric characters")
	}

	for _, forbidden := range forbiddenUsernames {
		if strings.EqualFold(username, forbidden) {
			return fmt.Errorf("username '%s' is not allowed", username)
		}
	}

	profanityDetector := goaway.NewProfanityDetector().WithSanitizeLeetSpeak(true).WithSanitizeSpecialCharacters(true).WithSanitizeAccents(false)
	if profanityDetector.IsProfane(username) {
		return errors.New("username contains inappropriate language")
	}

	return nil
}

// ValidatePassword checks the password length and that the confirmation
// matches it.
func (s *UserService) ValidatePassword(password, confirmation string) error {
	if password == "" {
		return errors.New("must provide password")
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	if password != confirmation {
		return errors.New("password and confirmation do not match")
	}
	return nil
}
