package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/windoze95/paleofinder-api/internal/models"
	"github.com/windoze95/paleofinder-api/internal/repository"
	"github.com/windoze95/paleofinder-api/internal/scraper"
)

// --- MockFetcher ---

// MockFetcher is an in-memory implementation of scraper.Fetcher. URLs not
// present in Pages or Errors answer with a 404 FetchError.
type MockFetcher struct {
	mu     sync.Mutex
	Pages  map[string]string
	Errors map[string]error
	Calls  []string
}

// NewMockFetcher creates a new MockFetcher with initialized maps.
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		Pages:  make(map[string]string),
		Errors: make(map[string]error),
	}
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, url)
	if err := ctx.Err(); err != nil {
		return "", &scraper.FetchError{URL: url, Err: err}
	}
	if err, ok := m.Errors[url]; ok {
		return "", err
	}
	if page, ok := m.Pages[url]; ok {
		return page, nil
	}
	return "", &scraper.FetchError{URL: url, StatusCode: 404, Err: errors.New("not found")}
}

// CallCount returns how many times url was fetched.
func (m *MockFetcher) CallCount(url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, c := range m.Calls {
		if c == url {
			n++
		}
	}
	return n
}

// --- MockUserRepo ---

// MockUserRepo is an in-memory mock implementation of repository.UserRepo.
type MockUserRepo struct {
	mu     sync.Mutex
	Users  map[uint]*models.User
	NextID uint

	CreateUserErr error
}

// NewMockUserRepo creates a new MockUserRepo with initialized maps.
func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{
		Users:  make(map[uint]*models.User),
		NextID: 1,
	}
}

func (m *MockUserRepo) CreateUser(user *models.User) (*models.User, error) {
	if m.CreateUserErr != nil {
		return nil, m.CreateUserErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.Users {
		if strings.EqualFold(u.Username, user.Username) {
			return nil, repository.ErrUsernameTaken
		}
	}
	user.ID = m.NextID
	m.NextID++
	m.Users[user.ID] = user
	return user, nil
}

func (m *MockUserRepo) GetUserByID(userID uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.Users[userID]
	if !ok {
		return nil, repository.NewNotFoundError("user not found")
	}
	return u, nil
}

func (m *MockUserRepo) GetUserAuthByUsername(username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.NewNotFoundError("user not found")
}

func (m *MockUserRepo) UsernameExists(username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.Users {
		if strings.EqualFold(u.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

// Compile-time interface checks.
var _ scraper.Fetcher = (*MockFetcher)(nil)
var _ repository.UserRepo = (*MockUserRepo)(nil)
