package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/storeatlas/api/internal/directory/domain"
)

// ErrInvalidCredentials is returned by Login for a wrong email or
// password; callers must not learn which of the two failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// accountService implements AccountService.
type accountService struct {
	users  UserRepository
	stores StoreRepository
}

// NewAccountService creates the account service.
func NewAccountService(users UserRepository, stores StoreRepository) AccountService {
	return &accountService{users: users, stores: stores}
}

func (s *accountService) Register(ctx context.Context, cmd RegisterCommand) (*domain.User, error) {
	v := domain.NewValidationError()
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" || !strings.Contains(email, "@") {
		v.Add("email", "That email is not valid")
	}
	if strings.TrimSpace(cmd.Name) == "" {
		v.Add("name", "You must supply a name")
	}
	if len(cmd.Password) < 8 {
		v.Add("password", "Password must be at least 8 characters")
	}
	if v.HasViolations() {
		return nil, v
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(cmd.Name),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *accountService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *accountService) ToggleHeart(ctx context.Context, userID, storeID string) (*domain.User, error) {
	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.users.ToggleHeart(ctx, userID, storeID, !user.HasHearted(storeID))
}

func (s *accountService) HeartedStores(ctx context.Context, userID string) ([]domain.Store, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Hearts) == 0 {
		return []domain.Store{}, nil
	}
	return s.stores.FindByIDs(ctx, user.Hearts)
}
