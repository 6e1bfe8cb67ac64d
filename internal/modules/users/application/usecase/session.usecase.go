package usecase

import (
	"log/slog"

	users "mesaYaCore/internal/modules/users/domain"
	"mesaYaCore/internal/platform/registry"
	"mesaYaCore/internal/shared/auth"
)

// SessionUseCase is the "current user" collaborator the booking core consumes:
// it registers accounts, issues session tokens and resolves a bearer token back
// to the acting user.
type SessionUseCase struct {
	store *registry.Store
	codec auth.TokenCodec
}

func NewSessionUseCase(store *registry.Store, codec auth.TokenCodec) *SessionUseCase {
	return &SessionUseCase{store: store, codec: codec}
}

type RegisterInput struct {
	Username string
	Password string
	Email    string
	Address  users.Address
	Role     users.Role
}

func (uc *SessionUseCase) Register(input RegisterInput) (*users.User, error) {
	user, err := uc.store.AddUser(input.Username, input.Password, input.Email, input.Address, input.Role)
	if err != nil {
		return nil, err
	}
	slog.Info("user registered", slog.Int("userId", user.ID), slog.String("role", string(user.Role)))
	return user, nil
}

// Login checks credentials and issues a token whose subject is the username.
func (uc *SessionUseCase) Login(username, password string) (string, *users.User, error) {
	user, ok := uc.store.UserByUsername(username)
	if !ok || !user.CheckPassword(password) {
		return "", nil, users.ErrInvalidCredentials
	}
	token, err := uc.codec.Sign(user.Username, []string{string(user.Role)})
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Resolve maps a bearer token to the registered user it was issued for.
func (uc *SessionUseCase) Resolve(token string) (*users.User, error) {
	claims, err := uc.codec.Validate(token)
	if err != nil {
		return nil, err
	}
	user, ok := uc.store.UserByUsername(claims.Subject)
	if !ok {
		return nil, users.ErrUserNotFound
	}
	return user, nil
}
