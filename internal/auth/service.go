package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/liftledger/liftledger-backend/internal/users"
	pkgauth "github.com/liftledger/liftledger-backend/pkg/auth"
	"github.com/liftledger/liftledger-backend/pkg/config"
	pkgerrors "github.com/liftledger/liftledger-backend/pkg/errors"
)

type usersService interface {
	Authenticate(ctx context.Context, username, password string) (*users.UserDTO, error)
	Register(ctx context.Context, input users.RegisterInput) (*users.UserDTO, error)
}

// Service exposes the token-issuing flows.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*TokenDTO, error)
	Register(ctx context.Context, input RegisterInput) (*TokenDTO, error)
}

type service struct {
	users  usersService
	jwtCfg config.JWTConfig
	now    func() time.Time
}

// NewService builds an auth service over the users service.
func NewService(usersSvc usersService, jwtCfg config.JWTConfig) (Service, error) {
	if usersSvc == nil {
		return nil, fmt.Errorf("users service required")
	}
	return &service{users: usersSvc, jwtCfg: jwtCfg, now: time.Now}, nil
}

// Login verifies credentials and mints an access token.
func (s *service) Login(ctx context.Context, input LoginInput) (*TokenDTO, error) {
	user, err := s.users.Authenticate(ctx, input.Username, input.Password)
	if err != nil {
		return nil, err
	}
	return s.mint(user)
}

// Register creates a non-admin account and mints an access token for it.
func (s *service) Register(ctx context.Context, input RegisterInput) (*TokenDTO, error) {
	user, err := s.users.Register(ctx, users.RegisterInput{
		Username:  input.Username,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		IsAdmin:   false,
	})
	if err != nil {
		return nil, err
	}
	return s.mint(user)
}

func (s *service) mint(user *users.UserDTO) (*TokenDTO, error) {
	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return &TokenDTO{Token: token}, nil
}
