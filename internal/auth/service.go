package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	internal "github.com/frahmantamala/hr-management/internal"
	coreuser "github.com/frahmantamala/hr-management/internal/core/user"
)

type UserRepository interface {
	ExistsByUsernameOrEmail(username, email string) (bool, error)
	GetByEmail(email string) (*User, error)
	GetRoleByName(name string) (*Role, error)
	// CreateUserWithRole persists the user and the user-role link in one
	// transaction; either both rows land or neither does.
	CreateUserWithRole(user *User, roleID string) error
	GetRoleNamesForUser(userID string) ([]string, error)
}

// Service orchestrates registration and login against the credential store,
// the password hasher and the token generator.
type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	bcryptCost     int
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
	}
}

func NewJWTTokenGenerator(secret, issuer, audience string, ttl time.Duration) *JWTTokenGenerator {
	if ttl <= 0 {
		ttl = internal.DefaultTokenDuration
	}
	return &JWTTokenGenerator{
		Secret:   []byte(secret),
		Issuer:   issuer,
		Audience: audience,
		TokenTTL: ttl,
	}
}

// Register creates a new credential record. Username and email must both be
// unused; the check covers the two fields in a single query. The new user is
// always linked to the "User" role, and user plus role link are written in
// one transaction so a crash can never leave a roleless user behind.
func (s *Service) Register(dto RegisterDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(dto.Username, dto.Email)
	if err != nil {
		return internal.NewInternalError("failed to check existing users", err)
	}
	if exists {
		return internal.ErrUserAlreadyExists
	}

	role, err := s.userRepo.GetRoleByName(coreuser.RoleUser)
	if err != nil {
		// Roles are seeded at startup; a missing default role means the
		// store was never bootstrapped.
		appErr := internal.NewInternalError(
			fmt.Sprintf("default role %q is not seeded", coreuser.RoleUser), err)
		appErr.Code = internal.ErrCodeRoleNotSeeded
		return appErr
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		return internal.NewInternalError("failed to hash password", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Username:     dto.Username,
		Email:        dto.Email,
		PasswordHash: hash,
	}

	if err := s.userRepo.CreateUserWithRole(user, role.ID); err != nil {
		return internal.NewInternalError("failed to create user", err)
	}

	return nil
}

// Authenticate validates credentials and mints a bearer token carrying the
// user's identity and role names. Unknown email and wrong password both map
// to the same ErrInvalidCredentials value.
func (s *Service) Authenticate(dto LoginDTO) (AuthResult, error) {
	if err := dto.Validate(); err != nil {
		return AuthResult{}, err
	}

	user, err := s.userRepo.GetByEmail(dto.Email)
	if err != nil {
		return AuthResult{}, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)); err != nil {
		return AuthResult{}, internal.ErrInvalidCredentials
	}

	roles, err := s.userRepo.GetRoleNamesForUser(user.ID)
	if err != nil {
		return AuthResult{}, internal.NewInternalError("failed to load user roles", err)
	}

	token, err := s.tokenGenerator.GenerateToken(user, roles)
	if err != nil {
		return AuthResult{}, internal.NewInternalError("failed to generate token", err)
	}

	return AuthResult{
		UserID:   user.ID,
		Token:    token,
		Username: user.Username,
	}, nil
}

// ValidateAccessToken validates a bearer token and returns its claims.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// HashPassword creates a bcrypt hash of the password.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// GenerateToken mints a signed token for the user embedding one role claim
// per role name.
func (j *JWTTokenGenerator) GenerateToken(user *User, roles []string) (string, error) {
	if user == nil {
		return "", ValidationError{Msg: "user is required"}
	}
	if roles == nil {
		return "", ValidationError{Msg: "roles are required"}
	}

	now := time.Now()
	claims := &Claims{
		Username: user.Username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    j.Issuer,
			Audience:  jwt.ClaimStrings{j.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// ValidateToken verifies signature, issuer, audience and expiry before
// handing the claims back.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.Issuer),
		jwt.WithAudience(j.Audience),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, internal.ErrInvalidToken
	}

	return claims, nil
}
