package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is the credential-store view of an account used by the auth service.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AuthResult is what a successful login hands back to the caller.
type AuthResult struct {
	UserID   string `json:"user_id"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Claims are the self-contained token payload: subject is the user id, the
// name claim is the username, and one role entry per role the user holds.
type Claims struct {
	Username string   `json:"name"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenGenerator mints and validates signed bearer tokens.
type TokenGenerator interface {
	GenerateToken(user *User, roles []string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// ServiceAPI is the surface the HTTP layer depends on.
type ServiceAPI interface {
	Register(dto RegisterDTO) error
	Authenticate(dto LoginDTO) (AuthResult, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
}

// JWTTokenGenerator signs HS256 tokens with a symmetric secret. Secret,
// issuer and audience come from process configuration, loaded once.
type JWTTokenGenerator struct {
	Secret   []byte
	Issuer   string
	Audience string
	TokenTTL time.Duration
}
