package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Role is the closed set of roles a user can hold. The original data carried
// free-text roles compared case-insensitively all over the place; parsing once
// at the boundary keeps every later comparison exact.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleAdmin):
		return RoleAdmin, nil
	case string(RoleEmployee):
		return RoleEmployee, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// User is the authenticated principal placed in the request context.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (*LoginResult, error)
	Register(dto RegisterDTO) (*User, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetUserByID(userID int64) (*User, error)
}

type RepositoryAPI interface {
	GetCredentialsByUsername(username string) (*Credentials, error)
	GetUserByID(userID int64) (*User, error)
	CreateUser(u *NewUser) (int64, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID int64, username string, role Role) (string, error)
	GenerateRefreshToken(userID int64, username string, role Role) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Credentials is what the login path reads from the store.
type Credentials struct {
	UserID       int64
	Username     string
	Name         string
	PasswordHash string
	Role         Role
}

// NewUser is the persistence shape for registration.
type NewUser struct {
	FirstName    string
	LastName     string
	Phone        string
	Email        string
	Username     string
	PasswordHash string
	Role         Role
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResult pairs tokens with the user view the web client renders after login.
type LoginResult struct {
	Tokens AuthTokens `json:"tokens"`
	User   User       `json:"user"`
}

type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidRole        = errors.New("invalid role")
	ErrDuplicateUser      = errors.New("username or email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
