package user

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/sgonzalez/retail-management/internal/auth"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("username or email already registered")
)

// User is the full account row. PasswordHash never leaves the API.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey;column:id"`
	FirstName    string    `json:"first_name" gorm:"column:first_name"`
	LastName     string    `json:"last_name" gorm:"column:last_name"`
	Phone        string    `json:"phone" gorm:"column:phone"`
	Email        string    `json:"email" gorm:"column:email"`
	Username     string    `json:"username" gorm:"column:username"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	Role         string    `json:"role" gorm:"column:role"`
	Permissions  string    `json:"permissions" gorm:"column:permissions"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

// PermissionSet decodes the serialized permissions column; an empty column
// is an empty set.
func (u *User) PermissionSet() ([]string, error) {
	if u.Permissions == "" {
		return []string{}, nil
	}
	var perms []string
	if err := json.Unmarshal([]byte(u.Permissions), &perms); err != nil {
		return nil, err
	}
	return perms, nil
}

type ServiceAPI interface {
	GetProfile(userID int64) (*User, error)
	UpdateProfile(userID int64, dto UpdateProfileDTO) (*User, error)
	ListAll() ([]*User, error)
	GetByID(id int64) (*User, error)
	Update(id int64, dto UpdateProfileDTO) (*User, error)
	Delete(id int64) error
	AssignRole(id int64, role string) (*User, error)
	UpdatePermissions(id int64, permissions []string) (*User, error)
}

type RepositoryAPI interface {
	GetByID(id int64) (*User, error)
	ListAll() ([]*User, error)
	Update(u *User) error
	Delete(id int64) error
}

// parseRole delegates to the closed enum so free-text roles never reach
// the store.
func parseRole(s string) (auth.Role, error) {
	return auth.ParseRole(s)
}
