package postgres

import (
	"database/sql"

	"github.com/sgonzalez/retail-management/internal/auth"
	"github.com/sgonzalez/retail-management/internal/core/database"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetCredentialsByUsername(username string) (*auth.Credentials, error) {
	var creds auth.Credentials
	var role string
	query := `SELECT id, username, first_name, password_hash, role FROM users WHERE username = ?`

	row := r.db.Raw(query, username).Row()
	if err := row.Scan(&creds.UserID, &creds.Username, &creds.Name, &creds.PasswordHash, &role); err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}

	parsed, err := auth.ParseRole(role)
	if err != nil {
		return nil, err
	}
	creds.Role = parsed

	return &creds, nil
}

func (r *Repository) GetUserByID(userID int64) (*auth.User, error) {
	var user auth.User
	var role string
	query := `SELECT id, username, first_name, role FROM users WHERE id = ?`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&user.ID, &user.Username, &user.Name, &role); err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}

	parsed, err := auth.ParseRole(role)
	if err != nil {
		return nil, err
	}
	user.Role = parsed

	return &user, nil
}

func (r *Repository) CreateUser(u *auth.NewUser) (int64, error) {
	var id int64
	query := `INSERT INTO users (first_name, last_name, phone, email, username, password_hash, role, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP) RETURNING id`

	row := r.db.Raw(query, u.FirstName, u.LastName, u.Phone, u.Email, u.Username, u.PasswordHash, string(u.Role)).Row()
	if err := row.Scan(&id); err != nil {
		if database.IsUniqueViolation(err) {
			return 0, auth.ErrDuplicateUser
		}
		return 0, err
	}

	return id, nil
}
