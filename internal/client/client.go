package client

import (
	"errors"
	"time"
)

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrDuplicateClient = errors.New("email already registered")
)

type Client struct {
	ID        int64     `json:"id" gorm:"primaryKey;column:id"`
	Name      string    `json:"name" gorm:"column:name"`
	Email     string    `json:"email" gorm:"column:email"`
	Phone     string    `json:"phone" gorm:"column:phone"`
	Gender    string    `json:"gender" gorm:"column:gender"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

type ServiceAPI interface {
	Create(dto CreateClientDTO) (*Client, error)
	GetByID(id int64) (*Client, error)
	// ListAll is the admin view; ListForEmployee returns only clients
	// attached to the employee's own purchases.
	ListAll() ([]*Client, error)
	ListForEmployee(employeeID int64) ([]*Client, error)
}

type RepositoryAPI interface {
	Create(c *Client) error
	GetByID(id int64) (*Client, error)
	ListAll() ([]*Client, error)
	ListForEmployee(employeeID int64) ([]*Client, error)
}
