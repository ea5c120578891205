package domain

import "time"

// Client is a customer an income entry can be attributed to.
type Client struct {
	ClientID    string  `json:"clientID"` // Primary Key (UUID)
	UserID      string  `json:"userID"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Responsible *string `json:"responsible,omitempty"` // Contact person
	IsActive    bool    `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
