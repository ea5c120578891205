package mapping

import (
	"github.com/invofin/board_backend/internal/core/domain"
	"github.com/invofin/board_backend/internal/models"
)

// ToModelUser converts a domain user to its database model.
func ToModelUser(u domain.User) models.User {
	return models.User{
		UserID:       u.UserID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		AuditFields:  ToModelAuditFields(u.AuditFields),
		DeletedAt:    u.DeletedAt,
	}
}

// ToDomainUser converts a database user model to its domain form.
func ToDomainUser(u models.User) domain.User {
	return domain.User{
		UserID:       u.UserID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		AuditFields:  ToDomainAuditFields(u.AuditFields),
		DeletedAt:    u.DeletedAt,
	}
}
