package mapping

import (
	"github.com/invofin/board_backend/internal/core/domain"
	"github.com/invofin/board_backend/internal/models"
)

// ToModelAnalyticSnapshot converts a domain snapshot to its database model.
func ToModelAnalyticSnapshot(s domain.AnalyticSnapshot) models.AnalyticSnapshot {
	return models.AnalyticSnapshot{
		AnalyticID:  s.AnalyticID,
		UserID:      s.UserID,
		Cycle:       s.Cycle,
		Report:      s.Report,
		IsActive:    s.IsActive,
		AuditFields: ToModelAuditFields(s.AuditFields),
		DeletedAt:   s.DeletedAt,
	}
}

// ToDomainAnalyticSnapshot converts a database snapshot model to its domain form.
func ToDomainAnalyticSnapshot(s models.AnalyticSnapshot) domain.AnalyticSnapshot {
	return domain.AnalyticSnapshot{
		AnalyticID:  s.AnalyticID,
		UserID:      s.UserID,
		Cycle:       s.Cycle,
		Report:      s.Report,
		IsActive:    s.IsActive,
		AuditFields: ToDomainAuditFields(s.AuditFields),
		DeletedAt:   s.DeletedAt,
	}
}
