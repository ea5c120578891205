package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/invofin/board_backend/internal/core/domain"
	portsrepo "github.com/invofin/board_backend/internal/core/ports/repositories"
	portssvc "github.com/invofin/board_backend/internal/core/ports/services"
	"github.com/invofin/board_backend/internal/dto"
)

// clientService manages client labels.
type clientService struct {
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a new client service.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo}
}

// Ensure clientService implements the portssvc.ClientSvcFacade interface
var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) CreateClient(ctx context.Context, userID string, req dto.CreateClientRequest) (*domain.Client, error) {
	now := time.Now().UTC()
	client := domain.Client{
		ClientID:    uuid.NewString(),
		UserID:      userID,
		Name:        req.Name,
		City:        req.City,
		Email:       req.Email,
		Phone:       req.Phone,
		Responsible: req.Responsible,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *clientService) ListClients(ctx context.Context, userID string) ([]domain.Client, error) {
	return s.clientRepo.ListClients(ctx, userID)
}

func (s *clientService) UpdateClient(ctx context.Context, userID, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.City != nil {
		client.City = *req.City
	}
	if req.Email != nil {
		client.Email = req.Email
	}
	if req.Phone != nil {
		client.Phone = req.Phone
	}
	if req.Responsible != nil {
		client.Responsible = req.Responsible
	}
	client.LastUpdatedAt = time.Now().UTC()
	client.LastUpdatedBy = userID
	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, userID, clientID string) error {
	return s.clientRepo.DeactivateClient(ctx, userID, clientID, userID, time.Now().UTC())
}
