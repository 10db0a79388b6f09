package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/dto"
	"github.com/google/uuid"
)

type donorService struct {
	BaseService
	repo portsrepo.DonorRepositoryFacade
}

func NewDonorService(repo portsrepo.DonorRepositoryFacade, dashboard dashboardInvalidator) portssvc.DonorSvcFacade {
	return &donorService{BaseService: BaseService{Dashboard: dashboard}, repo: repo}
}

var _ portssvc.DonorSvcFacade = (*donorService)(nil)

func (s *donorService) CreateDonor(ctx context.Context, caller domain.Caller, agencyID string, req dto.CreateDonorRequest) (*domain.Donor, error) {
	agencyID, err := s.resolveAgency(ctx, caller, agencyID)
	if err != nil {
		return nil, err
	}
	d := domain.Donor{
		DonorID:     uuid.NewString(),
		AgencyID:    agencyID,
		Name:        strings.TrimSpace(req.Name),
		Kind:        req.Kind,
		Email:       normalizeEmail(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		Address:     req.Address,
		Notes:       req.Notes,
		AuditFields: domain.NewAuditFields(caller.UserID, s.now()),
	}
	if err := s.repo.SaveDonor(ctx, d); err != nil {
		s.LogError(ctx, err, "Failed to save donor", slog.String("agency_id", agencyID))
		return nil, err
	}
	s.invalidateDashboard(ctx, agencyID)
	return &d, nil
}

func (s *donorService) GetDonor(ctx context.Context, caller domain.Caller, donorID string) (*domain.Donor, error) {
	d, err := s.repo.FindDonorByID(ctx, donorID)
	if err != nil {
		return nil, err
	}
	if !canSee(caller, d.AgencyID) {
		return nil, apperrors.NewNotFoundError("donor not found")
	}
	return d, nil
}

func (s *donorService) ListDonors(ctx context.Context, caller domain.Caller, agencyID string, params dto.ListParams) ([]domain.Donor, error) {
	agencyID, err := s.resolveAgency(ctx, caller, agencyID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListDonors(ctx, agencyID, params.Limit, params.Offset)
}

func (s *donorService) UpdateDonor(ctx context.Context, caller domain.Caller, donorID string, req dto.UpdateDonorRequest) (*domain.Donor, error) {
	d, err := s.GetDonor(ctx, caller, donorID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		d.Name = strings.TrimSpace(*req.Name)
	}
	if req.Kind != nil {
		d.Kind = *req.Kind
	}
	if req.Email != nil {
		d.Email = normalizeEmail(*req.Email)
	}
	if req.Phone != nil {
		d.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		d.Address = *req.Address
	}
	if req.Notes != nil {
		d.Notes = *req.Notes
	}
	d.Touch(caller.UserID, s.now())

	if err := s.repo.UpdateDonor(ctx, *d); err != nil {
		s.LogError(ctx, err, "Failed to update donor", slog.String("donor_id", donorID))
		return nil, err
	}
	return d, nil
}

func (s *donorService) DeleteDonor(ctx context.Context, caller domain.Caller, donorID string) error {
	d, err := s.GetDonor(ctx, caller, donorID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteDonor(ctx, donorID); err != nil {
		s.LogError(ctx, err, "Failed to delete donor", slog.String("donor_id", donorID))
		return err
	}
	s.invalidateDashboard(ctx, d.AgencyID)
	return nil
}
