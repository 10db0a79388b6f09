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

type beneficiaryService struct {
	BaseService
	repo portsrepo.BeneficiaryRepositoryFacade
}

func NewBeneficiaryService(repo portsrepo.BeneficiaryRepositoryFacade, dashboard dashboardInvalidator) portssvc.BeneficiarySvcFacade {
	return &beneficiaryService{BaseService: BaseService{Dashboard: dashboard}, repo: repo}
}

var _ portssvc.BeneficiarySvcFacade = (*beneficiaryService)(nil)

func (s *beneficiaryService) CreateBeneficiary(ctx context.Context, caller domain.Caller, agencyID string, req dto.CreateBeneficiaryRequest) (*domain.Beneficiary, error) {
	agencyID, err := s.resolveAgency(ctx, caller, agencyID)
	if err != nil {
		return nil, err
	}
	b := domain.Beneficiary{
		BeneficiaryID: uuid.NewString(),
		AgencyID:      agencyID,
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Email:         normalizeEmail(req.Email),
		Phone:         strings.TrimSpace(req.Phone),
		Address:       req.Address,
		Notes:         req.Notes,
		AuditFields:   domain.NewAuditFields(caller.UserID, s.now()),
	}
	if err := s.repo.SaveBeneficiary(ctx, b); err != nil {
		s.LogError(ctx, err, "Failed to save beneficiary", slog.String("agency_id", agencyID))
		return nil, err
	}
	s.invalidateDashboard(ctx, agencyID)
	return &b, nil
}

func (s *beneficiaryService) GetBeneficiary(ctx context.Context, caller domain.Caller, beneficiaryID string) (*domain.Beneficiary, error) {
	b, err := s.repo.FindBeneficiaryByID(ctx, beneficiaryID)
	if err != nil {
		return nil, err
	}
	if !canSee(caller, b.AgencyID) {
		return nil, apperrors.NewNotFoundError("beneficiary not found")
	}
	return b, nil
}

func (s *beneficiaryService) ListBeneficiaries(ctx context.Context, caller domain.Caller, agencyID string, params dto.ListParams) ([]domain.Beneficiary, error) {
	agencyID, err := s.resolveAgency(ctx, caller, agencyID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListBeneficiaries(ctx, agencyID, strings.TrimSpace(params.Search), params.Limit, params.Offset)
}

func (s *beneficiaryService) UpdateBeneficiary(ctx context.Context, caller domain.Caller, beneficiaryID string, req dto.UpdateBeneficiaryRequest) (*domain.Beneficiary, error) {
	b, err := s.GetBeneficiary(ctx, caller, beneficiaryID)
	if err != nil {
		return nil, err
	}
	if req.FirstName != nil {
		b.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		b.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		b.Email = normalizeEmail(*req.Email)
	}
	if req.Phone != nil {
		b.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		b.Address = *req.Address
	}
	if req.Notes != nil {
		b.Notes = *req.Notes
	}
	b.Touch(caller.UserID, s.now())

	if err := s.repo.UpdateBeneficiary(ctx, *b); err != nil {
		s.LogError(ctx, err, "Failed to update beneficiary", slog.String("beneficiary_id", beneficiaryID))
		return nil, err
	}
	return b, nil
}

func (s *beneficiaryService) DeleteBeneficiary(ctx context.Context, caller domain.Caller, beneficiaryID string) error {
	b, err := s.GetBeneficiary(ctx, caller, beneficiaryID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteBeneficiary(ctx, beneficiaryID); err != nil {
		s.LogError(ctx, err, "Failed to delete beneficiary", slog.String("beneficiary_id", beneficiaryID))
		return err
	}
	s.invalidateDashboard(ctx, b.AgencyID)
	return nil
}
