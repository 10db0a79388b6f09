package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/dto"
)

type profileService struct {
	BaseService
	profileRepo portsrepo.ProfileReader
	agencyRepo  portsrepo.AgencyReader
}

// NewProfileService creates the service behind /me, agencies and members.
func NewProfileService(profileRepo portsrepo.ProfileReader, agencyRepo portsrepo.AgencyReader) portssvc.ProfileSvcFacade {
	return &profileService{profileRepo: profileRepo, agencyRepo: agencyRepo}
}

var _ portssvc.ProfileSvcFacade = (*profileService)(nil)

func (s *profileService) ResolveCaller(ctx context.Context, userID string) (*domain.Caller, error) {
	profile, err := s.profileRepo.FindProfileByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load caller profile", slog.String("user_id", userID))
		}
		return nil, err
	}
	caller := domain.CallerFromProfile(*profile)
	return &caller, nil
}

func (s *profileService) GetMe(ctx context.Context, caller domain.Caller) (*dto.MeResponse, error) {
	profile, err := s.profileRepo.FindProfileByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	resp := &dto.MeResponse{Profile: *profile}
	if profile.AgencyID != nil {
		agency, err := s.agencyRepo.FindAgencyByID(ctx, *profile.AgencyID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load caller agency", slog.String("agency_id", *profile.AgencyID))
			return nil, err
		}
		resp.Agency = agency
	}
	return resp, nil
}

func (s *profileService) ListAgencyMembers(ctx context.Context, caller domain.Caller, agencyID string) ([]domain.Profile, error) {
	agencyID, err := s.resolveAgency(ctx, caller, agencyID)
	if err != nil {
		return nil, err
	}
	profiles, err := s.profileRepo.ListProfilesByAgency(ctx, agencyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list agency members", slog.String("agency_id", agencyID))
		return nil, err
	}
	return profiles, nil
}

func (s *profileService) ListAgencies(ctx context.Context, caller domain.Caller) ([]domain.Agency, error) {
	if !caller.IsSuperadmin() {
		if caller.AgencyID == nil {
			return []domain.Agency{}, nil
		}
		agency, err := s.agencyRepo.FindAgencyByID(ctx, *caller.AgencyID)
		if err != nil {
			return nil, err
		}
		return []domain.Agency{*agency}, nil
	}
	return s.agencyRepo.ListAgencies(ctx)
}

func (s *profileService) GetAgency(ctx context.Context, caller domain.Caller, agencyID string) (*domain.Agency, error) {
	if !canSee(caller, agencyID) {
		return nil, apperrors.NewNotFoundError("agency not found")
	}
	return s.agencyRepo.FindAgencyByID(ctx, agencyID)
}
