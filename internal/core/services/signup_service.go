package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/dto"
	"github.com/google/uuid"
)

// signupService implements the SignupSvcFacade interface
type signupService struct {
	BaseService
	txManager         portsrepo.TransactionManager
	signupRepo        portsrepo.SignupRequestRepositoryFacade
	profileRepo       portsrepo.ProfileRepositoryFacade
	agencyRepo        portsrepo.AgencyRepositoryFacade
	identity          portsrepo.IdentityProvider
	inviteRedirectURL string
}

// SignupServiceOption is a functional option for configuring the signup service
type SignupServiceOption func(*signupService)

// WithInviteRedirectURL sets the page invitation links point to.
func WithInviteRedirectURL(url string) SignupServiceOption {
	return func(s *signupService) {
		s.inviteRedirectURL = url
	}
}

// WithSignupClock overrides the time source.
func WithSignupClock(now func() time.Time) SignupServiceOption {
	return func(s *signupService) {
		s.Now = now
	}
}

// NewSignupService creates a new signup and approval service
func NewSignupService(
	txManager portsrepo.TransactionManager,
	signupRepo portsrepo.SignupRequestRepositoryFacade,
	profileRepo portsrepo.ProfileRepositoryFacade,
	agencyRepo portsrepo.AgencyRepositoryFacade,
	identity portsrepo.IdentityProvider,
	options ...SignupServiceOption,
) portssvc.SignupSvcFacade {
	svc := &signupService{
		txManager:   txManager,
		signupRepo:  signupRepo,
		profileRepo: profileRepo,
		agencyRepo:  agencyRepo,
		identity:    identity,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SignupSvcFacade = (*signupService)(nil)

func notPending(status domain.RequestStatus) error {
	return apperrors.NewAppError(409, "request already "+string(status), apperrors.ErrRequestNotPending)
}

func (s *signupService) ApproveAdminRequest(ctx context.Context, caller domain.Caller, requestID string) error {
	if !caller.IsSuperadmin() {
		return apperrors.NewForbiddenError("only a superadmin can approve admin requests")
	}

	req, err := s.signupRepo.FindAdminRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if !req.Status.IsPending() {
		return notPending(req.Status)
	}

	ident, created, err := s.resolveIdentity(ctx, req.Email)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve identity for admin request", slog.String("request_id", requestID))
		return err
	}

	now := s.now()
	err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		agency, err := s.agencyRepo.FindAgencyByName(ctx, req.AgencyName)
		if errors.Is(err, apperrors.ErrNotFound) {
			agency = &domain.Agency{
				AgencyID:    uuid.NewString(),
				Name:        strings.TrimSpace(req.AgencyName),
				AuditFields: domain.NewAuditFields(caller.UserID, now),
			}
			err = s.agencyRepo.SaveAgency(ctx, *agency)
		}
		if err != nil {
			return err
		}

		if err := s.upsertProfile(ctx, caller, ident.IdentityID, req.FirstName, req.LastName, req.Email, domain.RoleAdmin, agency.AgencyID, now); err != nil {
			return err
		}

		assigned, err := s.agencyRepo.AssignAgencyAdmin(ctx, agency.AgencyID, ident.IdentityID)
		if err != nil {
			return err
		}
		if !assigned {
			s.LogDebug(ctx, "Agency already has an admin", slog.String("agency_id", agency.AgencyID))
		}

		return s.signupRepo.ReviewAdminRequest(ctx, requestID, domain.Review{
			Status:     domain.RequestApproved,
			ReviewedBy: caller.UserID,
			ReviewedAt: now,
			AgencyID:   &agency.AgencyID,
		})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to approve admin request", slog.String("request_id", requestID))
		s.undoInvite(ctx, ident, created)
		return err
	}

	s.LogInfo(ctx, "Admin request approved",
		slog.String("request_id", requestID),
		slog.String("identity_id", ident.IdentityID),
		slog.Bool("invited", created))
	return nil
}

func (s *signupService) ApproveVolunteerRequest(ctx context.Context, caller domain.Caller, requestID string) error {
	if !caller.IsAdmin() {
		return apperrors.NewForbiddenError("only an admin can approve volunteer requests")
	}

	req, err := s.signupRepo.FindVolunteerRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if !req.Status.IsPending() {
		return notPending(req.Status)
	}
	if !caller.IsSuperadmin() && !caller.BelongsTo(req.AgencyID) {
		return apperrors.NewForbiddenError("this request belongs to another agency")
	}

	ident, created, err := s.resolveIdentity(ctx, req.Email)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve identity for volunteer request", slog.String("request_id", requestID))
		return err
	}

	now := s.now()
	err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.upsertProfile(ctx, caller, ident.IdentityID, req.FirstName, req.LastName, req.Email, domain.RoleVolunteer, req.AgencyID, now); err != nil {
			return err
		}
		return s.signupRepo.ReviewVolunteerRequest(ctx, requestID, domain.Review{
			Status:     domain.RequestApproved,
			ReviewedBy: caller.UserID,
			ReviewedAt: now,
		})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to approve volunteer request", slog.String("request_id", requestID))
		s.undoInvite(ctx, ident, created)
		return err
	}

	s.LogInfo(ctx, "Volunteer request approved",
		slog.String("request_id", requestID),
		slog.String("identity_id", ident.IdentityID),
		slog.Bool("invited", created))
	return nil
}

func (s *signupService) RejectAdminRequest(ctx context.Context, caller domain.Caller, requestID string) error {
	if !caller.IsSuperadmin() {
		return apperrors.NewForbiddenError("only a superadmin can reject admin requests")
	}
	req, err := s.signupRepo.FindAdminRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if !req.Status.IsPending() {
		return notPending(req.Status)
	}
	err = s.signupRepo.ReviewAdminRequest(ctx, requestID, domain.Review{
		Status:     domain.RequestRejected,
		ReviewedBy: caller.UserID,
		ReviewedAt: s.now(),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reject admin request", slog.String("request_id", requestID))
		return err
	}
	s.LogInfo(ctx, "Admin request rejected", slog.String("request_id", requestID))
	return nil
}

func (s *signupService) RejectVolunteerRequest(ctx context.Context, caller domain.Caller, requestID string) error {
	if !caller.IsAdmin() {
		return apperrors.NewForbiddenError("only an admin can reject volunteer requests")
	}
	req, err := s.signupRepo.FindVolunteerRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if !req.Status.IsPending() {
		return notPending(req.Status)
	}
	if !caller.IsSuperadmin() && !caller.BelongsTo(req.AgencyID) {
		return apperrors.NewForbiddenError("this request belongs to another agency")
	}
	err = s.signupRepo.ReviewVolunteerRequest(ctx, requestID, domain.Review{
		Status:     domain.RequestRejected,
		ReviewedBy: caller.UserID,
		ReviewedAt: s.now(),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reject volunteer request", slog.String("request_id", requestID))
		return err
	}
	s.LogInfo(ctx, "Volunteer request rejected", slog.String("request_id", requestID))
	return nil
}

// resolveIdentity returns the identity registered for email, inviting one when
// there is none. created tells whether the identity was made by this call.
func (s *signupService) resolveIdentity(ctx context.Context, email string) (*domain.Identity, bool, error) {
	ident, err := s.identity.FindUserByEmail(ctx, email)
	if err == nil {
		return ident, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, err
	}
	ident, err = s.identity.InviteUserByEmail(ctx, email, s.inviteRedirectURL)
	if err != nil {
		return nil, false, err
	}
	return ident, true, nil
}

// undoInvite deletes an identity this approval created. Existing identities are never touched.
func (s *signupService) undoInvite(ctx context.Context, ident *domain.Identity, created bool) {
	if !created {
		return
	}
	if err := s.identity.DeleteUser(ctx, ident.IdentityID); err != nil {
		s.LogError(ctx, err, "Failed to delete invited identity after approval failure",
			slog.String("identity_id", ident.IdentityID))
		return
	}
	s.LogInfo(ctx, "Invited identity removed after approval failure", slog.String("identity_id", ident.IdentityID))
}

// upsertProfile writes the approved profile. A superadmin keeps its role.
func (s *signupService) upsertProfile(ctx context.Context, caller domain.Caller, profileID, firstName, lastName, email string, role domain.Role, agencyID string, now time.Time) error {
	profile := domain.Profile{
		ProfileID:   profileID,
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		Role:        role,
		AgencyID:    &agencyID,
		AuditFields: domain.NewAuditFields(caller.UserID, now),
	}

	existing, err := s.profileRepo.FindProfileByID(ctx, profileID)
	switch {
	case err == nil:
		profile.AuditFields = existing.AuditFields
		profile.Touch(caller.UserID, now)
		if existing.Role == domain.RoleSuperadmin {
			profile.Role = domain.RoleSuperadmin
		}
	case !errors.Is(err, apperrors.ErrNotFound):
		return err
	}
	return s.profileRepo.UpsertProfile(ctx, profile)
}

func (s *signupService) SubmitAdminRequest(ctx context.Context, req dto.CreateAdminSignupRequest) (*domain.AdminSignupRequest, error) {
	request := domain.AdminSignupRequest{
		RequestID:  uuid.NewString(),
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Email:      normalizeEmail(req.Email),
		AgencyName: strings.TrimSpace(req.AgencyName),
		Status:     domain.RequestPending,
		CreatedAt:  s.now(),
	}
	if err := s.signupRepo.SaveAdminRequest(ctx, request); err != nil {
		s.LogError(ctx, err, "Failed to save admin signup request")
		return nil, err
	}
	s.LogInfo(ctx, "Admin signup request submitted", slog.String("request_id", request.RequestID))
	return &request, nil
}

func (s *signupService) SubmitVolunteerRequest(ctx context.Context, req dto.CreateVolunteerSignupRequest) (*domain.VolunteerSignupRequest, error) {
	if _, err := s.agencyRepo.FindAgencyByID(ctx, req.AgencyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationFailedError("agency not found")
		}
		return nil, err
	}

	request := domain.VolunteerSignupRequest{
		RequestID: uuid.NewString(),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     normalizeEmail(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		AgencyID:  req.AgencyID,
		Status:    domain.RequestPending,
		CreatedAt: s.now(),
	}
	if err := s.signupRepo.SaveVolunteerRequest(ctx, request); err != nil {
		s.LogError(ctx, err, "Failed to save volunteer signup request")
		return nil, err
	}
	s.LogInfo(ctx, "Volunteer signup request submitted",
		slog.String("request_id", request.RequestID),
		slog.String("agency_id", request.AgencyID))
	return &request, nil
}

func (s *signupService) ListPendingRequests(ctx context.Context, caller domain.Caller) (*dto.PendingRequestsResponse, error) {
	resp := &dto.PendingRequestsResponse{
		AdminRequests:     []domain.AdminSignupRequest{},
		VolunteerRequests: []domain.VolunteerSignupRequest{},
	}

	switch {
	case caller.IsSuperadmin():
		admins, err := s.signupRepo.ListAdminRequests(ctx, domain.RequestPending)
		if err != nil {
			return nil, err
		}
		volunteers, err := s.signupRepo.ListVolunteerRequests(ctx, "", domain.RequestPending)
		if err != nil {
			return nil, err
		}
		resp.AdminRequests = admins
		resp.VolunteerRequests = volunteers
	case caller.IsAdmin() && caller.AgencyID != nil:
		volunteers, err := s.signupRepo.ListVolunteerRequests(ctx, *caller.AgencyID, domain.RequestPending)
		if err != nil {
			return nil, err
		}
		resp.VolunteerRequests = volunteers
	default:
		return nil, apperrors.NewForbiddenError("only admins can review signup requests")
	}
	return resp, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
