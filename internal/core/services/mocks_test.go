package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// fakeTxManager runs the unit of work inline.
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// --- Mock LoanRepository ---
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) FindLoanArticles(ctx context.Context, loanID string) ([]domain.LoanArticle, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanArticle), args.Error(1)
}

func (m *MockLoanRepository) ListLoans(ctx context.Context, agencyID string, filter domain.LoanFilter, now time.Time) ([]domain.Loan, *string, error) {
	args := m.Called(ctx, agencyID, filter, now)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Loan), next, args.Error(2)
}

func (m *MockLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan, articles []domain.LoanArticle) error {
	args := m.Called(ctx, loan, articles)
	return args.Error(0)
}

func (m *MockLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) UpdateLoanDetails(ctx context.Context, loan domain.Loan) error {
	return m.Called(ctx, loan).Error(0)
}

func (m *MockLoanRepository) CloseLoanArticle(ctx context.Context, article domain.LoanArticle) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

// --- Mock ArticleRepository ---
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) FindArticleByID(ctx context.Context, articleID string) (*domain.Article, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleRepository) FindArticlesByIDs(ctx context.Context, articleIDs []string) ([]domain.Article, error) {
	args := m.Called(ctx, articleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *MockArticleRepository) ListArticles(ctx context.Context, agencyID string, filter domain.ArticleFilter) ([]domain.Article, error) {
	args := m.Called(ctx, agencyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *MockArticleRepository) SaveArticle(ctx context.Context, article domain.Article) error {
	return m.Called(ctx, article).Error(0)
}

func (m *MockArticleRepository) UpdateArticle(ctx context.Context, article domain.Article) error {
	return m.Called(ctx, article).Error(0)
}

func (m *MockArticleRepository) UpdateArticleStatus(ctx context.Context, articleID string, status domain.ArticleStatus, state *domain.ArticleState, userID string, at time.Time) error {
	return m.Called(ctx, articleID, status, state, userID, at).Error(0)
}

func (m *MockArticleRepository) DeleteArticle(ctx context.Context, articleID string) error {
	return m.Called(ctx, articleID).Error(0)
}

// --- Mock BeneficiaryRepository ---
type MockBeneficiaryRepository struct {
	mock.Mock
}

func (m *MockBeneficiaryRepository) FindBeneficiaryByID(ctx context.Context, beneficiaryID string) (*domain.Beneficiary, error) {
	args := m.Called(ctx, beneficiaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Beneficiary), args.Error(1)
}

func (m *MockBeneficiaryRepository) ListBeneficiaries(ctx context.Context, agencyID string, search string, limit int, offset int) ([]domain.Beneficiary, error) {
	args := m.Called(ctx, agencyID, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Beneficiary), args.Error(1)
}

func (m *MockBeneficiaryRepository) SaveBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error {
	return m.Called(ctx, beneficiary).Error(0)
}

func (m *MockBeneficiaryRepository) UpdateBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error {
	return m.Called(ctx, beneficiary).Error(0)
}

func (m *MockBeneficiaryRepository) DeleteBeneficiary(ctx context.Context, beneficiaryID string) error {
	return m.Called(ctx, beneficiaryID).Error(0)
}

// --- Mock SignupRequestRepository ---
type MockSignupRepository struct {
	mock.Mock
}

func (m *MockSignupRepository) FindAdminRequestByID(ctx context.Context, requestID string) (*domain.AdminSignupRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminSignupRequest), args.Error(1)
}

func (m *MockSignupRepository) FindVolunteerRequestByID(ctx context.Context, requestID string) (*domain.VolunteerSignupRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VolunteerSignupRequest), args.Error(1)
}

func (m *MockSignupRepository) ListAdminRequests(ctx context.Context, status domain.RequestStatus) ([]domain.AdminSignupRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AdminSignupRequest), args.Error(1)
}

func (m *MockSignupRepository) ListVolunteerRequests(ctx context.Context, agencyID string, status domain.RequestStatus) ([]domain.VolunteerSignupRequest, error) {
	args := m.Called(ctx, agencyID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VolunteerSignupRequest), args.Error(1)
}

func (m *MockSignupRepository) SaveAdminRequest(ctx context.Context, req domain.AdminSignupRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockSignupRepository) SaveVolunteerRequest(ctx context.Context, req domain.VolunteerSignupRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockSignupRepository) ReviewAdminRequest(ctx context.Context, requestID string, review domain.Review) error {
	return m.Called(ctx, requestID, review).Error(0)
}

func (m *MockSignupRepository) ReviewVolunteerRequest(ctx context.Context, requestID string, review domain.Review) error {
	return m.Called(ctx, requestID, review).Error(0)
}

// --- Mock ProfileRepository ---
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindProfileByID(ctx context.Context, profileID string) (*domain.Profile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) ListProfilesByAgency(ctx context.Context, agencyID string) ([]domain.Profile, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) UpsertProfile(ctx context.Context, profile domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

// --- Mock AgencyRepository ---
type MockAgencyRepository struct {
	mock.Mock
}

func (m *MockAgencyRepository) FindAgencyByID(ctx context.Context, agencyID string) (*domain.Agency, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agency), args.Error(1)
}

func (m *MockAgencyRepository) FindAgencyByName(ctx context.Context, name string) (*domain.Agency, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agency), args.Error(1)
}

func (m *MockAgencyRepository) ListAgencies(ctx context.Context) ([]domain.Agency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Agency), args.Error(1)
}

func (m *MockAgencyRepository) SaveAgency(ctx context.Context, agency domain.Agency) error {
	return m.Called(ctx, agency).Error(0)
}

func (m *MockAgencyRepository) AssignAgencyAdmin(ctx context.Context, agencyID string, adminID string) (bool, error) {
	args := m.Called(ctx, agencyID, adminID)
	return args.Bool(0), args.Error(1)
}

// --- Mock IdentityProvider ---
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) FindUserByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockIdentityProvider) InviteUserByEmail(ctx context.Context, email string, redirectURL string) (*domain.Identity, error) {
	args := m.Called(ctx, email, redirectURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockIdentityProvider) GetUserByID(ctx context.Context, identityID string) (*domain.Identity, error) {
	args := m.Called(ctx, identityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockIdentityProvider) DeleteUser(ctx context.Context, identityID string) error {
	return m.Called(ctx, identityID).Error(0)
}

func (m *MockIdentityProvider) AcceptInvite(ctx context.Context, token string, password string) (*domain.Identity, error) {
	args := m.Called(ctx, token, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockIdentityProvider) VerifyPassword(ctx context.Context, email string, password string) (*domain.Identity, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockIdentityProvider) LinkGoogleSubject(ctx context.Context, identityID string, subject string) error {
	return m.Called(ctx, identityID, subject).Error(0)
}

// --- Mock Finance / Dashboard ---
type MockFinanceRepository struct {
	mock.Mock
}

func (m *MockFinanceRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.FinancialTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialTransaction), args.Error(1)
}

func (m *MockFinanceRepository) ListTransactions(ctx context.Context, agencyID string, filter domain.TransactionFilter) ([]domain.FinancialTransaction, error) {
	args := m.Called(ctx, agencyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialTransaction), args.Error(1)
}

func (m *MockFinanceRepository) SumByCategory(ctx context.Context, agencyID string, from time.Time, to time.Time) ([]domain.CategoryTotal, error) {
	args := m.Called(ctx, agencyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryTotal), args.Error(1)
}

func (m *MockFinanceRepository) SaveTransaction(ctx context.Context, txn domain.FinancialTransaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockFinanceRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	return m.Called(ctx, transactionID).Error(0)
}

type MockDonorRepository struct {
	mock.Mock
}

func (m *MockDonorRepository) FindDonorByID(ctx context.Context, donorID string) (*domain.Donor, error) {
	args := m.Called(ctx, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donor), args.Error(1)
}

func (m *MockDonorRepository) ListDonors(ctx context.Context, agencyID string, limit int, offset int) ([]domain.Donor, error) {
	args := m.Called(ctx, agencyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Donor), args.Error(1)
}

func (m *MockDonorRepository) SaveDonor(ctx context.Context, donor domain.Donor) error {
	return m.Called(ctx, donor).Error(0)
}

func (m *MockDonorRepository) UpdateDonor(ctx context.Context, donor domain.Donor) error {
	return m.Called(ctx, donor).Error(0)
}

func (m *MockDonorRepository) DeleteDonor(ctx context.Context, donorID string) error {
	return m.Called(ctx, donorID).Error(0)
}

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) SaveMessage(ctx context.Context, msg domain.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockMessageRepository) ListMessages(ctx context.Context, userID string, box domain.Mailbox, limit int, offset int) ([]domain.Message, error) {
	args := m.Called(ctx, userID, box, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockMessageRepository) MarkMessageRead(ctx context.Context, messageID string, recipientID string, at time.Time) error {
	return m.Called(ctx, messageID, recipientID, at).Error(0)
}

func (m *MockMessageRepository) CountUnread(ctx context.Context, recipientID string) (int, error) {
	args := m.Called(ctx, recipientID)
	return args.Int(0), args.Error(1)
}

type MockDashboardReader struct {
	mock.Mock
}

func (m *MockDashboardReader) DashboardCounts(ctx context.Context, agencyID string, now time.Time) (*domain.DashboardCounts, error) {
	args := m.Called(ctx, agencyID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardCounts), args.Error(1)
}

type MockDashboardCache struct {
	mock.Mock
}

func (m *MockDashboardCache) GetDashboard(ctx context.Context, agencyID string) (*domain.DashboardStats, bool, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.DashboardStats), args.Bool(1), args.Error(2)
}

func (m *MockDashboardCache) SetDashboard(ctx context.Context, stats domain.DashboardStats, ttl time.Duration) error {
	return m.Called(ctx, stats, ttl).Error(0)
}

func (m *MockDashboardCache) InvalidateDashboard(ctx context.Context, agencyID string) error {
	return m.Called(ctx, agencyID).Error(0)
}

// recordingInvalidator remembers which agencies had their dashboard dropped.
type recordingInvalidator struct {
	agencies []string
}

func (r *recordingInvalidator) Invalidate(ctx context.Context, agencyID string) {
	r.agencies = append(r.agencies, agencyID)
}

func strPtr(s string) *string {
	return &s
}

func statePtr(s domain.ArticleState) *domain.ArticleState {
	return &s
}
