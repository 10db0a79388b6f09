package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/core/services"
	"github.com/SscSPs/loandesk_backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testBeneficiaryID = "b1e2f3a4-5b6c-4d7e-8f9a-0b1c2d3e4f5a"

type BeneficiaryServiceTestSuite struct {
	suite.Suite
	repo       *MockBeneficiaryRepository
	dashboard  *recordingInvalidator
	caller     domain.Caller
	superadmin domain.Caller
	service    portssvc.BeneficiarySvcFacade
}

func (suite *BeneficiaryServiceTestSuite) SetupTest() {
	suite.repo = new(MockBeneficiaryRepository)
	suite.dashboard = &recordingInvalidator{}
	suite.caller = domain.Caller{UserID: testUserID, Role: domain.RoleVolunteer, AgencyID: strPtr(testAgencyID)}
	suite.superadmin = domain.Caller{UserID: "superadmin-1", Role: domain.RoleSuperadmin}
	suite.service = services.NewBeneficiaryService(suite.repo, suite.dashboard)
}

func TestBeneficiaryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BeneficiaryServiceTestSuite))
}

func (suite *BeneficiaryServiceTestSuite) beneficiary(agencyID string) *domain.Beneficiary {
	return &domain.Beneficiary{
		BeneficiaryID: testBeneficiaryID,
		AgencyID:      agencyID,
		FirstName:     "Marie",
		LastName:      "Dubois",
		Email:         "marie@example.org",
	}
}

func (suite *BeneficiaryServiceTestSuite) TestCreateBeneficiary_NormalizesInput() {
	req := dto.CreateBeneficiaryRequest{FirstName: " Marie ", LastName: "Dubois", Email: " Marie@Example.ORG ", Phone: " 0601 "}
	suite.repo.On("SaveBeneficiary", mock.Anything, mock.MatchedBy(func(b domain.Beneficiary) bool {
		return b.AgencyID == testAgencyID && b.FirstName == "Marie" &&
			b.Email == "marie@example.org" && b.Phone == "0601" && b.BeneficiaryID != ""
	})).Return(nil).Once()

	b, err := suite.service.CreateBeneficiary(context.Background(), suite.caller, "", req)

	suite.Require().NoError(err)
	suite.Equal(testUserID, b.CreatedBy)
	suite.Equal([]string{testAgencyID}, suite.dashboard.agencies)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *BeneficiaryServiceTestSuite) TestCreateBeneficiary_AnotherAgencyIsForbidden() {
	_, err := suite.service.CreateBeneficiary(context.Background(), suite.caller, "another-agency", dto.CreateBeneficiaryRequest{FirstName: "Marie"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.repo.AssertNotCalled(suite.T(), "SaveBeneficiary", mock.Anything, mock.Anything)
}

func (suite *BeneficiaryServiceTestSuite) TestCreateBeneficiary_SuperadminNeedsAgency() {
	_, err := suite.service.CreateBeneficiary(context.Background(), suite.superadmin, "", dto.CreateBeneficiaryRequest{FirstName: "Marie"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BeneficiaryServiceTestSuite) TestGetBeneficiary_Visibility() {
	tests := []struct {
		name     string
		caller   domain.Caller
		agencyID string
		wantErr  error
	}{
		{"own agency", suite.caller, testAgencyID, nil},
		{"other agency", suite.caller, "another-agency", apperrors.ErrNotFound},
		{"superadmin sees every agency", suite.superadmin, "another-agency", nil},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			suite.repo.On("FindBeneficiaryByID", mock.Anything, testBeneficiaryID).Return(suite.beneficiary(tt.agencyID), nil).Once()

			b, err := suite.service.GetBeneficiary(context.Background(), tt.caller, testBeneficiaryID)

			if tt.wantErr != nil {
				suite.Require().Error(err)
				suite.ErrorIs(err, tt.wantErr)
				return
			}
			suite.Require().NoError(err)
			suite.Equal(testBeneficiaryID, b.BeneficiaryID)
		})
	}
}

func (suite *BeneficiaryServiceTestSuite) TestListBeneficiaries_TrimsSearch() {
	suite.repo.On("ListBeneficiaries", mock.Anything, testAgencyID, "dub", 20, 40).
		Return([]domain.Beneficiary{*suite.beneficiary(testAgencyID)}, nil).Once()

	list, err := suite.service.ListBeneficiaries(context.Background(), suite.caller, "", dto.ListParams{Search: "  dub ", Limit: 20, Offset: 40})

	suite.Require().NoError(err)
	suite.Len(list, 1)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *BeneficiaryServiceTestSuite) TestUpdateBeneficiary_AppliesProvidedFields() {
	suite.repo.On("FindBeneficiaryByID", mock.Anything, testBeneficiaryID).Return(suite.beneficiary(testAgencyID), nil).Once()
	suite.repo.On("UpdateBeneficiary", mock.Anything, mock.MatchedBy(func(b domain.Beneficiary) bool {
		return b.FirstName == "Marie" && b.Phone == "0700" && b.Notes == "moved" && b.LastUpdatedBy == testUserID
	})).Return(nil).Once()

	b, err := suite.service.UpdateBeneficiary(context.Background(), suite.caller, testBeneficiaryID, dto.UpdateBeneficiaryRequest{
		Phone: strPtr(" 0700 "),
		Notes: strPtr("moved"),
	})

	suite.Require().NoError(err)
	suite.Equal("0700", b.Phone)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *BeneficiaryServiceTestSuite) TestDeleteBeneficiary_OtherAgencyIsNotFound() {
	suite.repo.On("FindBeneficiaryByID", mock.Anything, testBeneficiaryID).Return(suite.beneficiary("another-agency"), nil).Once()

	err := suite.service.DeleteBeneficiary(context.Background(), suite.caller, testBeneficiaryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.repo.AssertNotCalled(suite.T(), "DeleteBeneficiary", mock.Anything, mock.Anything)
}

func (suite *BeneficiaryServiceTestSuite) TestDeleteBeneficiary_RepositoryError() {
	suite.repo.On("FindBeneficiaryByID", mock.Anything, testBeneficiaryID).Return(suite.beneficiary(testAgencyID), nil).Once()
	suite.repo.On("DeleteBeneficiary", mock.Anything, testBeneficiaryID).Return(assert.AnError).Once()

	err := suite.service.DeleteBeneficiary(context.Background(), suite.caller, testBeneficiaryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.Empty(suite.dashboard.agencies)
}
