package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hroffice/hroffice_backend/internal/apperrors"
	"github.com/hroffice/hroffice_backend/internal/core/domain"
	portssvc "github.com/hroffice/hroffice_backend/internal/core/ports/services"
	"github.com/hroffice/hroffice_backend/internal/core/services"
	"github.com/hroffice/hroffice_backend/internal/dto"
)

type CashAdvanceServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockCashAdvanceRepository
	mockAuthz *MockAuthzService
	service   portssvc.CashAdvanceSvcFacade
	ctx       context.Context
}

func (s *CashAdvanceServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockCashAdvanceRepository)
	s.mockAuthz = new(MockAuthzService)
	s.service = services.NewCashAdvanceService(s.mockRepo, s.mockAuthz)
	s.ctx = context.Background()
}

func (s *CashAdvanceServiceTestSuite) createRequest() dto.CreateCashAdvanceRequest {
	return dto.CreateCashAdvanceRequest{
		Amount:     decimal.RequireFromString("2500.00"),
		Purpose:    "site visit",
		Type:       string(domain.CashAdvanceSupport),
		DateNeeded: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *CashAdvanceServiceTestSuite) TestCreateCashAdvance_Success() {
	actor := uuid.NewString()
	s.mockRepo.On("SaveCashAdvance", s.ctx, mock.AnythingOfType("domain.CashAdvance")).Return(nil)

	advance, err := s.service.CreateCashAdvance(s.ctx, s.createRequest(), actor)

	s.Require().NoError(err)
	s.Equal(actor, advance.EmployeeID)
	s.Equal(domain.CashAdvancePending, advance.Status)
	s.True(decimal.RequireFromString("2500.00").Equal(advance.Amount))
	s.NotEmpty(advance.CashAdvanceID)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *CashAdvanceServiceTestSuite) TestCreateCashAdvance_RejectsNonPositiveAmount() {
	req := s.createRequest()
	req.Amount = decimal.Zero

	_, err := s.service.CreateCashAdvance(s.ctx, req, uuid.NewString())

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "SaveCashAdvance", mock.Anything, mock.Anything)
}

func (s *CashAdvanceServiceTestSuite) TestDecideCashAdvance_Approve() {
	approver := uuid.NewString()
	advance := &domain.CashAdvance{
		CashAdvanceID: uuid.NewString(),
		EmployeeID:    uuid.NewString(),
		Amount:        decimal.RequireFromString("1000.00"),
		Status:        domain.CashAdvancePending,
		Type:          domain.CashAdvanceSupport,
	}

	s.mockAuthz.On("HasCapability", s.ctx, approver, domain.CapApproveCashAdv).Return(nil)
	s.mockRepo.On("FindCashAdvanceByID", s.ctx, advance.CashAdvanceID).Return(advance, nil)
	s.mockRepo.On("UpdateCashAdvanceStatus", s.ctx, advance.CashAdvanceID, domain.CashAdvanceApproved, approver).Return(nil)

	decided, err := s.service.DecideCashAdvance(s.ctx, advance.CashAdvanceID, true, approver)

	s.Require().NoError(err)
	s.Equal(domain.CashAdvanceApproved, decided.Status)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *CashAdvanceServiceTestSuite) TestDecideCashAdvance_AlreadyDecided() {
	approver := uuid.NewString()
	advance := &domain.CashAdvance{
		CashAdvanceID: uuid.NewString(),
		Status:        domain.CashAdvanceApproved,
	}

	s.mockAuthz.On("HasCapability", s.ctx, approver, domain.CapApproveCashAdv).Return(nil)
	s.mockRepo.On("FindCashAdvanceByID", s.ctx, advance.CashAdvanceID).Return(advance, nil)

	_, err := s.service.DecideCashAdvance(s.ctx, advance.CashAdvanceID, false, approver)

	s.ErrorIs(err, apperrors.ErrInvalidState)
	s.mockRepo.AssertNotCalled(s.T(), "UpdateCashAdvanceStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *CashAdvanceServiceTestSuite) TestDecideCashAdvance_Forbidden() {
	actor := uuid.NewString()
	s.mockAuthz.On("HasCapability", s.ctx, actor, domain.CapApproveCashAdv).Return(apperrors.ErrForbidden)

	_, err := s.service.DecideCashAdvance(s.ctx, uuid.NewString(), true, actor)

	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockRepo.AssertNotCalled(s.T(), "FindCashAdvanceByID", mock.Anything, mock.Anything)
}

func (s *CashAdvanceServiceTestSuite) TestGetCashAdvance_HiddenFromUnrelatedActor() {
	stranger := uuid.NewString()
	advance := &domain.CashAdvance{
		CashAdvanceID: uuid.NewString(),
		EmployeeID:    uuid.NewString(),
		Status:        domain.CashAdvanceApproved,
	}

	s.mockRepo.On("FindCashAdvanceByID", s.ctx, advance.CashAdvanceID).Return(advance, nil)
	s.mockAuthz.On("HasCapability", s.ctx, stranger, domain.CapApproveCashAdv).Return(apperrors.ErrForbidden)

	_, err := s.service.GetCashAdvance(s.ctx, advance.CashAdvanceID, stranger)

	s.ErrorIs(err, apperrors.ErrNotFound, "existence is obscured from unrelated actors")
}

func (s *CashAdvanceServiceTestSuite) TestGetCashAdvance_OwnerSees() {
	owner := uuid.NewString()
	advance := &domain.CashAdvance{
		CashAdvanceID: uuid.NewString(),
		EmployeeID:    owner,
		Status:        domain.CashAdvancePending,
	}

	s.mockRepo.On("FindCashAdvanceByID", s.ctx, advance.CashAdvanceID).Return(advance, nil)

	got, err := s.service.GetCashAdvance(s.ctx, advance.CashAdvanceID, owner)

	s.Require().NoError(err)
	s.Equal(advance.CashAdvanceID, got.CashAdvanceID)
	s.mockAuthz.AssertNotCalled(s.T(), "HasCapability", mock.Anything, mock.Anything, mock.Anything)
}

func (s *CashAdvanceServiceTestSuite) TestListCashAdvances_OthersRequireCapability() {
	actor := uuid.NewString()
	other := uuid.NewString()
	s.mockAuthz.On("HasCapability", s.ctx, actor, domain.CapApproveCashAdv).Return(apperrors.ErrForbidden)

	_, err := s.service.ListCashAdvances(s.ctx, other, dto.ListCashAdvancesParams{}, actor)

	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *CashAdvanceServiceTestSuite) TestListCashAdvances_Own() {
	actor := uuid.NewString()
	s.mockRepo.On("ListCashAdvancesByEmployee", s.ctx, actor, 20, (*string)(nil)).Return([]domain.CashAdvance{
		{CashAdvanceID: uuid.NewString(), EmployeeID: actor, Status: domain.CashAdvancePending},
	}, nil, nil)

	resp, err := s.service.ListCashAdvances(s.ctx, actor, dto.ListCashAdvancesParams{}, actor)

	s.Require().NoError(err)
	s.Len(resp.CashAdvances, 1)
	s.mockRepo.AssertExpectations(s.T())
}

func TestCashAdvanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CashAdvanceServiceTestSuite))
}
