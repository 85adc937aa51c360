package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/hroffice/hroffice_backend/internal/apperrors"
	"github.com/hroffice/hroffice_backend/internal/core/domain"
	portsrepo "github.com/hroffice/hroffice_backend/internal/core/ports/repositories"
	portssvc "github.com/hroffice/hroffice_backend/internal/core/ports/services"
	"github.com/hroffice/hroffice_backend/internal/core/services"
	"github.com/hroffice/hroffice_backend/internal/dto"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) HasAnyUser(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockUserRepository
	mockAuthz *MockAuthzService
	service   portssvc.UserSvcFacade
	ctx       context.Context
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockUserRepository)
	s.mockAuthz = new(MockAuthzService)
	s.service = services.NewUserService(s.mockRepo, s.mockAuthz)
	s.ctx = context.Background()
}

func (s *UserServiceTestSuite) TestCreateUser_Success() {
	admin := uuid.NewString()
	req := dto.CreateUserRequest{Username: "jdoe", Name: "J. Doe", Password: "s3cret-pass", Role: string(domain.RoleEmployee)}

	s.mockAuthz.On("HasCapability", s.ctx, admin, domain.CapManageUsers).Return(nil)
	s.mockRepo.On("FindUserByUsername", s.ctx, "jdoe").Return(nil, apperrors.ErrNotFound)
	s.mockRepo.On("SaveUser", s.ctx, mock.AnythingOfType("domain.User")).Return(nil)

	user, err := s.service.CreateUser(s.ctx, req, admin)

	s.Require().NoError(err)
	s.Equal("jdoe", user.Username)
	s.Equal(domain.RoleEmployee, user.Role)
	s.NotEqual("s3cret-pass", user.PasswordHash, "password must be stored hashed")
	s.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	admin := uuid.NewString()
	req := dto.CreateUserRequest{Username: "jdoe", Name: "J. Doe", Password: "s3cret-pass", Role: string(domain.RoleEmployee)}

	s.mockAuthz.On("HasCapability", s.ctx, admin, domain.CapManageUsers).Return(nil)
	s.mockRepo.On("FindUserByUsername", s.ctx, "jdoe").Return(&domain.User{UserID: uuid.NewString(), Username: "jdoe"}, nil)

	_, err := s.service.CreateUser(s.ctx, req, admin)

	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.mockRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestCreateUser_Forbidden() {
	actor := uuid.NewString()
	s.mockAuthz.On("HasCapability", s.ctx, actor, domain.CapManageUsers).Return(apperrors.ErrForbidden)

	_, err := s.service.CreateUser(s.ctx, dto.CreateUserRequest{Username: "x", Name: "x", Password: "password", Role: string(domain.RoleEmployee)}, actor)

	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *UserServiceTestSuite) TestAuthenticate() {
	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	s.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "jdoe", PasswordHash: string(hash)}

	s.mockRepo.On("FindUserByUsername", s.ctx, "jdoe").Return(user, nil)
	s.mockRepo.On("FindUserByUsername", s.ctx, "ghost").Return(nil, apperrors.ErrNotFound)

	got, err := s.service.Authenticate(s.ctx, "jdoe", "right-password")
	s.Require().NoError(err)
	s.Equal(user.UserID, got.UserID)

	// Unknown user and wrong password are indistinguishable to the caller.
	_, err = s.service.Authenticate(s.ctx, "jdoe", "wrong-password")
	s.ErrorIs(err, services.ErrInvalidCredentials)

	_, err = s.service.Authenticate(s.ctx, "ghost", "right-password")
	s.ErrorIs(err, services.ErrInvalidCredentials)
}

func (s *UserServiceTestSuite) TestEnsureBootstrapAdmin_CreatesFirstAccount() {
	s.mockRepo.On("HasAnyUser", s.ctx).Return(false, nil)
	s.mockRepo.On("SaveUser", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleHRAdmin && u.Username == "admin"
	})).Return(nil)

	err := s.service.EnsureBootstrapAdmin(s.ctx, "admin", "Administrator", "bootstrap-pass")

	s.NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestEnsureBootstrapAdmin_NoOpWhenAccountsExist() {
	s.mockRepo.On("HasAnyUser", s.ctx).Return(true, nil)

	err := s.service.EnsureBootstrapAdmin(s.ctx, "admin", "Administrator", "bootstrap-pass")

	s.NoError(err)
	s.mockRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
