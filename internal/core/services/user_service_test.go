package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/tanmayd/user_platform_app/internal/apperrors"
	"github.com/tanmayd/user_platform_app/internal/core/domain"
	portssvc "github.com/tanmayd/user_platform_app/internal/core/ports/services"
	"github.com/tanmayd/user_platform_app/internal/core/services"
	"github.com/tanmayd/user_platform_app/internal/dto"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
	ctx      context.Context
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockUserRepository)
	s.service = services.NewUserService(s.mockRepo)
	s.ctx = context.Background()
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) TestGetProfileByEmail() {
	user := &domain.User{UserID: "u-1", Email: "a@x.com", Name: "A"}
	s.mockRepo.On("FindUserByEmail", s.ctx, "a@x.com").Return(user, nil)

	got, err := s.service.GetProfileByEmail(s.ctx, "a@x.com")
	s.Require().NoError(err)
	s.Equal("u-1", got.UserID)
}

func (s *UserServiceTestSuite) TestGetProfileByEmail_NotFound() {
	s.mockRepo.On("FindUserByEmail", s.ctx, "ghost@x.com").Return(nil, apperrors.ErrNotFound)

	_, err := s.service.GetProfileByEmail(s.ctx, "ghost@x.com")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *UserServiceTestSuite) TestUpdateProfile_ChangesName() {
	user := &domain.User{UserID: "u-1", Email: "a@x.com", Name: "Old"}
	s.mockRepo.On("FindUserByEmail", s.ctx, "a@x.com").Return(user, nil)
	s.mockRepo.On("UpdateUserName", s.ctx, "u-1", "New", mock.AnythingOfType("time.Time")).Return(nil)

	got, err := s.service.UpdateProfile(s.ctx, "a@x.com", dto.UpdateProfileRequest{Name: strPtr("New")})
	s.Require().NoError(err)
	s.Equal("New", got.Name)
}

func (s *UserServiceTestSuite) TestUpdateProfile_NilNameIsNoop() {
	user := &domain.User{UserID: "u-1", Email: "a@x.com", Name: "Old"}
	s.mockRepo.On("FindUserByEmail", s.ctx, "a@x.com").Return(user, nil)

	got, err := s.service.UpdateProfile(s.ctx, "a@x.com", dto.UpdateProfileRequest{})
	s.Require().NoError(err)
	s.Equal("Old", got.Name)
	s.mockRepo.AssertNotCalled(s.T(), "UpdateUserName", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestListUsers() {
	users := []domain.User{
		{UserID: "u-2", Email: "b@x.com", CreatedAt: time.Now()},
		{UserID: "u-1", Email: "a@x.com", CreatedAt: time.Now().Add(-time.Hour)},
	}
	s.mockRepo.On("FindUsers", s.ctx, 20, 0).Return(users, nil)

	got, err := s.service.ListUsers(s.ctx, 20, 0)
	s.Require().NoError(err)
	s.Len(got, 2)
	s.Equal("u-2", got[0].UserID)
}

func strPtr(v string) *string { return &v }
