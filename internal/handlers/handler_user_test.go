package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/tanmayd/user_platform_app/internal/apperrors"
	"github.com/tanmayd/user_platform_app/internal/core/domain"
	"github.com/tanmayd/user_platform_app/internal/dto"
	"github.com/tanmayd/user_platform_app/internal/handlers"
	"github.com/tanmayd/user_platform_app/internal/platform/config"
)

// --- Mock UserSvcFacade ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfileByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, email string, req dto.UpdateProfileRequest) (*domain.User, error) {
	args := m.Called(ctx, email, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

// fakeVerifier accepts exactly one token and fails everything else, standing
// in for the auth service the backend delegates to.
type fakeVerifier struct {
	token    string
	identity *domain.Identity
}

func (f *fakeVerifier) Verify(ctx context.Context, tokenString string) (*domain.Identity, error) {
	if tokenString == f.token {
		return f.identity, nil
	}
	return nil, apperrors.ErrUnauthorized
}

type UserHandlerTestSuite struct {
	suite.Suite
	mockService *MockUserService
	router      *gin.Engine
}

const validToken = "valid-token"

func (s *UserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockService = new(MockUserService)
	verifier := &fakeVerifier{
		token:    validToken,
		identity: &domain.Identity{UserID: "u-1", Email: "a@x.com", Name: "A"},
	}
	s.router = gin.New()
	cfg := &config.Config{FrontendBaseURL: "http://localhost:3000"}
	handlers.RegisterBackendServiceRoutes(s.router, cfg, s.mockService, verifier)
}

func TestUserHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}

func (s *UserHandlerTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *UserHandlerTestSuite) TestGetProfile_MissingToken() {
	w := s.do(http.MethodGet, "/api/users/profile", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.mockService.AssertNotCalled(s.T(), "GetProfileByEmail", mock.Anything, mock.Anything)
}

func (s *UserHandlerTestSuite) TestGetProfile_InvalidToken() {
	w := s.do(http.MethodGet, "/api/users/profile", "forged-token", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *UserHandlerTestSuite) TestGetProfile_Success() {
	user := &domain.User{UserID: "u-1", Email: "a@x.com", Name: "A"}
	s.mockService.On("GetProfileByEmail", mock.Anything, "a@x.com").Return(user, nil)

	w := s.do(http.MethodGet, "/api/users/profile", validToken, nil)

	s.Equal(http.StatusOK, w.Code)
	var got dto.ProfileResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Equal("u-1", got.UserID)
	s.Equal("a@x.com", got.Email)
}

func (s *UserHandlerTestSuite) TestGetProfile_UserGone() {
	s.mockService.On("GetProfileByEmail", mock.Anything, "a@x.com").Return(nil, apperrors.ErrNotFound)

	w := s.do(http.MethodGet, "/api/users/profile", validToken, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *UserHandlerTestSuite) TestUpdateProfile_Success() {
	updated := &domain.User{UserID: "u-1", Email: "a@x.com", Name: "New"}
	s.mockService.On("UpdateProfile", mock.Anything, "a@x.com", mock.AnythingOfType("dto.UpdateProfileRequest")).Return(updated, nil)

	name := "New"
	w := s.do(http.MethodPut, "/api/users/profile", validToken, dto.UpdateProfileRequest{Name: &name})

	s.Equal(http.StatusOK, w.Code)
	var got dto.ProfileResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Equal("New", got.Name)
}

func (s *UserHandlerTestSuite) TestListUsers_Success() {
	users := []domain.User{
		{UserID: "u-1", Email: "a@x.com", Name: "A"},
		{UserID: "u-2", Email: "b@x.com", Name: "B"},
	}
	s.mockService.On("ListUsers", mock.Anything, 20, 0).Return(users, nil)

	w := s.do(http.MethodGet, "/api/users", validToken, nil)

	s.Equal(http.StatusOK, w.Code)
	var got dto.ListUsersResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Len(got.Users, 2)
}

func (s *UserHandlerTestSuite) TestListUsers_MissingToken() {
	w := s.do(http.MethodGet, "/api/users", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.mockService.AssertNotCalled(s.T(), "ListUsers", mock.Anything, mock.Anything, mock.Anything)
}
