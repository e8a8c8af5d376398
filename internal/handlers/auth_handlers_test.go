package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"stockconsole/internal/models"
	"stockconsole/internal/services"
)

type AuthHandlersTestSuite struct {
	suite.Suite
	auth     *MockAuthService
	reports  *MockReportService
	handlers *AuthHandlers
}

func (s *AuthHandlersTestSuite) SetupTest() {
	s.auth = new(MockAuthService)
	s.reports = new(MockReportService)
	s.handlers = NewAuthHandlers(s.auth, s.reports)
}

func (s *AuthHandlersTestSuite) TearDownTest() {
	s.auth.AssertExpectations(s.T())
	s.reports.AssertExpectations(s.T())
}

func (s *AuthHandlersTestSuite) TestLogin_Success() {
	sess := testSession
	s.auth.On("Login", mock.Anything, "ada@example.com", "secret").Return(&sess, nil)
	c, rec := newContext(http.MethodPost, "/v1/auth/login", `{"email":"ada@example.com","password":"secret"}`, nil)

	s.Require().NoError(s.handlers.Login(c))

	s.Equal(http.StatusOK, rec.Code)
	var resp models.LoginResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("sess-1", resp.SessionID)
	s.Equal(models.RoleManager, resp.User.Role)
	s.NotContains(rec.Body.String(), "upstream-token")
}

func (s *AuthHandlersTestSuite) TestLogin_InvalidCredentials() {
	s.auth.On("Login", mock.Anything, "ada@example.com", "wrong").Return(nil, services.ErrInvalidCredentials)
	c, rec := newContext(http.MethodPost, "/v1/auth/login", `{"email":"ada@example.com","password":"wrong"}`, nil)

	s.Require().NoError(s.handlers.Login(c))

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("INVALID_CREDENTIALS", decodeError(s.T(), rec).Error.Code)
}

func (s *AuthHandlersTestSuite) TestLogin_RateLimited() {
	s.auth.On("Login", mock.Anything, "ada@example.com", "secret").Return(nil, services.ErrTooManyAttempts)
	c, rec := newContext(http.MethodPost, "/v1/auth/login", `{"email":"ada@example.com","password":"secret"}`, nil)

	s.Require().NoError(s.handlers.Login(c))

	s.Equal(http.StatusTooManyRequests, rec.Code)
}

func (s *AuthHandlersTestSuite) TestLogin_UpstreamDown() {
	s.auth.On("Login", mock.Anything, "ada@example.com", "secret").Return(nil, errors.New("dial tcp: refused"))
	c, rec := newContext(http.MethodPost, "/v1/auth/login", `{"email":"ada@example.com","password":"secret"}`, nil)

	s.Require().NoError(s.handlers.Login(c))

	s.Equal(http.StatusBadGateway, rec.Code)
}

func (s *AuthHandlersTestSuite) TestLogin_MissingFields() {
	c, rec := newContext(http.MethodPost, "/v1/auth/login", `{"email":"  ","password":"secret"}`, nil)
	s.Require().NoError(s.handlers.Login(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(decodeError(s.T(), rec).Error.Details, "email")

	c, rec = newContext(http.MethodPost, "/v1/auth/login", `{"email":"ada@example.com"}`, nil)
	s.Require().NoError(s.handlers.Login(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(decodeError(s.T(), rec).Error.Details, "password")
}

func (s *AuthHandlersTestSuite) TestLogin_MalformedBody() {
	c, rec := newContext(http.MethodPost, "/v1/auth/login", `{"email":`, nil)

	s.Require().NoError(s.handlers.Login(c))

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("CLIENT_ERROR", decodeError(s.T(), rec).Error.Code)
}

func (s *AuthHandlersTestSuite) TestLogout_ForgetsReports() {
	s.auth.On("Logout", mock.Anything, "sess-1").Return(nil)
	s.reports.On("Forget", "sess-1").Return()
	c, rec := newContext(http.MethodPost, "/v1/auth/logout", "", &testSession)

	s.Require().NoError(s.handlers.Logout(c))

	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *AuthHandlersTestSuite) TestLogout_StoreFailure() {
	s.auth.On("Logout", mock.Anything, "sess-1").Return(errors.New("redis down"))
	c, _ := newContext(http.MethodPost, "/v1/auth/logout", "", &testSession)

	err := s.handlers.Logout(c)

	var httpErr *echo.HTTPError
	s.Require().ErrorAs(err, &httpErr)
	s.Equal(http.StatusServiceUnavailable, httpErr.Code)
}

func (s *AuthHandlersTestSuite) TestMe() {
	c, rec := newContext(http.MethodGet, "/v1/me", "", &testSession)

	s.Require().NoError(s.handlers.Me(c))

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "ada@example.com")
}

func TestAuthHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlersTestSuite))
}

func TestMe_WithoutSession(t *testing.T) {
	h := NewAuthHandlers(new(MockAuthService), new(MockReportService))
	c, _ := newContext(http.MethodGet, "/v1/me", "", nil)

	err := h.Me(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
