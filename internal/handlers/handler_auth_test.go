package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/SscSPs/finance_tracker_app/internal/handlers"
	"github.com/SscSPs/finance_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockAuthService *MockAuthService
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockAuthService = new(MockAuthService)

	loginLimiter := middleware.GinMiddlewarize(middleware.NewIPRateLimiter(time.Minute, 2))
	handlers.RegisterAuthRoutes(suite.router.Group("/api"), suite.mockAuthService, loginLimiter)
}

func (suite *AuthHandlerTestSuite) post(path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlerTestSuite) TestRegister_Created() {
	resp := &dto.AuthResponse{Token: "tok", User: dto.UserResponse{ID: "u1", Name: "Asha", Email: "asha@example.com"}}
	suite.mockAuthService.On("Register", mock.Anything,
		dto.RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "pw123456"},
	).Return(resp, nil).Once()

	w := suite.post("/api/auth/register", `{"name":"Asha","email":"asha@example.com","password":"pw123456"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var got dto.AuthResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("tok", got.Token)
	suite.Equal("asha@example.com", got.User.Email)
	suite.NotContains(w.Body.String(), "password")
}

func (suite *AuthHandlerTestSuite) TestRegister_EmailTaken() {
	suite.mockAuthService.On("Register", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewConflictError("Email already registered")).Once()

	w := suite.post("/api/auth/register", `{"name":"Asha","email":"asha@example.com","password":"pw"}`)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "Email already registered")
}

func (suite *AuthHandlerTestSuite) TestRegister_MalformedEmail() {
	suite.mockAuthService.On("Register", mock.Anything,
		dto.RegisterRequest{Name: "Asha", Email: "not-an-email", Password: "pw"},
	).Return(nil, apperrors.NewValidationError("Please provide a valid email")).Once()

	w := suite.post("/api/auth/register", `{"name":"Asha","email":"not-an-email","password":"pw"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"message":"Please provide a valid email"}`, w.Body.String())
}

func (suite *AuthHandlerTestSuite) TestRegister_PaddedEmailReachesService() {
	resp := &dto.AuthResponse{Token: "tok", User: dto.UserResponse{ID: "u1", Name: "Asha", Email: "asha@example.com"}}
	suite.mockAuthService.On("Register", mock.Anything,
		dto.RegisterRequest{Name: "Asha", Email: " Asha@Example.com ", Password: "pw123456"},
	).Return(resp, nil).Once()

	w := suite.post("/api/auth/register", `{"name":"Asha","email":" Asha@Example.com ","password":"pw123456"}`)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockAuthService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.mockAuthService.On("Login", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewAppError(http.StatusUnauthorized, "Invalid credentials", apperrors.ErrInvalidCredentials)).Once()

	w := suite.post("/api/auth/login", `{"email":"asha@example.com","password":"wrong"}`)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.JSONEq(`{"message":"Invalid credentials"}`, w.Body.String())
}

func (suite *AuthHandlerTestSuite) TestLogin_RateLimited() {
	suite.mockAuthService.On("Login", mock.Anything, mock.Anything).
		Return(&dto.AuthResponse{Token: "tok"}, nil).Twice()

	suite.Equal(http.StatusOK, suite.post("/api/auth/login", `{"email":"a@b.co","password":"x"}`).Code)
	suite.Equal(http.StatusOK, suite.post("/api/auth/login", `{"email":"a@b.co","password":"x"}`).Code)

	w := suite.post("/api/auth/login", `{"email":"a@b.co","password":"x"}`)
	suite.Equal(http.StatusTooManyRequests, w.Code)
	suite.JSONEq(`{"message":"Too many requests. Try again later."}`, w.Body.String())
	suite.mockAuthService.AssertNumberOfCalls(suite.T(), "Login", 2)
}

func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
