package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"paymenu-backend/internal/core/domain"
	"paymenu-backend/internal/core/ports"
	"paymenu-backend/internal/core/ports/mocks"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func jwtTestRouter(t *testing.T) (*gin.Engine, *mocks.MockTokenService, *mocks.MockUserRepository, *uuid.UUID) {
	ctrl := gomock.NewController(t)
	tokenSvc := mocks.NewMockTokenService(ctrl)
	userRepo := mocks.NewMockUserRepository(ctrl)

	captured := &uuid.UUID{}
	router := gin.New()
	router.GET("/test", JWTAuth(tokenSvc, userRepo, zerolog.Nop()), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		require.True(t, ok)
		*captured = user.ID
		c.JSON(200, gin.H{"ok": true})
	})
	return router, tokenSvc, userRepo, captured
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	router, _, _, _ := jwtTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "AUTH_004", resp["error_code"])
}

func TestJWTAuth_NotBearer(t *testing.T) {
	router, _, _, _ := jwtTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	router, tokenSvc, _, _ := jwtTestRouter(t)

	tokenSvc.EXPECT().Validate("bad_token").Return(nil, assert.AnError)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer bad_token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "AUTH_005", resp["error_code"])
}

func TestJWTAuth_UserGone(t *testing.T) {
	router, tokenSvc, userRepo, _ := jwtTestRouter(t)

	userID := uuid.New()
	tokenSvc.EXPECT().Validate("orphan_token").Return(&ports.TokenClaims{UserID: userID}, nil)
	userRepo.EXPECT().GetByID(gomock.Any(), userID).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer orphan_token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_Success(t *testing.T) {
	router, tokenSvc, userRepo, captured := jwtTestRouter(t)

	userID := uuid.New()
	user := &domain.User{ID: userID, Username: "alice", Email: "alice@example.com"}
	tokenSvc.EXPECT().Validate("good_token").Return(&ports.TokenClaims{UserID: userID}, nil)
	userRepo.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer good_token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, *captured)
}

func TestRecovery_PanicRecovered(t *testing.T) {
	router := gin.New()
	router.Use(Recovery(zerolog.Nop()))
	router.GET("/panic", func(c *gin.Context) {
		panic("something went wrong")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SYS_001", resp["error_code"])
}
