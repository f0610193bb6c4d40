package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/growthhub-io/growthhub/backend/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	byToken map[string]*models.User
}

func (s *stubUserRepo) Create(user *models.User) error { return nil }

func (s *stubUserRepo) GetByID(id uint) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) GetByToken(token string) (*models.User, error) {
	if u, ok := s.byToken[token]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func setupRouter(repo models.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	m := NewMiddleware(repo, logger)

	router := gin.New()
	router.GET("/me", m.RequireUser(), func(c *gin.Context) {
		user := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})
	router.PATCH("/admin", m.RequireUser(), m.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestRequireUser(t *testing.T) {
	repo := &stubUserRepo{byToken: map[string]*models.User{
		"valid-token": {Email: "maya@example.com", Role: models.RoleUser},
	}}
	router := setupRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "maya@example.com")
}

func TestRequireUser_CaseInsensitiveScheme(t *testing.T) {
	repo := &stubUserRepo{byToken: map[string]*models.User{
		"valid-token": {Email: "maya@example.com"},
	}}
	router := setupRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "bearer valid-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireUser_MissingHeader(t *testing.T) {
	router := setupRouter(&stubUserRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthorized")
}

func TestRequireUser_InvalidToken(t *testing.T) {
	router := setupRouter(&stubUserRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer nope")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireUser_EmptyToken(t *testing.T) {
	router := setupRouter(&stubUserRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer   ")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	repo := &stubUserRepo{byToken: map[string]*models.User{
		"admin-token": {Email: "admin@example.com", Role: models.RoleAdmin},
		"user-token":  {Email: "maya@example.com", Role: models.RoleUser},
	}}
	router := setupRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/admin", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("PATCH", "/admin", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "forbidden")
}

func TestCurrentUser_WithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	require.Nil(t, CurrentUser(c))
}
