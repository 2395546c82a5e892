package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	appidentity "github.com/debttrack/backend/internal/application/identity"
	"github.com/debttrack/backend/internal/domain/identity"
	"github.com/debttrack/backend/internal/domain/shared"
)

func setupUserRouter(userRepo *MockUserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewUserHandler(appidentity.NewUserService(userRepo))
	users := r.Group("/api/v1/users")
	{
		users.GET("", h.List)
		users.GET("/:id", h.Get)
	}
	return r
}

func TestUserHandler_List(t *testing.T) {
	alice := registeredUser(t, "Alice", "alice@example.com", "str0ng-password")
	bob := registeredUser(t, "Bob", "bob@example.com", "str0ng-password")

	userRepo := new(MockUserRepository)
	userRepo.On("List", mock.Anything).Return([]identity.User{*alice, *bob}, nil)

	router := setupUserRouter(userRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	response := decodeResponse(t, w)
	data := response["data"].([]any)
	assert.Len(t, data, 2)
	first := data[0].(map[string]any)
	assert.Equal(t, "Alice", first["name"])
	assert.NotContains(t, w.Body.String(), "password_hash")
}

func TestUserHandler_Get(t *testing.T) {
	alice := registeredUser(t, "Alice", "alice@example.com", "str0ng-password")
	alice.ID = uuid.New()

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, alice.ID).Return(alice, nil)

	router := setupUserRouter(userRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+alice.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	response := decodeResponse(t, w)
	data := response["data"].(map[string]any)
	assert.Equal(t, alice.ID.String(), data["id"])
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	id := uuid.New()
	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	router := setupUserRouter(userRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+id.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_Get_InvalidID(t *testing.T) {
	userRepo := new(MockUserRepository)
	router := setupUserRouter(userRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
