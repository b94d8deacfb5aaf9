package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecolemusique/backoffice/internal/api/middleware"
	"github.com/ecolemusique/backoffice/internal/models"
	"github.com/ecolemusique/backoffice/internal/services"
	"github.com/ecolemusique/backoffice/internal/utils"
)

func init() { gin.SetMode(gin.TestMode) }

type fakeUserService struct {
	updateErr error
	deleteErr error
	deleted   string
	actor     string
}

func (f *fakeUserService) Create(context.Context, string, services.CreateUserInput) (*models.Identity, error) {
	return nil, errors.New("not used")
}

func (f *fakeUserService) Update(_ context.Context, actor string, _ services.UpdateUserInput) error {
	f.actor = actor
	return f.updateErr
}

func (f *fakeUserService) Delete(_ context.Context, actor, id string) error {
	f.actor, f.deleted = actor, id
	return f.deleteErr
}

func (f *fakeUserService) List(context.Context) ([]models.UserView, error) {
	return nil, errors.New("db down")
}

func serve(h gin.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, "/h", func(c *gin.Context) {
		c.Set(middleware.CtxUserID, "admin-1")
		c.Next()
	}, h)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUserHandler_Update_NotFound(t *testing.T) {
	svc := &fakeUserService{updateErr: utils.E(utils.CodeNotFound, "op", "Utilisateur introuvable", utils.ErrNotFound)}
	h := NewUserHandler(svc)

	w := serve(h.Update, http.MethodPost, "/h", `{"id":"ghost","role":"Membre"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Utilisateur introuvable","code":"NOT_FOUND"}`, w.Body.String())
	assert.Equal(t, "admin-1", svc.actor)
}

func TestUserHandler_Update_MalformedBody(t *testing.T) {
	h := NewUserHandler(&fakeUserService{})
	w := serve(h.Update, http.MethodPost, "/h", `{"id":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_Update_OK(t *testing.T) {
	h := NewUserHandler(&fakeUserService{})
	w := serve(h.Update, http.MethodPost, "/h", `{"id":"u-1","first_name":"A","last_name":"B","role":"Admin"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Utilisateur mis à jour"}`, w.Body.String())
}

func TestUserHandler_Delete(t *testing.T) {
	svc := &fakeUserService{}
	h := NewUserHandler(svc)

	w := serve(h.Delete, http.MethodPost, "/h", `{"userId":"u-9"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Utilisateur supprimé avec succès"}`, w.Body.String())
	assert.Equal(t, "u-9", svc.deleted)
}

func TestUserHandler_List_HidesInternalDetail(t *testing.T) {
	h := NewUserHandler(&fakeUserService{})
	w := serve(h.List, http.MethodGet, "/h", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestRequireUserID_Missing(t *testing.T) {
	r := gin.New()
	r.GET("/h", func(c *gin.Context) {
		if _, ok := requireUserID(c); ok {
			c.Status(http.StatusOK)
		}
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/h", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
