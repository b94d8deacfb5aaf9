package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecolemusique/backoffice/internal/cache"
	"github.com/ecolemusique/backoffice/internal/models"
	"github.com/ecolemusique/backoffice/internal/utils"
)

type userFixture struct {
	idp      *fakeIdentity
	profiles *fakeProfiles
	audit    *fakeAudit
	cache    *mapCache
	svc      UserService
}

func newUserFixture() *userFixture {
	f := &userFixture{
		idp:      newFakeIdentity(),
		profiles: newFakeProfiles(),
		audit:    &fakeAudit{},
		cache:    newMapCache(),
	}
	f.svc = NewUserService(f.idp, f.profiles, f.audit, NewListCache(f.cache, time.Minute, nil), nil)
	return f
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	ident, err := f.svc.Create(ctx, "admin-1", CreateUserInput{
		Email: "clara@example.org", Password: "pw", FirstName: "Clara", LastName: "Schumann", Role: models.RoleMember,
	})
	require.NoError(t, err)
	assert.Equal(t, "clara@example.org", ident.Email)

	p, err := f.profiles.GetByID(ctx, ident.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, p.Role)
	assert.Equal(t, []string{"user.create"}, f.audit.actions())
	assert.Equal(t, "admin-1", f.audit.events[0].actor)
}

func TestUserService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	_, err := f.svc.Create(ctx, "a", CreateUserInput{Password: "pw", Role: models.RoleMember})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = f.svc.Create(ctx, "a", CreateUserInput{Email: "x@example.org", Password: "pw", Role: "Directeur"})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
	assert.Equal(t, "Rôle invalide", utils.PublicMessage(err))

	users, _ := f.idp.ListUsers(ctx)
	assert.Empty(t, users, "no identity is created for invalid input")
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	in := CreateUserInput{Email: "x@example.org", Password: "pw", Role: models.RoleMember}

	_, err := f.svc.Create(ctx, "a", in)
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, "a", in)
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
}

func TestUserService_Create_CompensatesOnProfileFailure(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	f.profiles.createErr = errors.New("insert failed")

	_, err := f.svc.Create(ctx, "a", CreateUserInput{Email: "x@example.org", Password: "pw", Role: models.RoleAdmin})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInternal))

	users, err := f.idp.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users, "identity must be rolled back")
	assert.Len(t, f.idp.deleted, 1)
	assert.Empty(t, f.audit.events)
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	ident, err := f.svc.Create(ctx, "a", CreateUserInput{Email: "x@example.org", Password: "old", FirstName: "X", Role: models.RoleMember})
	require.NoError(t, err)

	err = f.svc.Update(ctx, "a", UpdateUserInput{ID: ident.ID, FirstName: "Y", LastName: "Z", Role: models.RoleManager, Password: "new"})
	require.NoError(t, err)

	p, _ := f.profiles.GetByID(ctx, ident.ID)
	assert.Equal(t, "Y", p.FirstName)
	assert.Equal(t, models.RoleManager, p.Role)
	_, err = f.idp.Authenticate(ctx, "x@example.org", "new")
	assert.NoError(t, err)
}

func TestUserService_Update_Errors(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	err := f.svc.Update(ctx, "a", UpdateUserInput{Role: models.RoleMember})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
	assert.Equal(t, "ID utilisateur manquant", utils.PublicMessage(err))

	err = f.svc.Update(ctx, "a", UpdateUserInput{ID: "ghost", Role: models.RoleMember})
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestUserService_Update_EmptyPasswordLeavesCredential(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	ident, err := f.svc.Create(ctx, "a", CreateUserInput{Email: "x@example.org", Password: "keep", Role: models.RoleMember})
	require.NoError(t, err)

	require.NoError(t, f.svc.Update(ctx, "a", UpdateUserInput{ID: ident.ID, Role: models.RoleMember}))
	_, err = f.idp.Authenticate(ctx, "x@example.org", "keep")
	assert.NoError(t, err)
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	ident, err := f.svc.Create(ctx, "a", CreateUserInput{Email: "x@example.org", Password: "pw", Role: models.RoleMember})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, "a", ident.ID))
	_, err = f.profiles.GetByID(ctx, ident.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
	users, _ := f.idp.ListUsers(ctx)
	assert.Empty(t, users)
}

func TestUserService_Delete_RetryConverges(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	ident, err := f.svc.Create(ctx, "a", CreateUserInput{Email: "x@example.org", Password: "pw", Role: models.RoleMember})
	require.NoError(t, err)

	f.profiles.deleteErr = errors.New("connection reset")
	err = f.svc.Delete(ctx, "a", ident.ID)
	require.Error(t, err)

	// identity is gone, profile remains; the retry must still finish the job
	f.profiles.deleteErr = nil
	require.NoError(t, f.svc.Delete(ctx, "a", ident.ID))
	_, err = f.profiles.GetByID(ctx, ident.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestUserService_Delete_IdentityFailureStopsBeforeProfile(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	f.idp.deleteErr = errors.New("auth service down")

	err := f.svc.Delete(ctx, "a", "u-1")
	require.Error(t, err)
	assert.NotContains(t, f.profiles.calls, "delete")

	err = f.svc.Delete(ctx, "a", "")
	assert.Equal(t, "User ID is required", utils.PublicMessage(err))
}

func TestUserService_List_JoinsEmails(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	ident, err := f.svc.Create(ctx, "a", CreateUserInput{Email: "b@example.org", Password: "pw", FirstName: "Béla", Role: models.RoleMember})
	require.NoError(t, err)
	// profile with no identity behind it
	require.NoError(t, f.profiles.Create(ctx, &models.Profile{ID: "orphan", FirstName: "Anna", Role: models.RoleManager}))

	out, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Anna", out[0].FirstName)
	assert.Equal(t, models.MissingEmail, out[0].Email)
	assert.Equal(t, ident.ID, out[1].ID)
	assert.Equal(t, "b@example.org", out[1].Email)
}

func TestUserService_List_KeepsDatabaseOrder(t *testing.T) {
	f := newUserFixture()
	f.profiles.listed = []models.Profile{
		{ID: "p1", FirstName: "Élise"},
		{ID: "p2", FirstName: "Zoé"},
	}

	out, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Élise", out[0].FirstName)
	assert.Equal(t, "Zoé", out[1].FirstName)
}

func TestUserService_Create_SurfacesAuthServiceMessage(t *testing.T) {
	f := newUserFixture()
	f.idp.createErr = fmt.Errorf("%w: %w", utils.ErrInvalidInput,
		errors.New("response status code 422: Password should be at least 6 characters."))

	_, err := f.svc.Create(context.Background(), "a", CreateUserInput{Email: "x@example.org", Password: "pw", Role: models.RoleMember})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, utils.HTTPStatus(err))
	assert.Equal(t, "response status code 422: Password should be at least 6 characters.", utils.PublicMessage(err))
	assert.Contains(t, err.Error(), "failed to create identity")
}

func TestUserService_Create_HidesInternalCause(t *testing.T) {
	f := newUserFixture()
	f.idp.createErr = errors.New("dial tcp 10.0.0.3:443: connection refused")

	_, err := f.svc.Create(context.Background(), "a", CreateUserInput{Email: "x@example.org", Password: "pw", Role: models.RoleMember})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, utils.HTTPStatus(err))
	assert.Equal(t, "failed to create identity", utils.PublicMessage(err))
}

func TestUserService_List_CachedAndInvalidated(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	_, err := f.svc.Create(ctx, "a", CreateUserInput{Email: "a@example.org", Password: "pw", FirstName: "A", Role: models.RoleMember})
	require.NoError(t, err)
	_, err = f.svc.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, f.cache.data, cache.KeyUsers)

	_, err = f.svc.Create(ctx, "a", CreateUserInput{Email: "b@example.org", Password: "pw", FirstName: "B", Role: models.RoleMember})
	require.NoError(t, err)
	assert.NotContains(t, f.cache.data, cache.KeyUsers)

	out, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestUserService_List_CacheFailureFallsThrough(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	f.cache.err = errors.New("redis down")

	_, err := f.svc.Create(ctx, "a", CreateUserInput{Email: "a@example.org", Password: "pw", Role: models.RoleMember})
	require.NoError(t, err)
	out, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}
