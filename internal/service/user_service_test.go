package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bienestar-app/bienestar-api/internal/dto"
	"github.com/bienestar-app/bienestar-api/internal/models"
)

func TestUserServiceListRequiresPrivilege(t *testing.T) {
	repo := newUserRepoStub()
	svc := NewUserService(repo, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	repo.users[1] = models.User{ID: 1, Email: "a@example.com", FullName: "A", Role: models.RoleStudent, Active: true}

	_, err := svc.List(context.Background(), dto.UserListRequest{}, studentActor())
	require.ErrorIs(t, err, ErrForbidden)

	resp, err := svc.List(context.Background(), dto.UserListRequest{Role: "student"}, teacherActor())
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	require.Equal(t, "student", repo.lastFilter.Role)

	staff := Actor{ID: 5, Role: models.RoleGuardian, IsStaff: true}
	_, err = svc.List(context.Background(), dto.UserListRequest{}, staff)
	require.NoError(t, err, "staff flag grants privilege regardless of role")
}

func TestUserServiceUpdateSelfOrPrivileged(t *testing.T) {
	repo := newUserRepoStub()
	svc := NewUserService(repo, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	repo.users[2] = models.User{ID: 2, Email: "pablo@example.com", FullName: "Pablo Ruiz", Role: models.RoleStudent, Active: true}
	repo.users[3] = models.User{ID: 3, Email: "elena@example.com", FullName: "Elena Soto", Role: models.RoleGuardian, Active: true}

	name := "Pablo R."
	updated, err := svc.Update(context.Background(), 2, dto.UserUpdateRequest{FullName: &name}, studentActor())
	require.NoError(t, err, "users may edit their own account")
	require.Equal(t, "Pablo R.", updated.FullName)

	_, err = svc.Update(context.Background(), 3, dto.UserUpdateRequest{FullName: &name}, studentActor())
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(context.Background(), 3, dto.UserUpdateRequest{FullName: &name}, teacherActor())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), 99, dto.UserUpdateRequest{FullName: &name}, teacherActor())
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserServiceUpdateRehashesPassword(t *testing.T) {
	repo := newUserRepoStub()
	svc := NewUserService(repo, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	repo.users[2] = models.User{ID: 2, Email: "pablo@example.com", FullName: "Pablo Ruiz", Role: models.RoleStudent, PasswordHash: "old", Active: true}

	password := "brand-new-secret"
	_, err := svc.Update(context.Background(), 2, dto.UserUpdateRequest{Password: &password}, studentActor())
	require.NoError(t, err)

	stored := repo.users[2]
	require.NotEqual(t, "old", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(password)))
}
