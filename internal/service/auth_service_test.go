package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/domain"
)

type authFixture struct {
	svc       *AuthService
	users     *fakeUserRepo
	resets    *fakeResetStore
	companies *fakeCompanyRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		users:     newFakeUserRepo(),
		resets:    newFakeResetStore(),
		companies: newFakeCompanyRepo(),
	}
	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:               "test-secret",
		AccessTokenTTLMinutes:   15,
		PasswordResetTTLMinutes: 30,
		BcryptCost:              4,
	}}
	directory := NewDirectoryService(f.companies, f.users, newFakeTicketRepo())
	f.svc = NewAuthService(cfg, AuthDependencies{
		UserRepo:   f.users,
		ResetStore: f.resets,
		Directory:  directory,
	})
	return f
}

func TestRegisterAndLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, token, _, err := f.svc.Register(ctx, RegisterInput{
		Name:        "Dana",
		Email:       "Dana@Acme.Test",
		Password:    "hunter2hunter2",
		CompanyName: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, domain.UserStatusActive, user.Status)
	assert.Equal(t, "dana@acme.test", user.Email)
	assert.NotEmpty(t, token)

	// Registering a company name synthesizes a pending record.
	company, err := f.companies.GetByName(ctx, "Acme")
	require.NoError(t, err)
	assert.Equal(t, domain.CompanyStatusPending, company.Status)

	logged, token, _, err := f.svc.Login(ctx, "DANA@acme.test", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	require.NotNil(t, logged.LastLogin)

	_, _, _, err = f.svc.Login(ctx, "dana@acme.test", "wrong")
	assertDomainCode(t, err, "UNAUTHORIZED")
	_, _, _, err = f.svc.Login(ctx, "nobody@acme.test", "hunter2hunter2")
	assertDomainCode(t, err, "UNAUTHORIZED")
}

func TestRegisterValidation(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, _, _, err := f.svc.Register(ctx, RegisterInput{Name: "Dana", Email: "not-an-email", Password: "pw"})
	assertDomainCode(t, err, "VALIDATION_FAILED")

	_, _, _, err = f.svc.Register(ctx, RegisterInput{Name: "", Email: "dana@acme.test", Password: "pw"})
	assertDomainCode(t, err, "VALIDATION_FAILED")

	_, _, _, err = f.svc.Register(ctx, RegisterInput{Name: "Dana", Email: "dana@acme.test", Password: "hunter2hunter2"})
	require.NoError(t, err)
	_, _, _, err = f.svc.Register(ctx, RegisterInput{Name: "Other", Email: "dana@acme.test", Password: "hunter2hunter2"})
	assertDomainCode(t, err, "CONFLICT")
}

func TestLoginRejectsInactiveAccounts(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, _, _, err := f.svc.Register(ctx, RegisterInput{Name: "Dana", Email: "dana@acme.test", Password: "hunter2hunter2"})
	require.NoError(t, err)

	for _, status := range []domain.UserStatus{domain.UserStatusSuspended, domain.UserStatusFrozen} {
		user.Status = status
		require.NoError(t, f.users.Update(ctx, user))
		_, _, _, err = f.svc.Login(ctx, "dana@acme.test", "hunter2hunter2")
		assertDomainCode(t, err, "UNAUTHORIZED")
	}
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, _, _, err := f.svc.Register(ctx, RegisterInput{Name: "Dana", Email: "dana@acme.test", Password: "original-pass"})
	require.NoError(t, err)

	_, err = f.svc.ForgotPassword(ctx, "nobody@acme.test")
	assertDomainCode(t, err, "NOT_FOUND")

	token, err := f.svc.ForgotPassword(ctx, "dana@acme.test")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, f.svc.ResetPassword(ctx, token, "brand-new-pass"))

	// The token is single use.
	err = f.svc.ResetPassword(ctx, token, "another-pass")
	assertDomainCode(t, err, "UNAUTHORIZED")

	_, _, _, err = f.svc.Login(ctx, "dana@acme.test", "original-pass")
	assertDomainCode(t, err, "UNAUTHORIZED")
	_, _, _, err = f.svc.Login(ctx, "dana@acme.test", "brand-new-pass")
	require.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, _, _, err := f.svc.Register(ctx, RegisterInput{Name: "Dana", Email: "dana@acme.test", Password: "original-pass"})
	require.NoError(t, err)

	err = f.svc.ChangePassword(ctx, user, "wrong", "next-pass")
	assertDomainCode(t, err, "UNAUTHORIZED")

	require.NoError(t, f.svc.ChangePassword(ctx, user, "original-pass", "next-pass"))
	_, _, _, err = f.svc.Login(ctx, "dana@acme.test", "next-pass")
	require.NoError(t, err)
}

func TestUpdateProfile(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, _, _, err := f.svc.Register(ctx, RegisterInput{Name: "Dana", Email: "dana@acme.test", Password: "hunter2hunter2"})
	require.NoError(t, err)

	newName := "Dana Q."
	newCompany := "Globex"
	updated, err := f.svc.UpdateProfile(ctx, user, ProfileInput{Name: &newName, CompanyName: &newCompany})
	require.NoError(t, err)
	assert.Equal(t, "Dana Q.", updated.Name)
	assert.Equal(t, "Globex", updated.CompanyName)

	_, err = f.companies.GetByName(ctx, "Globex")
	require.NoError(t, err)

	empty := "  "
	_, err = f.svc.UpdateProfile(ctx, user, ProfileInput{Name: &empty})
	assertDomainCode(t, err, "VALIDATION_FAILED")
}
