package services

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billpilot_backend/internal/auth"
	"billpilot_backend/internal/config"
	"billpilot_backend/internal/models"
	"billpilot_backend/internal/repositories"
	"billpilot_backend/internal/services/dto"
	"billpilot_backend/pkg/apperrors"
)

func TestMain(m *testing.M) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTTLMinutes = 10
	cfg.JWT.RefreshTTLHours = 24
	cfg.JWT.VerifyTokenMinutes = 15
	cfg.DomainURL = "http://localhost:1008"
	config.AppConfig = cfg

	os.Exit(m.Run())
}

// --- in-memory fakes ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrEmailTaken
		}
		if u.Username == user.Username {
			return repositories.ErrUsernameTaken
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdateFields(userID string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return repositories.ErrUserNotFound
	}
	return nil
}

func (r *fakeUserRepo) UpdatePassword(userID, passwordHash string, changedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.PasswordChangedAt = &changedAt
	return nil
}

func (r *fakeUserRepo) VerifyEmail(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.IsEmailVerified = true
	return nil
}

func (r *fakeUserRepo) SetActive(userID string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Active = active
	return nil
}

func (r *fakeUserRepo) Delete(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, userID)
	return nil
}

func (r *fakeUserRepo) FindAll(limit, offset int) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) CountAll() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type fakeRefreshRepo struct {
	mu     sync.Mutex
	tokens map[string]models.RefreshToken // keyed by token value
	users  *fakeUserRepo
}

func newFakeRefreshRepo(users *fakeUserRepo) *fakeRefreshRepo {
	return &fakeRefreshRepo{tokens: map[string]models.RefreshToken{}, users: users}
}

func (r *fakeRefreshRepo) Create(token *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	r.tokens[token.Token] = *token
	return nil
}

func (r *fakeRefreshRepo) FindUserByToken(tokenString string) (*models.User, error) {
	r.mu.Lock()
	row, ok := r.tokens[tokenString]
	r.mu.Unlock()
	if !ok {
		return nil, repositories.ErrRefreshTokenNotFound
	}
	return r.users.FindByID(row.UserID)
}

func (r *fakeRefreshRepo) DeleteByToken(tokenString string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[tokenString]; !ok {
		return repositories.ErrRefreshTokenNotFound
	}
	delete(r.tokens, tokenString)
	return nil
}

func (r *fakeRefreshRepo) DeleteByUserID(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for value, row := range r.tokens {
		if row.UserID == userID {
			delete(r.tokens, value)
		}
	}
	return nil
}

func (r *fakeRefreshRepo) CountByUserID(userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, row := range r.tokens {
		if row.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeRefreshRepo) CleanExpired() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for value, row := range r.tokens {
		if row.ExpiresAt.Before(now) {
			delete(r.tokens, value)
		}
	}
	return nil
}

func (r *fakeRefreshRepo) has(tokenString string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tokens[tokenString]
	return ok
}

type fakeVerifyRepo struct {
	mu     sync.Mutex
	tokens map[string]*models.VerificationToken // keyed by user id
}

func newFakeVerifyRepo() *fakeVerifyRepo {
	return &fakeVerifyRepo{tokens: map[string]*models.VerificationToken{}}
}

func (r *fakeVerifyRepo) Replace(token *models.VerificationToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	copied := *token
	r.tokens[token.UserID] = &copied
	return nil
}

func (r *fakeVerifyRepo) FindByUser(userID string) (*models.VerificationToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[userID]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, repositories.ErrVerificationTokenNotFound
}

func (r *fakeVerifyRepo) FindByUserAndToken(userID, tokenValue string) (*models.VerificationToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[userID]; ok && t.Token == tokenValue {
		copied := *t
		return &copied, nil
	}
	return nil, repositories.ErrVerificationTokenNotFound
}

func (r *fakeVerifyRepo) DeleteByUser(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, userID)
	return nil
}

func (r *fakeVerifyRepo) age(userID string, by time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[userID]; ok {
		t.CreatedAt = t.CreatedAt.Add(-by)
	}
}

// --- test fixture ---

type authFixture struct {
	svc     AuthService
	users   *fakeUserRepo
	refresh *fakeRefreshRepo
	verify  *fakeVerifyRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	users := newFakeUserRepo()
	refresh := newFakeRefreshRepo(users)
	verify := newFakeVerifyRepo()
	return &authFixture{
		svc:     NewAuthService(users, refresh, verify, nil),
		users:   users,
		refresh: refresh,
		verify:  verify,
	}
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:           "billy@example.com",
		Username:        "billy-the-kid",
		FirstName:       "Billy",
		LastName:        "Kid",
		Password:        "Str0ng-Pass!",
		PasswordConfirm: "Str0ng-Pass!",
	}
}

func (f *authFixture) registerVerified(t *testing.T) *models.User {
	t.Helper()
	user, err := f.svc.Register(registerRequest())
	require.NoError(t, err)
	_, err = f.svc.VerifyEmail(user.ID, f.mustToken(t, user.ID))
	require.NoError(t, err)
	return user
}

func (f *authFixture) mustToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := f.verify.FindByUser(userID)
	require.NoError(t, err)
	return token.Token
}

func (f *authFixture) login(t *testing.T, presented string) (*dto.AuthResponse, string) {
	t.Helper()
	resp, refreshToken, err := f.svc.Login(&dto.LoginRequest{
		Email:    "billy@example.com",
		Password: "Str0ng-Pass!",
	}, presented)
	require.NoError(t, err)
	return resp, refreshToken
}

// --- registration ---

func TestRegisterCreatesUnverifiedUserWithToken(t *testing.T) {
	f := newAuthFixture(t)

	user, err := f.svc.Register(registerRequest())
	require.NoError(t, err)

	stored, err := f.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsEmailVerified)
	assert.True(t, stored.Active)
	assert.NotEqual(t, "Str0ng-Pass!", stored.PasswordHash)
	assert.True(t, auth.CheckPasswordHash("Str0ng-Pass!", stored.PasswordHash))
	assert.Equal(t, []string{models.RoleUser}, stored.RoleList())

	token := f.mustToken(t, user.ID)
	assert.Len(t, token, 64)
}

func TestRegisterNormalizesEmailCase(t *testing.T) {
	f := newAuthFixture(t)

	req := registerRequest()
	req.Email = "Billy@Example.com"
	user, err := f.svc.Register(req)
	require.NoError(t, err)

	stored, err := f.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "billy@example.com", stored.Email)

	// Same mailbox in different case is the same identity
	dup := registerRequest()
	dup.Email = "BILLY@example.com"
	dup.Username = "another-user"
	_, err = f.svc.Register(dup)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	count, _ := f.users.CountAll()
	assert.EqualValues(t, 1, count)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.svc.Register(registerRequest())
	require.NoError(t, err)

	dup := registerRequest()
	dup.Username = "another-user"
	_, err = f.svc.Register(dup)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	count, _ := f.users.CountAll()
	assert.EqualValues(t, 1, count)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.svc.Register(registerRequest())
	require.NoError(t, err)

	dup := registerRequest()
	dup.Email = "other@example.com"
	_, err = f.svc.Register(dup)
	assert.ErrorIs(t, err, apperrors.ErrUsernameAlreadyExists)
}

// --- login ---

func TestLoginIssuesSessionPair(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t)

	resp, refreshToken := f.login(t, "")
	assert.True(t, resp.Success)
	assert.Equal(t, "billy-the-kid", resp.Username)
	assert.NotEmpty(t, resp.AccessToken)
	assert.True(t, f.refresh.has(refreshToken))

	claims, err := auth.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Contains(t, claims.Roles, models.RoleUser)

	refreshClaims, err := auth.ParseToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, refreshClaims.UserID)
	assert.Empty(t, refreshClaims.Roles)
}

func TestLoginRotatesPresentedToken(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t)

	_, first := f.login(t, "")
	_, second := f.login(t, first)

	assert.False(t, f.refresh.has(first), "presented token must be pruned")
	assert.True(t, f.refresh.has(second))

	count, _ := f.refresh.CountByUserID(user.ID)
	assert.EqualValues(t, 1, count)
}

func TestLoginWithUnknownPresentedTokenClearsSet(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t)

	_, first := f.login(t, "")
	_, second := f.login(t, "")

	// A cookie token nobody holds looks stolen; both live sessions die
	_, third := f.login(t, "some-unknown-token")
	assert.False(t, f.refresh.has(first))
	assert.False(t, f.refresh.has(second))
	assert.True(t, f.refresh.has(third))

	count, _ := f.refresh.CountByUserID(user.ID)
	assert.EqualValues(t, 1, count)
}

func TestLoginParallelSessionsAccumulate(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t)

	// Logins without a cookie are independent devices
	f.login(t, "")
	f.login(t, "")
	f.login(t, "")

	count, _ := f.refresh.CountByUserID(user.ID)
	assert.EqualValues(t, 3, count)
}

func TestLoginEmailIsCaseInsensitive(t *testing.T) {
	f := newAuthFixture(t)
	f.registerVerified(t)

	resp, _, err := f.svc.Login(&dto.LoginRequest{
		Email:    "BILLY@Example.COM",
		Password: "Str0ng-Pass!",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "billy-the-kid", resp.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.registerVerified(t)

	_, _, err := f.svc.Login(&dto.LoginRequest{Email: "billy@example.com", Password: "wrong"}, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	f := newAuthFixture(t)
	f.registerVerified(t)

	_, _, wrongPassword := f.svc.Login(&dto.LoginRequest{Email: "billy@example.com", Password: "wrong"}, "")
	_, _, unknownEmail := f.svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "wrong"}, "")

	// Indistinguishable responses, no account enumeration
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestLoginUnverifiedUser(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.svc.Register(registerRequest())
	require.NoError(t, err)

	_, _, err = f.svc.Login(&dto.LoginRequest{Email: "billy@example.com", Password: "Str0ng-Pass!"}, "")
	assert.ErrorIs(t, err, apperrors.ErrUserNotVerified)
}

func TestLoginDeactivatedUser(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t)
	require.NoError(t, f.users.SetActive(user.ID, false))

	_, _, err := f.svc.Login(&dto.LoginRequest{Email: "billy@example.com", Password: "Str0ng-Pass!"}, "")
	assert.ErrorIs(t, err, apperrors.ErrUserDeactivated)
}

// --- refresh rotation ---

func TestRefreshRotation(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t)
	_, first := f.login(t, "")

	resp, second, err := f.svc.RefreshTokens(first)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEqual(t, first, second)
	assert.False(t, f.refresh.has(first), "consumed token must leave the set")
	assert.True(t, f.refresh.has(second))

	count, _ := f.refresh.CountByUserID(user.ID)
	assert.EqualValues(t, 1, count)
}

func TestRefreshReuseDetectionClearsAllSessions(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t)
	_, first := f.login(t, "")
	_, _, err := f.svc.RefreshTokens(first)
	require.NoError(t, err)
	f.login(t, "")

	// Replaying the consumed token implicates the account; every session dies
	_, _, err = f.svc.RefreshTokens(first)
	assert.ErrorIs(t, err, apperrors.ErrRefreshTokenRejected)

	count, _ := f.refresh.CountByUserID(user.ID)
	assert.EqualValues(t, 0, count)
}

func TestRefreshGarbageTokenRejectedWithoutMutation(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t)
	f.login(t, "")

	_, _, err := f.svc.RefreshTokens("garbage")
	assert.ErrorIs(t, err, apperrors.ErrRefreshTokenRejected)

	// A token that decodes to nobody cannot implicate anyone
	count, _ := f.refresh.CountByUserID(user.ID)
	assert.EqualValues(t, 1, count)
}

func TestRefreshStoredButExpiredTokenRemoved(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t)

	// A row whose JWT no longer verifies: the prune sticks, the refresh fails
	stale := "not-a-valid-jwt-but-stored"
	require.NoError(t, f.refresh.Create(&models.RefreshToken{
		UserID:    user.ID,
		Token:     stale,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	_, _, err := f.svc.RefreshTokens(stale)
	assert.ErrorIs(t, err, apperrors.ErrRefreshTokenRejected)
	assert.False(t, f.refresh.has(stale))
}

func TestRefreshSubjectMismatchRejected(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t)

	other, err := auth.GenerateRefreshToken("someone-else")
	require.NoError(t, err)
	require.NoError(t, f.refresh.Create(&models.RefreshToken{
		UserID:    user.ID,
		Token:     other,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	_, _, err = f.svc.RefreshTokens(other)
	assert.ErrorIs(t, err, apperrors.ErrRefreshTokenRejected)
}

// --- logout ---

func TestLogoutPrunesPresentedToken(t *testing.T) {
	f := newAuthFixture(t)
	registered := f.registerVerified(t)
	_, token := f.login(t, "")

	user, err := f.svc.Logout(token)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, registered.ID, user.ID)
	assert.False(t, f.refresh.has(token))
}

func TestLogoutUnknownTokenIsNoOp(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t)
	f.login(t, "")

	got, err := f.svc.Logout("unknown-token")
	require.NoError(t, err)
	assert.Nil(t, got)

	count, _ := f.refresh.CountByUserID(user.ID)
	assert.EqualValues(t, 1, count, "other sessions must survive")
}

// --- email verification ---

func TestVerifyEmailConsumesToken(t *testing.T) {
	f := newAuthFixture(t)
	user, err := f.svc.Register(registerRequest())
	require.NoError(t, err)
	token := f.mustToken(t, user.ID)

	already, err := f.svc.VerifyEmail(user.ID, token)
	require.NoError(t, err)
	assert.False(t, already)

	stored, _ := f.users.FindByID(user.ID)
	assert.True(t, stored.IsEmailVerified)

	_, err = f.verify.FindByUser(user.ID)
	assert.ErrorIs(t, err, repositories.ErrVerificationTokenNotFound)
}

func TestVerifyEmailIdempotent(t *testing.T) {
	f := newAuthFixture(t)
	user, err := f.svc.Register(registerRequest())
	require.NoError(t, err)
	token := f.mustToken(t, user.ID)

	_, err = f.svc.VerifyEmail(user.ID, token)
	require.NoError(t, err)

	already, err := f.svc.VerifyEmail(user.ID, token)
	require.NoError(t, err)
	assert.True(t, already)
}

func TestVerifyEmailWrongToken(t *testing.T) {
	f := newAuthFixture(t)
	user, err := f.svc.Register(registerRequest())
	require.NoError(t, err)

	_, err = f.svc.VerifyEmail(user.ID, "0000000000000000000000000000000000000000000000000000000000000000")
	assert.ErrorIs(t, err, apperrors.ErrInvalidVerificationToken)

	stored, _ := f.users.FindByID(user.ID)
	assert.False(t, stored.IsEmailVerified)
}

func TestVerifyEmailExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	user, err := f.svc.Register(registerRequest())
	require.NoError(t, err)
	token := f.mustToken(t, user.ID)

	f.verify.age(user.ID, 20*time.Minute)

	_, err = f.svc.VerifyEmail(user.ID, token)
	assert.ErrorIs(t, err, apperrors.ErrExpiredVerificationToken)

	stored, _ := f.users.FindByID(user.ID)
	assert.False(t, stored.IsEmailVerified)
}

func TestVerifyEmailUnknownUser(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.VerifyEmail("no-such-user", "whatever")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestResendVerificationReplacesToken(t *testing.T) {
	f := newAuthFixture(t)
	user, err := f.svc.Register(registerRequest())
	require.NoError(t, err)
	first := f.mustToken(t, user.ID)

	_, err = f.svc.ResendVerification(user.Email)
	require.NoError(t, err)

	second := f.mustToken(t, user.ID)
	assert.NotEqual(t, first, second)

	// The replaced token no longer verifies
	_, err = f.svc.VerifyEmail(user.ID, first)
	assert.ErrorIs(t, err, apperrors.ErrInvalidVerificationToken)
}

func TestResendVerificationAlreadyVerified(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t)

	_, err := f.svc.ResendVerification(user.Email)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyVerified)
}

// --- password reset ---

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t)
	_, session := f.login(t, "")

	_, err := f.svc.RequestPasswordReset(user.Email)
	require.NoError(t, err)
	token := f.mustToken(t, user.ID)

	_, err = f.svc.ResetPassword(&dto.ResetPasswordConfirm{
		UserID:          user.ID,
		EmailToken:      token,
		Password:        "N3w-Stronger!",
		PasswordConfirm: "N3w-Stronger!",
	})
	require.NoError(t, err)

	stored, _ := f.users.FindByID(user.ID)
	assert.True(t, auth.CheckPasswordHash("N3w-Stronger!", stored.PasswordHash))
	require.NotNil(t, stored.PasswordChangedAt)

	// Every session dies with the old password
	assert.False(t, f.refresh.has(session))
	count, _ := f.refresh.CountByUserID(user.ID)
	assert.EqualValues(t, 0, count)

	// The token is single use
	_, err = f.svc.ResetPassword(&dto.ResetPasswordConfirm{
		UserID:          user.ID,
		EmailToken:      token,
		Password:        "An0ther-One!",
		PasswordConfirm: "An0ther-One!",
	})
	assert.ErrorIs(t, err, apperrors.ErrExpiredVerificationToken)
}

func TestResetPasswordMismatchLeavesHashUnchanged(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t)
	_, err := f.svc.RequestPasswordReset(user.Email)
	require.NoError(t, err)

	before, _ := f.users.FindByID(user.ID)

	_, err = f.svc.ResetPassword(&dto.ResetPasswordConfirm{
		UserID:          user.ID,
		EmailToken:      f.mustToken(t, user.ID),
		Password:        "N3w-Stronger!",
		PasswordConfirm: "Different-1!",
	})
	assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)

	after, _ := f.users.FindByID(user.ID)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)
}

func TestResetPasswordTooShort(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t)
	_, err := f.svc.RequestPasswordReset(user.Email)
	require.NoError(t, err)

	_, err = f.svc.ResetPassword(&dto.ResetPasswordConfirm{
		UserID:          user.ID,
		EmailToken:      f.mustToken(t, user.ID),
		Password:        "short",
		PasswordConfirm: "short",
	})
	assert.ErrorIs(t, err, apperrors.ErrPasswordTooShort)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t)
	_, err := f.svc.RequestPasswordReset(user.Email)
	require.NoError(t, err)
	token := f.mustToken(t, user.ID)

	f.verify.age(user.ID, 20*time.Minute)

	_, err = f.svc.ResetPassword(&dto.ResetPasswordConfirm{
		UserID:          user.ID,
		EmailToken:      token,
		Password:        "N3w-Stronger!",
		PasswordConfirm: "N3w-Stronger!",
	})
	assert.ErrorIs(t, err, apperrors.ErrExpiredVerificationToken)
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.RequestPasswordReset("nobody@example.com")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}
