package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"hellostore_backend/internal/email"
	"hellostore_backend/internal/models"
	"hellostore_backend/internal/repositories"
	"hellostore_backend/internal/services/dto"
	"hellostore_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo is an in-memory UserRepository with the same sentinel
// behavior as the gorm implementation.
type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*models.User // keyed by id
	nextID int
	calls  []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) record(call string) {
	r.calls = append(r.calls, call)
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("FindByID")
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByExternalID(externalID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("FindByExternalID")
	for _, u := range r.users {
		if u.ExternalID == externalID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(rawEmail string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("FindByEmail")
	normalized := models.NormalizeEmail(rawEmail)
	for _, u := range r.users {
		if u.Email == normalized {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Create")
	user.Email = models.NormalizeEmail(user.Email)
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	r.nextID++
	user.ID = "id-" + string(rune('0'+r.nextID))
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

func (r *fakeUserRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) FindAll(limit, offset int) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
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

func (r *fakeUserRepo) UpdateRoleAndStatus(id string, role models.UserRole, status models.UserStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Role = role
	u.Status = status
	return nil
}

func (r *fakeUserRepo) UpdateProfile(id, address, contactNumber string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Address = address
	u.ContactNumber = contactNumber
	return nil
}

func (r *fakeUserRepo) FindByVerificationToken(token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.VerificationToken != "" && u.VerificationToken == token {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) ConsumeVerificationToken(id, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.VerificationToken != token {
		return repositories.ErrTokenConsumed
	}
	u.IsEmailVerified = true
	u.VerificationToken = ""
	u.VerificationTokenExp = nil
	return nil
}

func (r *fakeUserRepo) SetResetToken(id, token string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.ResetToken = token
	u.ResetTokenExp = &expiry
	return nil
}

func (r *fakeUserRepo) FindByResetToken(token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ResetToken != "" && u.ResetToken == token {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) ResetPassword(id, token, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.ResetToken != token {
		return repositories.ErrTokenConsumed
	}
	u.PasswordHash = passwordHash
	u.ResetToken = ""
	u.ResetTokenExp = nil
	return nil
}

func (r *fakeUserRepo) byEmail(email string) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied
		}
	}
	return nil
}

func (r *fakeUserRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// plainHasher stores passwords reversibly and counts comparisons, so a test
// can prove that no comparison ever ran.
type plainHasher struct {
	mu       sync.Mutex
	compares int
}

func (h *plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (h *plainHasher) Compare(hash, password string) bool {
	h.mu.Lock()
	h.compares++
	h.mu.Unlock()
	return hash == "hashed:"+password
}

func (h *plainHasher) compareCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.compares
}

// stubVerifier returns a fixed decision and remembers whether it ran.
type stubVerifier struct {
	ok     bool
	err    error
	called bool
}

func (v *stubVerifier) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	v.called = true
	return v.ok, v.err
}

// recordingEmailProvider captures sends on a channel so tests can wait for
// the fire-and-forget goroutine.
type recordingEmailProvider struct {
	sent chan string
}

func newRecordingEmailProvider() *recordingEmailProvider {
	return &recordingEmailProvider{sent: make(chan string, 4)}
}

func (p *recordingEmailProvider) Send(*email.Email) error { return nil }

func (p *recordingEmailProvider) SendVerification(to, verifyURL string) error {
	p.sent <- verifyURL
	return nil
}

func (p *recordingEmailProvider) SendPasswordReset(to, resetURL string) error {
	p.sent <- resetURL
	return nil
}

func (p *recordingEmailProvider) Validate() error { return nil }
func (p *recordingEmailProvider) Close() error    { return nil }

func (p *recordingEmailProvider) waitForSend(t *testing.T) string {
	t.Helper()
	select {
	case url := <-p.sent:
		return url
	case <-time.After(2 * time.Second):
		t.Fatal("no email was sent")
		return ""
	}
}

type authFixture struct {
	svc      *AuthServiceImpl
	repo     *fakeUserRepo
	hasher   *plainHasher
	verifier *stubVerifier
	emails   *recordingEmailProvider
	now      time.Time
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		repo:     newFakeUserRepo(),
		hasher:   &plainHasher{},
		verifier: &stubVerifier{ok: true},
		emails:   newRecordingEmailProvider(),
		now:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewAuthService(f.repo, f.hasher, f.verifier, f.emails, "http://localhost:3000").
		WithClock(func() time.Time { return f.now })
	return f
}

func (f *authFixture) register(t *testing.T, emailAddr string) *models.User {
	t.Helper()
	err := f.svc.Register(context.Background(), &dto.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     emailAddr,
		Password:  "Sup3r$ecret",
	})
	require.NoError(t, err)
	f.emails.waitForSend(t)
	return f.repo.byEmail(models.NormalizeEmail(emailAddr))
}

func TestRegister_HappyPath(t *testing.T) {
	f := newAuthFixture(t)

	user := f.register(t, "Ada@Example.com")
	require.NotNil(t, user)

	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, models.UserRoleCustomer, user.Role)
	assert.Equal(t, models.UserStatusActive, user.Status)
	assert.False(t, user.IsEmailVerified)
	assert.NotEmpty(t, user.ExternalID)
	assert.NotEmpty(t, user.VerificationToken)
	require.NotNil(t, user.VerificationTokenExp)
	assert.Equal(t, f.now.Add(time.Hour), *user.VerificationTokenExp)
}

func TestRegister_VerificationEmailCarriesToken(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.Register(context.Background(), &dto.RegisterRequest{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Password: "Sup3r$ecret",
	})
	require.NoError(t, err)

	url := f.emails.waitForSend(t)
	user := f.repo.byEmail("ada@example.com")
	assert.Equal(t, "http://localhost:3000/users/verify/"+user.VerificationToken, url)
}

func TestRegister_WeakPasswordReportsEveryRule(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.Register(context.Background(), &dto.RegisterRequest{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Password: "short",
	})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrWeakPassword))

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	rules, ok := appErr.Details.([]string)
	require.True(t, ok)
	// short, no uppercase, no digit, no symbol: all four at once.
	assert.Len(t, rules, 4)
}

func TestRegister_DuplicateEmailCaseInsensitive(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "ada@example.com")

	err := f.svc.Register(context.Background(), &dto.RegisterRequest{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ADA@EXAMPLE.COM", Password: "Sup3r$ecret",
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrEmailAlreadyExists))
}

func TestRegister_CaptchaShortCircuitsBeforeRepo(t *testing.T) {
	f := newAuthFixture(t)
	f.verifier.ok = false

	err := f.svc.Register(context.Background(), &dto.RegisterRequest{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Password: "Sup3r$ecret",
	})

	assert.True(t, apperrors.Is(err, apperrors.ErrCaptchaFailed))
	assert.True(t, f.verifier.called)
	// The repository was never touched.
	assert.Zero(t, f.repo.callCount())
}

func TestRegister_CaptchaNetworkFailureReadsAsNotHuman(t *testing.T) {
	f := newAuthFixture(t)
	f.verifier.ok = false
	f.verifier.err = errors.New("connection refused")

	err := f.svc.Register(context.Background(), &dto.RegisterRequest{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Password: "Sup3r$ecret",
	})

	assert.True(t, apperrors.Is(err, apperrors.ErrCaptchaFailed))
	assert.Zero(t, f.repo.callCount())
}

func TestVerifyEmail_HappyPath(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "ada@example.com")

	err := f.svc.VerifyEmail(context.Background(), user.VerificationToken)
	require.NoError(t, err)

	updated := f.repo.byEmail("ada@example.com")
	assert.True(t, updated.IsEmailVerified)
	assert.Empty(t, updated.VerificationToken)
	assert.Nil(t, updated.VerificationTokenExp)
}

func TestVerifyEmail_UnknownToken(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.VerifyEmail(context.Background(), "nope")
	assert.True(t, apperrors.Is(err, apperrors.ErrTokenNotFound))
}

func TestVerifyEmail_ExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "ada@example.com")

	// One hour and one minute later the link is dead.
	f.now = f.now.Add(61 * time.Minute)

	err := f.svc.VerifyEmail(context.Background(), user.VerificationToken)
	assert.True(t, apperrors.Is(err, apperrors.ErrTokenExpired))

	updated := f.repo.byEmail("ada@example.com")
	assert.False(t, updated.IsEmailVerified)
}

func TestVerifyEmail_SingleUse(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "ada@example.com")

	require.NoError(t, f.svc.VerifyEmail(context.Background(), user.VerificationToken))

	err := f.svc.VerifyEmail(context.Background(), user.VerificationToken)
	assert.True(t, apperrors.Is(err, apperrors.ErrTokenNotFound))
}

func TestLogin_HappyPath(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "ada@example.com")
	require.NoError(t, f.svc.VerifyEmail(context.Background(), user.VerificationToken))

	data, err := f.svc.Login(context.Background(), &dto.LoginRequest{
		Email: "Ada@Example.com", Password: "Sup3r$ecret",
	})
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", data.Email)
	assert.Equal(t, user.ExternalID, data.ExternalID)
	assert.Equal(t, models.UserRoleCustomer, data.Role)
	assert.True(t, data.IsEmailVerified)
}

func TestLogin_UnknownEmailSkipsPasswordCheck(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Login(context.Background(), &dto.LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	})

	assert.True(t, apperrors.Is(err, apperrors.ErrUserNotFound))
	assert.Zero(t, f.hasher.compareCount())
}

func TestLogin_UnverifiedEmailRejected(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "ada@example.com")

	_, err := f.svc.Login(context.Background(), &dto.LoginRequest{
		Email: "ada@example.com", Password: "Sup3r$ecret",
	})

	assert.True(t, apperrors.Is(err, apperrors.ErrEmailNotVerified))
	// Verification is checked before the credential, so even the right
	// password never gets compared.
	assert.Zero(t, f.hasher.compareCount())
}

func TestLogin_InactiveAccountCheckedBeforeVerification(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "ada@example.com")
	require.NoError(t, f.repo.UpdateRoleAndStatus(user.ID, models.UserRoleCustomer, models.UserStatusInactive))

	_, err := f.svc.Login(context.Background(), &dto.LoginRequest{
		Email: "ada@example.com", Password: "Sup3r$ecret",
	})

	assert.True(t, apperrors.Is(err, apperrors.ErrAccountInactive))
	assert.Zero(t, f.hasher.compareCount())
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "ada@example.com")
	require.NoError(t, f.svc.VerifyEmail(context.Background(), user.VerificationToken))

	_, err := f.svc.Login(context.Background(), &dto.LoginRequest{
		Email: "ada@example.com", Password: "wrong",
	})

	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))
	assert.Equal(t, 1, f.hasher.compareCount())
}

func TestLogin_DistinctFailureMessages(t *testing.T) {
	// Existence, status, verification and credential failures each carry
	// their own message.
	assert.NotEqual(t, apperrors.ErrUserNotFound.Message, apperrors.ErrInvalidCredentials.Message)
	assert.NotEqual(t, apperrors.ErrAccountInactive.Message, apperrors.ErrEmailNotVerified.Message)
	assert.NotEqual(t, apperrors.ErrUserNotFound.Message, apperrors.ErrEmailNotVerified.Message)
}

func TestLogin_CaptchaShortCircuitsBeforeRepo(t *testing.T) {
	f := newAuthFixture(t)
	f.verifier.ok = false

	_, err := f.svc.Login(context.Background(), &dto.LoginRequest{
		Email: "ada@example.com", Password: "Sup3r$ecret",
	})

	assert.True(t, apperrors.Is(err, apperrors.ErrCaptchaFailed))
	assert.Zero(t, f.repo.callCount())
}

func TestFullLifecycle_RegisterVerifyLogin(t *testing.T) {
	f := newAuthFixture(t)

	// Register.
	user := f.register(t, "ada@example.com")

	// Login before verification fails.
	_, err := f.svc.Login(context.Background(), &dto.LoginRequest{
		Email: "ada@example.com", Password: "Sup3r$ecret",
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrEmailNotVerified))

	// Verify, then login succeeds.
	require.NoError(t, f.svc.VerifyEmail(context.Background(), user.VerificationToken))

	data, err := f.svc.Login(context.Background(), &dto.LoginRequest{
		Email: "ada@example.com", Password: "Sup3r$ecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", data.Email)
}

func TestRequestPasswordReset_SilentOnUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.RequestPasswordReset(context.Background(), "nobody@example.com")
	assert.NoError(t, err)

	select {
	case <-f.emails.sent:
		t.Fatal("no email should be sent for an unknown address")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestResetPassword_FullFlow(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "ada@example.com")
	require.NoError(t, f.svc.VerifyEmail(context.Background(), user.VerificationToken))

	require.NoError(t, f.svc.RequestPasswordReset(context.Background(), "ada@example.com"))
	resetURL := f.emails.waitForSend(t)
	token := strings.TrimPrefix(resetURL, "http://localhost:3000/users/password/reset/")

	require.NoError(t, f.svc.ResetPassword(context.Background(), token, "N3w$ecret!"))

	// Old password no longer works, the new one does.
	_, err := f.svc.Login(context.Background(), &dto.LoginRequest{
		Email: "ada@example.com", Password: "Sup3r$ecret",
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))

	_, err = f.svc.Login(context.Background(), &dto.LoginRequest{
		Email: "ada@example.com", Password: "N3w$ecret!",
	})
	assert.NoError(t, err)
}

func TestResetPassword_ExpiredTokenAsksForNewLink(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "ada@example.com")
	require.NoError(t, f.svc.VerifyEmail(context.Background(), user.VerificationToken))

	require.NoError(t, f.svc.RequestPasswordReset(context.Background(), "ada@example.com"))
	resetURL := f.emails.waitForSend(t)
	token := strings.TrimPrefix(resetURL, "http://localhost:3000/users/password/reset/")

	f.now = f.now.Add(61 * time.Minute)

	err := f.svc.ResetPassword(context.Background(), token, "N3w$ecret!")
	require.Error(t, err)

	// The message points at the forgot-password form, not at registration.
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrResetTokenExpired.Message, appErr.Message)
	assert.NotContains(t, appErr.Message, "register")
}

func TestResetPassword_WeakReplacementRejected(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "ada@example.com")
	require.NoError(t, f.svc.VerifyEmail(context.Background(), user.VerificationToken))

	require.NoError(t, f.svc.RequestPasswordReset(context.Background(), "ada@example.com"))
	resetURL := f.emails.waitForSend(t)
	token := strings.TrimPrefix(resetURL, "http://localhost:3000/users/password/reset/")

	err := f.svc.ResetPassword(context.Background(), token, "weak")
	assert.True(t, apperrors.Is(err, apperrors.ErrWeakPassword))
}
