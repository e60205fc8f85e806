package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"community-backend/internal/domains/account"
	"community-backend/internal/shared/apperr"
)

// ========================================
// FAKES
// ========================================

// fakeCodec "hashes" by prefixing, which keeps assertions readable while
// preserving the encode/verify contract.
type fakeCodec struct {
	encodeErr error
}

func (f *fakeCodec) Encode(plaintext string) (string, error) {
	if f.encodeErr != nil {
		return "", f.encodeErr
	}
	return "hash:" + plaintext, nil
}

func (f *fakeCodec) Verify(plaintext, hash string) bool {
	return hash == "hash:"+plaintext
}

type fakeRepo struct {
	accounts map[int64]*account.Account
	roles    map[int64][]string
	nextID   int64

	// failure injection
	saveErr        error
	updateEmailErr error

	// race simulation: force rows-affected results
	forceNicknameRows *int64
	forcePasswordRows *int64

	updateCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		accounts: make(map[int64]*account.Account),
		roles:    make(map[int64][]string),
		nextID:   1,
	}
}

func (r *fakeRepo) FindByID(_ context.Context, id int64) (*account.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, account.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeRepo) FindByUsername(_ context.Context, username string) (*account.Account, error) {
	for _, a := range r.accounts {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, account.ErrNotFound
}

func (r *fakeRepo) Save(_ context.Context, a *account.Account) (int64, error) {
	if r.saveErr != nil {
		return 0, r.saveErr
	}
	for _, existing := range r.accounts {
		if existing.Username == a.Username {
			return 0, account.NewConflictError("accounts_username_key", fmt.Errorf("duplicate"))
		}
		if existing.Email != nil && a.Email != nil && *existing.Email == *a.Email {
			return 0, account.NewConflictError("accounts_email_key", fmt.Errorf("duplicate"))
		}
	}
	id := r.nextID
	r.nextID++
	stored := *a
	stored.ID = id
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.accounts[id] = &stored
	r.roles[id] = []string{account.RoleUser}
	return id, nil
}

func (r *fakeRepo) UpdateNickname(_ context.Context, id int64, nickname string) (int64, error) {
	r.updateCalls++
	if r.forceNicknameRows != nil {
		return *r.forceNicknameRows, nil
	}
	a, ok := r.accounts[id]
	if !ok {
		return 0, nil
	}
	a.Nickname = nickname
	return 1, nil
}

func (r *fakeRepo) UpdateEmail(_ context.Context, id int64, email *string) (int64, error) {
	if r.updateEmailErr != nil {
		return 0, r.updateEmailErr
	}
	for otherID, other := range r.accounts {
		if otherID != id && other.Email != nil && email != nil && *other.Email == *email {
			return 0, account.NewConflictError("accounts_email_key", fmt.Errorf("duplicate"))
		}
	}
	a, ok := r.accounts[id]
	if !ok {
		return 0, nil
	}
	a.Email = email
	return 1, nil
}

func (r *fakeRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) (int64, error) {
	if r.forcePasswordRows != nil {
		return *r.forcePasswordRows, nil
	}
	a, ok := r.accounts[id]
	if !ok {
		return 0, nil
	}
	a.PasswordHash = passwordHash
	return 1, nil
}

func (r *fakeRepo) DeleteByID(_ context.Context, id int64) (int64, error) {
	if _, ok := r.accounts[id]; !ok {
		return 0, nil
	}
	delete(r.accounts, id)
	delete(r.roles, id)
	return 1, nil
}

func (r *fakeRepo) FindAll(_ context.Context, limit int) ([]account.Account, error) {
	result := make([]account.Account, 0, limit)
	for id := r.nextID - 1; id >= 1 && len(result) < limit; id-- {
		if a, ok := r.accounts[id]; ok {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (r *fakeRepo) FindRolesByAccountID(_ context.Context, id int64) ([]string, error) {
	return r.roles[id], nil
}

func (r *fakeRepo) AddRole(_ context.Context, id int64, role string) error {
	r.roles[id] = append(r.roles[id], role)
	return nil
}

// ========================================
// HELPERS
// ========================================

func strPtr(s string) *string { return &s }

func newService(t *testing.T) (account.Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	return NewAccountService(repo, &fakeCodec{}), repo
}

func mustCreate(t *testing.T, svc account.Service, username, password, nickname string, email *string) int64 {
	t.Helper()
	id, err := svc.Create(context.Background(), account.CreateAccountRequest{
		Username: username,
		Password: password,
		Nickname: nickname,
		Email:    email,
	})
	require.NoError(t, err)
	return id
}

func self(id int64) account.Principal {
	return account.Principal{AccountID: id, Roles: []string{account.RoleUser}}
}

var admin = account.Principal{AccountID: 999, Roles: []string{account.RoleAdmin}}

// ========================================
// CREATE & GET
// ========================================

func TestCreateNormalizesAndGetNeverExposesHash(t *testing.T) {
	svc, _ := newService(t)

	id := mustCreate(t, svc, "  Alice ", "password-1", " Nick ", strPtr("A@X.Com"))

	got, err := svc.Get(context.Background(), self(id), id)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "nick", got.Nickname)
	require.NotNil(t, got.Email)
	assert.Equal(t, "a@x.com", *got.Email)
}

func TestCreateDuplicateUsernameCaseInsensitive(t *testing.T) {
	svc, _ := newService(t)
	mustCreate(t, svc, "Alice", "password-1", "nick", strPtr("a@x.com"))

	_, err := svc.Create(context.Background(), account.CreateAccountRequest{
		Username: "alice",
		Password: "password-2",
		Nickname: "other",
		Email:    strPtr("other@x.com"),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	assert.Equal(t, "username already in use", apperr.From(err).Message)
}

func TestCreateDuplicateEmailPicksEmailMessage(t *testing.T) {
	svc, _ := newService(t)
	mustCreate(t, svc, "alice", "password-1", "nick", strPtr("a@x.com"))

	_, err := svc.Create(context.Background(), account.CreateAccountRequest{
		Username: "bob",
		Password: "password-2",
		Nickname: "bobby",
		Email:    strPtr("A@X.COM"),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	assert.Equal(t, "email already in use", apperr.From(err).Message)
}

func TestCreateUnrecognizedConstraintGetsGenericMessage(t *testing.T) {
	repo := newFakeRepo()
	repo.saveErr = account.NewConflictError("accounts_mystery_key", fmt.Errorf("duplicate"))
	svc := NewAccountService(repo, &fakeCodec{})

	_, err := svc.Create(context.Background(), account.CreateAccountRequest{
		Username: "alice",
		Password: "password-1",
		Nickname: "nick",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	assert.Equal(t, "value already in use", apperr.From(err).Message)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Create(context.Background(), account.CreateAccountRequest{
		Username: "al",
		Password: "short",
		Nickname: "n",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))
}

func TestCreateValidatesNormalizedValuesNotRawInput(t *testing.T) {
	svc, _ := newService(t)

	// Padding must not let a too-short value sneak past the length rules.
	_, err := svc.Create(context.Background(), account.CreateAccountRequest{
		Username: "  al  ",
		Password: "password-1",
		Nickname: "  n  ",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))
}

func TestGetUnknownAccountIsNotFound(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Get(context.Background(), admin, 12345)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

// ========================================
// AUTHORIZATION GATE
// ========================================

func TestPolicyGateOnEveryScopedOperation(t *testing.T) {
	svc, _ := newService(t)
	victim := mustCreate(t, svc, "victim", "password-1", "nick", nil)
	attacker := self(mustCreate(t, svc, "attacker", "password-1", "nick2", nil))

	ctx := context.Background()
	ops := map[string]func() error{
		"get": func() error {
			_, err := svc.Get(ctx, attacker, victim)
			return err
		},
		"change nickname": func() error {
			return svc.ChangeNickname(ctx, attacker, victim, "evil")
		},
		"change password": func() error {
			return svc.ChangePassword(ctx, attacker, victim, "new-password-1")
		},
		"change email": func() error {
			return svc.ChangeEmail(ctx, attacker, victim, strPtr("evil@x.com"))
		},
		"delete": func() error {
			return svc.Delete(ctx, attacker, victim)
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			assert.True(t, apperr.IsKind(op(), apperr.KindForbidden))
		})
	}

	// The same principal acting on its own id passes the gate.
	require.NoError(t, svc.ChangeNickname(ctx, attacker, attacker.AccountID, "newnick"))

	// An admin passes the gate on any account.
	require.NoError(t, svc.ChangeNickname(ctx, admin, victim, "renamed"))
}

// ========================================
// LIST
// ========================================

func TestListIsAdminOnly(t *testing.T) {
	svc, _ := newService(t)
	id := mustCreate(t, svc, "alice", "password-1", "nick", nil)

	_, err := svc.List(context.Background(), self(id), 10)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestListLimitClamp(t *testing.T) {
	svc, _ := newService(t)
	mustCreate(t, svc, "alice", "password-1", "nick", nil)

	ctx := context.Background()

	_, err := svc.List(ctx, admin, 0)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))

	_, err = svc.List(ctx, admin, -5)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))

	got, err := svc.List(ctx, admin, 5000)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), account.MaxListLimit)
}

// ========================================
// LOGIN
// ========================================

func TestLogin(t *testing.T) {
	svc, _ := newService(t)
	id := mustCreate(t, svc, "alice", "password-1", "nick", nil)

	ctx := context.Background()

	t.Run("unknown username is not found", func(t *testing.T) {
		_, err := svc.Login(ctx, account.LoginRequest{Username: "nouser", Password: "whatever"})
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("wrong password is invalid request", func(t *testing.T) {
		_, err := svc.Login(ctx, account.LoginRequest{Username: "alice", Password: "wrong"})
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))
	})

	t.Run("success returns id and roles", func(t *testing.T) {
		sess, err := svc.Login(ctx, account.LoginRequest{Username: " ALICE ", Password: "password-1"})
		require.NoError(t, err)
		assert.Equal(t, id, sess.AccountID)
		assert.Contains(t, sess.Roles, account.RoleUser)
	})
}

// ========================================
// NICKNAME
// ========================================

func TestChangeNicknameIdempotentOnEqualNormalizedValue(t *testing.T) {
	svc, repo := newService(t)
	id := mustCreate(t, svc, "alice", "password-1", "nick", nil)

	calls := repo.updateCalls
	// Case/whitespace variants normalize to the current value.
	require.NoError(t, svc.ChangeNickname(context.Background(), self(id), id, "  NICK "))
	assert.Equal(t, calls, repo.updateCalls, "no store mutation for a no-op change")

	got, err := svc.Get(context.Background(), self(id), id)
	require.NoError(t, err)
	assert.Equal(t, "nick", got.Nickname)
}

func TestChangeNicknameZeroRowsIsNotFound(t *testing.T) {
	svc, repo := newService(t)
	id := mustCreate(t, svc, "alice", "password-1", "nick", nil)

	// Account deleted between fetch and update.
	zero := int64(0)
	repo.forceNicknameRows = &zero

	err := svc.ChangeNickname(context.Background(), self(id), id, "other")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestChangeNicknameUnknownAccountIsNotFound(t *testing.T) {
	svc, _ := newService(t)
	err := svc.ChangeNickname(context.Background(), admin, 404, "nick")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

// ========================================
// PASSWORD
// ========================================

func TestChangePasswordRejectsCurrentPasswordEveryTime(t *testing.T) {
	svc, _ := newService(t)
	id := mustCreate(t, svc, "alice", "password-1", "nick", nil)

	for i := 0; i < 3; i++ {
		err := svc.ChangePassword(context.Background(), self(id), id, "password-1")
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest), "attempt %d", i)
	}
}

func TestChangePasswordSuccessAllowsNewLogin(t *testing.T) {
	svc, _ := newService(t)
	id := mustCreate(t, svc, "alice", "password-1", "nick", nil)

	ctx := context.Background()
	require.NoError(t, svc.ChangePassword(ctx, self(id), id, "password-2"))

	_, err := svc.Login(ctx, account.LoginRequest{Username: "alice", Password: "password-1"})
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))

	sess, err := svc.Login(ctx, account.LoginRequest{Username: "alice", Password: "password-2"})
	require.NoError(t, err)
	assert.Equal(t, id, sess.AccountID)
}

func TestChangePasswordAnomalousRowCountIsInternal(t *testing.T) {
	svc, repo := newService(t)
	id := mustCreate(t, svc, "alice", "password-1", "nick", nil)

	// Existence is confirmed by the fetch, so zero rows here is an anomaly.
	zero := int64(0)
	repo.forcePasswordRows = &zero

	err := svc.ChangePassword(context.Background(), self(id), id, "password-2")
	assert.True(t, apperr.IsKind(err, apperr.KindInternal))
}

// ========================================
// EMAIL
// ========================================

func TestChangeEmail(t *testing.T) {
	svc, _ := newService(t)
	alice := mustCreate(t, svc, "alice", "password-1", "nick", strPtr("a@x.com"))
	bob := mustCreate(t, svc, "bob", "password-1", "bobby", strPtr("b@x.com"))

	ctx := context.Background()

	t.Run("normalized on write", func(t *testing.T) {
		require.NoError(t, svc.ChangeEmail(ctx, self(alice), alice, strPtr(" NEW@X.Com ")))
		got, err := svc.Get(ctx, self(alice), alice)
		require.NoError(t, err)
		require.NotNil(t, got.Email)
		assert.Equal(t, "new@x.com", *got.Email)
	})

	t.Run("duplicate names the offending email", func(t *testing.T) {
		err := svc.ChangeEmail(ctx, self(alice), alice, strPtr("B@X.com"))
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
		assert.Equal(t, "email already in use: b@x.com", apperr.From(err).Message)
	})

	t.Run("clearing the email", func(t *testing.T) {
		require.NoError(t, svc.ChangeEmail(ctx, self(bob), bob, nil))
		got, err := svc.Get(ctx, self(bob), bob)
		require.NoError(t, err)
		assert.Nil(t, got.Email)
	})

	t.Run("unknown account is not found", func(t *testing.T) {
		err := svc.ChangeEmail(ctx, admin, 404, strPtr("x@x.com"))
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}

// ========================================
// DELETE
// ========================================

func TestDeleteTwice(t *testing.T) {
	svc, _ := newService(t)
	id := mustCreate(t, svc, "alice", "password-1", "nick", nil)

	ctx := context.Background()
	require.NoError(t, svc.Delete(ctx, self(id), id))

	err := svc.Delete(ctx, self(id), id)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

// ========================================
// GRANT ROLE
// ========================================

func TestGrantRole(t *testing.T) {
	svc, repo := newService(t)
	id := mustCreate(t, svc, "alice", "password-1", "nick", nil)

	ctx := context.Background()

	t.Run("non-admin cannot grant", func(t *testing.T) {
		err := svc.GrantRole(ctx, self(id), id, account.RoleAdmin)
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		err := svc.GrantRole(ctx, admin, id, "SUPERUSER")
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))
	})

	t.Run("missing account is not found", func(t *testing.T) {
		err := svc.GrantRole(ctx, admin, 404, account.RoleAdmin)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("admin grants and login carries the role", func(t *testing.T) {
		require.NoError(t, svc.GrantRole(ctx, admin, id, account.RoleAdmin))

		roles, err := repo.FindRolesByAccountID(ctx, id)
		require.NoError(t, err)
		assert.Contains(t, roles, account.RoleAdmin)

		sess, err := svc.Login(ctx, account.LoginRequest{Username: "alice", Password: "password-1"})
		require.NoError(t, err)
		assert.Contains(t, sess.Roles, account.RoleAdmin)
	})
}
