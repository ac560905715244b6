package impl

import (
	"context"
	"sync"
	"testing"

	"member/internal/domain/entity"
	domainerrors "member/internal/domain/errors"
	"member/internal/domain/service"
	"member/internal/infra/auth"
	"member/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPasswordKey = "unit-test-password-key"

func newStoreBackedService(t *testing.T) (usecase.AccountUsecase, *memoryStore, service.PasswordHasher) {
	t.Helper()

	hasher, err := auth.NewHMACHasherWithKey(testPasswordKey)
	require.NoError(t, err)

	store := newMemoryStore()
	svc := NewAccountService(AccountServiceParams{
		TxManager:   store,
		AccountRepo: store.accounts(),
		ProfileRepo: store.profiles(),
		Hasher:      hasher,
		Logger:      newDiscardLogger(),
	})

	return svc, store, hasher
}

func mustRegister(t *testing.T, svc usecase.AccountUsecase, email, password string) *usecase.RegisterOutput {
	t.Helper()

	result, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Email:    email,
		Password: password,
		FullName: "Alice",
	})
	require.NoError(t, err)
	require.True(t, result.Success, result.Message)

	return result.Data
}

func TestAccountFlow_RegisterThenLogin(t *testing.T) {
	svc, store, _ := newStoreBackedService(t)
	ctx := context.Background()

	registered := mustRegister(t, svc, "a@x.com", "pw1")
	assert.NotEmpty(t, registered.ID)
	assert.Equal(t, int(entity.RoleMember), registered.RoleID)
	assert.Empty(t, registered.Birthday)
	assert.Empty(t, registered.Address)

	login, err := svc.Login(ctx, &usecase.LoginInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)
	require.True(t, login.Success)
	assert.Equal(t, registered.ID, login.Data.ID)
	assert.Equal(t, "a@x.com", login.Data.Email)
	assert.Equal(t, "Alice", login.Data.FullName)
	assert.Equal(t, int(entity.RoleMember), login.Data.RoleID)

	wrong, err := svc.Login(ctx, &usecase.LoginInput{Email: "a@x.com", Password: "wrong"})
	require.NoError(t, err)
	assertFailure(t, wrong, domainerrors.ErrInvalidCredentials)

	state := store.snapshot()
	id := uuid.MustParse(registered.ID)
	assert.Len(t, state.accounts, 1)
	assert.Contains(t, state.profiles, id)
	assert.Equal(t, []entity.RoleID{entity.RoleMember}, state.roles[id])
}

func TestAccountFlow_UnknownEmailAndWrongPasswordShareMessage(t *testing.T) {
	svc, _, _ := newStoreBackedService(t)
	ctx := context.Background()
	mustRegister(t, svc, "a@x.com", "pw1")

	unknown, err := svc.Login(ctx, &usecase.LoginInput{Email: "nobody@x.com", Password: "pw1"})
	require.NoError(t, err)
	wrong, err := svc.Login(ctx, &usecase.LoginInput{Email: "a@x.com", Password: "pw2"})
	require.NoError(t, err)

	assert.False(t, unknown.Success)
	assert.False(t, wrong.Success)
	assert.Equal(t, unknown.Message, wrong.Message)
	assert.Equal(t, unknown.Code, wrong.Code)
}

func TestAccountFlow_EmailMatchIsExact(t *testing.T) {
	svc, _, _ := newStoreBackedService(t)
	mustRegister(t, svc, "a@x.com", "pw1")

	result, err := svc.Login(context.Background(), &usecase.LoginInput{Email: "A@X.COM", Password: "pw1"})

	require.NoError(t, err)
	assertFailure(t, result, domainerrors.ErrInvalidCredentials)
}

func TestAccountFlow_DuplicateRegistration(t *testing.T) {
	svc, store, hasher := newStoreBackedService(t)
	first := mustRegister(t, svc, "a@x.com", "pw1")
	before := store.snapshot()

	second, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Email:    "a@x.com",
		Password: "pw2",
		FullName: "Mallory",
	})

	require.NoError(t, err)
	assertFailure(t, second, domainerrors.ErrDuplicateEmail)
	assert.Equal(t, before, store.snapshot())

	stored := store.snapshot().accounts[uuid.MustParse(first.ID)]
	assert.True(t, hasher.Check("pw1", stored.PasswordHash))
}

// blindAccounts skips the email pre-check, as a registration racing another one would see it.
type blindAccounts struct {
	*memoryAccounts
}

func (blindAccounts) ExistsByEmail(context.Context, string) (bool, error) {
	return false, nil
}

func TestAccountFlow_DuplicateDetectedAtWrite(t *testing.T) {
	svc, store, hasher := newStoreBackedService(t)
	first := mustRegister(t, svc, "a@x.com", "pw1")

	racing := NewAccountService(AccountServiceParams{
		TxManager:   store,
		AccountRepo: blindAccounts{store.accounts()},
		ProfileRepo: store.profiles(),
		Hasher:      hasher,
		Logger:      newDiscardLogger(),
	})

	result, err := racing.Register(context.Background(), &usecase.RegisterInput{Email: "a@x.com", Password: "pw2"})

	require.NoError(t, err)
	assertFailure(t, result, domainerrors.ErrDuplicateEmail)

	state := store.snapshot()
	assert.Len(t, state.accounts, 1)
	assert.Len(t, state.profiles, 1)
	assert.Contains(t, state.accounts, uuid.MustParse(first.ID))
}

func TestAccountFlow_ConcurrentRegistrationsOnOneEmail(t *testing.T) {
	svc, store, _ := newStoreBackedService(t)

	const workers = 8
	results := make([]*usecase.Result[*usecase.RegisterOutput], workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = svc.Register(context.Background(), &usecase.RegisterInput{
				Email:    "race@x.com",
				Password: "pw",
				FullName: "Racer",
			})
		}()
	}
	wg.Wait()

	succeeded := 0
	for i := range workers {
		require.NoError(t, errs[i])
		if results[i].Success {
			succeeded++

			continue
		}
		assert.Equal(t, domainerrors.ErrDuplicateEmail.ErrorCode(), results[i].Code)
	}

	assert.Equal(t, 1, succeeded)
	assert.Len(t, store.snapshot().accounts, 1)
}

func TestAccountFlow_SuspendedAccountCannotLogin(t *testing.T) {
	svc, store, _ := newStoreBackedService(t)
	registered := mustRegister(t, svc, "a@x.com", "pw1")

	store.setStatus(uuid.MustParse(registered.ID), entity.StatusInactive)

	result, err := svc.Login(context.Background(), &usecase.LoginInput{Email: "a@x.com", Password: "pw1"})

	require.NoError(t, err)
	assertFailure(t, result, domainerrors.ErrAccountSuspended)
}

func TestAccountFlow_UpdatePassword(t *testing.T) {
	svc, store, hasher := newStoreBackedService(t)
	ctx := context.Background()
	registered := mustRegister(t, svc, "a@x.com", "pw1")
	id := uuid.MustParse(registered.ID)

	kept, err := svc.Update(ctx, &usecase.UpdateInput{ID: registered.ID, Status: int(entity.StatusActive), Address: "Home"})
	require.NoError(t, err)
	require.True(t, kept.Success)

	account := store.snapshot().accounts[id]
	assert.True(t, hasher.Check("pw1", account.PasswordHash))
	require.NotNil(t, account.UpdatedAt)

	changed, err := svc.Update(ctx, &usecase.UpdateInput{
		ID:             registered.ID,
		ChangePassword: true,
		Password:       "pw2",
		Status:         int(entity.StatusActive),
		Address:        "Home",
	})
	require.NoError(t, err)
	require.True(t, changed.Success)

	account = store.snapshot().accounts[id]
	assert.False(t, hasher.Check("pw1", account.PasswordHash))
	assert.True(t, hasher.Check("pw2", account.PasswordHash))

	oldLogin, err := svc.Login(ctx, &usecase.LoginInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)
	assert.False(t, oldLogin.Success)

	newLogin, err := svc.Login(ctx, &usecase.LoginInput{Email: "a@x.com", Password: "pw2"})
	require.NoError(t, err)
	assert.True(t, newLogin.Success)
	assert.Equal(t, "Home", newLogin.Data.Address)
}

func TestAccountFlow_UpdateOverwritesStatusAndAddress(t *testing.T) {
	svc, store, _ := newStoreBackedService(t)
	ctx := context.Background()
	address := "Old Street"

	result, err := svc.Register(ctx, &usecase.RegisterInput{
		Email:    "a@x.com",
		Password: "pw1",
		FullName: "Alice",
		Birthday: "1990-05-01",
		Address:  &address,
	})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "1990-05-01", result.Data.Birthday)

	updated, err := svc.Update(ctx, &usecase.UpdateInput{ID: result.Data.ID, Status: int(entity.StatusSuspended), Address: ""})
	require.NoError(t, err)
	require.True(t, updated.Success)

	id := uuid.MustParse(result.Data.ID)
	state := store.snapshot()
	assert.Equal(t, entity.StatusSuspended, state.accounts[id].Status)
	profile := state.profiles[id]
	require.NotNil(t, profile.Address)
	assert.Empty(t, *profile.Address)
	assert.Equal(t, "1990-05-01", profile.BirthdayText())

	login, err := svc.Login(ctx, &usecase.LoginInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)
	assertFailure(t, login, domainerrors.ErrAccountSuspended)
}

func TestAccountFlow_UpdateWithMalformedIDDoesNotWrite(t *testing.T) {
	svc, store, _ := newStoreBackedService(t)
	mustRegister(t, svc, "a@x.com", "pw1")
	before := store.snapshot()
	commits := store.commits

	result, err := svc.Update(context.Background(), &usecase.UpdateInput{
		ID:             "definitely-not-an-id",
		ChangePassword: true,
		Password:       "pw2",
		Status:         int(entity.StatusSuspended),
	})

	require.NoError(t, err)
	assertFailure(t, result, domainerrors.ErrInvalidID)
	assert.Equal(t, before, store.snapshot())
	assert.Equal(t, commits, store.commits)
}

func TestAccountFlow_UpdateUnknownAccount(t *testing.T) {
	svc, _, _ := newStoreBackedService(t)

	result, err := svc.Update(context.Background(), &usecase.UpdateInput{ID: uuid.NewString(), Status: 1})

	require.NoError(t, err)
	assertFailure(t, result, domainerrors.ErrAccountNotFound)
}
