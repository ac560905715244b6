package impl

import (
	"context"
	"errors"
	"slices"
	"sync"

	"member/internal/domain/entity"
	"member/internal/domain/repository"

	"github.com/google/uuid"
)

var errDuplicateRole = errors.New("role already assigned")

// memoryState is one snapshot of the tables.
type memoryState struct {
	accounts map[uuid.UUID]entity.Account
	profiles map[uuid.UUID]entity.Profile
	roles    map[uuid.UUID][]entity.RoleID
}

func newMemoryState() *memoryState {
	return &memoryState{
		accounts: make(map[uuid.UUID]entity.Account),
		profiles: make(map[uuid.UUID]entity.Profile),
		roles:    make(map[uuid.UUID][]entity.RoleID),
	}
}

func (st *memoryState) clone() *memoryState {
	cloned := newMemoryState()
	for id, account := range st.accounts {
		cloned.accounts[id] = account
	}
	for id, profile := range st.profiles {
		cloned.profiles[id] = profile
	}
	for id, roles := range st.roles {
		cloned.roles[id] = slices.Clone(roles)
	}

	return cloned
}

func (st *memoryState) accountByEmail(email string) (entity.Account, bool) {
	for _, account := range st.accounts {
		if account.Email == email {
			return account, true
		}
	}

	return entity.Account{}, false
}

// memoryStore is an in-memory TransactionManager. Transactions run serially against a staged
// copy that replaces the committed state only when fn succeeds, and a second account with the
// same email is rejected the way the unique index rejects it.
type memoryStore struct {
	mu      sync.Mutex
	state   *memoryState
	commits int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{state: newMemoryState()}
}

func (s *memoryStore) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.state.clone()
	if err := fn(&memoryFactory{view: memoryView{state: staged}}); err != nil {
		return err
	}

	s.state = staged
	s.commits++

	return nil
}

func (s *memoryStore) accounts() *memoryAccounts {
	return &memoryAccounts{memoryView{store: s}}
}

func (s *memoryStore) profiles() *memoryProfiles {
	return &memoryProfiles{memoryView{store: s}}
}

func (s *memoryStore) snapshot() *memoryState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.clone()
}

// setStatus changes an account's status outside any use case.
func (s *memoryStore) setStatus(id uuid.UUID, status entity.AccountStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.state.accounts[id]
	account.Status = status
	s.state.accounts[id] = account
}

// memoryView reads either the committed state under the store lock or a staged transaction state.
type memoryView struct {
	store *memoryStore
	state *memoryState
}

func (v memoryView) with(fn func(st *memoryState) error) error {
	if v.state != nil {
		return fn(v.state)
	}

	v.store.mu.Lock()
	defer v.store.mu.Unlock()

	return fn(v.store.state)
}

type memoryFactory struct {
	view memoryView
}

func (f *memoryFactory) AccountRepo() repository.AccountRepository {
	return &memoryAccounts{f.view}
}

func (f *memoryFactory) ProfileRepo() repository.ProfileRepository {
	return &memoryProfiles{f.view}
}

func (f *memoryFactory) RoleRepo() repository.RoleRepository {
	return &memoryRoles{f.view}
}

type memoryAccounts struct {
	view memoryView
}

func (r *memoryAccounts) FindLoginRecord(_ context.Context, email string) (*entity.LoginRecord, error) {
	var record *entity.LoginRecord
	err := r.view.with(func(st *memoryState) error {
		account, ok := st.accountByEmail(email)
		if !ok {
			return repository.ErrAccountNotFound
		}

		record = &entity.LoginRecord{Account: account}
		if profile, ok := st.profiles[account.ID]; ok {
			record.FullName = profile.FullName
			record.Birthday = profile.Birthday
			record.Address = profile.AddressText()
		}
		if roles := st.roles[account.ID]; len(roles) > 0 {
			record.RoleID = slices.Min(roles)
		}

		return nil
	})

	return record, err
}

func (r *memoryAccounts) ExistsByEmail(_ context.Context, email string) (bool, error) {
	var exists bool
	err := r.view.with(func(st *memoryState) error {
		_, exists = st.accountByEmail(email)

		return nil
	})

	return exists, err
}

func (r *memoryAccounts) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	var found *entity.Account
	err := r.view.with(func(st *memoryState) error {
		account, ok := st.accounts[id]
		if !ok {
			return repository.ErrAccountNotFound
		}
		found = &account

		return nil
	})

	return found, err
}

func (r *memoryAccounts) Create(_ context.Context, account *entity.Account) error {
	return r.view.with(func(st *memoryState) error {
		if _, taken := st.accountByEmail(account.Email); taken {
			return repository.ErrEmailTaken
		}
		st.accounts[account.ID] = *account

		return nil
	})
}

func (r *memoryAccounts) Update(_ context.Context, account *entity.Account) error {
	return r.view.with(func(st *memoryState) error {
		stored, ok := st.accounts[account.ID]
		if !ok {
			return repository.ErrAccountNotFound
		}
		stored.Status = account.Status
		stored.PasswordHash = account.PasswordHash
		stored.UpdatedAt = account.UpdatedAt
		st.accounts[account.ID] = stored

		return nil
	})
}

type memoryProfiles struct {
	view memoryView
}

func (r *memoryProfiles) FindByAccountID(_ context.Context, accountID uuid.UUID) (*entity.Profile, error) {
	var found *entity.Profile
	err := r.view.with(func(st *memoryState) error {
		profile, ok := st.profiles[accountID]
		if !ok {
			return repository.ErrProfileNotFound
		}
		found = &profile

		return nil
	})

	return found, err
}

func (r *memoryProfiles) Create(_ context.Context, profile *entity.Profile) error {
	return r.view.with(func(st *memoryState) error {
		st.profiles[profile.AccountID] = *profile

		return nil
	})
}

func (r *memoryProfiles) UpdateAddress(_ context.Context, profile *entity.Profile) error {
	return r.view.with(func(st *memoryState) error {
		stored, ok := st.profiles[profile.AccountID]
		if !ok {
			return repository.ErrProfileNotFound
		}
		stored.Address = profile.Address
		st.profiles[profile.AccountID] = stored

		return nil
	})
}

type memoryRoles struct {
	view memoryView
}

func (r *memoryRoles) Assign(_ context.Context, assignment *entity.RoleAssignment) error {
	return r.view.with(func(st *memoryState) error {
		if slices.Contains(st.roles[assignment.AccountID], assignment.RoleID) {
			return errDuplicateRole
		}
		st.roles[assignment.AccountID] = append(st.roles[assignment.AccountID], assignment.RoleID)

		return nil
	})
}
