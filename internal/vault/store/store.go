package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/credvault/internal/vault/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	ErrUnknownField  = errors.New("store: unknown account field")
)

// Store is the root data access interface. Drivers implement it and expose
// sub-repositories so a transaction can be handed around as the same shape
// as the store itself.
type Store interface {
	Users() Users
	Accounts() Accounts
	Groups() Groups

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. The transaction is rolled
	// back if fn returns an error and committed otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error

	// UpdateTwoFASecret stores a pending (not yet enabled) encrypted secret.
	UpdateTwoFASecret(ctx context.Context, userID string, secret string) error

	EnableTwoFA(ctx context.Context, userID string) error

	// DisableTwoFA clears both the flag and the secret.
	DisableTwoFA(ctx context.Context, userID string) error

	IsEmpty(ctx context.Context) (bool, error)
}

// Accounts persists credential records in their encrypted form. It never
// sees plaintext.
type Accounts interface {
	// ListAccounts returns every account ordered by sort order then id,
	// with the owning group name attached.
	ListAccounts(ctx context.Context) ([]domain.StoredAccount, error)

	GetAccount(ctx context.Context, id int64) (domain.StoredAccount, error)

	// CreateAccount inserts a and returns the new id. Timestamps are set by
	// the store.
	CreateAccount(ctx context.Context, a domain.StoredAccount) (int64, error)

	// UpdateAccount overwrites every field except the sort order.
	UpdateAccount(ctx context.Context, a domain.StoredAccount) error

	DeleteAccount(ctx context.Context, id int64) error

	UpdateAccountOrder(ctx context.Context, id int64, order int) error

	// NextAccountOrder returns max(order)+1, or 0 for an empty table.
	NextAccountOrder(ctx context.Context) (int, error)

	// GetAccountField and SetAccountField read and write a single encrypted
	// column by name.
	GetAccountField(ctx context.Context, id int64, field domain.AccountField) (string, error)
	SetAccountField(ctx context.Context, id int64, field domain.AccountField, value string) error

	CountAccountsInGroup(ctx context.Context, groupID int64) (int, error)
}

type Groups interface {
	// ListGroups returns every group ordered by sort order with account counts.
	ListGroups(ctx context.Context) ([]domain.Group, error)

	GetGroup(ctx context.Context, id int64) (domain.Group, error)

	// CreateGroup returns ErrAlreadyExists when the name is taken.
	CreateGroup(ctx context.Context, g domain.Group) (int64, error)

	RenameGroup(ctx context.Context, id int64, name string) error

	DeleteGroup(ctx context.Context, id int64) error

	NextGroupOrder(ctx context.Context) (int, error)
}
