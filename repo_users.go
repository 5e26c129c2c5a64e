package auth

import (
	"context"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var markVerifiedSQL = `UPDATE "users" AS "usr"
SET
	"is_verified" = TRUE,
	"refresh_token_hash" = ?
WHERE
	"usr"."id" = ?
RETURNING *;`

var storeRefreshHashSQL = `UPDATE "users" AS "usr"
SET
	"refresh_token_hash" = ?
WHERE
	"usr"."id" = ?
RETURNING *;`

type Users interface {
	repository.Repository[*User]

	Register(ctx context.Context, user *User) (*User, error)
	RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error)

	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error)
	GetByUserID(ctx context.Context, id string) (*User, error)

	MarkVerified(ctx context.Context, id uuid.UUID, refreshTokenHash string) (*User, error)
	MarkVerifiedTx(ctx context.Context, tx bun.IDB, id uuid.UUID, refreshTokenHash string) (*User, error)
	StoreRefreshTokenHash(ctx context.Context, id uuid.UUID, refreshTokenHash string) error
	StoreRefreshTokenHashTx(ctx context.Context, tx bun.IDB, id uuid.UUID, refreshTokenHash string) error

	PurgeUnverified(ctx context.Context, olderThan time.Time) (int64, error)
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users                        = (*users)(nil)
	_ repository.Repository[*User] = (*users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) Register(ctx context.Context, user *User) (*User, error) {
	return a.RegisterTx(ctx, a.db, user)
}

func (a *users) RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error) {
	prepareUserDefaults(user)
	return a.Repository.CreateTx(ctx, tx, user)
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	return a.GetByEmailTx(ctx, a.db, email)
}

func (a *users) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error) {
	record := &User{}

	err := tx.NewSelect().Model(record).
		Where("?TableAlias.email = ?", NormalizeEmail(email)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"email": NormalizeEmail(email),
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *users) GetByUserID(ctx context.Context, id string) (*User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrIdentityNotFound
	}
	return a.Repository.GetByID(ctx, uid.String())
}

// MarkVerified flips the verification flag and installs the first
// refresh token hash in a single statement. Calling it on an already
// verified record is harmless.
func (a *users) MarkVerified(ctx context.Context, id uuid.UUID, refreshTokenHash string) (*User, error) {
	return a.MarkVerifiedTx(ctx, a.db, id, refreshTokenHash)
}

func (a *users) MarkVerifiedTx(ctx context.Context, tx bun.IDB, id uuid.UUID, refreshTokenHash string) (*User, error) {
	res, err := a.Repository.RawTx(ctx, tx, markVerifiedSQL, refreshTokenHash, id.String())
	if err != nil {
		return nil, err
	}

	if len(res) == 0 {
		return nil, repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return res[0], nil
}

func (a *users) StoreRefreshTokenHash(ctx context.Context, id uuid.UUID, refreshTokenHash string) error {
	return a.StoreRefreshTokenHashTx(ctx, a.db, id, refreshTokenHash)
}

func (a *users) StoreRefreshTokenHashTx(ctx context.Context, tx bun.IDB, id uuid.UUID, refreshTokenHash string) error {
	res, err := a.Repository.RawTx(ctx, tx, storeRefreshHashSQL, refreshTokenHash, id.String())
	if err != nil {
		return err
	}

	if len(res) == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}

// PurgeUnverified deletes unverified records created before the
// cutoff. Runs outside the request path on a timer.
func (a *users) PurgeUnverified(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := a.db.NewDelete().
		Model((*User)(nil)).
		Where("is_verified = ?", false).
		Where("created_at < ?", olderThan).
		Exec(ctx)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	record.Email = NormalizeEmail(record.Email)

	if record.ID == uuid.Nil {
		if id, err := hashid.NewUUID(record.Email); err == nil {
			record.ID = id
		} else {
			record.ID = uuid.New()
		}
	}
}
