package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/limbo/sovet/pkg/entity"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

type UsersRepositoryI interface {
	// Creates user or overwrites profile of existing one
	Save(ctx context.Context, user *entity.User) error
	// Looks up user by id
	FindByID(ctx context.Context, id string) (*entity.User, error)
	// Looks up user linked to farcaster id
	FindByFarcasterID(ctx context.Context, fid string) (*entity.User, error)
	// Links farcaster id to user. Relinking moves the fid to the new user
	LinkFarcaster(ctx context.Context, fid, userID string) error
}

type TipsRepositoryI interface {
	// Creates tip or overwrites existing one with the same id
	Save(ctx context.Context, tip *entity.DailyTip) error
	// Searches tip with given id. Expired tips are reported as not found
	GetByID(ctx context.Context, id string) (*entity.DailyTip, error)
}

type ProgressLogRepositoryI interface {
	// Persists log and registers its id in owner's log set
	Save(ctx context.Context, log *entity.ProgressLog) error
	// Lists every reachable log of user, most recent first
	ListByUser(ctx context.Context, userID string) ([]*entity.ProgressLog, error)
}

type AccessRepositoryI interface {
	// Returns raw access marker of user, empty string if none is set
	GetAccess(ctx context.Context, userID string) (string, error)
	// Marks user as granted for ttl
	GrantAccess(ctx context.Context, userID string, ttl time.Duration) error
	// Stores subscription until its expiration
	SaveSubscription(ctx context.Context, sub *entity.Subscription) error
	// Returns active subscription of user
	GetSubscription(ctx context.Context, userID string) (*entity.Subscription, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
