package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/sovet/internal/error_values"
	"github.com/limbo/sovet/pkg/entity"
)

const userColumns = `u.id, u.stated_goal, u.niche, u.experience, u.time_commitment, u.onboarding_complete, u.notifications_enabled, u.notification_time, u.created_at`

type UsersRepository struct {
	conn PgConnection
}

func NewUsersRepoWithConn(conn PgConnection) *UsersRepository {
	return &UsersRepository{
		conn: conn,
	}
}

func (ur *UsersRepository) Save(ctx context.Context, user *entity.User) error {
	if user == nil {
		return errors.New("user is nil")
	}
	_, err := ur.conn.Exec(ctx,
		`INSERT INTO users (id, stated_goal, niche, experience, time_commitment, onboarding_complete, notifications_enabled, notification_time, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET stated_goal = EXCLUDED.stated_goal, niche = EXCLUDED.niche, experience = EXCLUDED.experience,
time_commitment = EXCLUDED.time_commitment, onboarding_complete = EXCLUDED.onboarding_complete,
notifications_enabled = EXCLUDED.notifications_enabled, notification_time = EXCLUDED.notification_time;`,
		user.ID,
		user.StatedGoal,
		user.Niche,
		string(user.Experience),
		user.TimeCommitment,
		user.OnboardingComplete,
		user.NotificationPreferences.Enabled,
		user.NotificationPreferences.Time,
		user.CreatedAt,
	)
	if err != nil {
		return errors.New("saving user db error: " + err.Error())
	}
	return nil
}

func (ur *UsersRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	row := ur.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1;`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("searching user by id error: " + err.Error())
	}
	return user, nil
}

func (ur *UsersRepository) FindByFarcasterID(ctx context.Context, fid string) (*entity.User, error) {
	row := ur.conn.QueryRow(ctx,
		`SELECT `+userColumns+` FROM farcaster_links f JOIN users u ON u.id = f.user_id WHERE f.fid = $1;`,
		fid,
	)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrFarcasterLinkNotFound
		}
		return nil, errors.New("searching user by farcaster id error: " + err.Error())
	}
	return user, nil
}

func (ur *UsersRepository) LinkFarcaster(ctx context.Context, fid, userID string) error {
	_, err := ur.conn.Exec(ctx,
		`INSERT INTO farcaster_links (fid, user_id) VALUES ($1, $2) ON CONFLICT (fid) DO UPDATE SET user_id = EXCLUDED.user_id;`,
		fid,
		userID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return errorvalues.ErrUserNotFound
			}
		}
		return errors.New("linking farcaster user error: " + err.Error())
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		user       entity.User
		experience string
	)
	err := row.Scan(
		&user.ID,
		&user.StatedGoal,
		&user.Niche,
		&experience,
		&user.TimeCommitment,
		&user.OnboardingComplete,
		&user.NotificationPreferences.Enabled,
		&user.NotificationPreferences.Time,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Experience = entity.Experience(experience)
	return &user, nil
}
