package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	errorvalues "github.com/limbo/sovet/internal/error_values"
	"github.com/limbo/sovet/pkg/entity"
)

// TipTTL is how long a generated tip stays readable.
const TipTTL = 30 * 24 * time.Hour

type TipsRepository struct {
	conn PgConnection
}

func NewTipsRepoWithConn(conn PgConnection) *TipsRepository {
	return &TipsRepository{
		conn: conn,
	}
}

func (tr *TipsRepository) Save(ctx context.Context, tip *entity.DailyTip) error {
	if tip == nil {
		return errors.New("tip is nil")
	}
	actionItems := tip.ActionItems
	if actionItems == nil {
		actionItems = []string{}
	}
	_, err := tr.conn.Exec(ctx,
		`INSERT INTO daily_tips (id, content, niche, action_items, difficulty, generated_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET content = EXCLUDED.content, niche = EXCLUDED.niche, action_items = EXCLUDED.action_items,
difficulty = EXCLUDED.difficulty, generated_at = EXCLUDED.generated_at, expires_at = EXCLUDED.expires_at;`,
		tip.ID,
		tip.Content,
		tip.Niche,
		actionItems,
		string(tip.Difficulty),
		tip.GeneratedAt,
		tip.GeneratedAt.Add(TipTTL),
	)
	if err != nil {
		return errors.New("saving tip db error: " + err.Error())
	}
	return nil
}

func (tr *TipsRepository) GetByID(ctx context.Context, id string) (*entity.DailyTip, error) {
	var (
		tip        entity.DailyTip
		difficulty string
	)
	row := tr.conn.QueryRow(ctx,
		`SELECT id, content, niche, action_items, difficulty, generated_at FROM daily_tips WHERE id = $1 AND expires_at > now();`,
		id,
	)
	err := row.Scan(&tip.ID, &tip.Content, &tip.Niche, &tip.ActionItems, &difficulty, &tip.GeneratedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrTipNotFound
		}
		return nil, errors.New("searching tip by id error: " + err.Error())
	}
	tip.Difficulty = entity.Experience(difficulty)
	return &tip, nil
}
