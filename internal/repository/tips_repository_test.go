package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	errorvalues "github.com/limbo/sovet/internal/error_values"
	"github.com/limbo/sovet/internal/repository"
	"github.com/limbo/sovet/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTip() entity.DailyTip {
	return entity.DailyTip{
		ID:          "tip_1",
		Content:     "Practice in front of a mirror.",
		Niche:       "public-speaking",
		ActionItems: []string{"Record yourself", "Watch it back"},
		GeneratedAt: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC),
		Difficulty:  entity.Beginner,
	}
}

func TestSaveTip(t *testing.T) {
	conn, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewTipsRepoWithConn(conn)
	tip := testTip()
	query := regexp.QuoteMeta(`INSERT INTO daily_tips`)
	args := []any{
		tip.ID, tip.Content, tip.Niche, tip.ActionItems, string(tip.Difficulty),
		tip.GeneratedAt, tip.GeneratedAt.Add(repository.TipTTL),
	}
	ctx := context.Background()
	t.Run("saved with expiration", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(args...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
		assert.NoError(t, repo.Save(ctx, &tip))
	})
	t.Run("nil action items stored as empty array", func(t *testing.T) {
		empty := tip
		empty.ActionItems = nil
		conn.ExpectExec(query).
			WithArgs(tip.ID, tip.Content, tip.Niche, []string{}, string(tip.Difficulty), tip.GeneratedAt, tip.GeneratedAt.Add(repository.TipTTL)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		assert.NoError(t, repo.Save(ctx, &empty))
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(args...).WillReturnError(errors.New("db error"))
		assert.EqualError(t, repo.Save(ctx, &tip), "saving tip db error: db error")
	})
	assert.NoError(t, conn.ExpectationsWereMet())
}

func TestGetTipByID(t *testing.T) {
	conn, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewTipsRepoWithConn(conn)
	tip := testTip()
	query := regexp.QuoteMeta(`SELECT id, content, niche, action_items, difficulty, generated_at FROM daily_tips WHERE id = $1 AND expires_at > now();`)
	ctx := context.Background()
	testCases := []struct {
		Desc         string
		Error        error
		MockPrepFunc func()
	}{
		{
			Desc:  "found",
			Error: nil,
			MockPrepFunc: func() {
				conn.ExpectQuery(query).WithArgs(tip.ID).WillReturnRows(
					pgxmock.NewRows([]string{"id", "content", "niche", "action_items", "difficulty", "generated_at"}).
						AddRow(tip.ID, tip.Content, tip.Niche, tip.ActionItems, string(tip.Difficulty), tip.GeneratedAt),
				)
			},
		},
		{
			Desc:  "not found or expired",
			Error: errorvalues.ErrTipNotFound,
			MockPrepFunc: func() {
				conn.ExpectQuery(query).WithArgs(tip.ID).WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			Desc:  "db error",
			Error: errors.New("searching tip by id error: db error"),
			MockPrepFunc: func() {
				conn.ExpectQuery(query).WithArgs(tip.ID).WillReturnError(errors.New("db error"))
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			result, err := repo.GetByID(ctx, tip.ID)
			if tc.Error != nil {
				assert.EqualError(t, err, tc.Error.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tip, *result)
		})
	}
}
