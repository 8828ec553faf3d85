package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/bytedance/sonic"
	"github.com/limbo/sovet/pkg/entity"
	"github.com/limbo/sovet/pkg/kvstore"
	"go.uber.org/zap"
)

// LogTTL is the retention of progress logs and of users' log sets.
const LogTTL = 365 * 24 * time.Hour

const LogKeyPrefix = "log:"

func LogKey(logID string) string {
	return LogKeyPrefix + logID
}

func UserLogsKey(userID string) string {
	return "user:" + userID + ":logs"
}

type ProgressLogRepository struct {
	store  kvstore.Store
	logger *zap.Logger
}

func NewProgressLogRepo(store kvstore.Store, logger *zap.Logger) *ProgressLogRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressLogRepository{
		store:  store,
		logger: logger,
	}
}

// Save writes the record first and the set membership second. The two writes
// are not atomic: a failure in between leaves a record no listing reaches.
func (pr *ProgressLogRepository) Save(ctx context.Context, log *entity.ProgressLog) error {
	if log == nil {
		return errors.New("progress log is nil")
	}
	data, err := sonic.Marshal(log)
	if err != nil {
		return errors.New("encoding progress log error: " + err.Error())
	}
	if err = pr.store.Set(ctx, LogKey(log.ID), data, LogTTL); err != nil {
		return err
	}
	return pr.store.AddToSet(ctx, UserLogsKey(log.UserID), log.ID, LogTTL)
}

func (pr *ProgressLogRepository) ListByUser(ctx context.Context, userID string) ([]*entity.ProgressLog, error) {
	ids, err := pr.store.Members(ctx, UserLogsKey(userID))
	if err != nil {
		return nil, err
	}
	result := make([]*entity.ProgressLog, 0, len(ids))
	for _, id := range ids {
		data, err := pr.store.Get(ctx, LogKey(id))
		if err != nil {
			if errors.Is(err, kvstore.ErrNotFound) {
				continue
			}
			return nil, err
		}
		var log entity.ProgressLog
		if err := sonic.Unmarshal(data, &log); err != nil {
			pr.logger.Warn("malformed_progress_log_skipped",
				zap.String("user_id", userID),
				zap.String("log_id", id),
				zap.Error(err),
			)
			continue
		}
		result = append(result, &log)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].LoggedAt.Equal(result[j].LoggedAt) {
			return result[i].LoggedAt.After(result[j].LoggedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}
