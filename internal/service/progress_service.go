package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/sovet/internal/error_values"
	"github.com/limbo/sovet/internal/repository"
	"github.com/limbo/sovet/internal/streak"
	"github.com/limbo/sovet/pkg/entity"
)

type ProgressService struct {
	logs  repository.ProgressLogRepositoryI
	calc  *streak.Calculator
	clock func() time.Time
}

func NewProgressService(logs repository.ProgressLogRepositoryI, calc *streak.Calculator, clock func() time.Time) *ProgressService {
	if logs == nil {
		log.Fatal("on progress service provided nil repo")
	}
	if calc == nil {
		calc = streak.New(time.UTC)
	}
	if clock == nil {
		clock = time.Now
	}
	return &ProgressService{
		logs:  logs,
		calc:  calc,
		clock: clock,
	}
}

// RecordCompletion does not check that user or tip exist.
func (serv *ProgressService) RecordCompletion(ctx context.Context, userID, tipID, notes string) (*entity.ProgressLog, error) {
	if userID == "" || tipID == "" {
		return nil, errorvalues.ErrInvalidIdentifier
	}
	record := &entity.ProgressLog{
		ID:              uuid.NewString(),
		UserID:          userID,
		TipID:           tipID,
		ActionCompleted: true,
		LoggedAt:        serv.clock(),
		Notes:           sanitize(notes),
	}
	if err := serv.logs.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("repository error: %w", err)
	}
	return record, nil
}

func (serv *ProgressService) ListRecords(ctx context.Context, userID string) ([]*entity.ProgressLog, error) {
	if userID == "" {
		return nil, errorvalues.ErrInvalidIdentifier
	}
	records, err := serv.logs.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("repository error: %w", err)
	}
	return records, nil
}

func (serv *ProgressService) GetStats(ctx context.Context, userID string) (entity.ProgressStats, error) {
	records, err := serv.ListRecords(ctx, userID)
	if err != nil {
		return entity.ProgressStats{}, err
	}
	return serv.calc.Compute(records, serv.clock()), nil
}
