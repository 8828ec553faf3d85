package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/sovet/internal/error_values"
	"github.com/limbo/sovet/internal/repository"
	"github.com/limbo/sovet/internal/tipgen"
	"github.com/limbo/sovet/pkg/entity"
)

type TipService struct {
	tips  repository.TipsRepositoryI
	gen   tipgen.Generator
	clock func() time.Time
}

func NewTipService(tipsRepo repository.TipsRepositoryI, gen tipgen.Generator, clock func() time.Time) *TipService {
	if gen == nil {
		gen = tipgen.NewCatalog()
	}
	if clock == nil {
		clock = time.Now
	}
	return &TipService{
		tips:  tipsRepo,
		gen:   gen,
		clock: clock,
	}
}

// FrameTipID is the id of the tip shown to fid on the day of at.
func FrameTipID(fid string, at time.Time) string {
	return "tip_" + fid + "_" + at.Format(time.DateOnly)
}

func (ts *TipService) NewTip(ctx context.Context, user *entity.User, tipID string) (*entity.DailyTip, error) {
	if user == nil {
		return nil, errorvalues.ErrUserNotFound
	}
	if tipID == "" {
		tipID = "tip_" + uuid.NewString()
	}
	experience := user.Experience
	if experience == "" {
		experience = entity.Intermediate
	}
	content, err := ts.gen.Generate(ctx, user.StatedGoal, user.Niche, experience)
	if err != nil {
		return nil, errors.New("tip generation error: " + err.Error())
	}
	tip := &entity.DailyTip{
		ID:          tipID,
		Content:     content.Content,
		Niche:       user.Niche,
		ActionItems: content.ActionItems,
		GeneratedAt: ts.clock().UTC(),
		Difficulty:  experience,
	}
	if err = ts.tips.Save(ctx, tip); err != nil {
		return nil, errors.New("repository creating error: " + err.Error())
	}
	return tip, nil
}

func (ts *TipService) GetTip(ctx context.Context, id string) (*entity.DailyTip, error) {
	if id == "" {
		return nil, errorvalues.ErrInvalidIdentifier
	}
	tip, err := ts.tips.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrTipNotFound) {
			return nil, err
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return tip, nil
}
