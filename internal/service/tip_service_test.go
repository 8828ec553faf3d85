package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	errorvalues "github.com/limbo/sovet/internal/error_values"
	"github.com/limbo/sovet/internal/repository/mocks"
	"github.com/limbo/sovet/internal/service"
	"github.com/limbo/sovet/internal/tipgen"
	"github.com/limbo/sovet/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, string, string, entity.Experience) (entity.TipContent, error) {
	return entity.TipContent{}, errors.New("quota exceeded")
}

func TestNewTip(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	tipsRepo := mocks.NewMockTipsRepositoryI(ctrl)
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	serv := service.NewTipService(tipsRepo, tipgen.NewCatalog(), fixedClock(now))
	user := &entity.User{
		ID:         "user_1",
		StatedGoal: "Give a talk",
		Niche:      "public-speaking",
		Experience: entity.Beginner,
	}

	testCases := []struct {
		Desc         string
		Error        bool
		User         *entity.User
		TipID        string
		ExpPrefix    string
		MockPrepFunc func()
	}{
		{
			Desc:      "fresh id",
			User:      user,
			ExpPrefix: "tip_",
			MockPrepFunc: func() {
				tipsRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			Desc:      "given id",
			User:      user,
			TipID:     "tip_42_2025-03-10",
			ExpPrefix: "tip_42_2025-03-10",
			MockPrepFunc: func() {
				tipsRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			Desc:  "error saving",
			Error: true,
			User:  user,
			MockPrepFunc: func() {
				tipsRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
		},
		{
			Desc:         "error nil user",
			Error:        true,
			MockPrepFunc: func() {},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			tip, err := serv.NewTip(ctx, tc.User, tc.TipID)
			if tc.Error {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(tip.ID, tc.ExpPrefix))
			assert.Equal(t, "public-speaking", tip.Niche)
			assert.Equal(t, entity.Beginner, tip.Difficulty)
			assert.Equal(t, now, tip.GeneratedAt)
			assert.Contains(t, tip.Content, "mirror")
		})
	}
}

func TestNewTipGeneratorFailure(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	serv := service.NewTipService(mocks.NewMockTipsRepositoryI(ctrl), failingGenerator{}, nil)
	_, err := serv.NewTip(context.Background(), &entity.User{ID: "user_1"}, "")
	assert.Error(t, err)
}

func TestNewTipDefaultsDifficulty(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	tipsRepo := mocks.NewMockTipsRepositoryI(ctrl)
	serv := service.NewTipService(tipsRepo, nil, nil)
	tipsRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	tip, err := serv.NewTip(context.Background(), &entity.User{ID: "farcaster_1", StatedGoal: "grow", Niche: "crypto-dev"}, "")
	require.NoError(t, err)
	assert.Equal(t, entity.Intermediate, tip.Difficulty)
	assert.Equal(t, tipgen.Lookup("grow", "crypto-dev", entity.Intermediate).Content, tip.Content)
}

func TestGetTip(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	tipsRepo := mocks.NewMockTipsRepositoryI(ctrl)
	serv := service.NewTipService(tipsRepo, nil, nil)
	ctx := context.Background()

	tipsRepo.EXPECT().GetByID(gomock.Any(), "tip_1").Return(&entity.DailyTip{ID: "tip_1"}, nil)
	tip, err := serv.GetTip(ctx, "tip_1")
	require.NoError(t, err)
	assert.Equal(t, "tip_1", tip.ID)

	tipsRepo.EXPECT().GetByID(gomock.Any(), "tip_2").Return(nil, errorvalues.ErrTipNotFound)
	_, err = serv.GetTip(ctx, "tip_2")
	assert.ErrorIs(t, err, errorvalues.ErrTipNotFound)

	_, err = serv.GetTip(ctx, "")
	assert.ErrorIs(t, err, errorvalues.ErrInvalidIdentifier)
}

func TestFrameTipID(t *testing.T) {
	t.Parallel()
	at := time.Date(2025, 1, 2, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "tip_99_2025-01-02", service.FrameTipID("99", at))
}
