package tipgen

import (
	"context"

	"github.com/limbo/sovet/pkg/entity"
	"go.uber.org/zap"
)

// Fallback tries primary and answers from the built-in catalog when it fails.
type Fallback struct {
	primary Generator
	logger  *zap.Logger
}

func NewFallback(primary Generator, logger *zap.Logger) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fallback{
		primary: primary,
		logger:  logger,
	}
}

func (f *Fallback) Generate(ctx context.Context, goal, niche string, experience entity.Experience) (entity.TipContent, error) {
	if f.primary != nil {
		tip, err := f.primary.Generate(ctx, goal, niche, experience)
		if err == nil {
			return tip, nil
		}
		f.logger.Warn("tip_generation_fallback",
			zap.String("niche", niche),
			zap.String("experience", string(experience)),
			zap.Error(err),
		)
	}
	return Lookup(goal, niche, experience), nil
}
