package ports

import (
	"context"

	"github.com/bnema/world-saver-cli/internal/domain"
)

type GameRecordRepository interface {
	Save(ctx context.Context, record domain.GameRecord) error
	List(ctx context.Context) ([]domain.GameRecord, error)
}
