package repositories

import (
	"context"

	"github.com/uptrace/bun"

	economyutils "github.com/silenole/stickerbot/stickerbot/economy/utils"
)

//go:generate mockgen -destination=mock/repositories.go -package=mock . UserRepository,StickerRepository,UserStickerRepository,MagicLinkRepository

// TxRepositories are repositories bound to one transaction.
type TxRepositories struct {
	Users        UserRepository
	UserStickers UserStickerRepository
}

// Transactor runs fn with repositories that share a single transaction.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}

type bunTransactor struct {
	tm *economyutils.EconomicTransactionManager
}

func NewTransactor(tm *economyutils.EconomicTransactionManager) Transactor {
	return &bunTransactor{tm: tm}
}

func (t *bunTransactor) InTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error {
	return t.tm.WithTransaction(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, TxRepositories{
			Users:        NewUserRepository(&tx),
			UserStickers: NewUserStickerRepository(&tx),
		})
	})
}
