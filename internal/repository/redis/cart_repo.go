package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DRSN-tech/storefront-backend/internal/cfg"
	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/storefront-backend/pkg/clients"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// CartRepo — локальное durable хранилище снапшотов корзины.
// SET в Redis атомарен относительно GET: читатель всегда видит либо
// предыдущий валидный снапшот, либо новый целиком, но не обрывок записи.
type CartRepo struct {
	client *clients.RedisClient
	conv   converter.CartConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCartRepo(client *clients.RedisClient, conv converter.CartConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CartRepo {
	return &CartRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// Get возвращает снапшот корзины сессии.
// Отсутствие ключа — (nil, nil); нечитаемое значение — ErrSnapshotCorrupted.
func (c *CartRepo) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := c.client.Client.Get(ctx, c.cartKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.CartRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrSnapshotCorrupted)
	}

	return c.conv.ToEntity(&model), nil
}

// Set записывает полный снапшот корзины одной атомарной командой.
func (c *CartRepo) Set(ctx context.Context, cart *domain.Cart) error {
	model := c.conv.ToRedisModel(cart)

	data, err := json.Marshal(model)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, c.cartKey(cart.SessionID), data, c.cfg.CartTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// cartKey возвращает Redis-ключ корзины сессии.
func (c *CartRepo) cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
