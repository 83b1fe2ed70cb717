package pgdb

import (
	"context"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// OrderRepo хранит журнал созданных заказов.
type OrderRepo struct {
	pool *pgxpool.Pool
	conv converter.OrderConverter
}

func NewOrderRepo(pool *pgxpool.Pool, conv converter.OrderConverter) *OrderRepo {
	return &OrderRepo{
		pool: pool,
		conv: conv,
	}
}

// Create добавляет запись о созданном заказе.
// Повторная запись той же попытки игнорируется.
func (o *OrderRepo) Create(ctx context.Context, order *domain.Order) error {
	model := o.conv.ToModel(order)

	query := `
		INSERT INTO checkout_orders
			(id, attempt_id, session_id, user_id, remote_id, checkout_url, total_amount, currency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (attempt_id) DO NOTHING
	`

	_, err := o.pool.Exec(ctx, query,
		model.ID,
		model.AttemptID,
		model.SessionID,
		model.UserID,
		model.RemoteID,
		model.CheckoutURL,
		model.TotalAmount,
		model.Currency,
		model.CreatedAt,
	)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
