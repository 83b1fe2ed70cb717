package pgdb

import (
	"context"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/tr"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// RemoteCartRepo — удалённое зеркало корзин по пользователю.
// Снапшот замещается целиком в одной транзакции: читатель никогда не видит
// смесь старых и новых позиций.
type RemoteCartRepo struct {
	pool *pgxpool.Pool
	conv converter.RemoteCartConverter
}

func NewRemoteCartRepo(pool *pgxpool.Pool, conv converter.RemoteCartConverter) *RemoteCartRepo {
	return &RemoteCartRepo{
		pool: pool,
		conv: conv,
	}
}

// ReplaceSnapshot применяет replace-on-conflict по user_id:
// upsert шапки корзины, удаление старых позиций, вставка новых.
func (r *RemoteCartRepo) ReplaceSnapshot(ctx context.Context, userID string, cart *domain.Cart, ts time.Time) (err error) {
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, r.pool)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if err = r.upsertCart(ctx, userID, cart, ts); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err = r.replaceItems(ctx, userID, cart); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// upsertCart записывает шапку снапшота. Побеждает последняя полная запись.
func (r *RemoteCartRepo) upsertCart(ctx context.Context, userID string, cart *domain.Cart, ts time.Time) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	var (
		discountCode  *string
		discountKind  *string
		discountValue *int64
	)
	if cart.Discount != nil {
		code := cart.Discount.Code
		kind := string(cart.Discount.Kind)
		value := cart.Discount.Value
		discountCode, discountKind, discountValue = &code, &kind, &value
	}

	query := `
		INSERT INTO remote_carts (user_id, session_id, discount_code, discount_kind, discount_value, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id)
		DO UPDATE SET
			session_id = EXCLUDED.session_id,
			discount_code = EXCLUDED.discount_code,
			discount_kind = EXCLUDED.discount_kind,
			discount_value = EXCLUDED.discount_value,
			updated_at = EXCLUDED.updated_at
	`

	_, err = tx.Exec(ctx, query, userID, cart.SessionID, discountCode, discountKind, discountValue, ts)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// replaceItems заменяет позиции снапшота пользователя.
func (r *RemoteCartRepo) replaceItems(ctx context.Context, userID string, cart *domain.Cart) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM remote_cart_items WHERE user_id = $1`, userID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO remote_cart_items
			(user_id, position, variant_id, product_id, title, price, currency, quantity, color, size, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for _, model := range r.conv.ToItemModels(userID, cart) {
		_, err := tx.Exec(ctx, query,
			model.UserID,
			model.Position,
			model.VariantID,
			model.ProductID,
			model.Title,
			model.Price,
			model.Currency,
			model.Quantity,
			model.Color,
			model.Size,
			model.ImageURL,
		)
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return nil
}
