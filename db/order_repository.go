package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"shop/entities"

	"github.com/shopspring/decimal"
)

var (
	ErrProductGone      = errors.New("order references a product missing from the catalog")
	ErrDuplicateProduct = errors.New("order lists the same product twice")
)

type OrderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) OrderRepository {
	if db == nil {
		panic("db is nil")
	}
	return OrderRepository{
		db: db,
	}
}

// Create inserts the order header and all its items in one
// read-committed transaction. Either the whole order becomes visible on
// commit or nothing does.
func (or OrderRepository) Create(
	ctx context.Context,
	items []entities.BasketItem,
	totalAmount decimal.Decimal,
) (orderID int64, err error) {
	tx, err := or.db.Conn.BeginTxx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return 0, fmt.Errorf("could not begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			rollbackErr := tx.Rollback()
			err = errors.Join(err, rollbackErr)
			return
		}
		err = tx.Commit()
	}()

	err = tx.QueryRowContext(
		ctx,
		`
		INSERT INTO orders (total_amount)
		VALUES ($1)
		RETURNING id`,
		totalAmount,
	).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("could not insert order: %w", err)
	}

	orderItems := make([]entities.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, entities.OrderItem{
			OrderID:   orderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO
		    order_items (order_id, product_id, quantity)
		VALUES (:order_id, :product_id, :quantity)
		`, orderItems)
	if err != nil {
		if isErrorForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: %w", ErrProductGone, err)
		}
		if isErrorUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %w", ErrDuplicateProduct, err)
		}
		return 0, fmt.Errorf("could not insert order items: %w", err)
	}

	return orderID, nil
}

func (or OrderRepository) ItemsByOrderID(ctx context.Context, orderID int64) ([]entities.OrderItem, error) {
	var items []entities.OrderItem
	err := or.db.Conn.SelectContext(ctx, &items, `
		SELECT
		    order_id, product_id, quantity
		FROM
		    order_items
		WHERE
		    order_id = $1
		ORDER BY product_id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("could not get order items: %w", err)
	}

	return items, nil
}
