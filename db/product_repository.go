package db

import (
	"context"
	"fmt"
	"shop/entities"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) ProductRepository {
	if db == nil {
		panic("db is nil")
	}
	return ProductRepository{
		db: db,
	}
}

func (pr ProductRepository) Get(ctx context.Context) ([]entities.Product, error) {
	var products []entities.Product
	err := pr.db.Conn.SelectContext(ctx, &products, `
		SELECT
		    id, title, summary, price, date_added
		FROM
		    products
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("could not get products: %w", err)
	}

	return products, nil
}

// PriceOf returns the unit price for every requested product id known to
// the catalog. Unknown ids are simply absent from the result.
func (pr ProductRepository) PriceOf(ctx context.Context, productIDs []int64) (map[int64]decimal.Decimal, error) {
	if len(productIDs) == 0 {
		return map[int64]decimal.Decimal{}, nil
	}

	query, args, err := sqlx.In(`SELECT id, price FROM products WHERE id IN (?)`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("could not build price query: %w", err)
	}

	var rows []struct {
		ID    int64           `db:"id"`
		Price decimal.Decimal `db:"price"`
	}
	err = pr.db.Conn.SelectContext(ctx, &rows, pr.db.Conn.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("could not get product prices: %w", err)
	}

	prices := make(map[int64]decimal.Decimal, len(rows))
	for _, row := range rows {
		prices[row.ID] = row.Price
	}

	return prices, nil
}
