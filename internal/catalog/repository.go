package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/tuanthaoreal/storebot/core/logger"
	"log/slog"
)

// ErrProductNotFound is returned when a lookup by code matches nothing.
var ErrProductNotFound = errors.New("product not found")

// ErrDuplicateCode is returned when an insert races another writer for the same code.
var ErrDuplicateCode = errors.New("product code already exists")

const uniqueViolation = "23505"

// Repository provides access to the products table.
// The bot assumes a single operator writer; no locking beyond
// single-statement atomicity is needed.
type Repository struct {
	db *sqlx.DB
}

// NewRepository wires a Repository onto the given database handle.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

type productRow struct {
	ID          int64          `db:"id"`
	Code        string         `db:"code"`
	Description string         `db:"description"`
	ImageURLs   string         `db:"image_urls"`
	Price       int64          `db:"price"`
	ShopURL     sql.NullString `db:"shop_url"`
}

func (r productRow) toProduct() Product {
	return Product{
		ID:          r.ID,
		Code:        r.Code,
		Description: r.Description,
		ImageURLs:   splitImageURLs(r.ImageURLs),
		Price:       r.Price,
		ShopURL:     r.ShopURL.String,
	}
}

// GetByCode finds a product by its code, case-insensitively.
func (r *Repository) GetByCode(ctx context.Context, code string) (Product, error) {
	var row productRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, code, description, image_urls, price, shop_url
		   FROM products WHERE lower(code) = lower($1)`, code)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrProductNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("get product %s: %w", code, err)
	}
	return row.toProduct(), nil
}

// NextCode allocates the successor of the highest-inserted code.
// Insertion order (id) decides which code is highest, matching the
// append-only allocation scheme.
func (r *Repository) NextCode(ctx context.Context) (string, error) {
	var lastCode string
	err := r.db.GetContext(ctx, &lastCode,
		`SELECT code FROM products ORDER BY id DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return FirstCode, nil
	}
	if err != nil {
		return "", fmt.Errorf("read last code: %w", err)
	}
	next, err := NextCodeAfter(lastCode)
	if err != nil {
		return "", fmt.Errorf("allocate next code: %w", err)
	}
	return next, nil
}

// Insert stores a draft under a freshly allocated code and returns the
// stored product. A lost allocation race is retried once with a new code.
func (r *Repository) Insert(ctx context.Context, draft Draft) (Product, error) {
	start := time.Now()

	var stored Product
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		var code string
		code, err = r.NextCode(ctx)
		if err != nil {
			return Product{}, err
		}
		stored, err = r.insertWithCode(ctx, code, draft)
		if err == nil {
			break
		}
		if !errors.Is(err, ErrDuplicateCode) {
			return Product{}, err
		}
	}
	if err != nil {
		return Product{}, err
	}

	logger.SVCCatalog.Info("product inserted",
		slog.String("event", "catalog.insert"),
		slog.String("code", stored.Code),
		slog.Int64("price", stored.Price),
		slog.Int("count", len(stored.ImageURLs)),
		slog.Duration("duration", logger.Took(start)),
	)
	return stored, nil
}

func (r *Repository) insertWithCode(ctx context.Context, code string, draft Draft) (Product, error) {
	shopURL := sql.NullString{String: draft.ShopURL, Valid: draft.ShopURL != ""}

	var row productRow
	err := r.db.GetContext(ctx, &row,
		`INSERT INTO products (code, description, image_urls, price, shop_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, code, description, image_urls, price, shop_url`,
		code, draft.Description, joinImageURLs(draft.ImageURLs), draft.Price, shopURL)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return Product{}, fmt.Errorf("insert %s: %w", code, ErrDuplicateCode)
		}
		return Product{}, fmt.Errorf("insert %s: %w", code, err)
	}
	return row.toProduct(), nil
}

// DeleteByCode removes a product by code and reports whether a row was removed.
func (r *Repository) DeleteByCode(ctx context.Context, code string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM products WHERE lower(code) = lower($1)`, code)
	if err != nil {
		return false, fmt.Errorf("delete product %s: %w", code, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete product %s: %w", code, err)
	}
	if affected > 0 {
		logger.SVCCatalog.Info("product deleted",
			slog.String("event", "catalog.delete"),
			slog.String("code", NormalizeCode(code)),
		)
	}
	return affected > 0, nil
}

// ListAll returns every product in insertion order.
func (r *Repository) ListAll(ctx context.Context) ([]Product, error) {
	var rows []productRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, code, description, image_urls, price, shop_url
		   FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toProduct())
	}
	return products, nil
}

// InBucket returns all products whose price falls inside the bucket,
// in insertion order.
func (r *Repository) InBucket(ctx context.Context, bucket PriceBucket) ([]Product, error) {
	query := `SELECT id, code, description, image_urls, price, shop_url
	            FROM products WHERE price >= $1`
	args := []any{bucket.Min}
	if !bucket.Unbounded() {
		query += ` AND price <= $2`
		args = append(args, bucket.Max)
	}
	query += ` ORDER BY id`

	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("bucket query %s: %w", bucket.Key, err)
	}
	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toProduct())
	}
	return products, nil
}
