package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/joaquinrv/tienda-platform/internal/models"
	"github.com/joaquinrv/tienda-platform/internal/utils"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidTotal      = errors.New("checkout total is not positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSaleNotFound      = errors.New("sale not found")
)

// StockError reports which product failed the conditional stock decrement.
type StockError struct {
	ProductID   int64
	ProductName string
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q (id %d)", e.ProductName, e.ProductID)
}

type SaleRepository interface {
	Checkout(ctx context.Context, sessionID string, userID int64, removeSoldOut bool) (int64, error)
	GetSale(ctx context.Context, saleID int64) (*models.Sale, error)
	GetSaleLines(ctx context.Context, saleID int64) ([]models.SaleLine, error)
	ListSales(ctx context.Context) ([]models.Sale, error)
	ListSalesByUser(ctx context.Context, userID int64) ([]models.Sale, error)
	SalesByProduct(ctx context.Context) ([]models.ProductSales, error)
}

type saleRepository struct {
	DB *sql.DB
}

func NewSaleRepo(db *sql.DB) SaleRepository {
	return &saleRepository{DB: db}
}

// Checkout converts every cart line of the session into one sale, as a
// single all-or-nothing transaction:
//
//  1. lock the account row (two checkouts from the same account must not
//     both read a pre-debit balance)
//  2. read the cart lines joined with current price/name, in insertion
//     order; prices captured here are the snapshots the sale records
//  3. validate total > 0 and funds >= total
//  4. insert the sale header, then per line a snapshot insert followed by
//     the conditional decrement; zero rows affected means stock moved
//     under us and the whole transaction rolls back
//  5. debit the account, clear the cart, commit
//
// Intermediate writes are never visible outside the open transaction.
func (r *saleRepository) Checkout(ctx context.Context, sessionID string, userID int64, removeSoldOut bool) (int64, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin checkout transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	var funds float64

	err = tx.QueryRowContext(dbCtx, `SELECT funds FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&funds)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrAccountNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to lock account row: %w", err)
	}

	rows, err := tx.QueryContext(dbCtx, `
		SELECT c.product_id, c.quantity, p.name, p.price
		FROM cart_lines c
		JOIN products p ON c.product_id = p.id
		WHERE c.session_id = $1
		ORDER BY c.id`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to read cart lines: %w", err)
	}

	type checkoutLine struct {
		productID int64
		quantity  int64
		name      string
		price     float64
	}

	var lines []checkoutLine

	for rows.Next() {
		var line checkoutLine

		if err := rows.Scan(&line.productID, &line.quantity, &line.name, &line.price); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan cart line: %w", err)
		}

		lines = append(lines, line)
	}

	rows.Close()

	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to read cart lines: %w", err)
	}

	if len(lines) == 0 {
		return 0, ErrEmptyCart
	}

	var total float64
	for _, line := range lines {
		total += line.price * float64(line.quantity)
	}

	if total <= 0 {
		return 0, ErrInvalidTotal
	}

	if funds < total {
		return 0, ErrInsufficientFunds
	}

	var saleID int64

	err = tx.QueryRowContext(dbCtx,
		`INSERT INTO sales (user_id, total, created_at) VALUES ($1, $2, NOW()) RETURNING id`,
		userID, total).Scan(&saleID)
	if err != nil {
		return 0, fmt.Errorf("failed to create sale header: %w", err)
	}

	for _, line := range lines {

		_, err = tx.ExecContext(dbCtx,
			`INSERT INTO sale_lines (sale_id, product_id, name, price, quantity) VALUES ($1, $2, $3, $4, $5)`,
			saleID, line.productID, line.name, line.price, line.quantity)
		if err != nil {
			return 0, fmt.Errorf("failed to create sale line: %w", err)
		}

		// Conditional decrement: only takes effect while stock still covers
		// the requested quantity, so no separate read-then-write race exists.
		result, err := tx.ExecContext(dbCtx,
			`UPDATE products SET quantity = quantity - $1, updated_at = NOW() WHERE id = $2 AND quantity >= $1`,
			line.quantity, line.productID)
		if err != nil {
			return 0, fmt.Errorf("failed to decrement stock: %w", err)
		}

		updatedRows, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get updated rows: %w", err)
		}

		if updatedRows == 0 {
			return 0, &StockError{ProductID: line.productID, ProductName: line.name}
		}

		if removeSoldOut {
			_, err = tx.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1 AND quantity = 0`, line.productID)
			if err != nil {
				return 0, fmt.Errorf("failed to remove sold-out product: %w", err)
			}
		}
	}

	_, err = tx.ExecContext(dbCtx,
		`UPDATE users SET funds = funds - $1, updated_at = NOW() WHERE id = $2`,
		total, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to debit account: %w", err)
	}

	_, err = tx.ExecContext(dbCtx, `DELETE FROM cart_lines WHERE session_id = $1`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit checkout: %w", err)
	}

	return saleID, nil
}

func (r *saleRepository) GetSale(ctx context.Context, saleID int64) (*models.Sale, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	sale := &models.Sale{ID: saleID}

	query := `SELECT user_id, total, created_at FROM sales WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, saleID).Scan(&sale.UserID, &sale.Total, &sale.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSaleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}

	return sale, nil
}

func (r *saleRepository) GetSaleLines(ctx context.Context, saleID int64) ([]models.SaleLine, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, sale_id, product_id, name, price, quantity
		FROM sale_lines
		WHERE sale_id = $1
		ORDER BY id`

	rows, err := r.DB.QueryContext(dbCtx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale lines: %w", err)
	}

	defer rows.Close()

	var lines []models.SaleLine

	for rows.Next() {
		var line models.SaleLine

		err := rows.Scan(&line.ID, &line.SaleID, &line.ProductID, &line.Name, &line.Price, &line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale line: %w", err)
		}

		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func (r *saleRepository) ListSales(ctx context.Context) ([]models.Sale, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT s.id, s.user_id, COALESCE(u.username, ''), s.total, s.created_at
		FROM sales s
		LEFT JOIN users u ON s.user_id = u.id
		ORDER BY s.id DESC`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	defer rows.Close()

	var sales []models.Sale

	for rows.Next() {
		var sale models.Sale

		err := rows.Scan(&sale.ID, &sale.UserID, &sale.Username, &sale.Total, &sale.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}

		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sales, nil
}

func (r *saleRepository) ListSalesByUser(ctx context.Context, userID int64) ([]models.Sale, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, total, created_at
		FROM sales
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	defer rows.Close()

	var sales []models.Sale

	for rows.Next() {
		var sale models.Sale

		err := rows.Scan(&sale.ID, &sale.UserID, &sale.Total, &sale.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}

		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sales, nil
}

// SalesByProduct aggregates units sold per snapshot product name.
func (r *saleRepository) SalesByProduct(ctx context.Context) ([]models.ProductSales, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT name, SUM(quantity) AS total_sold
		FROM sale_lines
		GROUP BY name
		ORDER BY total_sold DESC`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}

	defer rows.Close()

	var stats []models.ProductSales

	for rows.Next() {
		var entry models.ProductSales

		err := rows.Scan(&entry.Name, &entry.TotalSold)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sales row: %w", err)
		}

		stats = append(stats, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
