package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/joaquinrv/tienda-platform/internal/models"
	"github.com/joaquinrv/tienda-platform/internal/utils"
)

// ErrCartLineNotFound is returned when a (session, product) line does not exist.
var ErrCartLineNotFound = errors.New("cart line not found")

type CartRepository interface {
	GetLine(ctx context.Context, sessionID string, productID int64) (*models.CartLine, error)
	InsertLine(ctx context.Context, line *models.CartLine) error
	UpdateLineQuantity(ctx context.Context, lineID, quantity int64) error
	ListItems(ctx context.Context, sessionID string) ([]models.CartItem, error)
	RemoveLineRestock(ctx context.Context, sessionID string, productID int64) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) GetLine(ctx context.Context, sessionID string, productID int64) (*models.CartLine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	line := &models.CartLine{SessionID: sessionID, ProductID: productID}

	query := `SELECT id, quantity FROM cart_lines WHERE session_id = $1 AND product_id = $2`

	err := r.DB.QueryRowContext(dbCtx, query, sessionID, productID).Scan(&line.ID, &line.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartLineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying cart line: %w", err)
	}

	return line, nil
}

func (r *cartRepository) InsertLine(ctx context.Context, line *models.CartLine) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO cart_lines (session_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id`

	return r.DB.QueryRowContext(dbCtx, query, line.SessionID, line.ProductID, line.Quantity).Scan(&line.ID)
}

func (r *cartRepository) UpdateLineQuantity(ctx context.Context, lineID, quantity int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE cart_lines SET quantity = $1 WHERE id = $2`, quantity, lineID)
	if err != nil {
		return fmt.Errorf("failed to update cart line: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return ErrCartLineNotFound
	}

	return nil
}

func (r *cartRepository) ListItems(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT c.product_id, c.quantity, p.name, p.image_url, p.price
		FROM cart_lines c
		JOIN products p ON c.product_id = p.id
		WHERE c.session_id = $1
		ORDER BY c.id`

	rows, err := r.DB.QueryContext(dbCtx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}

	defer rows.Close()

	var items []models.CartItem

	for rows.Next() {
		var item models.CartItem

		err := rows.Scan(&item.ProductID, &item.Quantity, &item.Name, &item.ImageURL, &item.Price)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// RemoveLineRestock deletes a cart line and returns its quantity to the
// product's stock counter. The two writes share one transaction; a crash
// between them must not leave stock permanently short.
func (r *cartRepository) RemoveLineRestock(ctx context.Context, sessionID string, productID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	var quantity int64

	err = tx.QueryRowContext(dbCtx,
		`SELECT quantity FROM cart_lines WHERE session_id = $1 AND product_id = $2`,
		sessionID, productID).Scan(&quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCartLineNotFound
	}
	if err != nil {
		return fmt.Errorf("querying cart line: %w", err)
	}

	_, err = tx.ExecContext(dbCtx,
		`DELETE FROM cart_lines WHERE session_id = $1 AND product_id = $2`,
		sessionID, productID)
	if err != nil {
		return fmt.Errorf("failed to delete cart line: %w", err)
	}

	_, err = tx.ExecContext(dbCtx,
		`UPDATE products SET quantity = quantity + $1, updated_at = NOW() WHERE id = $2`,
		quantity, productID)
	if err != nil {
		return fmt.Errorf("failed to restore stock: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cart removal: %w", err)
	}

	return nil
}
