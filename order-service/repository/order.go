package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hktjayaranga/CoreBookingPlatform-Backend/order-service/models"

	"github.com/lib/pq"
)

var ErrOrderNotFound = errors.New("order not found")

const (
	orderColumns = "order_id, user_id, status, total_price, created_at, updated_at"
	itemColumns  = "order_item_id, order_id, product_id, quantity, price, external_booking_id"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateOrder inserts the order and its items in one transaction and fills
// in the generated identifiers.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		"INSERT INTO orders (user_id, status, total_price, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING order_id",
		order.UserID, string(order.Status), order.TotalPrice, order.CreatedAt, order.UpdatedAt,
	).Scan(&order.OrderID)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.OrderID
		err = tx.QueryRowContext(ctx,
			"INSERT INTO order_items (order_id, product_id, quantity, price, external_booking_id) VALUES ($1, $2, $3, $4, $5) RETURNING order_item_id",
			order.OrderID, item.ProductID, item.Quantity, item.Price, item.ExternalBookingID,
		).Scan(&item.OrderItemID)
		if err != nil {
			return fmt.Errorf("insert order item for product %d: %w", item.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

func (r *OrderRepository) GetOrder(ctx context.Context, orderID int) (*models.Order, error) {
	var order models.Order
	err := r.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE order_id = $1", orderID,
	).Scan(&order.OrderID, &order.UserID, &order.Status, &order.TotalPrice, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order %d: %w", orderID, err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM order_items WHERE order_id = $1 ORDER BY order_item_id", orderID)
	if err != nil {
		return nil, fmt.Errorf("get items of order %d: %w", orderID, err)
	}
	defer rows.Close()

	order.Items = []models.OrderItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items of order %d: %w", orderID, err)
	}
	return &order, nil
}

// ListOrdersByUser returns the user's orders newest first. The result is never nil.
func (r *OrderRepository) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE user_id = $1 ORDER BY created_at DESC, order_id DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("list orders of user %s: %w", userID, err)
	}

	orders := []models.Order{}
	index := map[int]int{}
	ids := []int64{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.OrderID, &o.UserID, &o.Status, &o.TotalPrice, &o.CreatedAt, &o.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Items = []models.OrderItem{}
		index[o.OrderID] = len(orders)
		ids = append(ids, int64(o.OrderID))
		orders = append(orders, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders of user %s: %w", userID, err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := r.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, order_item_id", pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("list order items of user %s: %w", userID, err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		item, err := scanItem(itemRows)
		if err != nil {
			return nil, err
		}
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items of user %s: %w", userID, err)
	}
	return orders, nil
}

// MarkCanceled moves a non-canceled order to Canceled. It reports false when
// the order does not exist or was already canceled.
func (r *OrderRepository) MarkCanceled(ctx context.Context, orderID int, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = $2 WHERE order_id = $3 AND status <> $1",
		string(models.OrderStatusCanceled), at, orderID)
	if err != nil {
		return false, fmt.Errorf("cancel order %d: %w", orderID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("cancel order %d: %w", orderID, err)
	}
	return n > 0, nil
}

func scanItem(rows *sql.Rows) (models.OrderItem, error) {
	var item models.OrderItem
	if err := rows.Scan(&item.OrderItemID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.ExternalBookingID); err != nil {
		return item, fmt.Errorf("scan order item: %w", err)
	}
	return item, nil
}
