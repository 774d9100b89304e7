package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-restaurant-orders/internal/paging"
)

var ErrOrderNotFound = errors.New("order not found")

type Repo struct{ DB *pgxpool.Pool }

// money columns are read as text so NUMERIC keeps its exact scale.
const orderColumns = `id, user_id, receiver_name, receiver_phone, receiver_address,
	created_at, total_price::text, status, payment_method, payment_status`

func scanOrder(row pgx.Row) (Order, error) {
	var (
		o             Order
		total         string
		status        string
		method        string
		paymentStatus *string
	)
	if err := row.Scan(&o.ID, &o.UserID, &o.ReceiverName, &o.ReceiverPhone, &o.ReceiverAddress,
		&o.Date, &total, &status, &method, &paymentStatus); err != nil {
		return Order{}, err
	}
	tp, err := decimal.NewFromString(total)
	if err != nil {
		return Order{}, fmt.Errorf("order %s total_price: %w", o.ID, err)
	}
	o.TotalPrice = tp
	o.Status = Status(status)
	o.PaymentMethod = PaymentMethod(method)
	o.PaymentStatus = ParsePaymentStatus(paymentStatus)
	return o, nil
}

// ListMyOrders returns the user's orders, newest first, each with its items.
func (r *Repo) ListMyOrders(ctx context.Context, userID string, p paging.Params) (paging.Page[Order], error) {
	p = p.Normalize()

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id=$1`, userID).Scan(&total); err != nil {
		return paging.Page[Order]{}, fmt.Errorf("count orders: %w", err)
	}

	rows, err := r.DB.Query(ctx, `SELECT `+orderColumns+`
		FROM orders
		WHERE user_id=$1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`, userID, p.Limit(), p.Offset())
	if err != nil {
		return paging.Page[Order]{}, fmt.Errorf("list orders: %w", err)
	}
	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return paging.Page[Order]{}, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return paging.Page[Order]{}, fmt.Errorf("list orders: %w", err)
	}

	if err := r.attachItems(ctx, out); err != nil {
		return paging.Page[Order]{}, err
	}
	return paging.NewPage(out, p, total), nil
}

func (r *Repo) GetOrder(ctx context.Context, id string) (Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrOrderNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("get order %s: %w", id, err)
	}
	list := []Order{o}
	if err := r.attachItems(ctx, list); err != nil {
		return Order{}, err
	}
	return list[0], nil
}

func (r *Repo) attachItems(ctx context.Context, list []Order) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, len(list))
	idx := make(map[string]int, len(list))
	for i, o := range list {
		ids[i] = o.ID
		idx[o.ID] = i
		list[i].Items = []OrderItem{}
	}

	rows, err := r.DB.Query(ctx, `
		SELECT order_id, id, name, quantity, price::text, total::text, image_url
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, id`, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID, price, total string
			it                    OrderItem
		)
		if err := rows.Scan(&orderID, &it.ID, &it.Name, &it.Quantity, &price, &total, &it.ImageURL); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if it.Price, err = decimal.NewFromString(price); err != nil {
			return fmt.Errorf("order item %s price: %w", it.ID, err)
		}
		if it.Total, err = decimal.NewFromString(total); err != nil {
			return fmt.Errorf("order item %s total: %w", it.ID, err)
		}
		i := idx[orderID]
		list[i].Items = append(list[i].Items, it)
	}
	return rows.Err()
}

// UpdatePaymentStatus moves the payment axis forward. It reports false when
// the stored status does not allow the move (a PAID order is never changed).
func (r *Repo) UpdatePaymentStatus(ctx context.Context, id string, to PaymentStatus) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var current *string
	err = tx.QueryRow(ctx, `SELECT payment_status FROM orders WHERE id=$1 FOR UPDATE`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrOrderNotFound
	}
	if err != nil {
		return false, fmt.Errorf("lock order %s: %w", id, err)
	}
	if !CanTransitionPayment(ParsePaymentStatus(current), to) {
		return false, nil
	}

	if _, err := tx.Exec(ctx,
		`UPDATE orders SET payment_status=$2, updated_at=now() WHERE id=$1`, id, string(to),
	); err != nil {
		return false, fmt.Errorf("update payment status %s: %w", id, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit payment status %s: %w", id, err)
	}
	return true, nil
}
