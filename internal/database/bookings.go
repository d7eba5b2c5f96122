package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"arenda/internal/models"
)

const bookingColumns = `id, item_id, item_name, booker_id, booker_name,
	start_date, end_date, status, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	var b models.Booking
	var start, end string
	err := row.Scan(
		&b.ID, &b.ItemID, &b.ItemName, &b.BookerID, &b.BookerName,
		&start, &end, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	startAt, err := parseTime(start)
	if err != nil {
		return nil, fmt.Errorf("failed to parse booking start %s: %w", start, err)
	}
	endAt, err := parseTime(end)
	if err != nil {
		return nil, fmt.Errorf("failed to parse booking end %s: %w", end, err)
	}
	b.Start = models.NewLocalTime(startAt)
	b.End = models.NewLocalTime(endAt)
	return &b, nil
}

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (item_id, item_name, booker_id, booker_name,
				start_date, end_date, status, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		booking.ItemID,
		booking.ItemName,
		booking.BookerID,
		booking.BookerName,
		formatTime(booking.Start.Time),
		formatTime(booking.End.Time),
		booking.Status,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now

	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	booking, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("booking %d: %w", id, ErrBookingNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("booking %d: %w", id, ErrBookingNotFound)
	}
	return nil
}

// stateFilter appends the SQL condition for a booking state filter.
// The caller validates the state before querying.
func stateFilter(state string, now time.Time) (string, []any) {
	nowStr := formatTime(now)
	switch state {
	case models.StateCurrent:
		return ` AND start_date <= ? AND end_date >= ?`, []any{nowStr, nowStr}
	case models.StateFuture:
		return ` AND start_date > ?`, []any{nowStr}
	case models.StatePast:
		return ` AND end_date < ?`, []any{nowStr}
	case models.StateWaiting:
		return ` AND status = ?`, []any{models.StatusWaiting}
	case models.StateRejected:
		return ` AND status = ?`, []any{models.StatusRejected}
	default: // ALL
		return ``, nil
	}
}

func (db *DB) ListBookingsByBooker(ctx context.Context, bookerID int64, state string, now time.Time) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booker_id = ?`
	args := []any{bookerID}

	cond, condArgs := stateFilter(state, now)
	query += cond
	args = append(args, condArgs...)
	query += ` ORDER BY start_date DESC, id DESC`

	return db.queryBookings(ctx, query, args...)
}

func (db *DB) ListBookingsByOwner(ctx context.Context, ownerID int64, state string, now time.Time) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE item_id IN (SELECT id FROM items WHERE owner_id = ?)`
	args := []any{ownerID}

	cond, condArgs := stateFilter(state, now)
	query += cond
	args = append(args, condArgs...)
	query += ` ORDER BY start_date DESC, id DESC`

	return db.queryBookings(ctx, query, args...)
}

func (db *DB) ListBookingsByItem(ctx context.Context, itemID int64) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE item_id = ? ORDER BY id ASC`
	return db.queryBookings(ctx, query, itemID)
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}
