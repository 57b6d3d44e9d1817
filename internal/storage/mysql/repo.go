package mysql

import (
	"context"
	"database/sql"

	"hotel_ledger/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
func valInt(i int) any {
	if i == 0 {
		return nil
	}
	return i
}

// Repo is the MySQL booking journal.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Record(ctx context.Context, e domain.BookingEvent) error {
	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.ID,
		string(e.Kind),
		e.Hotel,
		valStr(e.Room),
		valStr(e.Guest),
		valInt(e.CheckIn),
		valInt(e.CheckOut),
		e.TotalPrice,
		valStr(e.Detail),
		e.At.UTC(),
	)
	return err
}

func (r *Repo) ListEvents(ctx context.Context, hotel string, limit int) ([]domain.BookingEvent, error) {
	rows, err := r.db.QueryContext(ctx, listEventsSQL, hotel, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BookingEvent
	for rows.Next() {
		var e domain.BookingEvent
		var (
			kind              string
			room, guest, det  sql.NullString
			checkIn, checkOut sql.NullInt64
		)
		if err := rows.Scan(
			&e.ID,
			&kind,
			&e.Hotel,
			&room,
			&guest,
			&checkIn,
			&checkOut,
			&e.TotalPrice,
			&det,
			&e.At,
		); err != nil {
			return nil, err
		}
		e.Kind = domain.EventKind(kind)
		e.Room = room.String
		e.Guest = guest.String
		e.Detail = det.String
		e.CheckIn = int(checkIn.Int64)
		e.CheckOut = int(checkOut.Int64)
		e.At = e.At.UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
