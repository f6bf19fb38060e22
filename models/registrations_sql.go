package models

import (
	"database/sql"
	"errors"
)

type sqlRegistrationRepo struct{ db *sql.DB }

func NewSQLRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &sqlRegistrationRepo{db}
}

const regColumns = `id, event_id, user_id, email, COALESCE(message,''), status,
	COALESCE(payment_status,''), COALESCE(payment_amount,0), created_at`

func (r *sqlRegistrationRepo) Create(reg *Registration) error {
	// The partial unique index on (user_id, event_id) WHERE status <> 'rejected'
	// backstops the ledger's duplicate check under concurrent inserts.
	_, err := r.db.Exec(
		`INSERT INTO registrations(id, event_id, user_id, email, message, status, payment_status, payment_amount, created_at)
		 VALUES ($1,$2,$3,$4,NULLIF($5,''),$6,NULLIF($7,''),$8,$9)`,
		reg.ID, reg.EventID, reg.UserID, reg.Email, reg.Message, reg.Status,
		reg.PaymentStatus, reg.PaymentAmount, reg.CreatedAt,
	)
	return err
}

func (r *sqlRegistrationRepo) GetByID(id string) (Registration, error) {
	row := r.db.QueryRow(`SELECT `+regColumns+` FROM registrations WHERE id=$1`, id)
	return scanRegistration(row)
}

func (r *sqlRegistrationRepo) ListByEvent(eventID string) ([]Registration, error) {
	return r.list(
		`SELECT `+regColumns+` FROM registrations WHERE event_id=$1 ORDER BY created_at ASC, id ASC`,
		eventID)
}

func (r *sqlRegistrationRepo) ListByUser(userID int64) ([]Registration, error) {
	return r.list(
		`SELECT `+regColumns+` FROM registrations WHERE user_id=$1 ORDER BY created_at DESC`,
		userID)
}

func (r *sqlRegistrationRepo) ListByStatus(status string) ([]Registration, error) {
	return r.list(
		`SELECT `+regColumns+` FROM registrations WHERE status=$1 ORDER BY created_at DESC`,
		status)
}

func (r *sqlRegistrationRepo) UpdateStatus(id, status string) error {
	res, err := r.db.Exec(`UPDATE registrations SET status=$2 WHERE id=$1`, id, status)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqlRegistrationRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM registrations WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqlRegistrationRepo) list(query string, arg any) ([]Registration, error) {
	rows, err := r.db.Query(query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanRegistration(row rowScanner) (Registration, error) {
	var reg Registration
	err := row.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.Email, &reg.Message,
		&reg.Status, &reg.PaymentStatus, &reg.PaymentAmount, &reg.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Registration{}, ErrNotFound
	}
	if err != nil {
		return Registration{}, err
	}
	return reg, nil
}
