package models

import (
	"database/sql"
	"errors"
)

type sqlClubRepo struct{ db *sql.DB }

func NewSQLClubRepository(db *sql.DB) ClubRepository { return &sqlClubRepo{db} }

func (r *sqlClubRepo) GetAll() ([]Club, error) {
	rows, err := r.db.Query(
		`SELECT id, name, description, admin_email, created_at FROM clubs ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Club
	for rows.Next() {
		var c Club
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.AdminEmail, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *sqlClubRepo) GetByID(id string) (Club, error) {
	var c Club
	err := r.db.QueryRow(
		`SELECT id, name, description, admin_email, created_at FROM clubs WHERE id=$1`, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.AdminEmail, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Club{}, ErrNotFound
	}
	if err != nil {
		return Club{}, err
	}
	return c, nil
}

func (r *sqlClubRepo) Create(c *Club) error {
	_, err := r.db.Exec(
		`INSERT INTO clubs(id, name, description, admin_email, created_at) VALUES ($1,$2,$3,$4,$5)`,
		c.ID, c.Name, c.Description, c.AdminEmail, c.CreatedAt)
	return err
}
