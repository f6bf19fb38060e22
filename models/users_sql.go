package models

import (
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

type sqlUserRepo struct{ db *sql.DB }

func NewSQLUserRepository(db *sql.DB) UserRepository { return &sqlUserRepo{db} }

func (r *sqlUserRepo) Create(u *User) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), 14)
	if err != nil {
		return err
	}

	if u.Role == "" {
		u.Role = RoleUser
	}
	return r.db.QueryRow(
		`INSERT INTO profiles(email, password, full_name, role, is_admin, club_id)
		 VALUES ($1,$2,$3,$4,$5,NULLIF($6,'')::uuid) RETURNING id`,
		u.Email, string(hashed), u.FullName, u.Role, u.IsAdmin, u.ClubID,
	).Scan(&u.ID)
}

func (r *sqlUserRepo) ValidateCredentials(email, plain string) (User, error) {
	u, hashed, err := r.get(`WHERE email=$1`, email)
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) != nil {
		return User{}, errors.New("credentials invalid")
	}
	return u, nil
}

func (r *sqlUserRepo) GetByID(id int64) (User, error) {
	u, _, err := r.get(`WHERE id=$1`, id)
	return u, err
}

func (r *sqlUserRepo) get(where string, arg any) (User, string, error) {
	row := r.db.QueryRow(
		`SELECT id, email, password, full_name, role, is_admin, COALESCE(club_id::text,'')
		 FROM profiles `+where, arg)

	var u User
	var hashed string
	err := row.Scan(&u.ID, &u.Email, &hashed, &u.FullName, &u.Role, &u.IsAdmin, &u.ClubID)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, "", ErrNotFound
	}
	if err != nil {
		return User{}, "", err
	}
	return u, hashed, nil
}
