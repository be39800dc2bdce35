package db

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/harborlight/carecal/internal/model"
)

// CreateUser inserts a new coordinator account and returns its id.
func (s *pgStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	var newID int
	err := sqlx.Get(s.run, &newID, `
	INSERT INTO users (email, hashed_password, name, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id;`, email, hashedPassword, name)
	if err != nil {
		log.Error().Err(err).Msg("failed to create user")
		return 0, err
	}
	return newID, nil
}

// GetUserByEmail returns sql.ErrNoRows when no account matches.
func (s *pgStore) GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	err := sqlx.Get(s.run, &u, `
	SELECT id, email, hashed_password, name, created_at, updated_at
	  FROM users
	 WHERE email = $1;`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("failed to get user by email")
		return nil, err
	}
	return &u, nil
}

func (s *pgStore) GetUserByID(id int) (*model.User, error) {
	var u model.User
	err := sqlx.Get(s.run, &u, `
	SELECT id, email, hashed_password, name, created_at, updated_at
	  FROM users
	 WHERE id = $1;`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("failed to get user by id")
		return nil, err
	}
	return &u, nil
}

// UpdateUserProfile updates email and name and bumps updated_at,
// erroring when the user does not exist.
func (s *pgStore) UpdateUserProfile(id int, email string, name *string) error {
	res, err := s.run.Exec(`
	UPDATE users
	   SET email = $2, name = $3, updated_at = now()
	 WHERE id = $1;`, id, email, name)
	if err != nil {
		log.Error().Err(err).Int("user_id", id).Msg("failed to update user profile")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("no such user")
	}
	return nil
}
