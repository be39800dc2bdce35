package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/harborlight/carecal/internal/model"
)

func (s *pgStore) InsertTimeOff(employeeID int, start, end time.Time, reason *string) (model.TimeOff, error) {
	var t model.TimeOff
	const q = `
	INSERT INTO time_off (employee_id, start_date, end_date, reason)
	VALUES ($1, $2, $3, $4)
	RETURNING id, employee_id, start_date, end_date, reason, created_at;`
	if err := sqlx.Get(s.run, &t, q, employeeID, start, end, reason); err != nil {
		log.Error().Err(err).Int("employee_id", employeeID).Msg("InsertTimeOff failed")
		return model.TimeOff{}, err
	}
	return t, nil
}

func (s *pgStore) GetTimeOffByID(id int) (*model.TimeOff, error) {
	var t model.TimeOff
	err := sqlx.Get(s.run, &t, `
	SELECT id, employee_id, start_date, end_date, reason, created_at
	  FROM time_off
	 WHERE id = $1;`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Int("time_off_id", id).Msg("GetTimeOffByID failed")
		return nil, err
	}
	return &t, nil
}

// ListTimeOffOverlapping returns windows intersecting [start, end],
// both inclusive.
func (s *pgStore) ListTimeOffOverlapping(start, end time.Time) ([]model.TimeOff, error) {
	var out []model.TimeOff
	const q = `
	SELECT id, employee_id, start_date, end_date, reason, created_at
	  FROM time_off
	 WHERE NOT (end_date < $1::date OR start_date > $2::date)
	 ORDER BY start_date, employee_id;`
	if err := sqlx.Select(s.run, &out, q, start, end); err != nil {
		log.Error().Err(err).Msg("ListTimeOffOverlapping failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) UpdateTimeOff(id, employeeID int, start, end time.Time, reason *string) (bool, error) {
	res, err := s.run.Exec(`
	UPDATE time_off
	   SET employee_id = $2, start_date = $3, end_date = $4, reason = $5
	 WHERE id = $1;`, id, employeeID, start, end, reason)
	if err != nil {
		log.Error().Err(err).Int("time_off_id", id).Msg("UpdateTimeOff failed")
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (s *pgStore) DeleteTimeOff(id int) (bool, error) {
	res, err := s.run.Exec(`DELETE FROM time_off WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("time_off_id", id).Msg("DeleteTimeOff failed")
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}
