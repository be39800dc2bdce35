package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/harborlight/carecal/internal/model"
	"github.com/harborlight/carecal/internal/schedule"
)

// InsertShift inserts one occurrence. The unique index on
// (employee_id, start_at) makes re-inserting an identical occurrence a
// silent no-op; the returned bool reports whether a row was written.
func (s *pgStore) InsertShift(employeeID int, startAt time.Time, endAt *time.Time, seriesID *string) (bool, error) {
	res, err := s.run.Exec(`
	INSERT INTO shifts (employee_id, start_at, end_at, series_id)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (employee_id, start_at) DO NOTHING;`,
		employeeID, startAt, endAt, seriesID)
	if err != nil {
		log.Error().Err(err).Int("employee_id", employeeID).Time("start_at", startAt).Msg("InsertShift failed")
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// GetShiftByID returns (nil, nil) when no such shift exists.
func (s *pgStore) GetShiftByID(id int) (*model.Shift, error) {
	var sh model.Shift
	err := sqlx.Get(s.run, &sh, `
	SELECT id, employee_id, start_at, end_at, series_id, created_at
	  FROM shifts
	 WHERE id = $1;`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Int("shift_id", id).Msg("GetShiftByID failed")
		return nil, err
	}
	return &sh, nil
}

func (s *pgStore) UpdateShiftEmployee(id, employeeID int) (bool, error) {
	res, err := s.run.Exec(`UPDATE shifts SET employee_id = $2 WHERE id = $1;`, id, employeeID)
	if err != nil {
		log.Error().Err(err).Int("shift_id", id).Msg("UpdateShiftEmployee failed")
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (s *pgStore) UpdateShiftOccurrence(id int, startAt time.Time, endAt *time.Time, employeeID int) (bool, error) {
	res, err := s.run.Exec(`
	UPDATE shifts
	   SET start_at = $2, end_at = $3, employee_id = $4
	 WHERE id = $1;`, id, startAt, endAt, employeeID)
	if err != nil {
		log.Error().Err(err).Int("shift_id", id).Msg("UpdateShiftOccurrence failed")
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (s *pgStore) DeleteShiftsBySeries(seriesID string) (int, error) {
	res, err := s.run.Exec(`DELETE FROM shifts WHERE series_id = $1;`, seriesID)
	if err != nil {
		log.Error().Err(err).Str("series_id", seriesID).Msg("DeleteShiftsBySeries failed")
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// DeleteSeriesFrom removes the series occurrences dated on or after
// from; earlier occurrences stay untouched.
func (s *pgStore) DeleteSeriesFrom(seriesID string, from time.Time) (int, error) {
	res, err := s.run.Exec(`
	DELETE FROM shifts
	 WHERE series_id = $1
	   AND start_at::date >= $2::date;`, seriesID, from)
	if err != nil {
		log.Error().Err(err).Str("series_id", seriesID).Msg("DeleteSeriesFrom failed")
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *pgStore) SeriesEmployeeOnOrAfter(seriesID string, pivot time.Time) (*int, error) {
	var id int
	err := sqlx.Get(s.run, &id, `
	SELECT employee_id
	  FROM shifts
	 WHERE series_id = $1
	   AND start_at::date >= $2::date
	 ORDER BY start_at ASC
	 LIMIT 1;`, seriesID, pivot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Str("series_id", seriesID).Msg("SeriesEmployeeOnOrAfter failed")
		return nil, err
	}
	return &id, nil
}

func (s *pgStore) SeriesEmployeeBefore(seriesID string, pivot time.Time) (*int, error) {
	var id int
	err := sqlx.Get(s.run, &id, `
	SELECT employee_id
	  FROM shifts
	 WHERE series_id = $1
	   AND start_at::date < $2::date
	 ORDER BY start_at DESC
	 LIMIT 1;`, seriesID, pivot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Str("series_id", seriesID).Msg("SeriesEmployeeBefore failed")
		return nil, err
	}
	return &id, nil
}

// InSeriesTx wraps fn in a transaction holding a per-series advisory
// lock, so concurrent replacements of the same series serialize while
// other series proceed unhindered.
func (s *pgStore) InSeriesTx(seriesID string, fn func(schedule.Store) error) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`SELECT pg_advisory_xact_lock(hashtext($1));`, seriesID); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := fn(&pgStore{db: s.db, run: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *pgStore) ListShifts() ([]model.ShiftWithEmployee, error) {
	var out []model.ShiftWithEmployee
	err := sqlx.Select(s.run, &out, `
	SELECT shifts.id, shifts.employee_id, shifts.start_at, shifts.end_at,
	       shifts.series_id, shifts.created_at, employees.name AS employee_name
	  FROM shifts
	  JOIN employees ON shifts.employee_id = employees.id
	 ORDER BY shifts.start_at;`)
	if err != nil {
		log.Error().Err(err).Msg("ListShifts failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) ListShiftsBetween(start, end time.Time) ([]model.ShiftWithEmployee, error) {
	var out []model.ShiftWithEmployee
	err := sqlx.Select(s.run, &out, `
	SELECT shifts.id, shifts.employee_id, shifts.start_at, shifts.end_at,
	       shifts.series_id, shifts.created_at, employees.name AS employee_name
	  FROM shifts
	  JOIN employees ON shifts.employee_id = employees.id
	 WHERE shifts.start_at::date BETWEEN $1::date AND $2::date
	 ORDER BY shifts.start_at;`, start, end)
	if err != nil {
		log.Error().Err(err).Msg("ListShiftsBetween failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) DeleteShift(id int) (bool, error) {
	res, err := s.run.Exec(`DELETE FROM shifts WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("shift_id", id).Msg("DeleteShift failed")
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}
