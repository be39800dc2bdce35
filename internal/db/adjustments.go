package db

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/harborlight/carecal/internal/model"
)

func (s *pgStore) InsertAdjustment(employeeID int, date time.Time, amount float64, note *string) (model.PayAdjustment, error) {
	var a model.PayAdjustment
	const q = `
	INSERT INTO pay_adjustments (employee_id, date, amount, note)
	VALUES ($1, $2, $3, $4)
	RETURNING id, employee_id, date, amount, note, created_at;`
	if err := sqlx.Get(s.run, &a, q, employeeID, date, amount, note); err != nil {
		log.Error().Err(err).Int("employee_id", employeeID).Msg("InsertAdjustment failed")
		return model.PayAdjustment{}, err
	}
	return a, nil
}

func (s *pgStore) ListAdjustmentsBetween(start, end time.Time) ([]model.PayAdjustment, error) {
	var out []model.PayAdjustment
	const q = `
	SELECT id, employee_id, date, amount, note, created_at
	  FROM pay_adjustments
	 WHERE date BETWEEN $1::date AND $2::date
	 ORDER BY date, employee_id;`
	if err := sqlx.Select(s.run, &out, q, start, end); err != nil {
		log.Error().Err(err).Msg("ListAdjustmentsBetween failed")
		return nil, err
	}
	return out, nil
}
