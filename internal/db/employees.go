package db

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/harborlight/carecal/internal/model"
)

func (s *pgStore) CreateEmployee(name, position string) (model.Employee, error) {
	var e model.Employee
	const q = `
	INSERT INTO employees (name, position, created_at, updated_at)
	VALUES ($1, $2, now(), now())
	RETURNING id, name, position, hourly_rate, created_at, updated_at;`
	if err := sqlx.Get(s.run, &e, q, name, position); err != nil {
		log.Error().Err(err).Msg("CreateEmployee failed")
		return model.Employee{}, err
	}
	return e, nil
}

func (s *pgStore) ListEmployees() ([]model.Employee, error) {
	var out []model.Employee
	const q = `
	SELECT id, name, position, hourly_rate, created_at, updated_at
	  FROM employees
	 ORDER BY id;`
	if err := sqlx.Select(s.run, &out, q); err != nil {
		log.Error().Err(err).Msg("ListEmployees failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) GetEmployeeByID(id int) (*model.Employee, error) {
	var e model.Employee
	err := sqlx.Get(s.run, &e, `
	SELECT id, name, position, hourly_rate, created_at, updated_at
	  FROM employees
	 WHERE id = $1;`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Int("employee_id", id).Msg("GetEmployeeByID failed")
		return nil, err
	}
	return &e, nil
}

func (s *pgStore) UpdateEmployeeRate(id int, rate float64) (bool, error) {
	res, err := s.run.Exec(`
	UPDATE employees SET hourly_rate = $2, updated_at = now() WHERE id = $1;`, id, rate)
	if err != nil {
		log.Error().Err(err).Int("employee_id", id).Msg("UpdateEmployeeRate failed")
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// DeleteEmployee removes the employee and everything that references
// them. The cascade is done here, at the data-access boundary, so a
// missing database constraint can never strand orphaned rows.
func (s *pgStore) DeleteEmployee(id int) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	for _, q := range []string{
		`DELETE FROM shifts WHERE employee_id = $1;`,
		`DELETE FROM attendance WHERE employee_id = $1;`,
		`DELETE FROM tasks WHERE employee_id = $1;`,
		`DELETE FROM time_off WHERE employee_id = $1;`,
		`DELETE FROM pay_adjustments WHERE employee_id = $1;`,
		`DELETE FROM employees WHERE id = $1;`,
	} {
		if _, err := tx.Exec(q, id); err != nil {
			_ = tx.Rollback()
			log.Error().Err(err).Int("employee_id", id).Msg("DeleteEmployee failed")
			return err
		}
	}
	return tx.Commit()
}

func (s *pgStore) EmployeeExists(id int) (bool, error) {
	var found bool
	err := sqlx.Get(s.run, &found, `SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1);`, id)
	if err != nil {
		log.Error().Err(err).Int("employee_id", id).Msg("EmployeeExists failed")
		return false, err
	}
	return found, nil
}
