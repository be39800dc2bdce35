package db

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/harborlight/carecal/internal/model"
)

func (s *pgStore) InsertAttendance(employeeID int, date time.Time, status string) (model.Attendance, error) {
	var a model.Attendance
	const q = `
	INSERT INTO attendance (employee_id, date, status)
	VALUES ($1, $2, $3)
	RETURNING id, employee_id, date, status;`
	if err := sqlx.Get(s.run, &a, q, employeeID, date, status); err != nil {
		log.Error().Err(err).Int("employee_id", employeeID).Msg("InsertAttendance failed")
		return model.Attendance{}, err
	}
	return a, nil
}

func (s *pgStore) ListAttendance() ([]model.AttendanceWithEmployee, error) {
	var out []model.AttendanceWithEmployee
	const q = `
	SELECT attendance.id, attendance.employee_id, attendance.date,
	       attendance.status, employees.name AS employee_name
	  FROM attendance
	  JOIN employees ON attendance.employee_id = employees.id
	 ORDER BY attendance.date DESC, attendance.id;`
	if err := sqlx.Select(s.run, &out, q); err != nil {
		log.Error().Err(err).Msg("ListAttendance failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) DeleteAttendance(id int) (bool, error) {
	res, err := s.run.Exec(`DELETE FROM attendance WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("attendance_id", id).Msg("DeleteAttendance failed")
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}
