package db

import (
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/harborlight/carecal/internal/model"
)

func (s *pgStore) CreateTask(employeeID int, task, status string) (model.Task, error) {
	var t model.Task
	const q = `
	INSERT INTO tasks (employee_id, task, status)
	VALUES ($1, $2, $3)
	RETURNING id, employee_id, task, status;`
	if err := sqlx.Get(s.run, &t, q, employeeID, task, status); err != nil {
		log.Error().Err(err).Int("employee_id", employeeID).Msg("CreateTask failed")
		return model.Task{}, err
	}
	return t, nil
}

func (s *pgStore) ListTasks() ([]model.TaskWithEmployee, error) {
	var out []model.TaskWithEmployee
	const q = `
	SELECT tasks.id, tasks.employee_id, tasks.task, tasks.status,
	       employees.name AS employee_name
	  FROM tasks
	  JOIN employees ON tasks.employee_id = employees.id
	 ORDER BY tasks.id;`
	if err := sqlx.Select(s.run, &out, q); err != nil {
		log.Error().Err(err).Msg("ListTasks failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) DeleteTask(id int) (bool, error) {
	res, err := s.run.Exec(`DELETE FROM tasks WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("task_id", id).Msg("DeleteTask failed")
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}
