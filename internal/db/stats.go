package db

import (
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/harborlight/carecal/internal/model"
)

// GetStatistics collects the dashboard counters in one round trip.
func (s *pgStore) GetStatistics() (model.Statistics, error) {
	var st model.Statistics
	const q = `
	SELECT (SELECT count(*) FROM employees)                              AS employees,
	       (SELECT count(*) FROM tasks)                                  AS tasks,
	       (SELECT count(*) FROM shifts)                                 AS shifts,
	       (SELECT count(*) FROM attendance WHERE status = 'Present')    AS present,
	       (SELECT count(*) FROM attendance WHERE status = 'Absent')     AS absent;`
	if err := sqlx.Get(s.run, &st, q); err != nil {
		log.Error().Err(err).Msg("GetStatistics failed")
		return model.Statistics{}, err
	}
	return st, nil
}
