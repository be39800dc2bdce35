package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteHoursCSV renders the hours report as a two-column CSV download.
func WriteHoursCSV(w io.Writer, rows []EmployeeHours) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Employee", "Hours"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{r.Name, strconv.FormatFloat(r.Hours, 'f', -1, 64)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
