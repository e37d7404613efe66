package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

type CsvReporter struct {
}

var _ Reporter = (*CsvReporter)(nil)

// Write emits one row per result, or per occurrence when the report has no
// results. Nothing is written for an empty report.
func (r *CsvReporter) Write(w io.Writer, rep Report) error {
	cw := csv.NewWriter(w)
	var err error

	switch {
	case len(rep.Results) > 0:
		if err = cw.Write([]string{"Query", "ID", "Invalid"}); err != nil {
			return err
		}
		for _, res := range rep.Results {
			row := []string{res.Query, strconv.Itoa(res.ID), strconv.FormatBool(res.Invalid)}
			if err = cw.Write(row); err != nil {
				return err
			}
		}
	case len(rep.Occurrences) > 0:
		if err = cw.Write([]string{"Path", "Line", "Column", "ID", "Keyword"}); err != nil {
			return err
		}
		for _, o := range rep.Occurrences {
			row := []string{o.Path,
				strconv.Itoa(o.Line),
				strconv.Itoa(o.Column),
				strconv.Itoa(o.ID),
				o.Word,
			}
			if err = cw.Write(row); err != nil {
				return err
			}
		}
	default:
		return nil
	}

	cw.Flush()
	return cw.Error()
}
