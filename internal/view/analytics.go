package view

import (
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/msomdec/crag-log/internal/service"
)

// AnalyticsPage renders the per-week series and per-session table. The
// JSON series for external charting is served at /api/analytics/weekly.
func AnalyticsPage(displayName string, series []service.WeekPoint, stats []service.SessionStat) templ.Component {
	return layout("Analytics", displayName, func(w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Analytics</h1><h2>Weekly Totals</h2>`); err != nil {
			return err
		}

		if len(series) == 0 {
			if _, err := io.WriteString(w, `<p>No sessions yet.</p>`); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w,
				`<table><tr><th>Week</th><th>Total Minutes</th><th>Sessions</th></tr>`); err != nil {
				return err
			}
			for _, p := range series {
				if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%d</td><td>%d</td></tr>`,
					templ.EscapeString(p.Label), p.TotalMinutes, len(p.Sessions)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</table>`); err != nil {
				return err
			}
		}

		if len(stats) == 0 {
			return nil
		}
		if _, err := io.WriteString(w,
			`<h2>Sessions</h2><table><tr><th>Session</th><th>Climbs</th><th>Most Frequent Grade</th></tr>`); err != nil {
			return err
		}
		for _, st := range stats {
			modal := "N/A"
			if st.ModalGrade != nil {
				modal = *st.ModalGrade
			}
			if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%d</td><td>%s</td></tr>`,
				templ.EscapeString(st.Label), st.ClimbCount, templ.EscapeString(modal)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</table>`)
		return err
	})
}
