package view

import (
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/msomdec/crag-log/internal/domain"
	"github.com/msomdec/crag-log/internal/service"
)

// ChooseGymPage renders the initial workflow state: gym selection.
func ChooseGymPage(displayName string, gyms []domain.Gym, errMsg string) templ.Component {
	return layout("Start a Session", displayName, func(w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Climb Tracker</h1>`); err != nil {
			return err
		}
		if err := errorBanner(w, errMsg); err != nil {
			return err
		}
		if _, err := io.WriteString(w,
			`<form method="post" action="/session/start">`+
				`<label>Gym Name <select name="gym_name">`); err != nil {
			return err
		}
		for _, g := range gyms {
			if _, err := fmt.Fprintf(w, `<option value="%s">%s</option>`,
				templ.EscapeString(g.Name), templ.EscapeString(g.Name)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w,
			`</select></label><button type="submit">Start Session</button></form>`)
		return err
	})
}

// EnterClimbsPage renders the climb-entry form pre-filled with the
// workflow's draft values.
func EnterClimbsPage(displayName string, wf service.WorkflowContext, grades []string, errMsg string) templ.Component {
	return layout(wf.GymName+" Session", displayName, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>Climb Tracker - %s Session</h1>`,
			templ.EscapeString(wf.GymName)); err != nil {
			return err
		}
		if err := errorBanner(w, errMsg); err != nil {
			return err
		}
		if err := climbForm(w, wf.Draft, grades); err != nil {
			return err
		}
		_, err := io.WriteString(w,
			`<button data-on-click="@post('/session/end')">End Session</button>`)
		return err
	})
}

func climbForm(w io.Writer, draft service.DraftClimb, grades []string) error {
	if _, err := fmt.Fprintf(w,
		`<form id="climb-form" method="post" action="/session/climbs" enctype="multipart/form-data">`+
			`<label>Upload a photo of your climb (Optional) <input type="file" name="photo" accept="image/jpeg,image/png"></label>`+
			`<label>Climb name <input type="text" name="climb_name" value="%s"></label>`,
		templ.EscapeString(draft.ClimbName)); err != nil {
		return err
	}

	if err := selectField(w, "Grade", "grade", grades, draft.Grade); err != nil {
		return err
	}
	judgments := []string{
		string(domain.JudgmentSoft), string(domain.JudgmentOn), string(domain.JudgmentHard),
	}
	if err := selectField(w, "Grade Judgment", "grade_judgment", judgments, string(draft.GradeJudgment)); err != nil {
		return err
	}

	stars := make([]string, domain.MaxStarRating+1)
	for i := range stars {
		stars[i] = strconv.Itoa(i)
	}
	if _, err := fmt.Fprintf(w,
		`<label>Number of Attempts <input type="number" name="num_attempts" min="%d" max="%d" step="1" value="%d"></label>`+
			`<label>Notes <input type="text" name="notes" value="%s"></label>`,
		domain.MinAttempts, domain.MaxAttempts, draft.NumAttempts,
		templ.EscapeString(draft.Notes)); err != nil {
		return err
	}
	if err := selectField(w, "Star Rating", "star_rating", stars, strconv.Itoa(draft.StarRating)); err != nil {
		return err
	}

	sentChecked := ""
	if draft.Sent {
		sentChecked = " checked"
	}
	_, err := fmt.Fprintf(w,
		`<label>Sent <input type="checkbox" name="sent" value="true"%s></label>`+
			`<button type="submit">Submit</button></form>`, sentChecked)
	return err
}

func selectField(w io.Writer, label, name string, options []string, selected string) error {
	if _, err := fmt.Fprintf(w, `<label>%s <select name="%s">`,
		templ.EscapeString(label), templ.EscapeString(name)); err != nil {
		return err
	}
	for _, opt := range options {
		sel := ""
		if opt == selected {
			sel = " selected"
		}
		if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`,
			templ.EscapeString(opt), sel, templ.EscapeString(opt)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</select></label>`)
	return err
}

// SummaryPage renders the closed session's computed summary.
func SummaryPage(displayName string, summary *service.SessionSummary) templ.Component {
	return layout("Session Summary", displayName, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<h1>Session Summary</h1><p>Total Climbs: %d</p>`, summary.TotalClimbs); err != nil {
			return err
		}

		if summary.ModalGrade != nil {
			if _, err := fmt.Fprintf(w, `<p>Most Frequent Grade: %s (Count: %d)</p>`,
				templ.EscapeString(summary.ModalGrade.Grade), summary.ModalGrade.Count); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, `<p>Most Frequent Grade: N/A</p>`); err != nil {
				return err
			}
		}

		if summary.AverageAttempts != nil {
			if _, err := fmt.Fprintf(w, `<p>Average Attempts: %.1f</p>`, *summary.AverageAttempts); err != nil {
				return err
			}
		}

		if summary.Length != nil {
			if _, err := fmt.Fprintf(w, `<p>Session Length: %d minutes %d seconds</p>`,
				summary.Length.Minutes, summary.Length.Seconds); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, `<p>Session Length: N/A</p>`); err != nil {
				return err
			}
		}

		if len(summary.Climbs) > 0 {
			if _, err := io.WriteString(w, `<ul>`); err != nil {
				return err
			}
			for _, c := range summary.Climbs {
				stars := 0
				if c.StarRating != nil {
					stars = *c.StarRating
				}
				if _, err := fmt.Fprintf(w, `<li>%s - %s (%s, %d stars)</li>`,
					templ.EscapeString(c.ClimbName), templ.EscapeString(c.Grade),
					templ.EscapeString(string(c.GradeJudgment)), stars); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</ul>`); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w,
			`<button data-on-click="@post('/session/reset')">Go Back to Start</button>`)
		return err
	})
}
