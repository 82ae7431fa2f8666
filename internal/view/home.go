package view

import (
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// HomePage renders the landing page.
func HomePage(displayName string) templ.Component {
	return layout("Home", displayName, func(w io.Writer) error {
		if _, err := io.WriteString(w,
			`<h1>Crag Log</h1><p>Track your climbing sessions, climbs, and progress over time.</p>`); err != nil {
			return err
		}
		if displayName == "" {
			_, err := io.WriteString(w,
				`<p><a href="/login">Log in</a> or <a href="/register">register</a> to start a session.</p>`)
			return err
		}
		_, err := fmt.Fprintf(w,
			`<p>Welcome back, %s.</p><p><a href="/session">Go to your session</a></p>`,
			templ.EscapeString(displayName))
		return err
	})
}
