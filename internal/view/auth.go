package view

import (
	"io"

	"github.com/a-h/templ"
)

// LoginPage renders the login form, optionally with an error message.
func LoginPage(errMsg string) templ.Component {
	return layout("Log in", "", func(w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Log in</h1>`); err != nil {
			return err
		}
		if err := errorBanner(w, errMsg); err != nil {
			return err
		}
		_, err := io.WriteString(w,
			`<form method="post" action="/login">`+
				`<label>Username <input type="text" name="username" required></label>`+
				`<label>Password <input type="password" name="password" required></label>`+
				`<button type="submit">Log in</button>`+
				`</form>`+
				`<p>No account? <a href="/register">Register</a></p>`)
		return err
	})
}

// RegisterPage renders the registration form, optionally with an error message.
func RegisterPage(errMsg string) templ.Component {
	return layout("Register", "", func(w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Register</h1>`); err != nil {
			return err
		}
		if err := errorBanner(w, errMsg); err != nil {
			return err
		}
		_, err := io.WriteString(w,
			`<form method="post" action="/register">`+
				`<label>Username <input type="text" name="username" required></label>`+
				`<label>Display name <input type="text" name="display_name"></label>`+
				`<label>Password <input type="password" name="password" required></label>`+
				`<button type="submit">Register</button>`+
				`</form>`+
				`<p>Already registered? <a href="/login">Log in</a></p>`)
		return err
	})
}
