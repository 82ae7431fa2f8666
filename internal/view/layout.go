package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const datastarCDN = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"

// layout wraps a page body with the shared document shell and nav bar.
func layout(title, displayName string, body func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
				`<meta name="viewport" content="width=device-width, initial-scale=1">`+
				`<title>%s - Crag Log</title>`+
				`<script type="module" src="%s"></script>`+
				`<style>body{font-family:sans-serif;max-width:48rem;margin:0 auto;padding:1rem}`+
				`.nav{display:flex;justify-content:space-between;margin-bottom:1rem}`+
				`.nav-links{display:flex;gap:1rem;align-items:center}`+
				`.inline{display:inline}.error{color:#b00020}label{display:block;margin:.5rem 0}</style>`+
				`</head><body>`,
			templ.EscapeString(title), datastarCDN); err != nil {
			return err
		}
		if err := nav(w, displayName); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main class="container">`); err != nil {
			return err
		}
		if err := body(w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

func nav(w io.Writer, displayName string) error {
	if _, err := io.WriteString(w,
		`<nav class="nav"><a href="/" class="brand">Crag Log</a><div class="nav-links">`); err != nil {
		return err
	}
	if displayName == "" {
		if _, err := io.WriteString(w,
			`<a href="/login">Log in</a><a href="/register">Register</a>`); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w,
			`<a href="/session">Session</a><a href="/analytics">Analytics</a>`+
				`<span class="nav-user">%s</span>`+
				`<form method="post" action="/logout" class="inline"><button type="submit">Log out</button></form>`,
			templ.EscapeString(displayName)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</div></nav>`)
	return err
}

func errorBanner(w io.Writer, msg string) error {
	if msg == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, `<p class="error">%s</p>`, templ.EscapeString(msg))
	return err
}
