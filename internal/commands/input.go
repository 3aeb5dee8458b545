package commands

import (
	"context"
	"errors"
	"strings"

	"tasktrack/internal/app"
	"tasktrack/internal/ui"
)

// optString is a string flag that remembers whether it was given, so an
// explicit empty value can be told apart from an absent flag.
type optString struct {
	value string
	set   bool
}

func (o *optString) String() string { return o.value }

func (o *optString) Set(s string) error {
	o.value = s
	o.set = true
	return nil
}

// ptr returns a pointer to the value when the flag was given, nil otherwise.
func (o *optString) ptr() *string {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

// valueOrAsk returns value, or prompts for it when empty. Exhausted input
// yields an empty answer so validation reports the missing field.
func valueOrAsk(ctx context.Context, a *app.App, value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}
	answer, err := a.Console.Ask(ctx, prompt)
	if errors.Is(err, ui.ErrNoInput) {
		return "", nil
	}
	return strings.TrimSpace(answer), err
}

// secretOrAsk is valueOrAsk for passwords: the prompt does not echo on a
// terminal and the answer is kept byte for byte.
func secretOrAsk(ctx context.Context, a *app.App, value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}
	answer, err := a.Console.AskSecret(ctx, prompt)
	if errors.Is(err, ui.ErrNoInput) {
		return "", nil
	}
	return answer, err
}
