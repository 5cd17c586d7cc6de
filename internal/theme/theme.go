// Package theme resolves the storefront colour scheme.
package theme

import "strings"

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
	Auto  Theme = "auto"
)

// Parse accepts light, dark or auto in any case.
func Parse(s string) (Theme, bool) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case Light, Dark, Auto:
		return t, true
	default:
		return "", false
	}
}

// State is the chosen theme plus what it resolves to. SystemDark remembers
// the last reported OS preference so that auto can be re-resolved.
type State struct {
	Theme      Theme `json:"theme"`
	IsDark     bool  `json:"isDark"`
	SystemDark bool  `json:"systemDark"`
}

// Initial is the state of a new session: light until the visitor chooses.
func Initial() State {
	return State{Theme: Light}
}

type Action interface {
	isAction()
}

type Set struct {
	Theme      Theme
	SystemDark bool
}

type Toggle struct{}

type SystemPreference struct {
	Dark bool
}

func (Set) isAction()              {}
func (Toggle) isAction()           {}
func (SystemPreference) isAction() {}

func resolve(t Theme, systemDark bool) bool {
	return t == Dark || (t == Auto && systemDark)
}

func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case Set:
		if _, ok := Parse(string(act.Theme)); !ok {
			return s
		}
		return State{Theme: act.Theme, SystemDark: act.SystemDark, IsDark: resolve(act.Theme, act.SystemDark)}
	case Toggle:
		next := Light
		if s.Theme == Light {
			next = Dark
		}
		return State{Theme: next, SystemDark: s.SystemDark, IsDark: resolve(next, s.SystemDark)}
	case SystemPreference:
		return State{Theme: s.Theme, SystemDark: act.Dark, IsDark: resolve(s.Theme, act.Dark)}
	default:
		return s
	}
}
