package input

import (
	"fmt"
	"maps"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
	"equals":    '=',
}

// KeyTable maps keys to actions
type KeyTable struct {
	Runes map[rune]Action
	Keys  map[tcell.Key]Action
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Runes: map[rune]Action{
			'q': ActionQuit,
			'r': ActionRefresh,
			'p': ActionPause,
			'0': ActionViewDefault,
			'1': ActionViewFront,
			'2': ActionViewBack,
			'3': ActionViewRight,
			'4': ActionViewLeft,
			'5': ActionViewTop,
			'6': ActionViewBottom,
			'+': ActionZoomIn,
			'=': ActionZoomIn,
			'-': ActionZoomOut,
			'a': ActionToggleAutoRotate,
			'l': ActionToggleLabels,
			's': ActionToggleSound,
		},
		Keys: map[tcell.Key]Action{
			tcell.KeyCtrlC:  ActionQuit,
			tcell.KeyCtrlQ:  ActionQuit,
			tcell.KeyEscape: ActionClearSelection,
			tcell.KeyCtrlR:  ActionRefresh,
			tcell.KeyHome:   ActionViewDefault,
			tcell.KeyPgUp:   ActionZoomIn,
			tcell.KeyPgDn:   ActionZoomOut,
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	c := &KeyTable{
		Runes: maps.Clone(kt.Runes),
		Keys:  maps.Clone(kt.Keys),
	}
	if c.Runes == nil {
		c.Runes = make(map[rune]Action)
	}
	if c.Keys == nil {
		c.Keys = make(map[tcell.Key]Action)
	}
	return c
}

// Lookup returns the action bound to a key event
func (kt *KeyTable) Lookup(ev *tcell.EventKey) Action {
	if ev.Key() == tcell.KeyRune {
		return kt.Runes[ev.Rune()]
	}
	return kt.Keys[ev.Key()]
}

// ParseKeyOverrides resolves key name → action name bindings into a sparse KeyTable
// Keys are single characters, rune aliases, or tcell key names such as "Ctrl-R" and "PgUp"
func ParseKeyOverrides(bindings map[string]string) (*KeyTable, error) {
	kt := &KeyTable{
		Runes: make(map[rune]Action),
		Keys:  make(map[tcell.Key]Action),
	}
	for keyStr, actionName := range bindings {
		a, ok := ActionByName(actionName)
		if !ok {
			return nil, fmt.Errorf("key %q: unknown action: %q", keyStr, actionName)
		}
		if k, ok := keyByName(keyStr); ok {
			kt.Keys[k] = a
			continue
		}
		r, err := resolveRune(keyStr)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", keyStr, err)
		}
		kt.Runes[r] = a
	}
	return kt, nil
}

// resolveRune converts a TOML key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}
	return 0, fmt.Errorf("invalid key: %q (expected single character, alias, or key name)", s)
}

var specialKeys = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	return m
}()

// keyByName looks up a tcell key name, single characters are never special keys
func keyByName(s string) (tcell.Key, bool) {
	if len([]rune(s)) == 1 {
		return 0, false
	}
	k, ok := specialKeys[strings.ToLower(s)]
	return k, ok
}

// MergeKeyTable returns a new KeyTable with base values overridden by override entries
// Override entries bound to ActionNone delete the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	if override == nil {
		return result
	}
	mergeMap(result.Runes, override.Runes)
	mergeMap(result.Keys, override.Keys)
	return result
}

func mergeMap[K comparable](base, override map[K]Action) {
	for k, v := range override {
		if v == ActionNone {
			delete(base, k)
		} else {
			base[k] = v
		}
	}
}
