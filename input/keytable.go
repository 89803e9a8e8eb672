package input

import (
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// ErrUnknownAction is returned when a binding names no action
var ErrUnknownAction = errors.New("unknown action")

// ErrBadKey is returned when a binding key is neither a single rune nor a known alias
var ErrBadKey = errors.New("invalid key")

// Rune aliases for keys that can't be bare single-char config keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Esc, Ctrl+*)
	SpecialKeys map[tcell.Key]IntentType
	// Printable rune bindings
	Runes map[rune]IntentType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]IntentType{
			tcell.KeyEscape: IntentQuit,
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyCtrlQ:  IntentQuit,
			tcell.KeyEnter:  IntentStart,
		},
		Runes: map[rune]IntentType{
			'q': IntentQuit,
			'm': IntentToggleMute,
			'p': IntentTogglePause,
			'd': IntentToggleStats,
			' ': IntentStart,
			'r': IntentRestart,
		},
	}
}

// Bind points key at the named action, "none" unbinds
func (kt *KeyTable) Bind(key, action string) error {
	it, ok := ActionIntent(action)
	if !ok {
		return errors.Wrapf(ErrUnknownAction, "%q for key %q", action, key)
	}
	r, err := parseKey(key)
	if err != nil {
		return err
	}
	if it == IntentNone {
		delete(kt.Runes, r)
		return nil
	}
	kt.Runes[r] = it
	return nil
}

// Apply binds every key to action pair, stopping at the first error
func (kt *KeyTable) Apply(bindings map[string]string) error {
	for key, action := range bindings {
		if err := kt.Bind(key, action); err != nil {
			return err
		}
	}
	return nil
}

func parseKey(key string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(key)]; ok {
		return r, nil
	}
	if utf8.RuneCountInString(key) != 1 {
		return 0, errors.Wrapf(ErrBadKey, "%q", key)
	}
	r, _ := utf8.DecodeRuneInString(key)
	return r, nil
}
