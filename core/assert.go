package core

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Assert guards a logic invariant and returns cond
// Debug builds (-tags piedebug) panic on violation; release builds log and let the
// caller take its early-return path
func Assert(cond bool, format string, args ...any) bool {
	if cond {
		return true
	}
	msg := fmt.Sprintf(format, args...)
	if debugAssertions {
		panic("invariant violated: " + msg)
	}
	log.Warn().Str("invariant", msg).Msg("invariant violated")
	return false
}
