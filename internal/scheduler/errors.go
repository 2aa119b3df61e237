package scheduler

import (
	"errors"
	"fmt"

	"github.com/veildrift/go-incursion/internal/world"
)

// ErrNoCharactersAvailable is returned by Initialize when the world holds no
// fully-constructed character.
var ErrNoCharactersAvailable = errors.New("no characters available for turn scheduling")

// NotReadyError is returned by ApplyActionCost when the character's timer
// has not reached zero. The pipeline treats this as a consistency failure.
type NotReadyError struct {
	Char  world.EntityID
	Timer int
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("character %d is not ready (timer %d)", e.Char, e.Timer)
}

// SafetyLimitError reports that the tick-advancement ceiling was reached
// with no character ready. It is recoverable; the caller decides whether to
// abort the session or keep trying.
type SafetyLimitError struct {
	Ticks int
}

func (e *SafetyLimitError) Error() string {
	return fmt.Sprintf("advanced %d ticks without any character becoming ready", e.Ticks)
}

// InvalidCharacterError reports a partially-constructed character rejected
// at initialization time.
type InvalidCharacterError struct {
	Char    world.EntityID
	Missing []world.Kind
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("character %d is missing components %v", e.Char, e.Missing)
}
