package fulfillment

import (
	"errors"
	"fmt"
)

// ErrUnknownIntent is returned for intent names outside the handled set.
var ErrUnknownIntent = errors.New("unknown intent")

// Intent identifies a request category recognized by the dialog platform.
type Intent int

const (
	IntentWelcome Intent = iota + 1
	IntentQuit
	IntentHours
	IntentClassList
	IntentNoInput
	IntentFallback
	IntentSetupUpdates
	IntentConfirmUpdates
)

// Names as configured on the dialog agent.
var intentNames = map[Intent]string{
	IntentWelcome:        "Welcome",
	IntentQuit:           "Quit",
	IntentHours:          "Hours",
	IntentClassList:      "Class List",
	IntentNoInput:        "No Input",
	IntentFallback:       "Fallback",
	IntentSetupUpdates:   "Setup Updates",
	IntentConfirmUpdates: "Confirm Updates",
}

func (i Intent) String() string {
	if n, ok := intentNames[i]; ok {
		return n
	}
	return fmt.Sprintf("Intent(%d)", int(i))
}

// ParseIntent maps an agent intent name to an Intent.
func ParseIntent(name string) (Intent, error) {
	for i, n := range intentNames {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownIntent, name)
}
