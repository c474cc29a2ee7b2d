package fulfillment

// Session is the per-conversation state the platform carries between turns.
type Session struct {
	FallbackCount int `json:"fallbackCount"`
}

// NoRepromptCount marks a No Input turn that carried no reprompt counter.
const NoRepromptCount = -1

// Request is one inbound turn.
type Request struct {
	Intent Intent
	// Params holds the intent's slot values, e.g. "day".
	Params map[string]string
	Args   Arguments
	// Screen reports whether the client can display suggestion chips.
	Screen bool
}

// Arguments are the platform-supplied context arguments of a turn.
type Arguments struct {
	// Updates is set when the turn was started from a daily update push.
	Updates       bool
	RepromptCount int
	FinalReprompt bool
	// Registered is the subscription outcome delivered to Confirm Updates.
	Registered *RegisterResult
}

// RegisterResult is the subscription collaborator's answer.
type RegisterResult struct {
	Status string `json:"status"`
}

const RegisterStatusOK = "OK"

func (r *RegisterResult) OK() bool {
	return r != nil && r.Status == RegisterStatusOK
}

type Frequency string

const FrequencyDaily Frequency = "DAILY"

// UpdateRegistrationRequest asks the platform to push TargetIntent on a schedule.
type UpdateRegistrationRequest struct {
	TargetIntent Intent
	Frequency    Frequency
}

// Outcome is the kind of reply a handler produced.
type Outcome int

const (
	// OutcomeAsk keeps the conversation open.
	OutcomeAsk Outcome = iota + 1
	// OutcomeClose ends the conversation.
	OutcomeClose
	// OutcomeNoOp emits nothing and leaves the turn to the platform's defaults.
	OutcomeNoOp
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAsk:
		return "ask"
	case OutcomeClose:
		return "close"
	case OutcomeNoOp:
		return "noop"
	default:
		return "unknown"
	}
}

// Reply is what a handler produces for one turn.
type Reply struct {
	Outcome     Outcome
	Messages    []string
	Suggestions []Suggestion
	// RegisterUpdate, when set, asks the platform to run the update opt-in flow.
	RegisterUpdate *UpdateRegistrationRequest
}

func (r Reply) Terminal() bool { return r.Outcome == OutcomeClose }

func ask(msg string) Reply {
	return Reply{Outcome: OutcomeAsk, Messages: []string{msg}}
}

func closing(msg string) Reply {
	return Reply{Outcome: OutcomeClose, Messages: []string{msg}}
}

// suggest attaches chips when the client has a screen, skipping repeats.
func (r Reply) suggest(screen bool, chips ...Suggestion) Reply {
	if !screen {
		return r
	}
	for _, c := range chips {
		dup := false
		for _, have := range r.Suggestions {
			if have == c {
				dup = true
				break
			}
		}
		if !dup {
			r.Suggestions = append(r.Suggestions, c)
		}
	}
	return r
}
