package fulfillment

import (
	"fmt"
	"time"

	"github.com/actiongym/gymbot/internal/schedule"
)

// ParamDay is the Class List slot holding the requested day name.
const ParamDay = "day"

// Router dispatches a turn to the handler for its intent.
type Router struct {
	schedule *schedule.Schedule
	now      func() time.Time
	loc      *time.Location
}

type Option func(*Router)

// WithClock replaces time.Now, used to pick today's classes.
func WithClock(now func() time.Time) Option {
	return func(r *Router) { r.now = now }
}

// WithLocation sets the zone in which "today" is computed.
func WithLocation(loc *time.Location) Option {
	return func(r *Router) {
		if loc != nil {
			r.loc = loc
		}
	}
}

func NewRouter(s *schedule.Schedule, opts ...Option) *Router {
	r := &Router{schedule: s, now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dispatch normalizes the session for the incoming intent, then runs its
// handler. sess is mutated in place and must be handed back to the platform.
func (r *Router) Dispatch(sess *Session, req Request) (Reply, error) {
	Normalize(sess, req.Intent)

	switch req.Intent {
	case IntentWelcome:
		return r.welcome(req), nil
	case IntentQuit:
		return closing(msgQuit), nil
	case IntentHours:
		return ask(msgHours).suggest(req.Screen, SuggestClasses), nil
	case IntentClassList:
		return r.classList(req)
	case IntentNoInput:
		return r.noInput(req), nil
	case IntentFallback:
		return r.fallback(sess), nil
	case IntentSetupUpdates:
		return r.setupUpdates(), nil
	case IntentConfirmUpdates:
		return r.confirmUpdates(req), nil
	default:
		return Reply{}, fmt.Errorf("%w: %s", ErrUnknownIntent, req.Intent)
	}
}

func (r *Router) welcome(req Request) Reply {
	return ask(msgWelcome).suggest(req.Screen, SuggestHours, SuggestClasses)
}

func (r *Router) classList(req Request) (Reply, error) {
	day := schedule.DayOf(r.now().In(r.loc))
	if name := req.Params[ParamDay]; name != "" {
		d, err := schedule.ParseDay(name)
		if err != nil {
			return Reply{}, fmt.Errorf("class list: %w", err)
		}
		day = d
	}

	classes, err := r.schedule.ClassesFor(day)
	if err != nil {
		return Reply{}, fmt.Errorf("class list: %w", err)
	}

	msg := fmt.Sprintf(msgClassesFormat, day, schedule.Format(classes))
	if req.Args.Updates {
		return closing(msg + msgClassesPushed), nil
	}
	return ask(msg+msgClassesOptIn).suggest(req.Screen, SuggestDaily, SuggestHours), nil
}

// noInput gives the final reprompt precedence over the counter; any other
// combination yields OutcomeNoOp.
func (r *Router) noInput(req Request) Reply {
	switch {
	case req.Args.FinalReprompt:
		return closing(msgNoInputFinal)
	case req.Args.RepromptCount == 0:
		return ask(msgNoInputFirst)
	case req.Args.RepromptCount == 1:
		return ask(msgNoInputSecond)
	default:
		return Reply{Outcome: OutcomeNoOp}
	}
}

func (r *Router) fallback(sess *Session) Reply {
	sess.FallbackCount++
	switch sess.FallbackCount {
	case 1:
		return ask(msgFallbackFirst)
	case 2:
		return ask(msgFallbackSecond)
	default:
		return closing(msgFallbackFinal)
	}
}

// setupUpdates hands the opt-in to the platform, which prompts the user itself.
func (r *Router) setupUpdates() Reply {
	return Reply{
		Outcome: OutcomeAsk,
		RegisterUpdate: &UpdateRegistrationRequest{
			TargetIntent: IntentClassList,
			Frequency:    FrequencyDaily,
		},
	}
}

func (r *Router) confirmUpdates(req Request) Reply {
	msg := msgUpdatesDeclined
	if req.Args.Registered.OK() {
		msg = msgUpdatesConfirmed
	}
	return ask(msg).suggest(req.Screen, SuggestHours, SuggestClasses)
}
