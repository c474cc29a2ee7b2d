package fulfillment

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actiongym/gymbot/internal/schedule"
)

// 2024-03-06 is a Wednesday.
var wednesday = time.Date(2024, time.March, 6, 9, 30, 0, 0, time.UTC)

func testRouter() *Router {
	s := schedule.New(map[schedule.Day][]schedule.ClassEntry{
		schedule.Monday: {
			{Name: "Spin", StartTime: "6am"},
			{Name: "Zumba", StartTime: "6pm"},
		},
		schedule.Wednesday: {
			{Name: "Spin", StartTime: "6am"},
			{Name: "Cardio Kickboxing", StartTime: "12pm"},
			{Name: "Spin", StartTime: "6am"},
		},
	})
	return NewRouter(s,
		WithClock(func() time.Time { return wednesday }),
		WithLocation(time.UTC),
	)
}

func turn(t *testing.T, r *Router, sess *Session, req Request) Reply {
	t.Helper()
	reply, err := r.Dispatch(sess, req)
	require.NoError(t, err)
	return reply
}

func TestWelcome(t *testing.T) {
	r := testRouter()

	reply := turn(t, r, &Session{}, Request{Intent: IntentWelcome, Screen: true})
	assert.Equal(t, OutcomeAsk, reply.Outcome)
	assert.Equal(t, []string{msgWelcome}, reply.Messages)
	assert.Equal(t, []Suggestion{SuggestHours, SuggestClasses}, reply.Suggestions)

	reply = turn(t, r, &Session{}, Request{Intent: IntentWelcome})
	assert.Empty(t, reply.Suggestions)
}

func TestQuit(t *testing.T) {
	reply := turn(t, testRouter(), &Session{}, Request{Intent: IntentQuit, Screen: true})
	assert.True(t, reply.Terminal())
	assert.Equal(t, []string{"Great chatting with you!"}, reply.Messages)
	assert.Empty(t, reply.Suggestions)
}

func TestHours(t *testing.T) {
	reply := turn(t, testRouter(), &Session{}, Request{Intent: IntentHours, Screen: true})
	assert.False(t, reply.Terminal())
	assert.Contains(t, reply.Messages[0], "5am - 10pm")
	assert.Equal(t, []Suggestion{SuggestClasses}, reply.Suggestions)
}

func TestClassListDefaultsToToday(t *testing.T) {
	reply := turn(t, testRouter(), &Session{}, Request{Intent: IntentClassList})

	require.Len(t, reply.Messages, 1)
	assert.Equal(t,
		"On Wednesday we offer the following classes: Spin at 6am, Cardio Kickboxing at 12pm. "+msgClassesOptIn,
		reply.Messages[0])
}

func TestClassListTodayUsesLocation(t *testing.T) {
	// 01:00 UTC on Thursday is still Wednesday evening in New York.
	loc := time.FixedZone("EST", -5*60*60)
	thursday := time.Date(2024, time.March, 7, 1, 0, 0, 0, time.UTC)

	r := NewRouter(testRouter().schedule,
		WithClock(func() time.Time { return thursday }),
		WithLocation(loc),
	)
	reply := turn(t, r, &Session{}, Request{Intent: IntentClassList})
	assert.Contains(t, reply.Messages[0], "On Wednesday")
}

func TestClassListExplicitDay(t *testing.T) {
	reply := turn(t, testRouter(), &Session{}, Request{
		Intent: IntentClassList,
		Params: map[string]string{ParamDay: "monday"},
		Screen: true,
	})
	assert.Contains(t, reply.Messages[0], "On Monday we offer the following classes: Spin at 6am, Zumba at 6pm. ")
	assert.Equal(t, OutcomeAsk, reply.Outcome)
	assert.Equal(t, []Suggestion{SuggestDaily, SuggestHours}, reply.Suggestions)
}

func TestClassListFromDailyUpdateCloses(t *testing.T) {
	reply := turn(t, testRouter(), &Session{}, Request{
		Intent: IntentClassList,
		Args:   Arguments{Updates: true, RepromptCount: NoRepromptCount},
		Screen: true,
	})
	assert.True(t, reply.Terminal())
	assert.Empty(t, reply.Suggestions)
	assert.Contains(t, reply.Messages[0], msgClassesPushed)
	assert.NotContains(t, reply.Messages[0], "daily reminders")
}

func TestClassListUnknownDay(t *testing.T) {
	_, err := testRouter().Dispatch(&Session{}, Request{
		Intent: IntentClassList,
		Params: map[string]string{ParamDay: "Caturday"},
	})
	var nf *schedule.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestNoInput(t *testing.T) {
	cases := []struct {
		name    string
		args    Arguments
		outcome Outcome
		msg     string
	}{
		{"first", Arguments{RepromptCount: 0}, OutcomeAsk, msgNoInputFirst},
		{"second", Arguments{RepromptCount: 1}, OutcomeAsk, msgNoInputSecond},
		{"final", Arguments{RepromptCount: 2, FinalReprompt: true}, OutcomeClose, msgNoInputFinal},
		{"final wins over counter", Arguments{RepromptCount: 0, FinalReprompt: true}, OutcomeClose, msgNoInputFinal},
		{"third without final", Arguments{RepromptCount: 2}, OutcomeNoOp, ""},
		{"no counter", Arguments{RepromptCount: NoRepromptCount}, OutcomeNoOp, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reply := turn(t, testRouter(), &Session{}, Request{Intent: IntentNoInput, Args: tc.args})
			assert.Equal(t, tc.outcome, reply.Outcome)
			if tc.msg == "" {
				assert.Empty(t, reply.Messages)
				return
			}
			assert.Equal(t, []string{tc.msg}, reply.Messages)
		})
	}
}

func TestFallbackEscalates(t *testing.T) {
	r := testRouter()
	sess := &Session{}

	first := turn(t, r, sess, Request{Intent: IntentFallback})
	second := turn(t, r, sess, Request{Intent: IntentFallback})
	third := turn(t, r, sess, Request{Intent: IntentFallback})

	assert.Equal(t, []string{msgFallbackFirst}, first.Messages)
	assert.False(t, first.Terminal())
	assert.Equal(t, []string{msgFallbackSecond}, second.Messages)
	assert.False(t, second.Terminal())
	assert.Equal(t, []string{msgFallbackFinal}, third.Messages)
	assert.True(t, third.Terminal())
	assert.Equal(t, 3, sess.FallbackCount)
}

func TestFallbackResetByOtherIntent(t *testing.T) {
	r := testRouter()
	sess := &Session{}

	turn(t, r, sess, Request{Intent: IntentFallback})
	turn(t, r, sess, Request{Intent: IntentFallback})
	require.Equal(t, 2, sess.FallbackCount)

	turn(t, r, sess, Request{Intent: IntentWelcome})
	assert.Equal(t, 0, sess.FallbackCount)

	reply := turn(t, r, sess, Request{Intent: IntentFallback})
	assert.Equal(t, []string{msgFallbackFirst}, reply.Messages)
	assert.Equal(t, 1, sess.FallbackCount)
}

func TestSetupUpdates(t *testing.T) {
	reply := turn(t, testRouter(), &Session{}, Request{Intent: IntentSetupUpdates, Screen: true})
	assert.Equal(t, OutcomeAsk, reply.Outcome)
	require.NotNil(t, reply.RegisterUpdate)
	assert.Equal(t, UpdateRegistrationRequest{TargetIntent: IntentClassList, Frequency: FrequencyDaily}, *reply.RegisterUpdate)
}

func TestConfirmUpdates(t *testing.T) {
	r := testRouter()

	ok := turn(t, r, &Session{}, Request{
		Intent: IntentConfirmUpdates,
		Args:   Arguments{Registered: &RegisterResult{Status: "OK"}},
		Screen: true,
	})
	assert.Equal(t, []string{msgUpdatesConfirmed}, ok.Messages)
	assert.Equal(t, []Suggestion{SuggestHours, SuggestClasses}, ok.Suggestions)

	for _, res := range []*RegisterResult{nil, {Status: "CANCELLED"}, {}} {
		declined := turn(t, r, &Session{}, Request{Intent: IntentConfirmUpdates, Args: Arguments{Registered: res}})
		assert.Equal(t, []string{msgUpdatesDeclined}, declined.Messages)
		assert.Equal(t, OutcomeAsk, declined.Outcome)
	}
}

func TestDispatchUnknownIntent(t *testing.T) {
	_, err := testRouter().Dispatch(&Session{}, Request{Intent: Intent(42)})
	assert.True(t, errors.Is(err, ErrUnknownIntent))
}

func TestParseIntent(t *testing.T) {
	for i, name := range intentNames {
		got, err := ParseIntent(name)
		require.NoError(t, err)
		assert.Equal(t, i, got)
		assert.Equal(t, name, i.String())
	}

	_, err := ParseIntent("Order Pizza")
	assert.ErrorIs(t, err, ErrUnknownIntent)
}

func TestNormalize(t *testing.T) {
	sess := &Session{FallbackCount: 2}
	Normalize(sess, IntentFallback)
	assert.Equal(t, 2, sess.FallbackCount)

	Normalize(sess, IntentHours)
	assert.Equal(t, 0, sess.FallbackCount)

	sess.FallbackCount = -3
	Normalize(sess, IntentFallback)
	assert.Equal(t, 0, sess.FallbackCount)
}
