package fulfillment

// Suggestion is a quick-reply chip title.
type Suggestion string

const (
	SuggestHours   Suggestion = "Ask about hours"
	SuggestClasses Suggestion = "Learn about classes"
	SuggestDaily   Suggestion = "Send daily reminders"
)

const (
	msgWelcome = "Welcome to Action Gym, your local gym here to " +
		"support your health goals. You can ask me about our hours " +
		"or what classes we offer each day."
	msgQuit  = "Great chatting with you!"
	msgHours = "Our free weights and machines are available " +
		"from 5am - 10pm, seven days a week. Can I help you with anything else?"

	msgClassesFormat = "On %s we offer the following classes: %s. "
	msgClassesPushed = "Hope to see you soon at Action Gym!"
	msgClassesOptIn  = "Would you like me to send you daily reminders of upcoming classes, " +
		"or can I help you with anything else?"

	msgNoInputFirst  = "Sorry, I can't hear you."
	msgNoInputSecond = "I'm sorry, I still can't hear you."
	msgNoInputFinal  = "I'm sorry, I'm having trouble here. " +
		"Maybe we should try this again later."

	msgFallbackFirst  = "Sorry, what was that?"
	msgFallbackSecond = "I didn't quite get that. I can tell you our hours " +
		"or what classes we offer each day."
	msgFallbackFinal = "Sorry, I'm still having trouble. " +
		"So let's stop here for now. Bye."

	msgUpdatesConfirmed = "Gotcha, I'll send you an update everyday with the " +
		"list of classes. Can I help you with anything else?"
	msgUpdatesDeclined = "I won't send you daily reminders. Can I help you with anything else?"
)
