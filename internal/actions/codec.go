package actions

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/actiongym/gymbot/internal/fulfillment"
)

const (
	capabilityScreen = "actions.capability.SCREEN_OUTPUT"

	argUpdates        = "UPDATES"
	argRepromptCount  = "REPROMPT_COUNT"
	argFinalReprompt  = "IS_FINAL_REPROMPT"
	argRegisterUpdate = "REGISTER_UPDATE"

	intentRegisterUpdate = "actions.intent.REGISTER_UPDATE"
	registerUpdateSpec   = "type.googleapis.com/google.actions.v2.RegisterUpdateValueSpec"

	// The platform SDK keeps conversation data as a JSON string under this
	// context's "data" parameter.
	sessionContext  = "_actions_on_google"
	sessionDataKey  = "data"
	sessionLifespan = 99

	// Text the platform requires alongside a bare system intent.
	placeholderText = "PLACEHOLDER"
)

// ErrNoConversation is returned for requests carrying neither a conversation
// id nor a session path.
var ErrNoConversation = errors.New("request has no conversation id")

// Turn is a decoded webhook request.
type Turn struct {
	SessionPath    string
	ConversationID string
	UserID         string
	Request        fulfillment.Request
	Session        fulfillment.Session
}

// Turn decodes the request into the router's terms. Unknown intents are
// reported with fulfillment.ErrUnknownIntent.
func (wr *WebhookRequest) Turn() (*Turn, error) {
	intent, err := fulfillment.ParseIntent(wr.QueryResult.Intent.DisplayName)
	if err != nil {
		return nil, err
	}

	convID := wr.conversationID()
	if convID == "" {
		return nil, ErrNoConversation
	}

	sess, err := wr.session()
	if err != nil {
		return nil, err
	}

	payload := wr.OriginalDetectIntentRequest.Payload
	args, err := decodeArguments(payload.Inputs)
	if err != nil {
		return nil, err
	}

	return &Turn{
		SessionPath:    wr.Session,
		ConversationID: convID,
		UserID:         payload.User.UserID,
		Session:        sess,
		Request: fulfillment.Request{
			Intent: intent,
			Params: stringParams(wr.QueryResult.Parameters),
			Args:   args,
			Screen: payload.Surface.has(capabilityScreen),
		},
	}, nil
}

func (wr *WebhookRequest) conversationID() string {
	if id := wr.OriginalDetectIntentRequest.Payload.Conversation.ConversationID; id != "" {
		return id
	}
	if i := strings.LastIndex(wr.Session, "/"); i >= 0 && i < len(wr.Session)-1 {
		return wr.Session[i+1:]
	}
	return wr.Session
}

// session restores conversation data from the SDK context. A missing context
// is a fresh conversation.
func (wr *WebhookRequest) session() (fulfillment.Session, error) {
	var sess fulfillment.Session
	for _, c := range wr.QueryResult.OutputContexts {
		if !isSessionContext(c.Name) {
			continue
		}
		raw, ok := c.Parameters[sessionDataKey].(string)
		if !ok || raw == "" {
			return sess, nil
		}
		if err := json.Unmarshal([]byte(raw), &sess); err != nil {
			return sess, fmt.Errorf("decoding session data: %w", err)
		}
		return sess, nil
	}
	return sess, nil
}

func isSessionContext(name string) bool {
	return strings.HasSuffix(name, "/contexts/"+sessionContext) || name == sessionContext
}

func decodeArguments(inputs []Input) (fulfillment.Arguments, error) {
	args := fulfillment.Arguments{RepromptCount: fulfillment.NoRepromptCount}
	for _, in := range inputs {
		for _, a := range in.Arguments {
			switch a.Name {
			case argUpdates:
				args.Updates = a.TextValue != "" || a.BoolValue
			case argRepromptCount:
				if a.IntValue == "" {
					continue
				}
				n, err := a.IntValue.Int64()
				if err != nil {
					return args, fmt.Errorf("decoding %s: %w", argRepromptCount, err)
				}
				args.RepromptCount = int(n)
			case argFinalReprompt:
				args.FinalReprompt = a.BoolValue
			case argRegisterUpdate:
				var res fulfillment.RegisterResult
				if len(a.Extension) > 0 {
					if err := json.Unmarshal(a.Extension, &res); err != nil {
						return args, fmt.Errorf("decoding %s: %w", argRegisterUpdate, err)
					}
				}
				args.Registered = &res
			}
		}
	}
	return args, nil
}

// stringParams keeps the non-empty string slot values.
func stringParams(params map[string]any) map[string]string {
	out := make(map[string]string, len(params))
	for k, v := range params {
		if s, ok := v.(string); ok && s != "" {
			out[k] = s
		}
	}
	return out
}

func (s Surface) has(capability string) bool {
	for _, c := range s.Capabilities {
		if c.Name == capability {
			return true
		}
	}
	return false
}

// NewResponse renders a reply for the platform. The session is written back
// only while the conversation stays open.
func NewResponse(turn *Turn, reply fulfillment.Reply) (*WebhookResponse, error) {
	if reply.Outcome == fulfillment.OutcomeNoOp {
		return &WebhookResponse{}, nil
	}

	google := GooglePayload{ExpectUserResponse: !reply.Terminal()}
	rich := &RichResponse{}
	for _, m := range reply.Messages {
		rich.Items = append(rich.Items, Item{SimpleResponse: &SimpleResponse{TextToSpeech: m}})
	}
	for _, s := range reply.Suggestions {
		rich.Suggestions = append(rich.Suggestions, SuggestionChip{Title: string(s)})
	}

	if ru := reply.RegisterUpdate; ru != nil {
		google.SystemIntent = &SystemIntent{
			Intent: intentRegisterUpdate,
			Data: map[string]any{
				"@type":  registerUpdateSpec,
				"intent": ru.TargetIntent.String(),
				"triggerContext": map[string]any{
					"timeContext": map[string]any{"frequency": string(ru.Frequency)},
				},
			},
		}
		if len(rich.Items) == 0 {
			rich.Items = append(rich.Items, Item{SimpleResponse: &SimpleResponse{TextToSpeech: placeholderText}})
		}
	}
	if len(rich.Items) > 0 {
		google.RichResponse = rich
	}

	resp := &WebhookResponse{
		FulfillmentText: strings.Join(reply.Messages, " "),
		Payload:         &ResponsePayload{Google: google},
	}

	if !reply.Terminal() && turn.SessionPath != "" {
		data, err := json.Marshal(turn.Session)
		if err != nil {
			return nil, fmt.Errorf("encoding session data: %w", err)
		}
		resp.OutputContexts = []Context{{
			Name:          turn.SessionPath + "/contexts/" + sessionContext,
			LifespanCount: sessionLifespan,
			Parameters:    map[string]any{sessionDataKey: string(data)},
		}}
	}
	return resp, nil
}
