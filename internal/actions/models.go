package actions

import "encoding/json"

// --- Incoming fulfillment request ---
// Reference: https://cloud.google.com/dialogflow/es/docs/fulfillment-webhook#webhook_request
// The originalDetectIntentRequest payload follows the Actions on Google conversation webhook format.

type WebhookRequest struct {
	ResponseID                  string          `json:"responseId"`
	Session                     string          `json:"session"`
	QueryResult                 QueryResult     `json:"queryResult"`
	OriginalDetectIntentRequest OriginalRequest `json:"originalDetectIntentRequest"`
}

type QueryResult struct {
	QueryText      string         `json:"queryText"`
	Parameters     map[string]any `json:"parameters"`
	Intent         IntentInfo     `json:"intent"`
	OutputContexts []Context      `json:"outputContexts"`
	LanguageCode   string         `json:"languageCode"`
}

type IntentInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type Context struct {
	Name          string         `json:"name"`
	LifespanCount int            `json:"lifespanCount,omitempty"`
	Parameters    map[string]any `json:"parameters,omitempty"`
}

type OriginalRequest struct {
	Source  string     `json:"source"`
	Version string     `json:"version"`
	Payload AppRequest `json:"payload"`
}

type AppRequest struct {
	User         User         `json:"user"`
	Conversation Conversation `json:"conversation"`
	Inputs       []Input      `json:"inputs"`
	Surface      Surface      `json:"surface"`
	IsInSandbox  bool         `json:"isInSandbox"`
}

type User struct {
	UserID string `json:"userId"`
	Locale string `json:"locale"`
}

type Conversation struct {
	ConversationID string `json:"conversationId"`
	Type           string `json:"type"`
}

type Input struct {
	Intent    string     `json:"intent"`
	Arguments []Argument `json:"arguments"`
}

// Argument is a typed context argument. IntValue is an int64, which proto3
// JSON renders as a string; json.Number accepts both forms.
type Argument struct {
	Name      string          `json:"name"`
	TextValue string          `json:"textValue,omitempty"`
	BoolValue bool            `json:"boolValue,omitempty"`
	IntValue  json.Number     `json:"intValue,omitempty"`
	Extension json.RawMessage `json:"extension,omitempty"`
}

type Surface struct {
	Capabilities []Capability `json:"capabilities"`
}

type Capability struct {
	Name string `json:"name"`
}

// --- Outgoing fulfillment response ---
// Reference: https://cloud.google.com/dialogflow/es/docs/fulfillment-webhook#webhook_response

type WebhookResponse struct {
	FulfillmentText string           `json:"fulfillmentText,omitempty"`
	Payload         *ResponsePayload `json:"payload,omitempty"`
	OutputContexts  []Context        `json:"outputContexts,omitempty"`
}

type ResponsePayload struct {
	Google GooglePayload `json:"google"`
}

type GooglePayload struct {
	ExpectUserResponse bool          `json:"expectUserResponse"`
	RichResponse       *RichResponse `json:"richResponse,omitempty"`
	SystemIntent       *SystemIntent `json:"systemIntent,omitempty"`
}

type RichResponse struct {
	Items       []Item           `json:"items"`
	Suggestions []SuggestionChip `json:"suggestions,omitempty"`
}

type Item struct {
	SimpleResponse *SimpleResponse `json:"simpleResponse,omitempty"`
}

type SimpleResponse struct {
	TextToSpeech string `json:"textToSpeech"`
}

type SuggestionChip struct {
	Title string `json:"title"`
}

type SystemIntent struct {
	Intent string         `json:"intent"`
	Data   map[string]any `json:"data"`
}
