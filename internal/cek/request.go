// Package cek implements the parts of the Clova Extensions Kit protocol the skill needs:
// request envelope parsing and validation, and response envelope building.
package cek

// RequestType is the kind of CEK request carried in the envelope.
type RequestType string

const (
	LaunchRequest       RequestType = "LaunchRequest"
	IntentRequest       RequestType = "IntentRequest"
	SessionEndedRequest RequestType = "SessionEndedRequest"
	EventRequest        RequestType = "EventRequest"
)

// Request is the CEK request envelope sent by the Clova platform.
type Request struct {
	Version string  `json:"version"` // Protocol version (e.g., "1.0")
	Session Session `json:"session"` // Conversation session
	Context Context `json:"context"` // Client context
	Request Body    `json:"request"` // Request payload
}

// Session describes the conversation the request belongs to.
type Session struct {
	New               bool           `json:"new"`               // True on the first request of a session
	SessionAttributes map[string]any `json:"sessionAttributes"` // Attributes returned by the previous response
	SessionID         string         `json:"sessionId"`         // Session identifier
	User              User           `json:"user"`              // Session owner
}

// User identifies a Clova account.
type User struct {
	UserID      string `json:"userId"`
	AccessToken string `json:"accessToken,omitempty"`
}

// Context carries the client state.
type Context struct {
	System System `json:"System"`
}

// System holds the application, device and user the request was made for.
type System struct {
	Application Application `json:"application"`
	Device      Device      `json:"device"`
	User        User        `json:"user"`
}

// Application identifies the extension the request is addressed to.
type Application struct {
	ApplicationID string `json:"applicationId"`
}

// Device identifies the client device.
type Device struct {
	DeviceID string `json:"deviceId"`
}

// Body is the request payload.
type Body struct {
	Type   RequestType `json:"type"`
	Intent Intent      `json:"intent"`
}

// Intent is the recognized user intent with its slots.
type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots"`
}

// Slot is a named parameter extracted from the utterance.
type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// UserID returns the id of the user the request was made for.
// The context user wins over the session user.
func (r *Request) UserID() string {
	if r.Context.System.User.UserID != "" {
		return r.Context.System.User.UserID
	}
	return r.Session.User.UserID
}

// IntentName returns the intent name of an IntentRequest, empty otherwise.
func (r *Request) IntentName() string {
	if r.Request.Type != IntentRequest {
		return ""
	}
	return r.Request.Intent.Name
}

// Slot reports the value of the named slot and whether the slot was sent.
func (r *Request) Slot(name string) (string, bool) {
	slot, ok := r.Request.Intent.Slots[name]
	if !ok {
		return "", false
	}
	return slot.Value, true
}

// Attributes returns the session attributes, never nil.
func (r *Request) Attributes() map[string]any {
	if r.Session.SessionAttributes == nil {
		return map[string]any{}
	}
	return r.Session.SessionAttributes
}
