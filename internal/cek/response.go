package cek

import (
	"encoding/json"
	"fmt"
)

// ProtocolVersion is the CEK envelope version the skill speaks.
const ProtocolVersion = "1.0"

// Speech types of the outputSpeech object.
const (
	SimpleSpeech = "SimpleSpeech"
	SpeechList   = "SpeechList"
	SpeechSet    = "SpeechSet"
)

// Speech info types.
const (
	PlainText = "PlainText"
	URLSpeech = "URL"
)

// Response is the CEK response envelope.
type Response struct {
	Version           string         `json:"version"`
	SessionAttributes map[string]any `json:"sessionAttributes"`
	Response          ResponseBody   `json:"response"`

	lang string // default language of the builder that made the response
}

// ResponseBody is the answer played back to the user.
type ResponseBody struct {
	OutputSpeech     *OutputSpeech  `json:"outputSpeech,omitempty"`
	Card             map[string]any `json:"card"`
	Directives       []any          `json:"directives"`
	ShouldEndSession bool           `json:"shouldEndSession"`
	Reprompt         *Reprompt      `json:"reprompt,omitempty"`
}

// Reprompt is spoken when the user stays silent after the answer.
type Reprompt struct {
	OutputSpeech *OutputSpeech `json:"outputSpeech"`
}

// SpeechInfo is a single piece of speech.
type SpeechInfo struct {
	Type  string `json:"type"`
	Lang  string `json:"lang"`
	Value string `json:"value"`
}

// OutputSpeech is one of SimpleSpeech, SpeechList or SpeechSet.
// SimpleSpeech uses Values[0], SpeechList uses all Values,
// SpeechSet uses Brief and Verbose.
type OutputSpeech struct {
	Type    string
	Values  []SpeechInfo
	Brief   *SpeechInfo
	Verbose *OutputSpeech
}

// MarshalJSON encodes values as an object for SimpleSpeech and as an array for SpeechList.
func (o OutputSpeech) MarshalJSON() ([]byte, error) {
	switch o.Type {
	case SimpleSpeech:
		if len(o.Values) != 1 {
			return nil, fmt.Errorf("simple speech needs exactly one value, got %d", len(o.Values))
		}
		return json.Marshal(struct {
			Type   string     `json:"type"`
			Values SpeechInfo `json:"values"`
		}{o.Type, o.Values[0]})
	case SpeechList:
		return json.Marshal(struct {
			Type   string       `json:"type"`
			Values []SpeechInfo `json:"values"`
		}{o.Type, o.Values})
	case SpeechSet:
		return json.Marshal(struct {
			Type    string        `json:"type"`
			Brief   *SpeechInfo   `json:"brief"`
			Verbose *OutputSpeech `json:"verbose"`
		}{o.Type, o.Brief, o.Verbose})
	default:
		return nil, fmt.Errorf("unknown speech type %q", o.Type)
	}
}

// WithReprompt attaches a reprompt built from msgs in the same default language as the answer.
func (r *Response) WithReprompt(msgs ...Message) *Response {
	r.Response.Reprompt = &Reprompt{OutputSpeech: speech(r.lang, msgs)}
	return r
}

// WithAttributes replaces the session attributes returned to the platform.
func (r *Response) WithAttributes(attributes map[string]any) *Response {
	r.SessionAttributes = attributes
	return r
}

// EndSession marks the session as finished.
func (r *Response) EndSession() *Response {
	r.Response.ShouldEndSession = true
	return r
}

// Text returns the first spoken value of the answer, the verbose one for a SpeechSet.
func (r *Response) Text() string {
	return firstValue(r.Response.OutputSpeech)
}

func firstValue(o *OutputSpeech) string {
	if o == nil {
		return ""
	}
	if o.Type == SpeechSet {
		return firstValue(o.Verbose)
	}
	for _, v := range o.Values {
		if v.Type == PlainText {
			return v.Value
		}
	}
	return ""
}
