package service

import "github.com/DenisKhanov/ClovaHome/internal/cek"

// Intent is one of the requests the skill knows how to answer.
type Intent int

const (
	IntentFallback Intent = iota // Anything the skill does not know
	IntentLaunch
	IntentHomeStatus
	IntentPlayASound
	IntentTurnOn
	IntentTurnOff
	IntentGuide
	IntentCancel
	IntentYes
	IntentNo
	IntentSessionEnded

	intentCount
)

var intentNames = [intentCount]string{
	IntentFallback:     "default",
	IntentLaunch:       "launch",
	IntentHomeStatus:   "HomeStatus",
	IntentPlayASound:   "PlayASound",
	IntentTurnOn:       "TurnOn",
	IntentTurnOff:      "TurnOff",
	IntentGuide:        "Clova.GuideIntent",
	IntentCancel:       "Clova.CancelIntent",
	IntentYes:          "Clova.YesIntent",
	IntentNo:           "Clova.NoIntent",
	IntentSessionEnded: "end",
}

// intentsByName maps CEK intent names of IntentRequests.
var intentsByName = func() map[string]Intent {
	m := make(map[string]Intent, intentCount)
	for i := IntentHomeStatus; i <= IntentNo; i++ {
		m[intentNames[i]] = i
	}
	return m
}()

// String returns the CEK name of the intent.
func (i Intent) String() string {
	if i < 0 || i >= intentCount {
		return intentNames[IntentFallback]
	}
	return intentNames[i]
}

// ParseIntent tells which intent a request asks for.
func ParseIntent(req *cek.Request) Intent {
	switch req.Request.Type {
	case cek.LaunchRequest:
		return IntentLaunch
	case cek.SessionEndedRequest:
		return IntentSessionEnded
	case cek.IntentRequest:
		if i, ok := intentsByName[req.Request.Intent.Name]; ok {
			return i
		}
	}
	return IntentFallback
}
