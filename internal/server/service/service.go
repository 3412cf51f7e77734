// Package service provides the intent handlers of the home skill.
// Each handler reads or updates the user's home state and answers in natural language.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/DenisKhanov/ClovaHome/internal/cek"
	"github.com/DenisKhanov/ClovaHome/internal/server/models"
	"github.com/sirupsen/logrus"
)

// Device slot names of TurnOn and TurnOff.
const (
	SlotLight          = "Light"
	SlotAirConditioner = "AirConditioner"
)

// AttrHasExplainedService marks a session that already heard the guide.
const AttrHasExplainedService = "HasExplainedService"

// DefaultSoundURL is played by PlayASound.
const DefaultSoundURL = "http://soundbible.com/grab.php?id=2215&type=mp3"

// The Repository defines an interface for storing and retrieving home states.
// It abstracts the underlying storage mechanism.
type Repository interface {
	// GetHomeState returns the stored state of a user's home and whether there is one.
	GetHomeState(userID string) (models.HomeState, bool)
	// SaveHomeState stores the state of a user's home.
	SaveHomeState(userID string, state models.HomeState)
}

// IntentObserver counts dispatched intents.
type IntentObserver interface {
	ObserveIntent(intent string)
}

type handlerFunc func(s *Service, ctx context.Context, req *cek.Request) *cek.Response

// handlers is the dispatch table, indexed by Intent.
var handlers = [intentCount]handlerFunc{
	IntentFallback:     (*Service).fallback,
	IntentLaunch:       (*Service).launch,
	IntentHomeStatus:   (*Service).homeStatus,
	IntentPlayASound:   (*Service).playASound,
	IntentTurnOn:       (*Service).turnOn,
	IntentTurnOff:      (*Service).turnOff,
	IntentGuide:        (*Service).guide,
	IntentCancel:       (*Service).cancel,
	IntentYes:          (*Service).yes,
	IntentNo:           (*Service).no,
	IntentSessionEnded: (*Service).sessionEnded,
}

// Service answers CEK requests for the home skill.
type Service struct {
	repository Repository     // Storage for home states.
	speech     cek.Builder    // Response builder in the default language.
	soundURL   string         // Audio played by PlayASound.
	observer   IntentObserver // Optional intent counter.
}

// NewService creates a new Service.
// Arguments:
//   - repository: storage for home states.
//   - lang: default language of the answers.
//   - soundURL: audio played by PlayASound, DefaultSoundURL when empty.
//   - observer: counts dispatched intents, may be nil.
//
// Returns a pointer to a Service.
func NewService(repository Repository, lang, soundURL string, observer IntentObserver) *Service {
	if soundURL == "" {
		soundURL = DefaultSoundURL
	}
	return &Service{
		repository: repository,
		speech:     cek.NewBuilder(lang),
		soundURL:   soundURL,
		observer:   observer,
	}
}

// Dispatch answers req with the handler of its intent.
func (s *Service) Dispatch(ctx context.Context, req *cek.Request) *cek.Response {
	intent := ParseIntent(req)
	if s.observer != nil {
		s.observer.ObserveIntent(intent.String())
	}
	logrus.WithFields(logrus.Fields{
		"intent": intent.String(),
		"userID": req.UserID(),
	}).Debug("dispatching intent")
	return handlers[intent](s, ctx, req)
}

// homeState returns the stored home of userID or a default one.
// The default is not saved, callers decide whether to keep it.
func (s *Service) homeState(userID string) (models.HomeState, bool) {
	if state, ok := s.repository.GetHomeState(userID); ok {
		return state, true
	}
	return models.DefaultHomeState(), false
}

func (s *Service) launch(_ context.Context, _ *cek.Request) *cek.Response {
	return s.speech.Speak(
		cek.Text("Welcome~~!"),
		cek.Localized("ようこそ!", "ja"),
		cek.Localized("환영!", "ko"),
		cek.Text("How can i help you?"),
	)
}

func (s *Service) homeStatus(_ context.Context, req *cek.Request) *cek.Response {
	home, _ := s.homeState(req.UserID())
	return s.speech.SpeakSet(cek.MessageSet{
		Brief:   cek.Text("Home is in good condition!"),
		Verbose: []cek.Message{cek.Text(describeHome(home))},
	})
}

func describeHome(home models.HomeState) string {
	var b strings.Builder
	if home.AirconOn {
		b.WriteString("Air conditioner is turned on. ")
	} else {
		b.WriteString("Air conditioner is turned off. ")
	}
	if home.LightOn {
		b.WriteString("Light is turned on. ")
	} else {
		b.WriteString("Light is turned off. ")
	}
	fmt.Fprintf(&b, "Current room temperature is about %d degrees. ", home.CurrentTemperature)
	fmt.Fprintf(&b, "Your refrigerator contains %s.", strings.Join(home.RefrigeratorContents, " and "))
	return b.String()
}

func (s *Service) playASound(_ context.Context, _ *cek.Request) *cek.Response {
	return s.speech.Speak(cek.Text("This is for all dogs in the home."), cek.URL(s.soundURL))
}

func (s *Service) turnOn(_ context.Context, req *cek.Request) *cek.Response {
	userID := req.UserID()
	home, _ := s.homeState(userID)

	// When both slots are sent the air conditioner is the one named in the answer.
	var device string
	if _, ok := req.Slot(SlotLight); ok {
		device = "Light"
		home.LightOn = true
	}
	if _, ok := req.Slot(SlotAirConditioner); ok {
		device = "AirConditioner"
		home.AirconOn = true
		home.CurrentTemperature = models.AirconOnTemperature
	}
	if device == "" {
		return s.speech.Speak(cek.Text("Sorry, I could not understand. What do you want to turn on?"))
	}

	s.repository.SaveHomeState(userID, home)
	text := fmt.Sprintf("%s turned on.", device)
	logrus.Info(text)
	return s.speech.Speak(cek.Text(text)).
		WithReprompt(cek.Text("Do you want to switch on something else?"))
}

func (s *Service) turnOff(_ context.Context, req *cek.Request) *cek.Response {
	userID := req.UserID()
	home, _ := s.homeState(userID)

	var device string
	if _, ok := req.Slot(SlotLight); ok {
		device = "Light"
		home.LightOn = false
	}
	if _, ok := req.Slot(SlotAirConditioner); ok {
		device = "Air Conditioner"
		home.AirconOn = false
		home.CurrentTemperature = models.DefaultTemperature
	}
	if device == "" {
		return s.speech.Speak(cek.Text("Sorry, I could not understand. What do you want to turn off?"))
	}

	s.repository.SaveHomeState(userID, home)
	text := fmt.Sprintf("%s turned off.", device)
	logrus.Info(text)
	return s.speech.Speak(cek.Text(text))
}

func (s *Service) guide(_ context.Context, req *cek.Request) *cek.Response {
	message := "I can switch things on and off. " +
		"I can give you a status of your home and " +
		"I can play dog music to entertain your pets!"
	if _, ok := req.Attributes()[AttrHasExplainedService]; ok {
		message = "I just explained you what i can do!"
	}
	// Sent back by the platform with the next request of the session
	return s.speech.Speak(cek.Text(message)).
		WithAttributes(map[string]any{AttrHasExplainedService: true})
}

func (s *Service) cancel(_ context.Context, _ *cek.Request) *cek.Response {
	logrus.Info("User canceled the Service.")
	return s.speech.Empty().EndSession()
}

func (s *Service) yes(_ context.Context, _ *cek.Request) *cek.Response {
	return s.speech.Speak(cek.Text("Yes, yes it is."))
}

func (s *Service) no(_ context.Context, _ *cek.Request) *cek.Response {
	return s.speech.Speak(cek.Text("No... Ok I understand."))
}

func (s *Service) sessionEnded(_ context.Context, _ *cek.Request) *cek.Response {
	logrus.Info("Session ended.")
	return s.speech.Empty().EndSession()
}

func (s *Service) fallback(_ context.Context, _ *cek.Request) *cek.Response {
	return s.speech.Speak(cek.Text("Sorry I don't understand! Could you please repeat?"))
}
