package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DenisKhanov/ClovaHome/internal/cek"
	"github.com/DenisKhanov/ClovaHome/internal/server/repository"
	"github.com/DenisKhanov/ClovaHome/internal/server/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClova struct {
	res    *cek.Response
	err    error
	body   []byte
	header http.Header
}

func (s *stubClova) Route(_ context.Context, body []byte, header http.Header) (*cek.Response, error) {
	s.body = body
	s.header = header
	return s.res, s.err
}

type outcomes []string

func (o *outcomes) ObserveRequest(outcome string, _ time.Duration) {
	*o = append(*o, outcome)
}

func TestHandler_ServeCEK(t *testing.T) {
	clova := &stubClova{res: cek.NewBuilder("en").Speak(cek.Text("Yes, yes it is."))}
	var seen outcomes
	h := NewHandler(clova, &seen)

	req := httptest.NewRequest(http.MethodPost, "/app", strings.NewReader(`{"raw":true}`))
	req.Header.Set(cek.SignatureHeader, "sig")
	rec := httptest.NewRecorder()
	h.ServeCEK(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `{"raw":true}`, string(clova.body))
	assert.Equal(t, "sig", clova.header.Get(cek.SignatureHeader))
	assert.Equal(t, outcomes{OutcomeOK}, seen)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	speech := got["response"].(map[string]any)["outputSpeech"].(map[string]any)
	assert.Equal(t, "Yes, yes it is.", speech["values"].(map[string]any)["value"])
}

func TestHandler_ServeCEKErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		outcome string
	}{
		{"malformed", fmt.Errorf("%w: eof", cek.ErrMalformedRequest), http.StatusBadRequest, OutcomeMalformed},
		{"no signature", cek.ErrMissingSignature, http.StatusForbidden, OutcomeRejected},
		{"wrong application", fmt.Errorf("%w: got %q", cek.ErrApplicationMismatch, "x"), http.StatusForbidden, OutcomeRejected},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, OutcomeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen outcomes
			h := NewHandler(&stubClova{err: tt.err}, &seen)

			rec := httptest.NewRecorder()
			h.ServeCEK(rec, httptest.NewRequest(http.MethodPost, "/app", strings.NewReader("{}")))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, ContentType, rec.Header().Get("Content-Type"))
			assert.Equal(t, outcomes{tt.outcome}, seen)
		})
	}
}

func TestHandler_ServeCEKBodyTooLarge(t *testing.T) {
	clova := &stubClova{}
	h := NewHandler(clova, nil)

	big := bytes.Repeat([]byte("a"), maxBodySize+1)
	rec := httptest.NewRecorder()
	h.ServeCEK(rec, httptest.NewRequest(http.MethodPost, "/app", bytes.NewReader(big)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, clova.body)
}

func TestHandler_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&stubClova{}, nil).Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"alive"}`, rec.Body.String())
}

func cekBody(userID, requestType, intent string, slots map[string]string, attributes map[string]any) string {
	req := cek.Request{
		Version: "1.0",
		Session: cek.Session{SessionID: "s1", SessionAttributes: attributes, User: cek.User{UserID: userID}},
		Context: cek.Context{System: cek.System{
			Application: cek.Application{ApplicationID: "my.application.id"},
			User:        cek.User{UserID: userID},
		}},
		Request: cek.Body{Type: cek.RequestType(requestType), Intent: cek.Intent{Name: intent, Slots: map[string]cek.Slot{}}},
	}
	for name, value := range slots {
		req.Request.Intent.Slots[name] = cek.Slot{Name: name, Value: value}
	}
	data, _ := json.Marshal(req)
	return string(data)
}

func TestHandler_EndToEnd(t *testing.T) {
	repo, err := repository.NewRepository(8)
	require.NoError(t, err)
	svc := service.NewService(repo, "en", "", nil)
	h := NewHandler(cek.NewClova("my.application.id", "en", false, svc), nil)

	post := func(body string) map[string]any {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/app", strings.NewReader(body))
		req.Header.Set(cek.SignatureHeader, "sig")
		rec := httptest.NewRecorder()
		h.ServeCEK(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		return got
	}
	verbose := func(got map[string]any) string {
		speech := got["response"].(map[string]any)["outputSpeech"].(map[string]any)
		return speech["verbose"].(map[string]any)["values"].(map[string]any)["value"].(string)
	}
	simple := func(got map[string]any) string {
		speech := got["response"].(map[string]any)["outputSpeech"].(map[string]any)
		return speech["values"].(map[string]any)["value"].(string)
	}

	got := post(cekBody("u1", "IntentRequest", "TurnOn", map[string]string{"AirConditioner": "aircon"}, nil))
	assert.Equal(t, "AirConditioner turned on.", simple(got))

	got = post(cekBody("u1", "IntentRequest", "HomeStatus", nil, nil))
	assert.Contains(t, verbose(got), "Air conditioner is turned on.")
	assert.Contains(t, verbose(got), "about 20 degrees")

	got = post(cekBody("u1", "IntentRequest", "Clova.GuideIntent", nil, nil))
	attrs := got["sessionAttributes"].(map[string]any)
	assert.Equal(t, true, attrs[service.AttrHasExplainedService])

	got = post(cekBody("u1", "IntentRequest", "Clova.GuideIntent", nil, attrs))
	assert.Equal(t, "I just explained you what i can do!", simple(got))

	got = post(cekBody("u1", "SessionEndedRequest", "", nil, map[string]any{"keep": "me"}))
	assert.Equal(t, true, got["response"].(map[string]any)["shouldEndSession"])
	assert.Equal(t, map[string]any{"keep": "me"}, got["sessionAttributes"])
}
