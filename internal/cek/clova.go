package cek

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

// SignatureHeader carries the platform signature of the request body.
const SignatureHeader = "SignatureCEK"

var (
	// ErrMalformedRequest is returned when the body is not a CEK envelope.
	ErrMalformedRequest = errors.New("malformed CEK request")
	// ErrMissingSignature is returned when the request has no SignatureCEK header.
	ErrMissingSignature = errors.New("missing CEK signature")
	// ErrApplicationMismatch is returned when the request targets another extension.
	ErrApplicationMismatch = errors.New("application id mismatch")
)

// Dispatcher answers a parsed and validated request.
// A nil response is sent back as an empty acknowledgement.
type Dispatcher interface {
	Dispatch(ctx context.Context, req *Request) *Response
}

// Clova validates incoming CEK requests and routes them to a Dispatcher.
type Clova struct {
	applicationID string     // Expected application id
	debugMode     bool       // Skips request verification, development only
	builder       Builder    // Used for acknowledgements
	dispatcher    Dispatcher // Skill logic
}

// NewClova creates a Clova for applicationID answering in lang.
// In debug mode the application id and signature checks are skipped.
func NewClova(applicationID, lang string, debugMode bool, dispatcher Dispatcher) *Clova {
	if debugMode {
		logrus.Warn("CEK debug mode is on, request verification is disabled")
	}
	return &Clova{
		applicationID: applicationID,
		debugMode:     debugMode,
		builder:       NewBuilder(lang),
		dispatcher:    dispatcher,
	}
}

// Route parses body, verifies it against header and dispatches it.
// Arguments:
//   - body: raw request body.
//   - header: request headers.
//
// Returns the response envelope or an error wrapping one of the package errors.
func (c *Clova) Route(ctx context.Context, body []byte, header http.Header) (*Response, error) {
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	if req.Request.Type == "" {
		return nil, fmt.Errorf("%w: request type is empty", ErrMalformedRequest)
	}

	if !c.debugMode {
		if err := c.verify(&req, header); err != nil {
			return nil, err
		}
	}

	logrus.WithFields(logrus.Fields{
		"type":    req.Request.Type,
		"intent":  req.IntentName(),
		"session": req.Session.SessionID,
	}).Debug("CEK request accepted")

	res := c.dispatcher.Dispatch(ctx, &req)
	if res == nil {
		res = c.builder.Empty()
	}
	if res.SessionAttributes == nil {
		res.SessionAttributes = req.Attributes()
	}
	return res, nil
}

func (c *Clova) verify(req *Request, header http.Header) error {
	if header.Get(SignatureHeader) == "" {
		return ErrMissingSignature
	}
	if got := req.Context.System.Application.ApplicationID; got != c.applicationID {
		return fmt.Errorf("%w: got %q", ErrApplicationMismatch, got)
	}
	return nil
}
