// Package respond writes the JSON envelopes shared by every API endpoint.
// Every body mirrors the HTTP status in a `statusCode` field; errors go through Responder.Error
// so that status mapping, logging, and the verbose-errors policy live in one place.
package respond

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/user/unidirectory-go/apperror"
	"github.com/user/unidirectory-go/logging"
)

// GenericServerError is what clients see for a 5xx unless verbose errors are enabled.
const GenericServerError = "Internal server error"

// JSON serializes body and writes it with the given status.
func JSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	// Headers are already sent, so an encoding failure can only be dropped.
	_ = json.NewEncoder(w).Encode(body)
}

// Responder maps errors to HTTP responses.
type Responder struct {
	verbose bool
}

// New creates a Responder. When verbose is true, 5xx bodies carry the underlying error message.
func New(verbose bool) *Responder {
	return &Responder{verbose: verbose}
}

// Verbose reports whether raw error messages are exposed.
func (rs *Responder) Verbose() bool { return rs.verbose }

type errorOptions struct {
	fixedServerMessage string
	message            string
}

// ErrorOption customizes a single error response.
type ErrorOption func(*errorOptions)

// WithServerMessage forces the `error` field of 5xx responses to msg, even in verbose mode.
func WithServerMessage(msg string) ErrorOption {
	return func(o *errorOptions) { o.fixedServerMessage = msg }
}

// WithMessage adds a `message` field to 5xx responses.
func WithMessage(msg string) ErrorOption {
	return func(o *errorOptions) { o.message = msg }
}

// Error writes the error envelope for err and logs it with the request logger.
// Errors that are not *apperror.AppError are treated as internal errors.
func (rs *Responder) Error(w http.ResponseWriter, r *http.Request, err error, opts ...ErrorOption) {
	var o errorOptions
	for _, opt := range opts {
		opt(&o)
	}

	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError(GenericServerError, err)
	}

	body := appErr.ToResponse()
	log := logging.FromContext(r.Context())

	if appErr.IsServerError() {
		switch {
		case o.fixedServerMessage != "":
			body.Error = o.fixedServerMessage
		case rs.verbose:
			body.Error = appErr.Cause()
		default:
			body.Error = GenericServerError
		}
		body.Message = o.message
		log.Error("request failed", err, logging.Fields{"status_code": body.StatusCode})
	} else {
		log.Warn("request rejected", logging.Fields{"status_code": body.StatusCode, "error": appErr.Error()})
	}

	JSON(w, body.StatusCode, body)
}

// Recoverer turns a panic in a downstream handler into a 500 envelope.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logging.FromContext(r.Context()).Error("panic recovered", nil, logging.Fields{
				"panic": rec,
				"stack": string(debug.Stack()),
			})
			JSON(w, http.StatusInternalServerError, apperror.ErrorResponse{
				StatusCode: http.StatusInternalServerError,
				Error:      GenericServerError,
			})
		}()
		next.ServeHTTP(w, r)
	})
}
