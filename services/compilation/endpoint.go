package compilation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/NilFoundation/solforge/common/logging"
	"github.com/NilFoundation/solforge/internal/callargs"
	"github.com/NilFoundation/solforge/internal/solc"
)

var _ error = (*EndpointError)(nil)

// EndpointError is the JSON body of every failed API call.
type EndpointError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewEndpointError(code int, message string) *EndpointError {
	return &EndpointError{Code: code, Message: message}
}

// WrapEndpointError maps pipeline errors to HTTP statuses.
func WrapEndpointError(err error) *EndpointError {
	var e *EndpointError
	if errors.As(err, &e) {
		return e
	}
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, callargs.ErrArgumentFormat),
		errors.Is(err, callargs.ErrArgumentCount):
		return NewEndpointError(http.StatusBadRequest, err.Error())
	case errors.Is(err, solc.ErrVersionNotFound):
		return NewEndpointError(http.StatusNotFound, err.Error())
	}
	return NewEndpointError(http.StatusInternalServerError, err.Error())
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("code %d: %s", e.Code, e.Message)
}

func (e *EndpointError) WriteTo(w http.ResponseWriter, logger logging.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Code)
	if err := json.NewEncoder(w).Encode(e); err != nil {
		logger.Error().Err(err).Msg("Failed to write error response")
	}
}

// HandleEndpoint encodes the answer of h as JSON or writes the error it returned.
func HandleEndpoint[T any](h func(r *http.Request) (T, error), logger logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ans, err := h(r)
		if err != nil {
			e := WrapEndpointError(err)
			if e.Code >= http.StatusInternalServerError {
				logger.Error().Err(err).Str(logging.FieldUrl, r.URL.Path).Msg("Request failed")
			}
			e.WriteTo(w, logger)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(ans); err != nil {
			logger.Error().Err(err).Str(logging.FieldUrl, r.URL.Path).Msg("Failed to encode response")
		}
	}
}

const maxBodySize = 16 << 20

func decodeBody[T any](r *http.Request) (*T, error) {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	dec.UseNumber()
	var v T
	if err := dec.Decode(&v); err != nil {
		return nil, NewEndpointError(http.StatusBadRequest, "malformed request body: "+err.Error())
	}
	return &v, nil
}
