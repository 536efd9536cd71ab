package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bulkmart/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code. The status is already sent
// when encoding fails, so an encode error cannot change the response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Warn().Str("code", code).Int("status", status).Msg(message)
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeDomainError maps err to its HTTP status. Errors that are not domain errors are
// logged in full and reported as a generic internal error.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	if errors.Is(err, model.ErrStoreUnavailable) {
		logger.Error().Err(err).Msg("store unavailable")
		writeJSON(w, http.StatusServiceUnavailable, model.ErrorResponse{
			Error:   model.ErrStoreUnavailable.Code,
			Message: model.ErrStoreUnavailable.Message,
		})
		return
	}

	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Msg("unexpected error")
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
			Error:   model.ErrCodeInternalError,
			Message: "Something went wrong, please retry",
		})
		return
	}

	writeError(w, statusFor(domainErr.Code), domainErr.Code, domainErr.Message, logger)
}

func statusFor(code string) int {
	switch code {
	case model.ErrCodeInvalidJSON,
		model.ErrCodeMissingField,
		model.ErrCodeEmptyCart,
		model.ErrCodeInvalidQuantity,
		model.ErrCodeInvalidPriceTiers,
		model.ErrCodeInvalidProduct,
		model.ErrCodeInvalidStatus,
		model.ErrCodeUnknownArea:
		return http.StatusBadRequest
	case model.ErrCodeOfferNotFound,
		model.ErrCodeProductNotFound,
		model.ErrCodeOrderNotFound,
		model.ErrCodeCartLineNotFound,
		model.ErrCodeNotificationNotFound:
		return http.StatusNotFound
	case model.ErrCodeInvalidTransition,
		model.ErrCodeDuplicateOffer,
		model.ErrCodeOfferUnavailable,
		model.ErrCodeUnpricedOffer,
		model.ErrCodeCartConflict:
		return http.StatusConflict
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeUnauthorised, model.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case model.ErrCodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a JSON request body into v, writing a 400 response on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}, logger zerolog.Logger) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "Request body is not valid JSON", logger)
		return false
	}
	return true
}

// actorFrom returns the authenticated actor, writing a 401 response when there is none.
func actorFrom(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (model.Actor, bool) {
	actor, ok := model.ActorFrom(r.Context())
	if !ok {
		writeDomainError(w, model.ErrUnauthorised, logger)
		return model.Actor{}, false
	}
	return actor, true
}

// uuidParam parses the named path parameter, writing a 404 response when it is not a UUID.
func uuidParam(w http.ResponseWriter, r *http.Request, name string, notFound error, logger zerolog.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeDomainError(w, notFound, logger)
		return uuid.Nil, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter.
func queryInt(w http.ResponseWriter, r *http.Request, name string, def int, logger zerolog.Logger) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid "+name+" parameter", logger)
		return 0, false
	}
	return v, true
}
