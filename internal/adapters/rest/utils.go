package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ianmeigh/property-direct-backend/internal/contracts"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxRequestBody = 1 << 20

// ErrorResponse is the body of every error reply. StatusCode repeats the
// HTTP status so clients that only see the body can still branch on it.
type ErrorResponse struct {
	Kind       string            `json:"kind"`
	Detail     string            `json:"detail"`
	StatusCode int               `json:"status_code"`
	Fields     map[string]string `json:"fields,omitempty"`
}

func WriteJSONError(w http.ResponseWriter, statusCode int, kind domain.ErrorKind, message string, fields map[string]string) {
	RespondWithJSON(w, statusCode, ErrorResponse{
		Kind:       string(kind),
		Detail:     message,
		StatusCode: statusCode,
		Fields:     fields,
	})
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation, domain.KindPostcodeInvalid, domain.KindDuplicateEdge, domain.KindDomainRule:
		return http.StatusBadRequest
	case domain.KindServiceUnavailable:
		return http.StatusServiceUnavailable
	case domain.KindPermissionDenied:
		return http.StatusForbidden
	case domain.KindNotAuthenticated:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// RespondWithError writes err as a JSON error. Anything that is not a
// domain.Error is logged and reported as a bare 500.
func RespondWithError(w http.ResponseWriter, logger port.LoggerPort, err error) {
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		logger.Error("Request failed with an unexpected error", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "server_error", "Internal server error", nil)
		return
	}

	status := statusForKind(domainErr.Kind)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", err, port.Fields{"status_code": status})
	} else {
		logger.Warn("Request rejected", port.Fields{"status_code": status, "kind": string(domainErr.Kind)})
	}
	WriteJSONError(w, status, domainErr.Kind, domainErr.Message, domainErr.Fields)
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// decodeBody checks the body against contract before decoding it into dst.
func decodeBody(r *http.Request, contract string, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return domain.NewFieldError("non_field_errors", "Could not read request body.")
	}
	if err := contracts.Validate(contract, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return domain.NewFieldError("non_field_errors", "Malformed JSON body.")
	}
	return nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		// Unparseable ids cannot name an existing record.
		return uuid.Nil, domain.ErrNotFound
	}
	return id, nil
}

// queryParser collects per-parameter errors so a request reports them all at once.
type queryParser struct {
	values url.Values
	fields map[string]string
}

func newQueryParser(values url.Values) *queryParser {
	return &queryParser{values: values, fields: make(map[string]string)}
}

func (p *queryParser) String(name string) string {
	return strings.TrimSpace(p.values.Get(name))
}

func (p *queryParser) Int(name string) *int {
	raw := p.String(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fields[name] = "A valid integer is required."
		return nil
	}
	return &v
}

func (p *queryParser) Bool(name string) *bool {
	raw := p.String(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fields[name] = "Must be a valid boolean."
		return nil
	}
	return &v
}

func (p *queryParser) UUID(name string) *uuid.UUID {
	raw := p.String(name)
	if raw == "" {
		return nil
	}
	v, err := uuid.Parse(raw)
	if err != nil {
		p.fields[name] = "Must be a valid UUID."
		return nil
	}
	return &v
}

func (p *queryParser) Pagination() domain.Pagination {
	page, perPage := p.Int("page"), p.Int("per_page")
	pageValue, perPageValue := 1, domain.DefaultPageSize
	if page != nil {
		pageValue = *page
	}
	if perPage != nil {
		perPageValue = *perPage
	}
	return domain.NewPagination(pageValue, perPageValue)
}

func (p *queryParser) Err() error {
	if len(p.fields) == 0 {
		return nil
	}
	return domain.NewValidationError("Invalid query parameters.", p.fields)
}
