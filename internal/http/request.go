package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/rajgarments/storefront/internal/apperr"
	"github.com/rajgarments/storefront/internal/http/apierr"
	"github.com/rajgarments/storefront/internal/http/middleware"
	"github.com/rajgarments/storefront/pkg/validator"
)

const maxBodyBytes = 1 << 20 // 1 MB

type response struct {
	status int
	body   any
}

func jsonOK(body any) response {
	return response{status: http.StatusOK, body: body}
}

func jsonCreated(body any) response {
	return response{status: http.StatusCreated, body: body}
}

type messageResponse struct {
	Message string `json:"message"`
}

type handlerFunc func(r *http.Request) (response, error)

// handle adapts fn to net/http, writing its response as JSON and routing
// errors through the API error mapping.
func (s *Service) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		res, err := fn(r)
		if err != nil {
			s.handleResponseError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(res.status)
		if err := json.NewEncoder(w).Encode(res.body); err != nil {
			s.logger.WarnContext(r.Context(), "error encoding response", slog.Any("error", err))
		}
	}
}

// decodeBody decodes the JSON request body into dst and validates it.
func decodeBody(r *http.Request, v validator.Validator, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.ValidationErr.WithMsg("request body is required")
		}
		return apperr.ValidationErr.WithMsg("invalid request body: %v", err).WrapParent(err)
	}

	return v.Validate(dst)
}

func pathParam[T any](r *http.Request, name string) (T, error) {
	var v T
	if err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		}); err != nil {
		return v, &apierr.ParamError{Param: name, Err: err}
	}
	return v, nil
}

// queryParam binds an optional query parameter. dst is left untouched when
// the parameter is absent.
func queryParam(r *http.Request, name string, dst any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dst); err != nil {
		return &apierr.ParamError{Param: name, Err: err}
	}
	return nil
}

// currentUser returns the user set by the identity middleware.
func currentUser(r *http.Request) (middleware.User, error) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		return middleware.User{}, apperr.UnauthorizedErr
	}
	return u, nil
}

// optionalUserID returns the caller's id, or "" for anonymous requests.
func optionalUserID(r *http.Request) string {
	u, _ := middleware.UserFromContext(r.Context())
	return u.ID
}
