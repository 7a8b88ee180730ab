package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"kindred_server/models"
)

var validate = newValidator()

// newValidator builds the shared request validator, reporting fields by
// their JSON names so error locations match what the client sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeAndValidate parses the request body into req and runs the schema
// validation. code is the status used for validation failures (422 for
// business input, 400 for login).
func decodeAndValidate(r *http.Request, req interface{}, code int) *models.AppError {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return &models.AppError{Code: code, Reason: models.ReasonValidation, Message: "Invalid request payload"}
	}
	if err := validate.Struct(req); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			fe := fieldErrors[0]
			return &models.AppError{
				Code:     code,
				Reason:   models.ReasonValidation,
				Message:  fmt.Sprintf("%q fails the %q constraint", fe.Field(), fe.Tag()),
				Location: fe.Field(),
			}
		}
		return &models.AppError{Code: code, Reason: models.ReasonValidation, Message: "Invalid request payload"}
	}
	return nil
}

// respondJSON writes a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps a workflow failure to its HTTP response. Known reasons
// keep their status code and shape; anything unrecognized degrades to a 500
// with a generic body, the underlying failure logged server-side only.
func respondError(w http.ResponseWriter, err error) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Reason {
		case models.ReasonValidation:
			respondJSON(w, appErr.Code, appErr)
		case models.ReasonRequest, models.ReasonLogin, models.ReasonAuth:
			respondJSON(w, appErr.Code, map[string]string{"message": appErr.Message})
		default:
			respondJSON(w, appErr.Code, map[string]string{"message": appErr.Message})
		}
		return
	}

	log.Printf("Unhandled error: %v", err)
	respondJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal Server Error"})
}
