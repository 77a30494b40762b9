package failure

import (
	"errors"
	"net/http"
)

// Kind classifies a failure independently of its transport code.
type Kind string

const (
	KindInvalidInput     Kind = "InvalidInput"
	KindPlaceNotFound    Kind = "PlaceNotFound"
	KindStoreUnavailable Kind = "StoreUnavailable"
	KindConflict         Kind = "Conflict"
)

// Failure is an error that carries the HTTP status it should be reported with.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Kind    Kind   `json:"kind,omitempty"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

func build(code int, kind Kind, message string) error {
	return &Failure{Code: code, Message: message, Kind: kind}
}

// wrap is build for constructors that take an error; a nil cause yields nil.
func wrap(code int, kind Kind, cause error) error {
	if cause == nil {
		return nil
	}

	return build(code, kind, cause.Error())
}

func BadRequest(err error) error {
	return wrap(http.StatusBadRequest, KindInvalidInput, err)
}

func BadRequestFromString(msg string) error {
	return build(http.StatusBadRequest, KindInvalidInput, msg)
}

// Unauthorized is reported as invalid input: the caller supplied a missing or bad identity.
func Unauthorized(msg string) error {
	return build(http.StatusUnauthorized, KindInvalidInput, msg)
}

func Forbidden(msg string) error {
	return build(http.StatusForbidden, "", msg)
}

// NotFound is for lookups by id. A booking that references a missing place uses PlaceNotFound.
func NotFound(entityName string) error {
	return build(http.StatusNotFound, "", entityName)
}

func PlaceNotFound(msg string) error {
	return build(http.StatusNotFound, KindPlaceNotFound, msg)
}

func Conflict(msg string) error {
	return build(http.StatusConflict, KindConflict, msg)
}

func StoreUnavailable(err error) error {
	return wrap(http.StatusServiceUnavailable, KindStoreUnavailable, err)
}

// GetCode returns the status of the first Failure in err's chain, or 500.
func GetCode(err error) int {
	if fail, ok := find(err); ok {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the kind of the first Failure in err's chain, or an empty kind.
func GetKind(err error) Kind {
	if fail, ok := find(err); ok {
		return fail.Kind
	}

	return ""
}

func find(err error) (*Failure, bool) {
	var fail *Failure
	ok := errors.As(err, &fail)

	return fail, ok
}
