package problem

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/loopfz/gadgeto/tonic"
)

type InvalidParam struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// APIError implementeert error + Problem Details (RFC 7807)
type APIError struct {
	Type          string         `json:"type"`
	Title         string         `json:"title"`
	Status        int            `json:"status"`
	Detail        string         `json:"detail"`
	Instance      string         `json:"instance,omitempty"`
	InvalidParams []InvalidParam `json:"invalidParams,omitempty"`
}

func (e APIError) Error() string { return e.Detail }

func NewServiceUnavailable(detail string) APIError {
	return APIError{
		Type:   "https://developer.mozilla.org/en-US/docs/Web/HTTP/Reference/Status/503",
		Title:  "Service Unavailable",
		Status: 503,
		Detail: detail,
	}
}

func NewBadRequest(oasUri, detail string, params ...InvalidParam) APIError {
	return APIError{
		Instance:      oasUri,
		Type:          "https://developer.mozilla.org/en-US/docs/Web/HTTP/Reference/Status/400",
		Title:         "Bad Request",
		Status:        400,
		Detail:        detail,
		InvalidParams: params,
	}
}

func NewNotFound(oasUri, detail string, params ...InvalidParam) APIError {
	return APIError{
		Instance:      oasUri,
		Type:          "https://developer.mozilla.org/en-US/docs/Web/HTTP/Reference/Status/404",
		Title:         "Not Found",
		Status:        404,
		Detail:        detail,
		InvalidParams: params,
	}
}

func NewInternalServerError(detail string) APIError {
	return APIError{
		Type:   "https://developer.mozilla.org/en-US/docs/Web/HTTP/Reference/Status/500",
		Title:  "Internal Server Error",
		Status: 500,
		Detail: detail,
	}
}

func NewForbidden(oasUri, detail string) APIError {
	return APIError{
		Instance: oasUri,
		Type:     "https://developer.mozilla.org/en-US/docs/Web/HTTP/Reference/Status/403",
		Title:    "Forbidden",
		Status:   403,
		Detail:   detail,
	}
}

func NewTooManyRequests(detail string) APIError {
	return APIError{
		Type:   "https://developer.mozilla.org/en-US/docs/Web/HTTP/Reference/Status/429",
		Title:  "Too Many Requests",
		Status: 429,
		Detail: detail,
	}
}

// ErrorHook vertaalt fouten uit tonic handlers naar problem+json responses.
func ErrorHook(c *gin.Context, err error) (int, interface{}) {
	c.Header("Content-Type", "application/problem+json")

	// 1) Problem details van de handler zelf
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, apiErr
	}

	// 2) Binding fouten → 400
	var bindErr tonic.BindError
	if errors.As(err, &bindErr) {
		bad := NewBadRequest(c.Request.URL.Path, "Ongeldige request body", InvalidParam{Name: "body", Reason: bindErr.Error()})
		return bad.Status, bad
	}

	// 3) Alles anders → 500
	internal := NewInternalServerError(err.Error())
	return internal.Status, internal
}
