// Package header builds the advisory and pagination response headers parsed by the
// client UI: X-<app>-alert / X-<app>-params / X-<app>-error, Link and X-Total-Count.
package header

import (
	"fmt"
	"net/url"
)

// Action is the lifecycle event an alert reports.
type Action string

const (
	Created Action = "created"
	Updated Action = "updated"
	Deleted Action = "deleted"
)

// Alerts formats entity alert headers for one application. It holds no mutable state.
type Alerts struct {
	ApplicationName   string
	EnableTranslation bool
}

// AlertKey is the alert header name, X-<app>-alert.
func (a Alerts) AlertKey() string { return "X-" + a.ApplicationName + "-alert" }

// ParamsKey is the params header name, X-<app>-params.
func (a Alerts) ParamsKey() string { return "X-" + a.ApplicationName + "-params" }

// ErrorKey is the error header name, X-<app>-error.
func (a Alerts) ErrorKey() string { return "X-" + a.ApplicationName + "-error" }

// Alert returns a generic alert carrying message and param.
func (a Alerts) Alert(message, param string) map[string]string {
	return map[string]string{
		a.AlertKey():  message,
		a.ParamsKey(): url.QueryEscape(param),
	}
}

// Entity returns the alert headers for an entity lifecycle event.
func (a Alerts) Entity(entityName string, action Action, id string) map[string]string {
	if a.EnableTranslation {
		return a.Alert(a.ApplicationName+"."+entityName+"."+string(action), id)
	}
	var msg string
	switch action {
	case Created:
		msg = fmt.Sprintf("A new %s is created with identifier %s", entityName, id)
	default:
		msg = fmt.Sprintf("A %s is %s with identifier %s", entityName, action, id)
	}
	return a.Alert(msg, id)
}

// Failure returns the headers attached to a client-error response.
func (a Alerts) Failure(entityName, errorKey, defaultMessage string) map[string]string {
	msg := defaultMessage
	if a.EnableTranslation {
		msg = "error." + errorKey
	}
	return map[string]string{
		a.ErrorKey():  msg,
		a.ParamsKey(): entityName,
	}
}
