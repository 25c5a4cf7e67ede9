// Package command implements the portal verbs. Each command value is
// constructed with a validated target object, executed exactly once, and
// discarded; payload construction is resolved through explicit builder
// tables keyed by the normalized object kind.
package command

import (
	"context"

	"github.com/ckanta-io/ckanta-client/pkg/ckan"
)

// ActionCaller performs one portal action call. Implemented by
// httpclient.Client; tests substitute stubs.
type ActionCaller interface {
	Call(ctx context.Context, action string, payload map[string]interface{}, asGet bool) (map[string]interface{}, error)
}

// KeyedCallerFunc builds an ActionCaller bound to a different API key. The
// delegated dataset grant flow uses it to issue requests as the target
// user.
type KeyedCallerFunc func(apikey string) ActionCaller

const requestFailedOp = "API request failed"

// wrapTransport converts any transport failure into a CommandError,
// preserving the original error as the cause.
func wrapTransport(err error) error {
	if err == nil {
		return nil
	}

	return ckan.NewCommandError(requestFailedOp, err)
}
