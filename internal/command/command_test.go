package command_test

import (
	"context"

	"github.com/ckanta-io/ckanta-client/internal/command"
)

// fakeCall records one transport invocation, including which API key the
// caller was bound to.
type fakeCall struct {
	action  string
	payload map[string]interface{}
	asGet   bool
	apikey  string
}

// fakeCaller is an in-memory ActionCaller. Responses resolve by action
// name; fail entries take precedence. WithKey clones share the recorder so
// tests can assert the full call sequence.
type fakeCaller struct {
	apikey  string
	calls   *[]fakeCall
	results map[string]map[string]interface{}
	fail    map[string]error
	handler func(call fakeCall) (map[string]interface{}, error)
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{
		apikey:  "caller-key",
		calls:   &[]fakeCall{},
		results: map[string]map[string]interface{}{},
		fail:    map[string]error{},
	}
}

func (f *fakeCaller) Call(_ context.Context, action string, payload map[string]interface{}, asGet bool) (map[string]interface{}, error) {
	call := fakeCall{action: action, payload: payload, asGet: asGet, apikey: f.apikey}
	*f.calls = append(*f.calls, call)

	if f.handler != nil {
		return f.handler(call)
	}

	if err := f.fail[action]; err != nil {
		return nil, err
	}

	if result, ok := f.results[action]; ok {
		return result, nil
	}

	return map[string]interface{}{"success": true, "result": []interface{}{}}, nil
}

// withKey mirrors httpclient.Client.WithAPIKey for the grant flow.
func (f *fakeCaller) withKey(apikey string) command.ActionCaller {
	clone := *f
	clone.apikey = apikey

	return &clone
}
