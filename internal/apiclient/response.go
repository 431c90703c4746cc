package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jobfinder/dashboard-go/internal/model"
)

// Response is a successful (2xx) reply. JSON reports whether the server
// labelled the body as JSON; otherwise the body is raw text.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	JSON       bool
}

func (r *Response) Text() string {
	return string(r.Body)
}

// Decode unmarshals a JSON body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if !r.JSON {
		return fmt.Errorf("response is not JSON (status %d)", r.StatusCode)
	}
	if len(r.Body) == 0 {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}

// Envelope decodes the backend wrapper. Non-JSON and empty bodies (e.g.
// 204 No Content) yield an empty envelope.
func (r *Response) Envelope() (*model.Envelope, error) {
	env := &model.Envelope{}
	if !r.JSON || len(r.Body) == 0 {
		return env, nil
	}
	if err := json.Unmarshal(r.Body, env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return env, nil
}

// parsed returns the body as a generic JSON value, falling back to text.
func (r *Response) parsed() any {
	if r.JSON && len(r.Body) > 0 {
		var v any
		if err := json.Unmarshal(r.Body, &v); err == nil {
			return v
		}
	}
	if len(r.Body) == 0 {
		return nil
	}
	return string(r.Body)
}
