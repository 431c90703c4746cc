package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/jobfinder/dashboard-go/internal/apiclient"
	"github.com/jobfinder/dashboard-go/internal/model"
)

// API is the subset of *apiclient.Client the resource services call.
type API interface {
	Get(ctx context.Context, path string, query url.Values) (*apiclient.Response, error)
	Post(ctx context.Context, path string, body any) (*apiclient.Response, error)
	Put(ctx context.Context, path string, body any) (*apiclient.Response, error)
	Delete(ctx context.Context, path string) (*apiclient.Response, error)
	GetToken(ctx context.Context) string
	SetToken(ctx context.Context, token string, expiryDays int) error
	RemoveToken(ctx context.Context) error
}

// unwrap decodes the envelope of resp and then its payload into v.
//
// The payload is read from data[key] when present, then from data itself;
// an absent or null payload leaves v at its zero value.
func unwrap(resp *apiclient.Response, key string, v any) (*model.Envelope, error) {
	env, err := resp.Envelope()
	if err != nil {
		return nil, err
	}
	if err := decodeData(env.Data, key, v); err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}
	return env, nil
}

func decodeData(data json.RawMessage, key string, v any) error {
	if isNull(data) {
		return nil
	}
	if key != "" {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err == nil {
			if nested, ok := obj[key]; ok && !isNull(nested) {
				return json.Unmarshal(nested, v)
			}
		}
	}
	return json.Unmarshal(data, v)
}

func isNull(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
