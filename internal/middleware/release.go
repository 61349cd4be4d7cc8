// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marvin/internal/config"
	"github.com/tomtom215/marvin/internal/logging"
)

// maxParamBody limits JSON request bodies.
const maxParamBody = 1 << 20

const (
	requestConfigKey contextKey = "request_config"
	paramsKey        contextKey = "params"
)

// RequestConfig is the data release a request works against. It is built
// once per request and never modified.
type RequestConfig struct {
	Release string
	DRPVer  string
	DAPVer  string
	// Known is false when the release is not configured; handlers reject
	// such requests during validation.
	Known bool
}

// RequestConfigFrom returns the request's release configuration. The zero
// value is returned outside of the Release middleware.
func RequestConfigFrom(ctx context.Context) RequestConfig {
	rc, _ := ctx.Value(requestConfigKey).(RequestConfig)
	return rc
}

// ParamsFrom returns the request parameters collected by the Release
// middleware, or nil outside of it.
func ParamsFrom(ctx context.Context) url.Values {
	v, _ := ctx.Value(paramsKey).(url.Values)
	return v
}

// Release collects request parameters from the query string and body and
// resolves the request's data release: the release parameter when given,
// otherwise the configured default.
func Release(data config.DataConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			params, err := ParseParams(r)
			if err != nil {
				logging.Ctx(r.Context()).Debug().Err(err).Msg("Rejected request body")
				writeBadRequest(w, err.Error())
				return
			}

			release := params.Get("release")
			if release == "" {
				release = data.DefaultRelease
			}
			rc := RequestConfig{Release: release}
			if versions, ok := data.Lookup(release); ok {
				rc.DRPVer = versions.DRPVer
				rc.DAPVer = versions.DAPVer
				rc.Known = true
			}

			ctx := context.WithValue(r.Context(), requestConfigKey, rc)
			ctx = context.WithValue(ctx, paramsKey, params)
			ctx = logging.ContextWithRelease(ctx, release)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ParseParams merges query, form and JSON body parameters. Query string
// values take precedence over body values of the same name.
func ParseParams(r *http.Request) (url.Values, error) {
	params := url.Values{}
	for k, v := range r.URL.Query() {
		params[k] = append([]string(nil), v...)
	}
	if r.Body == nil || r.Method == http.MethodGet || r.Method == http.MethodHead {
		return params, nil
	}

	body := url.Values{}
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/json":
		var err error
		if body, err = jsonParams(io.LimitReader(r.Body, maxParamBody)); err != nil {
			return nil, err
		}
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxParamBody); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, fmt.Errorf("invalid form body: %w", err)
		}
		body = r.PostForm
	}

	for k, v := range body {
		if _, ok := params[k]; !ok {
			params[k] = v
		}
	}
	return params, nil
}

// jsonParams flattens a JSON object into string parameters. Arrays become
// repeated values; nested objects are rejected.
func jsonParams(r io.Reader) (url.Values, error) {
	var raw map[string]interface{}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return url.Values{}, nil
		}
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}

	out := make(url.Values, len(raw))
	for k, v := range raw {
		items, ok := v.([]interface{})
		if !ok {
			items = []interface{}{v}
		}
		for _, item := range items {
			s, err := scalarString(item)
			if err != nil {
				return nil, fmt.Errorf("invalid JSON body: field %q: %w", k, err)
			}
			if item != nil {
				out.Add(k, s)
			}
		}
	}
	return out, nil
}

func scalarString(v interface{}) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", fmt.Errorf("unsupported value of type %T", v)
	}
}

func writeBadRequest(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "error",
		"data":   nil,
		"error": map[string]string{
			"code":    "BAD_REQUEST",
			"message": message,
		},
	})
}
