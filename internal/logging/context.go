// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	correlationIDKey contextKey = "correlation_id"
	requestIDKey     contextKey = "request_id"
	loggerKey        contextKey = "logger"
	releaseKey       contextKey = "release"
	plateIFUKey      contextKey = "plateifu"
)

// GenerateCorrelationID returns the first 8 characters of a UUID.
func GenerateCorrelationID() string {
	return uuid.New().String()[:8]
}

// GenerateRequestID returns a full UUID.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithCorrelationID returns a new context carrying the correlation ID.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// ContextWithNewCorrelationID returns a context with a freshly generated correlation ID.
func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return ContextWithCorrelationID(ctx, GenerateCorrelationID())
}

// CorrelationIDFromContext returns the correlation ID, or "" when absent.
func CorrelationIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithRequestID returns a new context carrying the HTTP request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID, or "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithRelease returns a context naming the data release (MPL-4, DR17)
// the request works against.
func ContextWithRelease(ctx context.Context, release string) context.Context {
	return context.WithValue(ctx, releaseKey, release)
}

// ReleaseFromContext returns the data release, or "" when absent.
func ReleaseFromContext(ctx context.Context) string {
	if release, ok := ctx.Value(releaseKey).(string); ok {
		return release
	}
	return ""
}

// ContextWithPlateIFU returns a context naming the cube being served.
func ContextWithPlateIFU(ctx context.Context, plateifu string) context.Context {
	return context.WithValue(ctx, plateIFUKey, plateifu)
}

// PlateIFUFromContext returns the cube's plate-IFU, or "" when absent.
func PlateIFUFromContext(ctx context.Context) string {
	if plateifu, ok := ctx.Value(plateIFUKey).(string); ok {
		return plateifu
	}
	return ""
}

// ContextWithLogger stores a logger in the context.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext returns the context logger, falling back to the process logger.
func LoggerFromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return logger
	}
	return Logger()
}

// Ctx returns a logger carrying the request and cube fields found in ctx:
// correlation_id, request_id, release and plateifu.
//
//	ctx = logging.ContextWithPlateIFU(ctx, c.PlateIFU)
//	logging.Ctx(ctx).Warn().Err(err).Msg("Spectrum cache read failed")
func Ctx(ctx context.Context) *zerolog.Logger {
	logCtx := LoggerFromContext(ctx).With()

	if correlationID := CorrelationIDFromContext(ctx); correlationID != "" {
		logCtx = logCtx.Str("correlation_id", correlationID)
	}
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		logCtx = logCtx.Str("request_id", requestID)
	}
	if release := ReleaseFromContext(ctx); release != "" {
		logCtx = logCtx.Str("release", release)
	}
	if plateifu := PlateIFUFromContext(ctx); plateifu != "" {
		logCtx = logCtx.Str("plateifu", plateifu)
	}

	l := logCtx.Logger()
	return &l
}
