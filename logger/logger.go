// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

// Package logger contains logger API.
package logger

import (
	"io"
	"log/slog"
)

// New returns wrapped slog logger.
func New(w io.Writer, levelText string) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelText)); err != nil {
		return &slog.Logger{}, err
	}

	logHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(logHandler), nil
}
