// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

package logger_test

import (
	"encoding/json"
	"fmt"
	"io"
	"testing"

	shlog "github.com/salvare/shelter/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ io.Writer = (*mockWriter)(nil)

type mockWriter struct {
	value []byte
}

func (writer *mockWriter) Write(p []byte) (int, error) {
	writer.value = p
	return len(p), nil
}

func (writer *mockWriter) Read() (logMsg, error) {
	var output logMsg
	err := json.Unmarshal(writer.value, &output)
	return output, err
}

type logMsg struct {
	Level   string `json:"level"`
	Message string `json:"msg"`
}

func TestNew(t *testing.T) {
	cases := []struct {
		desc  string
		level string
		err   bool
	}{
		{
			desc:  "lowercase level",
			level: "debug",
			err:   false,
		},
		{
			desc:  "uppercase level",
			level: "WARN",
			err:   false,
		},
		{
			desc:  "mixed case level",
			level: "Info",
			err:   false,
		},
		{
			desc:  "empty level",
			level: "",
			err:   true,
		},
		{
			desc:  "unknown level",
			level: "trace",
			err:   true,
		},
	}

	for _, tc := range cases {
		_, err := shlog.New(&mockWriter{}, tc.level)
		assert.Equal(t, tc.err, err != nil, fmt.Sprintf("%s: unexpected error result %v", tc.desc, err))
	}
}

func TestDebug(t *testing.T) {
	cases := []struct {
		desc   string
		input  string
		level  string
		output logMsg
	}{
		{
			desc:   "debug log ordinary string",
			input:  "input_string",
			level:  "debug",
			output: logMsg{"DEBUG", "input_string"},
		},
		{
			desc:   "debug log empty string",
			input:  "",
			level:  "debug",
			output: logMsg{"DEBUG", ""},
		},
		{
			desc:   "debug ordinary string lvl not allowed",
			input:  "input_string",
			level:  "info",
			output: logMsg{},
		},
	}

	for _, tc := range cases {
		writer := mockWriter{}
		logger, err := shlog.New(&writer, tc.level)
		require.Nil(t, err, fmt.Sprintf("%s: unexpected error %s", tc.desc, err))
		logger.Debug(tc.input)
		output, _ := writer.Read()
		assert.Equal(t, tc.output, output, fmt.Sprintf("%s: expected %s got %s", tc.desc, tc.output, output))
	}
}

func TestInfo(t *testing.T) {
	cases := []struct {
		desc   string
		input  string
		level  string
		output logMsg
	}{
		{
			desc:   "info log ordinary string",
			input:  "input_string",
			level:  "info",
			output: logMsg{"INFO", "input_string"},
		},
		{
			desc:   "info log empty string",
			input:  "",
			level:  "info",
			output: logMsg{"INFO", ""},
		},
		{
			desc:   "info ordinary string lvl not allowed",
			input:  "input_string",
			level:  "warn",
			output: logMsg{},
		},
	}

	for _, tc := range cases {
		writer := mockWriter{}
		logger, err := shlog.New(&writer, tc.level)
		require.Nil(t, err, fmt.Sprintf("%s: unexpected error %s", tc.desc, err))
		logger.Info(tc.input)
		output, _ := writer.Read()
		assert.Equal(t, tc.output, output, fmt.Sprintf("%s: expected %s got %s", tc.desc, tc.output, output))
	}
}

func TestWarn(t *testing.T) {
	cases := []struct {
		desc   string
		input  string
		level  string
		output logMsg
	}{
		{
			desc:   "warn log ordinary string",
			input:  "input_string",
			level:  "warn",
			output: logMsg{"WARN", "input_string"},
		},
		{
			desc:   "warn log empty string",
			input:  "",
			level:  "warn",
			output: logMsg{"WARN", ""},
		},
		{
			desc:   "warn ordinary string lvl not allowed",
			input:  "input_string",
			level:  "error",
			output: logMsg{},
		},
	}

	for _, tc := range cases {
		writer := mockWriter{}
		logger, err := shlog.New(&writer, tc.level)
		require.Nil(t, err, fmt.Sprintf("%s: unexpected error %s", tc.desc, err))
		logger.Warn(tc.input)
		output, _ := writer.Read()
		assert.Equal(t, tc.output, output, fmt.Sprintf("%s: expected %s got %s", tc.desc, tc.output, output))
	}
}

func TestError(t *testing.T) {
	cases := []struct {
		desc   string
		input  string
		output logMsg
	}{
		{
			desc:   "error log ordinary string",
			input:  "input_string",
			output: logMsg{"ERROR", "input_string"},
		},
		{
			desc:   "error log empty string",
			input:  "",
			output: logMsg{"ERROR", ""},
		},
	}

	writer := mockWriter{}
	logger, err := shlog.New(&writer, "error")
	require.Nil(t, err)
	for _, tc := range cases {
		logger.Error(tc.input)
		output, err := writer.Read()
		assert.Nil(t, err, fmt.Sprintf("%s: unexpected error %s", tc.desc, err))
		assert.Equal(t, tc.output, output, fmt.Sprintf("%s: expected %s got %s", tc.desc, tc.output, output))
	}
}
