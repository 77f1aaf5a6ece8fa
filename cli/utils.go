// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

// Package cli contains the shelter-cli command set over the shelter
// document repository.
package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/salvare/shelter"
	"github.com/salvare/shelter/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	// Limit query parameter, zero means all records.
	Limit int64 = 0
	// Sort query parameter, "field:asc" or "field:desc", comma separated.
	Sort string = ""
	// Projection query parameter, field names comma separated.
	Projection string = ""
	// Many applies updates and deletes to every matching record.
	Many bool = false
	// Upsert inserts a record when an update matches nothing.
	Upsert bool = false
	// ConfigPath config path parameter.
	ConfigPath string = ""
	// EnvFile is an optional .env formatted file loaded before connecting.
	EnvFile string = ""
	// RawOutput raw output mode.
	RawOutput bool = false
	// Verbose logs every repository operation to stderr.
	Verbose bool = false
)

var errInvalidSort = errors.New("invalid sort specification")

func logJSONCmd(cmd cobra.Command, iList ...interface{}) {
	for _, i := range iList {
		m, err := json.Marshal(i)
		if err != nil {
			logErrorCmd(cmd, err)
			return
		}

		if RawOutput {
			fmt.Fprintln(cmd.OutOrStdout(), string(m))
			continue
		}

		pj, err := prettyjson.Format(m)
		if err != nil {
			logErrorCmd(cmd, err)
			return
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n\n", string(pj))
	}
}

func logUsageCmd(cmd cobra.Command, u string) {
	fmt.Fprintf(cmd.OutOrStdout(), color.YellowString("\nusage: %s\n\n"), u)
}

func logErrorCmd(cmd cobra.Command, err error) {
	boldRed := color.New(color.FgRed, color.Bold)
	boldRed.Fprintf(cmd.ErrOrStderr(), "\nerror: ")

	fmt.Fprintf(cmd.ErrOrStderr(), "%s\n\n", color.RedString(err.Error()))
}

func logOKCmd(cmd cobra.Command) {
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n\n", color.BlueString("ok"))
}

func logCountCmd(cmd cobra.Command, label string, n int64) {
	if RawOutput {
		fmt.Fprintln(cmd.OutOrStdout(), n)
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), color.BlueString("\n%s: %d\n\n"), label, n)
}

func parseJSON(arg string) (map[string]interface{}, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(arg), &doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func parseSort(s string) ([]shelter.SortField, error) {
	if s == "" {
		return nil, nil
	}

	fields := []shelter.SortField{}
	for _, part := range strings.Split(s, ",") {
		field, dir, found := strings.Cut(strings.TrimSpace(part), ":")
		if field == "" {
			return nil, errInvalidSort
		}

		sf := shelter.SortField{Field: field, Order: shelter.Ascending}
		if found {
			switch dir {
			case "asc":
			case "desc":
				sf.Order = shelter.Descending
			default:
				return nil, errInvalidSort
			}
		}

		fields = append(fields, sf)
	}

	return fields, nil
}

func parseProjection(s string) shelter.Projection {
	if s == "" {
		return nil
	}

	p := shelter.Projection{}
	for _, field := range strings.Split(s, ",") {
		if field = strings.TrimSpace(field); field != "" {
			p[field] = 1
		}
	}
	if len(p) == 0 {
		return nil
	}

	return p
}
