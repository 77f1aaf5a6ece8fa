// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"os"
	"strconv"

	"github.com/pelletier/go-toml"
	"github.com/salvare/shelter/mongodb"
	"github.com/salvare/shelter/pkg/errors"
	"github.com/spf13/cobra"
)

type remote struct {
	Host          string `toml:"host"`
	Port          string `toml:"port"`
	Database      string `toml:"database"`
	Collection    string `toml:"collection"`
	AuthSource    string `toml:"auth_source"`
	AuthMechanism string `toml:"auth_mechanism"`
}

type filter struct {
	Limit      string `toml:"limit"`
	Sort       string `toml:"sort"`
	Projection string `toml:"projection"`
}

type config struct {
	Remote    remote `toml:"remote"`
	Filter    filter `toml:"filter"`
	RawOutput string `toml:"raw_output"`
}

// Readable by all user groups but writeable by the user only.
const filePermission = 0o644

var (
	errReadFail            = errors.New("failed to read config file")
	errNoKey               = errors.New("no such key")
	errUnsupportedKeyValue = errors.New("unsupported data type for key")
	errWritingConfig       = errors.New("error in writing the updated config to file")
	defaultConfigPath      = "./config.toml"
)

func read(file string) (config, error) {
	c := config{}
	data, err := os.Open(file)
	if err != nil {
		return c, errors.Wrap(errReadFail, err)
	}
	defer data.Close()

	buf, err := io.ReadAll(data)
	if err != nil {
		return c, errors.Wrap(errReadFail, err)
	}

	if err := toml.Unmarshal(buf, &c); err != nil {
		return config{}, err
	}

	return c, nil
}

// ParseConfig fills the gaps in the given repository configuration and the
// query parameters from the local config file. Values given on the command
// line always win; a missing file is not an error, it simply contributes
// nothing.
func ParseConfig(dbConf mongodb.Config) (mongodb.Config, error) {
	if ConfigPath == "" {
		ConfigPath = defaultConfigPath
	}

	if _, err := os.Stat(ConfigPath); os.IsNotExist(err) {
		return dbConf, nil
	}

	c, err := read(ConfigPath)
	if err != nil {
		return dbConf, err
	}

	if dbConf.Host == "" {
		dbConf.Host = c.Remote.Host
	}
	if dbConf.Port == "" {
		dbConf.Port = c.Remote.Port
	}
	if dbConf.Name == "" {
		dbConf.Name = c.Remote.Database
	}
	if dbConf.Collection == "" {
		dbConf.Collection = c.Remote.Collection
	}
	if dbConf.AuthSource == "" {
		dbConf.AuthSource = c.Remote.AuthSource
	}
	if dbConf.AuthMechanism == "" {
		dbConf.AuthMechanism = c.Remote.AuthMechanism
	}

	if Limit == 0 && c.Filter.Limit != "" {
		limit, err := strconv.ParseInt(c.Filter.Limit, 10, 64)
		if err != nil {
			return dbConf, err
		}
		Limit = limit
	}

	if Sort == "" {
		Sort = c.Filter.Sort
	}

	if Projection == "" {
		Projection = c.Filter.Projection
	}

	if !RawOutput && c.RawOutput != "" {
		rawOutput, err := strconv.ParseBool(c.RawOutput)
		if err != nil {
			return dbConf, err
		}
		RawOutput = rawOutput
	}

	return dbConf, nil
}

// NewConfigCmd returns config command to store params to local TOML file.
func NewConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config <key> <value>",
		Short: "CLI local config",
		Long: "Local param storage to prevent repetitive passing of keys\n" +
			"keys: host, port, database, collection, auth_source, auth_mechanism, limit, sort, projection, raw_output\n" +
			"credentials are never stored; pass them as flags or set " + mongodb.EnvUser + " and " + mongodb.EnvPass,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			if err := setConfigValue(args[0], args[1]); err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logOKCmd(*cmd)
		},
	}
}

func setConfigValue(key, value string) error {
	if ConfigPath == "" {
		ConfigPath = defaultConfigPath
	}

	c := config{}
	if _, err := os.Stat(ConfigPath); err == nil {
		if c, err = read(ConfigPath); err != nil {
			return err
		}
	}

	switch key {
	case "port", "limit":
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return errors.Wrap(errUnsupportedKeyValue, err)
		}
	case "sort":
		if _, err := parseSort(value); err != nil {
			return err
		}
	case "raw_output":
		if _, err := strconv.ParseBool(value); err != nil {
			return errors.Wrap(errUnsupportedKeyValue, err)
		}
	}

	configKeyToField := map[string]*string{
		"host":           &c.Remote.Host,
		"port":           &c.Remote.Port,
		"database":       &c.Remote.Database,
		"collection":     &c.Remote.Collection,
		"auth_source":    &c.Remote.AuthSource,
		"auth_mechanism": &c.Remote.AuthMechanism,
		"limit":          &c.Filter.Limit,
		"sort":           &c.Filter.Sort,
		"projection":     &c.Filter.Projection,
		"raw_output":     &c.RawOutput,
	}

	fieldPtr, ok := configKeyToField[key]
	if !ok {
		return errNoKey
	}
	*fieldPtr = value

	buf, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	if err := os.WriteFile(ConfigPath, buf, filePermission); err != nil {
		return errors.Wrap(errWritingConfig, err)
	}

	return nil
}
