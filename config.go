// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/goschtalt/casemapper"
	"github.com/goschtalt/goschtalt"
	_ "github.com/goschtalt/yaml-decoder"
	_ "github.com/goschtalt/yaml-encoder"
	"github.com/mitchellh/mapstructure"
	"github.com/schmidtw/lis2dh-monitor/capture"
	"github.com/xmidt-org/sallust"
	"periph.io/x/conn/v3/physic"
)

var errConfigPath = errors.New("configuration path not found")

//go:embed default.yml
var defaultConfig []byte

// dev.yml swaps the hardware for the simulated sensor and logs to the
// console.
//
//go:embed dev.yml
var devConfig []byte

var frequencyType = reflect.TypeOf(physic.Frequency(0))

// frequencyHook decodes strings such as "100Hz" or "1.344kHz".
func frequencyHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != frequencyType {
		return data, nil
	}

	var f physic.Frequency
	if err := f.Set(reflect.ValueOf(data).String()); err != nil {
		return nil, err
	}
	return f, nil
}

func configFiles(paths []string) ([]goschtalt.Option, error) {
	opts := make([]goschtalt.Option, 0, len(paths))
	for _, path := range paths {
		fi, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%w: '%s' %v", errConfigPath, path, err)
		}

		if fi.IsDir() {
			opts = append(opts, goschtalt.AddDir(os.DirFS(path), "."))
			continue
		}
		opts = append(opts, goschtalt.AddFile(os.DirFS(filepath.Dir(path)), filepath.Base(path)))
	}
	return opts, nil
}

func provideConfig(cli *CLI) (*goschtalt.Config, error) {
	files, err := configFiles(cli.Files)
	if err != nil {
		return nil, err
	}

	opts := []goschtalt.Option{
		goschtalt.AddBuffer("default.yml", defaultConfig, goschtalt.AsDefault()),
	}
	if cli.Dev {
		opts = append(opts, goschtalt.AddBuffer("dev.yml", devConfig, goschtalt.AsDefault()))
	}
	opts = append(opts, files...)
	opts = append(opts,
		goschtalt.AutoCompile(),
		goschtalt.DefaultUnmarshalOptions(
			casemapper.ConfigStoredAs("two_words"),
			goschtalt.Keymap(map[string]string{
				"LIS2DH":             "lis2dh",
				"I2cFile":            "i2c_file",
				"ExpanderI2CAddress": "expander_i2c_address",
			}),
			goschtalt.DecodeHook(
				mapstructure.ComposeDecodeHookFunc(
					sallust.DecodeHook,
					mapstructure.StringToTimeDurationHookFunc(),
					mapstructure.StringToSliceHookFunc(","),
					frequencyHook,
				),
			),
		),
	)

	return goschtalt.New(opts...)
}

// provideCaptureConfig applies the command line mode override.
func provideCaptureConfig(cli *CLI, gs *goschtalt.Config) (capture.Config, error) {
	cfg, err := goschtalt.Unmarshal[capture.Config](gs, "capture")
	if err != nil {
		return capture.Config{}, err
	}

	if cli.Mode != "" {
		cfg.Mode = cli.Mode
	}
	return cfg, nil
}
