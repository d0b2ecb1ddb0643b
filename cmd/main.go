/*
Copyright 2025 Careview Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/careviewhq/careview"
	"github.com/careviewhq/careview/config"
	"github.com/careviewhq/careview/internal/cache"
	"github.com/careviewhq/careview/internal/notification"
	"github.com/careviewhq/careview/internal/source"
)

// Careview is the CLI application, wrapping the root Cobra command.
type Careview struct {
	cmd *cobra.Command
}

// careviewInstance holds the engine and its configuration for the
// lifetime of a command.
type careviewInstance struct {
	careview *careview.Careview
	cnf      *config.Configuration
}

func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun loads the configuration and builds the engine before any
// command executes.
func preRun(app *careviewInstance) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.InitConfig("careview.json")
		if err != nil {
			log.Fatal("error loading config", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		newCareview, err := setupCareview(cnf)
		if err != nil {
			notification.NotifyError(err)
			log.Fatal(err)
		}

		app.careview = newCareview
		app.cnf = cnf

		return nil
	}
}

// setupCareview wires the HTTP collection source, with a Redis-backed
// response cache when one is configured, into a new engine.
func setupCareview(cfg *config.Configuration) (*careview.Careview, error) {
	src := source.NewHTTPSource(cfg.Source.BaseUrl, time.Duration(cfg.Source.TimeoutSec)*time.Second)

	if cfg.Redis.Dns != "" && cfg.Source.CacheTTLSec > 0 {
		redisCache, err := cache.NewCache()
		if err != nil {
			return nil, fmt.Errorf("error getting cache: %v", err)
		}
		src = src.WithCache(redisCache, time.Duration(cfg.Source.CacheTTLSec)*time.Second)
	}

	newCareview, err := careview.NewCareview(src)
	if err != nil {
		return nil, fmt.Errorf("error creating careview: %v", err)
	}
	return newCareview, nil
}

// NewCLI assembles the root command and its subcommands.
func NewCLI() *Careview {
	var configFile string
	b := &careviewInstance{}

	var rootCmd = &cobra.Command{
		Use:   "careview",
		Short: "Clinic dashboard reconciliation server",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./careview.json", "Configuration file for careview")

	rootCmd.PersistentPreRunE = preRun(b)

	rootCmd.AddCommand(serverCommands(b))

	return &Careview{cmd: rootCmd}
}

func (w Careview) executeCLI() {
	if err := w.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
