/*
Copyright 2024 Blnk Finance Authors.

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

	"github.com/blnkfinance/fxrecon"
	"github.com/blnkfinance/fxrecon/config"
	"github.com/blnkfinance/fxrecon/database"
	"github.com/blnkfinance/fxrecon/internal/notification"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Fxrecon represents the CLI application, encapsulating the root Cobra command.
type Fxrecon struct {
	cmd *cobra.Command
}

// fxreconInstance holds the service and the configuration it was built from.
type fxreconInstance struct {
	recon *fxrecon.Recon
	cnf   *config.Configuration
}

// recoverPanic handles any panics during program execution and logs the error using Logrus.
func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun loads the configuration and builds the service before any command runs.
func preRun(app *fxreconInstance, configFile *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.InitConfig(*configFile)
		if err != nil {
			log.Fatal("error loading config", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		recon, err := setupRecon(cnf)
		if err != nil {
			notification.NotifyError(err)
			log.Fatal(err)
		}

		app.recon = recon
		app.cnf = cnf
		return nil
	}
}

// setupRecon connects to the datasource and creates the service.
func setupRecon(cfg *config.Configuration) (*fxrecon.Recon, error) {
	db, err := database.NewDataSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("error getting datasource: %w", err)
	}

	recon, err := fxrecon.NewReconFromConfig(db)
	if err != nil {
		return nil, fmt.Errorf("error creating fxrecon: %w", err)
	}
	return recon, nil
}

// NewCLI creates the root command and its subcommands.
func NewCLI() *Fxrecon {
	var configFile string
	app := &fxreconInstance{}

	var rootCmd = &cobra.Command{
		Use:   "fxrecon",
		Short: "Analytic distributions for exchange difference moves",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./fxrecon.json", "Configuration file for fxrecon")
	rootCmd.PersistentPreRunE = preRun(app, &configFile)

	rootCmd.AddCommand(serverCommands(app))
	rootCmd.AddCommand(migrateCommands(app))
	rootCmd.AddCommand(lookupCommands(app))
	rootCmd.AddCommand(enrichCommands(app))

	return &Fxrecon{cmd: rootCmd}
}

func (f Fxrecon) executeCLI() {
	if err := f.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
