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

package fxrecon

import (
	"embed"

	"github.com/blnkfinance/fxrecon/config"
	"github.com/blnkfinance/fxrecon/database"
)

// Recon enriches exchange difference moves with analytic distributions and builds
// manual reconciliation actions.
type Recon struct {
	datasource database.IDataSource
	engine     ExchangeEngine
	precision  int32
}

//go:embed sql/*.sql
var SQLFiles embed.FS

// NewRecon creates a Recon backed by the given datasource and accounting engine.
// The engine may be nil when only enrichment of already prepared moves is needed.
//
// Parameters:
// - db database.IDataSource: The datasource holding snapshots, move lines and accounts.
// - engine ExchangeEngine: The accounting engine preparing exchange difference moves.
//
// Returns:
// - *Recon: A pointer to the newly created Recon instance.
// - error: An error if the configuration is not loaded.
func NewRecon(db database.IDataSource, engine ExchangeEngine) (*Recon, error) {
	configuration, err := config.Fetch()
	if err != nil {
		return nil, err
	}
	return &Recon{datasource: db, engine: engine, precision: configuration.AmountPrecision()}, nil
}

// NewReconFromConfig creates a Recon whose engine client is built from the loaded
// configuration. The engine is left unset when no engine url is configured.
func NewReconFromConfig(db database.IDataSource) (*Recon, error) {
	configuration, err := config.Fetch()
	if err != nil {
		return nil, err
	}

	var engine ExchangeEngine
	if client := NewEngineClient(configuration.Engine); client != nil {
		engine = client
	}
	return NewRecon(db, engine)
}
