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

package database

import (
	"context"

	"github.com/blnkfinance/fxrecon/model"
)

// IDataSource defines the interface for data source operations, grouping related functionalities.
type IDataSource interface {
	snapshot // Interface for statement line reconciliation snapshots
	moveLine // Interface for journal item reads
	account  // Interface for account reads
}

// snapshot defines methods for reading and writing reconciliation snapshots.
type snapshot interface {
	FindSnapshotsByDataElementID(ctx context.Context, id int64) ([]model.ReconciliationSnapshot, error) // Snapshots whose data array holds an element with the numeric id, oldest statement line first
	GetSnapshotByStatementLineID(ctx context.Context, statementLineID int64) (*model.ReconciliationSnapshot, error)
	RecordSnapshot(ctx context.Context, snapshot model.ReconciliationSnapshot) error // Creates or replaces the snapshot of a statement line
}

// moveLine defines methods for handling journal items.
type moveLine interface {
	GetMoveLinesByIDs(ctx context.Context, ids []int64) ([]model.MoveLine, error) // Retrieves journal items in the order of ids
}

// account defines methods for handling accounts.
type account interface {
	GetAccountByID(ctx context.Context, id int64) (*model.Account, error) // Retrieves an account, through the cache when one is configured
}
