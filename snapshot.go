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
	"context"
	"encoding/json"

	"github.com/blnkfinance/fxrecon/internal/apierror"
	"github.com/blnkfinance/fxrecon/model"
)

// RecordSnapshot stores the reconcile data of a statement line. The document must be a
// JSON object; entries are not validated since they are read leniently.
func (r *Recon) RecordSnapshot(ctx context.Context, snapshot model.ReconciliationSnapshot) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(snapshot.ReconcileData, &doc); err != nil {
		return apierror.NewAPIError(apierror.ErrInvalidInput, "reconcile data must be a JSON object", nil)
	}
	return r.datasource.RecordSnapshot(ctx, snapshot)
}

// GetSnapshot retrieves the reconcile data of a statement line.
func (r *Recon) GetSnapshot(ctx context.Context, statementLineID int64) (*model.ReconciliationSnapshot, error) {
	return r.datasource.GetSnapshotByStatementLineID(ctx, statementLineID)
}
