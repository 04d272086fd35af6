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
	"database/sql"
	"errors"

	"github.com/blnkfinance/fxrecon/internal/apierror"
	"github.com/blnkfinance/fxrecon/model"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// snapshotsByDataElementQuery selects the statement lines whose reconcile_data.data
// array contains an element with a purely numeric id equal to $1. Documents whose
// data is not an array, elements that are not objects and ids that are not digit
// strings are filtered out without raising.
const snapshotsByDataElementQuery = `
	SELECT id, reconcile_data
	FROM fxrecon.statement_lines
	WHERE EXISTS (
		SELECT 1
		FROM jsonb_array_elements(
			CASE WHEN jsonb_typeof(reconcile_data->'data') = 'array'
				THEN reconcile_data->'data'
				ELSE '[]'::jsonb
			END
		) AS elem
		WHERE CASE WHEN (elem->>'id') ~ '^\d+$' THEN (elem->>'id')::numeric END = $1
	)
	ORDER BY id ASC
`

// FindSnapshotsByDataElementID returns the snapshots that reference the given id, ordered
// by statement line id. Errors are returned as the driver reports them.
func (d Datasource) FindSnapshotsByDataElementID(ctx context.Context, id int64) ([]model.ReconciliationSnapshot, error) {
	ctx, span := otel.Tracer("Snapshot").Start(ctx, "Fetching snapshots by data element id")
	defer span.End()
	span.SetAttributes(attribute.Int64("element.id", id))

	rows, err := d.Conn.QueryContext(ctx, snapshotsByDataElementQuery, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	defer rows.Close()

	var snapshots []model.ReconciliationSnapshot
	for rows.Next() {
		var snapshot model.ReconciliationSnapshot
		var data []byte
		if err = rows.Scan(&snapshot.StatementLineID, &data); err != nil {
			span.RecordError(err)
			return nil, err
		}
		snapshot.ReconcileData = data
		snapshots = append(snapshots, snapshot)
	}

	if err = rows.Err(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	return snapshots, nil
}

// GetSnapshotByStatementLineID retrieves the snapshot stored on one statement line.
func (d Datasource) GetSnapshotByStatementLineID(ctx context.Context, statementLineID int64) (*model.ReconciliationSnapshot, error) {
	ctx, span := otel.Tracer("Snapshot").Start(ctx, "Fetching snapshot by statement line id")
	defer span.End()

	var data []byte
	snapshot := &model.ReconciliationSnapshot{}
	err := d.Conn.QueryRowContext(ctx, `
		SELECT id, reconcile_data
		FROM fxrecon.statement_lines
		WHERE id = $1
	`, statementLineID).Scan(&snapshot.StatementLineID, &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, "Statement line not found", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve snapshot", err)
	}
	snapshot.ReconcileData = data

	return snapshot, nil
}

// RecordSnapshot creates the statement line if needed and replaces its reconcile_data.
func (d Datasource) RecordSnapshot(ctx context.Context, snapshot model.ReconciliationSnapshot) error {
	ctx, span := otel.Tracer("Snapshot").Start(ctx, "Saving snapshot to db")
	defer span.End()

	_, err := d.Conn.ExecContext(ctx, `
		INSERT INTO fxrecon.statement_lines (id, reconcile_data)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE
		SET reconcile_data = EXCLUDED.reconcile_data, updated_at = NOW()
	`, snapshot.StatementLineID, []byte(snapshot.ReconcileData))
	if err != nil {
		span.RecordError(err)
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "invalid_text_representation" {
			return apierror.NewAPIError(apierror.ErrInvalidInput, "Reconcile data is not valid JSON", err)
		}
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to save snapshot", err)
	}

	return nil
}
