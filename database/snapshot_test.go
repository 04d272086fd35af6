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
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/blnkfinance/fxrecon/internal/apierror"
	"github.com/blnkfinance/fxrecon/model"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSnapshotsByDataElementID_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}
	ctx := context.TODO()

	first := `{"data": [{"id": 42, "is_exchange_counterpart": true}]}`
	second := `{"data": [{"id": "42"}]}`

	mock.ExpectQuery("SELECT id, reconcile_data").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reconcile_data"}).
			AddRow(int64(3), []byte(first)).
			AddRow(int64(8), []byte(second)))

	snapshots, err := ds.FindSnapshotsByDataElementID(ctx, 42)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, int64(3), snapshots[0].StatementLineID)
	assert.JSONEq(t, first, string(snapshots[0].ReconcileData))
	assert.Equal(t, int64(8), snapshots[1].StatementLineID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindSnapshotsByDataElementID_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	mock.ExpectQuery("SELECT id, reconcile_data").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reconcile_data"}))

	snapshots, err := ds.FindSnapshotsByDataElementID(context.TODO(), 7)
	assert.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestFindSnapshotsByDataElementID_ErrorPassesThrough(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}
	queryErr := errors.New("connection reset")

	mock.ExpectQuery("SELECT id, reconcile_data").
		WithArgs(int64(7)).
		WillReturnError(queryErr)

	_, err = ds.FindSnapshotsByDataElementID(context.TODO(), 7)
	assert.Same(t, queryErr, err)
}

func TestSnapshotsByDataElementQuery_GuardsMalformedIDs(t *testing.T) {
	assert.Contains(t, snapshotsByDataElementQuery, `jsonb_typeof(reconcile_data->'data') = 'array'`)
	assert.Contains(t, snapshotsByDataElementQuery, `CASE WHEN (elem->>'id') ~ '^\d+$' THEN (elem->>'id')::numeric END = $1`)
	assert.Contains(t, snapshotsByDataElementQuery, "ORDER BY id ASC")
}

func TestGetSnapshotByStatementLineID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	mock.ExpectQuery("SELECT id, reconcile_data").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reconcile_data"}).AddRow(int64(5), []byte(`{"data": []}`)))

	snapshot, err := ds.GetSnapshotByStatementLineID(context.TODO(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), snapshot.StatementLineID)
	assert.JSONEq(t, `{"data": []}`, string(snapshot.ReconcileData))
}

func TestGetSnapshotByStatementLineID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	mock.ExpectQuery("SELECT id, reconcile_data").
		WithArgs(int64(5)).
		WillReturnError(sql.ErrNoRows)

	_, err = ds.GetSnapshotByStatementLineID(context.TODO(), 5)
	assert.Error(t, err)
	assert.Equal(t, apierror.ErrNotFound, err.(apierror.APIError).Code)
}

func TestRecordSnapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}
	data := []byte(`{"data": [{"id": 1}]}`)

	mock.ExpectExec("INSERT INTO fxrecon.statement_lines").
		WithArgs(int64(9), data).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = ds.RecordSnapshot(context.TODO(), model.ReconciliationSnapshot{StatementLineID: 9, ReconcileData: data})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordSnapshot_InvalidJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}
	data := []byte(`{"data": [`)

	mock.ExpectExec("INSERT INTO fxrecon.statement_lines").
		WithArgs(int64(9), data).
		WillReturnError(&pq.Error{Code: "22P02", Message: "invalid input syntax for type json"})

	err = ds.RecordSnapshot(context.TODO(), model.ReconciliationSnapshot{StatementLineID: 9, ReconcileData: data})
	assert.Error(t, err)
	assert.Equal(t, apierror.ErrInvalidInput, err.(apierror.APIError).Code)
}

func TestRecordSnapshot_Fail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	mock.ExpectExec("INSERT INTO fxrecon.statement_lines").
		WillReturnError(errors.New("failed to insert"))

	err = ds.RecordSnapshot(context.TODO(), model.ReconciliationSnapshot{StatementLineID: 9, ReconcileData: []byte(`{}`)})
	assert.Error(t, err)
	assert.Equal(t, apierror.ErrInternalServer, err.(apierror.APIError).Code)
}
