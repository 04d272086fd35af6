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
package mocks

import (
	"context"

	"github.com/blnkfinance/fxrecon/model"
	"github.com/stretchr/testify/mock"
)

// MockDataSource is a mock implementation of the IDataSource interface
type MockDataSource struct {
	mock.Mock
}

// Snapshot methods

func (m *MockDataSource) FindSnapshotsByDataElementID(ctx context.Context, id int64) ([]model.ReconciliationSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReconciliationSnapshot), args.Error(1)
}

func (m *MockDataSource) GetSnapshotByStatementLineID(ctx context.Context, statementLineID int64) (*model.ReconciliationSnapshot, error) {
	args := m.Called(ctx, statementLineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReconciliationSnapshot), args.Error(1)
}

func (m *MockDataSource) RecordSnapshot(ctx context.Context, snapshot model.ReconciliationSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

// Move line methods

func (m *MockDataSource) GetMoveLinesByIDs(ctx context.Context, ids []int64) ([]model.MoveLine, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MoveLine), args.Error(1)
}

// Account methods

func (m *MockDataSource) GetAccountByID(ctx context.Context, id int64) (*model.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}
