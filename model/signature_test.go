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
package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineSignature(t *testing.T) {
	tests := []struct {
		name      string
		accountID int64
		amount    string
		precision int32
		want      string
	}{
		{name: "negative amount", accountID: 7, amount: "-50", precision: 2, want: "7|50.00"},
		{name: "trailing zero", accountID: 7, amount: "12.50", precision: 2, want: "7|12.50"},
		{name: "short scale", accountID: 7, amount: "12.5", precision: 2, want: "7|12.50"},
		{name: "rounded", accountID: 3, amount: "0.125", precision: 2, want: "3|0.13"},
		{name: "zero precision", accountID: 3, amount: "-9.4", precision: 0, want: "3|9"},
		{name: "three decimal currency", accountID: 7, amount: "-1.231", precision: 3, want: "7|1.231"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewLineSignature(tt.accountID, decimal.RequireFromString(tt.amount), tt.precision)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestSignature_EntryAndLineAgree(t *testing.T) {
	var entry SnapshotEntry
	require.NoError(t, json.Unmarshal([]byte(`{"account_id": [7, "Forex"], "net_amount": -50}`), &entry))

	line := GeneratedLine{AccountID: 7, Debit: decimal.NewFromInt(50), Credit: decimal.Zero}

	entrySig, ok := entry.Signature(DefaultAmountPrecision)
	require.True(t, ok)
	assert.Equal(t, entrySig, line.Signature(DefaultAmountPrecision))
}

func TestSignature_IncompleteEntry(t *testing.T) {
	var entry SnapshotEntry
	require.NoError(t, json.Unmarshal([]byte(`{"net_amount": 5}`), &entry))
	_, ok := entry.Signature(DefaultAmountPrecision)
	assert.False(t, ok)

	require.NoError(t, json.Unmarshal([]byte(`{"account_id": [1, "A"]}`), &entry))
	_, ok = entry.Signature(DefaultAmountPrecision)
	assert.False(t, ok)
}

func TestGeneratedLine_SignatureAmount(t *testing.T) {
	credit := GeneratedLine{Credit: decimal.NewFromFloat(12.5), Debit: decimal.Zero}
	assert.True(t, credit.SignatureAmount().Equal(decimal.NewFromFloat(12.5)))

	debit := GeneratedLine{Credit: decimal.Zero, Debit: decimal.NewFromInt(3)}
	assert.True(t, debit.SignatureAmount().Equal(decimal.NewFromInt(3)))
}

func TestLineCommand_JSON(t *testing.T) {
	var cmd LineCommand
	err := json.Unmarshal([]byte(`[0, 0, {"account_id": 7, "credit": 12.5, "debit": 0, "amount_currency": 0}]`), &cmd)
	require.NoError(t, err)
	require.NotNil(t, cmd.Data)
	assert.Equal(t, LineCommandCreate, cmd.Command)
	assert.Equal(t, int64(7), cmd.Data.AccountID)

	cmd.Data.AnalyticDistribution = AnalyticDistribution{"CC1": json.RawMessage("100")}
	out, err := json.Marshal(cmd)
	require.NoError(t, err)
	assert.JSONEq(t, `[0, 0, {"account_id": 7, "credit": 12.5, "debit": 0, "amount_currency": 0, "analytic_distribution": {"CC1": 100}}]`, string(out))

	var link LineCommand
	require.NoError(t, json.Unmarshal([]byte(`[4, 15, 0]`), &link))
	assert.Nil(t, link.Data)
	assert.Equal(t, int64(15), link.ID)

	assert.Error(t, json.Unmarshal([]byte(`[0, 0]`), &link))
}

func TestNewLineSignature_ThreeDecimalCurrency(t *testing.T) {
	a := decimal.RequireFromString("1.231")
	b := decimal.RequireFromString("1.234")

	assert.Equal(t, NewLineSignature(7, a, 2), NewLineSignature(7, b, 2))
	assert.NotEqual(t, NewLineSignature(7, a, 3), NewLineSignature(7, b, 3))
}
