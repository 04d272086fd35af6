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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// AnalyticDistribution maps an analytic account identifier to its share of a line.
// Shares are kept as raw JSON so they are written back exactly as they were read.
type AnalyticDistribution map[string]json.RawMessage

// UnmarshalJSON accepts any JSON value. Anything but an object (false, null, a string,
// an array) is read as an empty distribution rather than rejected.
func (d *AnalyticDistribution) UnmarshalJSON(b []byte) error {
	var shares map[string]json.RawMessage
	if err := json.Unmarshal(b, &shares); err != nil {
		*d = nil
		return nil
	}
	*d = shares
	return nil
}

// ReconciliationSnapshot is the reconcile_data document persisted on a bank statement line.
type ReconciliationSnapshot struct {
	StatementLineID int64           `json:"statement_line_id"`
	ReconcileData   json.RawMessage `json:"reconcile_data"`
}

// NullID holds an identifier read from a loosely typed document.
// Anything that is not an integral JSON number leaves it invalid.
type NullID struct {
	Value int64
	Valid bool
}

func (n *NullID) UnmarshalJSON(b []byte) error {
	*n = NullID{}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	num, ok := v.(json.Number)
	if !ok {
		return nil
	}
	if i, err := num.Int64(); err == nil {
		*n = NullID{Value: i, Valid: true}
		return nil
	}
	d, err := decimal.NewFromString(num.String())
	if err == nil && d.IsInteger() {
		*n = NullID{Value: d.IntPart(), Valid: true}
	}
	return nil
}

func (n NullID) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Equals reports whether the identifier is set and equal to id.
func (n NullID) Equals(id int64) bool {
	return n.Valid && n.Value == id
}

// AccountRef is the [id, display_name] pair the reconciliation widget stores for an account.
type AccountRef struct {
	ID   int64
	Name string
}

func (a *AccountRef) UnmarshalJSON(b []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(b, &parts); err != nil {
		return fmt.Errorf("account reference must be an array: %w", err)
	}
	if len(parts) == 0 {
		return errors.New("account reference is empty")
	}
	var id NullID
	_ = id.UnmarshalJSON(parts[0])
	if !id.Valid {
		return fmt.Errorf("account reference has a non numeric id: %s", parts[0])
	}
	a.ID = id.Value
	a.Name = ""
	if len(parts) > 1 {
		_ = json.Unmarshal(parts[1], &a.Name)
	}
	return nil
}

func (a AccountRef) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{a.ID, a.Name})
}

// SnapshotEntry is one element of a snapshot's data array.
type SnapshotEntry struct {
	ID                     NullID               `json:"id"`
	IsExchangeCounterpart  bool                 `json:"is_exchange_counterpart"`
	OriginalExchangeLineID NullID               `json:"original_exchange_line_id"`
	AccountID              *AccountRef          `json:"account_id"`
	NetAmount              decimal.NullDecimal  `json:"net_amount"`
	AnalyticDistribution   AnalyticDistribution `json:"analytic_distribution"`
}

// IsCounterpartOf reports whether the entry is the exchange counterpart created for the given move.
func (e SnapshotEntry) IsCounterpartOf(moveID int64) bool {
	return e.IsExchangeCounterpart && e.OriginalExchangeLineID.Equals(moveID)
}

// SnapshotDocument is the parsed form of ReconciliationSnapshot.ReconcileData.
type SnapshotDocument struct {
	Data []SnapshotEntry `json:"data"`
	// Skipped counts data elements that could not be decoded as entries.
	Skipped int `json:"-"`
}

var ErrMalformedSnapshot = errors.New("malformed reconciliation snapshot")

// ParseSnapshotDocument decodes a snapshot document. Elements of the data array are
// decoded one by one and the ones that do not fit the entry shape are skipped.
func ParseSnapshotDocument(raw []byte) (SnapshotDocument, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return SnapshotDocument{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	doc := SnapshotDocument{}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return doc, nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(envelope.Data, &elements); err != nil {
		return SnapshotDocument{}, fmt.Errorf("%w: data is not an array", ErrMalformedSnapshot)
	}

	for _, element := range elements {
		var entry SnapshotEntry
		if err := json.Unmarshal(element, &entry); err != nil {
			doc.Skipped++
			continue
		}
		doc.Data = append(doc.Data, entry)
	}
	return doc, nil
}

// ExchangeCounterpart returns the first entry that is the exchange counterpart of moveID.
func (d SnapshotDocument) ExchangeCounterpart(moveID int64) (SnapshotEntry, bool) {
	for _, entry := range d.Data {
		if entry.IsCounterpartOf(moveID) {
			return entry, true
		}
	}
	return SnapshotEntry{}, false
}
