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
	"fmt"

	"github.com/shopspring/decimal"
)

// LineCommandCreate is the line-creation command the accounting engine uses for new journal lines.
const LineCommandCreate = 0

// AmountPair is one entry of the engine's amounts_list. It is forwarded untouched.
type AmountPair struct {
	AmountResidual         decimal.Decimal `json:"amount_residual"`
	AmountResidualCurrency decimal.Decimal `json:"amount_residual_currency"`
}

type MoveRef struct {
	ID int64 `json:"id"`
}

// ExchangePairing describes one exchange-difference reconciliation the engine is about to create.
type ExchangePairing struct {
	Move     MoveRef `json:"move"`
	Sequence int     `json:"sequence"`
}

// GeneratedLine is a journal line descriptor that has not been persisted yet.
// Keys the engine sends beyond the typed fields are kept in Extra and written back.
type GeneratedLine struct {
	Name                 string               `json:"name,omitempty"`
	AccountID            int64                `json:"account_id"`
	PartnerID            int64                `json:"partner_id,omitempty"`
	CurrencyID           int64                `json:"currency_id,omitempty"`
	AmountCurrency       decimal.Decimal      `json:"amount_currency"`
	Debit                decimal.Decimal      `json:"debit"`
	Credit               decimal.Decimal      `json:"credit"`
	AnalyticDistribution AnalyticDistribution `json:"analytic_distribution,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

type generatedLineFields GeneratedLine

func (l *GeneratedLine) UnmarshalJSON(b []byte) error {
	fields, err := splitObject(b)
	if err != nil {
		return err
	}

	line := GeneratedLine{}
	for key, raw := range fields {
		switch key {
		case "name":
			line.Name = lenientString(raw)
		case "account_id":
			line.AccountID = lenientInt64(raw)
		case "partner_id":
			line.PartnerID = lenientInt64(raw)
		case "currency_id":
			line.CurrencyID = lenientInt64(raw)
		case "amount_currency":
			line.AmountCurrency = lenientDecimal(raw)
		case "debit":
			line.Debit = lenientDecimal(raw)
		case "credit":
			line.Credit = lenientDecimal(raw)
		case "analytic_distribution":
			_ = line.AnalyticDistribution.UnmarshalJSON(raw)
		default:
			if line.Extra == nil {
				line.Extra = map[string]json.RawMessage{}
			}
			line.Extra[key] = raw
		}
	}
	*l = line
	return nil
}

func (l GeneratedLine) MarshalJSON() ([]byte, error) {
	return mergeObject(generatedLineFields(l), l.Extra)
}

// SignatureAmount returns the credit when it is positive and the debit otherwise.
func (l GeneratedLine) SignatureAmount() decimal.Decimal {
	if l.Credit.IsPositive() {
		return l.Credit
	}
	return l.Debit
}

// LineCommand is a line-creation tuple. On the wire it is the array [command, id, data].
// Data is set when the third element is an object; any other payload, such as the id
// list of a replace command, is kept verbatim in RawData.
type LineCommand struct {
	Command int
	ID      int64
	Data    *GeneratedLine
	RawData json.RawMessage
}

func (c LineCommand) MarshalJSON() ([]byte, error) {
	var data interface{} = c.Data
	if c.Data == nil && len(c.RawData) > 0 {
		data = c.RawData
	}
	return json.Marshal([]interface{}{c.Command, c.ID, data})
}

func (c *LineCommand) UnmarshalJSON(b []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(b, &parts); err != nil {
		return err
	}
	if len(parts) != 3 {
		return fmt.Errorf("line command must have 3 elements, got %d", len(parts))
	}
	if err := json.Unmarshal(parts[0], &c.Command); err != nil {
		return fmt.Errorf("invalid line command: %w", err)
	}
	c.ID = lenientInt64(parts[1])

	c.Data = nil
	c.RawData = nil
	if !isJSONObject(parts[2]) {
		c.RawData = parts[2]
		return nil
	}
	var data GeneratedLine
	if err := json.Unmarshal(parts[2], &data); err != nil {
		return fmt.Errorf("invalid line data: %w", err)
	}
	c.Data = &data
	return nil
}

// NewCreateLineCommand wraps a line descriptor in a creation tuple.
func NewCreateLineCommand(line GeneratedLine) LineCommand {
	return LineCommand{Command: LineCommandCreate, Data: &line}
}

// MoveVals holds the values of the exchange difference move. Untyped keys are kept in Extra.
type MoveVals struct {
	MoveType  string        `json:"move_type,omitempty"`
	Ref       string        `json:"ref,omitempty"`
	JournalID int64         `json:"journal_id,omitempty"`
	Date      string        `json:"date,omitempty"`
	LineIDs   []LineCommand `json:"line_ids"`

	Extra map[string]json.RawMessage `json:"-"`
}

type moveValsFields MoveVals

func (m *MoveVals) UnmarshalJSON(b []byte) error {
	fields, err := splitObject(b)
	if err != nil {
		return err
	}

	vals := MoveVals{}
	for key, raw := range fields {
		switch key {
		case "move_type":
			vals.MoveType = lenientString(raw)
		case "ref":
			vals.Ref = lenientString(raw)
		case "journal_id":
			vals.JournalID = lenientInt64(raw)
		case "date":
			vals.Date = lenientString(raw)
		case "line_ids":
			if err := json.Unmarshal(raw, &vals.LineIDs); err != nil {
				return fmt.Errorf("invalid line_ids: %w", err)
			}
		default:
			if vals.Extra == nil {
				vals.Extra = map[string]json.RawMessage{}
			}
			vals.Extra[key] = raw
		}
	}
	*m = vals
	return nil
}

func (m MoveVals) MarshalJSON() ([]byte, error) {
	return mergeObject(moveValsFields(m), m.Extra)
}

// ExchangeDifferenceMoveVals is what the engine's "prepare exchange difference move values" returns.
type ExchangeDifferenceMoveVals struct {
	ToReconcile []ExchangePairing `json:"to_reconcile"`
	MoveVals    MoveVals          `json:"move_vals"`
}

// PrepareExchangeDifference is the request forwarded to the accounting engine.
type PrepareExchangeDifference struct {
	AmountsList  []AmountPair `json:"amounts_list"`
	CompanyID    int64        `json:"company_id,omitempty"`
	ExchangeDate string       `json:"exchange_date,omitempty"`
}
