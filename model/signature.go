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
	"fmt"

	"github.com/shopspring/decimal"
)

// LineSignature joins snapshot entries to generated lines. The amount is the absolute
// value rounded to a fixed scale, so textual variants of one amount share a key.
type LineSignature struct {
	AccountID int64
	Amount    string
}

// NewLineSignature builds the signature of an account and amount at the given precision.
func NewLineSignature(accountID int64, amount decimal.Decimal, precision int32) LineSignature {
	return LineSignature{
		AccountID: accountID,
		Amount:    amount.Abs().StringFixed(precision),
	}
}

// String renders the signature in the account|amount form used in logs.
func (s LineSignature) String() string {
	return fmt.Sprintf("%d|%s", s.AccountID, s.Amount)
}

// Signature returns the signature of a snapshot entry, or false when the
// entry lacks the account or the amount.
func (e SnapshotEntry) Signature(precision int32) (LineSignature, bool) {
	if e.AccountID == nil || !e.NetAmount.Valid {
		return LineSignature{}, false
	}
	return NewLineSignature(e.AccountID.ID, e.NetAmount.Decimal, precision), true
}

// Signature returns the signature of a generated line.
func (l GeneratedLine) Signature(precision int32) LineSignature {
	return NewLineSignature(l.AccountID, l.SignatureAmount(), precision)
}
