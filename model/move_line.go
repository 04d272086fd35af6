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

// Account types that allow a partner filter on the manual reconciliation action.
const (
	AccountTypeReceivable = "asset_receivable"
	AccountTypePayable    = "liability_payable"
)

type Account struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	AccountType string `json:"account_type"`
	Reconcile   bool   `json:"reconcile"`
}

// IsPartnerScoped reports whether reconciliation on the account is done per partner.
func (a Account) IsPartnerScoped() bool {
	return a.AccountType == AccountTypeReceivable || a.AccountType == AccountTypePayable
}

// MoveLine is a persisted journal item.
type MoveLine struct {
	ID         int64  `json:"id"`
	MoveID     int64  `json:"move_id"`
	AccountID  int64  `json:"account_id"`
	PartnerID  int64  `json:"partner_id,omitempty"`
	Name       string `json:"name"`
	Reconciled bool   `json:"reconciled"`
}
