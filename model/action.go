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

const (
	ReconcileActionXMLID    = "account_reconcile_oca.account_account_reconcile_act_window"
	ReconcileActionType     = "ir.actions.act_window"
	ReconcileActionResModel = "account.account.reconcile"
)

// DomainClause is a [field, operator, value] filter triple.
type DomainClause [3]interface{}

// NewDomainClause builds a domain filter triple.
func NewDomainClause(field, operator string, value interface{}) DomainClause {
	return DomainClause{field, operator, value}
}

// ReconcileAction is the window action a UI dispatcher opens for manual reconciliation.
type ReconcileAction struct {
	ActionID string                 `json:"action_id"`
	XMLID    string                 `json:"xml_id"`
	Type     string                 `json:"type"`
	Name     string                 `json:"name"`
	ResModel string                 `json:"res_model"`
	Domain   []DomainClause         `json:"domain"`
	Context  map[string]interface{} `json:"context"`
}
