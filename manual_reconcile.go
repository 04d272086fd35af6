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
	"maps"

	"github.com/blnkfinance/fxrecon/internal/apierror"
	"github.com/blnkfinance/fxrecon/model"
	"go.opentelemetry.io/otel"
)

const (
	reconcileActionName          = "Reconcile"
	defaultAccountMoveLinesKey   = "default_account_move_lines"
	errMultipleAccountsReconcile = "You can only reconcile journal items belonging to the same account."
)

// ActionReconcileManually builds the window action that opens the manual reconciliation
// view for the given journal items.
//
// Parameters:
// - ctx context.Context: The context for the operation.
// - lineIDs []int64: The journal items selected by the user.
// - callerContext map[string]interface{}: The UI context of the caller, copied into the action.
//
// Returns:
// - *model.ReconcileAction: The action, or nil when no item was found.
// - error: A validation error when the items span several accounts, or a datasource error.
func (r *Recon) ActionReconcileManually(ctx context.Context, lineIDs []int64, callerContext map[string]interface{}) (*model.ReconcileAction, error) {
	ctx, span := otel.Tracer("fxrecon.reconcile").Start(ctx, "ActionReconcileManually")
	defer span.End()

	lines, err := r.datasource.GetMoveLinesByIDs(ctx, lineIDs)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}

	accountID, partners, unreconciled, ok := summarizeMoveLines(lines)
	if !ok {
		return nil, apierror.NewValidationError(errMultipleAccountsReconcile)
	}

	domain := []model.DomainClause{model.NewDomainClause("account_id", "=", accountID)}
	if len(partners) == 1 {
		account, err := r.datasource.GetAccountByID(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if account.IsPartnerScoped() {
			domain = append(domain, model.NewDomainClause("partner_id", "=", partners[0]))
		}
	}

	actionContext := maps.Clone(callerContext)
	if actionContext == nil {
		actionContext = map[string]interface{}{}
	}
	actionContext[defaultAccountMoveLinesKey] = unreconciled

	return &model.ReconcileAction{
		ActionID: model.GenerateUUIDWithSuffix("act"),
		XMLID:    model.ReconcileActionXMLID,
		Type:     model.ReconcileActionType,
		Name:     reconcileActionName,
		ResModel: model.ReconcileActionResModel,
		Domain:   domain,
		Context:  actionContext,
	}, nil
}

// summarizeMoveLines returns the single account shared by lines, their distinct non empty
// partners in first seen order and the ids of the unreconciled ones. ok is false when
// the lines span several accounts.
func summarizeMoveLines(lines []model.MoveLine) (accountID int64, partners []int64, unreconciled []int64, ok bool) {
	accountID = lines[0].AccountID
	seenPartners := map[int64]bool{}
	unreconciled = []int64{}

	for _, line := range lines {
		if line.AccountID != accountID {
			return 0, nil, nil, false
		}
		if line.PartnerID != 0 && !seenPartners[line.PartnerID] {
			seenPartners[line.PartnerID] = true
			partners = append(partners, line.PartnerID)
		}
		if !line.Reconciled {
			unreconciled = append(unreconciled, line.ID)
		}
	}
	return accountID, partners, unreconciled, true
}
