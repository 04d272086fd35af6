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
	"time"

	"github.com/blnkfinance/fxrecon/model"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// ExchangeEngine is the accounting engine that computes exchange difference moves.
type ExchangeEngine interface {
	PrepareExchangeDifferenceMoveVals(ctx context.Context, req model.PrepareExchangeDifference) (*model.ExchangeDifferenceMoveVals, error)
}

// ExchangeAnalyticLookup maps a line signature to the analytic distribution of the
// exchange counterpart it was computed from. A nil distribution is a valid value.
type ExchangeAnalyticLookup map[model.LineSignature]model.AnalyticDistribution

// PrepareExchangeDifferenceMoveVals asks the engine for the exchange difference move of
// amountsList and copies analytic distributions from the originating reconciliation
// snapshots onto the generated lines.
//
// Parameters:
// - ctx context.Context: The context for the operation.
// - amountsList []model.AmountPair: The amounts to reconcile, forwarded to the engine.
// - companyID int64: The company the move belongs to.
// - exchangeDate *time.Time: The exchange date, or nil to let the engine decide.
//
// Returns:
// - *model.ExchangeDifferenceMoveVals: The engine result with analytic distributions applied.
// - error: An error returned by the engine or by a snapshot query.
func (r *Recon) PrepareExchangeDifferenceMoveVals(ctx context.Context, amountsList []model.AmountPair, companyID int64, exchangeDate *time.Time) (*model.ExchangeDifferenceMoveVals, error) {
	ctx, span := otel.Tracer("fxrecon.exchange").Start(ctx, "PrepareExchangeDifferenceMoveVals")
	defer span.End()

	if r.engine == nil {
		return nil, ErrEngineNotConfigured
	}

	req := model.PrepareExchangeDifference{AmountsList: amountsList, CompanyID: companyID}
	if exchangeDate != nil {
		req.ExchangeDate = exchangeDate.Format(time.DateOnly)
	}

	moveVals, err := r.engine.PrepareExchangeDifferenceMoveVals(ctx, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := r.EnrichExchangeDifferenceMoveVals(ctx, moveVals); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return moveVals, nil
}

// EnrichExchangeDifferenceMoveVals builds the analytic lookup for every pairing of moveVals
// and then applies it to the generated lines in place.
func (r *Recon) EnrichExchangeDifferenceMoveVals(ctx context.Context, moveVals *model.ExchangeDifferenceMoveVals) error {
	if moveVals == nil {
		return nil
	}

	lookup, err := r.BuildExchangeAnalyticLookup(ctx, moveVals.ToReconcile)
	if err != nil {
		return err
	}

	enriched := applyExchangeAnalytic(moveVals.MoveVals.LineIDs, lookup, r.precision)
	logrus.WithFields(logrus.Fields{
		"pairings":   len(moveVals.ToReconcile),
		"signatures": len(lookup),
		"lines":      len(moveVals.MoveVals.LineIDs),
		"enriched":   enriched,
	}).Debug("exchange difference lines enriched")
	return nil
}

// BuildExchangeAnalyticLookup finds, for each pairing in order, the exchange counterpart
// recorded in the reconciliation snapshots and stores its analytic distribution under
// its signature. A later pairing with the same signature replaces the earlier value.
// Pairings without a snapshot or counterpart are skipped; only query errors are returned.
func (r *Recon) BuildExchangeAnalyticLookup(ctx context.Context, pairings []model.ExchangePairing) (ExchangeAnalyticLookup, error) {
	ctx, span := otel.Tracer("fxrecon.exchange").Start(ctx, "BuildExchangeAnalyticLookup")
	defer span.End()

	lookup := ExchangeAnalyticLookup{}
	for _, pairing := range pairings {
		entry, found, err := r.exchangeCounterpart(ctx, pairing.Move.ID)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if !found {
			continue
		}

		signature, ok := entry.Signature(r.precision)
		if !ok {
			logrus.WithField("move_id", pairing.Move.ID).Warn("exchange counterpart has no account or amount, skipping")
			continue
		}
		lookup[signature] = entry.AnalyticDistribution
	}

	span.SetAttributes(attribute.Int("lookup.size", len(lookup)))
	return lookup, nil
}

// exchangeCounterpart returns the exchange counterpart of moveID from the first snapshot
// that references it. A snapshot that cannot be parsed counts as no match.
func (r *Recon) exchangeCounterpart(ctx context.Context, moveID int64) (model.SnapshotEntry, bool, error) {
	snapshots, err := r.datasource.FindSnapshotsByDataElementID(ctx, moveID)
	if err != nil {
		return model.SnapshotEntry{}, false, err
	}
	if len(snapshots) == 0 {
		return model.SnapshotEntry{}, false, nil
	}

	snapshot := snapshots[0]
	doc, err := model.ParseSnapshotDocument(snapshot.ReconcileData)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"move_id":           moveID,
			"statement_line_id": snapshot.StatementLineID,
		}).WithError(err).Warn("skipping malformed reconciliation snapshot")
		return model.SnapshotEntry{}, false, nil
	}

	if doc.Skipped > 0 {
		logrus.WithFields(logrus.Fields{
			"move_id":           moveID,
			"statement_line_id": snapshot.StatementLineID,
			"skipped":           doc.Skipped,
		}).Warn("ignoring undecodable reconciliation snapshot entries")
	}

	entry, found := doc.ExchangeCounterpart(moveID)
	return entry, found, nil
}

// applyExchangeAnalytic sets the analytic distribution of every line whose signature has
// a non empty distribution in lookup. It returns the number of lines it changed.
func applyExchangeAnalytic(lines []model.LineCommand, lookup ExchangeAnalyticLookup, precision int32) int {
	if len(lookup) == 0 {
		return 0
	}

	enriched := 0
	for _, line := range lines {
		if line.Data == nil {
			continue
		}
		distribution := lookup[line.Data.Signature(precision)]
		if len(distribution) == 0 {
			continue
		}
		line.Data.AnalyticDistribution = maps.Clone(distribution)
		enriched++
	}
	return enriched
}
