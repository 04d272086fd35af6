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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/blnkfinance/fxrecon"
	"github.com/blnkfinance/fxrecon/model"
	"github.com/spf13/cobra"
)

// parseMoveIDs turns command arguments into exchange pairings, keeping their order.
func parseMoveIDs(args []string) ([]model.ExchangePairing, error) {
	pairings := make([]model.ExchangePairing, 0, len(args))
	for i, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid move id %q", arg)
		}
		pairings = append(pairings, model.ExchangePairing{Move: model.MoveRef{ID: id}, Sequence: i + 1})
	}
	return pairings, nil
}

// printLookup writes one "account|amount distribution" line per signature, sorted by signature.
func printLookup(w io.Writer, lookup fxrecon.ExchangeAnalyticLookup) error {
	signatures := make([]model.LineSignature, 0, len(lookup))
	for signature := range lookup {
		signatures = append(signatures, signature)
	}
	sort.Slice(signatures, func(i, j int) bool {
		return signatures[i].String() < signatures[j].String()
	})

	for _, signature := range signatures {
		distribution, err := json.Marshal(lookup[signature])
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", signature, distribution); err != nil {
			return err
		}
	}
	return nil
}

// lookupCommands prints the analytic lookup that would be applied for the given moves.
func lookupCommands(app *fxreconInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <move-id>...",
		Short: "print the analytic distributions recorded for exchange difference moves",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairings, err := parseMoveIDs(args)
			if err != nil {
				return err
			}

			lookup, err := app.recon.BuildExchangeAnalyticLookup(context.Background(), pairings)
			if err != nil {
				return err
			}
			return printLookup(cmd.OutOrStdout(), lookup)
		},
	}

	return cmd
}

// enrichMoveValsFile reads a prepared move from path and applies the analytic lookup to it.
func enrichMoveValsFile(ctx context.Context, recon *fxrecon.Recon, path string, w io.Writer) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var moveVals model.ExchangeDifferenceMoveVals
	if err := json.Unmarshal(raw, &moveVals); err != nil {
		return fmt.Errorf("invalid move values in %s: %w", path, err)
	}

	if err := recon.EnrichExchangeDifferenceMoveVals(ctx, &moveVals); err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(moveVals)
}

// enrichCommands enriches a prepared exchange difference move stored in a JSON file.
func enrichCommands(app *fxreconInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enrich <file>",
		Short: "apply analytic distributions to a prepared exchange difference move",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return enrichMoveValsFile(context.Background(), app.recon, args[0], cmd.OutOrStdout())
		},
	}

	return cmd
}
