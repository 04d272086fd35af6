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

package database

import (
	"context"

	"github.com/blnkfinance/fxrecon/internal/apierror"
	"github.com/blnkfinance/fxrecon/model"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
)

// GetMoveLinesByIDs retrieves journal items, keeping the order of ids. Unknown ids are ignored.
func (d Datasource) GetMoveLinesByIDs(ctx context.Context, ids []int64) ([]model.MoveLine, error) {
	ctx, span := otel.Tracer("MoveLine").Start(ctx, "Fetching move lines by ids")
	defer span.End()

	lines := []model.MoveLine{}
	if len(ids) == 0 {
		return lines, nil
	}

	rows, err := d.Conn.QueryContext(ctx, `
		SELECT id, move_id, account_id, COALESCE(partner_id, 0), name, reconciled
		FROM fxrecon.move_lines
		WHERE id = ANY($1::bigint[])
		ORDER BY array_position($1::bigint[], id)
	`, pq.Array(ids))
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve move lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		line := model.MoveLine{}
		err = rows.Scan(&line.ID, &line.MoveID, &line.AccountID, &line.PartnerID, &line.Name, &line.Reconciled)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan move line data", err)
		}
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over move lines", err)
	}

	return lines, nil
}
