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
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/blnkfinance/fxrecon/internal/apierror"
	"github.com/blnkfinance/fxrecon/model"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

// accountCacheTTL bounds how long account metadata is served from the cache.
const accountCacheTTL = 10 * time.Minute

func accountCacheKey(id int64) string {
	return fmt.Sprintf("account:%d", id)
}

// GetAccountByID retrieves an account. When a cache is configured it is consulted first
// and filled on a miss; cache failures fall back to the database.
func (d Datasource) GetAccountByID(ctx context.Context, id int64) (*model.Account, error) {
	ctx, span := otel.Tracer("Account").Start(ctx, "Fetching account by id")
	defer span.End()

	if d.Cache != nil {
		cached := &model.Account{}
		err := d.Cache.Get(ctx, accountCacheKey(id), cached)
		if err != nil {
			logrus.WithError(err).WithField("account_id", id).Warn("account cache read failed")
		} else if cached.ID == id {
			return cached, nil
		}
	}

	account := &model.Account{}
	err := d.Conn.QueryRowContext(ctx, `
		SELECT id, code, name, account_type, reconcile
		FROM fxrecon.accounts
		WHERE id = $1
	`, id).Scan(&account.ID, &account.Code, &account.Name, &account.AccountType, &account.Reconcile)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, "Account not found", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve account", err)
	}

	if d.Cache != nil {
		if err := d.Cache.Set(ctx, accountCacheKey(id), account, accountCacheTTL); err != nil {
			logrus.WithError(err).WithField("account_id", id).Warn("account cache write failed")
		}
	}

	return account, nil
}
