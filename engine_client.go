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
	"errors"
	"net/http"
	"time"

	"github.com/blnkfinance/fxrecon/config"
	"github.com/blnkfinance/fxrecon/internal/apierror"
	"github.com/blnkfinance/fxrecon/internal/request"
	"github.com/blnkfinance/fxrecon/model"
)

var ErrEngineNotConfigured = apierror.NewAPIError(apierror.ErrBadRequest, "accounting engine url is not configured", nil)

const prepareExchangeDifferencePath = "/exchange-difference/prepare"

// EngineClient calls the accounting engine over HTTP.
type EngineClient struct {
	baseURL       string
	authorization string
	client        *http.Client
}

// NewEngineClient returns a client for the engine described by cfg, or nil when no url is set.
func NewEngineClient(cfg config.EngineConfig) *EngineClient {
	if cfg.Url == "" {
		return nil
	}
	return &EngineClient{
		baseURL:       cfg.Url,
		authorization: cfg.Authorization,
		client:        &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
	}
}

// PrepareExchangeDifferenceMoveVals posts the amounts to the engine and decodes the prepared move.
func (e *EngineClient) PrepareExchangeDifferenceMoveVals(ctx context.Context, req model.PrepareExchangeDifference) (*model.ExchangeDifferenceMoveVals, error) {
	payload, err := request.ToJsonReq(req)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to encode engine request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+prepareExchangeDifferencePath, payload)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to build engine request", err)
	}
	if e.authorization != "" {
		httpReq.Header.Set("Authorization", e.authorization)
	}

	var moveVals model.ExchangeDifferenceMoveVals
	_, err = request.CallWithClient(e.client, httpReq, &moveVals)
	if err != nil {
		var statusErr *request.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode < http.StatusInternalServerError {
			return nil, apierror.NewAPIError(apierror.ErrBadRequest, "Accounting engine rejected the request", statusErr.Body)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Accounting engine call failed", err)
	}

	return &moveVals, nil
}
