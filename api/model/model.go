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
	"errors"
	"time"

	"github.com/blnkfinance/fxrecon/model"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type PrepareExchangeDifference struct {
	AmountsList  []model.AmountPair `json:"amounts_list"`
	CompanyID    int64              `json:"company_id"`
	ExchangeDate string             `json:"exchange_date"`
}

type ReconcileAction struct {
	LineIDs []int64                `json:"line_ids"`
	Context map[string]interface{} `json:"context"`
}

func validateDateFormat(format, value string) error {
	_, err := time.Parse(format, value)
	if err != nil {
		return errors.New("invalid date format. expected " + format)
	}
	return nil
}

func (p *PrepareExchangeDifference) ValidatePrepareExchangeDifference() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.AmountsList, validation.Required),
		validation.Field(&p.CompanyID, validation.Required, validation.Min(int64(1))),
		validation.Field(&p.ExchangeDate, validation.When(p.ExchangeDate != "", validation.By(func(value interface{}) error {
			return validateDateFormat(time.DateOnly, value.(string))
		}))),
	)
}

// ExchangeDateValue returns the parsed exchange date, or nil when none was sent.
func (p *PrepareExchangeDifference) ExchangeDateValue() *time.Time {
	if p.ExchangeDate == "" {
		return nil
	}
	date, err := time.Parse(time.DateOnly, p.ExchangeDate)
	if err != nil {
		return nil
	}
	return &date
}

func (r *ReconcileAction) ValidateReconcileAction() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.LineIDs, validation.NotNil, validation.Each(validation.Min(int64(1)))),
	)
}

// ValidateExchangeDifferenceMoveVals checks a prepared move before it is enriched.
func ValidateExchangeDifferenceMoveVals(m *model.ExchangeDifferenceMoveVals) error {
	return validation.ValidateStruct(m,
		validation.Field(&m.ToReconcile, validation.Each(validation.By(func(value interface{}) error {
			pairing, _ := value.(model.ExchangePairing)
			if pairing.Move.ID <= 0 {
				return errors.New("move id must be a positive integer")
			}
			return nil
		}))),
		validation.Field(&m.MoveVals, validation.By(func(value interface{}) error {
			moveVals, _ := value.(model.MoveVals)
			if moveVals.LineIDs == nil {
				return errors.New("line_ids is required")
			}
			return nil
		})),
	)
}

// ValidateReconcileData checks that a statement line document is a JSON object.
func ValidateReconcileData(raw []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		return errors.New("reconcile data must be a JSON object")
	}
	return nil
}
