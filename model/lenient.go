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
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// The engine serializes empty relational and char fields as false. These helpers read
// such values as the zero value of the Go type instead of failing the whole document.

func lenientInt64(raw json.RawMessage) int64 {
	var id NullID
	_ = id.UnmarshalJSON(raw)
	return id.Value
}

func lenientString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func lenientDecimal(raw json.RawMessage) decimal.Decimal {
	var d decimal.NullDecimal
	if err := json.Unmarshal(raw, &d); err != nil || !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

// splitObject decodes a JSON object into its raw members.
func splitObject(b []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}
	return fields, nil
}

// mergeObject marshals known and adds the members of extra that known does not define.
func mergeObject(known interface{}, extra map[string]json.RawMessage) ([]byte, error) {
	b, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return b, nil
	}

	fields, err := splitObject(b)
	if err != nil {
		return nil, err
	}
	for key, value := range extra {
		if _, ok := fields[key]; !ok {
			fields[key] = value
		}
	}
	return json.Marshal(fields)
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
