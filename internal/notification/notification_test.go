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

package notification

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/blnkfinance/fxrecon/config"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookURL = "https://hooks.slack.example.com/services/T000/B000/XXX"

func TestNewSlackMessage(t *testing.T) {
	at := time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC)
	msg := newSlackMessage(errors.New("engine unavailable"), at)

	require.Len(t, msg.Blocks, 3)
	assert.Equal(t, "header", msg.Blocks[0].Type)
	assert.Equal(t, "*Error:*\nengine unavailable", msg.Blocks[1].Fields[0].Text)
	assert.Equal(t, "*Time:*\n"+at.Format(time.RFC822), msg.Blocks[2].Fields[0].Text)
}

func TestSlackNotification(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	var received map[string]interface{}
	httpmock.RegisterResponder(http.MethodPost, testWebhookURL, func(req *http.Request) (*http.Response, error) {
		if err := json.NewDecoder(req.Body).Decode(&received); err != nil {
			return httpmock.NewStringResponse(http.StatusBadRequest, "invalid_payload"), nil
		}
		return httpmock.NewStringResponse(http.StatusOK, "ok"), nil
	})

	err := SlackNotification(testWebhookURL, errors.New("boom"))
	assert.NoError(t, err)
	assert.Len(t, received["blocks"], 3)
}

func TestSlackNotification_Rejected(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, testWebhookURL, httpmock.NewStringResponder(http.StatusForbidden, "invalid_token"))

	err := SlackNotification(testWebhookURL, errors.New("boom"))
	assert.Error(t, err)
}

func TestNotifyError(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, testWebhookURL, httpmock.NewStringResponder(http.StatusOK, "ok"))

	config.MockConfig(&config.Configuration{
		Notification: config.NotificationConfig{Slack: config.SlackWebhook{WebhookUrl: testWebhookURL}},
	})
	NotifyError(errors.New("startup failed"))
	assert.Equal(t, 1, httpmock.GetTotalCallCount())

	config.MockConfig(&config.Configuration{})
	NotifyError(errors.New("startup failed"))
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}
