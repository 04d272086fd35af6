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
	"fmt"
	"net/http"
	"time"

	"github.com/blnkfinance/fxrecon/config"
	"github.com/blnkfinance/fxrecon/internal/request"
	"github.com/sirupsen/logrus"
)

type slackText struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

type slackBlock struct {
	Type   string      `json:"type"`
	Text   *slackText  `json:"text,omitempty"`
	Fields []slackText `json:"fields,omitempty"`
}

type slackMessage struct {
	Blocks []slackBlock `json:"blocks"`
}

func newSlackMessage(err error, at time.Time) slackMessage {
	return slackMessage{Blocks: []slackBlock{
		{Type: "header", Text: &slackText{Type: "plain_text", Text: "Error From Fxrecon 🐞", Emoji: true}},
		{Type: "section", Fields: []slackText{{Type: "mrkdwn", Text: fmt.Sprintf("*Error:*\n%v", err)}}},
		{Type: "section", Fields: []slackText{{Type: "mrkdwn", Text: fmt.Sprintf("*Time:*\n%v", at.Format(time.RFC822))}}},
	}}
}

// SlackNotification posts err to the Slack webhook at webhookURL.
func SlackNotification(webhookURL string, err error) error {
	payload, reqErr := request.ToJsonReq(newSlackMessage(err, time.Now()))
	if reqErr != nil {
		return reqErr
	}

	req, reqErr := http.NewRequest(http.MethodPost, webhookURL, payload)
	if reqErr != nil {
		return reqErr
	}

	// Slack answers a plain "ok"; only the status matters.
	resp, reqErr := http.DefaultClient.Do(req)
	if reqErr != nil {
		return reqErr
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return &request.StatusError{StatusCode: resp.StatusCode}
	}
	return nil
}

// NotifyError logs systemError and forwards it to Slack when a webhook is configured.
// Delivery failures are logged and never returned.
func NotifyError(systemError error) {
	logrus.Error(systemError)

	conf, err := config.Fetch()
	if err != nil || conf.Notification.Slack.WebhookUrl == "" {
		return
	}

	if err := SlackNotification(conf.Notification.Slack.WebhookUrl, systemError); err != nil {
		logrus.WithError(err).Warn("failed to send slack notification")
	}
}
