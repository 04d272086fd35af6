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
package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blnkfinance/fxrecon/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/wacul/ptr"
)

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func serve(router *gin.Engine, path, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = remoteAddr
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestSecretKeyAuthMiddleware(t *testing.T) {
	tests := []struct {
		name         string
		secretKey    string
		header       string
		expectedCode int
		errorCode    string
	}{
		{name: "Valid key", secretKey: "master-key", header: "master-key", expectedCode: http.StatusOK},
		{name: "Invalid key", secretKey: "master-key", header: "wrong", expectedCode: http.StatusUnauthorized, errorCode: "UNAUTHORIZED"},
		{name: "Missing key", secretKey: "master-key", header: "", expectedCode: http.StatusUnauthorized, errorCode: "UNAUTHORIZED"},
		{name: "Server key not configured", secretKey: "", header: "anything", expectedCode: http.StatusInternalServerError, errorCode: "SERVER_MISCONFIGURED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config.MockConfig(&config.Configuration{Server: config.ServerConfig{Secure: true, SecretKey: tt.secretKey}})
			router := newTestRouter(SecretKeyAuthMiddleware())

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set(SecretKeyHeader, tt.header)
			}
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			assert.Equal(t, tt.expectedCode, resp.Code)
			if tt.errorCode != "" {
				var body map[string]string
				assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
				assert.Equal(t, tt.errorCode, body["code"])
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	conf := &config.Configuration{RateLimit: config.RateLimitConfig{
		RequestsPerSecond:  ptr.Float64(1),
		Burst:              ptr.Int(2),
		CleanupIntervalSec: ptr.Int(60),
	}}
	router := newTestRouter(RateLimitMiddleware(conf))

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = serve(router, "/ping", "10.0.0.1:1234")
		codes = append(codes, last.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(last.Body.Bytes(), &body))
	assert.Equal(t, "RATE_LIMITED", body["code"])
}

func TestRateLimitMiddleware_SeparateBudgets(t *testing.T) {
	conf := &config.Configuration{RateLimit: config.RateLimitConfig{
		RequestsPerSecond:  ptr.Float64(1),
		Burst:              ptr.Int(1),
		CleanupIntervalSec: ptr.Int(60),
	}}
	router := newTestRouter(RateLimitMiddleware(conf))

	assert.Equal(t, http.StatusOK, serve(router, "/ping", "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, "/ping", "10.0.0.1:1234").Code)

	// Same client on another route, and another client on the same route.
	assert.Equal(t, http.StatusOK, serve(router, "/status", "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, serve(router, "/ping", "10.0.0.2:1234").Code)
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	router := newTestRouter(RateLimitMiddleware(&config.Configuration{}))

	for i := 0; i < 5; i++ {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, resp.Code)
	}
}
