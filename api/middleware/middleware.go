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
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/blnkfinance/fxrecon/config"
	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const SecretKeyHeader = "X-Fxrecon-Key"

const (
	errCodeUnauthorized  = "UNAUTHORIZED"
	errCodeRateLimited   = "RATE_LIMITED"
	errCodeMisconfigured = "SERVER_MISCONFIGURED"
)

const defaultLimiterTTL = time.Hour

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": code})
}

// rateLimitKeys gives every route its own budget per client IP, so a burst of
// bulk enrich calls does not starve reconcile-action requests from the same host.
func rateLimitKeys(c *gin.Context) []string {
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	return []string{c.ClientIP(), route}
}

// RateLimitMiddleware limits requests per caller with Tollbooth. It is a no-op unless
// both requests_per_second and burst are configured.
func RateLimitMiddleware(conf *config.Configuration) gin.HandlerFunc {
	if conf.RateLimit.RequestsPerSecond == nil || conf.RateLimit.Burst == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	ttl := defaultLimiterTTL
	if conf.RateLimit.CleanupIntervalSec != nil {
		ttl = time.Duration(*conf.RateLimit.CleanupIntervalSec) * time.Second
	}

	lmt := tollbooth.NewLimiter(*conf.RateLimit.RequestsPerSecond, &limiter.ExpirableOptions{
		DefaultExpirationTTL: ttl,
	})
	lmt.SetBurst(*conf.RateLimit.Burst)

	return func(c *gin.Context) {
		if httpError := tollbooth.LimitByKeys(lmt, rateLimitKeys(c)); httpError != nil {
			logrus.WithFields(logrus.Fields{
				"path":      c.FullPath(),
				"client_ip": c.ClientIP(),
			}).Warn("request rate limited")
			abort(c, httpError.StatusCode, errCodeRateLimited, "Too many requests, retry later")
			return
		}
		c.Next()
	}
}

// SecretKeyAuthMiddleware rejects requests whose X-Fxrecon-Key header does not match
// server.secret_key. The key is read once, when the middleware is built.
func SecretKeyAuthMiddleware() gin.HandlerFunc {
	var secretKey string
	if conf, err := config.Fetch(); err == nil {
		secretKey = conf.Server.SecretKey
	}

	return func(c *gin.Context) {
		if secretKey == "" {
			abort(c, http.StatusInternalServerError, errCodeMisconfigured, "server.secret_key must be set when server.secure is enabled")
			return
		}

		clientSecret := c.GetHeader(SecretKeyHeader)
		if clientSecret == "" {
			abort(c, http.StatusUnauthorized, errCodeUnauthorized, SecretKeyHeader+" header is required")
			return
		}
		if subtle.ConstantTimeCompare([]byte(secretKey), []byte(clientSecret)) != 1 {
			abort(c, http.StatusUnauthorized, errCodeUnauthorized, "invalid API key")
			return
		}

		c.Next()
	}
}
