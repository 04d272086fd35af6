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
package api

import (
	"net/http"

	"github.com/blnkfinance/fxrecon"
	"github.com/blnkfinance/fxrecon/api/middleware"
	"github.com/blnkfinance/fxrecon/config"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type Api struct {
	recon  *fxrecon.Recon
	router *gin.Engine
}

func (a Api) Router() *gin.Engine {
	router := a.router
	router.POST("/exchange-differences/prepare", a.PrepareExchangeDifference)
	router.POST("/exchange-differences/enrich", a.EnrichExchangeDifference)

	router.POST("/move-lines/reconcile-action", a.ReconcileAction)

	router.PUT("/statement-lines/:id/reconcile-data", a.RecordReconcileData)
	router.GET("/statement-lines/:id/reconcile-data", a.GetReconcileData)
	return a.router
}

func NewAPI(r *fxrecon.Recon) *Api {
	gin.SetMode(gin.ReleaseMode)
	conf, err := config.Fetch()
	if err != nil {
		return nil
	}
	router := gin.Default()
	router.Use(otelgin.Middleware(projectName(conf)))
	router.Use(middleware.RateLimitMiddleware(conf))
	if conf.Server.Secure {
		router.Use(middleware.SecretKeyAuthMiddleware())
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, "server running...")
	})

	return &Api{recon: r, router: router}
}

func projectName(conf *config.Configuration) string {
	if conf.ProjectName == "" {
		return "fxrecon"
	}
	return conf.ProjectName
}
