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
	"strconv"

	model2 "github.com/blnkfinance/fxrecon/api/model"
	"github.com/blnkfinance/fxrecon/internal/apierror"
	"github.com/blnkfinance/fxrecon/model"
	"github.com/gin-gonic/gin"
)

func statementLineID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer. pass id in the route /:id"})
		return 0, false
	}
	return id, true
}

func (a Api) RecordReconcileData(c *gin.Context) {
	id, ok := statementLineID(c)
	if !ok {
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	err = model2.ValidateReconcileData(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	snapshot := model.ReconciliationSnapshot{StatementLineID: id, ReconcileData: raw}
	err = a.recon.RecordSnapshot(c.Request.Context(), snapshot)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (a Api) GetReconcileData(c *gin.Context) {
	id, ok := statementLineID(c)
	if !ok {
		return
	}

	resp, err := a.recon.GetSnapshot(c.Request.Context(), id)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
