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

	model2 "github.com/blnkfinance/fxrecon/api/model"
	"github.com/blnkfinance/fxrecon/internal/apierror"
	"github.com/blnkfinance/fxrecon/model"
	"github.com/gin-gonic/gin"
)

func (a Api) PrepareExchangeDifference(c *gin.Context) {
	var req model2.PrepareExchangeDifference
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	err := req.ValidatePrepareExchangeDifference()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	resp, err := a.recon.PrepareExchangeDifferenceMoveVals(c.Request.Context(), req.AmountsList, req.CompanyID, req.ExchangeDateValue())
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// EnrichExchangeDifference applies analytic distributions to a move the engine already prepared.
func (a Api) EnrichExchangeDifference(c *gin.Context) {
	var moveVals model.ExchangeDifferenceMoveVals
	if err := c.ShouldBindJSON(&moveVals); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	err := model2.ValidateExchangeDifferenceMoveVals(&moveVals)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	err = a.recon.EnrichExchangeDifferenceMoveVals(c.Request.Context(), &moveVals)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, moveVals)
}
