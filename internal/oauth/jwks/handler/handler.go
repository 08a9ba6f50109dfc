/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package handler provides the HTTP handler for retrieving JSON Web Key Sets (JWKS).
package handler

import (
	"net/http"

	"github.com/asgardeo/thunder-oauth/internal/oauth/jwks"
	oauth2const "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
	"github.com/asgardeo/thunder-oauth/internal/system/utils"
)

// JWKSHandler handles requests for the JSON Web Key Set (JWKS).
type JWKSHandler struct {
	jwksService jwks.JWKSServiceInterface
}

// NewJWKSHandler creates a new instance of JWKSHandler.
func NewJWKSHandler(jwksService jwks.JWKSServiceInterface) *JWKSHandler {
	return &JWKSHandler{
		jwksService: jwksService,
	}
}

// HandleJWKSRequest handles the HTTP request to retrieve the JSON Web Key Set (JWKS).
func (h *JWKSHandler) HandleJWKSRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "JWKSHandler"))

	set, err := h.jwksService.GetJWKS()
	if err != nil {
		logger.Error("Error while building JWKS", log.Error(err))
		utils.WriteJSONError(w, oauth2const.ErrorServerError, "Error while building JWKS",
			http.StatusInternalServerError, nil)
		return
	}

	utils.WriteJSON(w, http.StatusOK, set, nil)
	logger.Debug("JWKS response successfully sent")
}
