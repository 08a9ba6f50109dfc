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

package introspect

import (
	"net/http"
	"time"

	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
	"github.com/asgardeo/thunder-oauth/internal/system/utils"
)

// TokenIntrospectionHandler handles OAuth 2.0 token introspection requests.
type TokenIntrospectionHandler struct {
	service TokenIntrospectionServiceInterface
	now     func() time.Time
}

// NewTokenIntrospectionHandler creates a new token introspection handler.
func NewTokenIntrospectionHandler(introspectionService TokenIntrospectionServiceInterface) *TokenIntrospectionHandler {
	return &TokenIntrospectionHandler{
		service: introspectionService,
		now:     time.Now,
	}
}

// HandleIntrospect handles token introspection requests
func (h *TokenIntrospectionHandler) HandleIntrospect(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "TokenIntrospectionHandler"))

	if err := r.ParseForm(); err != nil {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest, "Failed to decode request body",
			http.StatusBadRequest, nil)
		return
	}

	token := r.FormValue(constants.Token)
	if token == "" {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest, "Token parameter is required",
			http.StatusBadRequest, nil)
		return
	}

	response, err := h.service.IntrospectToken(r.Context(), token, h.now())
	if err != nil {
		logger.Error("Failed to introspect token", log.Error(err))
		utils.WriteJSONError(w, constants.ErrorServerError, "Server error while introspecting token",
			http.StatusInternalServerError, nil)
		return
	}

	utils.WriteJSON(w, http.StatusOK, response, nil)
}
