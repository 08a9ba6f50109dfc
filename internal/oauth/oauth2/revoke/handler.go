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

package revoke

import (
	"net/http"
	"time"

	"github.com/asgardeo/thunder-oauth/internal/oauth/client"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	sysconst "github.com/asgardeo/thunder-oauth/internal/system/constants"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
	"github.com/asgardeo/thunder-oauth/internal/system/metrics"
	"github.com/asgardeo/thunder-oauth/internal/system/utils"
)

// TokenRevocationHandler handles OAuth 2.0 token revocation requests.
type TokenRevocationHandler struct {
	clientAuthenticator client.ClientAuthenticatorInterface
	service             TokenRevocationServiceInterface
	metrics             *metrics.Metrics
	now                 func() time.Time
}

// NewTokenRevocationHandler creates a new token revocation handler.
func NewTokenRevocationHandler(clientAuthenticator client.ClientAuthenticatorInterface,
	revocationService TokenRevocationServiceInterface, m *metrics.Metrics) *TokenRevocationHandler {
	return &TokenRevocationHandler{
		clientAuthenticator: clientAuthenticator,
		service:             revocationService,
		metrics:             m,
		now:                 time.Now,
	}
}

// HandleRevoke handles token revocation requests. Authenticated clients get an empty 200 response
// whether or not a token was revoked.
func (h *TokenRevocationHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "TokenRevocationHandler"))

	if err := r.ParseForm(); err != nil {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest, "Failed to parse request body",
			http.StatusBadRequest, nil)
		return
	}

	authenticatedClient, errResp := client.AuthenticateRequest(r, h.clientAuthenticator)
	if errResp != nil {
		client.WriteAuthenticationError(w, errResp)
		return
	}

	token := r.FormValue(constants.Token)
	if token == "" {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest, "Token parameter is required",
			http.StatusBadRequest, nil)
		return
	}

	err := h.service.RevokeToken(r.Context(), authenticatedClient.ID, token, r.FormValue(constants.TokenTypeHint),
		h.now())
	if err != nil {
		logger.Error("Failed to revoke token", log.Error(err))
		utils.WriteJSONError(w, constants.ErrorServerError, "Server error while revoking token",
			http.StatusInternalServerError, nil)
		return
	}

	h.metrics.RecordRevocation()
	w.Header().Set(sysconst.CacheControlHeaderName, "no-store")
	w.WriteHeader(http.StatusOK)
}
