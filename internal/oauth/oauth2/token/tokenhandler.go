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

// Package token provides handler for managing OAuth 2.0 token requests.
package token

import (
	"net/http"
	"time"

	"github.com/asgardeo/thunder-oauth/internal/oauth/client"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/granthandlers"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
	oauthutils "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/utils"
	sysconst "github.com/asgardeo/thunder-oauth/internal/system/constants"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
	"github.com/asgardeo/thunder-oauth/internal/system/metrics"
	"github.com/asgardeo/thunder-oauth/internal/system/utils"
)

const unsupportedGrantTypeLabel = "unsupported"

// TokenHandlerInterface defines the interface for handling OAuth 2.0 token requests.
type TokenHandlerInterface interface {
	HandleTokenRequest(w http.ResponseWriter, r *http.Request)
}

// TokenHandler handles OAuth 2.0 token requests.
type TokenHandler struct {
	clientAuthenticator  client.ClientAuthenticatorInterface
	grantHandlerProvider granthandlers.GrantHandlerProviderInterface
	metrics              *metrics.Metrics
	now                  func() time.Time
}

// NewTokenHandler creates a new instance of TokenHandler.
func NewTokenHandler(clientAuthenticator client.ClientAuthenticatorInterface,
	grantHandlerProvider granthandlers.GrantHandlerProviderInterface, m *metrics.Metrics) *TokenHandler {
	return &TokenHandler{
		clientAuthenticator:  clientAuthenticator,
		grantHandlerProvider: grantHandlerProvider,
		metrics:              m,
		now:                  time.Now,
	}
}

// HandleTokenRequest handles the token request for OAuth 2.0.
// It authenticates the client when the grant needs one and delegates to the grant handler.
func (th *TokenHandler) HandleTokenRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "TokenHandler"))

	if err := r.ParseForm(); err != nil {
		th.writeError(w, unsupportedGrantTypeLabel, model.NewErrorResponse(constants.ErrorInvalidRequest,
			"Failed to parse request body"))
		return
	}

	grantType := constants.GrantType(r.FormValue(constants.GrantTypeParam))
	if grantType == "" {
		th.writeError(w, unsupportedGrantTypeLabel, model.NewErrorResponse(constants.ErrorInvalidRequest,
			"Missing grant_type parameter"))
		return
	}

	grantHandler, err := th.grantHandlerProvider.GetGrantHandler(grantType)
	if err != nil {
		th.writeError(w, unsupportedGrantTypeLabel, model.NewErrorResponse(constants.ErrorUnsupportedGrantType,
			"Unsupported grant type"))
		return
	}

	// Service accounts using the JWT bearer grant are authenticated by their assertion.
	var authenticatedClient *model.Client
	if grantType != constants.GrantTypeJWTBearer {
		var errResp *model.ErrorResponse
		authenticatedClient, errResp = client.AuthenticateRequest(r, th.clientAuthenticator)
		if errResp != nil {
			th.metrics.RecordTokenRequest(string(grantType), errResp.Error)
			client.WriteAuthenticationError(w, errResp)
			return
		}
	}

	grantRequest := &model.GrantRequest{
		GrantType:    grantType,
		Client:       authenticatedClient,
		Code:         r.FormValue(constants.Code),
		RedirectURI:  r.FormValue(constants.RedirectURI),
		RefreshToken: r.FormValue(constants.RefreshToken),
		Assertion:    r.FormValue(constants.Assertion),
		Scope:        r.FormValue(constants.Scope),
		CodeVerifier: r.FormValue(constants.CodeVerifier),
		Host:         r.Host,
		Instant:      th.now(),
		Params:       oauthutils.GetForwardedParams(r.Form, constants.ClientSecret),
	}

	if errResp := grantHandler.ValidateGrant(grantRequest); errResp != nil {
		th.writeError(w, string(grantType), errResp)
		return
	}

	tokenResponse, errResp := grantHandler.HandleGrant(r.Context(), grantRequest)
	if errResp != nil {
		th.writeError(w, string(grantType), errResp)
		return
	}

	th.metrics.RecordTokenRequest(string(grantType), metrics.ResultSuccess)
	logger.Debug("Token issued", log.String("grantType", string(grantType)),
		log.String("accessToken", log.MaskString(tokenResponse.AccessToken)))

	utils.WriteJSON(w, http.StatusOK, tokenResponse, []map[string]string{
		{sysconst.CacheControlHeaderName: "no-store"},
		{sysconst.PragmaHeaderName: "no-cache"},
	})
}

// writeError counts the failed request and writes the error body.
func (th *TokenHandler) writeError(w http.ResponseWriter, grantType string, errResp *model.ErrorResponse) {
	th.metrics.RecordTokenRequest(grantType, errResp.Error)
	utils.WriteJSONError(w, errResp.Error, errResp.ErrorDescription, http.StatusBadRequest, nil)
}
