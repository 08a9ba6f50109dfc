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

// Package authz implements the OAuth2 authorization endpoint of the authorization code grant.
package authz

import (
	"net/http"

	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/authz/model"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/authz/store"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/pkce"
	oauthutils "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/utils"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
	"github.com/asgardeo/thunder-oauth/internal/system/metrics"
	"github.com/asgardeo/thunder-oauth/internal/system/utils"
)

// Parameters consumed by the authorization endpoint and never bound to the code.
var consumedParams = []string{
	constants.ClientID, constants.RedirectURI, constants.Scope, constants.State, constants.ResponseType,
	constants.CodeChallenge, constants.CodeChallengeMethod,
}

// AuthorizeHandlerInterface defines the interface for handling OAuth2 authorization requests.
type AuthorizeHandlerInterface interface {
	HandleAuthorizeRequest(w http.ResponseWriter, r *http.Request)
}

// AuthorizeHandler handles OAuth2 authorization requests.
type AuthorizeHandler struct {
	authzValidator      AuthorizationValidatorInterface
	authzStore          store.AuthorizationStoreInterface
	resourceOwnerFinder ResourceOwnerFinderInterface
	metrics             *metrics.Metrics
	enforcePKCE         bool
}

// NewAuthorizeHandler creates a new instance of AuthorizeHandler.
func NewAuthorizeHandler(authzValidator AuthorizationValidatorInterface, authzStore store.AuthorizationStoreInterface,
	resourceOwnerFinder ResourceOwnerFinderInterface, m *metrics.Metrics, enforcePKCE bool) *AuthorizeHandler {
	return &AuthorizeHandler{
		authzValidator:      authzValidator,
		authzStore:          authzStore,
		resourceOwnerFinder: resourceOwnerFinder,
		metrics:             m,
		enforcePKCE:         enforcePKCE,
	}
}

// HandleAuthorizeRequest issues an authorization code for the authenticated resource owner and redirects
// the user agent back to the client.
func (ah *AuthorizeHandler) HandleAuthorizeRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthorizeHandler"))

	identityID, ok := ah.resourceOwnerFinder.FindResourceOwner(r)
	if !ok {
		ah.metrics.RecordAuthorizationRequest(constants.ErrorAccessDenied)
		utils.WriteJSONError(w, constants.ErrorAccessDenied, "Resource owner is not authenticated",
			http.StatusUnauthorized, nil)
		return
	}

	query := r.URL.Query()
	client, redirectURI, errResp := ah.authzValidator.ValidateAuthorizationRequest(r.Context(),
		query.Get(constants.ClientID), query.Get(constants.RedirectURI))
	if errResp != nil {
		ah.metrics.RecordAuthorizationRequest(errResp.Error)
		utils.WriteJSONError(w, errResp.Error, errResp.ErrorDescription, http.StatusBadRequest, nil)
		return
	}

	state := query.Get(constants.State)
	opts := model.AuthorizationOptions{
		CodeChallenge:       query.Get(constants.CodeChallenge),
		CodeChallengeMethod: query.Get(constants.CodeChallengeMethod),
		Params:              oauthutils.GetForwardedParams(query, consumedParams...),
	}
	if ah.enforcePKCE && opts.CodeChallenge != "" {
		if err := pkce.ValidateCodeChallenge(opts.CodeChallenge, opts.CodeChallengeMethod); err != nil {
			ah.redirect(w, r, redirectURI, map[string]string{
				constants.Error:            constants.ErrorInvalidRequest,
				constants.ErrorDescription: "Invalid code challenge",
			}, constants.ErrorInvalidRequest)
			return
		}
	}

	authorization, err := ah.authzStore.Authorize(r.Context(), client, identityID,
		oauthutils.ParseScopes(query.Get(constants.Scope)), query.Get(constants.ResponseType), opts)
	if err != nil {
		logger.Debug("Authorization denied", log.String("clientID", client.ID), log.Error(err))
		ah.redirect(w, r, redirectURI, map[string]string{constants.Error: constants.ErrorAccessDenied},
			constants.ErrorAccessDenied)
		return
	}

	params := map[string]string{constants.Code: authorization.Code}
	if state != "" {
		params[constants.State] = state
	}
	ah.redirect(w, r, redirectURI, params, metrics.ResultSuccess)
}

// redirect sends the user agent to the redirect URI with the response parameters appended to its query.
func (ah *AuthorizeHandler) redirect(w http.ResponseWriter, r *http.Request, redirectURI string,
	params map[string]string, result string) {
	location, err := oauthutils.GetURIWithQueryParams(redirectURI, params)
	if err != nil {
		log.GetLogger().Error("Failed to construct redirect URI", log.Error(err))
		ah.metrics.RecordAuthorizationRequest(constants.ErrorServerError)
		utils.WriteJSONError(w, constants.ErrorServerError, "Failed to redirect to the client",
			http.StatusInternalServerError, nil)
		return
	}

	ah.metrics.RecordAuthorizationRequest(result)
	http.Redirect(w, r, location, http.StatusFound)
}
