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

package client

import (
	"context"
	"net/http"

	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
	sysconst "github.com/asgardeo/thunder-oauth/internal/system/constants"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
	"github.com/asgardeo/thunder-oauth/internal/system/utils"
)

// ClientAuthenticatorInterface authenticates clients with their credentials.
type ClientAuthenticatorInterface interface {
	// Authenticate returns the client when the credentials are valid for it.
	Authenticate(ctx context.Context, clientID, clientSecret string) (*model.Client, bool)
}

// AuthenticateRequest authenticates the client of a parsed form request. Credentials are read from the
// Basic authorization header or from the client_id and client_secret body parameters, never both.
func AuthenticateRequest(r *http.Request, authenticator ClientAuthenticatorInterface) (*model.Client,
	*model.ErrorResponse) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ClientAuthenticator"))

	clientID := ""
	clientSecret := ""
	if r.Header.Get(sysconst.AuthorizationHeaderName) != "" {
		var err error
		clientID, clientSecret, err = utils.ExtractBasicAuthCredentials(r)
		if err != nil {
			logger.Debug("Invalid client authorization header", log.Error(err))
			return nil, model.NewErrorResponse(constants.ErrorInvalidClient, "Invalid client credentials")
		}
	}

	clientIDFromBody := r.FormValue(constants.ClientID)
	clientSecretFromBody := r.FormValue(constants.ClientSecret)
	if clientID != "" && clientSecretFromBody != "" {
		return nil, model.NewErrorResponse(constants.ErrorInvalidRequest,
			"Authorization information is provided in both header and body")
	}
	if clientID == "" {
		clientID = clientIDFromBody
		clientSecret = clientSecretFromBody
	}

	if clientID == "" {
		return nil, model.NewErrorResponse(constants.ErrorInvalidClient, "Client authentication is required")
	}

	client, ok := authenticator.Authenticate(r.Context(), clientID, clientSecret)
	if !ok {
		logger.Debug("Client authentication failed", log.String("clientID", clientID))
		return nil, model.NewErrorResponse(constants.ErrorInvalidClient, "Invalid client credentials")
	}
	return client, nil
}

// WriteAuthenticationError writes the error of AuthenticateRequest. Client authentication failures are
// answered with 401 and a Basic challenge.
func WriteAuthenticationError(w http.ResponseWriter, errResp *model.ErrorResponse) {
	if errResp.Error == constants.ErrorInvalidClient {
		utils.WriteJSONError(w, errResp.Error, errResp.ErrorDescription, http.StatusUnauthorized,
			[]map[string]string{{sysconst.WWWAuthenticateHeaderName: "Basic"}})
		return
	}
	utils.WriteJSONError(w, errResp.Error, errResp.ErrorDescription, http.StatusBadRequest, nil)
}
