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

package granthandlers

import (
	"context"
	"time"

	"github.com/asgardeo/thunder-oauth/internal/oauth/idtoken"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
	tokenstore "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/token/store"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/utils"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
)

// TokenIssuerInterface issues the tokens a grant decided on.
type TokenIssuerInterface interface {
	IssueToken(ctx context.Context, tokenRequest *model.TokenRequest) *model.TokenResponse
}

// tokenIssuer issues tokens through the token store.
type tokenIssuer struct {
	tokenStore tokenstore.TokenStoreInterface
}

// newTokenIssuer creates a new instance of tokenIssuer.
func newTokenIssuer(tokenStore tokenstore.TokenStoreInterface) TokenIssuerInterface {
	return &tokenIssuer{tokenStore: tokenStore}
}

// IssueToken stores a new token for the request. The response is unsuccessful when the request has no
// client or identity, or when the store fails.
func (i *tokenIssuer) IssueToken(ctx context.Context, tokenRequest *model.TokenRequest) *model.TokenResponse {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "TokenIssuer"))

	if tokenRequest == nil || tokenRequest.Client == nil || tokenRequest.Identity == nil {
		return &model.TokenResponse{}
	}

	token, err := i.tokenStore.IssueToken(ctx, tokenRequest.GrantType, tokenRequest.Client,
		tokenRequest.Identity.ID, tokenRequest.Scopes, tokenRequest.Instant)
	if err != nil {
		logger.Error("Failed to issue token", log.String("clientID", tokenRequest.Client.ID),
			log.String("grantType", string(tokenRequest.GrantType)), log.Error(err))
		return &model.TokenResponse{}
	}

	return &model.TokenResponse{
		Successful:   true,
		AccessToken:  token,
		RefreshToken: token.RefreshToken,
	}
}

// newBearerTokenResponse renders a token as the token endpoint body.
func newBearerTokenResponse(token *model.Token, idToken string, instant time.Time) *model.BearerTokenResponse {
	return &model.BearerTokenResponse{
		AccessToken:  token.Value,
		TokenType:    constants.TokenTypeBearer,
		ExpiresIn:    token.TTLSecondsAt(instant),
		Scope:        utils.JoinScopes(token.Scopes),
		RefreshToken: token.RefreshToken,
		IDToken:      idToken,
	}
}

// createIDToken mints the optional id_token of a response. An empty string means none.
func createIDToken(factory idtoken.IdTokenFactoryInterface, host, clientID string, identity *model.Identity,
	token *model.Token, instant time.Time) string {
	if factory == nil {
		return ""
	}
	idToken, ok := factory.Create(host, clientID, identity, token.TTLSecondsAt(instant), instant)
	if !ok {
		return ""
	}
	return idToken
}
