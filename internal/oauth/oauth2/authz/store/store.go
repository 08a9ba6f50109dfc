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

// Package store provides the authorization code stores backing the authorization code grant.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/authz/constants"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/authz/model"
	oauth2const "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	oauth2model "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
	"github.com/asgardeo/thunder-oauth/internal/system/config"
	"github.com/asgardeo/thunder-oauth/internal/system/database/provider"
	"github.com/asgardeo/thunder-oauth/internal/system/redis"
	"github.com/asgardeo/thunder-oauth/internal/system/utils"
)

const loggerComponentName = "AuthorizationStore"

// AuthorizationStoreInterface defines the lifecycle of authorization codes.
type AuthorizationStoreInterface interface {
	// Authorize issues a new code bound to the client and its registered redirect URIs.
	Authorize(ctx context.Context, client *oauth2model.Client, identityID string, scopes []string,
		responseType string, opts model.AuthorizationOptions) (*model.Authorization, error)
	// FindAuthorization redeems the code of the client, returning the authorization as it was before use.
	// Unknown, foreign and used codes all return constants.ErrAuthorizationNotFound.
	FindAuthorization(ctx context.Context, client *oauth2model.Client, code string) (*model.Authorization, error)
}

// NewAuthorizationStore creates the authorization store of the given backend type.
func NewAuthorizationStore(storeType string) (AuthorizationStoreInterface, error) {
	switch storeType {
	case config.StoreTypeMemory:
		return NewMemoryAuthorizationStore(), nil
	case config.StoreTypeDatabase:
		return NewDBAuthorizationStore(provider.GetDBProvider()), nil
	case config.StoreTypeRedis:
		redisProvider := redis.GetRedisProvider()
		client, err := redisProvider.GetClient()
		if err != nil {
			return nil, err
		}
		return NewRedisAuthorizationStore(client, redisProvider.KeyPrefix()), nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeType)
	}
}

// newAuthorization builds a fresh authorization for the request.
func newAuthorization(client *oauth2model.Client, identityID string, scopes []string, responseType string,
	opts model.AuthorizationOptions, now time.Time) (*model.Authorization, error) {
	if client == nil || identityID == "" || responseType != oauth2const.ResponseTypeCode {
		return nil, constants.ErrAuthorizationDenied
	}

	code, err := utils.GenerateSecureToken(utils.DefaultTokenBytes)
	if err != nil {
		return nil, err
	}

	return &model.Authorization{
		ResponseType:        responseType,
		ClientID:            client.ID,
		IdentityID:          identityID,
		Code:                code,
		Scopes:              append([]string{}, scopes...),
		RedirectURIs:        append([]string{}, client.RedirectURIs...),
		CodeChallenge:       opts.CodeChallenge,
		CodeChallengeMethod: opts.CodeChallengeMethod,
		Params:              utils.DeepCopyMapOfStrings(opts.Params),
		CreatedAt:           now,
	}, nil
}
