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

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/authz/constants"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/authz/model"
	oauth2model "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
	oauthutils "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/utils"
	"github.com/asgardeo/thunder-oauth/internal/system/database/provider"
	dbutils "github.com/asgardeo/thunder-oauth/internal/system/database/utils"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
	"github.com/asgardeo/thunder-oauth/internal/system/utils"
)

// DBAuthorizationStore keeps authorization codes in the runtime database.
type DBAuthorizationStore struct {
	DBProvider provider.DBProviderInterface
	now        func() time.Time
}

// NewDBAuthorizationStore creates an authorization store over the runtime database.
func NewDBAuthorizationStore(dbProvider provider.DBProviderInterface) *DBAuthorizationStore {
	return &DBAuthorizationStore{
		DBProvider: dbProvider,
		now:        time.Now,
	}
}

// Authorize issues a new code bound to the client and its registered redirect URIs.
func (s *DBAuthorizationStore) Authorize(ctx context.Context, client *oauth2model.Client, identityID string,
	scopes []string, responseType string, opts model.AuthorizationOptions) (*model.Authorization, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	authz, err := newAuthorization(client, identityID, scopes, responseType, opts, s.now())
	if err != nil {
		return nil, err
	}

	params, err := json.Marshal(authz.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode authorization params: %w", err)
	}

	dbClient, err := s.DBProvider.GetDBClient(provider.RuntimeDB)
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return nil, err
	}

	_, err = dbClient.Execute(ctx, constants.QueryInsertAuthorizationCode, utils.GenerateUUID(), authz.Code,
		authz.ClientID, authz.IdentityID, authz.ResponseType, oauthutils.JoinScopes(authz.Scopes),
		strings.Join(authz.RedirectURIs, " "), authz.CodeChallenge, authz.CodeChallengeMethod, string(params),
		authz.CreatedAt.UnixMilli())
	if err != nil {
		logger.Error("Failed to insert authorization code", log.Error(err))
		return nil, fmt.Errorf("failed to insert authorization code: %w", err)
	}

	return authz, nil
}

// FindAuthorization redeems the code of the client.
// The conditional update lets exactly one concurrent redemption mark the code.
func (s *DBAuthorizationStore) FindAuthorization(ctx context.Context, client *oauth2model.Client,
	code string) (*model.Authorization, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	if client == nil {
		return nil, constants.ErrAuthorizationNotFound
	}

	dbClient, err := s.DBProvider.GetDBClient(provider.RuntimeDB)
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return nil, err
	}

	affected, err := dbClient.Execute(ctx, constants.QueryMarkAuthorizationCodeUsed, s.now().UnixMilli(),
		code, client.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark authorization code as used: %w", err)
	}
	if affected != 1 {
		logger.Debug("Authorization code not redeemable", log.String("code", log.MaskString(code)))
		return nil, constants.ErrAuthorizationNotFound
	}

	results, err := dbClient.Query(ctx, constants.QueryGetAuthorizationCode, code, client.ID)
	if err != nil {
		return nil, fmt.Errorf("error while retrieving authorization code: %w", err)
	}
	if len(results) == 0 {
		return nil, constants.ErrAuthorizationNotFound
	}

	return buildAuthorizationFromRow(results[0])
}

// buildAuthorizationFromRow maps a row of the authorization code table to an unused authorization.
func buildAuthorizationFromRow(row map[string]interface{}) (*model.Authorization, error) {
	authz := &model.Authorization{}
	var scopes, redirectURIs, params string
	var err error

	fields := []struct {
		column string
		target *string
	}{
		{"code", &authz.Code},
		{"client_id", &authz.ClientID},
		{"identity_id", &authz.IdentityID},
		{"response_type", &authz.ResponseType},
		{"scopes", &scopes},
		{"redirect_uris", &redirectURIs},
		{"code_challenge", &authz.CodeChallenge},
		{"code_challenge_method", &authz.CodeChallengeMethod},
		{"params", &params},
	}
	for _, field := range fields {
		if *field.target, err = dbutils.GetString(row, field.column); err != nil {
			return nil, err
		}
	}

	createdAt, err := dbutils.GetInt64(row, "created_at")
	if err != nil {
		return nil, err
	}
	authz.CreatedAt = time.UnixMilli(createdAt)
	authz.Scopes = oauthutils.ParseScopes(scopes)
	authz.RedirectURIs = strings.Fields(redirectURIs)

	if params != "" {
		if err := json.Unmarshal([]byte(params), &authz.Params); err != nil {
			return nil, fmt.Errorf("failed to decode authorization params: %w", err)
		}
	}

	return authz, nil
}
