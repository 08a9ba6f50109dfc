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
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/authz/constants"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/authz/model"
	oauth2model "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
	oauthutils "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/utils"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
)

// Hash fields of an authorization code.
const (
	fieldClientID            = "client_id"
	fieldIdentityID          = "identity_id"
	fieldResponseType        = "response_type"
	fieldScopes              = "scopes"
	fieldRedirectURIs        = "redirect_uris"
	fieldCodeChallenge       = "code_challenge"
	fieldCodeChallengeMethod = "code_challenge_method"
	fieldParams              = "params"
	fieldCreatedAt           = "created_at"
	fieldUsedAt              = "used_at"
)

// redeemScript marks an unused code of the client as used and returns its fields.
// Returns nil when the code is unknown, foreign or already used.
var redeemScript = goredis.NewScript(`
if redis.call('HGET', KEYS[1], 'client_id') ~= ARGV[1] then
	return nil
end
if redis.call('HEXISTS', KEYS[1], 'used_at') == 1 then
	return nil
end
redis.call('HSET', KEYS[1], 'used_at', ARGV[2])
return redis.call('HGETALL', KEYS[1])
`)

// RedisAuthorizationStore keeps each authorization code in a Redis hash.
type RedisAuthorizationStore struct {
	client    goredis.UniversalClient
	keyPrefix string
	now       func() time.Time
}

// NewRedisAuthorizationStore creates an authorization store over the given Redis client.
func NewRedisAuthorizationStore(client goredis.UniversalClient, keyPrefix string) *RedisAuthorizationStore {
	return &RedisAuthorizationStore{
		client:    client,
		keyPrefix: keyPrefix,
		now:       time.Now,
	}
}

func (s *RedisAuthorizationStore) key(code string) string {
	return s.keyPrefix + constants.RedisKeyAuthorizationCode + code
}

// Authorize issues a new code bound to the client and its registered redirect URIs.
func (s *RedisAuthorizationStore) Authorize(ctx context.Context, client *oauth2model.Client, identityID string,
	scopes []string, responseType string, opts model.AuthorizationOptions) (*model.Authorization, error) {
	authz, err := newAuthorization(client, identityID, scopes, responseType, opts, s.now())
	if err != nil {
		return nil, err
	}

	params, err := json.Marshal(authz.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode authorization params: %w", err)
	}

	err = s.client.HSet(ctx, s.key(authz.Code),
		fieldClientID, authz.ClientID,
		fieldIdentityID, authz.IdentityID,
		fieldResponseType, authz.ResponseType,
		fieldScopes, oauthutils.JoinScopes(authz.Scopes),
		fieldRedirectURIs, strings.Join(authz.RedirectURIs, " "),
		fieldCodeChallenge, authz.CodeChallenge,
		fieldCodeChallengeMethod, authz.CodeChallengeMethod,
		fieldParams, string(params),
		fieldCreatedAt, authz.CreatedAt.UnixMilli(),
	).Err()
	if err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Error("Failed to store authorization code", log.Error(err))
		return nil, fmt.Errorf("failed to store authorization code: %w", err)
	}

	return authz, nil
}

// FindAuthorization redeems the code of the client.
func (s *RedisAuthorizationStore) FindAuthorization(ctx context.Context, client *oauth2model.Client,
	code string) (*model.Authorization, error) {
	if client == nil {
		return nil, constants.ErrAuthorizationNotFound
	}

	values, err := redeemScript.Run(ctx, s.client, []string{s.key(code)}, client.ID,
		s.now().UnixMilli()).StringSlice()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, constants.ErrAuthorizationNotFound
		}
		return nil, fmt.Errorf("failed to redeem authorization code: %w", err)
	}

	fields := make(map[string]string, len(values)/2)
	for i := 0; i+1 < len(values); i += 2 {
		fields[values[i]] = values[i+1]
	}

	createdAt, err := strconv.ParseInt(fields[fieldCreatedAt], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid authorization code creation time: %w", err)
	}

	authz := &model.Authorization{
		ResponseType:        fields[fieldResponseType],
		ClientID:            fields[fieldClientID],
		IdentityID:          fields[fieldIdentityID],
		Code:                code,
		Scopes:              oauthutils.ParseScopes(fields[fieldScopes]),
		RedirectURIs:        strings.Fields(fields[fieldRedirectURIs]),
		CodeChallenge:       fields[fieldCodeChallenge],
		CodeChallengeMethod: fields[fieldCodeChallengeMethod],
		CreatedAt:           time.UnixMilli(createdAt),
	}
	if params := fields[fieldParams]; params != "" {
		if err := json.Unmarshal([]byte(params), &authz.Params); err != nil {
			return nil, fmt.Errorf("failed to decode authorization params: %w", err)
		}
	}

	return authz, nil
}
