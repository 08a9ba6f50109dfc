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
	"sync"
	"time"

	oauth2const "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	oauth2model "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/token/constants"
	"github.com/asgardeo/thunder-oauth/internal/system/utils"
)

// MemoryTokenStore keeps tokens in process memory.
// One mutex guards both the tokens and the refresh index.
type MemoryTokenStore struct {
	mutex          sync.Mutex
	tokens         map[string]*oauth2model.Token
	refreshIndex   map[string]string
	validityPeriod int64
}

// NewMemoryTokenStore creates an empty in-memory token store.
func NewMemoryTokenStore(validityPeriod int64) *MemoryTokenStore {
	return &MemoryTokenStore{
		tokens:         make(map[string]*oauth2model.Token),
		refreshIndex:   make(map[string]string),
		validityPeriod: validityPeriod,
	}
}

// IssueToken creates and stores a token with fresh access and refresh values.
func (s *MemoryTokenStore) IssueToken(_ context.Context, grantType oauth2const.GrantType,
	client *oauth2model.Client, identityID string, scopes []string, instant time.Time) (*oauth2model.Token, error) {
	token, err := newToken(grantType, client, identityID, scopes, s.validityPeriod, instant)
	if err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.tokens[token.Value] = token.Copy()
	s.refreshIndex[token.RefreshToken] = token.Value
	return token, nil
}

// FindTokenAvailableAt returns the token as it was before the check and restarts its validity at instant.
func (s *MemoryTokenStore) FindTokenAvailableAt(_ context.Context, value string,
	instant time.Time) (*oauth2model.Token, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	token, ok := s.tokens[value]
	if !ok || token.IsExpiredAt(instant) {
		return nil, constants.ErrTokenNotFound
	}

	snapshot := token.Copy()
	token.IssuedAt = instant
	return snapshot, nil
}

// RefreshToken replaces the token holding the refresh value with a new access value and returns the new token.
func (s *MemoryTokenStore) RefreshToken(_ context.Context, refreshValue string,
	instant time.Time) (*oauth2model.Token, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	previous, ok := s.lookupRefresh(refreshValue)
	if !ok {
		return nil, constants.ErrTokenNotFound
	}

	value, err := utils.GenerateSecureToken(utils.DefaultTokenBytes)
	if err != nil {
		return nil, err
	}
	token := renewToken(previous, value, s.validityPeriod, instant)

	delete(s.tokens, previous.Value)
	s.tokens[token.Value] = token.Copy()
	s.refreshIndex[refreshValue] = token.Value
	return token, nil
}

// FindRefreshToken returns the token currently holding the refresh value.
func (s *MemoryTokenStore) FindRefreshToken(_ context.Context, refreshValue string) (*oauth2model.Token, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	token, ok := s.lookupRefresh(refreshValue)
	if !ok {
		return nil, constants.ErrTokenNotFound
	}
	return token.Copy(), nil
}

// RevokeToken deletes the token with the access value. Unknown values are ignored.
func (s *MemoryTokenStore) RevokeToken(_ context.Context, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	token, ok := s.tokens[value]
	if !ok {
		return nil
	}
	delete(s.tokens, value)
	if s.refreshIndex[token.RefreshToken] == value {
		delete(s.refreshIndex, token.RefreshToken)
	}
	return nil
}

// lookupRefresh resolves the refresh index. The caller must hold the mutex.
func (s *MemoryTokenStore) lookupRefresh(refreshValue string) (*oauth2model.Token, bool) {
	value, ok := s.refreshIndex[refreshValue]
	if !ok {
		return nil, false
	}
	token, ok := s.tokens[value]
	return token, ok
}
