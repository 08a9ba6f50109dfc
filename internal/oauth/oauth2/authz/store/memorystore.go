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

	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/authz/constants"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/authz/model"
	oauth2model "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
)

// MemoryAuthorizationStore keeps authorization codes in process memory.
type MemoryAuthorizationStore struct {
	mutex          sync.Mutex
	authorizations map[string]*model.Authorization
	now            func() time.Time
}

// NewMemoryAuthorizationStore creates an empty in-memory authorization store.
func NewMemoryAuthorizationStore() *MemoryAuthorizationStore {
	return &MemoryAuthorizationStore{
		authorizations: make(map[string]*model.Authorization),
		now:            time.Now,
	}
}

// Authorize issues a new code bound to the client and its registered redirect URIs.
func (s *MemoryAuthorizationStore) Authorize(_ context.Context, client *oauth2model.Client, identityID string,
	scopes []string, responseType string, opts model.AuthorizationOptions) (*model.Authorization, error) {
	authz, err := newAuthorization(client, identityID, scopes, responseType, opts, s.now())
	if err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.authorizations[authz.Code] = authz.Copy()
	return authz, nil
}

// FindAuthorization redeems the code of the client.
func (s *MemoryAuthorizationStore) FindAuthorization(_ context.Context, client *oauth2model.Client,
	code string) (*model.Authorization, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	authz, ok := s.authorizations[code]
	if !ok || client == nil || authz.ClientID != client.ID || authz.WasUsed() {
		return nil, constants.ErrAuthorizationNotFound
	}

	snapshot := authz.Copy()
	usedAt := s.now()
	authz.UsedAt = &usedAt
	return snapshot, nil
}
