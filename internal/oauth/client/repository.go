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

// Package client provides the registry of OAuth clients known to the server.
package client

import (
	"context"
	"crypto/subtle"
	"errors"
	"sync"

	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
	"github.com/asgardeo/thunder-oauth/internal/system/config"
)

// ClientFinderInterface resolves registered clients.
type ClientFinderInterface interface {
	FindClient(ctx context.Context, clientID string) (*model.Client, bool)
}

// ClientRepositoryInterface manages registered clients and authenticates them.
type ClientRepositoryInterface interface {
	ClientFinderInterface
	// Save registers the client, replacing any client with the same ID.
	Save(ctx context.Context, client model.Client) error
	ClientAuthenticatorInterface
}

// InMemoryClientRepository keeps registered clients in process memory.
type InMemoryClientRepository struct {
	mutex   sync.RWMutex
	clients map[string]model.Client
}

// NewInMemoryClientRepository creates an empty client repository.
func NewInMemoryClientRepository() *InMemoryClientRepository {
	return &InMemoryClientRepository{
		clients: make(map[string]model.Client),
	}
}

// NewClientRepositoryFromConfig creates a client repository holding the configured clients.
func NewClientRepositoryFromConfig(clients []config.ClientConfig) (*InMemoryClientRepository, error) {
	repository := NewInMemoryClientRepository()
	for _, client := range clients {
		err := repository.Save(context.Background(), model.Client{
			ID:           client.ClientID,
			Secret:       client.ClientSecret,
			RedirectURIs: client.RedirectURIs,
			Confidential: client.Confidential,
		})
		if err != nil {
			return nil, err
		}
	}
	return repository, nil
}

// FindClient returns a copy of the registered client.
func (r *InMemoryClientRepository) FindClient(_ context.Context, clientID string) (*model.Client, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	client, ok := r.clients[clientID]
	if !ok {
		return nil, false
	}
	client.RedirectURIs = append([]string(nil), client.RedirectURIs...)
	return &client, true
}

// Save registers the client, replacing any client with the same ID.
func (r *InMemoryClientRepository) Save(_ context.Context, client model.Client) error {
	if client.ID == "" {
		return errors.New("client id is required")
	}
	if client.Confidential && client.Secret == "" {
		return errors.New("confidential client requires a secret")
	}

	client.RedirectURIs = append([]string(nil), client.RedirectURIs...)

	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.clients[client.ID] = client
	return nil
}

// Authenticate returns the client when the credentials are valid for it.
// Public clients are identified by their ID alone.
func (r *InMemoryClientRepository) Authenticate(ctx context.Context, clientID,
	clientSecret string) (*model.Client, bool) {
	client, ok := r.FindClient(ctx, clientID)
	if !ok {
		return nil, false
	}
	if client.Confidential &&
		subtle.ConstantTimeCompare([]byte(client.Secret), []byte(clientSecret)) != 1 {
		return nil, false
	}
	return client, true
}
