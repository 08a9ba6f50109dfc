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

// Package identity resolves the identities and verification keys of service accounts.
package identity

import (
	"context"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/asgardeo/thunder-oauth/internal/oauth/assertion"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
	"github.com/asgardeo/thunder-oauth/internal/system/config"
	sysjwt "github.com/asgardeo/thunder-oauth/internal/system/jwt"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
)

// FindIdentityRequest describes the identity lookup of a grant.
type FindIdentityRequest struct {
	Issuer    string
	GrantType constants.GrantType
	Instant   time.Time
	Params    map[string]string
	Marker    string
}

// IdentityFinderInterface resolves the identity a token is issued for.
type IdentityFinderInterface interface {
	FindIdentity(ctx context.Context, request FindIdentityRequest) (*model.Identity, bool)
}

// KeyStoreInterface resolves the key that verifies an assertion.
type KeyStoreInterface interface {
	FindKey(ctx context.Context, header assertion.Header, claims assertion.Claims) (*pem.Block, bool)
}

// ServiceAccount is an identity allowed to authenticate with signed assertions.
type ServiceAccount struct {
	Identity model.Identity
	Issuer   string
	Key      *pem.Block
}

// ServiceAccountRegistry serves both identity and key lookups from the registered service accounts.
type ServiceAccountRegistry struct {
	mutex    sync.RWMutex
	accounts map[string]ServiceAccount
}

// NewServiceAccountRegistry creates a registry holding the given accounts.
func NewServiceAccountRegistry(accounts ...ServiceAccount) *ServiceAccountRegistry {
	registry := &ServiceAccountRegistry{accounts: make(map[string]ServiceAccount, len(accounts))}
	for _, account := range accounts {
		registry.Register(account)
	}
	return registry
}

// LoadServiceAccounts reads the configured service accounts and their public keys.
// Relative key paths resolve against serverHome.
func LoadServiceAccounts(serverHome string, accounts []config.ServiceAccountConfig) ([]ServiceAccount, error) {
	loaded := make([]ServiceAccount, 0, len(accounts))
	for _, account := range accounts {
		if account.Issuer == "" {
			return nil, errors.New("issuer is required for every service account")
		}

		keyPath := account.KeyFile
		if !filepath.IsAbs(keyPath) {
			keyPath = filepath.Join(serverHome, keyPath)
		}
		block, err := readPublicKey(keyPath)
		if err != nil {
			return nil, fmt.Errorf("service account %s: %w", account.Issuer, err)
		}

		identityID := account.IdentityID
		if identityID == "" {
			identityID = account.Issuer
		}
		loaded = append(loaded, ServiceAccount{
			Issuer: account.Issuer,
			Key:    block,
			Identity: model.Identity{
				ID:     identityID,
				Name:   account.Name,
				Email:  account.Email,
				Claims: account.Claims,
			},
		})
	}
	return loaded, nil
}

func readPublicKey(path string) (*pem.Block, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("failed to decode PEM block containing public key")
	}
	if _, err := sysjwt.ParsePublicKey(block); err != nil {
		return nil, err
	}
	return block, nil
}

// Register adds the account, replacing any account with the same issuer.
func (r *ServiceAccountRegistry) Register(account ServiceAccount) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.accounts[account.Issuer] = account
}

// FindIdentity resolves service accounts by issuer for the JWT bearer grant.
// Other grants resolve to the registered service account or to a bare identity.
func (r *ServiceAccountRegistry) FindIdentity(_ context.Context, request FindIdentityRequest) (*model.Identity,
	bool) {
	if request.Issuer == "" {
		return nil, false
	}

	r.mutex.RLock()
	account, ok := r.accounts[request.Issuer]
	r.mutex.RUnlock()

	if ok {
		identity := account.Identity
		identity.Claims = copyClaims(account.Identity.Claims)
		return &identity, true
	}
	if request.GrantType == constants.GrantTypeJWTBearer {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ServiceAccountRegistry")).
			Debug("Unknown service account", log.String("issuer", request.Issuer))
		return nil, false
	}
	return &model.Identity{ID: request.Issuer}, true
}

// FindKey returns the public key registered for the assertion issuer.
func (r *ServiceAccountRegistry) FindKey(_ context.Context, _ assertion.Header,
	claims assertion.Claims) (*pem.Block, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	account, ok := r.accounts[claims.Iss]
	if !ok || account.Key == nil {
		return nil, false
	}
	block := *account.Key
	return &block, true
}

func copyClaims(claims map[string]interface{}) map[string]interface{} {
	if claims == nil {
		return nil
	}
	copied := make(map[string]interface{}, len(claims))
	for key, value := range claims {
		copied[key] = value
	}
	return copied
}
