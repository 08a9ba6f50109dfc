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

// Package jwt provides functionality for generating and verifying the JWTs signed by the server.
package jwt

import (
	"crypto"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v2/jwk"

	"github.com/asgardeo/thunder-oauth/internal/system/config"
	"github.com/asgardeo/thunder-oauth/internal/system/utils"
)

// ErrKeyNotLoaded is returned when the server signing key is not available.
var ErrKeyNotLoaded = errors.New("private key not loaded")

var (
	instance *JWTService
	once     sync.Once
)

// JWTServiceInterface defines the interface for JWT operations.
type JWTServiceInterface interface {
	Init() error
	GetPublicKey() *rsa.PublicKey
	GetKeyID() string
	GenerateJWT(sub, aud, iss string, issuedAt time.Time, validityPeriod int64,
		claims map[string]interface{}) (string, error)
	VerifyJWT(token string) (jwt.MapClaims, error)
}

// JWTService implements the JWTServiceInterface with an RS256 server key.
type JWTService struct {
	mutex      sync.RWMutex
	privateKey *rsa.PrivateKey
	kid        string
}

// GetJWTService returns a singleton instance of JWTService.
func GetJWTService() JWTServiceInterface {
	once.Do(func() {
		instance = &JWTService{}
	})
	return instance
}

// NewJWTService creates a JWTService signing with the given key.
func NewJWTService(privateKey *rsa.PrivateKey) (*JWTService, error) {
	js := &JWTService{}
	if err := js.setKey(privateKey); err != nil {
		return nil, err
	}
	return js, nil
}

// Init loads the private key from the configured file path.
func (js *JWTService) Init() error {
	runtime := config.GetServerRuntime()
	if runtime.Config.Security.KeyFile == "" {
		return errors.New("security.key_file is not configured")
	}

	keyFilePath := runtime.Config.Security.KeyFile
	if !path.IsAbs(keyFilePath) {
		keyFilePath = path.Join(runtime.ServerHome, keyFilePath)
	}

	privateKey, err := LoadPrivateKey(keyFilePath)
	if err != nil {
		return err
	}
	return js.setKey(privateKey)
}

func (js *JWTService) setKey(privateKey *rsa.PrivateKey) error {
	kid, err := Thumbprint(&privateKey.PublicKey)
	if err != nil {
		return err
	}

	js.mutex.Lock()
	defer js.mutex.Unlock()
	js.privateKey = privateKey
	js.kid = kid
	return nil
}

// GetPublicKey returns the RSA public key corresponding to the server's private key.
func (js *JWTService) GetPublicKey() *rsa.PublicKey {
	js.mutex.RLock()
	defer js.mutex.RUnlock()
	if js.privateKey == nil {
		return nil
	}
	return &js.privateKey.PublicKey
}

// GetKeyID returns the key id published for the server key.
func (js *JWTService) GetKeyID() string {
	js.mutex.RLock()
	defer js.mutex.RUnlock()
	return js.kid
}

// GenerateJWT generates a JWT signed with the server's private key.
// Custom claims override the registered claims of the same name.
func (js *JWTService) GenerateJWT(sub, aud, iss string, issuedAt time.Time, validityPeriod int64,
	claims map[string]interface{}) (string, error) {
	js.mutex.RLock()
	privateKey, kid := js.privateKey, js.kid
	js.mutex.RUnlock()
	if privateKey == nil {
		return "", ErrKeyNotLoaded
	}

	payload := jwt.MapClaims{}
	for key, value := range claims {
		payload[key] = value
	}
	payload["sub"] = sub
	payload["aud"] = aud
	payload["iss"] = iss
	payload["iat"] = issuedAt.Unix()
	payload["nbf"] = issuedAt.Unix()
	payload["exp"] = issuedAt.Add(time.Duration(validityPeriod) * time.Second).Unix()
	payload["jti"] = utils.GenerateUUID()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, payload)
	token.Header["kid"] = kid

	signed, err := token.SignedString(privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyJWT verifies a JWT issued by this server and returns its claims.
func (js *JWTService) VerifyJWT(token string) (jwt.MapClaims, error) {
	publicKey := js.GetPublicKey()
	if publicKey == nil {
		return nil, ErrKeyNotLoaded
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Thumbprint returns the base64url encoded SHA-256 JWK thumbprint of the key.
func Thumbprint(publicKey crypto.PublicKey) (string, error) {
	key, err := jwk.FromRaw(publicKey)
	if err != nil {
		return "", fmt.Errorf("failed to build JWK: %w", err)
	}
	thumbprint, err := key.Thumbprint(crypto.SHA256)
	if err != nil {
		return "", fmt.Errorf("failed to compute JWK thumbprint: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(thumbprint), nil
}
