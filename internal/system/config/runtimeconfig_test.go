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

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type RuntimeConfigTestSuite struct {
	suite.Suite
}

func TestRuntimeConfigSuite(t *testing.T) {
	suite.Run(t, new(RuntimeConfigTestSuite))
}

func (suite *RuntimeConfigTestSuite) BeforeTest(suiteName, testName string) {
	ResetServerRuntime()
}

func (suite *RuntimeConfigTestSuite) TestInitializeServerRuntime() {
	config := &Config{
		Server:   ServerConfig{Hostname: "testhost", Port: 9000},
		Security: SecurityConfig{KeyFile: "test-key.pem"},
		OAuth:    OAuthConfig{Token: TokenConfig{ValidityPeriod: 60}},
	}

	err := InitializeServerRuntime("/test/server/home", config)
	assert.NoError(suite.T(), err)

	runtime := GetServerRuntime()
	assert.Equal(suite.T(), "/test/server/home", runtime.ServerHome)
	assert.Equal(suite.T(), "testhost", runtime.Config.Server.Hostname)
	assert.Equal(suite.T(), int64(60), runtime.Config.OAuth.Token.ValidityPeriod)
}

func (suite *RuntimeConfigTestSuite) TestInitializeServerRuntimeOnlyOnce() {
	assert.NoError(suite.T(), InitializeServerRuntime("/first/path",
		&Config{Server: ServerConfig{Hostname: "firsthost"}}))
	assert.NoError(suite.T(), InitializeServerRuntime("/second/path",
		&Config{Server: ServerConfig{Hostname: "secondhost"}}))

	runtime := GetServerRuntime()
	assert.Equal(suite.T(), "/first/path", runtime.ServerHome)
	assert.Equal(suite.T(), "firsthost", runtime.Config.Server.Hostname)
}

func (suite *RuntimeConfigTestSuite) TestGetServerRuntimePanic() {
	assert.Panics(suite.T(), func() {
		GetServerRuntime()
	})
}
