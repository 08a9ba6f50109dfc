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

package scripts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asgardeo/thunder-oauth/internal/system/database/model"
)

func TestSchema(t *testing.T) {
	for _, dbType := range []string{model.DBTypeSQLite, model.DBTypePostgres} {
		schema, err := Schema(dbType)
		assert.NoError(t, err)
		assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS AUTHORIZATION_CODE")
		assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS TOKEN")
	}
}

func TestSchemaUnknownType(t *testing.T) {
	schema, err := Schema("oracle")
	assert.Error(t, err)
	assert.Empty(t, schema)
}
