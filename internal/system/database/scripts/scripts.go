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

// Package scripts embeds the schema of the runtime database.
package scripts

import (
	_ "embed"
	"fmt"

	"github.com/asgardeo/thunder-oauth/internal/system/database/model"
)

//go:embed sqlite.sql
var sqliteSchema string

//go:embed postgres.sql
var postgresSchema string

// Schema returns the schema script for the given database type.
func Schema(dbType string) (string, error) {
	switch dbType {
	case model.DBTypeSQLite:
		return sqliteSchema, nil
	case model.DBTypePostgres:
		return postgresSchema, nil
	default:
		return "", fmt.Errorf("no schema available for database type: %s", dbType)
	}
}
