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

// Package utils provides helpers for reading the rows returned by the database client.
package utils

import (
	"fmt"
	"strconv"
)

// GetString returns the column value as a string. NULL becomes an empty string.
func GetString(row map[string]interface{}, column string) (string, error) {
	switch value := row[column].(type) {
	case nil:
		return "", nil
	case string:
		return value, nil
	case []byte:
		return string(value), nil
	default:
		return "", fmt.Errorf("unexpected type %T for column %s", value, column)
	}
}

// GetInt64 returns the column value as an int64. NULL becomes zero.
func GetInt64(row map[string]interface{}, column string) (int64, error) {
	switch value := row[column].(type) {
	case nil:
		return 0, nil
	case int64:
		return value, nil
	case int:
		return int64(value), nil
	case int32:
		return int64(value), nil
	case float64:
		return int64(value), nil
	case []byte:
		return strconv.ParseInt(string(value), 10, 64)
	case string:
		return strconv.ParseInt(value, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected type %T for column %s", value, column)
	}
}
