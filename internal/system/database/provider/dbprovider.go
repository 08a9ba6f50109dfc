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

// Package provider provides functionality for managing database connections and clients.
package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path"
	"sync"
	"time"

	// Register the supported database drivers.
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/asgardeo/thunder-oauth/internal/system/config"
	"github.com/asgardeo/thunder-oauth/internal/system/database/client"
	"github.com/asgardeo/thunder-oauth/internal/system/database/model"
	"github.com/asgardeo/thunder-oauth/internal/system/database/scripts"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
)

// RuntimeDB is the name of the database holding authorization codes and tokens.
const RuntimeDB = "runtime"

// dbConfig represents the local database configuration.
type dbConfig struct {
	dsn        string
	driverName string
}

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient(dbName string) (client.DBClientInterface, error)
	Close() error
}

// DBProvider is the implementation of DBProviderInterface.
type DBProvider struct {
	runtimeClient *client.DBClient
	runtimeMutex  sync.RWMutex
}

var (
	instance *DBProvider
	once     sync.Once
)

// GetDBProvider returns the instance of DBProvider.
func GetDBProvider() DBProviderInterface {
	once.Do(func() {
		instance = &DBProvider{}
	})
	return instance
}

// GetDBClient returns a database client based on the provided database name.
// Not required to close the returned client manually since it manages its own connection pool.
func (d *DBProvider) GetDBClient(dbName string) (client.DBClientInterface, error) {
	if dbName != RuntimeDB {
		return nil, fmt.Errorf("unsupported database name: %s", dbName)
	}

	d.runtimeMutex.RLock()
	if d.runtimeClient != nil {
		dbClient := d.runtimeClient
		d.runtimeMutex.RUnlock()
		return dbClient, nil
	}
	d.runtimeMutex.RUnlock()

	d.runtimeMutex.Lock()
	defer d.runtimeMutex.Unlock()
	if d.runtimeClient != nil {
		return d.runtimeClient, nil
	}

	runtime := config.GetServerRuntime()
	dbClient, err := openClient(runtime.ServerHome, runtime.Config.Database.Runtime)
	if err != nil {
		return nil, err
	}
	d.runtimeClient = dbClient
	return dbClient, nil
}

// Close closes the database connections.
func (d *DBProvider) Close() error {
	d.runtimeMutex.Lock()
	defer d.runtimeMutex.Unlock()

	if d.runtimeClient == nil {
		return nil
	}
	err := d.runtimeClient.Close()
	d.runtimeClient = nil
	if err != nil {
		return fmt.Errorf("failed to close %s client: %w", RuntimeDB, err)
	}
	log.GetLogger().Debug("Database connections closed successfully")
	return nil
}

// openClient opens a connection pool for the data source and applies the schema when requested.
func openClient(serverHome string, dataSource config.DataSource) (*client.DBClient, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBProvider"))

	dbConfig, err := getDBConfig(serverHome, dataSource)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dbConfig.driverName, dbConfig.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", dataSource.Type, err)
	}

	if dataSource.MaxOpenConns > 0 {
		db.SetMaxOpenConns(dataSource.MaxOpenConns)
	}
	if dataSource.MaxIdleConns > 0 {
		db.SetMaxIdleConns(dataSource.MaxIdleConns)
	}
	db.SetConnMaxLifetime(time.Duration(dataSource.ConnMaxLifetime) * time.Second)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to ping database %s: %w", dataSource.Type, err), db.Close())
	}

	if dataSource.InitSchema {
		schema, err := scripts.Schema(dbConfig.driverName)
		if err != nil {
			return nil, errors.Join(err, db.Close())
		}
		if _, err := db.ExecContext(ctx, schema); err != nil {
			return nil, errors.Join(fmt.Errorf("failed to apply schema: %w", err), db.Close())
		}
		logger.Debug("Applied runtime database schema", log.String("type", dbConfig.driverName))
	}

	return client.NewDBClient(model.NewDB(db), dbConfig.driverName), nil
}

// getDBConfig returns the database configuration based on the provided data source.
func getDBConfig(serverHome string, dataSource config.DataSource) (dbConfig, error) {
	var cfg dbConfig

	switch dataSource.Type {
	case model.DBTypePostgres:
		cfg.driverName = model.DBTypePostgres
		cfg.dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			dataSource.Hostname, dataSource.Port, dataSource.Username, dataSource.Password,
			dataSource.Name, dataSource.SSLMode)
	case model.DBTypeSQLite:
		cfg.driverName = model.DBTypeSQLite
		options := dataSource.Options
		if options != "" && options[0] != '?' {
			options = "?" + options
		}
		dbPath := dataSource.Path
		if dbPath != ":memory:" && !path.IsAbs(dbPath) {
			dbPath = path.Join(serverHome, dbPath)
		}
		cfg.dsn = dbPath + options
	default:
		return cfg, fmt.Errorf("unsupported database type: %s", dataSource.Type)
	}

	return cfg, nil
}
