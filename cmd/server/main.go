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

// Package main is the entry point for starting the OAuth server.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/asgardeo/thunder-oauth/internal/system/config"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
	"github.com/asgardeo/thunder-oauth/internal/system/managers"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger := log.GetLogger()

	serverHome := getServerHome(logger)

	cfg := initServerConfigurations(logger, serverHome)
	if cfg == nil {
		logger.Fatal("Failed to initialize configurations")
	}

	deps, closeBackends := buildDependencies(logger, serverHome, cfg)
	defer closeBackends()

	mux := initMultiplexer(logger, deps)
	if mux == nil {
		logger.Fatal("Failed to initialize multiplexer")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runServer(ctx, logger, cfg, mux, serverHome); err != nil {
		logger.Error("Server stopped with an error", log.Error(err))
		closeBackends()
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

// getServerHome retrieves and return the server home directory.
func getServerHome(logger *log.Logger) string {
	// Parse project directory from command line arguments.
	projectHome := ""
	projectHomeFlag := flag.String("serverHome", "", "Path to the server home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		logger.Info("Using serverHome from command line argument", log.String("serverHome", *projectHomeFlag))
		projectHome = *projectHomeFlag
	} else {
		// If no command line argument is provided, use the current working directory.
		dir, dirErr := os.Getwd()
		if dirErr != nil {
			logger.Fatal("Failed to get current working directory", log.Error(dirErr))
		}
		projectHome = dir
	}

	return projectHome
}

// initServerConfigurations loads the deployment configuration and initializes the server runtime.
func initServerConfigurations(logger *log.Logger, serverHome string) *config.Config {
	configFilePath := path.Join(serverHome, "repository/conf/deployment.yaml")
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		logger.Fatal("Failed to load configurations", log.Error(err))
	}

	if err := config.InitializeServerRuntime(serverHome, cfg); err != nil {
		logger.Fatal("Failed to initialize server runtime", log.Error(err))
	}

	return cfg
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer(logger *log.Logger, deps managers.Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux, deps)

	// Register the services.
	err := serviceManager.RegisterServices()
	if err != nil {
		logger.Fatal("Failed to register the services", log.Error(err))
	}

	return mux
}

// runServer serves requests until ctx is done, then shuts the server down gracefully.
func runServer(ctx context.Context, logger *log.Logger, cfg *config.Config, mux *http.ServeMux,
	serverHome string) error {
	server, serverAddr := createHTTPServer(logger, cfg, mux)

	ln, err := listen(cfg, serverAddr, serverHome)
	if err != nil {
		return err
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		scheme := "HTTPS"
		if cfg.Server.HTTPOnly {
			scheme = "HTTP"
		}
		logger.Info(fmt.Sprintf("OAuth server started (%s)...", scheme), log.String("address", serverAddr))

		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve requests: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("Shutting down the server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

// listen opens the listener of the server, with TLS unless the server is configured as HTTP only.
func listen(cfg *config.Config, serverAddr, serverHome string) (net.Listener, error) {
	if cfg.Server.HTTPOnly {
		return net.Listen("tcp", serverAddr)
	}

	tlsConfig, err := loadTLSConfig(cfg.Security, serverHome)
	if err != nil {
		return nil, err
	}
	return tls.Listen("tcp", serverAddr, tlsConfig)
}

// loadTLSConfig loads the server certificate and key. Relative paths resolve against serverHome.
func loadTLSConfig(security config.SecurityConfig, serverHome string) (*tls.Config, error) {
	if security.CertFile == "" || security.KeyFile == "" {
		return nil, errors.New("security.cert_file and security.key_file are required unless http_only is set")
	}

	certFile := security.CertFile
	if !path.IsAbs(certFile) {
		certFile = path.Join(serverHome, certFile)
	}
	keyFile := security.KeyFile
	if !path.IsAbs(keyFile) {
		keyFile = path.Join(serverHome, keyFile)
	}

	certificate, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{certificate},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// createHTTPServer creates and configures an HTTP server with common settings.
func createHTTPServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux) (*http.Server, string) {
	// Wrap the multiplexer with AccessLogHandler.
	wrappedMux := log.AccessLogHandler(logger, mux)

	// Build the server address using hostname and port from the configurations.
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Hostname, cfg.Server.Port)

	server := &http.Server{
		Addr:              serverAddr,
		Handler:           wrappedMux,
		ReadHeaderTimeout: 10 * time.Second, // Mitigate Slowloris attacks
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return server, serverAddr
}
