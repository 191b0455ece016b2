package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Abraxas-365/seeker/recruitment/candidate/candidateclient"
	"github.com/go-redis/redis/v8"
)

var (
	apiURL    string
	storeFile string
	redisAddr string
	logLevel  string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&apiURL, "api-url", envOr("SEEKER_API_URL", "http://localhost:8080"), "Backend base URL (SEEKER_API_URL)")
	flags.StringVar(&storeFile, "store-file", envOr("SEEKER_STORE_FILE", defaultStoreFile()), "Local session file (SEEKER_STORE_FILE)")
	flags.StringVar(&redisAddr, "redis-addr", os.Getenv("SEEKER_REDIS_ADDR"), "Keep the session in Redis instead of the local file (SEEKER_REDIS_ADDR)")
	flags.StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "warn"), "debug, info, warn or error")
}

func defaultStoreFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".seeker-session.json"
	}
	return filepath.Join(dir, "seeker", "session.json")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// openStore builds the client store over the configured session storage and
// restores the cached profile
func openStore(ctx context.Context) (*candidateclient.Store, func(), error) {
	var (
		storage candidateclient.LocalStorage
		closeFn = func() {}
	)
	if redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		storage = candidateclient.NewRedisStorage(client, "seekerctl:")
		closeFn = func() { _ = client.Close() }
	} else {
		storage = candidateclient.NewFileStorage(storeFile)
	}

	store, err := candidateclient.NewStore(candidateclient.Config{BaseURL: apiURL, Storage: storage})
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	if err := store.Restore(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}
	return store, closeFn, nil
}
