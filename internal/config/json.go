package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON shape of the configuration file.
type StructuredJSONConfig struct {
	App struct {
		Version      string `json:"version"`
		LogLevel     string `json:"log_level"`
		LogFile      string `json:"log_file"`
		TokenSignKey string `json:"token_sign_key"`
		TokenIssuer  string `json:"token_issuer"`
	} `json:"app,omitempty"`

	Provider struct {
		Kind               string   `json:"kind"`
		FailureRate        *float64 `json:"failure_rate,omitempty"`
		ConnectFailureRate *float64 `json:"connect_failure_rate,omitempty"`
		MinFetchDelay      *Duration `json:"min_fetch_delay,omitempty"`
		MaxFetchDelay      *Duration `json:"max_fetch_delay,omitempty"`
		ConnectDelay       *Duration `json:"connect_delay,omitempty"`
		PermissionDelay    *Duration `json:"permission_delay,omitempty"`
		DenyPermission     bool     `json:"deny_permission"`
		HTTPAddress        string   `json:"http_address"`
		RequestTimeout     Duration `json:"request_timeout"`
	} `json:"provider,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress string `json:"http_address"`
	} `json:"server,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
		HistoryLimit int      `json:"history_limit"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version:      jsonCfg.App.Version,
			LogLevel:     jsonCfg.App.LogLevel,
			LogFile:      jsonCfg.App.LogFile,
			TokenSignKey: jsonCfg.App.TokenSignKey,
			TokenIssuer:  jsonCfg.App.TokenIssuer,
		},
		Provider: Provider{
			Kind:               jsonCfg.Provider.Kind,
			FailureRate:        jsonCfg.Provider.FailureRate,
			ConnectFailureRate: jsonCfg.Provider.ConnectFailureRate,
			MinFetchDelay:      jsonCfg.Provider.MinFetchDelay.durationPtr(),
			MaxFetchDelay:      jsonCfg.Provider.MaxFetchDelay.durationPtr(),
			ConnectDelay:       jsonCfg.Provider.ConnectDelay.durationPtr(),
			PermissionDelay:    jsonCfg.Provider.PermissionDelay.durationPtr(),
			DenyPermission:     jsonCfg.Provider.DenyPermission,
			HTTPAddress:        jsonCfg.Provider.HTTPAddress,
			RequestTimeout:     time.Duration(jsonCfg.Provider.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress: jsonCfg.Server.HTTPAddress,
		},
		Workers: Workers{
			SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval),
			HistoryLimit: jsonCfg.Workers.HistoryLimit,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) durationPtr() *time.Duration {
	if d == nil {
		return nil
	}
	return ptr(time.Duration(*d))
}
