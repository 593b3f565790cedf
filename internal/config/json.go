package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/adilgabb/commitgate/models"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations. The channel list can only be expressed here.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey string `json:"token_sign_key"`
		TokenIssuer  string `json:"token_issuer"`
		Version      string `json:"version"`
	} `json:"app,omitempty"`

	Limits struct {
		MaxFiles            int   `json:"max_files"`
		MaxFileBytes        int64 `json:"max_file_bytes"`
		MaxTotalBytes       int64 `json:"max_total_bytes"`
		EmbedThresholdBytes int64 `json:"embed_threshold_bytes"`
	} `json:"limits,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Backend struct {
		BaseURL            string   `json:"base_url"`
		PublicBaseURL      string   `json:"public_base_url"`
		InternalBaseURL    string   `json:"internal_base_url"`
		Timeout            Duration `json:"timeout"`
		StagingConcurrency int      `json:"staging_concurrency"`
	} `json:"backend,omitempty"`

	Moderation struct {
		Enabled bool     `json:"enabled"`
		URL     string   `json:"url"`
		Timeout Duration `json:"timeout"`
	} `json:"moderation,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Channels struct {
		LoadBalancing bool             `json:"load_balancing"`
		List          []models.Channel `json:"list"`
	} `json:"channels,omitempty"`
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
			TokenSignKey: jsonCfg.App.TokenSignKey,
			TokenIssuer:  jsonCfg.App.TokenIssuer,
			Version:      jsonCfg.App.Version,
		},
		Limits: Limits{
			MaxFiles:            jsonCfg.Limits.MaxFiles,
			MaxFileBytes:        jsonCfg.Limits.MaxFileBytes,
			MaxTotalBytes:       jsonCfg.Limits.MaxTotalBytes,
			EmbedThresholdBytes: jsonCfg.Limits.EmbedThresholdBytes,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Backend: Backend{
			BaseURL:            jsonCfg.Backend.BaseURL,
			PublicBaseURL:      jsonCfg.Backend.PublicBaseURL,
			InternalBaseURL:    jsonCfg.Backend.InternalBaseURL,
			Timeout:            time.Duration(jsonCfg.Backend.Timeout),
			StagingConcurrency: jsonCfg.Backend.StagingConcurrency,
		},
		Moderation: Moderation{
			Enabled: jsonCfg.Moderation.Enabled,
			URL:     jsonCfg.Moderation.URL,
			Timeout: time.Duration(jsonCfg.Moderation.Timeout),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Channels: Channels{
			LoadBalancing: jsonCfg.Channels.LoadBalancing,
			List:          jsonCfg.Channels.List,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
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
