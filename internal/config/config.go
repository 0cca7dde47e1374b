package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Logging struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"logging"`
	Exchange struct {
		SpotEndpoint    string `yaml:"spot_endpoint"`
		FuturesEndpoint string `yaml:"futures_endpoint"`
	} `yaml:"exchange"`
	Polling struct {
		MarkPriceMs int `yaml:"mark_price_ms"`
	} `yaml:"polling"`
	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`
}

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
