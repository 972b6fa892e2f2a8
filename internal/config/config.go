package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Ethereum EthereumConfig `mapstructure:"ethereum"`
	Contract ContractConfig `mapstructure:"contract"`
	Signer   SignerConfig   `mapstructure:"signer"`
	Metadata MetadataConfig `mapstructure:"metadata"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
}

type EthereumConfig struct {
	NodeURL string `mapstructure:"node_url"`
}

type ContractConfig struct {
	Address string `mapstructure:"address"`
}

// SignerConfig selects the signing identity for write operations.
// A delegated signer takes priority over a local private key; with
// neither configured the service is read-only.
type SignerConfig struct {
	PrivateKey string          `mapstructure:"private_key"`
	Delegated  DelegatedConfig `mapstructure:"delegated"`
}

type DelegatedConfig struct {
	Address  string `mapstructure:"address"`
	Endpoint string `mapstructure:"endpoint"`
}

type MetadataConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type KafkaConfig struct {
	Brokers      []string `mapstructure:"brokers"`
	Topic        string   `mapstructure:"topic"`
	BatchSize    int      `mapstructure:"batch_size"`
	BatchTimeout int      `mapstructure:"batch_timeout"`
}

type ServerConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	err := viper.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	err = viper.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
