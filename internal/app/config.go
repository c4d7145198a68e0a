package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/tuanthaoreal/storebot/core/cmd"
	coreconfig "github.com/tuanthaoreal/storebot/core/config"
	coredatabase "github.com/tuanthaoreal/storebot/core/database"
	"github.com/tuanthaoreal/storebot/internal/browse"
)

// SellerConfig identifies the storefront owner on product cards.
type SellerConfig struct {
	Name      string `yaml:"name" envconfig:"SELLER_NAME"`
	Facebook  string `yaml:"facebook" envconfig:"SELLER_FACEBOOK"`
	Zalo      string `yaml:"zalo" envconfig:"SELLER_ZALO"`
	AvatarURL string `yaml:"avatar_url" envconfig:"SELLER_AVATAR_URL"`
}

// Config aggregates the core framework config with storefront settings.
type Config struct {
	Core     coreconfig.Config   `yaml:",inline"`
	Database coredatabase.Config `yaml:"database"`
	Seller   SellerConfig        `yaml:"seller"`
}

// CoreConfig satisfies cmd.ConfigCarrier.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Core
}

// SellerIdentity converts the config into the browse flow's seller identity.
func (c *Config) SellerIdentity() browse.Seller {
	return browse.Seller{
		Name:      c.Seller.Name,
		Facebook:  c.Seller.Facebook,
		Zalo:      c.Seller.Zalo,
		AvatarURL: c.Seller.AvatarURL,
	}
}

// LoadConfig reads the YAML config, overlays environment variables, and
// validates the result.
func LoadConfig(path string) (cmd.ConfigCarrier, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Core.Telegram.AdminID == 0 {
		return fmt.Errorf("telegram.admin_id is required: owner commands need an operator")
	}
	if strings.TrimSpace(cfg.Seller.Name) == "" {
		return fmt.Errorf("seller.name is required")
	}
	if strings.TrimSpace(cfg.Database.Host) == "" {
		return fmt.Errorf("database.host is required")
	}
	return nil
}
