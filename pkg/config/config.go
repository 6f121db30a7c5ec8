package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config 交易客户端配置。
// 核心包只接收已解析好的值；环境变量/文件解析只发生在这里和 cmd/ 里。
type Config struct {
	RPCURL      string    `yaml:"rpc_url"`
	PrivateKey  string    `yaml:"private_key"`
	ProxyWallet string    `yaml:"proxy_wallet"`
	ChainID     int       `yaml:"chain_id"`
	ExecutorURL string    `yaml:"executor_url"`
	ReadOnly    bool      `yaml:"read_only"`
	Log         LogConfig `yaml:"log"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level"`
	OutputFile string `yaml:"output_file"`
	MaxSize    int    `yaml:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"` // days
	Compress   bool   `yaml:"compress"`
}

// UserJSON user.json 文件结构（钱包信息）
type UserJSON struct {
	PrivateKey   string `json:"private_key"`
	ProxyAddress string `json:"proxy_address"`
}

// Default 默认配置
func Default() Config {
	return Config{
		ChainID:     137,
		ExecutorURL: "http://localhost:8765",
		Log: LogConfig{
			Level:      "info",
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     14,
		},
	}
}

// LoadFile 从 YAML 文件加载配置（在默认值之上覆盖）
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("读取配置文件失败: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("解析配置文件失败: %w", err)
	}
	return cfg, nil
}

// ApplyEnv 用环境变量覆盖配置（变量未设置时保持原值）
func (c *Config) ApplyEnv() {
	if v := os.Getenv("RPC_URL"); v != "" {
		c.RPCURL = v
	}
	if v := os.Getenv("PRIVATE_KEY"); v != "" {
		c.PrivateKey = v
	}
	if v := os.Getenv("PROXY_WALLET"); v != "" {
		c.ProxyWallet = v
	}
	if v := os.Getenv("CHAIN_ID"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			c.ChainID = id
		}
	}
	if v := os.Getenv("EXECUTOR_URL"); v != "" {
		c.ExecutorURL = v
	}
	if v := os.Getenv("READ_ONLY"); v != "" {
		if ro, err := strconv.ParseBool(v); err == nil {
			c.ReadOnly = ro
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// LoadUserJSON 从 user.json 读取钱包信息并覆盖配置
func (c *Config) LoadUserJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取 user.json 失败: %w", err)
	}
	var u UserJSON
	if err := json.Unmarshal(data, &u); err != nil {
		return fmt.Errorf("解析 user.json 失败: %w", err)
	}
	if u.PrivateKey != "" {
		c.PrivateKey = u.PrivateKey
	}
	if u.ProxyAddress != "" {
		c.ProxyWallet = u.ProxyAddress
	}
	return nil
}

// Validate 校验必填字段
func (c *Config) Validate() error {
	var missing []string
	if c.RPCURL == "" {
		missing = append(missing, "rpc_url")
	}
	if c.PrivateKey == "" {
		missing = append(missing, "private_key")
	}
	if c.ProxyWallet == "" {
		missing = append(missing, "proxy_wallet")
	}
	if c.ExecutorURL == "" {
		missing = append(missing, "executor_url")
	}
	if len(missing) > 0 {
		return fmt.Errorf("配置缺少必填项: %s", strings.Join(missing, ", "))
	}
	return nil
}
