package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.ChainID != 137 {
		t.Fatalf("chain id = %d, want 137", cfg.ChainID)
	}
	if cfg.ExecutorURL != "http://localhost:8765" {
		t.Fatalf("executor url = %s", cfg.ExecutorURL)
	}
	if cfg.ReadOnly {
		t.Fatal("read-only should default to false")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("RPC_URL", "https://polygon-rpc.com")
	t.Setenv("PRIVATE_KEY", "0xabc")
	t.Setenv("PROXY_WALLET", "0x1111111111111111111111111111111111111111")
	t.Setenv("EXECUTOR_URL", "http://executor:9000")
	t.Setenv("READ_ONLY", "true")
	t.Setenv("CHAIN_ID", "80002")

	cfg := Default()
	cfg.ApplyEnv()

	if cfg.RPCURL != "https://polygon-rpc.com" {
		t.Fatalf("rpc url = %s", cfg.RPCURL)
	}
	if cfg.ExecutorURL != "http://executor:9000" {
		t.Fatalf("executor url = %s", cfg.ExecutorURL)
	}
	if !cfg.ReadOnly {
		t.Fatal("expected read-only true")
	}
	if cfg.ChainID != 80002 {
		t.Fatalf("chain id = %d, want 80002", cfg.ChainID)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestApplyEnvIgnoresInvalidValues(t *testing.T) {
	t.Setenv("READ_ONLY", "maybe")
	t.Setenv("CHAIN_ID", "polygon")

	cfg := Default()
	cfg.ApplyEnv()

	if cfg.ReadOnly {
		t.Fatal("invalid READ_ONLY should keep default")
	}
	if cfg.ChainID != 137 {
		t.Fatalf("invalid CHAIN_ID should keep default, got %d", cfg.ChainID)
	}
}

func TestValidateMissingFields(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing wallet fields")
	}
}

func TestLoadFileAndUserJSON(t *testing.T) {
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "config.yaml")
	yaml := "rpc_url: https://polygon-rpc.com\nexecutor_url: http://executor:9000\nlog:\n  level: debug\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	userPath := filepath.Join(dir, "user.json")
	userJSON := `{"private_key": "0xabc", "proxy_address": "0x1111111111111111111111111111111111111111"}`
	if err := os.WriteFile(userPath, []byte(userJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(cfgPath)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level = %s, want debug", cfg.Log.Level)
	}
	// 文件未覆盖的字段保持默认
	if cfg.ChainID != 137 {
		t.Fatalf("chain id = %d, want 137", cfg.ChainID)
	}

	if err := cfg.LoadUserJSON(userPath); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.PrivateKey != "0xabc" {
		t.Fatalf("private key = %s", cfg.PrivateKey)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
