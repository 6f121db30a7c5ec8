package chain

import (
	"math/big"
	"testing"
)

func TestFormatUnits6(t *testing.T) {
	cases := []struct {
		in   *big.Int
		want string
	}{
		{big.NewInt(0), "0.000000"},
		{big.NewInt(123), "0.000123"},
		{big.NewInt(1_000_000), "1.000000"},
		{big.NewInt(1_500_000), "1.500000"},
		{big.NewInt(123_456_789), "123.456789"},
		{nil, "0"},
	}
	for _, c := range cases {
		if got := FormatUnits6(c.in); got != c.want {
			t.Errorf("FormatUnits6(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMaxUint256(t *testing.T) {
	max := MaxUint256()
	if max.BitLen() != 256 {
		t.Fatalf("bit length = %d, want 256", max.BitLen())
	}
	// 2^256 - 1: 加一后正好是 2^256
	next := new(big.Int).Add(max, big.NewInt(1))
	if next.BitLen() != 257 {
		t.Fatalf("max+1 bit length = %d, want 257", next.BitLen())
	}
}

func TestGetContractConfig(t *testing.T) {
	cfg, err := GetContractConfig(ChainPolygon)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Exchange != "0x4bFb41d5B3570DeFd03C39a9A4D8dE6Bd8B8982E" {
		t.Fatalf("unexpected exchange address: %s", cfg.Exchange)
	}
	if cfg.Collateral != "0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174" {
		t.Fatalf("unexpected collateral address: %s", cfg.Collateral)
	}

	if _, err := GetContractConfig(Chain(1)); err == nil {
		t.Fatal("expected error for unsupported chain")
	}
}
