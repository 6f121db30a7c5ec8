package chain

import (
	"fmt"
	"math/big"
)

var unitsPerDollar = big.NewInt(1_000_000)

// MaxUint256 返回 2^256 - 1，用于无限额度授权
func MaxUint256() *big.Int {
	return new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
}

// FormatUnits6 格式化为 6 位小数的字符串（不追求极致精度，用于展示/诊断足够）
func FormatUnits6(v *big.Int) string {
	if v == nil {
		return "0"
	}
	whole := new(big.Int).Div(v, unitsPerDollar)
	frac := new(big.Int).Mod(v, unitsPerDollar)
	return fmt.Sprintf("%s.%06d", whole.String(), frac.Int64())
}
