package domain

import "math/big"

// Side 订单方向
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Order 订单领域模型：maker/taker 金额均为链上最小单位（6 位小数）
// Immutable once constructed; callers pass it by pointer but never mutate it.
type Order struct {
	TokenID     *big.Int // 市场仓位 token id（uint256）
	Side        Side     // 订单方向
	MakerAmount *big.Int // maker 侧金额（最小单位）
	TakerAmount *big.Int // taker 侧金额（最小单位）
}
