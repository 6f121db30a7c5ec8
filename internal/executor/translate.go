package executor

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/betbot/goexec/internal/domain"
)

// ErrDegenerateOrder 价格计算出现零除数（BUY 的 taker 或 SELL 的 maker 为 0）
var ErrDegenerateOrder = errors.New("degenerate order: zero divisor in price computation")

// Translate 把 maker/taker 金额转换成执行端理解的 (price, size)。
// 纯函数，无副作用；金额按 6 位小数换算成十进制单位。
//
// BUY:  price = maker/taker, size = taker（我们出 USDC，对手出 token）
// SELL: price = taker/maker, size = maker（我们出 token，对手出 USDC）
func Translate(order *domain.Order) (price, size decimal.Decimal, err error) {
	maker := decimal.NewFromBigInt(order.MakerAmount, -6)
	taker := decimal.NewFromBigInt(order.TakerAmount, -6)

	switch order.Side {
	case domain.SideBuy:
		if order.TakerAmount.Sign() == 0 {
			return decimal.Zero, decimal.Zero, ErrDegenerateOrder
		}
		return maker.Div(taker), taker, nil
	case domain.SideSell:
		if order.MakerAmount.Sign() == 0 {
			return decimal.Zero, decimal.Zero, ErrDegenerateOrder
		}
		return taker.Div(maker), maker, nil
	default:
		return decimal.Zero, decimal.Zero, fmt.Errorf("unknown order side: %q", order.Side)
	}
}
