package readiness

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/betbot/goexec/internal/chain"
)

// InsufficientBalanceError 抵押品余额不足（金额为链上最小单位）
type InsufficientBalanceError struct {
	Need *big.Int
	Have *big.Int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient USDC balance: need $%s, have $%s",
		chain.FormatUnits6(e.Need), chain.FormatUnits6(e.Have))
}

var (
	// ErrAllowanceMissing 合约钱包缺少 USDC 授权；本组件不会代签，需要钱包自己的授权流程补齐
	ErrAllowanceMissing = errors.New("USDC allowance missing on contract wallet: approve the exchange from the wallet's own authorization flow")

	// ErrApprovalMissing 合约钱包缺少 ERC-1155 operator approval
	ErrApprovalMissing = errors.New("conditional-token approval missing on contract wallet: set approval for the exchange from the wallet's own authorization flow")
)
