package readiness

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/sirupsen/logrus"

	"github.com/betbot/goexec/internal/chain"
)

var log = logrus.WithField("component", "readiness")

// MinAllowance 交易就绪所需的最低 USDC 授权额度（名义 $1，6 位小数）
var MinAllowance = big.NewInt(1_000_000)

// ChainGateway 就绪检查所需的链上操作
type ChainGateway interface {
	CodeAt(ctx context.Context, account common.Address) ([]byte, error)
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)
	Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error)
	IsApprovedForAll(ctx context.Context, owner, operator common.Address) (bool, error)
	ApproveCollateral(ctx context.Context, spender common.Address, amount *big.Int) (*ethtypes.Receipt, error)
	SetApprovalForAll(ctx context.Context, operator common.Address, approved bool) (*ethtypes.Receipt, error)
}

// Checker 交易就绪检查器。
// proxy 是被检查余额/授权的钱包地址；当它本身是合约（如 Gnosis Safe）时只做只读校验，
// 缺失的授权必须由钱包自己的授权机制补齐，本组件绝不代签。
// 普通账户（EOA）则自动补齐 approve / setApprovalForAll。
type Checker struct {
	gw       ChainGateway
	proxy    common.Address
	exchange common.Address
}

// NewChecker 创建就绪检查器
func NewChecker(gw ChainGateway, proxyWallet, exchange common.Address) *Checker {
	return &Checker{
		gw:       gw,
		proxy:    proxyWallet,
		exchange: exchange,
	}
}

// EnsureTradingReady 按顺序检查：余额 -> 钱包类型 -> 授权。
// 任一步失败立即返回；补齐授权后重跑是 no-op。
func (c *Checker) EnsureTradingReady(ctx context.Context, required *big.Int) error {
	if err := c.ensureBalance(ctx, required); err != nil {
		return err
	}

	isContract, err := c.proxyIsContract(ctx)
	if err != nil {
		return err
	}

	if isContract {
		return c.verifyContractWalletApprovals(ctx)
	}

	if err := c.ensureCollateralAllowance(ctx); err != nil {
		return err
	}
	return c.ensurePositionApproval(ctx)
}

func (c *Checker) proxyIsContract(ctx context.Context) (bool, error) {
	code, err := c.gw.CodeAt(ctx, c.proxy)
	if err != nil {
		return false, fmt.Errorf("probe proxy wallet code: %w", err)
	}
	return len(code) > 0, nil
}

func (c *Checker) ensureBalance(ctx context.Context, required *big.Int) error {
	bal, err := c.gw.BalanceOf(ctx, c.proxy)
	if err != nil {
		return fmt.Errorf("check USDC balance: %w", err)
	}
	if bal.Cmp(required) < 0 {
		return &InsufficientBalanceError{Need: required, Have: bal}
	}
	log.Infof("✅ USDC balance OK: $%s", chain.FormatUnits6(bal))
	return nil
}

// verifyContractWalletApprovals 合约钱包路径：只读校验，缺失授权直接报错
func (c *Checker) verifyContractWalletApprovals(ctx context.Context) error {
	allowance, err := c.gw.Allowance(ctx, c.proxy, c.exchange)
	if err != nil {
		return fmt.Errorf("check USDC allowance: %w", err)
	}
	if allowance.Cmp(MinAllowance) < 0 {
		return ErrAllowanceMissing
	}

	approved, err := c.gw.IsApprovedForAll(ctx, c.proxy, c.exchange)
	if err != nil {
		return fmt.Errorf("check conditional-token approval: %w", err)
	}
	if !approved {
		return ErrApprovalMissing
	}

	log.Info("✅ contract wallet approvals OK")
	return nil
}

// ensureCollateralAllowance EOA 路径：授权不足时自动 approve(MAX) 并等待上链
func (c *Checker) ensureCollateralAllowance(ctx context.Context) error {
	allowance, err := c.gw.Allowance(ctx, c.proxy, c.exchange)
	if err != nil {
		return fmt.Errorf("check USDC allowance: %w", err)
	}
	if allowance.Cmp(MinAllowance) >= 0 {
		log.Info("✅ USDC allowance OK")
		return nil
	}

	log.Warn("⚠️  approving USDC spending to the exchange...")
	receipt, err := c.gw.ApproveCollateral(ctx, c.exchange, chain.MaxUint256())
	if err != nil {
		return fmt.Errorf("approve USDC: %w", err)
	}
	log.Infof("✅ USDC approved. tx: %s", receipt.TxHash.Hex())
	return nil
}

// ensurePositionApproval EOA 路径：ERC-1155 operator approval 缺失时自动补齐
func (c *Checker) ensurePositionApproval(ctx context.Context) error {
	approved, err := c.gw.IsApprovedForAll(ctx, c.proxy, c.exchange)
	if err != nil {
		return fmt.Errorf("check conditional-token approval: %w", err)
	}
	if approved {
		log.Info("✅ conditional-token approval OK")
		return nil
	}

	log.Warn("⚠️  approving conditional tokens to the exchange...")
	receipt, err := c.gw.SetApprovalForAll(ctx, c.exchange, true)
	if err != nil {
		return fmt.Errorf("set approval for all: %w", err)
	}
	log.Infof("✅ conditional tokens approved. tx: %s", receipt.TxHash.Hex())
	return nil
}
