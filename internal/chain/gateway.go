package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "chain_gateway")

const (
	// readCallTimeout 链上只读调用的兜底超时（调用方 ctx 无 deadline 时生效）
	readCallTimeout = 15 * time.Second
	// writeWaitTimeout 发送交易并等待上链的兜底超时
	writeWaitTimeout = 2 * time.Minute
)

const erc20ABIJSON = `[
  {"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
  {"inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"name":"allowance","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
  {"inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"name":"approve","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"}
]`

const erc1155ABIJSON = `[
  {"inputs":[{"name":"operator","type":"address"},{"name":"approved","type":"bool"}],"name":"setApprovalForAll","outputs":[],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[{"name":"account","type":"address"},{"name":"operator","type":"address"}],"name":"isApprovedForAll","outputs":[{"name":"","type":"bool"}],"stateMutability":"view","type":"function"}
]`

// Gateway 链上网关：
// - 查询 USDC 余额 / allowance、ERC1155 operator approval、合约 bytecode
// - 发送 approve / setApprovalForAll 交易并等待上链
// 所有读调用都直接打到节点，不做任何缓存。
type Gateway struct {
	client     *ethclient.Client
	privateKey *ecdsa.PrivateKey
	chainID    *big.Int

	collateral        common.Address
	conditionalTokens common.Address
	exchange          common.Address

	erc20ABI   abi.ABI
	erc1155ABI abi.ABI

	// writeMu 串行化所有带 nonce 的写操作，避免并发 approve 撞 nonce
	writeMu sync.Mutex
}

// NewGateway 创建链上网关
func NewGateway(rpcURL string, chainID Chain, privateKey *ecdsa.PrivateKey) (*Gateway, error) {
	c, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("连接RPC节点失败: %w", err)
	}
	cfg, err := GetContractConfig(chainID)
	if err != nil {
		return nil, err
	}

	a20, err := abi.JSON(strings.NewReader(erc20ABIJSON))
	if err != nil {
		return nil, fmt.Errorf("解析ERC20 ABI失败: %w", err)
	}
	a1155, err := abi.JSON(strings.NewReader(erc1155ABIJSON))
	if err != nil {
		return nil, fmt.Errorf("解析ERC1155 ABI失败: %w", err)
	}

	return &Gateway{
		client:            c,
		privateKey:        privateKey,
		chainID:           big.NewInt(int64(chainID)),
		collateral:        common.HexToAddress(cfg.Collateral),
		conditionalTokens: common.HexToAddress(cfg.ConditionalTokens),
		exchange:          common.HexToAddress(cfg.Exchange),
		erc20ABI:          a20,
		erc1155ABI:        a1155,
	}, nil
}

// Exchange 交易所合约地址
func (g *Gateway) Exchange() common.Address {
	return g.exchange
}

// SignerAddress 签名私钥对应的地址
func (g *Gateway) SignerAddress() common.Address {
	return crypto.PubkeyToAddress(g.privateKey.PublicKey)
}

func withDefaultDeadline(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// CodeAt 获取地址的合约 bytecode；空字节表示普通账户（EOA）
func (g *Gateway) CodeAt(ctx context.Context, account common.Address) ([]byte, error) {
	ctx, cancel := withDefaultDeadline(ctx, readCallTimeout)
	defer cancel()

	code, err := g.client.CodeAt(ctx, account, nil)
	if err != nil {
		return nil, fmt.Errorf("获取合约代码失败: %w", err)
	}
	return code, nil
}

// BalanceOf 查询 USDC 余额（最小单位）
func (g *Gateway) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	ctx, cancel := withDefaultDeadline(ctx, readCallTimeout)
	defer cancel()

	data, err := g.erc20ABI.Pack("balanceOf", owner)
	if err != nil {
		return nil, err
	}
	raw, err := g.client.CallContract(ctx, ethereum.CallMsg{To: &g.collateral, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call usdc.balanceOf: %w", err)
	}
	var bal *big.Int
	if err := g.erc20ABI.UnpackIntoInterface(&bal, "balanceOf", raw); err != nil {
		return nil, err
	}
	return bal, nil
}

// Allowance 查询 USDC 授权额度（最小单位）
func (g *Gateway) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	ctx, cancel := withDefaultDeadline(ctx, readCallTimeout)
	defer cancel()

	data, err := g.erc20ABI.Pack("allowance", owner, spender)
	if err != nil {
		return nil, err
	}
	raw, err := g.client.CallContract(ctx, ethereum.CallMsg{To: &g.collateral, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call usdc.allowance: %w", err)
	}
	var allowance *big.Int
	if err := g.erc20ABI.UnpackIntoInterface(&allowance, "allowance", raw); err != nil {
		return nil, err
	}
	return allowance, nil
}

// IsApprovedForAll 查询 ERC1155 operator approval
func (g *Gateway) IsApprovedForAll(ctx context.Context, owner, operator common.Address) (bool, error) {
	ctx, cancel := withDefaultDeadline(ctx, readCallTimeout)
	defer cancel()

	data, err := g.erc1155ABI.Pack("isApprovedForAll", owner, operator)
	if err != nil {
		return false, err
	}
	raw, err := g.client.CallContract(ctx, ethereum.CallMsg{To: &g.conditionalTokens, Data: data}, nil)
	if err != nil {
		return false, fmt.Errorf("call ctf.isApprovedForAll: %w", err)
	}
	var ok bool
	if err := g.erc1155ABI.UnpackIntoInterface(&ok, "isApprovedForAll", raw); err != nil {
		return false, err
	}
	return ok, nil
}

// ApproveCollateral 发送 USDC approve 交易并等待上链。
// 注意：此方法会产生链上交易；调用方应自行做好风控/确认。
func (g *Gateway) ApproveCollateral(ctx context.Context, spender common.Address, amount *big.Int) (*ethtypes.Receipt, error) {
	data, err := g.erc20ABI.Pack("approve", spender, amount)
	if err != nil {
		return nil, err
	}
	return g.sendAndWait(ctx, g.collateral, data)
}

// SetApprovalForAll 发送 ERC1155 setApprovalForAll 交易并等待上链
func (g *Gateway) SetApprovalForAll(ctx context.Context, operator common.Address, approved bool) (*ethtypes.Receipt, error) {
	data, err := g.erc1155ABI.Pack("setApprovalForAll", operator, approved)
	if err != nil {
		return nil, err
	}
	return g.sendAndWait(ctx, g.conditionalTokens, data)
}

// sendAndWait 构造、签名并发送交易，等待回执后返回。
// 持有 writeMu 直到交易上链，保证同一账户的 nonce 分配串行。
func (g *Gateway) sendAndWait(ctx context.Context, to common.Address, data []byte) (*ethtypes.Receipt, error) {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	ctx, cancel := withDefaultDeadline(ctx, writeWaitTimeout)
	defer cancel()

	tx, err := g.buildSignedTx(ctx, to, data, big.NewInt(0))
	if err != nil {
		return nil, err
	}
	if err := g.client.SendTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("发送交易失败: %w", err)
	}

	log.Infof("⏳ 等待交易上链: %s", tx.Hash().Hex())
	receipt, err := bind.WaitMined(ctx, g.client, tx)
	if err != nil {
		return nil, fmt.Errorf("等待交易回执失败: %w", err)
	}
	if receipt.Status != ethtypes.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("交易被 revert: %s", tx.Hash().Hex())
	}
	return receipt, nil
}

func (g *Gateway) buildSignedTx(ctx context.Context, to common.Address, data []byte, value *big.Int) (*ethtypes.Transaction, error) {
	from := g.SignerAddress()
	nonce, err := g.client.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("获取nonce失败: %w", err)
	}
	gasPrice, err := g.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取gas价格失败: %w", err)
	}
	gasLimit, err := g.client.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &to,
		Data:  data,
		Value: value,
	})
	if err != nil {
		// 某些节点对 ERC20 approve 的 EstimateGas 可能不稳定；给一个保守兜底
		gasLimit = 120000
	}
	tx := ethtypes.NewTransaction(nonce, to, value, gasLimit, gasPrice, data)
	signed, err := ethtypes.SignTx(tx, ethtypes.NewEIP155Signer(g.chainID), g.privateKey)
	if err != nil {
		return nil, fmt.Errorf("签名交易失败: %w", err)
	}
	return signed, nil
}
