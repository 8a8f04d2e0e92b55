package rpc

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// SimpleStorageABI is the interface of the deployed storage contract
const SimpleStorageABI = `[
	{"inputs":[],"name":"getValue","outputs":[{"type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"_value","type":"uint256"}],"name":"setValue","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

// ErrExecutionReverted is returned when a mined transaction has a failed receipt
var ErrExecutionReverted = errors.New("execution reverted")

// ErrReadOnly is returned by SetValue when no signing key is configured
var ErrReadOnly = errors.New("read-only session: no signing key")

// Backend is the subset of ethclient.Client the storage contract needs
type Backend interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Signer holds the key used to sign setValue transactions
type Signer struct {
	Key     *ecdsa.PrivateKey
	ChainID *big.Int
}

// Address returns the account of the signing key
func (s *Signer) Address() common.Address {
	return crypto.PubkeyToAddress(s.Key.PublicKey)
}

// StorageContract binds getValue/setValue of a deployed contract
type StorageContract struct {
	backend Backend
	address common.Address
	abi     abi.ABI
	signer  *Signer

	// WaitReceipt makes SetValue block until the transaction is mined and
	// report a failed receipt as ErrExecutionReverted.
	WaitReceipt  bool
	PollInterval time.Duration
}

// NewStorageContract binds the contract at address. signer may be nil for
// read-only use.
func NewStorageContract(backend Backend, address common.Address, signer *Signer) (*StorageContract, error) {
	parsed, err := abi.JSON(strings.NewReader(SimpleStorageABI))
	if err != nil {
		return nil, fmt.Errorf("parse storage abi: %w", err)
	}
	return &StorageContract{
		backend:      backend,
		address:      address,
		abi:          parsed,
		signer:       signer,
		PollInterval: 2 * time.Second,
	}, nil
}

// Address returns the contract address
func (c *StorageContract) Address() common.Address {
	return c.address
}

// GetValue calls getValue() at the latest block
func (c *StorageContract) GetValue(ctx context.Context) (*big.Int, error) {
	data, err := c.abi.Pack("getValue")
	if err != nil {
		return nil, err
	}

	out, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &c.address, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call getValue: %w", err)
	}

	res, err := c.abi.Unpack("getValue", out)
	if err != nil {
		return nil, fmt.Errorf("decode getValue: %w", err)
	}
	v, ok := res[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("decode getValue: unexpected type %T", res[0])
	}
	return v, nil
}

// SetValue signs and broadcasts setValue(value) and returns the tx hash
func (c *StorageContract) SetValue(ctx context.Context, value *big.Int) (common.Hash, error) {
	if c.signer == nil {
		return common.Hash{}, ErrReadOnly
	}

	data, err := c.abi.Pack("setValue", value)
	if err != nil {
		return common.Hash{}, fmt.Errorf("encode setValue: %w", err)
	}

	tx, err := c.buildTx(ctx, data)
	if err != nil {
		return common.Hash{}, err
	}

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.signer.ChainID), c.signer.Key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("sign setValue: %w", err)
	}
	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("send setValue: %w", err)
	}

	if c.WaitReceipt {
		return signed.Hash(), c.waitMined(ctx, signed.Hash())
	}
	return signed.Hash(), nil
}

// buildTx fills nonce, gas and fees. A dynamic fee tx is used when the
// chain reports a base fee.
func (c *StorageContract) buildTx(ctx context.Context, data []byte) (*types.Transaction, error) {
	from := c.signer.Address()

	nonce, err := c.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("fetch nonce: %w", err)
	}

	gas, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{From: from, To: &c.address, Data: data})
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", err)
	}

	head, err := c.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch header: %w", err)
	}

	if head.BaseFee == nil {
		price, err := c.backend.SuggestGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("suggest gas price: %w", err)
		}
		return types.NewTx(&types.LegacyTx{
			Nonce:    nonce,
			To:       &c.address,
			Gas:      gas,
			GasPrice: price,
			Data:     data,
		}), nil
	}

	tip, err := c.backend.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest gas tip: %w", err)
	}
	// fee cap: 2*baseFee + tip
	feeCap := new(big.Int).Add(new(big.Int).Mul(head.BaseFee, big.NewInt(2)), tip)

	return types.NewTx(&types.DynamicFeeTx{
		ChainID:   c.signer.ChainID,
		Nonce:     nonce,
		To:        &c.address,
		Gas:       gas,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Data:      data,
	}), nil
}

func (c *StorageContract) waitMined(ctx context.Context, hash common.Hash) error {
	ticker := time.NewTicker(c.PollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.backend.TransactionReceipt(ctx, hash)
		switch {
		case err == nil:
			if receipt.Status == types.ReceiptStatusFailed {
				return fmt.Errorf("tx %s: %w", hash.Hex(), ErrExecutionReverted)
			}
			return nil
		case !errors.Is(err, ethereum.NotFound):
			return fmt.Errorf("fetch receipt: %w", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
