// Package wallet is the local wallet provider: it holds the signing key,
// dials the node and exposes the resulting connection state.
package wallet

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"simple-storage-tui/dapp"
	"simple-storage-tui/rpc"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrNoRPC is returned when no endpoint is configured
var ErrNoRPC = errors.New("no RPC endpoint (set ETH_RPC_URL)")

// Contract is the contract client a session exposes to the core
type Contract interface {
	dapp.ValueCaller
	dapp.ValueSetter
	Address() common.Address
}

// Options configures a connection attempt
type Options struct {
	RPCURL      string
	Contract    common.Address
	PrivateKey  string // hex, optional; empty gives a read-only session
	WaitReceipt bool
	Timeout     time.Duration // zero uses the rpc default
}

// Session is a live wallet connection
type Session struct {
	Connection dapp.Connection
	Contract   Contract
	URL        string

	client *rpc.Client
}

// Connect loads the key, dials the endpoint and binds the contract
func Connect(opts Options) (*Session, error) {
	if strings.TrimSpace(opts.RPCURL) == "" {
		return nil, ErrNoRPC
	}

	var key *ecdsa.PrivateKey
	if opts.PrivateKey != "" {
		k, err := LoadKey(opts.PrivateKey)
		if err != nil {
			return nil, err
		}
		key = k
	}

	var res rpc.ConnectResult
	if opts.Timeout > 0 {
		res = rpc.ConnectWithTimeout(opts.RPCURL, opts.Timeout)
	} else {
		res = rpc.Connect(opts.RPCURL)
	}
	if res.Error != nil {
		return nil, fmt.Errorf("connect %s: %w", opts.RPCURL, res.Error)
	}

	var signer *rpc.Signer
	if key != nil {
		signer = &rpc.Signer{Key: key, ChainID: big.NewInt(res.Client.ChainID)}
	}
	sc, err := rpc.NewStorageContract(res.Client, opts.Contract, signer)
	if err != nil {
		res.Client.Close()
		return nil, err
	}
	sc.WaitReceipt = opts.WaitReceipt

	return newSession(res.Client, sc, signer), nil
}

func newSession(client *rpc.Client, contract Contract, signer *rpc.Signer) *Session {
	s := &Session{
		Contract: contract,
		client:   client,
		Connection: dapp.Connection{
			ChainID:   client.ChainID,
			Connected: true,
		},
		URL: client.URL,
	}
	if signer != nil {
		addr := signer.Address()
		s.Connection.Account = &addr
	}
	return s
}

// Close releases the RPC connection. Calls still running on it fail, so a
// session with a write in flight should be closed after the write resolves.
func (s *Session) Close() {
	if s == nil || s.client == nil || s.client.Client == nil {
		return
	}
	s.client.Close()
}

// LoadKey parses a hex private key, with or without 0x prefix
func LoadKey(hexKey string) (*ecdsa.PrivateKey, error) {
	k := strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	key, err := crypto.HexToECDSA(k)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}

// AddressOf returns the account address of a key
func AddressOf(key *ecdsa.PrivateKey) common.Address {
	return crypto.PubkeyToAddress(key.PublicKey)
}
