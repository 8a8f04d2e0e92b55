package dapp

import "github.com/ethereum/go-ethereum/common"

// FujiChainID is the Avalanche Fuji C-Chain id, the only network the app accepts
const FujiChainID int64 = 43113

// Guard gates remote reads and writes on the active chain
type Guard struct {
	Expected int64
}

// NewGuard creates a guard accepting exactly one chain id
func NewGuard(expected int64) Guard {
	return Guard{Expected: expected}
}

// IsAuthorized reports whether remote operations are permitted on chainID
func (g Guard) IsAuthorized(chainID int64) bool {
	return chainID == g.Expected
}

// Connection is the wallet state the core reads. The wallet provider owns it.
type Connection struct {
	Account   *common.Address // nil for a read-only session
	ChainID   int64
	Connected bool
}

// Ready reports whether the connection may be used for remote calls
func (c Connection) Ready(g Guard) bool {
	return c.Connected && g.IsAuthorized(c.ChainID)
}
