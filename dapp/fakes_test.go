package dapp

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

var testAccount = common.HexToAddress("0x5B38Da6a701c568545dCfcB03FcB875f56beddC4")

func fujiConn() Connection {
	acc := testAccount
	return Connection{Account: &acc, ChainID: FujiChainID, Connected: true}
}

type fakeContract struct {
	value    *big.Int
	readErr  error
	writeErr error
	reads    int
	writes   []*big.Int
}

func (f *fakeContract) GetValue(ctx context.Context) (*big.Int, error) {
	f.reads++
	if f.readErr != nil {
		return nil, f.readErr
	}
	return new(big.Int).Set(f.value), nil
}

func (f *fakeContract) SetValue(ctx context.Context, v *big.Int) (common.Hash, error) {
	f.writes = append(f.writes, new(big.Int).Set(v))
	if f.writeErr != nil {
		return common.Hash{}, f.writeErr
	}
	f.value = new(big.Int).Set(v)
	return common.BigToHash(v), nil
}
