package helpers

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestShortenAddr(t *testing.T) {
	assert.Equal(t, "0x5B38…ddC4", ShortenAddr("0x5B38Da6a701c568545dCfcB03FcB875f56beddC4"))
	assert.Equal(t, "0x12", ShortenAddr("0x12"))
}

func TestIsValidEthAddress(t *testing.T) {
	assert.True(t, IsValidEthAddress("0x5B38Da6a701c568545dCfcB03FcB875f56beddC4"))
	assert.False(t, IsValidEthAddress("5B38Da6a701c568545dCfcB03FcB875f56beddC4"))
	assert.False(t, IsValidEthAddress("0x5B38Da6a701c568545dCfcB03FcB875f56beddC"))
	assert.False(t, IsValidEthAddress(""))
}

func TestFormatValue(t *testing.T) {
	cases := map[string]string{
		"0":          "0",
		"999":        "999",
		"1000":       "1,000",
		"42424":      "42,424",
		"1234567890": "1,234,567,890",
	}
	for in, want := range cases {
		v, _ := new(big.Int).SetString(in, 10)
		assert.Equal(t, want, FormatValue(v))
	}
	assert.Equal(t, "—", FormatValue(nil))
}

func TestReadAt(t *testing.T) {
	assert.Equal(t, "loading…", ReadAt(3, true))
	assert.Equal(t, "never", ReadAt(0, false))
	assert.Equal(t, "read #3", ReadAt(3, false))
}

func TestSetValueURI(t *testing.T) {
	addr := common.HexToAddress("0xd9145CCE52D386f254917e481eB44e9943F39138")
	assert.Equal(t,
		"ethereum:0xd9145CCE52D386f254917e481eB44e9943F39138@43113/setValue?uint256=42",
		SetValueURI(addr, 43113, big.NewInt(42)))
	assert.Equal(t,
		"ethereum:0xd9145CCE52D386f254917e481eB44e9943F39138@43113/setValue",
		SetValueURI(addr, 43113, nil))
}

func TestQRCode(t *testing.T) {
	qr := QRCode("ethereum:0xd9145CCE52D386f254917e481eB44e9943F39138@43113")
	assert.NotEmpty(t, qr)
	assert.Greater(t, strings.Count(qr, "\n"), 10)
}
