package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"simple-storage-tui/helpers"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
)

// Environment variables read at startup
const (
	EnvContractAddress = "CONTRACT_ADDRESS"
	EnvRPCURL          = "ETH_RPC_URL"
	EnvPrivateKey      = "WALLET_PRIVATE_KEY"
)

// ConfigurationError is fatal: the process must not start without a target
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s %s", e.Key, e.Reason)
}

// Settings are the process-level settings taken from the environment
type Settings struct {
	ContractAddress common.Address
	RPCURL          string
	PrivateKey      string
}

// LoadDotEnv loads .env files into the environment. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// LoadSettings reads settings through getenv (os.Getenv when nil)
func LoadSettings(getenv func(string) string) (Settings, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	addr := strings.TrimSpace(getenv(EnvContractAddress))
	if addr == "" {
		return Settings{}, &ConfigurationError{Key: EnvContractAddress, Reason: "is not set"}
	}
	if !helpers.IsValidEthAddress(addr) {
		return Settings{}, &ConfigurationError{Key: EnvContractAddress, Reason: fmt.Sprintf("%q is not a 0x-prefixed 20-byte hex address", addr)}
	}

	return Settings{
		ContractAddress: common.HexToAddress(addr),
		RPCURL:          strings.TrimSpace(getenv(EnvRPCURL)),
		PrivateKey:      strings.TrimSpace(getenv(EnvPrivateKey)),
	}, nil
}
