package main

import (
	"simple-storage-tui/dapp"
	"simple-storage-tui/wallet"
)

// -------------------- TEA MESSAGES --------------------
// All custom message types for The Elm Architecture

// autoConnectMsg asks for the startup wallet connection
type autoConnectMsg struct{}

// walletConnectedMsg contains result of a wallet connection attempt
type walletConnectedMsg struct {
	seq     uint64
	session *wallet.Session
	err     error
}

// valueLoadedMsg contains the result of a getValue read
type valueLoadedMsg struct {
	res dapp.ReadResult
}

// txOutcomeMsg contains the outcome of a setValue submission
type txOutcomeMsg struct {
	outcome dapp.Outcome
}

// clipboardCopiedMsg indicates clipboard copy completed
type clipboardCopiedMsg struct{}

// logInitMsg signals that log viewport should be initialized
type logInitMsg struct{}
