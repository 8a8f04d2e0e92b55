package dapp

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a failed transaction for display
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindUserRejected
	KindReverted
	KindUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case KindUserRejected:
		return "rejected"
	case KindReverted:
		return "reverted"
	case KindUnknown:
		return "unknown"
	default:
		return "none"
	}
}

// Message is the user-facing text for the kind
func (k ErrorKind) Message() string {
	switch k {
	case KindUserRejected:
		return MsgRejected
	case KindReverted:
		return MsgReverted
	default:
		return MsgFailed
	}
}

// ParseKind maps a config name ("rejected", "reverted", "unknown") to a kind
func ParseKind(s string) (ErrorKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rejected", "user_rejected":
		return KindUserRejected, nil
	case "reverted":
		return KindReverted, nil
	case "unknown", "failed":
		return KindUnknown, nil
	}
	return KindNone, fmt.Errorf("unknown error kind %q", s)
}

// Rule maps a substring of a wallet or RPC error message to a kind
type Rule struct {
	Pattern string
	Kind    ErrorKind
}

// DefaultRules covers the messages of common wallets and EVM nodes
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: "user rejected", Kind: KindUserRejected},
		{Pattern: "user denied", Kind: KindUserRejected},
		{Pattern: "revert", Kind: KindReverted},
	}
}

// Classifier matches error text against a rule set. Matching is
// case-insensitive, the longest matching pattern wins and on a tie the rule
// added last wins, so configured rules can override the defaults.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier with the default rules followed by extra
func NewClassifier(extra ...Rule) *Classifier {
	c := &Classifier{rules: DefaultRules()}
	c.Add(extra...)
	return c
}

// Add appends rules. Empty patterns are ignored.
func (c *Classifier) Add(rules ...Rule) {
	for _, r := range rules {
		p := strings.ToLower(strings.TrimSpace(r.Pattern))
		if p == "" {
			continue
		}
		c.rules = append(c.rules, Rule{Pattern: p, Kind: r.Kind})
	}
}

// Classify returns the kind for an error message, KindUnknown if nothing matches
func (c *Classifier) Classify(reason string) ErrorKind {
	lower := strings.ToLower(reason)
	best, bestLen := KindUnknown, 0
	for _, r := range c.rules {
		p := strings.ToLower(r.Pattern)
		if len(p) >= bestLen && strings.Contains(lower, p) {
			best, bestLen = r.Kind, len(p)
		}
	}
	return best
}
