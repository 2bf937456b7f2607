package parser

import (
	"errors"
	"strings"
)

var ErrMerchantNotFound = errors.New("merchant not found")

// Merchant is a resolved merchant; Signature is nil for sender-name matches.
type Merchant struct {
	Name      string
	Category  string
	Signature *MerchantSignature
}

// ResolveMerchant matches the registry against sender and content by substring,
// then falls back to the sender's display name.
func (p *RulesParser) ResolveMerchant(sender, content string) (Merchant, error) {
	ls := strings.ToLower(sender)
	lc := strings.ToLower(content)

	for i := range p.registry {
		sig := &p.registry[i]
		if sig.Key == "" {
			continue
		}
		if strings.Contains(ls, sig.Key) || strings.Contains(lc, sig.Key) {
			return Merchant{Name: sig.CanonicalName, Category: sig.Category, Signature: sig}, nil
		}
	}

	if name := senderName(sender); name != "" {
		return Merchant{Name: name}, nil
	}
	return Merchant{}, ErrMerchantNotFound
}

// senderName returns the text before the first '<' or '@'.
func senderName(sender string) string {
	if i := strings.IndexAny(sender, "<@"); i >= 0 {
		sender = sender[:i]
	}
	return strings.Trim(strings.TrimSpace(sender), `"' `)
}
