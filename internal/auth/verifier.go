package auth

import "strings"

// Principal is the identity established for a session at handshake time.
// It never changes for the lifetime of the session.
type Principal struct {
	UserID string
}

// Verifier resolves a raw credential to a principal. The gateway makes a
// single call per handshake attempt; there is no retry policy.
type Verifier interface {
	Verify(credential string) (Principal, bool)
}

// StaticVerifier maps opaque tokens to user IDs. Tokens are provisioned out
// of band (see the AUTH_TOKENS configuration key).
type StaticVerifier struct {
	tokens map[string]string
}

// NewStaticVerifier builds a verifier over a fixed token table.
func NewStaticVerifier(tokens map[string]string) *StaticVerifier {
	copied := make(map[string]string, len(tokens))
	for token, userID := range tokens {
		copied[token] = userID
	}
	return &StaticVerifier{tokens: copied}
}

// Verify looks the credential up in the token table.
func (v *StaticVerifier) Verify(credential string) (Principal, bool) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return Principal{}, false
	}
	userID, ok := v.tokens[credential]
	if !ok || userID == "" {
		return Principal{}, false
	}
	return Principal{UserID: userID}, true
}
