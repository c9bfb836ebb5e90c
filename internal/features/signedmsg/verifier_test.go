package signedmsg

import (
	"context"
	"crypto/ecdsa"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neoguard-console-backend/internal/common/apperr"
)

func newKey(t *testing.T) (*ecdsa.PrivateKey, string) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key, crypto.PubkeyToAddress(key.PublicKey).Hex()
}

func signPersonal(t *testing.T, key *ecdsa.PrivateKey, message string) string {
	t.Helper()
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)
	// Wallets emit V as 27/28.
	sig[64] += 27
	return hexutil.Encode(sig)
}

func signedRequest(t *testing.T, key *ecdsa.PrivateKey, wallet, message string, ts int64) Request {
	t.Helper()
	return Request{
		WalletAddress: wallet,
		Message:       message,
		Signature:     signPersonal(t, key, message),
		Timestamp:     ts,
	}
}

type memoryReplayGuard struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (g *memoryReplayGuard) Mark(_ context.Context, key string, _ time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.seen == nil {
		g.seen = make(map[string]bool)
	}
	if g.seen[key] {
		return false, nil
	}
	g.seen[key] = true
	return true, nil
}

func TestVerifyAcceptsValidRequest(t *testing.T) {
	key, wallet := newKey(t)
	ts := time.Now().UnixMilli()
	message := UpdateSettingMessage("use_spam_detection", true, ts)

	v := NewVerifier(nil)
	err := v.Verify(context.Background(), signedRequest(t, key, wallet, message, ts), message)
	assert.NoError(t, err)
}

func TestVerifyAcceptsLowercasedWallet(t *testing.T) {
	key, wallet := newKey(t)
	ts := time.Now().UnixMilli()
	message := AddExceptionMessage(42, ts)

	req := signedRequest(t, key, wallet, message, ts)
	req.WalletAddress = "0x" + req.WalletAddress[2:]
	v := NewVerifier(nil)
	assert.NoError(t, v.Verify(context.Background(), req, message))
}

func TestVerifyRejectsMissingFields(t *testing.T) {
	key, wallet := newKey(t)
	ts := time.Now().UnixMilli()
	message := RemoveExceptionMessage(7, ts)
	valid := signedRequest(t, key, wallet, message, ts)

	for name, mutate := range map[string]func(*Request){
		"wallet":    func(r *Request) { r.WalletAddress = "" },
		"message":   func(r *Request) { r.Message = "" },
		"signature": func(r *Request) { r.Signature = "" },
		"timestamp": func(r *Request) { r.Timestamp = 0 },
	} {
		req := valid
		mutate(&req)
		err := NewVerifier(nil).Verify(context.Background(), req, message)
		assert.Equal(t, apperr.CodeInvalidRequest, apperr.CodeOf(err), name)
	}
}

// Tampering with parameters after signing must read as a malformed request,
// not a bad signature: the recomputed message no longer matches.
func TestVerifyRejectsParameterTampering(t *testing.T) {
	key, wallet := newKey(t)
	ts := time.Now().UnixMilli()
	signed := UpdateSettingMessage("use_spam_detection", true, ts)
	req := signedRequest(t, key, wallet, signed, ts)

	tampered := UpdateSettingMessage("use_spam_detection", false, ts)
	err := NewVerifier(nil).Verify(context.Background(), req, tampered)
	assert.Equal(t, apperr.CodeInvalidRequest, apperr.CodeOf(err))
}

func TestVerifyRejectsExpiredTimestamp(t *testing.T) {
	key, wallet := newKey(t)
	ts := time.Now().Add(-6 * time.Minute).UnixMilli()
	message := UpdateCommunityInfoMessage(wallet, ts)
	req := signedRequest(t, key, wallet, message, ts)

	err := NewVerifier(nil).Verify(context.Background(), req, message)
	assert.Equal(t, apperr.CodeSignatureExpired, apperr.CodeOf(err))
}

// Expiry is checked before the signature, so even garbage signatures on an
// old timestamp read as expired.
func TestVerifyExpiryPrecedesSignatureCheck(t *testing.T) {
	_, wallet := newKey(t)
	ts := time.Now().Add(-time.Hour).UnixMilli()
	message := AddExceptionMessage(1, ts)
	req := Request{WalletAddress: wallet, Message: message, Signature: "0xdead", Timestamp: ts}

	err := NewVerifier(nil).Verify(context.Background(), req, message)
	assert.Equal(t, apperr.CodeSignatureExpired, apperr.CodeOf(err))
}

func TestVerifyRejectsWrongSigner(t *testing.T) {
	otherKey, _ := newKey(t)
	_, wallet := newKey(t)
	ts := time.Now().UnixMilli()
	message := UpdateTelegramMessage(100, wallet, ts)

	req := Request{
		WalletAddress: wallet,
		Message:       message,
		Signature:     signPersonal(t, otherKey, message),
		Timestamp:     ts,
	}
	err := NewVerifier(nil).Verify(context.Background(), req, message)
	assert.Equal(t, apperr.CodeInvalidSignature, apperr.CodeOf(err))
}

func TestVerifyRejectsMalformedSignature(t *testing.T) {
	_, wallet := newKey(t)
	ts := time.Now().UnixMilli()
	message := SignInMessage(ts)

	req := Request{WalletAddress: wallet, Message: message, Signature: "not-hex", Timestamp: ts}
	err := NewVerifier(nil).Verify(context.Background(), req, message)
	assert.Equal(t, apperr.CodeInvalidSignature, apperr.CodeOf(err))
}

func TestVerifyRejectsReplay(t *testing.T) {
	key, wallet := newKey(t)
	ts := time.Now().UnixMilli()
	message := UpdateSettingMessage("use_url_scanner", true, ts)
	req := signedRequest(t, key, wallet, message, ts)

	v := NewVerifier(&memoryReplayGuard{})
	require.NoError(t, v.Verify(context.Background(), req, message))

	err := v.Verify(context.Background(), req, message)
	assert.Equal(t, apperr.CodeInvalidRequest, apperr.CodeOf(err))
}

func TestRecoverSignerRoundTrip(t *testing.T) {
	key, wallet := newKey(t)
	message := "arbitrary console message"

	signer, err := RecoverSigner(message, signPersonal(t, key, message))
	require.NoError(t, err)
	assert.Equal(t, wallet, signer)
}

func TestTemplatesAreExact(t *testing.T) {
	assert.Equal(t,
		"Update setting use_spam_detection to true at timestamp 1700000000000",
		UpdateSettingMessage("use_spam_detection", true, 1700000000000))
	assert.Equal(t,
		"Update Telegram Chat ID to -100123 for wallet 0xABC at timestamp 1700000000000",
		UpdateTelegramMessage(-100123, "0xABC", 1700000000000))
	assert.Equal(t,
		"Add exception for user 42 at timestamp 5",
		AddExceptionMessage(42, 5))
	assert.Equal(t,
		"Remove exception for user 42 at timestamp 5",
		RemoveExceptionMessage(42, 5))
}
