package signedmsg

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"neoguard-console-backend/internal/common/apperr"
	"neoguard-console-backend/internal/common/logger"
)

// MaxAge bounds the replay window for a signed request.
const MaxAge = 5 * time.Minute

// Request is the signed-write envelope every mutating endpoint submits
// alongside its own parameters.
type Request struct {
	WalletAddress string `json:"walletAddress"`
	Message       string `json:"message"`
	Signature     string `json:"signature"`
	Timestamp     int64  `json:"timestamp"`
}

// ReplayGuard marks a (wallet, message) pair as used within the replay
// window. Mark reports false when the pair was already seen.
type ReplayGuard interface {
	Mark(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// Verifier checks signed-write envelopes against their operation templates.
type Verifier struct {
	replay ReplayGuard
	now    func() time.Time
}

func NewVerifier(replay ReplayGuard) *Verifier {
	return &Verifier{replay: replay, now: time.Now}
}

// Verify runs the envelope checks in order: presence, template match,
// expiry, signer recovery, replay. expected is the message rebuilt from the
// request's own parameters; matching it before touching the signature binds
// the signed content to the change actually being applied. Resource
// ownership stays with the caller.
func (v *Verifier) Verify(ctx context.Context, req Request, expected string) error {
	if req.WalletAddress == "" || req.Message == "" || req.Signature == "" || req.Timestamp == 0 {
		return apperr.New(apperr.CodeInvalidRequest, "walletAddress, message, signature and timestamp are required")
	}

	if req.Message != expected {
		return apperr.New(apperr.CodeInvalidRequest, "message does not match request parameters")
	}

	age := v.now().Sub(time.UnixMilli(req.Timestamp))
	if age > MaxAge {
		return apperr.New(apperr.CodeSignatureExpired, "signature expired")
	}

	signer, err := RecoverSigner(req.Message, req.Signature)
	if err != nil {
		return apperr.Wrap(err, apperr.CodeInvalidSignature, "signature verification failed")
	}
	if !strings.EqualFold(signer, req.WalletAddress) {
		return apperr.New(apperr.CodeInvalidSignature, "signature does not match wallet address")
	}

	if v.replay != nil {
		digest := sha256.Sum256([]byte(req.Message))
		key := "signed:" + strings.ToLower(req.WalletAddress) + ":" + hex.EncodeToString(digest[:])
		fresh, err := v.replay.Mark(ctx, key, MaxAge)
		if err != nil {
			// Redis being down fails open: the timestamp window still
			// bounds exposure and the console stays usable.
			logger.Warn().Err(err).Msg("replay guard unavailable")
		} else if !fresh {
			return apperr.New(apperr.CodeInvalidRequest, "signature already used")
		}
	}

	return nil
}

// RecoverSigner returns the address that produced an EIP-191 personal_sign
// signature over message.
func RecoverSigner(message, signature string) (string, error) {
	sig, err := hexutil.Decode(ensureHexPrefix(signature))
	if err != nil {
		return "", err
	}
	if len(sig) != crypto.SignatureLength {
		return "", hexutil.ErrSyntax
	}

	// Wallets emit V as 27/28; go-ethereum expects 0/1.
	sigCopy := make([]byte, crypto.SignatureLength)
	copy(sigCopy, sig)
	if sigCopy[crypto.RecoveryIDOffset] >= 27 {
		sigCopy[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sigCopy)
	if err != nil {
		return "", err
	}
	return crypto.PubkeyToAddress(*pub).Hex(), nil
}

func ensureHexPrefix(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s
	}
	return "0x" + s
}
