package service

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"neoguard-console-backend/internal/common/apperr"
	"neoguard-console-backend/internal/common/logger"
	"neoguard-console-backend/internal/common/middleware"
	"neoguard-console-backend/internal/features/signedmsg"
	"neoguard-console-backend/internal/features/wallet/models"
	"neoguard-console-backend/internal/features/wallet/repository"
)

type walletService struct {
	repo      repository.Repository
	chain     BalanceChecker
	verifier  *signedmsg.Verifier
	threshold *big.Int // whole tokens
	decimals  int
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewWalletService(
	repo repository.Repository,
	chain BalanceChecker,
	verifier *signedmsg.Verifier,
	threshold int64,
	decimals int,
	jwtSecret []byte,
	tokenTTL time.Duration,
) WalletService {
	return &walletService{
		repo:      repo,
		chain:     chain,
		verifier:  verifier,
		threshold: big.NewInt(threshold),
		decimals:  decimals,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

func (s *walletService) GetUser(ctx context.Context, wallet string) (*models.Account, error) {
	if wallet == "" {
		return nil, apperr.New(apperr.CodeInvalidRequest, "walletAddress is required")
	}
	account, err := s.repo.GetByWallet(ctx, wallet)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeUpstream, "failed to load account")
	}
	if account == nil {
		return nil, apperr.New(apperr.CodeNotFound, "no account for this wallet")
	}
	return account, nil
}

func (s *walletService) CheckEligibility(ctx context.Context, wallet string) (*models.EligibilityResult, error) {
	if wallet == "" {
		return nil, apperr.New(apperr.CodeInvalidRequest, "walletAddress is required")
	}

	balance, meets, err := s.balanceAndThreshold(ctx, wallet)
	if err != nil {
		return nil, err
	}

	// Eligibility is a cached snapshot: refresh it when an account exists,
	// never treat the stored flag as ground truth.
	account, err := s.repo.GetByWallet(ctx, wallet)
	if err == nil && account != nil && account.IsEligible != meets {
		if err := s.repo.UpdateEligibility(ctx, wallet, meets); err != nil {
			logger.Warn().Err(err).Str("wallet", wallet).Msg("eligibility refresh failed")
		}
	}

	return &models.EligibilityResult{MeetsThreshold: meets, Balance: balance.String()}, nil
}

func (s *walletService) CreateAccountIfEligible(ctx context.Context, wallet string) (*models.CreateAccountResult, error) {
	if wallet == "" {
		return nil, apperr.New(apperr.CodeInvalidRequest, "walletAddress is required")
	}

	existing, err := s.repo.GetByWallet(ctx, wallet)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeUpstream, "failed to load account")
	}
	if existing != nil {
		return &models.CreateAccountResult{
			UserCreated: false,
			AccountID:   existing.ID,
			SettingsID:  existing.SettingsID,
		}, nil
	}

	_, meets, err := s.balanceAndThreshold(ctx, wallet)
	if err != nil {
		return nil, err
	}
	if !meets {
		return nil, apperr.New(apperr.CodeForbidden, "wallet does not meet the token threshold")
	}

	accountID, settingsID, err := s.repo.CreateWithSettings(ctx, wallet, true)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeUpstream, "failed to create account")
	}

	logger.Info().Str("wallet", wallet).Int64("account_id", accountID).Msg("account created")
	return &models.CreateAccountResult{
		UserCreated: true,
		AccountID:   accountID,
		SettingsID:  settingsID,
	}, nil
}

func (s *walletService) VerifySignature(wallet, message, signature string) (bool, error) {
	if wallet == "" || message == "" || signature == "" {
		return false, apperr.New(apperr.CodeInvalidRequest, "walletAddress, message and signature are required")
	}
	signer, err := signedmsg.RecoverSigner(message, signature)
	if err != nil {
		return false, nil
	}
	return strings.EqualFold(signer, wallet), nil
}

// Verify checks a timestamped sign-in envelope and the balance gate, then
// issues a bearer token for the wallet.
func (s *walletService) Verify(ctx context.Context, req signedmsg.Request) (string, error) {
	expected := signedmsg.SignInMessage(req.Timestamp)
	if err := s.verifier.Verify(ctx, req, expected); err != nil {
		return "", err
	}

	_, meets, err := s.balanceAndThreshold(ctx, req.WalletAddress)
	if err != nil {
		return "", err
	}
	if !meets {
		return "", apperr.New(apperr.CodeForbidden, "wallet does not meet the token threshold")
	}

	now := time.Now()
	claims := middleware.Claims{
		Wallet: strings.ToLower(req.WalletAddress),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", apperr.Wrap(err, apperr.CodeMisconfigured, "failed to sign token")
	}
	return token, nil
}

// balanceAndThreshold returns the whole-token balance and whether it meets
// the threshold.
func (s *walletService) balanceAndThreshold(ctx context.Context, wallet string) (*big.Int, bool, error) {
	raw, err := s.chain.TokenBalance(ctx, wallet)
	if err != nil {
		return nil, false, apperr.Wrap(err, apperr.CodeUpstream, "balance check failed")
	}
	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(s.decimals)), nil)
	whole := new(big.Int).Quo(raw, unit)
	return whole, whole.Cmp(s.threshold) >= 0, nil
}
