package service

import (
	"context"
	"strings"

	"neoguard-console-backend/internal/common/apperr"
	"neoguard-console-backend/internal/common/logger"
	"neoguard-console-backend/internal/features/settings/models"
	"neoguard-console-backend/internal/features/settings/repository"
	"neoguard-console-backend/internal/features/signedmsg"
)

// SettingsService reads and mutates moderation toggles and community
// metadata. All mutations require a signed-write envelope.
type SettingsService interface {
	GetSettings(ctx context.Context, wallet string) (*models.Settings, error)
	UpdateSetting(ctx context.Context, req signedmsg.Request, name string, value bool) error
	UpdateCommunityInfo(ctx context.Context, req signedmsg.Request, info models.CommunityInfo) error
	UpdateTelegram(ctx context.Context, req signedmsg.Request, chatID int64) error
}

type settingsService struct {
	repo     repository.Repository
	verifier *signedmsg.Verifier
}

func NewSettingsService(repo repository.Repository, verifier *signedmsg.Verifier) SettingsService {
	return &settingsService{repo: repo, verifier: verifier}
}

func (s *settingsService) GetSettings(ctx context.Context, wallet string) (*models.Settings, error) {
	if wallet == "" {
		return nil, apperr.New(apperr.CodeInvalidRequest, "walletAddress is required")
	}
	settings, err := s.repo.GetByWallet(ctx, wallet)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeUpstream, "failed to load settings")
	}
	if settings == nil {
		return nil, apperr.New(apperr.CodeNotFound, "no account for this wallet")
	}
	return settings, nil
}

func (s *settingsService) UpdateSetting(ctx context.Context, req signedmsg.Request, name string, value bool) error {
	column, ok := models.SettingColumns[name]
	if !ok {
		return apperr.Newf(apperr.CodeInvalidRequest, "unknown setting %q", name)
	}

	expected := signedmsg.UpdateSettingMessage(name, value, req.Timestamp)
	if err := s.verifier.Verify(ctx, req, expected); err != nil {
		return err
	}

	settingsID, err := s.ownedSettingsID(ctx, req.WalletAddress)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateFlag(ctx, settingsID, column, value); err != nil {
		return apperr.Wrap(err, apperr.CodeUpstream, "failed to update setting")
	}

	logger.Info().
		Str("wallet", req.WalletAddress).
		Str("setting", name).
		Bool("value", value).
		Msg("setting updated")
	return nil
}

func (s *settingsService) UpdateCommunityInfo(ctx context.Context, req signedmsg.Request, info models.CommunityInfo) error {
	expected := signedmsg.UpdateCommunityInfoMessage(req.WalletAddress, req.Timestamp)
	if err := s.verifier.Verify(ctx, req, expected); err != nil {
		return err
	}

	updated, err := s.repo.UpdateCommunityInfo(ctx, req.WalletAddress, info)
	if err != nil {
		return apperr.Wrap(err, apperr.CodeUpstream, "failed to update community info")
	}
	if !updated {
		return apperr.New(apperr.CodeNotFound, "no account for this wallet")
	}
	return nil
}

func (s *settingsService) UpdateTelegram(ctx context.Context, req signedmsg.Request, chatID int64) error {
	if chatID == 0 {
		return apperr.New(apperr.CodeInvalidRequest, "chatId is required")
	}

	expected := signedmsg.UpdateTelegramMessage(chatID, req.WalletAddress, req.Timestamp)
	if err := s.verifier.Verify(ctx, req, expected); err != nil {
		return err
	}

	owner, err := s.repo.ChatIDOwner(ctx, chatID)
	if err != nil {
		return apperr.Wrap(err, apperr.CodeUpstream, "failed to check chat ownership")
	}
	if owner != "" && !strings.EqualFold(owner, req.WalletAddress) {
		return apperr.New(apperr.CodeConflict, "chat id is already linked to another wallet")
	}

	updated, err := s.repo.UpdateTelegramChatID(ctx, req.WalletAddress, chatID)
	if err != nil {
		return apperr.Wrap(err, apperr.CodeUpstream, "failed to update chat id")
	}
	if !updated {
		return apperr.New(apperr.CodeNotFound, "no account for this wallet")
	}

	logger.Info().
		Str("wallet", req.WalletAddress).
		Int64("chat_id", chatID).
		Msg("telegram chat linked")
	return nil
}

func (s *settingsService) ownedSettingsID(ctx context.Context, wallet string) (int64, error) {
	settingsID, err := s.repo.SettingsIDForWallet(ctx, wallet)
	if err != nil {
		return 0, apperr.Wrap(err, apperr.CodeUpstream, "failed to load account")
	}
	if settingsID == 0 {
		return 0, apperr.New(apperr.CodeForbidden, "wallet does not own a settings row")
	}
	return settingsID, nil
}
