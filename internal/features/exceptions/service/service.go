package service

import (
	"context"

	"neoguard-console-backend/internal/common/apperr"
	"neoguard-console-backend/internal/common/logger"
	"neoguard-console-backend/internal/features/exceptions/models"
	"neoguard-console-backend/internal/features/exceptions/repository"
	"neoguard-console-backend/internal/features/signedmsg"
)

// ExceptionsService manages ban/blacklist immunity pairs for the wallet's
// linked chat. Mutations require a signed-write envelope.
type ExceptionsService interface {
	GetExceptions(ctx context.Context, wallet string) ([]models.Exception, error)
	AddException(ctx context.Context, req signedmsg.Request, userID int64) error
	RemoveException(ctx context.Context, req signedmsg.Request, userID int64) error
}

type exceptionsService struct {
	repo     repository.Repository
	verifier *signedmsg.Verifier
}

func NewExceptionsService(repo repository.Repository, verifier *signedmsg.Verifier) ExceptionsService {
	return &exceptionsService{repo: repo, verifier: verifier}
}

func (s *exceptionsService) GetExceptions(ctx context.Context, wallet string) ([]models.Exception, error) {
	chatID, err := s.ownedChatID(ctx, wallet)
	if err != nil {
		return nil, err
	}
	exceptions, err := s.repo.ListByChat(ctx, chatID)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeUpstream, "failed to load exceptions")
	}
	return exceptions, nil
}

func (s *exceptionsService) AddException(ctx context.Context, req signedmsg.Request, userID int64) error {
	if userID == 0 {
		return apperr.New(apperr.CodeInvalidRequest, "userId is required")
	}

	expected := signedmsg.AddExceptionMessage(userID, req.Timestamp)
	if err := s.verifier.Verify(ctx, req, expected); err != nil {
		return err
	}

	chatID, err := s.ownedChatID(ctx, req.WalletAddress)
	if err != nil {
		return err
	}
	if err := s.repo.Insert(ctx, chatID, userID); err != nil {
		return apperr.Wrap(err, apperr.CodeUpstream, "failed to add exception")
	}

	logger.Info().Int64("chat_id", chatID).Int64("user_id", userID).Msg("exception added")
	return nil
}

func (s *exceptionsService) RemoveException(ctx context.Context, req signedmsg.Request, userID int64) error {
	if userID == 0 {
		return apperr.New(apperr.CodeInvalidRequest, "userId is required")
	}

	expected := signedmsg.RemoveExceptionMessage(userID, req.Timestamp)
	if err := s.verifier.Verify(ctx, req, expected); err != nil {
		return err
	}

	chatID, err := s.ownedChatID(ctx, req.WalletAddress)
	if err != nil {
		return err
	}
	// Removing a pair that is not present is not an error.
	if err := s.repo.Delete(ctx, chatID, userID); err != nil {
		return apperr.Wrap(err, apperr.CodeUpstream, "failed to remove exception")
	}

	logger.Info().Int64("chat_id", chatID).Int64("user_id", userID).Msg("exception removed")
	return nil
}

func (s *exceptionsService) ownedChatID(ctx context.Context, wallet string) (int64, error) {
	if wallet == "" {
		return 0, apperr.New(apperr.CodeInvalidRequest, "walletAddress is required")
	}
	chatID, err := s.repo.ChatIDForWallet(ctx, wallet)
	if err != nil {
		return 0, apperr.Wrap(err, apperr.CodeUpstream, "failed to load account")
	}
	if chatID == 0 {
		return 0, apperr.New(apperr.CodeNotFound, "no telegram chat linked to this wallet")
	}
	return chatID, nil
}
