package service

import (
	"context"

	"neoguard-console-backend/internal/common/apperr"
	"neoguard-console-backend/internal/common/logger"
	"neoguard-console-backend/internal/features/bans/models"
	"neoguard-console-backend/internal/features/bans/repository"
)

const reviewPlatform = "telegram"

// BansService serves the ban log view, review submissions and the global
// blacklist subset check.
type BansService interface {
	GetBans(ctx context.Context, wallet string) ([]models.BanRecord, error)
	SubmitReview(ctx context.Context, userID int64, messageText string) (*models.Review, error)
	CheckBlacklisted(ctx context.Context, userIDs []int64) ([]int64, error)
}

type bansService struct {
	repo repository.Repository
}

func NewBansService(repo repository.Repository) BansService {
	return &bansService{repo: repo}
}

func (s *bansService) GetBans(ctx context.Context, wallet string) ([]models.BanRecord, error) {
	if wallet == "" {
		return nil, apperr.New(apperr.CodeInvalidRequest, "walletAddress is required")
	}
	chatID, err := s.repo.ChatIDForWallet(ctx, wallet)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeUpstream, "failed to load account")
	}
	if chatID == 0 {
		return nil, apperr.New(apperr.CodeNotFound, "no telegram chat linked to this wallet")
	}

	records, err := s.repo.BansForChat(ctx, chatID)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeUpstream, "failed to load ban logs")
	}
	return records, nil
}

func (s *bansService) SubmitReview(ctx context.Context, userID int64, messageText string) (*models.Review, error) {
	if userID == 0 {
		return nil, apperr.New(apperr.CodeInvalidRequest, "userId is required")
	}

	review, err := s.repo.InsertReview(ctx, userID, reviewPlatform, "spam ban review", messageText)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeUpstream, "failed to submit review")
	}

	logger.Info().Int64("user_id", userID).Int64("review_id", review.ID).Msg("review submitted")
	return review, nil
}

func (s *bansService) CheckBlacklisted(ctx context.Context, userIDs []int64) ([]int64, error) {
	if len(userIDs) == 0 {
		return nil, apperr.New(apperr.CodeInvalidRequest, "userIds are required")
	}
	ids, err := s.repo.BlacklistedAmong(ctx, userIDs)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeUpstream, "failed to check blacklist")
	}
	return ids, nil
}
