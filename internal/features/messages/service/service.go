package service

import (
	"context"

	"neoguard-console-backend/internal/common/apperr"
	"neoguard-console-backend/internal/common/logger"
	"neoguard-console-backend/internal/features/messages/models"
	"neoguard-console-backend/internal/features/messages/repository"
)

const (
	defaultLimit = 50
	maxLimit     = 200

	// maxSummarizeBatch caps how many messages a single summary covers.
	maxSummarizeBatch = 200
)

type messagesService struct {
	repo       repository.Repository
	sender     Sender
	summarizer Summarizer
}

func NewMessagesService(repo repository.Repository, sender Sender, summarizer Summarizer) MessagesService {
	return &messagesService{repo: repo, sender: sender, summarizer: summarizer}
}

func (s *messagesService) GetMessages(ctx context.Context, wallet string, limit int) (*models.MessagePage, error) {
	chatID, err := s.ownedChatID(ctx, wallet)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	messages, err := s.repo.Recent(ctx, chatID, limit)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeUpstream, "failed to load messages")
	}
	return s.annotate(ctx, chatID, messages)
}

func (s *messagesService) SearchMessages(ctx context.Context, wallet, query string) (*models.MessagePage, error) {
	if query == "" {
		return nil, apperr.New(apperr.CodeInvalidRequest, "query is required")
	}
	chatID, err := s.ownedChatID(ctx, wallet)
	if err != nil {
		return nil, err
	}

	messages, err := s.repo.Search(ctx, chatID, query)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeUpstream, "search failed")
	}
	return s.annotate(ctx, chatID, messages)
}

func (s *messagesService) SendMessage(ctx context.Context, wallet, text string) error {
	if text == "" {
		return apperr.New(apperr.CodeInvalidRequest, "message is required")
	}
	chatID, err := s.ownedChatID(ctx, wallet)
	if err != nil {
		return err
	}

	if _, err := s.sender.SendMessage(chatID, text); err != nil {
		return apperr.Wrap(err, apperr.CodeUpstream, "telegram send failed")
	}

	// The relay already happened; a logging failure should not read as a
	// failed send to the operator.
	if err := s.repo.InsertBotMessage(ctx, chatID, s.sender.BotID(), text); err != nil {
		logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to log relayed message")
	}
	return nil
}

func (s *messagesService) Summarize(ctx context.Context, messages []string) (string, error) {
	if len(messages) == 0 {
		return "", apperr.New(apperr.CodeInvalidRequest, "messages are required")
	}
	if len(messages) > maxSummarizeBatch {
		messages = messages[:maxSummarizeBatch]
	}

	summary, err := s.summarizer.Summarize(ctx, messages)
	if err != nil {
		return "", apperr.Wrap(err, apperr.CodeUpstream, "summarization failed")
	}
	return summary, nil
}

func (s *messagesService) annotate(ctx context.Context, chatID int64, messages []models.MessageLog) (*models.MessagePage, error) {
	teamIDs, err := s.repo.TeamIDs(ctx, chatID)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeUpstream, "failed to load team members")
	}

	authorIDs := make([]int64, 0, len(messages))
	seen := make(map[int64]struct{}, len(messages))
	for _, m := range messages {
		if _, ok := seen[m.UserID]; ok {
			continue
		}
		seen[m.UserID] = struct{}{}
		authorIDs = append(authorIDs, m.UserID)
	}

	blacklisted, err := s.repo.BlacklistedAmong(ctx, authorIDs)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeUpstream, "failed to load blacklist")
	}

	return &models.MessagePage{
		ChatID:         chatID,
		Messages:       messages,
		TeamIDs:        teamIDs,
		BlacklistedIDs: blacklisted,
	}, nil
}

func (s *messagesService) ownedChatID(ctx context.Context, wallet string) (int64, error) {
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
