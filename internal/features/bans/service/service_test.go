package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neoguard-console-backend/internal/common/apperr"
	"neoguard-console-backend/internal/features/bans/models"
)

type fakeBansRepo struct {
	chatID      int64
	records     []models.BanRecord
	blacklisted []int64

	reviewUser     int64
	reviewPlatform string
	reviewReason   string
	reviewNote     string
}

func (r *fakeBansRepo) ChatIDForWallet(context.Context, string) (int64, error) {
	return r.chatID, nil
}

func (r *fakeBansRepo) BansForChat(context.Context, int64) ([]models.BanRecord, error) {
	return r.records, nil
}

func (r *fakeBansRepo) InsertReview(_ context.Context, userID int64, platform, reason, note string) (*models.Review, error) {
	r.reviewUser = userID
	r.reviewPlatform = platform
	r.reviewReason = reason
	r.reviewNote = note
	return &models.Review{ID: 1, UserID: userID, Platform: platform, Reason: reason, Note: note}, nil
}

func (r *fakeBansRepo) BlacklistedAmong(_ context.Context, userIDs []int64) ([]int64, error) {
	return r.blacklisted, nil
}

const testWallet = "0x00000000000000000000000000000000000000bb"

func TestGetBans(t *testing.T) {
	repo := &fakeBansRepo{
		chatID:  20,
		records: []models.BanRecord{{UserID: 5, Action: "ban"}},
	}
	svc := NewBansService(repo)

	records, err := svc.GetBans(context.Background(), testWallet)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ban", records[0].Action)
}

func TestGetBansRequiresLinkedChat(t *testing.T) {
	svc := NewBansService(&fakeBansRepo{})

	_, err := svc.GetBans(context.Background(), testWallet)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))

	_, err = svc.GetBans(context.Background(), "")
	assert.Equal(t, apperr.CodeInvalidRequest, apperr.CodeOf(err))
}

func TestSubmitReviewRecordsBannedMessage(t *testing.T) {
	repo := &fakeBansRepo{chatID: 20}
	svc := NewBansService(repo)

	review, err := svc.SubmitReview(context.Background(), 5, "buy my coin")
	require.NoError(t, err)
	assert.Equal(t, int64(5), review.UserID)
	assert.Equal(t, "telegram", repo.reviewPlatform)
	assert.Equal(t, "buy my coin", repo.reviewNote)
}

func TestSubmitReviewRequiresUser(t *testing.T) {
	svc := NewBansService(&fakeBansRepo{})

	_, err := svc.SubmitReview(context.Background(), 0, "text")
	assert.Equal(t, apperr.CodeInvalidRequest, apperr.CodeOf(err))
}

func TestCheckBlacklisted(t *testing.T) {
	repo := &fakeBansRepo{blacklisted: []int64{5}}
	svc := NewBansService(repo)

	ids, err := svc.CheckBlacklisted(context.Background(), []int64{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, ids)

	_, err = svc.CheckBlacklisted(context.Background(), nil)
	assert.Equal(t, apperr.CodeInvalidRequest, apperr.CodeOf(err))
}
