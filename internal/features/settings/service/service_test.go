package service

import (
	"context"
	"crypto/ecdsa"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neoguard-console-backend/internal/common/apperr"
	"neoguard-console-backend/internal/features/settings/models"
	"neoguard-console-backend/internal/features/signedmsg"
)

type fakeSettingsRepo struct {
	settingsByWallet map[string]*models.Settings
	settingsIDs      map[string]int64
	chatOwners       map[int64]string
	flags            map[string]bool
	linkedChats      map[string]int64
	info             map[string]models.CommunityInfo
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{
		settingsByWallet: make(map[string]*models.Settings),
		settingsIDs:      make(map[string]int64),
		chatOwners:       make(map[int64]string),
		flags:            make(map[string]bool),
		linkedChats:      make(map[string]int64),
		info:             make(map[string]models.CommunityInfo),
	}
}

func (r *fakeSettingsRepo) GetByWallet(_ context.Context, wallet string) (*models.Settings, error) {
	return r.settingsByWallet[strings.ToLower(wallet)], nil
}

func (r *fakeSettingsRepo) SettingsIDForWallet(_ context.Context, wallet string) (int64, error) {
	return r.settingsIDs[strings.ToLower(wallet)], nil
}

func (r *fakeSettingsRepo) UpdateFlag(_ context.Context, settingsID int64, column string, value bool) error {
	r.flags[column] = value
	return nil
}

func (r *fakeSettingsRepo) UpdateCommunityInfo(_ context.Context, wallet string, info models.CommunityInfo) (bool, error) {
	key := strings.ToLower(wallet)
	if _, ok := r.settingsIDs[key]; !ok {
		return false, nil
	}
	r.info[key] = info
	return true, nil
}

func (r *fakeSettingsRepo) ChatIDOwner(_ context.Context, chatID int64) (string, error) {
	return r.chatOwners[chatID], nil
}

func (r *fakeSettingsRepo) UpdateTelegramChatID(_ context.Context, wallet string, chatID int64) (bool, error) {
	key := strings.ToLower(wallet)
	if _, ok := r.settingsIDs[key]; !ok {
		return false, nil
	}
	r.linkedChats[key] = chatID
	return true, nil
}

func newWallet(t *testing.T) (*ecdsa.PrivateKey, string) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key, crypto.PubkeyToAddress(key.PublicKey).Hex()
}

func sign(t *testing.T, key *ecdsa.PrivateKey, wallet, message string, ts int64) signedmsg.Request {
	t.Helper()
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)
	sig[64] += 27
	return signedmsg.Request{
		WalletAddress: wallet,
		Message:       message,
		Signature:     hexutil.Encode(sig),
		Timestamp:     ts,
	}
}

func TestUpdateSettingPersistsFlag(t *testing.T) {
	key, wallet := newWallet(t)
	repo := newFakeSettingsRepo()
	repo.settingsIDs[strings.ToLower(wallet)] = 1
	svc := NewSettingsService(repo, signedmsg.NewVerifier(nil))

	ts := time.Now().UnixMilli()
	req := sign(t, key, wallet, signedmsg.UpdateSettingMessage("use_spam_detection", true, ts), ts)
	require.NoError(t, svc.UpdateSetting(context.Background(), req, "use_spam_detection", true))
	assert.True(t, repo.flags["use_spam_detection"])
}

func TestUpdateSettingRejectsUnknownName(t *testing.T) {
	key, wallet := newWallet(t)
	repo := newFakeSettingsRepo()
	repo.settingsIDs[strings.ToLower(wallet)] = 1
	svc := NewSettingsService(repo, signedmsg.NewVerifier(nil))

	ts := time.Now().UnixMilli()
	req := sign(t, key, wallet, signedmsg.UpdateSettingMessage("drop_tables", true, ts), ts)
	err := svc.UpdateSetting(context.Background(), req, "drop_tables", true)
	assert.Equal(t, apperr.CodeInvalidRequest, apperr.CodeOf(err))
	assert.Empty(t, repo.flags)
}

// A signature over one value must not authorize writing the opposite value.
func TestUpdateSettingRejectsValueMismatch(t *testing.T) {
	key, wallet := newWallet(t)
	repo := newFakeSettingsRepo()
	repo.settingsIDs[strings.ToLower(wallet)] = 1
	svc := NewSettingsService(repo, signedmsg.NewVerifier(nil))

	ts := time.Now().UnixMilli()
	req := sign(t, key, wallet, signedmsg.UpdateSettingMessage("use_url_scanner", true, ts), ts)
	err := svc.UpdateSetting(context.Background(), req, "use_url_scanner", false)
	assert.Equal(t, apperr.CodeInvalidRequest, apperr.CodeOf(err))
	assert.Empty(t, repo.flags)
}

func TestUpdateSettingRequiresAccount(t *testing.T) {
	key, wallet := newWallet(t)
	svc := NewSettingsService(newFakeSettingsRepo(), signedmsg.NewVerifier(nil))

	ts := time.Now().UnixMilli()
	req := sign(t, key, wallet, signedmsg.UpdateSettingMessage("use_file_scanner", true, ts), ts)
	err := svc.UpdateSetting(context.Background(), req, "use_file_scanner", true)
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))
}

func TestUpdateTelegramLinksChat(t *testing.T) {
	key, wallet := newWallet(t)
	repo := newFakeSettingsRepo()
	repo.settingsIDs[strings.ToLower(wallet)] = 1
	svc := NewSettingsService(repo, signedmsg.NewVerifier(nil))

	ts := time.Now().UnixMilli()
	req := sign(t, key, wallet, signedmsg.UpdateTelegramMessage(-100123, wallet, ts), ts)
	require.NoError(t, svc.UpdateTelegram(context.Background(), req, -100123))
	assert.Equal(t, int64(-100123), repo.linkedChats[strings.ToLower(wallet)])
}

func TestUpdateTelegramConflictsOnClaimedChat(t *testing.T) {
	key, wallet := newWallet(t)
	repo := newFakeSettingsRepo()
	repo.settingsIDs[strings.ToLower(wallet)] = 1
	repo.chatOwners[-100123] = "0x000000000000000000000000000000000000dead"
	svc := NewSettingsService(repo, signedmsg.NewVerifier(nil))

	ts := time.Now().UnixMilli()
	req := sign(t, key, wallet, signedmsg.UpdateTelegramMessage(-100123, wallet, ts), ts)
	err := svc.UpdateTelegram(context.Background(), req, -100123)
	assert.Equal(t, apperr.CodeConflict, apperr.CodeOf(err))
}

// Relinking the chat id a wallet already owns is not a conflict.
func TestUpdateTelegramAllowsSameOwner(t *testing.T) {
	key, wallet := newWallet(t)
	repo := newFakeSettingsRepo()
	repo.settingsIDs[strings.ToLower(wallet)] = 1
	repo.chatOwners[-100123] = strings.ToLower(wallet)
	svc := NewSettingsService(repo, signedmsg.NewVerifier(nil))

	ts := time.Now().UnixMilli()
	req := sign(t, key, wallet, signedmsg.UpdateTelegramMessage(-100123, wallet, ts), ts)
	assert.NoError(t, svc.UpdateTelegram(context.Background(), req, -100123))
}

func TestUpdateCommunityInfo(t *testing.T) {
	key, wallet := newWallet(t)
	repo := newFakeSettingsRepo()
	repo.settingsIDs[strings.ToLower(wallet)] = 1
	svc := NewSettingsService(repo, signedmsg.NewVerifier(nil))

	ts := time.Now().UnixMilli()
	req := sign(t, key, wallet, signedmsg.UpdateCommunityInfoMessage(wallet, ts), ts)
	info := models.CommunityInfo{CommunityName: "NeoGuard DAO", Twitter: "neoguard"}
	require.NoError(t, svc.UpdateCommunityInfo(context.Background(), req, info))
	assert.Equal(t, info, repo.info[strings.ToLower(wallet)])
}

func TestUpdateCommunityInfoUnknownWallet(t *testing.T) {
	key, wallet := newWallet(t)
	svc := NewSettingsService(newFakeSettingsRepo(), signedmsg.NewVerifier(nil))

	ts := time.Now().UnixMilli()
	req := sign(t, key, wallet, signedmsg.UpdateCommunityInfoMessage(wallet, ts), ts)
	err := svc.UpdateCommunityInfo(context.Background(), req, models.CommunityInfo{})
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestGetSettings(t *testing.T) {
	_, wallet := newWallet(t)
	repo := newFakeSettingsRepo()
	repo.settingsByWallet[strings.ToLower(wallet)] = &models.Settings{ID: 1, UseSpamDetection: true}
	svc := NewSettingsService(repo, signedmsg.NewVerifier(nil))

	settings, err := svc.GetSettings(context.Background(), strings.ToLower(wallet))
	require.NoError(t, err)
	assert.True(t, settings.UseSpamDetection)

	_, err = svc.GetSettings(context.Background(), "0x0000000000000000000000000000000000000001")
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}
