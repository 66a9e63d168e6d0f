package storage

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(Models()...))

	return NewStore(db)
}

// seedChat creates an account with one contact and returns both.
func seedChat(t *testing.T, s *Store, jid string, isGroup bool) (*Account, *Contact) {
	t.Helper()

	account, err := s.FindAccountByPhone("5511999999999")
	require.NoError(t, err)
	if account == nil {
		account = &Account{PhoneNumber: "5511999999999", Name: "Test", Status: StatusConnected}
		require.NoError(t, s.InsertAccount(account))
	}

	contact := &Contact{AccountID: account.ID, JID: jid, Name: "Chat", IsGroup: isGroup}
	require.NoError(t, s.InsertContact(contact))

	return account, contact
}

func TestFindAccountByPhoneMiss(t *testing.T) {
	s := newTestStore(t)

	account, err := s.FindAccountByPhone("5511999999999")
	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestInsertAccountDuplicatePhone(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.InsertAccount(&Account{PhoneNumber: "5511999999999"}))
	err := s.InsertAccount(&Account{PhoneNumber: "5511999999999"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestInsertContactDuplicateJID(t *testing.T) {
	s := newTestStore(t)
	account, _ := seedChat(t, s, "1@s.whatsapp.net", false)

	err := s.InsertContact(&Contact{AccountID: account.ID, JID: "1@s.whatsapp.net"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// same jid under another account is a different contact
	other := &Account{PhoneNumber: "5511000000000"}
	require.NoError(t, s.InsertAccount(other))
	require.NoError(t, s.InsertContact(&Contact{AccountID: other.ID, JID: "1@s.whatsapp.net"}))
}

func TestInsertMessageDuplicateProviderID(t *testing.T) {
	s := newTestStore(t)
	account, contact := seedChat(t, s, "1@s.whatsapp.net", false)

	msg := &Message{
		AccountID: account.ID,
		ChatID:    contact.ID,
		SenderJID: "1@s.whatsapp.net",
		MessageID: "MSG-1",
		Type:      TypeText,
		Text:      "hello",
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.InsertMessage(msg))

	dup := &Message{
		AccountID: account.ID,
		ChatID:    contact.ID,
		SenderJID: "1@s.whatsapp.net",
		MessageID: "MSG-1",
		Type:      TypeText,
		CreatedAt: time.Now(),
	}
	assert.ErrorIs(t, s.InsertMessage(dup), ErrDuplicateMessage)

	found, err := s.FindMessageByProviderID(account.ID, "MSG-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, msg.ID, found.ID)
	assert.Equal(t, "hello", found.Text)
}

func TestFindMessageByProviderIDMiss(t *testing.T) {
	s := newTestStore(t)
	account, _ := seedChat(t, s, "1@s.whatsapp.net", false)

	found, err := s.FindMessageByProviderID(account.ID, "NEVER-SEEN")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestInsertMediaAtMostOnePerMessage(t *testing.T) {
	s := newTestStore(t)
	account, contact := seedChat(t, s, "1@s.whatsapp.net", false)

	msg := &Message{
		AccountID: account.ID, ChatID: contact.ID, SenderJID: "1@s.whatsapp.net",
		MessageID: "MSG-1", Type: TypeImage, CreatedAt: time.Now(),
	}
	require.NoError(t, s.InsertMessage(msg))

	require.NoError(t, s.InsertMedia(&MessageMedia{
		MessageID: msg.ID, MediaType: "image", MimeType: "image/jpeg", FilePath: "media/a.jpg",
	}))
	// redelivery must not add a second row
	require.NoError(t, s.InsertMedia(&MessageMedia{
		MessageID: msg.ID, MediaType: "image", MimeType: "image/png", FilePath: "media/b.png",
	}))

	var media []MessageMedia
	require.NoError(t, s.db.Find(&media).Error)
	require.Len(t, media, 1)
	assert.Equal(t, "media/a.jpg", media[0].FilePath)
}

func TestUpdateMessageText(t *testing.T) {
	s := newTestStore(t)
	account, contact := seedChat(t, s, "1@s.whatsapp.net", false)

	msg := &Message{
		AccountID: account.ID, ChatID: contact.ID, SenderJID: "1@s.whatsapp.net",
		MessageID: "MSG-1", Type: TypeText, Text: "before", CreatedAt: time.Now(),
	}
	require.NoError(t, s.InsertMessage(msg))
	require.NoError(t, s.UpdateMessageText(msg.ID, "after"))

	found, err := s.FindMessageByProviderID(account.ID, "MSG-1")
	require.NoError(t, err)
	assert.Equal(t, "after", found.Text)
}

func TestGroupMembershipLifecycle(t *testing.T) {
	s := newTestStore(t)
	_, group := seedChat(t, s, "123@g.us", true)
	member := "1@s.whatsapp.net"

	joined := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.UpsertGroupMembership(group.ID, member, joined))
	require.NoError(t, s.SetGroupMembershipAdmin(group.ID, member, true))
	require.NoError(t, s.MarkGroupMembershipLeft(group.ID, member, joined.Add(time.Hour)))

	// leaving twice is a no-op: the row is no longer active
	require.NoError(t, s.MarkGroupMembershipLeft(group.ID, member, joined.Add(2*time.Hour)))

	rejoined := joined.Add(24 * time.Hour)
	require.NoError(t, s.UpsertGroupMembership(group.ID, member, rejoined))

	participants, err := s.ListGroupParticipants(group.ID)
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Nil(t, participants[0].LeftAt)
	assert.False(t, participants[0].IsAdmin, "re-joining resets the admin flag")
	assert.Equal(t, rejoined.Unix(), participants[0].JoinedAt.Unix())
}

func TestSetAdminWithoutMembershipIsNoOp(t *testing.T) {
	s := newTestStore(t)
	_, group := seedChat(t, s, "123@g.us", true)

	require.NoError(t, s.SetGroupMembershipAdmin(group.ID, "stranger@s.whatsapp.net", true))

	participants, err := s.ListGroupParticipants(group.ID)
	require.NoError(t, err)
	assert.Empty(t, participants)
}

func TestInsertRevokeIdempotent(t *testing.T) {
	s := newTestStore(t)
	account, contact := seedChat(t, s, "1@s.whatsapp.net", false)

	msg := &Message{
		AccountID: account.ID, ChatID: contact.ID, SenderJID: "1@s.whatsapp.net",
		MessageID: "MSG-1", Type: TypeText, CreatedAt: time.Now(),
	}
	require.NoError(t, s.InsertMessage(msg))

	revoke := func() error {
		return s.InsertRevoke(&MessageRevoke{
			MessageID: msg.ID, RevokedByJID: "1@s.whatsapp.net", RevokedAt: time.Now(),
		})
	}
	require.NoError(t, revoke())
	require.NoError(t, revoke())

	var revokes []MessageRevoke
	require.NoError(t, s.db.Find(&revokes).Error)
	assert.Len(t, revokes, 1)
}

func TestListChats(t *testing.T) {
	s := newTestStore(t)
	account, quiet := seedChat(t, s, "quiet@s.whatsapp.net", false)

	busy := &Contact{AccountID: account.ID, JID: "busy@s.whatsapp.net", Name: "Busy"}
	require.NoError(t, s.InsertContact(busy))

	base := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	for i, spec := range []struct {
		chat *Contact
		text string
	}{
		{quiet, "old news"},
		{busy, "first"},
		{busy, "latest"},
	} {
		require.NoError(t, s.InsertMessage(&Message{
			AccountID: account.ID,
			ChatID:    spec.chat.ID,
			SenderJID: spec.chat.JID,
			MessageID: fmt.Sprintf("MSG-%d", i),
			Type:      TypeText,
			Text:      spec.text,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	chats, err := s.ListChats(account.ID, 10)
	require.NoError(t, err)
	require.Len(t, chats, 2)

	assert.Equal(t, "busy@s.whatsapp.net", chats[0].JID)
	assert.Equal(t, "latest", chats[0].LastMessageText)
	assert.Equal(t, TypeText, chats[0].LastMessageType)
	assert.Equal(t, "quiet@s.whatsapp.net", chats[1].JID)
	assert.Equal(t, "old news", chats[1].LastMessageText)
}
