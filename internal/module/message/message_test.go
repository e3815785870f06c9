package message

import (
	"context"
	"coucou-server/internal/global/database"
	"coucou-server/internal/global/jwt"
	"coucou-server/internal/global/response"
	"coucou-server/internal/model"
	"coucou-server/internal/storage/storagetest"
	"coucou-server/test"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupConversations(t *testing.T) {
	now := time.Now()
	act := "act-1"
	messages := []model.ChatMessage{
		{Model: model.Model{CreatedAt: now}, SenderID: "bob", ReceiverID: "me", Content: "newest", Type: model.MessageUser, Sender: model.User{Name: "Bob"}},
		{Model: model.Model{CreatedAt: now.Add(-time.Minute)}, SenderID: "me", ReceiverID: "me", Content: "通知2", Type: model.MessageSystem, ActivityID: &act},
		{Model: model.Model{CreatedAt: now.Add(-2 * time.Minute)}, SenderID: "me", ReceiverID: "bob", Content: "reply", Type: model.MessageUser},
		{Model: model.Model{CreatedAt: now.Add(-3 * time.Minute)}, SenderID: "bob", ReceiverID: "me", Content: "older", Type: model.MessageUser},
		{Model: model.Model{CreatedAt: now.Add(-4 * time.Minute)}, SenderID: "me", ReceiverID: "me", Content: "通知1", Type: model.MessageSystem, IsRead: true},
		{Model: model.Model{CreatedAt: now.Add(-5 * time.Minute)}, SenderID: "me", ReceiverID: "carol", Content: "hello carol", Type: model.MessageUser},
	}

	list := groupConversations(messages, "me")
	require.Len(t, list, 3)

	assert.Equal(t, "bob", list[0].Key)
	assert.Equal(t, "newest", list[0].LastMessage)
	assert.Equal(t, "Bob", list[0].PeerName)
	assert.Equal(t, 2, list[0].Unread)

	assert.Equal(t, SystemConversation, list[1].Key)
	assert.Equal(t, "通知2", list[1].LastMessage)
	assert.Equal(t, &act, list[1].ActivityID)
	assert.Equal(t, 1, list[1].Unread)

	// 自己发出的消息不计未读
	assert.Equal(t, "carol", list[2].Key)
	assert.Zero(t, list[2].Unread)
	assert.Empty(t, list[2].PeerName)

	assert.Equal(t, []string{"carol"}, missingPeers(list))
	fillPeers(list, []model.User{{Model: model.Model{ID: "carol"}, Name: "Carol", Avatar: "carol.png"}})
	assert.Equal(t, "Carol", list[2].PeerName)
	assert.Equal(t, "carol.png", list[2].PeerAvatar)
	assert.Equal(t, "Bob", list[0].PeerName)
}

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	database.DB = storagetest.NewDB(t)

	m := &ModuleMessage{}
	m.Init()
	r := gin.New()
	m.InitRouter(r.Group(""))
	return r
}

func TestMessageFlow(t *testing.T) {
	r := setup(t)
	alice := storagetest.CreateUser(t, store, "alice")
	bob := storagetest.CreateUser(t, store, "bob")
	aliceToken := jwt.CreateToken(jwt.Payload{UserID: alice.ID, Name: alice.Name})
	bobToken := jwt.CreateToken(jwt.Payload{UserID: bob.ID, Name: bob.Name})

	require.NoError(t, store.Notify(context.Background(), alice.ID, "【羽毛球】活动信息已更新，请查看最新详情。", "act-1"))

	resp, _ := test.DoRequest(t, r, http.MethodPost, "/message/send", gin.H{"receiver_id": alice.ID, "content": "hi"}, bobToken)
	test.NoError(t, resp)

	resp, status := test.DoRequest(t, r, http.MethodPost, "/message/send", gin.H{"receiver_id": alice.ID, "content": "x", "type": "system"}, bobToken)
	assert.Equal(t, http.StatusBadRequest, status)
	test.ErrorEqual(t, response.ErrInvalidRequest, resp)

	resp, status = test.DoRequest(t, r, http.MethodPost, "/message/send", gin.H{"receiver_id": "ghost", "content": "x"}, bobToken)
	assert.Equal(t, http.StatusNotFound, status)

	var unread struct {
		Unread         int64 `json:"unread"`
		PollIntervalMs int64 `json:"poll_interval_ms"`
	}
	resp, _ = test.DoRequest(t, r, http.MethodGet, "/message/unread", nil, aliceToken)
	test.NoError(t, resp)
	test.DecodeData(t, resp, &unread)
	assert.EqualValues(t, 2, unread.Unread)
	assert.EqualValues(t, 10000, unread.PollIntervalMs)

	var list struct {
		Conversations []Conversation `json:"conversations"`
		Total         int            `json:"total"`
	}
	resp, _ = test.DoRequest(t, r, http.MethodGet, "/message/list", nil, aliceToken)
	test.NoError(t, resp)
	test.DecodeData(t, resp, &list)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, bob.ID, list.Conversations[0].Key)
	assert.Equal(t, "bob", list.Conversations[0].PeerName)
	assert.Equal(t, SystemConversation, list.Conversations[1].Key)

	var updated struct {
		Updated int64 `json:"updated"`
	}
	resp, _ = test.DoRequest(t, r, http.MethodPost, "/message/read", gin.H{"sender_id": SystemConversation}, aliceToken)
	test.NoError(t, resp)
	test.DecodeData(t, resp, &updated)
	assert.EqualValues(t, 1, updated.Updated)

	resp, _ = test.DoRequest(t, r, http.MethodPost, "/message/read-all", nil, aliceToken)
	test.NoError(t, resp)
	test.DecodeData(t, resp, &updated)
	assert.EqualValues(t, 1, updated.Updated)

	resp, _ = test.DoRequest(t, r, http.MethodGet, "/message/unread", nil, aliceToken)
	test.DecodeData(t, resp, &unread)
	assert.Zero(t, unread.Unread)

	// bob 的会话里只有自己发出的消息
	resp, _ = test.DoRequest(t, r, http.MethodGet, "/message/list", nil, bobToken)
	test.DecodeData(t, resp, &list)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, alice.ID, list.Conversations[0].Key)
	assert.Equal(t, "alice", list.Conversations[0].PeerName)
	assert.Zero(t, list.Conversations[0].Unread)
}
