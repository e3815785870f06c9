package lifecycle_test

import (
	"context"
	"coucou-server/internal/model"
	"coucou-server/internal/module/activity/lifecycle"
	"coucou-server/internal/storage"
	"coucou-server/internal/storage/storagetest"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyNotifier 对指定接收者投递失败，其余写入存储
type flakyNotifier struct {
	store *storage.Store
	fail  map[string]bool
}

func (n *flakyNotifier) Notify(ctx context.Context, recipientID, content, activityID string) error {
	if n.fail[recipientID] {
		return errors.New("sink unavailable")
	}
	return n.store.Notify(ctx, recipientID, content, activityID)
}

type fixture struct {
	ctx      context.Context
	store    *storage.Store
	notifier *flakyNotifier
	m        *lifecycle.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := storagetest.NewStore(t)
	n := &flakyNotifier{store: s, fail: map[string]bool{}}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		ctx:      context.Background(),
		store:    s,
		notifier: n,
		m:        lifecycle.NewManager(s, n, log),
	}
}

func (f *fixture) user(t *testing.T, name string) *model.User {
	return storagetest.CreateUser(t, f.store, name)
}

func validFields(max int) lifecycle.CreateFields {
	return lifecycle.CreateFields{
		Title:           "周末羽毛球",
		Description:     "新手友好",
		Category:        model.CategoryBadminton,
		Tag:             "运动",
		Time:            time.Now().Add(48 * time.Hour),
		Location:        "东区体育馆",
		Address:         "3 号场",
		CostType:        "AA",
		CostDetail:      "每人 20 元",
		MaxParticipants: max,
	}
}

func (f *fixture) create(t *testing.T, organizer *model.User, max int) *model.Activity {
	t.Helper()
	a, err := f.m.Create(f.ctx, validFields(max), organizer.ID)
	require.NoError(t, err)
	return a
}

func (f *fixture) load(t *testing.T, id string) *model.Activity {
	t.Helper()
	a, found, err := f.m.GetByID(f.ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	return a
}

func (f *fixture) messagesFor(t *testing.T, userID string) []model.ChatMessage {
	t.Helper()
	list, err := f.store.ListMessages(f.ctx, userID)
	require.NoError(t, err)
	return list
}

func participantIDs(a *model.Activity) []string {
	ids := make([]string, 0, len(a.Participants))
	for _, p := range a.Participants {
		ids = append(ids, p.UserID)
	}
	return ids
}

func TestCreateSeatsOrganizer(t *testing.T) {
	f := newFixture(t)
	org := f.user(t, "org")

	a := f.create(t, org, 4)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, model.StatusRecruiting, a.Status)
	assert.Equal(t, org.ID, a.OrganizerID)
	assert.Equal(t, "org", a.Organizer.Name)
	assert.Equal(t, []string{org.ID}, participantIDs(a))
	assert.Equal(t, "org", a.Participants[0].User.Name)
	assert.NotNil(t, a.Images)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	org := f.user(t, "org")

	cases := []struct {
		name  string
		edit  func(*lifecycle.CreateFields)
		field string
	}{
		{"missing title", func(c *lifecycle.CreateFields) { c.Title = "" }, "Title"},
		{"blank title", func(c *lifecycle.CreateFields) { c.Title = "   " }, "Title"},
		{"missing location", func(c *lifecycle.CreateFields) { c.Location = "" }, "Location"},
		{"missing time", func(c *lifecycle.CreateFields) { c.Time = time.Time{} }, "Time"},
		{"capacity below two", func(c *lifecycle.CreateFields) { c.MaxParticipants = 1 }, "MaxParticipants"},
		{"unknown category", func(c *lifecycle.CreateFields) { c.Category = "chess" }, "Category"},
		{"all is not a category", func(c *lifecycle.CreateFields) { c.Category = model.CategoryAll }, "Category"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := validFields(4)
			tc.edit(&fields)
			_, err := f.m.Create(f.ctx, fields, org.ID)
			require.ErrorIs(t, err, lifecycle.ErrValidation)
			var le *lifecycle.Error
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tc.field, le.Field)
		})
	}

	list, err := f.m.List(f.ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, list, "校验失败不应写入任何活动")
}

func TestCreateUnknownOrganizer(t *testing.T) {
	f := newFixture(t)
	_, err := f.m.Create(f.ctx, validFields(3), "ghost")
	assert.ErrorIs(t, err, lifecycle.ErrNotFound)

	list, err := f.m.List(f.ctx, model.CategoryAll, "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCapacityWithoutHardGuard(t *testing.T) {
	f := newFixture(t)
	org, bob, carol := f.user(t, "org"), f.user(t, "bob"), f.user(t, "carol")

	a := f.create(t, org, 2)
	assert.Equal(t, model.StatusRecruiting, a.Status)

	joined, err := f.m.Join(f.ctx, a.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, joined)
	assert.Equal(t, model.StatusFull, f.load(t, a.ID).Status)

	// 满员后不拒绝报名，状态仍为 full
	joined, err = f.m.Join(f.ctx, a.ID, carol.ID)
	require.NoError(t, err)
	assert.True(t, joined)
	got := f.load(t, a.ID)
	assert.Equal(t, model.StatusFull, got.Status)
	assert.Equal(t, []string{org.ID, bob.ID, carol.ID}, participantIDs(got))
}

func TestJoinIdempotent(t *testing.T) {
	f := newFixture(t)
	org, bob := f.user(t, "org"), f.user(t, "bob")
	a := f.create(t, org, 3)

	joined, err := f.m.Join(f.ctx, a.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, joined)

	joined, err = f.m.Join(f.ctx, a.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, joined)

	assert.Equal(t, []string{org.ID, bob.ID}, participantIDs(f.load(t, a.ID)))
}

// racingGateway 让报名前的存在性检查总是落空，模拟并发报名同时通过检查
type racingGateway struct {
	lifecycle.Gateway
}

func (racingGateway) HasParticipant(context.Context, string, string) (bool, error) {
	return false, nil
}

func TestJoinConcurrentDuplicate(t *testing.T) {
	f := newFixture(t)
	org, bob := f.user(t, "org"), f.user(t, "bob")
	a := f.create(t, org, 2)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := lifecycle.NewManager(racingGateway{Gateway: f.store}, f.notifier, log)

	joined, err := m.Join(f.ctx, a.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, joined)

	joined, err = m.Join(f.ctx, a.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, joined)

	got := f.load(t, a.ID)
	assert.Equal(t, []string{org.ID, bob.ID}, participantIDs(got))
	assert.Equal(t, model.StatusFull, got.Status)
}

func TestJoinNotFound(t *testing.T) {
	f := newFixture(t)
	org := f.user(t, "org")
	a := f.create(t, org, 3)

	_, err := f.m.Join(f.ctx, "missing", org.ID)
	assert.ErrorIs(t, err, lifecycle.ErrNotFound)

	_, err = f.m.Join(f.ctx, a.ID, "ghost")
	assert.ErrorIs(t, err, lifecycle.ErrNotFound)
	assert.Len(t, f.load(t, a.ID).Participants, 1)
}

func TestLeave(t *testing.T) {
	f := newFixture(t)
	org, bob, carol := f.user(t, "org"), f.user(t, "bob"), f.user(t, "carol")
	a := f.create(t, org, 2)

	_, err := f.m.Join(f.ctx, a.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusFull, f.load(t, a.ID).Status)

	require.NoError(t, f.m.Leave(f.ctx, a.ID, bob.ID))
	got := f.load(t, a.ID)
	assert.Equal(t, model.StatusRecruiting, got.Status)
	assert.Equal(t, []string{org.ID}, participantIDs(got))

	// 未报名时退出是空操作
	require.NoError(t, f.m.Leave(f.ctx, a.ID, carol.ID))
	got = f.load(t, a.ID)
	assert.Equal(t, model.StatusRecruiting, got.Status)
	assert.Equal(t, []string{org.ID}, participantIDs(got))

	assert.ErrorIs(t, f.m.Leave(f.ctx, "missing", bob.ID), lifecycle.ErrNotFound)
}

func TestOrganizerCannotLeave(t *testing.T) {
	f := newFixture(t)
	org := f.user(t, "org")
	a := f.create(t, org, 2)

	err := f.m.Leave(f.ctx, a.ID, org.ID)
	assert.ErrorIs(t, err, lifecycle.ErrForbidden)
	assert.Equal(t, []string{org.ID}, participantIDs(f.load(t, a.ID)))
}

func TestStatusFollowsMembership(t *testing.T) {
	f := newFixture(t)
	org := f.user(t, "org")
	users := []*model.User{f.user(t, "u1"), f.user(t, "u2"), f.user(t, "u3")}
	a := f.create(t, org, 3)

	steps := []struct {
		join bool
		user int
	}{
		{true, 0}, {true, 1}, {true, 2}, {false, 0}, {true, 0}, {false, 1}, {false, 2}, {true, 1}, {false, 0}, {false, 1},
	}
	for i, step := range steps {
		var err error
		if step.join {
			_, err = f.m.Join(f.ctx, a.ID, users[step.user].ID)
		} else {
			err = f.m.Leave(f.ctx, a.ID, users[step.user].ID)
		}
		require.NoError(t, err)

		got := f.load(t, a.ID)
		assert.Equal(t, lifecycle.DeriveStatus(int64(len(got.Participants)), got.MaxParticipants), got.Status, "step %d", i)
	}
}

func TestRejoinAfterLeave(t *testing.T) {
	f := newFixture(t)
	org, alice := f.user(t, "org"), f.user(t, "alice")
	a := f.create(t, org, 2)

	_, err := f.m.Join(f.ctx, a.ID, alice.ID)
	require.NoError(t, err)
	require.NoError(t, f.m.Leave(f.ctx, a.ID, alice.ID))
	_, err = f.m.Join(f.ctx, a.ID, alice.ID)
	require.NoError(t, err)

	got := f.load(t, a.ID)
	assert.Equal(t, []string{org.ID, alice.ID}, participantIDs(got))
	assert.Equal(t, model.StatusFull, got.Status)

	joined, err := f.store.JoinedActivityIDs(f.ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, joined)
}

func TestRecomputeStatus(t *testing.T) {
	f := newFixture(t)
	org := f.user(t, "org")
	a := f.create(t, org, 2)

	_, err := f.m.RecomputeStatus(f.ctx, "missing")
	assert.ErrorIs(t, err, lifecycle.ErrNotFound)

	first, err := f.m.RecomputeStatus(f.ctx, a.ID)
	require.NoError(t, err)
	second, err := f.m.RecomputeStatus(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRecruiting, first)
	assert.Equal(t, first, second)

	// 手动修正的漂移会被纠正
	require.NoError(t, f.store.UpdateActivity(f.ctx, a.ID, map[string]any{"status": model.StatusFull}))
	status, err := f.m.RecomputeStatus(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRecruiting, status)

	require.NoError(t, f.store.UpdateActivity(f.ctx, a.ID, map[string]any{"status": model.StatusEnded}))
	status, err = f.m.RecomputeStatus(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusEnded, status)
}

func TestEditPartialUpdateAndFanout(t *testing.T) {
	f := newFixture(t)
	org, bob, carol, dave := f.user(t, "org"), f.user(t, "bob"), f.user(t, "carol"), f.user(t, "dave")
	a := f.create(t, org, 5)
	for _, u := range []*model.User{bob, carol, dave} {
		_, err := f.m.Join(f.ctx, a.ID, u.ID)
		require.NoError(t, err)
	}
	// dave 退出后不再收到通知
	require.NoError(t, f.m.Leave(f.ctx, a.ID, dave.ID))

	place := "New Place"
	res, err := f.m.Edit(f.ctx, a.ID, lifecycle.Patch{Location: &place}, org.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Notified)
	assert.Empty(t, res.FanoutFailures)

	got := res.Activity
	assert.Equal(t, place, got.Location)
	assert.Equal(t, a.Title, got.Title)
	assert.Equal(t, a.Description, got.Description)
	assert.Equal(t, a.Address, got.Address)
	assert.Equal(t, a.CostType, got.CostType)
	assert.Equal(t, a.CostDetail, got.CostDetail)
	assert.Equal(t, a.MaxParticipants, got.MaxParticipants)
	assert.True(t, a.Time.Equal(got.Time))
	assert.Equal(t, model.StatusRecruiting, got.Status)

	for _, u := range []*model.User{org, bob, carol} {
		msgs := f.messagesFor(t, u.ID)
		require.Len(t, msgs, 1, u.Name)
		msg := msgs[0]
		assert.Equal(t, lifecycle.UpdateNotice(a.Title), msg.Content)
		assert.Equal(t, model.MessageSystem, msg.Type)
		assert.Equal(t, u.ID, msg.SenderID)
		assert.Equal(t, u.ID, msg.ReceiverID)
		require.NotNil(t, msg.ActivityID)
		assert.Equal(t, a.ID, *msg.ActivityID)
		assert.False(t, msg.IsRead)
	}
	assert.Empty(t, f.messagesFor(t, dave.ID))
}

func TestEditUsesNewTitleInNotice(t *testing.T) {
	f := newFixture(t)
	org := f.user(t, "org")
	a := f.create(t, org, 3)

	title := "  改期后的羽毛球  "
	res, err := f.m.Edit(f.ctx, a.ID, lifecycle.Patch{Title: &title}, org.ID)
	require.NoError(t, err)
	assert.Equal(t, "改期后的羽毛球", res.Activity.Title)

	msgs := f.messagesFor(t, org.ID)
	require.Len(t, msgs, 1)
	assert.Equal(t, "【改期后的羽毛球】活动信息已更新，请查看最新详情。", msgs[0].Content)
}

func TestEditForbidden(t *testing.T) {
	f := newFixture(t)
	org, bob := f.user(t, "org"), f.user(t, "bob")
	a := f.create(t, org, 3)
	_, err := f.m.Join(f.ctx, a.ID, bob.ID)
	require.NoError(t, err)

	title, max := "hijacked", 2
	_, err = f.m.Edit(f.ctx, a.ID, lifecycle.Patch{Title: &title, MaxParticipants: &max}, bob.ID)
	assert.ErrorIs(t, err, lifecycle.ErrForbidden)

	got := f.load(t, a.ID)
	assert.Equal(t, a.Title, got.Title)
	assert.Equal(t, a.MaxParticipants, got.MaxParticipants)
	assert.Equal(t, model.StatusRecruiting, got.Status)
	assert.Empty(t, f.messagesFor(t, org.ID))
	assert.Empty(t, f.messagesFor(t, bob.ID))

	blank := ""
	_, err = f.m.Edit(f.ctx, a.ID, lifecycle.Patch{Title: &blank}, bob.ID)
	assert.ErrorIs(t, err, lifecycle.ErrForbidden)
	assert.NotErrorIs(t, err, lifecycle.ErrValidation)

	_, err = f.m.Edit(f.ctx, "missing", lifecycle.Patch{Title: &blank}, bob.ID)
	assert.ErrorIs(t, err, lifecycle.ErrNotFound)
}

func TestEditValidation(t *testing.T) {
	f := newFixture(t)
	org := f.user(t, "org")
	a := f.create(t, org, 3)

	empty, one := " ", 1
	zero := time.Time{}
	for _, patch := range []lifecycle.Patch{
		{Title: &empty},
		{Location: &empty},
		{MaxParticipants: &one},
		{Time: &zero},
	} {
		_, err := f.m.Edit(f.ctx, a.ID, patch, org.ID)
		assert.ErrorIs(t, err, lifecycle.ErrValidation)
		assert.NotContains(t, err.Error(), "Key: ''")
	}
	got := f.load(t, a.ID)
	assert.Equal(t, a.Title, got.Title)
	assert.Equal(t, a.Location, got.Location)
	assert.Empty(t, f.messagesFor(t, org.ID))

	_, err := f.m.Edit(f.ctx, "missing", lifecycle.Patch{}, org.ID)
	assert.ErrorIs(t, err, lifecycle.ErrNotFound)
}

func TestEditCapacityRecomputesStatus(t *testing.T) {
	f := newFixture(t)
	org, bob := f.user(t, "org"), f.user(t, "bob")
	a := f.create(t, org, 4)
	_, err := f.m.Join(f.ctx, a.ID, bob.ID)
	require.NoError(t, err)

	two := 2
	res, err := f.m.Edit(f.ctx, a.ID, lifecycle.Patch{MaxParticipants: &two}, org.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFull, res.Activity.Status)

	six := 6
	res, err = f.m.Edit(f.ctx, a.ID, lifecycle.Patch{MaxParticipants: &six}, org.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRecruiting, res.Activity.Status)
}

func TestEmptyPatchSendsNothing(t *testing.T) {
	f := newFixture(t)
	org := f.user(t, "org")
	a := f.create(t, org, 3)

	res, err := f.m.Edit(f.ctx, a.ID, lifecycle.Patch{}, org.ID)
	require.NoError(t, err)
	assert.Zero(t, res.Notified)
	assert.Equal(t, a.ID, res.Activity.ID)
	assert.Empty(t, f.messagesFor(t, org.ID))
}

func TestFanoutFailureKeepsEdit(t *testing.T) {
	f := newFixture(t)
	org, bob := f.user(t, "org"), f.user(t, "bob")
	a := f.create(t, org, 3)
	_, err := f.m.Join(f.ctx, a.ID, bob.ID)
	require.NoError(t, err)
	f.notifier.fail[bob.ID] = true

	detail := "免费"
	res, err := f.m.Edit(f.ctx, a.ID, lifecycle.Patch{CostDetail: &detail}, org.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Notified)
	require.Len(t, res.FanoutFailures, 1)
	assert.Equal(t, bob.ID, res.FanoutFailures[0].RecipientID)

	assert.Equal(t, detail, f.load(t, a.ID).CostDetail)
	assert.Len(t, f.messagesFor(t, org.ID), 1)
	assert.Empty(t, f.messagesFor(t, bob.ID))
}

func TestListAndGet(t *testing.T) {
	f := newFixture(t)
	org := f.user(t, "org")
	badminton := f.create(t, org, 3)

	fields := validFields(5)
	fields.Title = "Group Buy Fruit"
	fields.Category = model.CategoryGroupBuy
	fields.Location = "West Gate"
	groupBuy, err := f.m.Create(f.ctx, fields, org.ID)
	require.NoError(t, err)

	all, err := f.m.List(f.ctx, model.CategoryAll, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, groupBuy.ID, all[0].ID)
	assert.Len(t, all[0].Participants, 1)

	onlyBuy, err := f.m.List(f.ctx, model.CategoryGroupBuy, "")
	require.NoError(t, err)
	require.Len(t, onlyBuy, 1)

	search, err := f.m.List(f.ctx, "", "west gate")
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, groupBuy.ID, search[0].ID)

	_, err = f.m.List(f.ctx, "chess", "")
	assert.ErrorIs(t, err, lifecycle.ErrValidation)

	a, found, err := f.m.GetByID(f.ctx, badminton.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, badminton.Title, a.Title)

	a, found, err = f.m.GetByID(f.ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, a)
}

func TestGetForUser(t *testing.T) {
	f := newFixture(t)
	org, bob := f.user(t, "org"), f.user(t, "bob")
	mine := f.create(t, org, 3)
	other := f.create(t, bob, 3)
	_, err := f.m.Join(f.ctx, other.ID, org.ID)
	require.NoError(t, err)

	res, err := f.m.GetForUser(f.ctx, org.ID)
	require.NoError(t, err)
	require.Len(t, res.Organized, 1)
	assert.Equal(t, mine.ID, res.Organized[0].ID)
	assert.Len(t, res.Joined, 2)

	stranger := f.user(t, "stranger")
	res, err = f.m.GetForUser(f.ctx, stranger.ID)
	require.NoError(t, err)
	assert.Empty(t, res.Organized)
	assert.NotNil(t, res.Joined)
	assert.Empty(t, res.Joined)
}

func TestErrorKinds(t *testing.T) {
	err := &lifecycle.Error{Kind: lifecycle.KindForbidden, Op: "edit"}
	assert.ErrorIs(t, err, lifecycle.ErrForbidden)
	assert.NotErrorIs(t, err, lifecycle.ErrNotFound)
	assert.Equal(t, "edit: forbidden", err.Error())

	wrapped := &lifecycle.Error{Kind: lifecycle.KindValidation, Op: "create", Field: "Title", Err: errors.New("required")}
	assert.Equal(t, "create: validation (Title): required", wrapped.Error())
}
