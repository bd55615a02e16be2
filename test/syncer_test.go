package test

import (
	"context"
	"magpie/client"
	"magpie/dal"
	"magpie/logic"
	"magpie/shared"
	"magpie/test/mocks"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type syncerHarness struct {
	cfg          *shared.Config
	repo         dal.IRepo
	registry     logic.ITaskRegistry
	events       logic.IEvents
	mockResolver *mocks.MockIResolver
	mockClient   *mocks.MockIClient
	syncer       logic.ISyncer
}

func setupSyncerTest(t *testing.T) *syncerHarness {

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockILogger(ctrl)
	setupDummyLogger(mockLogger)

	h := &syncerHarness{
		cfg:          newTestConfig(t),
		mockResolver: mocks.NewMockIResolver(ctrl),
		mockClient:   mocks.NewMockIClient(ctrl),
	}
	h.repo = newTestRepo(t, h.cfg, mockLogger)
	h.events = logic.NewEvents(mockLogger)
	metrics := newTestMetrics(h.cfg)
	h.registry = logic.NewTaskRegistry(mockLogger, metrics)
	storer := logic.NewStorer(h.cfg, mockLogger, h.repo, metrics)
	composer := logic.NewComposer(h.cfg, mockLogger, h.repo, h.mockResolver,
		nil, nil, h.events, metrics)
	h.syncer = logic.NewSyncer(h.cfg, mockLogger, h.repo, h.mockResolver,
		h.registry, storer, composer, h.events, metrics)
	return h
}

// awaitEvent drains the subscription until the named event shows up.
func awaitEvent(t *testing.T, sub <-chan logic.Event, name logic.EventName) logic.Event {
	deadline := time.After(3 * time.Second)
	for {
		select {
		case evt := <-sub:
			if evt.Name == name {
				return evt
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s event", name)
		}
	}
}

func TestRefreshHomeTimelineEndToEnd(t *testing.T) {

	h := setupSyncerTest(t)
	sub := h.events.Subscribe()

	h.mockResolver.EXPECT().ActivatedAccountIds().Return([]int64{1})
	h.mockResolver.EXPECT().Client(int64(1)).Return(h.mockClient)
	h.mockClient.EXPECT().HomeTimeline(gomock.Any(), gomock.Any()).
		Return([]*client.Status{
			{Id: 20, UserId: 7, Text: "newer", CreatedAt: time.Now()},
			{Id: 10, UserId: 7, Text: "older", CreatedAt: time.Now()},
		}, nil)

	taskId := h.syncer.RefreshHomeTimeline(nil, nil, nil)
	assert.Greater(t, taskId, 0)

	evt := awaitEvent(t, sub, logic.EvTimelineStored)
	assert.Equal(t, dal.TableStatuses, evt.Table)
	assert.True(t, evt.Succeeded)
	// No explicit upper bound, so the watermark tracks the oldest new item
	assert.Equal(t, int64(10), evt.Watermark)

	ids, err := h.repo.StatusIds(dal.TableStatuses, 1)
	require.Nil(t, err)
	assert.ElementsMatch(t, []int64{10, 20}, ids)
	h.registry.Shutdown()
}

func TestRefreshAllSeedsSinceIdsFromWatermark(t *testing.T) {

	h := setupSyncerTest(t)
	sub := h.events.Subscribe()

	// A previous run left a watermark behind; the status cache itself is empty
	require.Nil(t, h.repo.SetWatermark(string(dal.TableStatuses), 40))

	h.mockResolver.EXPECT().ActivatedAccountIds().Return([]int64{1})
	h.mockResolver.EXPECT().Client(int64(1)).Return(h.mockClient)
	h.mockClient.EXPECT().HomeTimeline(gomock.Any(), gomock.Cond(func(x any) bool {
		p, ok := x.(client.Paging)
		return ok && p.SinceId == 40 && p.MaxId == 0
	})).Return([]*client.Status{
		{Id: 50, UserId: 7, Text: "fresh", CreatedAt: time.Now()},
	}, nil)

	h.syncer.RefreshAll()

	evt := awaitEvent(t, sub, logic.EvTimelineStored)
	assert.True(t, evt.Succeeded)
	h.registry.Shutdown()
}

func TestRefreshReportsBusyWhileFetchRuns(t *testing.T) {

	h := setupSyncerTest(t)

	release := make(chan struct{})
	h.mockClient.EXPECT().HomeTimeline(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, p client.Paging) ([]*client.Status, error) {
			<-release
			return nil, nil
		})
	h.mockResolver.EXPECT().Client(int64(1)).Return(h.mockClient)

	h.syncer.RefreshHomeTimeline([]int64{1}, nil, nil)
	assert.True(t, h.syncer.IsHomeTimelineRefreshing())
	assert.False(t, h.syncer.IsMentionsRefreshing())

	close(release)
	require.Eventually(t, func() bool { return !h.syncer.IsHomeTimelineRefreshing() },
		3*time.Second, 10*time.Millisecond)
	h.registry.Shutdown()
}

func TestRefreshTrendsFallsBackAcrossAccounts(t *testing.T) {

	h := setupSyncerTest(t)
	h.cfg.TrendsWoeId = 23424977
	sub := h.events.Subscribe()

	ctrl := gomock.NewController(t)
	brokenClient := mocks.NewMockIClient(ctrl)
	brokenClient.EXPECT().LocalTrends(gomock.Any(), int64(23424977)).
		Return(nil, assert.AnError)
	h.mockClient.EXPECT().LocalTrends(gomock.Any(), int64(23424977)).
		Return(&client.TrendSet{
			WoeId:  23424977,
			AsOf:   time.Now(),
			Trends: []client.Trend{{Name: "#caturday"}},
		}, nil)

	h.mockResolver.EXPECT().ActivatedAccountIds().Return([]int64{1, 2})
	h.mockResolver.EXPECT().Client(int64(1)).Return(brokenClient)
	h.mockResolver.EXPECT().Client(int64(2)).Return(h.mockClient)

	h.syncer.RefreshTrends()

	evt := awaitEvent(t, sub, logic.EvTrendsStored)
	assert.True(t, evt.Succeeded)
	trends, err := h.repo.GetTrends(23424977)
	require.Nil(t, err)
	assert.Equal(t, 1, len(trends))
	h.registry.Shutdown()
}

func TestDestroyStatusToleratesAlreadyGone(t *testing.T) {

	h := setupSyncerTest(t)

	require.Nil(t, h.repo.InsertStatuses(dal.TableStatuses, []*dal.StatusRow{
		{AccountId: 1, StatusId: 100, UserId: 7, CreatedAt: time.Now()},
	}))
	require.Nil(t, h.repo.InsertStatuses(dal.TableMentions, []*dal.StatusRow{
		{AccountId: 1, StatusId: 300, UserId: 8, RetweetId: 100, CreatedAt: time.Now()},
	}))

	h.mockResolver.EXPECT().Client(int64(1)).Return(h.mockClient)
	h.mockClient.EXPECT().DestroyStatus(gomock.Any(), int64(100)).
		Return(nil, &client.APIError{Code: client.CodeAlreadyGone, Message: "gone"})

	require.Nil(t, h.syncer.DestroyStatus(context.Background(), 1, 100))

	// The status and the repost of it are both purged from the cache
	ids, err := h.repo.StatusIds(dal.TableStatuses, 1)
	require.Nil(t, err)
	assert.Empty(t, ids)
	ids, err = h.repo.StatusIds(dal.TableMentions, 1)
	require.Nil(t, err)
	assert.Empty(t, ids)
}

func TestRetweetMarksCachedCopies(t *testing.T) {

	h := setupSyncerTest(t)

	require.Nil(t, h.repo.InsertStatuses(dal.TableStatuses, []*dal.StatusRow{
		{AccountId: 1, StatusId: 100, UserId: 7, CreatedAt: time.Now()},
	}))
	require.Nil(t, h.repo.InsertStatuses(dal.TableMentions, []*dal.StatusRow{
		{AccountId: 1, StatusId: 300, UserId: 8, RetweetId: 100, CreatedAt: time.Now()},
	}))

	h.mockResolver.EXPECT().Client(int64(1)).Return(h.mockClient)
	h.mockClient.EXPECT().RetweetStatus(gomock.Any(), int64(100)).
		Return(&client.Status{Id: 999, RetweetId: 100}, nil)

	require.Nil(t, h.syncer.Retweet(context.Background(), 1, 100))

	rows, err := h.repo.GetStatuses(dal.TableStatuses, 1, 10)
	require.Nil(t, err)
	require.Equal(t, 1, len(rows))
	assert.Equal(t, int64(999), rows[0].MyRetweetId)
	rows, err = h.repo.GetStatuses(dal.TableMentions, 1, 10)
	require.Nil(t, err)
	require.Equal(t, 1, len(rows))
	assert.Equal(t, int64(999), rows[0].MyRetweetId)

	// Undoing the retweet clears the marker again
	h.mockResolver.EXPECT().Client(int64(1)).Return(h.mockClient)
	h.mockClient.EXPECT().DestroyStatus(gomock.Any(), int64(999)).
		Return(&client.Status{Id: 999}, nil)
	require.Nil(t, h.syncer.DestroyRetweet(context.Background(), 1, 100, 999))
	rows, err = h.repo.GetStatuses(dal.TableStatuses, 1, 10)
	require.Nil(t, err)
	assert.Zero(t, rows[0].MyRetweetId)
}

func TestFavoriteTogglesBothStatusTables(t *testing.T) {

	h := setupSyncerTest(t)

	require.Nil(t, h.repo.InsertStatuses(dal.TableStatuses, []*dal.StatusRow{
		{AccountId: 1, StatusId: 100, UserId: 7, CreatedAt: time.Now()},
	}))
	require.Nil(t, h.repo.InsertStatuses(dal.TableMentions, []*dal.StatusRow{
		{AccountId: 1, StatusId: 100, UserId: 7, CreatedAt: time.Now()},
	}))

	// Remote says duplicate: the flag is right anyway
	h.mockResolver.EXPECT().Client(int64(1)).Return(h.mockClient)
	h.mockClient.EXPECT().CreateFavorite(gomock.Any(), int64(100)).
		Return(nil, &client.APIError{Code: client.CodeDuplicate, Message: "already favorited"})
	require.Nil(t, h.syncer.CreateFavorite(context.Background(), 1, 100))

	for _, table := range dal.StatusTables() {
		rows, err := h.repo.GetStatuses(table, 1, 10)
		require.Nil(t, err)
		assert.True(t, rows[0].IsFavorite)
	}

	h.mockResolver.EXPECT().Client(int64(1)).Return(h.mockClient)
	h.mockClient.EXPECT().DestroyFavorite(gomock.Any(), int64(100)).
		Return(&client.Status{Id: 100}, nil)
	require.Nil(t, h.syncer.DestroyFavorite(context.Background(), 1, 100))
	rows, err := h.repo.GetStatuses(dal.TableStatuses, 1, 10)
	require.Nil(t, err)
	assert.False(t, rows[0].IsFavorite)
}

func TestCreateBlockPurgesUserContent(t *testing.T) {

	h := setupSyncerTest(t)

	require.Nil(t, h.repo.InsertStatuses(dal.TableStatuses, []*dal.StatusRow{
		{AccountId: 1, StatusId: 100, UserId: 7, CreatedAt: time.Now()},
		{AccountId: 1, StatusId: 200, UserId: 8, RetweetedById: 7, CreatedAt: time.Now()},
		{AccountId: 1, StatusId: 300, UserId: 9, CreatedAt: time.Now()},
	}))

	h.mockResolver.EXPECT().Client(int64(1)).Return(h.mockClient)
	h.mockClient.EXPECT().CreateBlock(gomock.Any(), int64(7)).
		Return(&client.User{Id: 7}, nil)

	require.Nil(t, h.syncer.CreateBlock(context.Background(), 1, 7))

	// Both the user's own statuses and their reposts are gone
	ids, err := h.repo.StatusIds(dal.TableStatuses, 1)
	require.Nil(t, err)
	assert.Equal(t, []int64{300}, ids)
}

func TestSendMessageLandsInOutbox(t *testing.T) {

	h := setupSyncerTest(t)

	h.mockResolver.EXPECT().Client(int64(1)).Return(h.mockClient)
	h.mockClient.EXPECT().SendDirectMessage(gomock.Any(), int64(5), "hello").
		Return(&client.DirectMessage{
			Id: 42, SenderId: 1, RecipientId: 5, Text: "hello", CreatedAt: time.Now(),
		}, nil)

	require.Nil(t, h.syncer.SendMessage(context.Background(), 1, 5, "hello"))

	ids, err := h.repo.MessageIds(dal.TableMessagesOut, 1)
	require.Nil(t, err)
	assert.Equal(t, []int64{42}, ids)
}

func TestDestroyMessageToleratesAlreadyGone(t *testing.T) {

	h := setupSyncerTest(t)

	require.Nil(t, h.repo.InsertMessages(dal.TableMessagesIn, []*dal.MessageRow{
		{AccountId: 1, MessageId: 42, SenderId: 5, Text: "hi", CreatedAt: time.Now()},
	}))

	h.mockResolver.EXPECT().Client(int64(1)).Return(h.mockClient)
	h.mockClient.EXPECT().DestroyDirectMessage(gomock.Any(), int64(42)).
		Return(nil, &client.APIError{Code: client.CodeAlreadyGone, Message: "gone"})

	require.Nil(t, h.syncer.DestroyMessage(context.Background(), 1, 42))

	ids, err := h.repo.MessageIds(dal.TableMessagesIn, 1)
	require.Nil(t, err)
	assert.Empty(t, ids)
}

func TestMutationsFailWithoutClient(t *testing.T) {

	h := setupSyncerTest(t)
	h.mockResolver.EXPECT().Client(int64(9)).Return(nil).AnyTimes()

	ctx := context.Background()
	assert.NotNil(t, h.syncer.DestroyStatus(ctx, 9, 100))
	assert.NotNil(t, h.syncer.CreateFavorite(ctx, 9, 100))
	assert.NotNil(t, h.syncer.SendMessage(ctx, 9, 5, "hello"))
	assert.NotNil(t, h.syncer.CreateList(ctx, 9, "birds", true, ""))
}

func TestPostStatusRunsAsTask(t *testing.T) {

	h := setupSyncerTest(t)
	sub := h.events.Subscribe()

	h.mockResolver.EXPECT().Client(int64(1)).Return(h.mockClient)
	h.mockClient.EXPECT().PostStatus(gomock.Any(), gomock.Any()).
		Return(&client.Status{Id: 501}, nil)

	taskId := h.syncer.PostStatus(&logic.PostRequest{AccountIds: []int64{1}, Text: "hi"})
	assert.Greater(t, taskId, 0)

	evt := awaitEvent(t, sub, logic.EvStatusPosted)
	assert.True(t, evt.Succeeded)
	assert.Equal(t, int64(501), evt.ItemId)
	h.registry.Shutdown()
}
