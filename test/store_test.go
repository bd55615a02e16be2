package test

import (
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

type storeHarness struct {
	cfg    *shared.Config
	repo   dal.IRepo
	storer logic.IStorer
}

func setupStoreTest(t *testing.T) *storeHarness {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockILogger(ctrl)
	setupDummyLogger(mockLogger)
	cfg := newTestConfig(t)
	repo := newTestRepo(t, cfg, mockLogger)
	storer := logic.NewStorer(cfg, mockLogger, repo, newTestMetrics(cfg))
	return &storeHarness{cfg: cfg, repo: repo, storer: storer}
}

func makeStatus(id, userId, retweetId int64) *client.Status {
	return &client.Status{
		Id:        id,
		UserId:    userId,
		Text:      "status text",
		RetweetId: retweetId,
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func page(accountId int64, limit int, statuses ...*client.Status) logic.PageResult[*client.Status] {
	return logic.PageResult[*client.Status]{AccountId: accountId, Limit: limit, Items: statuses}
}

func cachedIds(t *testing.T, repo dal.IRepo, table dal.Table, accountId int64) []int64 {
	ids, err := repo.StatusIds(table, accountId)
	require.Nil(t, err)
	return ids
}

func TestStoreStatusesKeepsRepostOverOriginal(t *testing.T) {

	h := setupStoreTest(t)

	// Page holds an original, a repost of it, and a second repost of the
	// same source
	statuses := []*client.Status{
		makeStatus(100, 7, 0),
		makeStatus(200, 8, 100),
		makeStatus(201, 9, 100),
	}
	res := h.storer.StoreStatuses(dal.TableStatuses, []logic.PageResult[*client.Status]{
		page(1, 20, statuses...),
	}, false)

	assert.True(t, res.Succeeded)
	ids := cachedIds(t, h.repo, dal.TableStatuses, 1)
	assert.Equal(t, []int64{200}, ids)
}

func TestStoreStatusesReplacesCachedRows(t *testing.T) {

	h := setupStoreTest(t)

	// Cached: a repost of source 100 by somebody else
	require.Nil(t, h.repo.InsertStatuses(dal.TableStatuses, []*dal.StatusRow{
		{AccountId: 1, StatusId: 900, UserId: 5, RetweetId: 100, CreatedAt: time.Now()},
	}))

	// Fresh page carries the original 100: the stale repost row must go
	h.storer.StoreStatuses(dal.TableStatuses, []logic.PageResult[*client.Status]{
		page(1, 20, makeStatus(100, 7, 0)),
	}, false)

	ids := cachedIds(t, h.repo, dal.TableStatuses, 1)
	assert.Equal(t, []int64{100}, ids)
}

func TestStoreStatusesPerAccountIsolation(t *testing.T) {

	h := setupStoreTest(t)

	require.Nil(t, h.repo.InsertStatuses(dal.TableStatuses, []*dal.StatusRow{
		{AccountId: 2, StatusId: 100, UserId: 5, CreatedAt: time.Now()},
	}))

	h.storer.StoreStatuses(dal.TableStatuses, []logic.PageResult[*client.Status]{
		page(1, 20, makeStatus(100, 7, 0)),
	}, false)

	// Account 2's copy of the same status survives
	assert.Equal(t, []int64{100}, cachedIds(t, h.repo, dal.TableStatuses, 2))
	assert.Equal(t, []int64{100}, cachedIds(t, h.repo, dal.TableStatuses, 1))
}

func TestStoreStatusesMarksGapOnFullPageWithPriorRows(t *testing.T) {

	h := setupStoreTest(t)

	require.Nil(t, h.repo.InsertStatuses(dal.TableStatuses, []*dal.StatusRow{
		{AccountId: 1, StatusId: 5, UserId: 7, CreatedAt: time.Now()},
	}))

	statuses := []*client.Status{
		makeStatus(30, 7, 0),
		makeStatus(20, 7, 0),
		makeStatus(10, 7, 0),
	}
	res := h.storer.StoreStatuses(dal.TableStatuses, []logic.PageResult[*client.Status]{
		page(1, 3, statuses...),
	}, true)

	// Older content between 5 and 10 may be missing: 10 is the gap boundary
	rows, err := h.repo.GetStatuses(dal.TableStatuses, 1, 10)
	require.Nil(t, err)
	require.Equal(t, 4, len(rows))
	assert.False(t, rows[0].IsGap)
	assert.False(t, rows[1].IsGap)
	assert.True(t, rows[2].IsGap)
	assert.False(t, rows[3].IsGap)

	// Gap row is excluded from the watermark
	assert.Equal(t, int64(20), res.Watermark)
	wm, err := h.repo.GetWatermark(string(dal.TableStatuses))
	require.Nil(t, err)
	assert.Equal(t, int64(20), wm)
}

func TestStoreStatusesNoGapOnFirstFetch(t *testing.T) {

	h := setupStoreTest(t)

	statuses := []*client.Status{
		makeStatus(30, 7, 0),
		makeStatus(20, 7, 0),
		makeStatus(10, 7, 0),
	}
	res := h.storer.StoreStatuses(dal.TableStatuses, []logic.PageResult[*client.Status]{
		page(1, 3, statuses...),
	}, true)

	rows, err := h.repo.GetStatuses(dal.TableStatuses, 1, 10)
	require.Nil(t, err)
	require.Equal(t, 3, len(rows))
	for _, row := range rows {
		assert.False(t, row.IsGap)
	}
	assert.Equal(t, int64(10), res.Watermark)
}

func TestStoreStatusesNoGapOnShortPage(t *testing.T) {

	h := setupStoreTest(t)

	require.Nil(t, h.repo.InsertStatuses(dal.TableStatuses, []*dal.StatusRow{
		{AccountId: 1, StatusId: 5, UserId: 7, CreatedAt: time.Now()},
	}))

	h.storer.StoreStatuses(dal.TableStatuses, []logic.PageResult[*client.Status]{
		page(1, 20, makeStatus(30, 7, 0), makeStatus(20, 7, 0)),
	}, true)

	rows, err := h.repo.GetStatuses(dal.TableStatuses, 1, 10)
	require.Nil(t, err)
	for _, row := range rows {
		assert.False(t, row.IsGap)
	}
}

func TestStoreStatusesNoWatermarkWhenPagingBackwards(t *testing.T) {

	h := setupStoreTest(t)

	res := h.storer.StoreStatuses(dal.TableStatuses, []logic.PageResult[*client.Status]{
		page(1, 20, makeStatus(50, 7, 0)),
	}, false)

	assert.True(t, res.Succeeded)
	assert.Equal(t, int64(-1), res.Watermark)
	wm, err := h.repo.GetWatermark(string(dal.TableStatuses))
	require.Nil(t, err)
	assert.Equal(t, int64(-1), wm)
}

func TestStoreStatusesOutcomes(t *testing.T) {

	h := setupStoreTest(t)

	// All accounts failed: not succeeded
	res := h.storer.StoreStatuses(dal.TableStatuses, []logic.PageResult[*client.Status]{
		{AccountId: 1, Limit: 20, Err: assert.AnError},
	}, true)
	assert.False(t, res.Succeeded)

	// One empty but successful page is enough
	res = h.storer.StoreStatuses(dal.TableStatuses, []logic.PageResult[*client.Status]{
		{AccountId: 1, Limit: 20, Err: assert.AnError},
		{AccountId: 2, Limit: 20, Items: nil},
	}, true)
	assert.True(t, res.Succeeded)
	assert.Equal(t, int64(-1), res.Watermark)
}

func TestStoreStatusesWatermarkSpansAccounts(t *testing.T) {

	h := setupStoreTest(t)

	res := h.storer.StoreStatuses(dal.TableStatuses, []logic.PageResult[*client.Status]{
		page(1, 20, makeStatus(300, 7, 0)),
		page(2, 20, makeStatus(150, 8, 0)),
	}, true)

	assert.Equal(t, int64(150), res.Watermark)
}

func TestStoreMessages(t *testing.T) {

	h := setupStoreTest(t)

	msgs := []*client.DirectMessage{
		{Id: 11, SenderId: 5, RecipientId: 1, Text: "hi", CreatedAt: time.Now()},
		{Id: 12, SenderId: 5, RecipientId: 1, Text: "again", CreatedAt: time.Now()},
	}
	ok := h.storer.StoreMessages(dal.TableMessagesIn, []logic.PageResult[*client.DirectMessage]{
		{AccountId: 1, Limit: 20, Items: msgs},
	})
	assert.True(t, ok)

	ids, err := h.repo.MessageIds(dal.TableMessagesIn, 1)
	require.Nil(t, err)
	assert.ElementsMatch(t, []int64{11, 12}, ids)

	// Re-storing the same page does not duplicate rows
	h.storer.StoreMessages(dal.TableMessagesIn, []logic.PageResult[*client.DirectMessage]{
		{AccountId: 1, Limit: 20, Items: msgs},
	})
	ids, err = h.repo.MessageIds(dal.TableMessagesIn, 1)
	require.Nil(t, err)
	assert.Equal(t, 2, len(ids))

	// A failed response round still reports success as long as it happened
	ok = h.storer.StoreMessages(dal.TableMessagesIn, []logic.PageResult[*client.DirectMessage]{
		{AccountId: 1, Limit: 20, Err: assert.AnError},
	})
	assert.True(t, ok)

	// With no responses at all there is nothing to call a success
	ok = h.storer.StoreMessages(dal.TableMessagesIn, nil)
	assert.False(t, ok)
}

func TestStoreTrendsFeedsHashtagCache(t *testing.T) {

	h := setupStoreTest(t)

	trendSet := &client.TrendSet{
		WoeId: 23424977,
		AsOf:  time.Now(),
		Trends: []client.Trend{
			{Name: "#golang"}, {Name: "#golang"}, {Name: "caturday"}, {Name: "#"},
		},
	}
	require.Nil(t, h.storer.StoreTrends(trendSet))

	trends, err := h.repo.GetTrends(23424977)
	require.Nil(t, err)
	assert.Equal(t, 4, len(trends))

	names, err := h.repo.GetHashtags()
	require.Nil(t, err)
	assert.ElementsMatch(t, []string{"golang", "caturday"}, names)

	// A fresh fetch replaces the trend list wholesale
	require.Nil(t, h.storer.StoreTrends(&client.TrendSet{
		WoeId:  23424977,
		AsOf:   time.Now(),
		Trends: []client.Trend{{Name: "#newthing"}},
	}))
	trends, err = h.repo.GetTrends(23424977)
	require.Nil(t, err)
	assert.Equal(t, 1, len(trends))
}
