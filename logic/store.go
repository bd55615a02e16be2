package logic

import (
	"html"
	"magpie/client"
	"magpie/dal"
	"magpie/shared"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// StoreResult is the outcome of one multi-account store round. Watermark is
// the smallest newly inserted id across all accounts, or -1 when none was
// tracked.
type StoreResult struct {
	Succeeded bool
	Watermark int64
}

// IStorer merges fetched pages into the local cache. Per-account failures
// never abort the whole round; an account that errored simply contributes
// nothing.
type IStorer interface {
	StoreStatuses(table dal.Table, pages []PageResult[*client.Status], trackWatermark bool) StoreResult
	StoreMessages(table dal.Table, pages []PageResult[*client.DirectMessage]) bool
	StoreTrends(trendSet *client.TrendSet) error
}

type storer struct {
	cfg     *shared.Config
	logger  shared.ILogger
	repo    dal.IRepo
	metrics IMetrics
	strip   *bluemonday.Policy
}

func NewStorer(cfg *shared.Config, logger shared.ILogger, repo dal.IRepo, metrics IMetrics) IStorer {
	return &storer{
		cfg:     cfg,
		logger:  logger,
		repo:    repo,
		metrics: metrics,
		strip:   bluemonday.StrictPolicy(),
	}
}

// plainText strips markup from remote text before it goes in the cache.
func (st *storer) plainText(text string) string {
	return html.UnescapeString(st.strip.Sanitize(text))
}

func (st *storer) toStatusRow(accountId int64, s *client.Status) *dal.StatusRow {
	return &dal.StatusRow{
		AccountId:     accountId,
		StatusId:      s.Id,
		UserId:        s.UserId,
		ScreenName:    s.ScreenName,
		UserName:      s.UserName,
		Text:          st.plainText(s.Text),
		Source:        st.plainText(s.Source),
		InReplyToId:   s.InReplyToId,
		RetweetId:     s.RetweetId,
		RetweetedById: s.RetweetedById,
		MyRetweetId:   s.MyRetweetId,
		IsFavorite:    s.IsFavorite,
		CreatedAt:     s.CreatedAt,
	}
}

func (st *storer) toMessageRow(accountId int64, m *client.DirectMessage) *dal.MessageRow {
	return &dal.MessageRow{
		AccountId:           accountId,
		MessageId:           m.Id,
		SenderId:            m.SenderId,
		SenderScreenName:    m.SenderScreenName,
		RecipientId:         m.RecipientId,
		RecipientScreenName: m.RecipientScreenName,
		Text:                st.plainText(m.Text),
		CreatedAt:           m.CreatedAt,
	}
}

// StoreStatuses merges fetched timeline pages. A repost and its original
// never coexist in the stored page: when a page contains reposts, their
// originals and duplicate reposts of the same source are dropped. Incoming
// rows replace cached rows with the same status or repost source. When a full
// page arrives for an account that already had cached content, the oldest row
// gets a gap marker so readers know older items may be missing in between.
// An account's first-ever page never gets one.
func (st *storer) StoreStatuses(table dal.Table, pages []PageResult[*client.Status], trackWatermark bool) StoreResult {

	res := StoreResult{Succeeded: false, Watermark: -1}
	newlyInserted := make(map[int64]bool)

	for _, page := range pages {
		if page.Err != nil {
			continue
		}
		res.Succeeded = true
		if len(page.Items) == 0 {
			continue
		}

		statusIds := make([]int64, 0, len(page.Items))
		retweetIds := make(map[int64]bool)
		minId := int64(0)
		for _, s := range page.Items {
			statusIds = append(statusIds, s.Id)
			if s.RetweetId > 0 {
				retweetIds[s.RetweetId] = true
			}
			if minId == 0 || s.Id < minId {
				minId = s.Id
			}
		}

		idsInDb, err := st.repo.StatusIds(table, page.AccountId)
		if err != nil {
			st.logger.Errorf("Failed to read cached ids for account %d: %v", page.AccountId, err)
			continue
		}
		hadRowsBefore := len(idsInDb) != 0
		inDb := make(map[int64]bool, len(idsInDb))
		for _, id := range idsInDb {
			inDb[id] = true
		}
		for _, id := range statusIds {
			if !inDb[id] {
				newlyInserted[id] = true
			}
		}

		// Keep originals only when no repost of them is on the page; keep one
		// repost per source.
		seenSources := make(map[int64]bool)
		rows := make([]*dal.StatusRow, 0, len(page.Items))
		for _, s := range page.Items {
			if retweetIds[s.Id] {
				continue
			}
			if s.RetweetId > 0 {
				if seenSources[s.RetweetId] {
					continue
				}
				seenSources[s.RetweetId] = true
			}
			rows = append(rows, st.toStatusRow(page.AccountId, s))
		}

		if _, err = st.repo.DeleteStatuses(table, page.AccountId, statusIds); err != nil {
			continue
		}
		if err = st.repo.InsertStatuses(table, rows); err != nil {
			continue
		}
		st.metrics.ItemsStored(string(table), len(rows))

		if minId > 0 && page.Limit > 0 && len(page.Items) >= page.Limit && hadRowsBefore {
			if err = st.repo.MarkGap(table, page.AccountId, minId); err == nil {
				st.metrics.GapMarked()
				// The gap row is a boundary, not fresh content
				delete(newlyInserted, minId)
			}
		}
	}

	if trackWatermark && len(newlyInserted) != 0 {
		watermark := int64(0)
		for id := range newlyInserted {
			if watermark == 0 || id < watermark {
				watermark = id
			}
		}
		if err := st.repo.SetWatermark(string(table), watermark); err == nil {
			res.Watermark = watermark
		}
	}

	return res
}

func (st *storer) StoreMessages(table dal.Table, pages []PageResult[*client.DirectMessage]) bool {

	succeeded := false
	for _, page := range pages {
		succeeded = true
		if page.Err != nil || len(page.Items) == 0 {
			continue
		}
		idsInDb, err := st.repo.MessageIds(table, page.AccountId)
		if err != nil {
			st.logger.Errorf("Failed to read cached message ids for account %d: %v", page.AccountId, err)
			continue
		}
		inDb := make(map[int64]bool, len(idsInDb))
		for _, id := range idsInDb {
			inDb[id] = true
		}
		ids := make([]int64, 0, len(page.Items))
		rows := make([]*dal.MessageRow, 0, len(page.Items))
		newCount := 0
		for _, m := range page.Items {
			ids = append(ids, m.Id)
			rows = append(rows, st.toMessageRow(page.AccountId, m))
			if !inDb[m.Id] {
				newCount += 1
			}
		}
		if err := st.repo.DeleteMessages(table, page.AccountId, ids); err != nil {
			continue
		}
		if err := st.repo.InsertMessages(table, rows); err != nil {
			continue
		}
		// Re-stored rows are refreshed copies, not new arrivals
		st.metrics.ItemsStored(string(table), newCount)
	}
	return succeeded
}

// StoreTrends replaces the cached trend list and feeds trend names into the
// hashtag cache, stripped of their leading '#'.
func (st *storer) StoreTrends(trendSet *client.TrendSet) error {

	rows := make([]*dal.TrendRow, 0, len(trendSet.Trends))
	seen := make(map[string]bool)
	names := make([]string, 0, len(trendSet.Trends))
	for _, tr := range trendSet.Trends {
		rows = append(rows, &dal.TrendRow{WoeId: trendSet.WoeId, Name: tr.Name, AsOf: trendSet.AsOf})
		name := strings.TrimPrefix(tr.Name, "#")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	if err := st.repo.ReplaceTrends(trendSet.WoeId, rows); err != nil {
		return err
	}
	if err := st.repo.UpsertHashtags(names); err != nil {
		st.logger.Warnf("Failed to cache hashtags from trends: %v", err)
	}
	st.metrics.ItemsStored("trends", len(rows))
	return nil
}
