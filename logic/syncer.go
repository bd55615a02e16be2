package logic

import (
	"context"
	"fmt"
	"magpie/client"
	"magpie/dal"
	"magpie/shared"
	"time"
)

// ISyncer is the engine's front door. Refresh methods admit background tasks
// and return the task id; a nil accountIds means all activated accounts.
// Single-item mutations run synchronously on the caller's context.
type ISyncer interface {
	RefreshHomeTimeline(accountIds, maxIds, sinceIds []int64) int
	RefreshMentions(accountIds, maxIds, sinceIds []int64) int
	RefreshReceivedMessages(accountIds, maxIds, sinceIds []int64) int
	RefreshSentMessages(accountIds, maxIds, sinceIds []int64) int
	RefreshTrends() int
	RefreshAll()
	IsHomeTimelineRefreshing() bool
	IsMentionsRefreshing() bool
	IsReceivedMessagesRefreshing() bool
	IsSentMessagesRefreshing() bool
	PostStatus(req *PostRequest) int
	DestroyStatus(ctx context.Context, accountId, statusId int64) error
	Retweet(ctx context.Context, accountId, statusId int64) error
	DestroyRetweet(ctx context.Context, accountId, statusId, myRetweetId int64) error
	CreateFavorite(ctx context.Context, accountId, statusId int64) error
	DestroyFavorite(ctx context.Context, accountId, statusId int64) error
	CreateBlock(ctx context.Context, accountId, userId int64) error
	DestroyBlock(ctx context.Context, accountId, userId int64) error
	ReportSpam(ctx context.Context, accountId, userId int64) error
	CreateFriendship(ctx context.Context, accountId, userId int64) error
	DestroyFriendship(ctx context.Context, accountId, userId int64) error
	SendMessage(ctx context.Context, accountId, recipientId int64, text string) error
	DestroyMessage(ctx context.Context, accountId, messageId int64) error
	UpdateProfile(ctx context.Context, accountId int64, name, url, location, description string) error
	CreateList(ctx context.Context, accountId int64, name string, isPublic bool, description string) error
	DestroyList(ctx context.Context, accountId, listId int64) error
	AddListMember(ctx context.Context, accountId, listId, userId int64) error
	DeleteListMember(ctx context.Context, accountId, listId, userId int64) error
	CreateListSubscription(ctx context.Context, accountId, listId int64) error
	DestroyListSubscription(ctx context.Context, accountId, listId int64) error
	Start()
	Stop()
}

type syncer struct {
	cfg      *shared.Config
	logger   shared.ILogger
	repo     dal.IRepo
	resolver client.IResolver
	registry ITaskRegistry
	storer   IStorer
	composer IComposer
	events   IEvents
	metrics  IMetrics
	stop     chan struct{}
}

func NewSyncer(
	cfg *shared.Config,
	logger shared.ILogger,
	repo dal.IRepo,
	resolver client.IResolver,
	registry ITaskRegistry,
	storer IStorer,
	composer IComposer,
	events IEvents,
	metrics IMetrics,
) ISyncer {
	return &syncer{
		cfg:      cfg,
		logger:   logger,
		repo:     repo,
		resolver: resolver,
		registry: registry,
		storer:   storer,
		composer: composer,
		events:   events,
		metrics:  metrics,
		stop:     make(chan struct{}),
	}
}

func (s *syncer) RefreshHomeTimeline(accountIds, maxIds, sinceIds []int64) int {
	return s.refreshStatuses(dal.TableStatuses, accountIds, maxIds, sinceIds,
		func(ctx context.Context, cl client.IClient, paging client.Paging) ([]*client.Status, error) {
			return cl.HomeTimeline(ctx, paging)
		})
}

func (s *syncer) RefreshMentions(accountIds, maxIds, sinceIds []int64) int {
	return s.refreshStatuses(dal.TableMentions, accountIds, maxIds, sinceIds,
		func(ctx context.Context, cl client.IClient, paging client.Paging) ([]*client.Status, error) {
			return cl.Mentions(ctx, paging)
		})
}

func (s *syncer) RefreshReceivedMessages(accountIds, maxIds, sinceIds []int64) int {
	return s.refreshMessages(dal.TableMessagesIn, accountIds, maxIds, sinceIds,
		func(ctx context.Context, cl client.IClient, paging client.Paging) ([]*client.DirectMessage, error) {
			return cl.ReceivedMessages(ctx, paging)
		})
}

func (s *syncer) RefreshSentMessages(accountIds, maxIds, sinceIds []int64) int {
	return s.refreshMessages(dal.TableMessagesOut, accountIds, maxIds, sinceIds,
		func(ctx context.Context, cl client.IClient, paging client.Paging) ([]*client.DirectMessage, error) {
			return cl.SentMessages(ctx, paging)
		})
}

func (s *syncer) refreshStatuses(
	table dal.Table,
	accountIds, maxIds, sinceIds []int64,
	fetch func(ctx context.Context, cl client.IClient, paging client.Paging) ([]*client.Status, error),
) int {

	if accountIds == nil {
		accountIds = s.resolver.ActivatedAccountIds()
	}
	// When paging backwards with explicit upper bounds, older content gets
	// merged in but the watermark must not move
	trackWatermark := !IdsValid(maxIds, accountIds)
	tags := classTags[string(table)]
	s.metrics.RefreshStarted(string(table))
	s.events.RefreshStarted(string(table))
	return s.registry.Add(tags[0], func(ctx context.Context) {
		pages := FetchPages(ctx, s.logger, s.resolver, accountIds, maxIds, sinceIds, s.cfg.PageSize, fetch)
		if ctx.Err() != nil {
			return
		}
		s.registry.Add(tags[1], func(ctx context.Context) {
			res := s.storer.StoreStatuses(table, pages, trackWatermark)
			s.events.TimelineStored(table, res.Succeeded, res.Watermark)
		})
	})
}

func (s *syncer) refreshMessages(
	table dal.Table,
	accountIds, maxIds, sinceIds []int64,
	fetch func(ctx context.Context, cl client.IClient, paging client.Paging) ([]*client.DirectMessage, error),
) int {

	if accountIds == nil {
		accountIds = s.resolver.ActivatedAccountIds()
	}
	tags := classTags[string(table)]
	s.metrics.RefreshStarted(string(table))
	s.events.RefreshStarted(string(table))
	return s.registry.Add(tags[0], func(ctx context.Context) {
		pages := FetchPages(ctx, s.logger, s.resolver, accountIds, maxIds, sinceIds, s.cfg.PageSize, fetch)
		if ctx.Err() != nil {
			return
		}
		s.registry.Add(tags[1], func(ctx context.Context) {
			succeeded := s.storer.StoreMessages(table, pages)
			s.events.MessagesStored(table, succeeded)
		})
	})
}

func (s *syncer) RefreshTrends() int {

	s.metrics.RefreshStarted("trends")
	s.events.RefreshStarted("trends")
	return s.registry.Add(TagGetTrends, func(ctx context.Context) {
		woeid := s.cfg.TrendsWoeId
		var trendSet *client.TrendSet
		for _, accountId := range s.resolver.ActivatedAccountIds() {
			cl := s.resolver.Client(accountId)
			if cl == nil {
				continue
			}
			var err error
			trendSet, err = cl.LocalTrends(ctx, woeid)
			if err == nil {
				break
			}
			s.logger.Warnf("Trend fetch via account %d failed: %v", accountId, err)
			trendSet = nil
		}
		if trendSet == nil || ctx.Err() != nil {
			s.events.TrendsStored(woeid, false)
			return
		}
		s.registry.Add(TagStoreTrends, func(ctx context.Context) {
			err := s.storer.StoreTrends(trendSet)
			s.events.TrendsStored(woeid, err == nil)
		})
	})
}

// RefreshAll pulls everything forward from the newest cached ids. Mentions
// and messages only join in when their auto-refresh flags say so.
func (s *syncer) RefreshAll() {

	accountIds := s.resolver.ActivatedAccountIds()
	s.RefreshHomeTimeline(accountIds, nil, s.newestStatusIds(dal.TableStatuses, accountIds))
	if s.cfg.AutoRefreshMentions {
		s.RefreshMentions(accountIds, nil, s.newestStatusIds(dal.TableMentions, accountIds))
	}
	if s.cfg.AutoRefreshMessages {
		s.RefreshReceivedMessages(accountIds, nil, s.newestMessageIds(dal.TableMessagesIn, accountIds))
		s.RefreshSentMessages(accountIds, nil, s.newestMessageIds(dal.TableMessagesOut, accountIds))
	}
	if s.cfg.TrendsWoeId > 0 {
		s.RefreshTrends()
	}
}

func (s *syncer) newestStatusIds(table dal.Table, accountIds []int64) []int64 {
	wm, err := s.repo.GetWatermark(string(table))
	if err != nil {
		s.logger.Warnf("Failed to read %s watermark: %v", table, err)
		wm = -1
	}
	res := make([]int64, len(accountIds))
	for i, accountId := range accountIds {
		id, err := s.repo.NewestStatusId(table, accountId)
		if err != nil {
			s.logger.Warnf("Failed to read newest status id for account %d: %v", accountId, err)
		}
		// An account with an empty cache still gets a lower bound from the
		// class watermark, so it does not re-pull the whole backlog
		if id <= 0 && wm > 0 {
			id = wm
		}
		res[i] = id
	}
	return res
}

func (s *syncer) newestMessageIds(table dal.Table, accountIds []int64) []int64 {
	res := make([]int64, len(accountIds))
	for i, accountId := range accountIds {
		id, err := s.repo.NewestMessageId(table, accountId)
		if err != nil {
			s.logger.Warnf("Failed to read newest message id for account %d: %v", accountId, err)
		}
		res[i] = id
	}
	return res
}

func (s *syncer) isClassRefreshing(table dal.Table) bool {
	tags := classTags[string(table)]
	return s.registry.HasRunningTasksForTags(tags[0], tags[1])
}

func (s *syncer) IsHomeTimelineRefreshing() bool {
	return s.isClassRefreshing(dal.TableStatuses)
}

func (s *syncer) IsMentionsRefreshing() bool {
	return s.isClassRefreshing(dal.TableMentions)
}

func (s *syncer) IsReceivedMessagesRefreshing() bool {
	return s.isClassRefreshing(dal.TableMessagesIn)
}

func (s *syncer) IsSentMessagesRefreshing() bool {
	return s.isClassRefreshing(dal.TableMessagesOut)
}

func (s *syncer) PostStatus(req *PostRequest) int {
	return s.registry.Add(TagPostStatus, func(ctx context.Context) {
		results := s.composer.Post(ctx, req)
		for _, res := range results {
			if res.Err != nil {
				return
			}
		}
		if s.cfg.RefreshAfterPosting {
			s.RefreshAll()
		}
	})
}

func (s *syncer) clientFor(accountId int64) (client.IClient, error) {
	cl := s.resolver.Client(accountId)
	if cl == nil {
		return nil, fmt.Errorf("no client for account %d", accountId)
	}
	return cl, nil
}

func (s *syncer) DestroyStatus(ctx context.Context, accountId, statusId int64) error {

	cl, err := s.clientFor(accountId)
	if err != nil {
		return err
	}
	if _, err = cl.DestroyStatus(ctx, statusId); err != nil && !client.IsAlreadyGone(err) {
		s.events.StatusDestroyed(accountId, statusId, false)
		return err
	}
	if err = s.repo.DeleteStatusEverywhere(statusId); err != nil {
		return err
	}
	s.events.StatusDestroyed(accountId, statusId, true)
	return nil
}

func (s *syncer) Retweet(ctx context.Context, accountId, statusId int64) error {

	cl, err := s.clientFor(accountId)
	if err != nil {
		return err
	}
	status, err := cl.RetweetStatus(ctx, statusId)
	if err != nil {
		s.events.RetweetChanged(accountId, statusId, false)
		return err
	}
	if err = s.repo.SetMyRetweet(statusId, status.Id); err != nil {
		return err
	}
	s.events.RetweetChanged(accountId, statusId, true)
	return nil
}

func (s *syncer) DestroyRetweet(ctx context.Context, accountId, statusId, myRetweetId int64) error {

	cl, err := s.clientFor(accountId)
	if err != nil {
		return err
	}
	if _, err = cl.DestroyStatus(ctx, myRetweetId); err != nil && !client.IsAlreadyGone(err) {
		s.events.RetweetChanged(accountId, statusId, false)
		return err
	}
	if err = s.repo.SetMyRetweet(statusId, 0); err != nil {
		return err
	}
	s.events.RetweetChanged(accountId, statusId, true)
	return nil
}

func (s *syncer) setFavorite(ctx context.Context, accountId, statusId int64, isFavorite bool) error {

	cl, err := s.clientFor(accountId)
	if err != nil {
		return err
	}
	if isFavorite {
		_, err = cl.CreateFavorite(ctx, statusId)
		// Favoriting twice comes back as a duplicate; the flag is right either way
		if client.IsDuplicate(err) {
			err = nil
		}
	} else {
		_, err = cl.DestroyFavorite(ctx, statusId)
		if client.IsAlreadyGone(err) {
			err = nil
		}
	}
	if err != nil {
		s.events.FavoriteChanged(accountId, statusId, false)
		return err
	}
	if err = s.repo.SetFavorite(statusId, isFavorite); err != nil {
		return err
	}
	s.events.FavoriteChanged(accountId, statusId, true)
	return nil
}

func (s *syncer) CreateFavorite(ctx context.Context, accountId, statusId int64) error {
	return s.setFavorite(ctx, accountId, statusId, true)
}

func (s *syncer) DestroyFavorite(ctx context.Context, accountId, statusId int64) error {
	return s.setFavorite(ctx, accountId, statusId, false)
}

// CreateBlock also purges everything the blocked user put in the cache.
func (s *syncer) CreateBlock(ctx context.Context, accountId, userId int64) error {

	cl, err := s.clientFor(accountId)
	if err != nil {
		return err
	}
	if _, err = cl.CreateBlock(ctx, userId); err != nil {
		s.events.BlockChanged(accountId, userId, false)
		return err
	}
	if err = s.repo.DeleteStatusesByUser(userId); err != nil {
		return err
	}
	s.events.BlockChanged(accountId, userId, true)
	return nil
}

func (s *syncer) DestroyBlock(ctx context.Context, accountId, userId int64) error {

	cl, err := s.clientFor(accountId)
	if err != nil {
		return err
	}
	if _, err = cl.DestroyBlock(ctx, userId); err != nil {
		s.events.BlockChanged(accountId, userId, false)
		return err
	}
	s.events.BlockChanged(accountId, userId, true)
	return nil
}

func (s *syncer) ReportSpam(ctx context.Context, accountId, userId int64) error {

	cl, err := s.clientFor(accountId)
	if err != nil {
		return err
	}
	if _, err = cl.ReportSpam(ctx, userId); err != nil {
		s.events.BlockChanged(accountId, userId, false)
		return err
	}
	if err = s.repo.DeleteStatusesByUser(userId); err != nil {
		return err
	}
	s.events.BlockChanged(accountId, userId, true)
	return nil
}

func (s *syncer) CreateFriendship(ctx context.Context, accountId, userId int64) error {

	cl, err := s.clientFor(accountId)
	if err != nil {
		return err
	}
	if _, err = cl.CreateFriendship(ctx, userId); err != nil {
		s.events.FriendshipChanged(accountId, userId, false)
		return err
	}
	s.events.FriendshipChanged(accountId, userId, true)
	return nil
}

func (s *syncer) DestroyFriendship(ctx context.Context, accountId, userId int64) error {

	cl, err := s.clientFor(accountId)
	if err != nil {
		return err
	}
	if _, err = cl.DestroyFriendship(ctx, userId); err != nil {
		s.events.FriendshipChanged(accountId, userId, false)
		return err
	}
	s.events.FriendshipChanged(accountId, userId, true)
	return nil
}

func (s *syncer) SendMessage(ctx context.Context, accountId, recipientId int64, text string) error {

	cl, err := s.clientFor(accountId)
	if err != nil {
		return err
	}
	msg, err := cl.SendDirectMessage(ctx, recipientId, text)
	if err != nil {
		s.events.MessageSent(accountId, recipientId, false)
		return err
	}
	row := &dal.MessageRow{
		AccountId:           accountId,
		MessageId:           msg.Id,
		SenderId:            msg.SenderId,
		SenderScreenName:    msg.SenderScreenName,
		RecipientId:         msg.RecipientId,
		RecipientScreenName: msg.RecipientScreenName,
		Text:                msg.Text,
		CreatedAt:           msg.CreatedAt,
	}
	if err = s.repo.InsertMessages(dal.TableMessagesOut, []*dal.MessageRow{row}); err != nil {
		return err
	}
	s.events.MessageSent(accountId, recipientId, true)
	return nil
}

func (s *syncer) DestroyMessage(ctx context.Context, accountId, messageId int64) error {

	cl, err := s.clientFor(accountId)
	if err != nil {
		return err
	}
	if _, err = cl.DestroyDirectMessage(ctx, messageId); err != nil && !client.IsAlreadyGone(err) {
		s.events.MessageDeleted(accountId, messageId, false)
		return err
	}
	if err = s.repo.DeleteMessageEverywhere(accountId, messageId); err != nil {
		return err
	}
	s.events.MessageDeleted(accountId, messageId, true)
	return nil
}

func (s *syncer) UpdateProfile(ctx context.Context, accountId int64, name, url, location, description string) error {

	cl, err := s.clientFor(accountId)
	if err != nil {
		return err
	}
	if _, err = cl.UpdateProfile(ctx, name, url, location, description); err != nil {
		s.events.ProfileUpdated(accountId, false)
		return err
	}
	s.events.ProfileUpdated(accountId, true)
	return nil
}

func (s *syncer) CreateList(ctx context.Context, accountId int64, name string, isPublic bool, description string) error {

	cl, err := s.clientFor(accountId)
	if err != nil {
		return err
	}
	list, err := cl.CreateList(ctx, name, isPublic, description)
	if err != nil {
		s.events.ListChanged(accountId, 0, false)
		return err
	}
	s.events.ListChanged(accountId, list.Id, true)
	return nil
}

func (s *syncer) DestroyList(ctx context.Context, accountId, listId int64) error {
	return s.listCall(accountId, listId, func(cl client.IClient) error {
		_, err := cl.DestroyList(ctx, listId)
		return err
	})
}

func (s *syncer) AddListMember(ctx context.Context, accountId, listId, userId int64) error {
	return s.listCall(accountId, listId, func(cl client.IClient) error {
		_, err := cl.AddListMember(ctx, listId, userId)
		return err
	})
}

func (s *syncer) DeleteListMember(ctx context.Context, accountId, listId, userId int64) error {
	return s.listCall(accountId, listId, func(cl client.IClient) error {
		_, err := cl.DeleteListMember(ctx, listId, userId)
		return err
	})
}

func (s *syncer) CreateListSubscription(ctx context.Context, accountId, listId int64) error {
	return s.listCall(accountId, listId, func(cl client.IClient) error {
		_, err := cl.CreateListSubscription(ctx, listId)
		return err
	})
}

func (s *syncer) DestroyListSubscription(ctx context.Context, accountId, listId int64) error {
	return s.listCall(accountId, listId, func(cl client.IClient) error {
		_, err := cl.DestroyListSubscription(ctx, listId)
		return err
	})
}

func (s *syncer) listCall(accountId, listId int64, call func(cl client.IClient) error) error {

	cl, err := s.clientFor(accountId)
	if err != nil {
		return err
	}
	if err = call(cl); err != nil {
		s.events.ListChanged(accountId, listId, false)
		return err
	}
	s.events.ListChanged(accountId, listId, true)
	return nil
}

// Start spins up the periodic full refresh if one is configured.
func (s *syncer) Start() {

	if s.cfg.AutoRefreshMinutes <= 0 {
		return
	}
	interval := time.Duration(s.cfg.AutoRefreshMinutes) * time.Minute
	s.logger.Infof("Auto-refreshing every %v", interval)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.RefreshAll()
			}
		}
	}()
}

func (s *syncer) Stop() {
	close(s.stop)
	s.registry.Shutdown()
}
