package logic

import (
	"magpie/dal"
	"magpie/shared"
	"sync"
)

type EventName string

const (
	EvRefreshStarted    EventName = "refresh_started"
	EvTimelineStored    EventName = "timeline_stored"
	EvMessagesStored    EventName = "messages_stored"
	EvTrendsStored      EventName = "trends_stored"
	EvStatusPosted      EventName = "status_posted"
	EvStatusDestroyed   EventName = "status_destroyed"
	EvRetweetChanged    EventName = "retweet_changed"
	EvFavoriteChanged   EventName = "favorite_changed"
	EvFriendshipChanged EventName = "friendship_changed"
	EvBlockChanged      EventName = "block_changed"
	EvMessageSent       EventName = "message_sent"
	EvMessageDeleted    EventName = "message_deleted"
	EvProfileUpdated    EventName = "profile_updated"
	EvListChanged       EventName = "list_changed"
	EvDraftSaved        EventName = "draft_saved"
	EvCacheChanged      EventName = "cache_changed"
)

// Event is one fan-out notification. Fields beyond Name are filled as they
// apply; Watermark is -1 when the event carries none.
type Event struct {
	Name      EventName
	Table     dal.Table
	AccountId int64
	ItemId    int64
	Succeeded bool
	Watermark int64
}

// IEvents fans sync outcomes out to in-process subscribers. Publishing never
// blocks; a subscriber that falls behind loses events.
type IEvents interface {
	Subscribe() <-chan Event
	Publish(evt Event)
	RefreshStarted(class string)
	TimelineStored(table dal.Table, succeeded bool, watermark int64)
	MessagesStored(table dal.Table, succeeded bool)
	TrendsStored(woeid int64, succeeded bool)
	StatusPosted(accountId, statusId int64, succeeded bool)
	StatusDestroyed(accountId, statusId int64, succeeded bool)
	RetweetChanged(accountId, statusId int64, succeeded bool)
	FavoriteChanged(accountId, statusId int64, succeeded bool)
	FriendshipChanged(accountId, userId int64, succeeded bool)
	BlockChanged(accountId, userId int64, succeeded bool)
	MessageSent(accountId, recipientId int64, succeeded bool)
	MessageDeleted(accountId, messageId int64, succeeded bool)
	ProfileUpdated(accountId int64, succeeded bool)
	ListChanged(accountId, listId int64, succeeded bool)
	DraftSaved()
	CacheChanged(table dal.Table)
}

const subscriberBuffer = 64

type events struct {
	logger shared.ILogger
	mu     sync.RWMutex
	subs   []chan Event
}

func NewEvents(logger shared.ILogger) IEvents {
	return &events{logger: logger}
}

func (e *events) Subscribe() <-chan Event {
	ch := make(chan Event, subscriberBuffer)
	e.mu.Lock()
	e.subs = append(e.subs, ch)
	e.mu.Unlock()
	return ch
}

func (e *events) Publish(evt Event) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, ch := range e.subs {
		select {
		case ch <- evt:
		default:
			e.logger.Debugf("Dropping %s event for slow subscriber", evt.Name)
		}
	}
}

func (e *events) RefreshStarted(class string) {
	e.Publish(Event{Name: EvRefreshStarted, Table: dal.Table(class), Watermark: -1})
}

func (e *events) TimelineStored(table dal.Table, succeeded bool, watermark int64) {
	e.Publish(Event{Name: EvTimelineStored, Table: table, Succeeded: succeeded, Watermark: watermark})
}

func (e *events) MessagesStored(table dal.Table, succeeded bool) {
	e.Publish(Event{Name: EvMessagesStored, Table: table, Succeeded: succeeded, Watermark: -1})
}

func (e *events) TrendsStored(woeid int64, succeeded bool) {
	e.Publish(Event{Name: EvTrendsStored, ItemId: woeid, Succeeded: succeeded, Watermark: -1})
}

func (e *events) StatusPosted(accountId, statusId int64, succeeded bool) {
	e.Publish(Event{Name: EvStatusPosted, AccountId: accountId, ItemId: statusId, Succeeded: succeeded, Watermark: -1})
}

func (e *events) StatusDestroyed(accountId, statusId int64, succeeded bool) {
	e.Publish(Event{Name: EvStatusDestroyed, AccountId: accountId, ItemId: statusId, Succeeded: succeeded, Watermark: -1})
}

func (e *events) RetweetChanged(accountId, statusId int64, succeeded bool) {
	e.Publish(Event{Name: EvRetweetChanged, AccountId: accountId, ItemId: statusId, Succeeded: succeeded, Watermark: -1})
}

func (e *events) FavoriteChanged(accountId, statusId int64, succeeded bool) {
	e.Publish(Event{Name: EvFavoriteChanged, AccountId: accountId, ItemId: statusId, Succeeded: succeeded, Watermark: -1})
}

func (e *events) FriendshipChanged(accountId, userId int64, succeeded bool) {
	e.Publish(Event{Name: EvFriendshipChanged, AccountId: accountId, ItemId: userId, Succeeded: succeeded, Watermark: -1})
}

func (e *events) BlockChanged(accountId, userId int64, succeeded bool) {
	e.Publish(Event{Name: EvBlockChanged, AccountId: accountId, ItemId: userId, Succeeded: succeeded, Watermark: -1})
}

func (e *events) MessageSent(accountId, recipientId int64, succeeded bool) {
	e.Publish(Event{Name: EvMessageSent, AccountId: accountId, ItemId: recipientId, Succeeded: succeeded, Watermark: -1})
}

func (e *events) MessageDeleted(accountId, messageId int64, succeeded bool) {
	e.Publish(Event{Name: EvMessageDeleted, AccountId: accountId, ItemId: messageId, Succeeded: succeeded, Watermark: -1})
}

func (e *events) ProfileUpdated(accountId int64, succeeded bool) {
	e.Publish(Event{Name: EvProfileUpdated, AccountId: accountId, Succeeded: succeeded, Watermark: -1})
}

func (e *events) ListChanged(accountId, listId int64, succeeded bool) {
	e.Publish(Event{Name: EvListChanged, AccountId: accountId, ItemId: listId, Succeeded: succeeded, Watermark: -1})
}

func (e *events) DraftSaved() {
	e.Publish(Event{Name: EvDraftSaved, Watermark: -1})
}

// CacheChanged satisfies dal.IChangeListener so table mutations surface as
// events without dal importing this package.
func (e *events) CacheChanged(table dal.Table) {
	e.Publish(Event{Name: EvCacheChanged, Table: table, Watermark: -1})
}
