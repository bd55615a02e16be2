package dal

import "time"

// Table names the cache tables that hold synced remote items. Status tables
// and message tables share a schema within their kind.
type Table string

const (
	TableStatuses    Table = "statuses"
	TableMentions    Table = "mentions"
	TableMessagesIn  Table = "messages_in"
	TableMessagesOut Table = "messages_out"
)

// StatusTables lists the tables with status schema, in sync order.
func StatusTables() []Table {
	return []Table{TableStatuses, TableMentions}
}

// MessageTables lists the tables with direct message schema.
func MessageTables() []Table {
	return []Table{TableMessagesIn, TableMessagesOut}
}

type StatusRow struct {
	AccountId     int64
	StatusId      int64
	UserId        int64
	ScreenName    string
	UserName      string
	Text          string
	Source        string
	InReplyToId   int64
	RetweetId     int64
	RetweetedById int64
	MyRetweetId   int64
	IsFavorite    bool
	IsGap         bool
	CreatedAt     time.Time
}

type MessageRow struct {
	AccountId           int64
	MessageId           int64
	SenderId            int64
	SenderScreenName    string
	RecipientId         int64
	RecipientScreenName string
	Text                string
	CreatedAt           time.Time
}

type TrendRow struct {
	WoeId int64
	Name  string
	AsOf  time.Time
}

// Draft is a failed or canceled post kept for later retry. AccountIds holds
// the accounts the post still needs to go out to.
type Draft struct {
	Id         string
	AccountIds []int64
	InReplyTo  int64
	Text       string
	MediaPath  string
	CreatedAt  time.Time
}
