package logic

// Task tags group background work into classes. Each refresh class has a
// fetch tag and a store tag; busy queries OR the two together.
const (
	TagGetHomeTimeline   = "get_home_timeline"
	TagStoreHomeTimeline = "store_home_timeline"

	TagGetMentions   = "get_mentions"
	TagStoreMentions = "store_mentions"

	TagGetReceivedMessages   = "get_received_messages"
	TagStoreReceivedMessages = "store_received_messages"

	TagGetSentMessages   = "get_sent_messages"
	TagStoreSentMessages = "store_sent_messages"

	TagGetTrends   = "get_trends"
	TagStoreTrends = "store_trends"

	TagPostStatus = "post_status"
)

// classTags maps a status/message cache table to its refresh class tags.
var classTags = map[string][2]string{
	"statuses":     {TagGetHomeTimeline, TagStoreHomeTimeline},
	"mentions":     {TagGetMentions, TagStoreMentions},
	"messages_in":  {TagGetReceivedMessages, TagStoreReceivedMessages},
	"messages_out": {TagGetSentMessages, TagStoreSentMessages},
}
