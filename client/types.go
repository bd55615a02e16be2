package client

import "time"

// Paging bounds one timeline/message page request. Zero or negative ids mean
// "no bound"; MaxId is an exclusive-style upper cursor, SinceId a lower bound.
type Paging struct {
	MaxId   int64
	SinceId int64
	Count   int
}

type Status struct {
	Id            int64     `json:"id"`
	UserId        int64     `json:"user_id"`
	ScreenName    string    `json:"screen_name"`
	UserName      string    `json:"user_name"`
	Text          string    `json:"text"`
	Source        string    `json:"source"`
	InReplyToId   int64     `json:"in_reply_to_id"`
	RetweetId     int64     `json:"retweet_id"`
	RetweetedById int64     `json:"retweeted_by_id"`
	MyRetweetId   int64     `json:"my_retweet_id"`
	IsFavorite    bool      `json:"is_favorite"`
	CreatedAt     time.Time `json:"created_at"`
}

type DirectMessage struct {
	Id                  int64     `json:"id"`
	SenderId            int64     `json:"sender_id"`
	SenderScreenName    string    `json:"sender_screen_name"`
	RecipientId         int64     `json:"recipient_id"`
	RecipientScreenName string    `json:"recipient_screen_name"`
	Text                string    `json:"text"`
	CreatedAt           time.Time `json:"created_at"`
}

type TrendSet struct {
	WoeId  int64     `json:"woeid"`
	AsOf   time.Time `json:"as_of"`
	Trends []Trend   `json:"trends"`
}

type Trend struct {
	Name string `json:"name"`
}

type User struct {
	Id         int64  `json:"id"`
	ScreenName string `json:"screen_name"`
	Name       string `json:"name"`
}

type UserList struct {
	Id          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

type GeoLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// StatusUpdate is the final post payload assembled by the composition
// pipeline. MediaPath is only set when no uploader service is configured.
type StatusUpdate struct {
	Text      string
	InReplyTo int64
	Location  *GeoLocation
	MediaPath string
	Sensitive bool
}
