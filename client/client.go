package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"magpie/shared"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"
)

//go:generate mockgen --build_flags=--mod=mod -destination ../test/mocks/mock_client.go -package mocks magpie/client IClient

const (
	callTimeoutSec    = 30
	fetchRetryBaseMs  = 250
	fetchMaxRetries   = 2
	callsPerSec       = 2
	callBurst         = 4
	defaultErrMessage = "request failed"
)

// IClient is one account's view of the remote API. Fetches take Paging
// bounds; mutations return the remote's echo of the affected entity. Every
// call may fail with an *APIError carrying the remote's error code.
type IClient interface {
	HomeTimeline(ctx context.Context, p Paging) ([]*Status, error)
	Mentions(ctx context.Context, p Paging) ([]*Status, error)
	ReceivedMessages(ctx context.Context, p Paging) ([]*DirectMessage, error)
	SentMessages(ctx context.Context, p Paging) ([]*DirectMessage, error)
	LocalTrends(ctx context.Context, woeid int64) (*TrendSet, error)
	PostStatus(ctx context.Context, upd *StatusUpdate) (*Status, error)
	DestroyStatus(ctx context.Context, statusId int64) (*Status, error)
	RetweetStatus(ctx context.Context, statusId int64) (*Status, error)
	CreateFavorite(ctx context.Context, statusId int64) (*Status, error)
	DestroyFavorite(ctx context.Context, statusId int64) (*Status, error)
	CreateBlock(ctx context.Context, userId int64) (*User, error)
	DestroyBlock(ctx context.Context, userId int64) (*User, error)
	CreateFriendship(ctx context.Context, userId int64) (*User, error)
	DestroyFriendship(ctx context.Context, userId int64) (*User, error)
	ReportSpam(ctx context.Context, userId int64) (*User, error)
	SendDirectMessage(ctx context.Context, userId int64, text string) (*DirectMessage, error)
	DestroyDirectMessage(ctx context.Context, messageId int64) (*DirectMessage, error)
	CreateList(ctx context.Context, name string, isPublic bool, description string) (*UserList, error)
	DestroyList(ctx context.Context, listId int64) (*UserList, error)
	AddListMember(ctx context.Context, listId, userId int64) (*UserList, error)
	DeleteListMember(ctx context.Context, listId, userId int64) (*UserList, error)
	CreateListSubscription(ctx context.Context, listId int64) (*UserList, error)
	DestroyListSubscription(ctx context.Context, listId int64) (*UserList, error)
	UpdateProfile(ctx context.Context, name, url, location, description string) (*User, error)
}

type httpClient struct {
	logger    shared.ILogger
	userAgent shared.IUserAgent
	apiRoot   string
	token     string
	limiter   *rate.Limiter
	hc        *http.Client
}

func newHttpClient(logger shared.ILogger, userAgent shared.IUserAgent, apiRoot, token string) *httpClient {
	return &httpClient{
		logger:    logger,
		userAgent: userAgent,
		apiRoot:   apiRoot,
		token:     token,
		limiter:   rate.NewLimiter(rate.Limit(callsPerSec), callBurst),
		hc:        &http.Client{Timeout: callTimeoutSec * time.Second},
	}
}

func pagingQuery(p Paging) url.Values {
	q := url.Values{}
	if p.Count > 0 {
		q.Set("count", strconv.Itoa(p.Count))
	}
	if p.MaxId > 0 {
		q.Set("max_id", strconv.FormatInt(p.MaxId, 10))
	}
	if p.SinceId > 0 {
		q.Set("since_id", strconv.FormatInt(p.SinceId, 10))
	}
	return q
}

// get fetches and decodes a JSON resource; transient transport and 5xx
// failures are retried with a short fibonacci backoff since fetches are
// idempotent.
func get[T any](c *httpClient, ctx context.Context, path string, query url.Values, res T) error {
	backoff := retry.WithMaxRetries(fetchMaxRetries, retry.NewFibonacci(fetchRetryBaseMs*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		body, err := c.roundTrip(ctx, "GET", path, query, nil)
		if err != nil {
			if _, isCoded := err.(*APIError); !isCoded {
				return retry.RetryableError(err)
			}
			return err
		}
		return json.Unmarshal(body, res)
	})
}

func post[T any](c *httpClient, ctx context.Context, path string, payload any, res T) error {
	var reqBody io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(buf)
	}
	body, err := c.roundTrip(ctx, "POST", path, nil, reqBody)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, res)
}

func (c *httpClient) roundTrip(ctx context.Context, method, path string, query url.Values, reqBody io.Reader) ([]byte, error) {

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	urlStr := c.apiRoot + path
	if len(query) != 0 {
		urlStr += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, urlStr, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.userAgent.AddUserAgent(req)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%s %s failed with status %d", method, path, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		apiErr := &APIError{Message: defaultErrMessage}
		_ = json.Unmarshal(body, apiErr)
		c.logger.Debugf("%s %s: remote error code %d", method, path, apiErr.Code)
		return nil, apiErr
	}
	return body, nil
}

func (c *httpClient) HomeTimeline(ctx context.Context, p Paging) ([]*Status, error) {
	var res []*Status
	err := get(c, ctx, "/statuses/home_timeline", pagingQuery(p), &res)
	return res, err
}

func (c *httpClient) Mentions(ctx context.Context, p Paging) ([]*Status, error) {
	var res []*Status
	err := get(c, ctx, "/statuses/mentions_timeline", pagingQuery(p), &res)
	return res, err
}

func (c *httpClient) ReceivedMessages(ctx context.Context, p Paging) ([]*DirectMessage, error) {
	var res []*DirectMessage
	err := get(c, ctx, "/direct_messages", pagingQuery(p), &res)
	return res, err
}

func (c *httpClient) SentMessages(ctx context.Context, p Paging) ([]*DirectMessage, error) {
	var res []*DirectMessage
	err := get(c, ctx, "/direct_messages/sent", pagingQuery(p), &res)
	return res, err
}

func (c *httpClient) LocalTrends(ctx context.Context, woeid int64) (*TrendSet, error) {
	q := url.Values{}
	q.Set("id", strconv.FormatInt(woeid, 10))
	var res TrendSet
	if err := get(c, ctx, "/trends/place", q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *httpClient) PostStatus(ctx context.Context, upd *StatusUpdate) (*Status, error) {
	payload := map[string]any{
		"status":             upd.Text,
		"possibly_sensitive": upd.Sensitive,
	}
	if upd.InReplyTo > 0 {
		payload["in_reply_to_status_id"] = upd.InReplyTo
	}
	if upd.Location != nil {
		payload["lat"] = upd.Location.Latitude
		payload["long"] = upd.Location.Longitude
	}
	if upd.MediaPath != "" {
		payload["media_path"] = upd.MediaPath
	}
	var res Status
	if err := post(c, ctx, "/statuses/update", payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *httpClient) DestroyStatus(ctx context.Context, statusId int64) (*Status, error) {
	var res Status
	err := post(c, ctx, fmt.Sprintf("/statuses/destroy/%d", statusId), nil, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *httpClient) RetweetStatus(ctx context.Context, statusId int64) (*Status, error) {
	var res Status
	err := post(c, ctx, fmt.Sprintf("/statuses/retweet/%d", statusId), nil, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *httpClient) CreateFavorite(ctx context.Context, statusId int64) (*Status, error) {
	var res Status
	err := post(c, ctx, "/favorites/create", map[string]any{"id": statusId}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *httpClient) DestroyFavorite(ctx context.Context, statusId int64) (*Status, error) {
	var res Status
	err := post(c, ctx, "/favorites/destroy", map[string]any{"id": statusId}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *httpClient) userAction(ctx context.Context, path string, userId int64) (*User, error) {
	var res User
	err := post(c, ctx, path, map[string]any{"user_id": userId}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *httpClient) CreateBlock(ctx context.Context, userId int64) (*User, error) {
	return c.userAction(ctx, "/blocks/create", userId)
}

func (c *httpClient) DestroyBlock(ctx context.Context, userId int64) (*User, error) {
	return c.userAction(ctx, "/blocks/destroy", userId)
}

func (c *httpClient) CreateFriendship(ctx context.Context, userId int64) (*User, error) {
	return c.userAction(ctx, "/friendships/create", userId)
}

func (c *httpClient) DestroyFriendship(ctx context.Context, userId int64) (*User, error) {
	return c.userAction(ctx, "/friendships/destroy", userId)
}

func (c *httpClient) ReportSpam(ctx context.Context, userId int64) (*User, error) {
	return c.userAction(ctx, "/users/report_spam", userId)
}

func (c *httpClient) SendDirectMessage(ctx context.Context, userId int64, text string) (*DirectMessage, error) {
	var res DirectMessage
	err := post(c, ctx, "/direct_messages/new", map[string]any{"user_id": userId, "text": text}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *httpClient) DestroyDirectMessage(ctx context.Context, messageId int64) (*DirectMessage, error) {
	var res DirectMessage
	err := post(c, ctx, "/direct_messages/destroy", map[string]any{"id": messageId}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *httpClient) listAction(ctx context.Context, path string, payload map[string]any) (*UserList, error) {
	var res UserList
	err := post(c, ctx, path, payload, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *httpClient) CreateList(ctx context.Context, name string, isPublic bool, description string) (*UserList, error) {
	return c.listAction(ctx, "/lists/create",
		map[string]any{"name": name, "is_public": isPublic, "description": description})
}

func (c *httpClient) DestroyList(ctx context.Context, listId int64) (*UserList, error) {
	return c.listAction(ctx, "/lists/destroy", map[string]any{"list_id": listId})
}

func (c *httpClient) AddListMember(ctx context.Context, listId, userId int64) (*UserList, error) {
	return c.listAction(ctx, "/lists/members/create", map[string]any{"list_id": listId, "user_id": userId})
}

func (c *httpClient) DeleteListMember(ctx context.Context, listId, userId int64) (*UserList, error) {
	return c.listAction(ctx, "/lists/members/destroy", map[string]any{"list_id": listId, "user_id": userId})
}

func (c *httpClient) CreateListSubscription(ctx context.Context, listId int64) (*UserList, error) {
	return c.listAction(ctx, "/lists/subscribers/create", map[string]any{"list_id": listId})
}

func (c *httpClient) DestroyListSubscription(ctx context.Context, listId int64) (*UserList, error) {
	return c.listAction(ctx, "/lists/subscribers/destroy", map[string]any{"list_id": listId})
}

func (c *httpClient) UpdateProfile(ctx context.Context, name, url, location, description string) (*User, error) {
	var res User
	err := post(c, ctx, "/account/update_profile",
		map[string]any{"name": name, "url": url, "location": location, "description": description}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
