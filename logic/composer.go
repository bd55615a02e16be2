package logic

import (
	"context"
	"errors"
	"fmt"
	"magpie/client"
	"magpie/dal"
	"magpie/shared"
	"os"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Pipeline-stage failures. These abort the whole fan-out; all target accounts
// end up in a draft.
var (
	ErrUploadFailed  = errors.New("media upload failed")
	ErrTextTooLong   = errors.New("status text is over the length limit")
	ErrShortenFailed = errors.New("shortening status text failed")
)

var hashtagRe = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)

// ExtractHashtags returns the distinct hashtag names in text, without the
// leading '#', in order of first appearance.
func ExtractHashtags(text string) []string {
	var res []string
	seen := make(map[string]bool)
	for _, m := range hashtagRe.FindAllStringSubmatch(text, -1) {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		res = append(res, m[1])
	}
	return res
}

// PostRequest is one composed status headed for one or more accounts.
// DeleteMediaAfter removes the local media file once every account posted.
type PostRequest struct {
	AccountIds       []int64
	Text             string
	InReplyTo        int64
	Location         *client.GeoLocation
	MediaPath        string
	Sensitive        bool
	DeleteMediaAfter bool
}

// PostResult is the per-account outcome of a fan-out. Duplicate means the
// remote rejected the post as already-sent content, which counts as success.
type PostResult struct {
	AccountId int64
	StatusId  int64
	Duplicate bool
	Err       error
}

// IComposer runs the composition pipeline: hashtag harvesting, media upload,
// length handling, then per-account posting. Accounts that fail get their
// share of the post saved as a draft.
type IComposer interface {
	Post(ctx context.Context, req *PostRequest) []PostResult
}

type composer struct {
	cfg       *shared.Config
	logger    shared.ILogger
	repo      dal.IRepo
	resolver  client.IResolver
	uploader  IUploader
	shortener IShortener
	events    IEvents
	metrics   IMetrics
}

func NewComposer(
	cfg *shared.Config,
	logger shared.ILogger,
	repo dal.IRepo,
	resolver client.IResolver,
	uploader IUploader,
	shortener IShortener,
	events IEvents,
	metrics IMetrics,
) IComposer {
	return &composer{cfg, logger, repo, resolver, uploader, shortener, events, metrics}
}

func (c *composer) Post(ctx context.Context, req *PostRequest) []PostResult {

	// Hashtags go in the cache even if the post later fails
	if tags := ExtractHashtags(req.Text); len(tags) != 0 {
		if err := c.repo.UpsertHashtags(tags); err != nil {
			c.logger.Warnf("Failed to cache hashtags: %v", err)
		}
	}

	text := req.Text
	mediaPath := req.MediaPath

	if mediaPath != "" {
		if _, err := os.Stat(mediaPath); err != nil {
			// A vanished file is not worth failing the whole post over
			c.logger.Warnf("Media file %s not found; posting without it", mediaPath)
			mediaPath = ""
		}
	}
	if mediaPath != "" && c.uploader != nil {
		mediaUrl, err := c.uploader.Upload(ctx, mediaPath, text)
		if err != nil {
			c.logger.Errorf("Media upload failed: %v", err)
			return c.failAll(req, ErrUploadFailed)
		}
		text = c.uploader.FormatStatusText(text, mediaUrl)
	}

	if !shared.WithinTextLimit(text, c.cfg.TextLimit) {
		if c.shortener == nil {
			return c.failAll(req, ErrTextTooLong)
		}
		screenName := ""
		if len(req.AccountIds) != 0 {
			screenName = c.resolver.ScreenName(req.AccountIds[0])
		}
		shortened, err := c.shortener.Shorten(ctx, text, screenName, req.InReplyTo)
		if err != nil {
			c.logger.Errorf("Shortening failed: %v", err)
			return c.failAll(req, ErrShortenFailed)
		}
		text = shortened
	}

	upd := &client.StatusUpdate{
		Text:      text,
		InReplyTo: req.InReplyTo,
		Location:  req.Location,
		Sensitive: req.Sensitive,
	}
	// Raw media attachment is only for the no-uploader setup
	if mediaPath != "" && c.uploader == nil {
		upd.MediaPath = mediaPath
	}

	results := make([]PostResult, 0, len(req.AccountIds))
	for _, accountId := range req.AccountIds {
		res := PostResult{AccountId: accountId}
		if err := ctx.Err(); err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}
		cl := c.resolver.Client(accountId)
		if cl == nil {
			res.Err = fmt.Errorf("no client for account %d", accountId)
			results = append(results, res)
			continue
		}
		status, err := cl.PostStatus(ctx, upd)
		if err != nil {
			if client.IsDuplicate(err) {
				c.logger.Infof("Account %d already has this status; treating as posted", accountId)
				res.Duplicate = true
			} else {
				c.logger.Warnf("Posting for account %d failed: %v", accountId, err)
				res.Err = err
			}
		} else {
			res.StatusId = status.Id
		}
		results = append(results, res)
	}

	var failedIds []int64
	for _, res := range results {
		c.events.StatusPosted(res.AccountId, res.StatusId, res.Err == nil)
		if res.Err != nil {
			failedIds = append(failedIds, res.AccountId)
		}
	}
	if len(failedIds) != 0 {
		c.saveDraft(req, failedIds)
	}
	allOk := len(failedIds) == 0
	c.metrics.StatusPosted(allOk)
	if allOk && req.DeleteMediaAfter && mediaPath != "" {
		if err := os.Remove(mediaPath); err != nil {
			c.logger.Warnf("Failed to delete posted media file %s: %v", mediaPath, err)
		}
	}
	return results
}

// failAll is for pipeline stages whose failure sinks the post for every
// target account before any remote call was made.
func (c *composer) failAll(req *PostRequest, stageErr error) []PostResult {
	results := make([]PostResult, 0, len(req.AccountIds))
	for _, accountId := range req.AccountIds {
		results = append(results, PostResult{AccountId: accountId, Err: stageErr})
		c.events.StatusPosted(accountId, 0, false)
	}
	c.saveDraft(req, req.AccountIds)
	c.metrics.StatusPosted(false)
	return results
}

// saveDraft keeps the original, untransformed text so a retry reruns the full
// pipeline.
func (c *composer) saveDraft(req *PostRequest, accountIds []int64) {
	draft := &dal.Draft{
		Id:         uuid.NewString(),
		AccountIds: accountIds,
		InReplyTo:  req.InReplyTo,
		Text:       req.Text,
		MediaPath:  req.MediaPath,
		CreatedAt:  time.Now(),
	}
	if err := c.repo.AddDraft(draft); err != nil {
		c.logger.Errorf("Failed to save draft: %v", err)
		return
	}
	c.logger.Infof("Saved draft %s for accounts %v: %s",
		draft.Id, accountIds, shared.TruncateWithEllipsis(req.Text, 60))
	c.events.DraftSaved()
	c.metrics.DraftSaved()
}
