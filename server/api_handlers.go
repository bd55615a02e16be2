package server

import (
	"encoding/json"
	"magpie/client"
	"magpie/dal"
	"magpie/logic"
	"magpie/shared"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type apiHandlerGroup struct {
	cfg      *shared.Config
	logger   shared.ILogger
	repo     dal.IRepo
	registry logic.ITaskRegistry
	syncer   logic.ISyncer
	metrics  logic.IMetrics
}

func NewApiHandlerGroup(
	cfg *shared.Config,
	logger shared.ILogger,
	repo dal.IRepo,
	registry logic.ITaskRegistry,
	syncer logic.ISyncer,
	metrics logic.IMetrics,
) IHandlerGroup {
	res := apiHandlerGroup{
		cfg:      cfg,
		logger:   logger,
		repo:     repo,
		registry: registry,
		syncer:   syncer,
		metrics:  metrics,
	}
	return &res
}

func (hg *apiHandlerGroup) Prefix() string {
	return "/api"
}

func (hg *apiHandlerGroup) GroupDefs() []handlerDef {
	return []handlerDef{
		{"POST", "/refresh", func(w http.ResponseWriter, r *http.Request) { hg.postRefresh(w, r) }},
		{"POST", "/refresh/cancel", func(w http.ResponseWriter, r *http.Request) { hg.postRefreshCancel(w, r) }},
		{"POST", "/statuses", func(w http.ResponseWriter, r *http.Request) { hg.postStatuses(w, r) }},
		{"POST", "/statuses/{id}/destroy", func(w http.ResponseWriter, r *http.Request) { hg.postStatusDestroy(w, r) }},
		{"POST", "/statuses/{id}/retweet", func(w http.ResponseWriter, r *http.Request) { hg.postStatusRetweet(w, r) }},
		{"POST", "/statuses/{id}/favorite", func(w http.ResponseWriter, r *http.Request) { hg.postStatusFavorite(w, r) }},
		{"POST", "/messages", func(w http.ResponseWriter, r *http.Request) { hg.postMessages(w, r) }},
		{"POST", "/messages/{id}/destroy", func(w http.ResponseWriter, r *http.Request) { hg.postMessageDestroy(w, r) }},
		{"POST", "/tasks/{id}/cancel", func(w http.ResponseWriter, r *http.Request) { hg.postTaskCancel(w, r) }},
		{"GET", "/busy", func(w http.ResponseWriter, r *http.Request) { hg.getBusy(w, r) }},
		{"GET", "/drafts", func(w http.ResponseWriter, r *http.Request) { hg.getDrafts(w, r) }},
		{"GET", "/hashtags", func(w http.ResponseWriter, r *http.Request) { hg.getHashtags(w, r) }},
		{"GET", "/trends", func(w http.ResponseWriter, r *http.Request) { hg.getTrends(w, r) }},
		{"GET", "/timeline/{accountId}", func(w http.ResponseWriter, r *http.Request) { hg.getTimeline(w, r) }},
	}
}

func (hg *apiHandlerGroup) AuthMW() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return hg.authMW(next)
	}
}

func (hg *apiHandlerGroup) authMW(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var apiKey = r.Header.Get(apiKeyHeader)
		found := false
		for _, key := range hg.cfg.Secrets.ApiKeys {
			if apiKey == key {
				found = true
			}
		}
		if !found {
			keyPart := apiKey
			if len(apiKey) > 4 {
				keyPart = apiKey[:4] + "..."
			}
			hg.logger.Warnf("API request with missing or invalid key '%s': %s", keyPart, r.URL.Path)
			writeErrorResponse(w, badApiKeyStr, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (hg *apiHandlerGroup) pathId(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		writeErrorResponse(w, badRequestStr, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (hg *apiHandlerGroup) queryAccountId(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.URL.Query().Get("account_id"), 10, 64)
	if err != nil || id <= 0 {
		writeErrorResponse(w, badRequestStr, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

type refreshReq struct {
	Class      string  `json:"class"`
	AccountIds []int64 `json:"account_ids"`
	MaxIds     []int64 `json:"max_ids"`
	SinceIds   []int64 `json:"since_ids"`
}

func (hg *apiHandlerGroup) postRefresh(w http.ResponseWriter, r *http.Request) {

	obs := hg.metrics.StartWebRequestIn("post_refresh")
	defer obs.Finish()

	body := readBody(hg.logger, w, r)
	if body == nil {
		return
	}
	var req refreshReq
	if err := json.Unmarshal(body, &req); err != nil {
		hg.logger.Warnf("Invalid refresh request: %v", err)
		writeErrorResponse(w, badRequestStr, http.StatusBadRequest)
		return
	}

	taskId := 0
	switch req.Class {
	case "home":
		taskId = hg.syncer.RefreshHomeTimeline(req.AccountIds, req.MaxIds, req.SinceIds)
	case "mentions":
		taskId = hg.syncer.RefreshMentions(req.AccountIds, req.MaxIds, req.SinceIds)
	case "messages_in":
		taskId = hg.syncer.RefreshReceivedMessages(req.AccountIds, req.MaxIds, req.SinceIds)
	case "messages_out":
		taskId = hg.syncer.RefreshSentMessages(req.AccountIds, req.MaxIds, req.SinceIds)
	case "trends":
		taskId = hg.syncer.RefreshTrends()
	case "all", "":
		hg.syncer.RefreshAll()
	default:
		writeErrorResponse(w, badRequestStr, http.StatusBadRequest)
		return
	}
	writeJsonResponse(hg.logger, w, map[string]int{"task_id": taskId})
}

type refreshCancelReq struct {
	Class string `json:"class"`
}

// postRefreshCancel cancels the running fetch and store tasks of one refresh
// class. The cancel is advisory; tasks wind down at their next context check.
func (hg *apiHandlerGroup) postRefreshCancel(w http.ResponseWriter, r *http.Request) {

	body := readBody(hg.logger, w, r)
	if body == nil {
		return
	}
	var req refreshCancelReq
	if err := json.Unmarshal(body, &req); err != nil {
		writeErrorResponse(w, badRequestStr, http.StatusBadRequest)
		return
	}
	var tags []string
	switch req.Class {
	case "home":
		tags = []string{logic.TagGetHomeTimeline, logic.TagStoreHomeTimeline}
	case "mentions":
		tags = []string{logic.TagGetMentions, logic.TagStoreMentions}
	case "messages_in":
		tags = []string{logic.TagGetReceivedMessages, logic.TagStoreReceivedMessages}
	case "messages_out":
		tags = []string{logic.TagGetSentMessages, logic.TagStoreSentMessages}
	case "trends":
		tags = []string{logic.TagGetTrends, logic.TagStoreTrends}
	default:
		writeErrorResponse(w, badRequestStr, http.StatusBadRequest)
		return
	}
	canceled := 0
	for _, tag := range tags {
		canceled += hg.registry.CancelTag(tag)
	}
	writeJsonResponse(hg.logger, w, map[string]int{"canceled": canceled})
}

type postStatusReq struct {
	AccountIds  []int64  `json:"account_ids"`
	Text        string   `json:"text"`
	InReplyTo   int64    `json:"in_reply_to"`
	MediaPath   string   `json:"media_path"`
	Sensitive   bool     `json:"sensitive"`
	DeleteMedia bool     `json:"delete_media"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

func (hg *apiHandlerGroup) postStatuses(w http.ResponseWriter, r *http.Request) {

	obs := hg.metrics.StartWebRequestIn("post_statuses")
	defer obs.Finish()

	body := readBody(hg.logger, w, r)
	if body == nil {
		return
	}
	var req postStatusReq
	if err := json.Unmarshal(body, &req); err != nil || req.Text == "" || len(req.AccountIds) == 0 {
		writeErrorResponse(w, badRequestStr, http.StatusBadRequest)
		return
	}
	postReq := &logic.PostRequest{
		AccountIds:       req.AccountIds,
		Text:             req.Text,
		InReplyTo:        req.InReplyTo,
		MediaPath:        req.MediaPath,
		Sensitive:        req.Sensitive,
		DeleteMediaAfter: req.DeleteMedia,
	}
	if req.Latitude != nil && req.Longitude != nil {
		postReq.Location = &client.GeoLocation{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}
	taskId := hg.syncer.PostStatus(postReq)
	writeJsonResponse(hg.logger, w, map[string]int{"task_id": taskId})
}

func (hg *apiHandlerGroup) postStatusDestroy(w http.ResponseWriter, r *http.Request) {

	statusId, ok := hg.pathId(w, r, "id")
	if !ok {
		return
	}
	accountId, ok := hg.queryAccountId(w, r)
	if !ok {
		return
	}
	if err := hg.syncer.DestroyStatus(r.Context(), accountId, statusId); err != nil {
		hg.logger.Warnf("Destroying status %d failed: %v", statusId, err)
		writeErrorResponse(w, internalErrorStr, http.StatusInternalServerError)
		return
	}
	writeJsonResponse(hg.logger, w, map[string]bool{"ok": true})
}

func (hg *apiHandlerGroup) postStatusRetweet(w http.ResponseWriter, r *http.Request) {

	statusId, ok := hg.pathId(w, r, "id")
	if !ok {
		return
	}
	accountId, ok := hg.queryAccountId(w, r)
	if !ok {
		return
	}
	if err := hg.syncer.Retweet(r.Context(), accountId, statusId); err != nil {
		hg.logger.Warnf("Reposting status %d failed: %v", statusId, err)
		writeErrorResponse(w, internalErrorStr, http.StatusInternalServerError)
		return
	}
	writeJsonResponse(hg.logger, w, map[string]bool{"ok": true})
}

func (hg *apiHandlerGroup) postStatusFavorite(w http.ResponseWriter, r *http.Request) {

	statusId, ok := hg.pathId(w, r, "id")
	if !ok {
		return
	}
	accountId, ok := hg.queryAccountId(w, r)
	if !ok {
		return
	}
	favorite := r.URL.Query().Get("value") != "false"
	var err error
	if favorite {
		err = hg.syncer.CreateFavorite(r.Context(), accountId, statusId)
	} else {
		err = hg.syncer.DestroyFavorite(r.Context(), accountId, statusId)
	}
	if err != nil {
		hg.logger.Warnf("Changing favorite on status %d failed: %v", statusId, err)
		writeErrorResponse(w, internalErrorStr, http.StatusInternalServerError)
		return
	}
	writeJsonResponse(hg.logger, w, map[string]bool{"ok": true})
}

type postMessageReq struct {
	AccountId   int64  `json:"account_id"`
	RecipientId int64  `json:"recipient_id"`
	Text        string `json:"text"`
}

func (hg *apiHandlerGroup) postMessages(w http.ResponseWriter, r *http.Request) {

	body := readBody(hg.logger, w, r)
	if body == nil {
		return
	}
	var req postMessageReq
	if err := json.Unmarshal(body, &req); err != nil || req.AccountId <= 0 || req.RecipientId <= 0 || req.Text == "" {
		writeErrorResponse(w, badRequestStr, http.StatusBadRequest)
		return
	}
	if err := hg.syncer.SendMessage(r.Context(), req.AccountId, req.RecipientId, req.Text); err != nil {
		hg.logger.Warnf("Sending message failed: %v", err)
		writeErrorResponse(w, internalErrorStr, http.StatusInternalServerError)
		return
	}
	writeJsonResponse(hg.logger, w, map[string]bool{"ok": true})
}

func (hg *apiHandlerGroup) postMessageDestroy(w http.ResponseWriter, r *http.Request) {

	messageId, ok := hg.pathId(w, r, "id")
	if !ok {
		return
	}
	accountId, ok := hg.queryAccountId(w, r)
	if !ok {
		return
	}
	if err := hg.syncer.DestroyMessage(r.Context(), accountId, messageId); err != nil {
		hg.logger.Warnf("Destroying message %d failed: %v", messageId, err)
		writeErrorResponse(w, internalErrorStr, http.StatusInternalServerError)
		return
	}
	writeJsonResponse(hg.logger, w, map[string]bool{"ok": true})
}

func (hg *apiHandlerGroup) postTaskCancel(w http.ResponseWriter, r *http.Request) {

	taskId, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || taskId <= 0 {
		writeErrorResponse(w, badRequestStr, http.StatusBadRequest)
		return
	}
	found := hg.registry.Cancel(taskId)
	writeJsonResponse(hg.logger, w, map[string]bool{"found": found})
}

func (hg *apiHandlerGroup) getBusy(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(hg.logger, w, map[string]bool{
		"home":         hg.syncer.IsHomeTimelineRefreshing(),
		"mentions":     hg.syncer.IsMentionsRefreshing(),
		"messages_in":  hg.syncer.IsReceivedMessagesRefreshing(),
		"messages_out": hg.syncer.IsSentMessagesRefreshing(),
		"any":          hg.registry.HasRunningTask(),
	})
}

func (hg *apiHandlerGroup) getDrafts(w http.ResponseWriter, r *http.Request) {

	drafts, err := hg.repo.GetDrafts()
	if err != nil {
		hg.logger.Errorf("Failed to read drafts: %v", err)
		writeErrorResponse(w, internalErrorStr, http.StatusInternalServerError)
		return
	}
	type draftResp struct {
		Id         string  `json:"id"`
		AccountIds []int64 `json:"account_ids"`
		InReplyTo  int64   `json:"in_reply_to"`
		Text       string  `json:"text"`
		MediaPath  string  `json:"media_path"`
	}
	resp := make([]draftResp, 0, len(drafts))
	for _, d := range drafts {
		resp = append(resp, draftResp{d.Id, d.AccountIds, d.InReplyTo, d.Text, d.MediaPath})
	}
	writeJsonResponse(hg.logger, w, resp)
}

func (hg *apiHandlerGroup) getHashtags(w http.ResponseWriter, r *http.Request) {

	names, err := hg.repo.GetHashtags()
	if err != nil {
		hg.logger.Errorf("Failed to read hashtags: %v", err)
		writeErrorResponse(w, internalErrorStr, http.StatusInternalServerError)
		return
	}
	writeJsonResponse(hg.logger, w, names)
}

func (hg *apiHandlerGroup) getTrends(w http.ResponseWriter, r *http.Request) {

	trends, err := hg.repo.GetTrends(hg.cfg.TrendsWoeId)
	if err != nil {
		hg.logger.Errorf("Failed to read trends: %v", err)
		writeErrorResponse(w, internalErrorStr, http.StatusInternalServerError)
		return
	}
	names := make([]string, 0, len(trends))
	for _, tr := range trends {
		names = append(names, tr.Name)
	}
	writeJsonResponse(hg.logger, w, names)
}

func (hg *apiHandlerGroup) getTimeline(w http.ResponseWriter, r *http.Request) {

	accountId, ok := hg.pathId(w, r, "accountId")
	if !ok {
		return
	}
	limit := hg.cfg.PageSize
	if limStr := r.URL.Query().Get("limit"); limStr != "" {
		if lim, err := strconv.Atoi(limStr); err == nil && lim > 0 {
			limit = lim
		}
	}
	table := dal.TableStatuses
	if r.URL.Query().Get("kind") == "mentions" {
		table = dal.TableMentions
	}
	rows, err := hg.repo.GetStatuses(table, accountId, limit)
	if err != nil {
		hg.logger.Errorf("Failed to read timeline: %v", err)
		writeErrorResponse(w, internalErrorStr, http.StatusInternalServerError)
		return
	}
	type statusResp struct {
		Id         int64  `json:"id"`
		UserId     int64  `json:"user_id"`
		ScreenName string `json:"screen_name"`
		Text       string `json:"text"`
		RetweetId  int64  `json:"retweet_id"`
		IsFavorite bool   `json:"is_favorite"`
		IsGap      bool   `json:"is_gap"`
	}
	resp := make([]statusResp, 0, len(rows))
	for _, sr := range rows {
		resp = append(resp, statusResp{sr.StatusId, sr.UserId, sr.ScreenName, sr.Text, sr.RetweetId,
			sr.IsFavorite, sr.IsGap})
	}
	writeJsonResponse(hg.logger, w, resp)
}
