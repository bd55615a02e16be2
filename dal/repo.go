package dal

import (
	"database/sql"
	"embed"
	"fmt"
	"magpie/shared"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/spaolacci/murmur3"
)

const schemaVer = 1

//go:embed scripts/*
var scripts embed.FS

// IChangeListener gets notified after a cache table's content changes.
// Implementations must not block and must not call back into the repo.
type IChangeListener interface {
	CacheChanged(table Table)
}

type IRepo interface {
	InitUpdateDb()
	SetChangeListener(listener IChangeListener)
	StatusIds(table Table, accountId int64) ([]int64, error)
	NewestStatusId(table Table, accountId int64) (int64, error)
	GetStatuses(table Table, accountId int64, limit int) ([]*StatusRow, error)
	DeleteStatuses(table Table, accountId int64, ids []int64) (int64, error)
	InsertStatuses(table Table, rows []*StatusRow) error
	MarkGap(table Table, accountId, statusId int64) error
	SetFavorite(statusId int64, isFavorite bool) error
	SetMyRetweet(statusId, myRetweetId int64) error
	DeleteStatusEverywhere(statusId int64) error
	DeleteStatusesByUser(userId int64) error
	MessageIds(table Table, accountId int64) ([]int64, error)
	NewestMessageId(table Table, accountId int64) (int64, error)
	DeleteMessages(table Table, accountId int64, ids []int64) error
	InsertMessages(table Table, rows []*MessageRow) error
	DeleteMessageEverywhere(accountId, messageId int64) error
	ReplaceTrends(woeid int64, rows []*TrendRow) error
	GetTrends(woeid int64) ([]*TrendRow, error)
	UpsertHashtags(names []string) error
	GetHashtags() ([]string, error)
	AddDraft(draft *Draft) error
	GetDrafts() ([]*Draft, error)
	DeleteDraft(id string) error
	GetWatermark(class string) (int64, error)
	SetWatermark(class string, itemId int64) error
}

type Repo struct {
	cfg      *shared.Config
	logger   shared.ILogger
	db       *sql.DB
	muDb     sync.RWMutex
	listener IChangeListener
}

func NewRepo(cfg *shared.Config, logger shared.ILogger) IRepo {

	var err error
	var db *sql.DB

	// https://phiresky.github.io/blog/2020/sqlite-performance-tuning/
	// https://github.com/mattn/go-sqlite3/issues/1022#issuecomment-1067353980
	// _synchronous=1 is "normal"
	cstr := "file:%s?cache=shared&mode=rwc&_journal_mode=WAL&_synchronous=1&_busy_timeout=5000"
	db, err = sql.Open("sqlite3", fmt.Sprintf(cstr, cfg.DbFile))
	if err != nil {
		logger.Errorf("Failed to open/create DB file: %s: %v", cfg.DbFile, err)
		panic(err)
	}

	repo := Repo{
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	return &repo
}

func (repo *Repo) InitUpdateDb() {

	dbVer := 0
	sysParamsExists := false
	var err error
	var rows *sql.Rows

	rows, err = repo.db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name='sys_params'")
	if err != nil {
		repo.logger.Errorf("Failed to check if 'sys_params' table exists: %v", err)
		panic(err)
	}
	for rows.Next() {
		sysParamsExists = true
	}
	_ = rows.Close()
	if !sysParamsExists {
		repo.logger.Printf("Database appears to be empty; current schema version is %d", schemaVer)
	} else {
		row := repo.db.QueryRow("SELECT val FROM sys_params WHERE name='schema_ver'")
		if err = row.Scan(&dbVer); err != nil {
			repo.logger.Errorf("Failed to query schema version: %v", err)
			panic(err)
		}
		repo.logger.Printf("Database is at version %d; current schema version is %d", dbVer, schemaVer)
	}
	for i := dbVer; i < schemaVer; i += 1 {
		nextVer := i + 1
		fn := fmt.Sprintf("scripts/create-%02d.sql", nextVer)
		repo.logger.Printf("Running %s", fn)
		var sqlBytes []byte
		if sqlBytes, err = scripts.ReadFile(fn); err != nil {
			repo.logger.Errorf("Failed to read init script %s: %v", fn, err)
			panic(err)
		}
		sqlStr := string(sqlBytes)
		if _, err = repo.db.Exec(sqlStr); err != nil {
			repo.logger.Errorf("Failed to execute init script %s: %v", fn, err)
			panic(err)
		}
		_, err = repo.db.Exec("UPDATE sys_params SET val=? WHERE name='schema_ver'", nextVer)
		if err != nil {
			repo.logger.Errorf("Failed to update schema_ver to %d: %v", nextVer, err)
			panic(err)
		}
	}
}

func (repo *Repo) SetChangeListener(listener IChangeListener) {
	repo.listener = listener
}

func (repo *Repo) notifyChanged(table Table) {
	if repo.listener != nil {
		repo.listener.CacheChanged(table)
	}
}

// idPlaceholders builds "?,?,?" plus the matching args slice for IN clauses.
func idPlaceholders(ids []int64) (string, []interface{}) {
	sb := strings.Builder{}
	args := make([]interface{}, 0, len(ids))
	for i, id := range ids {
		if i != 0 {
			sb.WriteString(",")
		}
		sb.WriteString("?")
		args = append(args, id)
	}
	return sb.String(), args
}

func isDuplicateKey(err error) bool {
	if sqliteErr, ok := err.(sqlite3.Error); ok {
		return sqliteErr.Code == 19 && sqliteErr.ExtendedCode == 2067
	}
	return false
}

func (repo *Repo) StatusIds(table Table, accountId int64) ([]int64, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	query := fmt.Sprintf("SELECT status_id FROM %s WHERE account_id=?", table)
	rows, err := repo.db.Query(query, accountId)
	if err != nil {
		repo.logger.Errorf("Failed to query status ids from %s: %v", table, err)
		return nil, err
	}
	defer rows.Close()
	var res []int64
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}
		res = append(res, id)
	}
	return res, nil
}

func (repo *Repo) NewestStatusId(table Table, accountId int64) (int64, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	query := fmt.Sprintf("SELECT IFNULL(MAX(status_id), 0) FROM %s WHERE account_id=?", table)
	row := repo.db.QueryRow(query, accountId)
	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (repo *Repo) GetStatuses(table Table, accountId int64, limit int) ([]*StatusRow, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	query := fmt.Sprintf(`SELECT account_id, status_id, user_id, screen_name, user_name, text, source,
		in_reply_to_id, retweet_id, retweeted_by_id, my_retweet_id, is_favorite, is_gap, created_at
		FROM %s WHERE account_id=? ORDER BY status_id DESC LIMIT ?`, table)
	rows, err := repo.db.Query(query, accountId, limit)
	if err != nil {
		repo.logger.Errorf("Failed to query statuses from %s: %v", table, err)
		return nil, err
	}
	defer rows.Close()
	var res []*StatusRow
	for rows.Next() {
		sr := StatusRow{}
		err = rows.Scan(&sr.AccountId, &sr.StatusId, &sr.UserId, &sr.ScreenName, &sr.UserName, &sr.Text,
			&sr.Source, &sr.InReplyToId, &sr.RetweetId, &sr.RetweetedById, &sr.MyRetweetId,
			&sr.IsFavorite, &sr.IsGap, &sr.CreatedAt)
		if err != nil {
			return nil, err
		}
		res = append(res, &sr)
	}
	return res, nil
}

func (repo *Repo) DeleteStatuses(table Table, accountId int64, ids []int64) (int64, error) {

	if len(ids) == 0 {
		return 0, nil
	}

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	ph, args := idPlaceholders(ids)
	query := fmt.Sprintf("DELETE FROM %s WHERE account_id=? AND (status_id IN (%s) OR retweet_id IN (%s))",
		table, ph, ph)
	allArgs := make([]interface{}, 0, 1+2*len(args))
	allArgs = append(allArgs, accountId)
	allArgs = append(allArgs, args...)
	allArgs = append(allArgs, args...)
	res, err := repo.db.Exec(query, allArgs...)
	if err != nil {
		repo.logger.Errorf("Failed to delete statuses from %s: %v", table, err)
		return 0, err
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		repo.notifyChanged(table)
	}
	return n, nil
}

func (repo *Repo) InsertStatuses(table Table, statusRows []*StatusRow) error {

	if len(statusRows) == 0 {
		return nil
	}

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	tx, err := repo.db.Begin()
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`INSERT INTO %s
		(account_id, status_id, user_id, screen_name, user_name, text, source,
		in_reply_to_id, retweet_id, retweeted_by_id, my_retweet_id, is_favorite, is_gap, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, table)
	for _, sr := range statusRows {
		_, err = tx.Exec(query, sr.AccountId, sr.StatusId, sr.UserId, sr.ScreenName, sr.UserName, sr.Text,
			sr.Source, sr.InReplyToId, sr.RetweetId, sr.RetweetedById, sr.MyRetweetId,
			sr.IsFavorite, sr.IsGap, sr.CreatedAt)
		if err != nil {
			// Row already present: fine, deletes ran first for everything we meant to replace
			if isDuplicateKey(err) {
				continue
			}
			_ = tx.Rollback()
			repo.logger.Errorf("Failed to insert statuses into %s: %v", table, err)
			return err
		}
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	repo.notifyChanged(table)
	return nil
}

func (repo *Repo) MarkGap(table Table, accountId, statusId int64) error {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	query := fmt.Sprintf("UPDATE %s SET is_gap=1 WHERE account_id=? AND status_id=?", table)
	_, err := repo.db.Exec(query, accountId, statusId)
	if err != nil {
		repo.logger.Errorf("Failed to mark gap in %s at %d: %v", table, statusId, err)
		return err
	}
	repo.notifyChanged(table)
	return nil
}

// SetFavorite updates the flag wherever the status shows up, as itself or as
// somebody's repost of it, across all status tables.
func (repo *Repo) SetFavorite(statusId int64, isFavorite bool) error {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	for _, table := range StatusTables() {
		query := fmt.Sprintf("UPDATE %s SET is_favorite=? WHERE status_id=? OR retweet_id=?", table)
		if _, err := repo.db.Exec(query, isFavorite, statusId, statusId); err != nil {
			repo.logger.Errorf("Failed to set favorite flag in %s: %v", table, err)
			return err
		}
		repo.notifyChanged(table)
	}
	return nil
}

func (repo *Repo) SetMyRetweet(statusId, myRetweetId int64) error {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	for _, table := range StatusTables() {
		query := fmt.Sprintf("UPDATE %s SET my_retweet_id=? WHERE status_id=? OR retweet_id=?", table)
		if _, err := repo.db.Exec(query, myRetweetId, statusId, statusId); err != nil {
			repo.logger.Errorf("Failed to set my_retweet_id in %s: %v", table, err)
			return err
		}
		repo.notifyChanged(table)
	}
	return nil
}

// DeleteStatusEverywhere removes a destroyed status from all status tables and
// clears dangling my_retweet_id references to it.
func (repo *Repo) DeleteStatusEverywhere(statusId int64) error {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	for _, table := range StatusTables() {
		query := fmt.Sprintf("DELETE FROM %s WHERE status_id=? OR retweet_id=?", table)
		if _, err := repo.db.Exec(query, statusId, statusId); err != nil {
			repo.logger.Errorf("Failed to delete status %d from %s: %v", statusId, table, err)
			return err
		}
		query = fmt.Sprintf("UPDATE %s SET my_retweet_id=0 WHERE my_retweet_id=?", table)
		if _, err := repo.db.Exec(query, statusId); err != nil {
			repo.logger.Errorf("Failed to clear my_retweet_id %d in %s: %v", statusId, table, err)
			return err
		}
		repo.notifyChanged(table)
	}
	return nil
}

// DeleteStatusesByUser purges everything a user wrote or reposted; used after
// blocking or reporting them.
func (repo *Repo) DeleteStatusesByUser(userId int64) error {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	for _, table := range StatusTables() {
		query := fmt.Sprintf("DELETE FROM %s WHERE user_id=? OR retweeted_by_id=?", table)
		if _, err := repo.db.Exec(query, userId, userId); err != nil {
			repo.logger.Errorf("Failed to delete statuses of user %d from %s: %v", userId, table, err)
			return err
		}
		repo.notifyChanged(table)
	}
	return nil
}

func (repo *Repo) MessageIds(table Table, accountId int64) ([]int64, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	query := fmt.Sprintf("SELECT message_id FROM %s WHERE account_id=?", table)
	rows, err := repo.db.Query(query, accountId)
	if err != nil {
		repo.logger.Errorf("Failed to query message ids from %s: %v", table, err)
		return nil, err
	}
	defer rows.Close()
	var res []int64
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}
		res = append(res, id)
	}
	return res, nil
}

func (repo *Repo) NewestMessageId(table Table, accountId int64) (int64, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	query := fmt.Sprintf("SELECT IFNULL(MAX(message_id), 0) FROM %s WHERE account_id=?", table)
	row := repo.db.QueryRow(query, accountId)
	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (repo *Repo) DeleteMessages(table Table, accountId int64, ids []int64) error {

	if len(ids) == 0 {
		return nil
	}

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	ph, args := idPlaceholders(ids)
	query := fmt.Sprintf("DELETE FROM %s WHERE account_id=? AND message_id IN (%s)", table, ph)
	allArgs := make([]interface{}, 0, 1+len(args))
	allArgs = append(allArgs, accountId)
	allArgs = append(allArgs, args...)
	res, err := repo.db.Exec(query, allArgs...)
	if err != nil {
		repo.logger.Errorf("Failed to delete messages from %s: %v", table, err)
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		repo.notifyChanged(table)
	}
	return nil
}

func (repo *Repo) InsertMessages(table Table, messageRows []*MessageRow) error {

	if len(messageRows) == 0 {
		return nil
	}

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	tx, err := repo.db.Begin()
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`INSERT INTO %s
		(account_id, message_id, sender_id, sender_screen_name, recipient_id, recipient_screen_name, text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, table)
	for _, mr := range messageRows {
		_, err = tx.Exec(query, mr.AccountId, mr.MessageId, mr.SenderId, mr.SenderScreenName,
			mr.RecipientId, mr.RecipientScreenName, mr.Text, mr.CreatedAt)
		if err != nil {
			if isDuplicateKey(err) {
				continue
			}
			_ = tx.Rollback()
			repo.logger.Errorf("Failed to insert messages into %s: %v", table, err)
			return err
		}
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	repo.notifyChanged(table)
	return nil
}

func (repo *Repo) DeleteMessageEverywhere(accountId, messageId int64) error {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	for _, table := range MessageTables() {
		query := fmt.Sprintf("DELETE FROM %s WHERE account_id=? AND message_id=?", table)
		if _, err := repo.db.Exec(query, accountId, messageId); err != nil {
			repo.logger.Errorf("Failed to delete message %d from %s: %v", messageId, table, err)
			return err
		}
		repo.notifyChanged(table)
	}
	return nil
}

// ReplaceTrends swaps out the cached trend list for one location wholesale.
func (repo *Repo) ReplaceTrends(woeid int64, trendRows []*TrendRow) error {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	tx, err := repo.db.Begin()
	if err != nil {
		return err
	}
	if _, err = tx.Exec("DELETE FROM trends WHERE woeid=?", woeid); err != nil {
		_ = tx.Rollback()
		repo.logger.Errorf("Failed to clear trends for woeid %d: %v", woeid, err)
		return err
	}
	for _, tr := range trendRows {
		_, err = tx.Exec("INSERT INTO trends (woeid, name, as_of) VALUES (?, ?, ?)", tr.WoeId, tr.Name, tr.AsOf)
		if err != nil {
			_ = tx.Rollback()
			repo.logger.Errorf("Failed to insert trends for woeid %d: %v", woeid, err)
			return err
		}
	}
	return tx.Commit()
}

func (repo *Repo) GetTrends(woeid int64) ([]*TrendRow, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	rows, err := repo.db.Query("SELECT woeid, name, as_of FROM trends WHERE woeid=?", woeid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []*TrendRow
	for rows.Next() {
		tr := TrendRow{}
		if err = rows.Scan(&tr.WoeId, &tr.Name, &tr.AsOf); err != nil {
			return nil, err
		}
		res = append(res, &tr)
	}
	return res, nil
}

// UpsertHashtags stores hashtag names for composer autocomplete, keyed by a
// murmur3 hash of the lowercased name so re-seen tags just refresh in place.
func (repo *Repo) UpsertHashtags(names []string) error {

	if len(names) == 0 {
		return nil
	}

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	tx, err := repo.db.Begin()
	if err != nil {
		return err
	}
	now := time.Now()
	for _, name := range names {
		hash := int64(murmur3.Sum64([]byte(strings.ToLower(name))))
		_, err = tx.Exec("INSERT OR REPLACE INTO cached_hashtags (name_hash, name, created_at) VALUES (?, ?, ?)",
			hash, name, now)
		if err != nil {
			_ = tx.Rollback()
			repo.logger.Errorf("Failed to upsert hashtag '%s': %v", name, err)
			return err
		}
	}
	return tx.Commit()
}

func (repo *Repo) GetHashtags() ([]string, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	rows, err := repo.db.Query("SELECT name FROM cached_hashtags ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []string
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, err
		}
		res = append(res, name)
	}
	return res, nil
}

func (repo *Repo) AddDraft(draft *Draft) error {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	_, err := repo.db.Exec(`INSERT INTO drafts (id, account_ids, in_reply_to, text, media_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		draft.Id, shared.JoinIds(draft.AccountIds, ","), draft.InReplyTo, draft.Text, draft.MediaPath, draft.CreatedAt)
	if err != nil {
		repo.logger.Errorf("Failed to add draft: %v", err)
	}
	return err
}

func (repo *Repo) GetDrafts() ([]*Draft, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	rows, err := repo.db.Query(`SELECT id, account_ids, in_reply_to, text, media_path, created_at
		FROM drafts ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []*Draft
	for rows.Next() {
		d := Draft{}
		var accountIds string
		if err = rows.Scan(&d.Id, &accountIds, &d.InReplyTo, &d.Text, &d.MediaPath, &d.CreatedAt); err != nil {
			return nil, err
		}
		d.AccountIds = shared.SplitIds(accountIds, ",")
		res = append(res, &d)
	}
	return res, nil
}

func (repo *Repo) DeleteDraft(id string) error {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	_, err := repo.db.Exec("DELETE FROM drafts WHERE id=?", id)
	return err
}

// GetWatermark returns -1 when no watermark is stored for the class.
func (repo *Repo) GetWatermark(class string) (int64, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	row := repo.db.QueryRow("SELECT item_id FROM watermarks WHERE class=?", class)
	var id int64
	err := row.Scan(&id)
	if err == sql.ErrNoRows {
		return -1, nil
	}
	if err != nil {
		return -1, err
	}
	return id, nil
}

func (repo *Repo) SetWatermark(class string, itemId int64) error {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	_, err := repo.db.Exec(`INSERT OR REPLACE INTO watermarks (class, item_id, updated_at) VALUES (?, ?, ?)`,
		class, itemId, time.Now())
	if err != nil {
		repo.logger.Errorf("Failed to set watermark for %s: %v", class, err)
	}
	return err
}
