package logic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"magpie/shared"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-retry"
)

//go:generate mockgen --build_flags=--mod=mod -destination ../test/mocks/mock_services.go -package mocks magpie/logic IUploader,IShortener

const (
	serviceTimeoutSec  = 60
	readinessBaseMs    = 500
	readinessMaxChecks = 5
)

// IUploader hands media files to the configured upload service and splices
// the returned URL into status text. Providers return a nil IUploader when no
// service is configured.
type IUploader interface {
	Ready(ctx context.Context) error
	Upload(ctx context.Context, mediaPath, text string) (string, error)
	FormatStatusText(text, mediaUrl string) string
}

// IShortener rewrites over-limit status text via the configured shortener
// service. Nil when no service is configured.
type IShortener interface {
	Ready(ctx context.Context) error
	Shorten(ctx context.Context, text, screenName string, inReplyTo int64) (string, error)
}

type uploader struct {
	logger    shared.ILogger
	userAgent shared.IUserAgent
	metrics   IMetrics
	baseUrl   string
	hc        *http.Client
}

func NewUploader(cfg *shared.Config, logger shared.ILogger, userAgent shared.IUserAgent, metrics IMetrics) IUploader {
	if cfg.UploaderService == "" {
		return nil
	}
	return &uploader{
		logger:    logger,
		userAgent: userAgent,
		metrics:   metrics,
		baseUrl:   cfg.UploaderService,
		hc:        &http.Client{Timeout: serviceTimeoutSec * time.Second},
	}
}

// probeReady polls a service's health endpoint until it answers or the
// retries run out.
func probeReady(ctx context.Context, hc *http.Client, userAgent shared.IUserAgent, baseUrl string) error {
	backoff := retry.WithMaxRetries(readinessMaxChecks, retry.NewFibonacci(readinessBaseMs*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, "GET", baseUrl+"/healthz", nil)
		if err != nil {
			return err
		}
		userAgent.AddUserAgent(req)
		resp, err := hc.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return retry.RetryableError(fmt.Errorf("health check returned status %d", resp.StatusCode))
		}
		return nil
	})
}

func (u *uploader) Ready(ctx context.Context) error {
	return probeReady(ctx, u.hc, u.userAgent, u.baseUrl)
}

func (u *uploader) Upload(ctx context.Context, mediaPath, text string) (string, error) {

	obs := u.metrics.StartRemoteCall("upload")
	defer obs.Finish()

	file, err := os.Open(mediaPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("media", filepath.Base(mediaPath))
	if err != nil {
		return "", err
	}
	if _, err = io.Copy(part, file); err != nil {
		return "", err
	}
	if err = mw.WriteField("text", text); err != nil {
		return "", err
	}
	if err = mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", u.baseUrl+"/upload", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	u.userAgent.AddUserAgent(req)

	resp, err := u.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload service returned status %d", resp.StatusCode)
	}
	var parsed struct {
		Url string `json:"url"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if parsed.Url == "" {
		return "", fmt.Errorf("upload service returned no media URL")
	}
	return parsed.Url, nil
}

func (u *uploader) FormatStatusText(text, mediaUrl string) string {
	if text == "" {
		return mediaUrl
	}
	return text + " " + mediaUrl
}

type shortener struct {
	logger    shared.ILogger
	userAgent shared.IUserAgent
	metrics   IMetrics
	baseUrl   string
	hc        *http.Client
}

func NewShortener(cfg *shared.Config, logger shared.ILogger, userAgent shared.IUserAgent, metrics IMetrics) IShortener {
	if cfg.ShortenerService == "" {
		return nil
	}
	return &shortener{
		logger:    logger,
		userAgent: userAgent,
		metrics:   metrics,
		baseUrl:   cfg.ShortenerService,
		hc:        &http.Client{Timeout: serviceTimeoutSec * time.Second},
	}
}

func (s *shortener) Ready(ctx context.Context) error {
	return probeReady(ctx, s.hc, s.userAgent, s.baseUrl)
}

func (s *shortener) Shorten(ctx context.Context, text, screenName string, inReplyTo int64) (string, error) {

	obs := s.metrics.StartRemoteCall("shorten")
	defer obs.Finish()

	payload := map[string]any{
		"text":        text,
		"screen_name": screenName,
	}
	if inReplyTo > 0 {
		payload["in_reply_to"] = inReplyTo
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", s.baseUrl+"/shorten", bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	s.userAgent.AddUserAgent(req)

	resp, err := s.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("shortener service returned status %d", resp.StatusCode)
	}
	var parsed struct {
		Text string `json:"text"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if parsed.Text == "" {
		return "", fmt.Errorf("shortener service returned empty text")
	}
	return parsed.Text, nil
}
