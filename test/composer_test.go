package test

import (
	"context"
	"magpie/client"
	"magpie/dal"
	"magpie/logic"
	"magpie/shared"
	"magpie/test/mocks"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type composerHarness struct {
	cfg           *shared.Config
	repo          dal.IRepo
	events        logic.IEvents
	mockResolver  *mocks.MockIResolver
	mockClient1   *mocks.MockIClient
	mockClient2   *mocks.MockIClient
	mockUploader  *mocks.MockIUploader
	mockShortener *mocks.MockIShortener
}

func setupComposerTest(t *testing.T, withUploader, withShortener bool) (*composerHarness, logic.IComposer) {

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockILogger(ctrl)
	setupDummyLogger(mockLogger)

	h := &composerHarness{
		cfg:          newTestConfig(t),
		mockResolver: mocks.NewMockIResolver(ctrl),
		mockClient1:  mocks.NewMockIClient(ctrl),
		mockClient2:  mocks.NewMockIClient(ctrl),
	}
	h.cfg.TextLimit = 40
	h.repo = newTestRepo(t, h.cfg, mockLogger)
	h.events = logic.NewEvents(mockLogger)

	var uploader logic.IUploader
	if withUploader {
		h.mockUploader = mocks.NewMockIUploader(ctrl)
		uploader = h.mockUploader
	}
	var shortener logic.IShortener
	if withShortener {
		h.mockShortener = mocks.NewMockIShortener(ctrl)
		shortener = h.mockShortener
	}

	composer := logic.NewComposer(h.cfg, mockLogger, h.repo, h.mockResolver,
		uploader, shortener, h.events, newTestMetrics(h.cfg))
	return h, composer
}

func draftCount(t *testing.T, repo dal.IRepo) int {
	drafts, err := repo.GetDrafts()
	require.Nil(t, err)
	return len(drafts)
}

func TestPostFansOutToAllAccounts(t *testing.T) {

	h, composer := setupComposerTest(t, false, false)

	h.mockResolver.EXPECT().Client(int64(1)).Return(h.mockClient1)
	h.mockResolver.EXPECT().Client(int64(2)).Return(h.mockClient2)
	h.mockClient1.EXPECT().PostStatus(gomock.Any(), gomock.Any()).Return(&client.Status{Id: 501}, nil)
	h.mockClient2.EXPECT().PostStatus(gomock.Any(), gomock.Any()).Return(&client.Status{Id: 502}, nil)

	results := composer.Post(context.Background(), &logic.PostRequest{
		AccountIds: []int64{1, 2},
		Text:       "morning #coffee",
	})

	require.Equal(t, 2, len(results))
	assert.Equal(t, int64(501), results[0].StatusId)
	assert.Equal(t, int64(502), results[1].StatusId)
	assert.Nil(t, results[0].Err)
	assert.Nil(t, results[1].Err)
	assert.Equal(t, 0, draftCount(t, h.repo))

	// Hashtags from the text land in the cache
	names, err := h.repo.GetHashtags()
	require.Nil(t, err)
	assert.Equal(t, []string{"coffee"}, names)
}

func TestPostPartialFailureSavesDraftForFailedAccounts(t *testing.T) {

	h, composer := setupComposerTest(t, false, false)

	h.mockResolver.EXPECT().Client(int64(1)).Return(h.mockClient1)
	h.mockResolver.EXPECT().Client(int64(2)).Return(h.mockClient2)
	h.mockClient1.EXPECT().PostStatus(gomock.Any(), gomock.Any()).Return(&client.Status{Id: 501}, nil)
	h.mockClient2.EXPECT().PostStatus(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

	results := composer.Post(context.Background(), &logic.PostRequest{
		AccountIds: []int64{1, 2},
		Text:       "hello there",
	})

	assert.Nil(t, results[0].Err)
	assert.NotNil(t, results[1].Err)

	drafts, err := h.repo.GetDrafts()
	require.Nil(t, err)
	require.Equal(t, 1, len(drafts))
	assert.Equal(t, []int64{2}, drafts[0].AccountIds)
	assert.Equal(t, "hello there", drafts[0].Text)
}

func TestPostDuplicateContentCountsAsPosted(t *testing.T) {

	h, composer := setupComposerTest(t, false, false)

	h.mockResolver.EXPECT().Client(int64(1)).Return(h.mockClient1)
	h.mockClient1.EXPECT().PostStatus(gomock.Any(), gomock.Any()).
		Return(nil, &client.APIError{Code: client.CodeDuplicate, Message: "already posted"})

	results := composer.Post(context.Background(), &logic.PostRequest{
		AccountIds: []int64{1},
		Text:       "hello again",
	})

	require.Equal(t, 1, len(results))
	assert.Nil(t, results[0].Err)
	assert.True(t, results[0].Duplicate)
	assert.Equal(t, 0, draftCount(t, h.repo))
}

func TestPostTooLongWithoutShortenerFailsAll(t *testing.T) {

	h, composer := setupComposerTest(t, false, false)

	results := composer.Post(context.Background(), &logic.PostRequest{
		AccountIds: []int64{1, 2},
		Text:       strings.Repeat("x", 41),
	})

	require.Equal(t, 2, len(results))
	assert.ErrorIs(t, results[0].Err, logic.ErrTextTooLong)
	assert.ErrorIs(t, results[1].Err, logic.ErrTextTooLong)

	drafts, err := h.repo.GetDrafts()
	require.Nil(t, err)
	require.Equal(t, 1, len(drafts))
	assert.Equal(t, []int64{1, 2}, drafts[0].AccountIds)
}

func TestPostShortenerRewritesOverlongText(t *testing.T) {

	h, composer := setupComposerTest(t, false, true)

	longText := strings.Repeat("y", 50)
	h.mockResolver.EXPECT().ScreenName(int64(1)).Return("marla")
	h.mockShortener.EXPECT().Shorten(gomock.Any(), longText, "marla", int64(0)).
		Return("short enough", nil)
	h.mockResolver.EXPECT().Client(int64(1)).Return(h.mockClient1)
	h.mockClient1.EXPECT().PostStatus(gomock.Any(), gomock.Cond(func(x any) bool {
		upd, ok := x.(*client.StatusUpdate)
		return ok && upd.Text == "short enough"
	})).Return(&client.Status{Id: 700}, nil)

	results := composer.Post(context.Background(), &logic.PostRequest{
		AccountIds: []int64{1},
		Text:       longText,
	})

	assert.Nil(t, results[0].Err)
	assert.Equal(t, 0, draftCount(t, h.repo))
}

func TestPostShortenerFailureFailsAll(t *testing.T) {

	h, composer := setupComposerTest(t, false, true)

	h.mockResolver.EXPECT().ScreenName(int64(1)).Return("marla")
	h.mockShortener.EXPECT().Shorten(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", assert.AnError)

	results := composer.Post(context.Background(), &logic.PostRequest{
		AccountIds: []int64{1},
		Text:       strings.Repeat("z", 50),
	})

	assert.ErrorIs(t, results[0].Err, logic.ErrShortenFailed)
	assert.Equal(t, 1, draftCount(t, h.repo))
}

func TestPostUploadsMediaAndDeletesOnSuccess(t *testing.T) {

	h, composer := setupComposerTest(t, true, false)

	mediaPath := filepath.Join(t.TempDir(), "photo.jpg")
	require.Nil(t, os.WriteFile(mediaPath, []byte("jpeg bytes"), 0644))

	h.mockUploader.EXPECT().Upload(gomock.Any(), mediaPath, "look at this").
		Return("https://pic.example/abc", nil)
	h.mockUploader.EXPECT().FormatStatusText("look at this", "https://pic.example/abc").
		Return("look at this https://pic.example/abc")
	h.mockResolver.EXPECT().Client(int64(1)).Return(h.mockClient1)
	h.mockClient1.EXPECT().PostStatus(gomock.Any(), gomock.Cond(func(x any) bool {
		upd, ok := x.(*client.StatusUpdate)
		return ok && upd.Text == "look at this https://pic.example/abc" && upd.MediaPath == ""
	})).Return(&client.Status{Id: 800}, nil)

	results := composer.Post(context.Background(), &logic.PostRequest{
		AccountIds:       []int64{1},
		Text:             "look at this",
		MediaPath:        mediaPath,
		DeleteMediaAfter: true,
	})

	assert.Nil(t, results[0].Err)
	_, err := os.Stat(mediaPath)
	assert.True(t, os.IsNotExist(err))
}

func TestPostUploadFailureFailsAll(t *testing.T) {

	h, composer := setupComposerTest(t, true, false)

	mediaPath := filepath.Join(t.TempDir(), "photo.jpg")
	require.Nil(t, os.WriteFile(mediaPath, []byte("jpeg bytes"), 0644))

	h.mockUploader.EXPECT().Upload(gomock.Any(), mediaPath, gomock.Any()).
		Return("", assert.AnError)

	results := composer.Post(context.Background(), &logic.PostRequest{
		AccountIds:       []int64{1},
		Text:             "look at this",
		MediaPath:        mediaPath,
		DeleteMediaAfter: true,
	})

	assert.ErrorIs(t, results[0].Err, logic.ErrUploadFailed)
	assert.Equal(t, 1, draftCount(t, h.repo))
	// The media file stays around for the retry
	_, err := os.Stat(mediaPath)
	assert.Nil(t, err)
}

func TestPostMissingMediaFileIsSkippedNotFatal(t *testing.T) {

	h, composer := setupComposerTest(t, true, false)

	// No Upload expectation: the uploader must not be called
	h.mockResolver.EXPECT().Client(int64(1)).Return(h.mockClient1)
	h.mockClient1.EXPECT().PostStatus(gomock.Any(), gomock.Cond(func(x any) bool {
		upd, ok := x.(*client.StatusUpdate)
		return ok && upd.Text == "no picture after all" && upd.MediaPath == ""
	})).Return(&client.Status{Id: 900}, nil)

	results := composer.Post(context.Background(), &logic.PostRequest{
		AccountIds: []int64{1},
		Text:       "no picture after all",
		MediaPath:  filepath.Join(t.TempDir(), "gone.jpg"),
	})

	assert.Nil(t, results[0].Err)
	assert.Equal(t, 0, draftCount(t, h.repo))
}

func TestPostCanceledContextDraftsRemainingAccounts(t *testing.T) {

	h, composer := setupComposerTest(t, false, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := composer.Post(ctx, &logic.PostRequest{
		AccountIds: []int64{1, 2},
		Text:       "never makes it",
	})

	require.Equal(t, 2, len(results))
	assert.NotNil(t, results[0].Err)
	assert.NotNil(t, results[1].Err)

	drafts, err := h.repo.GetDrafts()
	require.Nil(t, err)
	require.Equal(t, 1, len(drafts))
	assert.Equal(t, []int64{1, 2}, drafts[0].AccountIds)
}

func TestExtractHashtags(t *testing.T) {
	assert.Equal(t, []string{"go", "coding"}, logic.ExtractHashtags("I love #go and #coding and #go"))
	assert.Nil(t, logic.ExtractHashtags("nothing to see"))
	assert.Equal(t, []string{"Überraschung"}, logic.ExtractHashtags("was für eine #Überraschung!"))
}
