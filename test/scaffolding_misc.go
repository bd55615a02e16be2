package test

import (
	"magpie/dal"
	"magpie/logic"
	"magpie/shared"
	"magpie/test/mocks"
	"path/filepath"
	"testing"

	"go.uber.org/mock/gomock"
)

func setupDummyLogger(mockLogger *mocks.MockILogger) {
	// The trailing Any() matches the variadic arguments, whatever their count
	mockLogger.EXPECT().Error(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Printf(gomock.Any(), gomock.Any()).AnyTimes()
}

func newTestConfig(t *testing.T) *shared.Config {
	return &shared.Config{
		DbFile:    filepath.Join(t.TempDir(), "magpie-test.db"),
		PageSize:  20,
		TextLimit: 140,
	}
}

// newTestRepo opens a throwaway on-disk database with the full schema.
func newTestRepo(t *testing.T, cfg *shared.Config, logger shared.ILogger) dal.IRepo {
	repo := dal.NewRepo(cfg, logger)
	repo.InitUpdateDb()
	return repo
}

// newTestMetrics tolerates repeated collector registration across tests.
func newTestMetrics(cfg *shared.Config) logic.IMetrics {
	return logic.NewMetrics(cfg)
}
