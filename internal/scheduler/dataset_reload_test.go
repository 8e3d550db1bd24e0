package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/margin-report-api/internal/config"
	"github.com/vfg2006/margin-report-api/internal/domain"
	"github.com/vfg2006/margin-report-api/internal/usecases/reporting/mocks"
	"go.uber.org/mock/gomock"
)

func newReloadConfig(enabled bool) *config.Config {
	return &config.Config{
		DatasetReload: config.DatasetReload{CronSchedule: "0 * * * *", Enabled: enabled},
	}
}

func TestDatasetReloadService_TriggerManualSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockReporter(ctrl)

	release := make(chan struct{})
	dataset := domain.NewDataset("xlsx:sales.xlsx", []domain.Record{{ProductName: "P1"}})

	reporter.EXPECT().
		Reload(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (*domain.Dataset, error) {
			<-release
			return dataset, nil
		}).
		Times(1)

	service := NewDatasetReloadService(reporter, newReloadConfig(false))

	assert.True(t, service.TriggerManualSync())
	assert.False(t, service.TriggerManualSync(), "segunda recarga deve ser ignorada enquanto a primeira roda")
	assert.Equal(t, true, service.GetStatus()["sync_running"])

	close(release)

	assert.Eventually(t, func() bool {
		return service.GetStatus()["sync_running"] == false
	}, time.Second, 10*time.Millisecond)

	status := service.GetStatus()
	assert.Equal(t, dataset.ID, status["last_dataset_id"])
	assert.Equal(t, "", status["last_sync_error"])
	assert.Equal(t, false, status["sync_enabled"])
}

func TestDatasetReloadService_RecordsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockReporter(ctrl)
	reporter.EXPECT().Reload(gomock.Any()).Return(nil, errors.New("source unavailable"))

	service := NewDatasetReloadService(reporter, newReloadConfig(false))
	service.reloadDataset()

	status := service.GetStatus()
	assert.Equal(t, false, status["sync_running"])
	assert.Equal(t, "source unavailable", status["last_sync_error"])
	assert.Equal(t, "", status["last_dataset_id"])
}

func TestDatasetReloadService_RunNow(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockReporter(ctrl)
	service := NewDatasetReloadService(reporter, newReloadConfig(false))

	dataset := domain.NewDataset("xlsx:sales.xlsx", []domain.Record{{ProductName: "P1"}})
	reporter.EXPECT().Reload(gomock.Any()).Return(dataset, nil)

	got, err := service.RunNow(context.Background())
	assert.NoError(t, err)
	assert.Same(t, dataset, got)

	status := service.GetStatus()
	assert.Equal(t, false, status["sync_running"])
	assert.Equal(t, dataset.ID, status["last_dataset_id"])
	assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
}

func TestDatasetReloadService_RunNowWhileRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockReporter(ctrl)
	service := NewDatasetReloadService(reporter, newReloadConfig(false))

	release := make(chan struct{})
	reporter.EXPECT().
		Reload(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (*domain.Dataset, error) {
			<-release
			return domain.NewDataset("xlsx:sales.xlsx", nil), nil
		}).
		Times(1)

	assert.True(t, service.TriggerManualSync())

	_, err := service.RunNow(context.Background())
	assert.ErrorIs(t, err, ErrReloadInProgress)

	close(release)
	assert.Eventually(t, func() bool {
		return service.GetStatus()["sync_running"] == false
	}, time.Second, 10*time.Millisecond)
}

func TestDatasetReloadService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewDatasetReloadService(mocks.NewMockReporter(ctrl), newReloadConfig(false))

	assert.NoError(t, service.Start(context.Background()))
	assert.Equal(t, 0, service.scheduler.Len())
}

func TestDatasetReloadService_StartInvalidCron(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := newReloadConfig(true)
	cfg.DatasetReload.CronSchedule = "not a cron"

	service := NewDatasetReloadService(mocks.NewMockReporter(ctrl), cfg)
	assert.Error(t, service.Start(context.Background()))
}

func TestDatasetReloadService_StartEnabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	service := NewDatasetReloadService(mocks.NewMockReporter(ctrl), newReloadConfig(true))

	assert.NoError(t, service.Start(ctx))
	assert.Equal(t, 1, service.scheduler.Len())
	assert.True(t, service.scheduler.IsRunning())
}
