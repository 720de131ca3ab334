package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/crowd_alert_system/internal/config"
	crowd_mocks "github.com/shenikar/crowd_alert_system/internal/crowd/mocks"
	"github.com/shenikar/crowd_alert_system/internal/models"
	"github.com/shenikar/crowd_alert_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)

type testDeps struct {
	store    *mocks.MockStore
	cache    *mocks.MockParticipantCache
	notifier *crowd_mocks.MockNotifier
}

func testConfig() *config.Config {
	exitLat, exitLon := 12.9721, 77.5933
	return &config.Config{
		StoreTimeout:         time.Second,
		CrowdRadiusKm:        0.1,
		CrowdThreshold:       3,
		AlertActiveWindow:    time.Minute,
		SnapshotActiveWindow: 2 * time.Minute,
		AlertCountSelf:       true,
		SnapshotCountSelf:    true,
		ExitLatitude:         &exitLat,
		ExitLongitude:        &exitLon,
		DefaultCountryPrefix: "+91",
		AlertMessage:         config.DefaultAlertMessage,
		AlertRecipientPolicy: "all_neighbors",
		NotifyConcurrency:    1,
		NotifyTimeout:        time.Second,
	}
}

// newTestCrowdService - вспомогательная функция для создания инстанса сервиса с моками.
func newTestCrowdService(t *testing.T, cfg *config.Config) (*crowdService, testDeps) {
	ctrl := gomock.NewController(t)
	deps := testDeps{
		store:    mocks.NewMockStore(ctrl),
		cache:    mocks.NewMockParticipantCache(ctrl),
		notifier: crowd_mocks.NewMockNotifier(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	svc := NewCrowdService(deps.store, deps.cache, deps.notifier, nil, logger, cfg).(*crowdService)
	svc.now = func() time.Time { return testNow }
	return svc, deps
}

func active(p *models.Participant, lat, lon float64, lastSeen time.Time) models.ActiveParticipant {
	return models.ActiveParticipant{
		ParticipantID: p.ID,
		Name:          p.Name,
		Phone:         p.Phone,
		Latitude:      lat,
		Longitude:     lon,
		LastSeen:      lastSeen,
	}
}

func trioParticipants() (*models.Participant, *models.Participant, *models.Participant) {
	return &models.Participant{ID: uuid.New(), Name: "Asha", Phone: "9000000001"},
		&models.Participant{ID: uuid.New(), Name: "Ravi", Phone: "9000000002"},
		&models.Participant{ID: uuid.New(), Name: "Meera", Phone: "+919000000003"}
}

func TestRegisterParticipant_New(t *testing.T) {
	// Подготовка
	svc, deps := newTestCrowdService(t, testConfig())
	ctx := context.Background()

	// Ожидания
	deps.store.EXPECT().
		FindParticipantByPhone(gomock.Any(), "9000000001").
		Return(nil, ErrParticipantNotFound).
		Times(1)
	deps.store.EXPECT().
		CreateParticipant(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *models.Participant) error {
			assert.NotEqual(t, uuid.Nil, p.ID)
			assert.Equal(t, "Asha", p.Name)
			assert.Equal(t, testNow, p.RegisteredAt)
			return nil
		}).
		Times(1)
	deps.cache.EXPECT().SetParticipantCache(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	// Действие
	participant, created, err := svc.RegisterParticipant(ctx, "  Asha ", " 9000000001 ")

	// Проверки
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Asha", participant.Name)
	assert.Equal(t, "9000000001", participant.Phone)
}

func TestRegisterParticipant_DuplicatePhoneReturnsExisting(t *testing.T) {
	svc, deps := newTestCrowdService(t, testConfig())
	existing := &models.Participant{ID: uuid.New(), Name: "Asha", Phone: "9000000001"}

	deps.store.EXPECT().FindParticipantByPhone(gomock.Any(), "9000000001").Return(existing, nil).Times(1)
	deps.store.EXPECT().CreateParticipant(gomock.Any(), gomock.Any()).Times(0)

	participant, created, err := svc.RegisterParticipant(context.Background(), "Asha again", "9000000001")

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing, participant)
}

func TestRegisterParticipant_ConcurrentInsertReturnsWinner(t *testing.T) {
	svc, deps := newTestCrowdService(t, testConfig())
	winner := &models.Participant{ID: uuid.New(), Name: "Asha", Phone: "9000000001"}

	// первый поиск пуст, вставка упирается в уникальный индекс, повторный поиск находит запись
	gomock.InOrder(
		deps.store.EXPECT().FindParticipantByPhone(gomock.Any(), "9000000001").Return(nil, ErrParticipantNotFound),
		deps.store.EXPECT().CreateParticipant(gomock.Any(), gomock.Any()).Return(ErrDuplicatePhone),
		deps.store.EXPECT().FindParticipantByPhone(gomock.Any(), "9000000001").Return(winner, nil),
	)
	deps.cache.EXPECT().SetParticipantCache(gomock.Any(), gomock.Any()).Times(0)

	participant, created, err := svc.RegisterParticipant(context.Background(), "Asha", "9000000001")

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, winner, participant)
}

func TestRegisterParticipant_Validation(t *testing.T) {
	svc, _ := newTestCrowdService(t, testConfig())

	_, _, err := svc.RegisterParticipant(context.Background(), " ", "9000000001")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)

	_, _, err = svc.RegisterParticipant(context.Background(), "Asha", "")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "phone", vErr.Field)
}

func TestRegisterParticipant_StoreError(t *testing.T) {
	svc, deps := newTestCrowdService(t, testConfig())

	deps.store.EXPECT().
		FindParticipantByPhone(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused")).
		Times(1)

	_, _, err := svc.RegisterParticipant(context.Background(), "Asha", "9000000001")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestGetParticipant_FromCache(t *testing.T) {
	svc, deps := newTestCrowdService(t, testConfig())
	expected := &models.Participant{ID: uuid.New(), Name: "Asha"}

	deps.cache.EXPECT().GetParticipantFromCache(gomock.Any(), expected.ID).Return(expected, nil).Times(1)
	deps.store.EXPECT().GetParticipant(gomock.Any(), gomock.Any()).Times(0)

	participant, err := svc.GetParticipant(context.Background(), expected.ID)

	require.NoError(t, err)
	assert.Equal(t, expected, participant)
}

func TestGetParticipant_FromStore(t *testing.T) {
	svc, deps := newTestCrowdService(t, testConfig())
	expected := &models.Participant{ID: uuid.New(), Name: "Asha"}

	// 1. Промах кеша
	deps.cache.EXPECT().GetParticipantFromCache(gomock.Any(), expected.ID).Return(nil, nil).Times(1)
	// 2. Попадание в хранилище
	deps.store.EXPECT().GetParticipant(gomock.Any(), expected.ID).Return(expected, nil).Times(1)
	// 3. Запись в кеш
	deps.cache.EXPECT().SetParticipantCache(gomock.Any(), expected).Return(nil).Times(1)

	participant, err := svc.GetParticipant(context.Background(), expected.ID)

	require.NoError(t, err)
	assert.Equal(t, expected, participant)
}

func TestGetParticipant_CacheErrorFallsBackToStore(t *testing.T) {
	svc, deps := newTestCrowdService(t, testConfig())
	expected := &models.Participant{ID: uuid.New(), Name: "Asha"}

	deps.cache.EXPECT().GetParticipantFromCache(gomock.Any(), expected.ID).Return(nil, errors.New("redis down")).Times(1)
	deps.store.EXPECT().GetParticipant(gomock.Any(), expected.ID).Return(expected, nil).Times(1)
	deps.cache.EXPECT().SetParticipantCache(gomock.Any(), expected).Return(errors.New("redis down")).Times(1)

	participant, err := svc.GetParticipant(context.Background(), expected.ID)

	require.NoError(t, err)
	assert.Equal(t, expected, participant)
}

func TestGetParticipant_NotFound(t *testing.T) {
	svc, deps := newTestCrowdService(t, testConfig())
	id := uuid.New()

	deps.cache.EXPECT().GetParticipantFromCache(gomock.Any(), id).Return(nil, nil).Times(1)
	deps.store.EXPECT().GetParticipant(gomock.Any(), id).Return(nil, ErrParticipantNotFound).Times(1)

	participant, err := svc.GetParticipant(context.Background(), id)

	require.Error(t, err)
	assert.Nil(t, participant)
	assert.ErrorIs(t, err, ErrParticipantNotFound)
	assert.NotErrorIs(t, err, ErrStoreUnavailable)
}

func TestSubmitLocation_InvalidCoordinates(t *testing.T) {
	svc, deps := newTestCrowdService(t, testConfig())

	deps.store.EXPECT().AppendPing(gomock.Any(), gomock.Any()).Times(0)

	testCases := []struct {
		name     string
		lat, lon float64
	}{
		{"latitude too high", 90.5, 0},
		{"latitude too low", -91, 0},
		{"longitude too high", 0, 180.1},
		{"longitude too low", 0, -181},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.SubmitLocation(context.Background(), uuid.New(), tc.lat, tc.lon)

			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestSubmitLocation_UnknownParticipant(t *testing.T) {
	svc, deps := newTestCrowdService(t, testConfig())
	id := uuid.New()

	deps.cache.EXPECT().GetParticipantFromCache(gomock.Any(), id).Return(nil, nil).Times(1)
	deps.store.EXPECT().GetParticipant(gomock.Any(), id).Return(nil, ErrParticipantNotFound).Times(1)
	deps.store.EXPECT().AppendPing(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.SubmitLocation(context.Background(), id, 12.9716, 77.5946)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestSubmitLocation_LoneParticipantIsClear(t *testing.T) {
	svc, deps := newTestCrowdService(t, testConfig())
	asha, _, _ := trioParticipants()

	deps.cache.EXPECT().GetParticipantFromCache(gomock.Any(), asha.ID).Return(asha, nil).Times(1)
	deps.store.EXPECT().
		AppendPing(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ping *models.LocationPing) error {
			assert.Equal(t, asha.ID, ping.ParticipantID)
			assert.Equal(t, testNow, ping.ObservedAt)
			ping.ID = 7
			return nil
		}).
		Times(1)
	deps.store.EXPECT().
		LatestPingsSince(gomock.Any(), testNow.Add(-time.Minute)).
		Return([]models.ActiveParticipant{active(asha, 12.9716, 77.5946, testNow)}, nil).
		Times(1)
	deps.notifier.EXPECT().SendAlert(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	result, err := svc.SubmitLocation(context.Background(), asha.ID, 12.9716, 77.5946)

	require.NoError(t, err)
	assert.Equal(t, int64(7), result.PingID)
	assert.True(t, result.Accepted)
	assert.False(t, result.IsCrowded)
	assert.Equal(t, 1, result.NeighborCount)
	assert.Empty(t, result.AlertMessage)
	assert.Empty(t, result.ExitLink)
}

func TestSubmitLocation_TrioTriggersAlerts(t *testing.T) {
	svc, deps := newTestCrowdService(t, testConfig())
	asha, ravi, meera := trioParticipants()

	deps.cache.EXPECT().GetParticipantFromCache(gomock.Any(), meera.ID).Return(meera, nil).Times(1)
	deps.store.EXPECT().AppendPing(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	deps.store.EXPECT().
		LatestPingsSince(gomock.Any(), testNow.Add(-time.Minute)).
		Return([]models.ActiveParticipant{
			active(asha, 12.9716, 77.5946, testNow.Add(-20*time.Second)),
			active(ravi, 12.9717, 77.5946, testNow.Add(-10*time.Second)),
			active(meera, 12.9716, 77.5947, testNow),
		}, nil).
		Times(1)

	deps.notifier.EXPECT().SendAlert(gomock.Any(), "+919000000001", config.DefaultAlertMessage).Return(nil).Times(1)
	deps.notifier.EXPECT().SendAlert(gomock.Any(), "+919000000002", config.DefaultAlertMessage).Return(nil).Times(1)
	deps.notifier.EXPECT().SendAlert(gomock.Any(), "+919000000003", config.DefaultAlertMessage).Return(nil).Times(1)

	result, err := svc.SubmitLocation(context.Background(), meera.ID, 12.9716, 77.5947)

	require.NoError(t, err)
	assert.True(t, result.IsCrowded)
	assert.Equal(t, 3, result.NeighborCount)
	assert.Equal(t, config.DefaultAlertMessage, result.AlertMessage)
	assert.Equal(t, "https://www.google.com/maps/dir/?api=1&destination=12.9721,77.5933", result.ExitLink)
}

func TestSubmitLocation_ClientDisconnectStillAlerts(t *testing.T) {
	svc, deps := newTestCrowdService(t, testConfig())
	asha, ravi, meera := trioParticipants()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps.cache.EXPECT().GetParticipantFromCache(gomock.Any(), meera.ID).Return(meera, nil).Times(1)
	deps.store.EXPECT().AppendPing(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	deps.store.EXPECT().
		LatestPingsSince(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, time.Time) ([]models.ActiveParticipant, error) {
			// клиент отключился после чтения, но до рассылки
			cancel()
			return []models.ActiveParticipant{
				active(asha, 12.9716, 77.5946, testNow.Add(-20*time.Second)),
				active(ravi, 12.9717, 77.5946, testNow.Add(-10*time.Second)),
				active(meera, 12.9716, 77.5947, testNow),
			}, nil
		}).
		Times(1)

	// паблишеры отказываются отправлять по отмененному контексту
	deps.notifier.EXPECT().
		SendAlert(gomock.Any(), gomock.Any(), config.DefaultAlertMessage).
		DoAndReturn(func(sendCtx context.Context, _, _ string) error {
			assert.NoError(t, sendCtx.Err())
			return sendCtx.Err()
		}).
		Times(3)

	result, err := svc.SubmitLocation(ctx, meera.ID, 12.9716, 77.5947)

	require.NoError(t, err)
	assert.True(t, result.IsCrowded)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestSubmitLocation_NotifierFailureStillReturnsResult(t *testing.T) {
	svc, deps := newTestCrowdService(t, testConfig())
	asha, ravi, meera := trioParticipants()

	deps.cache.EXPECT().GetParticipantFromCache(gomock.Any(), asha.ID).Return(asha, nil).Times(1)
	deps.store.EXPECT().AppendPing(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	deps.store.EXPECT().
		LatestPingsSince(gomock.Any(), gomock.Any()).
		Return([]models.ActiveParticipant{
			active(asha, 12.9716, 77.5946, testNow),
			active(ravi, 12.9717, 77.5946, testNow),
			active(meera, 12.9716, 77.5947, testNow),
		}, nil).
		Times(1)
	deps.notifier.EXPECT().SendAlert(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("queue full")).Times(3)

	result, err := svc.SubmitLocation(context.Background(), asha.ID, 12.9716, 77.5946)

	require.NoError(t, err)
	assert.True(t, result.IsCrowded)
}

func TestSubmitLocation_AgedOutNeighborNotCounted(t *testing.T) {
	svc, deps := newTestCrowdService(t, testConfig())
	asha, ravi, meera := trioParticipants()

	deps.cache.EXPECT().GetParticipantFromCache(gomock.Any(), asha.ID).Return(asha, nil).Times(1)
	deps.store.EXPECT().AppendPing(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	deps.store.EXPECT().
		LatestPingsSince(gomock.Any(), gomock.Any()).
		Return([]models.ActiveParticipant{
			active(asha, 12.9716, 77.5946, testNow),
			active(ravi, 12.9717, 77.5946, testNow.Add(-30*time.Second)),
			// вне минутного окна
			active(meera, 12.9716, 77.5947, testNow.Add(-90*time.Second)),
		}, nil).
		Times(1)
	deps.notifier.EXPECT().SendAlert(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	result, err := svc.SubmitLocation(context.Background(), asha.ID, 12.9716, 77.5946)

	require.NoError(t, err)
	assert.False(t, result.IsCrowded)
	assert.Equal(t, 2, result.NeighborCount)
}

func TestSubmitLocation_WithoutExitOmitsLink(t *testing.T) {
	cfg := testConfig()
	cfg.ExitLatitude, cfg.ExitLongitude = nil, nil
	cfg.CrowdThreshold = 1
	svc, deps := newTestCrowdService(t, cfg)
	asha, _, _ := trioParticipants()

	deps.cache.EXPECT().GetParticipantFromCache(gomock.Any(), asha.ID).Return(asha, nil).Times(1)
	deps.store.EXPECT().AppendPing(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	deps.store.EXPECT().
		LatestPingsSince(gomock.Any(), gomock.Any()).
		Return([]models.ActiveParticipant{active(asha, 12.9716, 77.5946, testNow)}, nil).
		Times(1)
	deps.notifier.EXPECT().SendAlert(gomock.Any(), "+919000000001", gomock.Any()).Return(nil).Times(1)

	result, err := svc.SubmitLocation(context.Background(), asha.ID, 12.9716, 77.5946)

	require.NoError(t, err)
	assert.True(t, result.IsCrowded)
	assert.Empty(t, result.ExitLink)
}

func TestSubmitLocation_AppendFailure(t *testing.T) {
	svc, deps := newTestCrowdService(t, testConfig())
	asha, _, _ := trioParticipants()

	deps.cache.EXPECT().GetParticipantFromCache(gomock.Any(), asha.ID).Return(asha, nil).Times(1)
	deps.store.EXPECT().AppendPing(gomock.Any(), gomock.Any()).Return(errors.New("disk full")).Times(1)
	deps.store.EXPECT().LatestPingsSince(gomock.Any(), gomock.Any()).Times(0)

	result, err := svc.SubmitLocation(context.Background(), asha.ID, 12.9716, 77.5946)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestGetActiveSnapshot(t *testing.T) {
	svc, deps := newTestCrowdService(t, testConfig())
	asha, ravi, meera := trioParticipants()
	loner := &models.Participant{ID: uuid.New(), Name: "Kiran", Phone: "9000000004"}

	deps.store.EXPECT().
		LatestPingsSince(gomock.Any(), testNow.Add(-2*time.Minute)).
		Return([]models.ActiveParticipant{
			active(asha, 12.9716, 77.5946, testNow.Add(-100*time.Second)),
			active(ravi, 12.9717, 77.5946, testNow.Add(-10*time.Second)),
			active(meera, 12.9716, 77.5947, testNow.Add(-5*time.Second)),
			active(loner, 12.9800, 77.6000, testNow.Add(-1*time.Second)),
		}, nil).
		Times(1)

	snapshot, err := svc.GetActiveSnapshot(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, snapshot.TotalActive)
	assert.Equal(t, 3, snapshot.CrowdZones)
	assert.Equal(t, testNow, snapshot.GeneratedAt)
	require.Len(t, snapshot.Participants, 4)

	byName := make(map[string]models.ParticipantStatus, len(snapshot.Participants))
	for _, p := range snapshot.Participants {
		byName[p.Name] = p
	}
	assert.True(t, byName["Asha"].IsCrowded)
	assert.Equal(t, 3, byName["Ravi"].NeighborCount)
	assert.False(t, byName["Kiran"].IsCrowded)
	assert.Equal(t, 1, byName["Kiran"].NeighborCount)
}

func TestGetActiveSnapshot_StoreError(t *testing.T) {
	svc, deps := newTestCrowdService(t, testConfig())

	deps.store.EXPECT().LatestPingsSince(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout")).Times(1)

	snapshot, err := svc.GetActiveSnapshot(context.Background())

	require.Error(t, err)
	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
