package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/venue-compass/internal/pkg/errors"
	"github.com/venue-compass/internal/usecase"
	"github.com/venue-compass/internal/usecase/dto"
)

func fullCapsRequest() dto.StartHeadingSessionRequest {
	return dto.StartHeadingSessionRequest{
		RotationSensor:    true,
		Accelerometer:     true,
		Magnetometer:      true,
		OrientationEvents: true,
	}
}

func TestHeadingUseCase_Sessions(t *testing.T) {
	logger := zap.NewNop()

	t.Run("start picks best available provider", func(t *testing.T) {
		uc := usecase.NewHeadingUseCase(logger)

		session, err := uc.StartSession(fullCapsRequest())
		require.NoError(t, err)
		assert.NotEmpty(t, session.SessionID)
		assert.Equal(t, "rotation", session.Provider)
	})

	t.Run("denied permission rejects the session", func(t *testing.T) {
		uc := usecase.NewHeadingUseCase(logger)

		req := fullCapsRequest()
		req.RequiresPermission = true
		req.PermissionGranted = false

		_, err := uc.StartSession(req)
		assert.ErrorIs(t, err, errors.ErrOrientationDenied)
	})

	t.Run("no sensors at all is unsupported", func(t *testing.T) {
		uc := usecase.NewHeadingUseCase(logger)

		_, err := uc.StartSession(dto.StartHeadingSessionRequest{})
		assert.ErrorIs(t, err, errors.ErrOrientationUnsupported)
	})

	t.Run("push sample returns smoothed heading", func(t *testing.T) {
		uc := usecase.NewHeadingUseCase(logger)

		session, err := uc.StartSession(fullCapsRequest())
		require.NoError(t, err)

		// Кватернион без вращения - курс на север
		resp, err := uc.PushSample(session.SessionID, dto.PushSampleRequest{
			Quaternion: []float64{1, 0, 0, 0},
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Heading)
		assert.InDelta(t, 0, *resp.Heading, 1e-9)
		assert.Equal(t, "rotation", resp.Provider)
	})

	t.Run("sample without readings is suppressed", func(t *testing.T) {
		uc := usecase.NewHeadingUseCase(logger)

		session, err := uc.StartSession(fullCapsRequest())
		require.NoError(t, err)

		resp, err := uc.PushSample(session.SessionID, dto.PushSampleRequest{})
		require.NoError(t, err)
		assert.Nil(t, resp.Heading)
	})

	t.Run("report error downgrades through the cascade", func(t *testing.T) {
		uc := usecase.NewHeadingUseCase(logger)

		session, err := uc.StartSession(fullCapsRequest())
		require.NoError(t, err)

		downgraded, err := uc.ReportError(session.SessionID, dto.ReportSensorErrorRequest{Message: "sensor failed"})
		require.NoError(t, err)
		assert.Equal(t, "magnetometer", downgraded.Provider)

		downgraded, err = uc.ReportError(session.SessionID, dto.ReportSensorErrorRequest{Message: "sensor failed"})
		require.NoError(t, err)
		assert.Equal(t, "orientation", downgraded.Provider)

		_, err = uc.ReportError(session.SessionID, dto.ReportSensorErrorRequest{Message: "sensor failed"})
		assert.ErrorIs(t, err, errors.ErrOrientationUnsupported)
	})

	t.Run("stop removes the session", func(t *testing.T) {
		uc := usecase.NewHeadingUseCase(logger)

		session, err := uc.StartSession(fullCapsRequest())
		require.NoError(t, err)

		require.NoError(t, uc.StopSession(session.SessionID))

		_, err = uc.PushSample(session.SessionID, dto.PushSampleRequest{
			Quaternion: []float64{1, 0, 0, 0},
		})
		assert.ErrorIs(t, err, errors.ErrSessionNotFound)

		assert.ErrorIs(t, uc.StopSession(session.SessionID), errors.ErrSessionNotFound)
	})

	t.Run("unknown session id", func(t *testing.T) {
		uc := usecase.NewHeadingUseCase(logger)

		_, err := uc.PushSample("not-a-uuid", dto.PushSampleRequest{})
		assert.ErrorIs(t, err, errors.ErrSessionNotFound)
	})
}
