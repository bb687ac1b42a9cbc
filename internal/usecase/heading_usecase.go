package usecase

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/venue-compass/internal/domain"
	"github.com/venue-compass/internal/heading"
	"github.com/venue-compass/internal/pkg/errors"
	"github.com/venue-compass/internal/usecase/dto"
)

// HeadingUseCase - use case для сессий оценки курса компаса
type HeadingUseCase struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*heading.Estimator
	logger   *zap.Logger
}

// NewHeadingUseCase - создание нового HeadingUseCase
func NewHeadingUseCase(logger *zap.Logger) *HeadingUseCase {
	return &HeadingUseCase{
		sessions: make(map[uuid.UUID]*heading.Estimator),
		logger:   logger,
	}
}

// StartSession открывает сессию и выбирает каскад провайдеров
// по заявленным возможностям устройства
func (uc *HeadingUseCase) StartSession(req dto.StartHeadingSessionRequest) (*dto.HeadingSessionResponse, error) {
	caps := domain.OrientationCapabilities{
		RotationSensor:     req.RotationSensor,
		Accelerometer:      req.Accelerometer,
		Magnetometer:       req.Magnetometer,
		OrientationEvents:  req.OrientationEvents,
		RequiresPermission: req.RequiresPermission,
		PermissionGranted:  req.PermissionGranted,
	}

	estimator, err := heading.NewEstimator(caps)
	if err != nil {
		return nil, mapHeadingError(err)
	}

	id := uuid.New()
	uc.mu.Lock()
	uc.sessions[id] = estimator
	uc.mu.Unlock()

	uc.logger.Info("Heading session started",
		zap.String("session_id", id.String()),
		zap.String("provider", string(estimator.Provider())),
	)

	return &dto.HeadingSessionResponse{
		SessionID: id.String(),
		Provider:  string(estimator.Provider()),
	}, nil
}

// PushSample обрабатывает пакет показаний датчиков и возвращает
// сглаженный курс; nil heading означает подавленный пакет
func (uc *HeadingUseCase) PushSample(sessionID string, req dto.PushSampleRequest) (*dto.HeadingResponse, error) {
	id, estimator, err := uc.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sample := domain.OrientationSample{
		Quaternion:    req.Quaternion,
		Alpha:         req.Alpha,
		Beta:          req.Beta,
		Gamma:         req.Gamma,
		Absolute:      req.Absolute,
		VendorHeading: req.VendorHeading,
		ScreenAngle:   req.ScreenAngle,
	}
	if req.Accelerometer != nil {
		sample.Accelerometer = &domain.Vector3{
			X: req.Accelerometer.X, Y: req.Accelerometer.Y, Z: req.Accelerometer.Z,
		}
	}
	if req.Magnetometer != nil {
		sample.Magnetometer = &domain.Vector3{
			X: req.Magnetometer.X, Y: req.Magnetometer.Y, Z: req.Magnetometer.Z,
		}
	}

	reading, err := estimator.Push(sample)
	if err != nil {
		return nil, mapHeadingError(err)
	}

	resp := &dto.HeadingResponse{
		SessionID: id.String(),
		Provider:  string(estimator.Provider()),
	}
	if reading != nil {
		resp.Heading = &reading.Heading
		resp.Provider = string(reading.Provider)
	}
	return resp, nil
}

// ReportError понижает сессию до следующего провайдера в каскаде
func (uc *HeadingUseCase) ReportError(sessionID string, req dto.ReportSensorErrorRequest) (*dto.HeadingSessionResponse, error) {
	id, estimator, err := uc.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	provider, err := estimator.ReportProviderError(req.Message)
	if err != nil {
		uc.logger.Warn("Heading providers exhausted",
			zap.String("session_id", id.String()),
			zap.String("reason", req.Message),
		)
		return nil, mapHeadingError(err)
	}

	uc.logger.Info("Heading provider downgraded",
		zap.String("session_id", id.String()),
		zap.String("provider", string(provider)),
		zap.String("reason", req.Message),
	)

	return &dto.HeadingSessionResponse{
		SessionID: id.String(),
		Provider:  string(provider),
	}, nil
}

// StopSession останавливает и удаляет сессию
func (uc *HeadingUseCase) StopSession(sessionID string) error {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return errors.ErrSessionNotFound
	}

	uc.mu.Lock()
	estimator, ok := uc.sessions[id]
	if ok {
		delete(uc.sessions, id)
	}
	uc.mu.Unlock()

	if !ok {
		return errors.ErrSessionNotFound
	}

	estimator.Stop()
	uc.logger.Info("Heading session stopped", zap.String("session_id", id.String()))
	return nil
}

func (uc *HeadingUseCase) lookup(sessionID string) (uuid.UUID, *heading.Estimator, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return uuid.Nil, nil, errors.ErrSessionNotFound
	}

	uc.mu.RLock()
	estimator, ok := uc.sessions[id]
	uc.mu.RUnlock()
	if !ok {
		return uuid.Nil, nil, errors.ErrSessionNotFound
	}
	return id, estimator, nil
}

// mapHeadingError переводит ошибки каскада в ошибки API
func mapHeadingError(err error) error {
	switch err {
	case heading.ErrUnsupported, heading.ErrProvidersExhausted:
		return errors.ErrOrientationUnsupported
	case heading.ErrPermissionDenied:
		return errors.ErrOrientationDenied
	default:
		// Некорректный сэмпл (например, битый кватернион)
		return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}
}
