package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prospel/prospel_backend/internal/apperrors"
	"github.com/prospel/prospel_backend/internal/core/domain"
	portsrepo "github.com/prospel/prospel_backend/internal/core/ports/repositories"
	"github.com/prospel/prospel_backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	userRepo portsrepo.UserReader
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// requireUser resolves the requesting user and rejects inactive accounts.
func (s *BaseService) requireUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to resolve requesting user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// requireWriter rejects roles that may not create or modify ledger entries.
func (s *BaseService) requireWriter(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.CanWrite() {
		return nil, apperrors.ErrForbidden
	}
	return user, nil
}

// requirePaymentRecorder rejects roles that may not mark items paid.
func (s *BaseService) requirePaymentRecorder(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.CanRecordPayments() {
		return nil, apperrors.ErrForbidden
	}
	return user, nil
}

// requireAdmin rejects everyone but admins.
func (s *BaseService) requireAdmin(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}
	return user, nil
}
