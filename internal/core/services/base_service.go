package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/expense_ledger/internal/apperrors"
	"github.com/SscSPs/expense_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/expense_ledger/internal/core/ports/services"
	"github.com/SscSPs/expense_ledger/internal/middleware"
)

// systemUserID is recorded as the actor for changes made by batch jobs.
const systemUserID = "system"

// BaseService provides common functionality for all services
type BaseService struct {
	OrganizationAuthorizer portssvc.OrganizationAuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeUser checks that a user holds one of the allowed roles in an organization.
func (s *BaseService) AuthorizeUser(ctx context.Context, userID, organizationID string, allowed ...domain.OrganizationRole) error {
	if s.OrganizationAuthorizer == nil {
		s.LogWarn(ctx, "No organization authorizer configured, denying access",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID))
		return fmt.Errorf("%w: authorization is not configured", apperrors.ErrForbidden)
	}
	_, err := s.OrganizationAuthorizer.AuthorizeUserAction(ctx, userID, organizationID, allowed...)
	return err
}
