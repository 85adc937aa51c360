package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/hroffice/hroffice_backend/internal/apperrors"
	"github.com/hroffice/hroffice_backend/internal/core/domain"
	"github.com/hroffice/hroffice_backend/internal/core/services"
)

func TestHasCapability(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	svc := services.NewAuthzService(mockRepo)

	adminID := uuid.NewString()
	employeeID := uuid.NewString()
	ghostID := uuid.NewString()

	mockRepo.On("FindUserByID", ctx, adminID).Return(&domain.User{UserID: adminID, Role: domain.RoleHRAdmin}, nil)
	mockRepo.On("FindUserByID", ctx, employeeID).Return(&domain.User{UserID: employeeID, Role: domain.RoleEmployee}, nil)
	mockRepo.On("FindUserByID", ctx, ghostID).Return(nil, apperrors.ErrNotFound)

	assert.NoError(t, svc.HasCapability(ctx, adminID, domain.CapManageLiquidation))
	assert.ErrorIs(t, svc.HasCapability(ctx, employeeID, domain.CapApproveLevel1), apperrors.ErrForbidden)
	assert.ErrorIs(t, svc.HasCapability(ctx, ghostID, domain.CapManageUsers), apperrors.ErrNotFound)
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, domain.RoleApproverL1.HasCapability(domain.CapApproveLevel1))
	assert.False(t, domain.RoleApproverL1.HasCapability(domain.CapApproveLevel2))
	assert.True(t, domain.RoleApproverL2.HasCapability(domain.CapApproveLevel2))
	assert.False(t, domain.RoleEmployee.HasCapability(domain.CapManageLiquidation))
	assert.True(t, domain.RoleHRAdmin.HasCapability(domain.CapApproveCashAdv))
}
