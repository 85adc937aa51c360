package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/hroffice/hroffice_backend/internal/apperrors"
	"github.com/hroffice/hroffice_backend/internal/core/domain"
)

func generalAttachment(liquidationID string) domain.Attachment {
	return domain.Attachment{
		AttachmentID:  uuid.NewString(),
		LiquidationID: liquidationID,
		Kind:          domain.BindingGeneral,
		FileName:      "summary.pdf",
		FileRef:       "obj-" + uuid.NewString(),
	}
}

func itemAttachment(liquidationID, itemID string) domain.Attachment {
	return domain.Attachment{
		AttachmentID:  uuid.NewString(),
		LiquidationID: liquidationID,
		Kind:          domain.BindingItem,
		ItemID:        &itemID,
		FileName:      "receipt.jpg",
		FileRef:       "obj-" + uuid.NewString(),
	}
}

func TestReconcileAttachments_AddGeneralAndItemBound(t *testing.T) {
	liquidationID := uuid.NewString()
	itemID := uuid.NewString()
	items := map[string]struct{}{itemID: {}}
	now := time.Now().UTC()

	final, removed, err := domain.ReconcileAttachments(liquidationID, nil, domain.AttachmentInstructions{
		Add: []domain.NewReceipt{
			{FileName: "summary.pdf", FileRef: "obj-1"},
			{FileName: "gas.jpg", FileRef: "obj-2", ItemID: &itemID},
		},
	}, items, "actor", now)

	assert.NoError(t, err)
	assert.Empty(t, removed)
	assert.Len(t, final, 2)
	assert.Equal(t, domain.BindingGeneral, final[0].Kind)
	assert.Nil(t, final[0].ItemID)
	assert.Equal(t, domain.BindingItem, final[1].Kind)
	assert.Equal(t, itemID, *final[1].ItemID)
	assert.Equal(t, liquidationID, final[1].LiquidationID)
	assert.Equal(t, "actor", final[1].CreatedBy)
}

func TestReconcileAttachments_UnknownIDs(t *testing.T) {
	liquidationID := uuid.NewString()
	current := []domain.Attachment{generalAttachment(liquidationID)}

	_, _, err := domain.ReconcileAttachments(liquidationID, current, domain.AttachmentInstructions{
		KeepIDs: []string{"no-such-attachment"},
	}, nil, "actor", time.Now().UTC())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, _, err = domain.ReconcileAttachments(liquidationID, current, domain.AttachmentInstructions{
		RemoveIDs: []string{"no-such-attachment"},
	}, nil, "actor", time.Now().UTC())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReconcileAttachments_RemoveReturnsRemoved(t *testing.T) {
	liquidationID := uuid.NewString()
	keep := generalAttachment(liquidationID)
	gone := generalAttachment(liquidationID)

	final, removed, err := domain.ReconcileAttachments(liquidationID, []domain.Attachment{keep, gone}, domain.AttachmentInstructions{
		KeepIDs:   []string{keep.AttachmentID},
		RemoveIDs: []string{gone.AttachmentID},
	}, nil, "actor", time.Now().UTC())

	assert.NoError(t, err)
	assert.Len(t, final, 1)
	assert.Equal(t, keep.AttachmentID, final[0].AttachmentID)
	assert.Len(t, removed, 1)
	assert.Equal(t, gone.FileRef, removed[0].FileRef, "removed attachments carry the storage ref for cleanup")
}

func TestReconcileAttachments_UnmentionedAttachmentsSurvive(t *testing.T) {
	liquidationID := uuid.NewString()
	untouched := generalAttachment(liquidationID)

	final, removed, err := domain.ReconcileAttachments(liquidationID, []domain.Attachment{untouched}, domain.AttachmentInstructions{}, nil, "actor", time.Now().UTC())

	assert.NoError(t, err)
	assert.Empty(t, removed)
	assert.Len(t, final, 1)
	assert.Equal(t, untouched.AttachmentID, final[0].AttachmentID)
}

func TestReconcileAttachments_DanglingSurvivorFails(t *testing.T) {
	liquidationID := uuid.NewString()
	orphan := itemAttachment(liquidationID, "removed-item")
	newItems := map[string]struct{}{uuid.NewString(): {}}

	_, _, err := domain.ReconcileAttachments(liquidationID, []domain.Attachment{orphan}, domain.AttachmentInstructions{}, newItems, "actor", time.Now().UTC())
	assert.ErrorIs(t, err, apperrors.ErrDanglingAttachment)

	// Removing the orphan instead is legal.
	final, removed, err := domain.ReconcileAttachments(liquidationID, []domain.Attachment{orphan}, domain.AttachmentInstructions{
		RemoveIDs: []string{orphan.AttachmentID},
	}, newItems, "actor", time.Now().UTC())
	assert.NoError(t, err)
	assert.Empty(t, final)
	assert.Len(t, removed, 1)
}

func TestReconcileAttachments_AddToUnknownItemFails(t *testing.T) {
	liquidationID := uuid.NewString()
	badItem := "not-an-item"

	_, _, err := domain.ReconcileAttachments(liquidationID, nil, domain.AttachmentInstructions{
		Add: []domain.NewReceipt{{FileName: "x.jpg", FileRef: "obj-9", ItemID: &badItem}},
	}, map[string]struct{}{}, "actor", time.Now().UTC())
	assert.ErrorIs(t, err, apperrors.ErrInvalidBinding)
}
