package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hroffice/hroffice_backend/internal/apperrors"
)

// NewReceipt describes a file that was already uploaded to storage and is to
// be recorded against the liquidation. A nil ItemID records a general
// attachment; a non-nil one binds it to that expense item.
type NewReceipt struct {
	FileName string
	FileType string
	FileSize int64
	FileRef  string
	ItemID   *string
}

// AttachmentInstructions are an edit's keep / remove / add decisions over the
// current attachment set. Attachments not mentioned at all are left untouched.
type AttachmentInstructions struct {
	KeepIDs   []string
	RemoveIDs []string
	Add       []NewReceipt
}

// ReconcileAttachments folds an edit's instructions into the final attachment
// set against the (possibly replaced) item set.
//
// Rules:
//   - every KeepID and RemoveID must name an attachment of this liquidation,
//     else ErrNotFound;
//   - surviving item-level attachments must still point into currentItems,
//     else ErrDanglingAttachment (the caller must remove or re-bind them
//     explicitly when replacing items);
//   - added item-level receipts must bind into currentItems, else ErrInvalidBinding.
//
// It returns the final set and the attachments that were removed, so the
// caller can delete their storage objects after the metadata commit.
func ReconcileAttachments(liquidationID string, current []Attachment, instr AttachmentInstructions, currentItems map[string]struct{}, actorID string, now time.Time) (final []Attachment, removed []Attachment, err error) {
	byID := make(map[string]Attachment, len(current))
	for _, att := range current {
		byID[att.AttachmentID] = att
	}

	for _, id := range instr.KeepIDs {
		if _, ok := byID[id]; !ok {
			return nil, nil, fmt.Errorf("%w: attachment %s does not belong to liquidation %s", apperrors.ErrNotFound, id, liquidationID)
		}
	}

	removeSet := make(map[string]struct{}, len(instr.RemoveIDs))
	for _, id := range instr.RemoveIDs {
		if _, ok := byID[id]; !ok {
			return nil, nil, fmt.Errorf("%w: attachment %s does not belong to liquidation %s", apperrors.ErrNotFound, id, liquidationID)
		}
		removeSet[id] = struct{}{}
	}

	final = make([]Attachment, 0, len(current)+len(instr.Add))
	removed = make([]Attachment, 0, len(removeSet))
	for _, att := range current {
		if _, gone := removeSet[att.AttachmentID]; gone {
			removed = append(removed, att)
			continue
		}
		if att.IsItemLevel() {
			if _, ok := currentItems[*att.ItemID]; !ok {
				return nil, nil, fmt.Errorf("%w: attachment %s is bound to removed item %s", apperrors.ErrDanglingAttachment, att.AttachmentID, *att.ItemID)
			}
		}
		final = append(final, att)
	}

	for _, nr := range instr.Add {
		att := Attachment{
			AttachmentID:  uuid.NewString(),
			LiquidationID: liquidationID,
			Kind:          BindingGeneral,
			FileName:      nr.FileName,
			FileType:      nr.FileType,
			FileSize:      nr.FileSize,
			FileRef:       nr.FileRef,
			AuditFields: AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
		if nr.ItemID != nil {
			if err := att.BindToItem(*nr.ItemID, currentItems); err != nil {
				return nil, nil, err
			}
		}
		final = append(final, att)
	}

	return final, removed, nil
}
