package domain

import (
	"fmt"

	"github.com/hroffice/hroffice_backend/internal/apperrors"
)

// BindingKind discriminates what a receipt attachment is bound to: the
// liquidation as a whole, or one specific expense item.
type BindingKind string

const (
	BindingGeneral BindingKind = "GENERAL"
	BindingItem    BindingKind = "ITEM"
)

// Attachment is the metadata row for a receipt file. Content bytes live in
// the external storage collaborator; the core owns only the metadata and its
// binding. ItemID is set if and only if Kind == BindingItem.
type Attachment struct {
	AttachmentID  string      `json:"attachmentID"` // Primary Key (UUID)
	LiquidationID string      `json:"liquidationID"`
	Kind          BindingKind `json:"kind"`
	ItemID        *string     `json:"itemID,omitempty"`
	FileName      string      `json:"fileName"`
	FileType      string      `json:"fileType"` // MIME type
	FileSize      int64       `json:"fileSize"`
	FileRef       string      `json:"fileRef"` // storage object key
	AuditFields
}

// IsItemLevel reports whether the attachment is bound to a specific item.
func (a *Attachment) IsItemLevel() bool {
	return a.Kind == BindingItem
}

// BindToItem rebinds the attachment to an item of the current item set.
// Fails with ErrInvalidBinding if the item is not part of the set, which
// prevents orphaned bindings after an item-set replacement.
func (a *Attachment) BindToItem(itemID string, currentItems map[string]struct{}) error {
	if _, ok := currentItems[itemID]; !ok {
		return fmt.Errorf("%w: item %s does not belong to liquidation %s", apperrors.ErrInvalidBinding, itemID, a.LiquidationID)
	}
	a.Kind = BindingItem
	a.ItemID = &itemID
	return nil
}
