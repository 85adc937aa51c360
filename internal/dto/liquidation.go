package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hroffice/hroffice_backend/internal/core/domain"
)

// LiquidationItemRequest is one expense line of a file/edit payload.
// Category amounts must be non-negative; negative values fail validation.
type LiquidationItemRequest struct {
	ExpenseDate     time.Time       `json:"expenseDate" binding:"required"`
	FromDestination string          `json:"fromDestination"`
	ToDestination   string          `json:"toDestination"`
	Jeep            decimal.Decimal `json:"jeep" binding:"gte=0"`
	Bus             decimal.Decimal `json:"bus" binding:"gte=0"`
	FxVan           decimal.Decimal `json:"fxVan" binding:"gte=0"`
	Gas             decimal.Decimal `json:"gas" binding:"gte=0"`
	Toll            decimal.Decimal `json:"toll" binding:"gte=0"`
	Meals           decimal.Decimal `json:"meals" binding:"gte=0"`
	Lodging         decimal.Decimal `json:"lodging" binding:"gte=0"`
	Others          decimal.Decimal `json:"others" binding:"gte=0"`
	Remarks         string          `json:"remarks"`
}

// NewReceiptRequest records an already-uploaded receipt against the
// liquidation. ItemIndex, when set, binds the receipt to the item at that
// position in the request's items array (item IDs are server-generated, so
// positions are the only stable handle the caller has at submit time).
type NewReceiptRequest struct {
	FileName  string `json:"fileName" binding:"required"`
	FileType  string `json:"fileType"`
	FileSize  int64  `json:"fileSize" binding:"gte=0"`
	FileRef   string `json:"fileRef" binding:"required"`
	ItemIndex *int   `json:"itemIndex,omitempty"`
}

// AttachmentInstructionsRequest carries an edit's keep/remove/add decisions.
type AttachmentInstructionsRequest struct {
	KeepIDs   []string            `json:"keepIDs"`
	RemoveIDs []string            `json:"removeIDs"`
	Add       []NewReceiptRequest `json:"add" binding:"omitempty,dive"`
}

// FileLiquidationRequest files a liquidation against a cash advance.
type FileLiquidationRequest struct {
	CashAdvanceID   string                   `json:"cashAdvanceID" binding:"required"`
	StoreID         string                   `json:"storeID" binding:"required"`
	TicketID        *string                  `json:"ticketID,omitempty"`
	LiquidationDate time.Time                `json:"liquidationDate" binding:"required"`
	Remarks         string                   `json:"remarks"`
	Items           []LiquidationItemRequest `json:"items" binding:"required,min=1,dive"`
	Attachments     []NewReceiptRequest      `json:"attachments" binding:"omitempty,dive"`
}

// EditLiquidationRequest fully replaces the item set and reconciles attachments.
type EditLiquidationRequest struct {
	Remarks     string                        `json:"remarks"`
	Items       []LiquidationItemRequest      `json:"items" binding:"required,min=1,dive"`
	Attachments AttachmentInstructionsRequest `json:"attachments"`
}

// DecideLiquidationRequest applies an approval decision at one level.
type DecideLiquidationRequest struct {
	Level   int    `json:"level" binding:"required,oneof=1 2"`
	Action  string `json:"action" binding:"required,oneof=APPROVE REJECT"`
	Comment string `json:"comment"`
}

// ListLiquidationsParams filters and pages a listing.
type ListLiquidationsParams struct {
	Status     *string `form:"status"`
	StoreID    *string `form:"storeID"`
	EmployeeID *string `form:"employeeID"`
	Limit      int     `form:"limit"`
	NextToken  *string `form:"nextToken"`
}

// LevelReviewResponse is one level's audit record.
type LevelReviewResponse struct {
	ReviewedBy string    `json:"reviewedBy"`
	ReviewedAt time.Time `json:"reviewedAt"`
	Comment    string    `json:"comment"`
}

// LiquidationItemResponse is one expense line with its derived total.
type LiquidationItemResponse struct {
	ItemID          string          `json:"itemID"`
	ExpenseDate     time.Time       `json:"expenseDate"`
	FromDestination string          `json:"fromDestination"`
	ToDestination   string          `json:"toDestination"`
	Jeep            decimal.Decimal `json:"jeep"`
	Bus             decimal.Decimal `json:"bus"`
	FxVan           decimal.Decimal `json:"fxVan"`
	Gas             decimal.Decimal `json:"gas"`
	Toll            decimal.Decimal `json:"toll"`
	Meals           decimal.Decimal `json:"meals"`
	Lodging         decimal.Decimal `json:"lodging"`
	Others          decimal.Decimal `json:"others"`
	Remarks         string          `json:"remarks"`
	Total           decimal.Decimal `json:"total"`
}

// AttachmentResponse is receipt metadata; URL is a short-lived signed link.
type AttachmentResponse struct {
	AttachmentID string  `json:"attachmentID"`
	Kind         string  `json:"kind"`
	ItemID       *string `json:"itemID,omitempty"`
	FileName     string  `json:"fileName"`
	FileType     string  `json:"fileType"`
	FileSize     int64   `json:"fileSize"`
	URL          string  `json:"url,omitempty"`
}

// LiquidationResponse is the full aggregate view.
type LiquidationResponse struct {
	LiquidationID     string                    `json:"liquidationID"`
	CashAdvanceID     string                    `json:"cashAdvanceID"`
	EmployeeID        string                    `json:"employeeID"`
	StoreID           string                    `json:"storeID"`
	TicketID          *string                   `json:"ticketID,omitempty"`
	LiquidationDate   time.Time                 `json:"liquidationDate"`
	Remarks           string                    `json:"remarks"`
	Status            string                    `json:"status"`
	CashAdvanceAmount decimal.Decimal           `json:"cashAdvanceAmount"`
	TotalAmount       decimal.Decimal           `json:"totalAmount"`
	ReturnToCompany   decimal.Decimal           `json:"returnToCompany"`
	Reimbursement     decimal.Decimal           `json:"reimbursement"`
	Items             []LiquidationItemResponse `json:"items,omitempty"`
	Attachments       []AttachmentResponse      `json:"attachments,omitempty"`
	Level1            *LevelReviewResponse      `json:"level1,omitempty"`
	Level2            *LevelReviewResponse      `json:"level2,omitempty"`
	Version           int64                     `json:"version"`
	CreatedAt         time.Time                 `json:"createdAt"`
	CreatedBy         string                    `json:"createdBy"`
}

// ListLiquidationsResponse is a page of liquidation headers.
type ListLiquidationsResponse struct {
	Liquidations []LiquidationResponse `json:"liquidations"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// UploadReceiptResponse returns the storage handle for a freshly uploaded file.
type UploadReceiptResponse struct {
	FileRef  string `json:"fileRef"`
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	FileSize int64  `json:"fileSize"`
}

// ToLevelReviewResponse converts a domain review record.
func ToLevelReviewResponse(r *domain.LevelReview) *LevelReviewResponse {
	if r == nil {
		return nil
	}
	return &LevelReviewResponse{ReviewedBy: r.ReviewedBy, ReviewedAt: r.ReviewedAt, Comment: r.Comment}
}

// ToLiquidationItemResponse converts a domain item.
func ToLiquidationItemResponse(item *domain.LiquidationItem) LiquidationItemResponse {
	return LiquidationItemResponse{
		ItemID:          item.ItemID,
		ExpenseDate:     item.ExpenseDate,
		FromDestination: item.FromDestination,
		ToDestination:   item.ToDestination,
		Jeep:            item.Jeep,
		Bus:             item.Bus,
		FxVan:           item.FxVan,
		Gas:             item.Gas,
		Toll:            item.Toll,
		Meals:           item.Meals,
		Lodging:         item.Lodging,
		Others:          item.Others,
		Remarks:         item.Remarks,
		Total:           item.Total(),
	}
}

// ToAttachmentResponse converts attachment metadata; the signed URL is filled
// in by the service, which owns the storage collaborator.
func ToAttachmentResponse(att *domain.Attachment) AttachmentResponse {
	return AttachmentResponse{
		AttachmentID: att.AttachmentID,
		Kind:         string(att.Kind),
		ItemID:       att.ItemID,
		FileName:     att.FileName,
		FileType:     att.FileType,
		FileSize:     att.FileSize,
	}
}

// ToLiquidationResponse converts the aggregate.
func ToLiquidationResponse(l *domain.Liquidation) LiquidationResponse {
	resp := LiquidationResponse{
		LiquidationID:     l.LiquidationID,
		CashAdvanceID:     l.CashAdvanceID,
		EmployeeID:        l.EmployeeID,
		StoreID:           l.StoreID,
		TicketID:          l.TicketID,
		LiquidationDate:   l.LiquidationDate,
		Remarks:           l.Remarks,
		Status:            string(l.Status),
		CashAdvanceAmount: l.CashAdvanceAmount,
		TotalAmount:       l.TotalAmount,
		ReturnToCompany:   l.ReturnToCompany,
		Reimbursement:     l.Reimbursement,
		Level1:            ToLevelReviewResponse(l.Level1),
		Level2:            ToLevelReviewResponse(l.Level2),
		Version:           l.Version,
		CreatedAt:         l.CreatedAt,
		CreatedBy:         l.CreatedBy,
	}
	if len(l.Items) > 0 {
		resp.Items = make([]LiquidationItemResponse, len(l.Items))
		for i := range l.Items {
			resp.Items[i] = ToLiquidationItemResponse(&l.Items[i])
		}
	}
	if len(l.Attachments) > 0 {
		resp.Attachments = make([]AttachmentResponse, len(l.Attachments))
		for i := range l.Attachments {
			resp.Attachments[i] = ToAttachmentResponse(&l.Attachments[i])
		}
	}
	return resp
}
