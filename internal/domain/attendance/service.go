package attendance

import "context"

// Service defines business logic for attendance operations.
type Service interface {
	// RecordScan validates a scanned department code against the
	// authenticated employee's identity, leave state and location, then
	// advances the day's record by one punch. Rejections come back as
	// *ScanError.
	RecordScan(ctx context.Context, req ScanRequest) (ScanResult, error)

	// GetMyRecords retrieves records for the authenticated employee.
	GetMyRecords(ctx context.Context, filter ListFilter) (ListRecordResponse, error)

	// ListRecords retrieves records with filters (admin/head).
	ListRecords(ctx context.Context, filter ListFilter) (ListRecordResponse, error)

	// UpdateRecord sets or clears punches on a record (admin correction).
	UpdateRecord(ctx context.Context, req UpdateRecordRequest) (RecordResponse, error)

	// ClearRecord removes a record entirely (admin only).
	ClearRecord(ctx context.Context, id string) error
}
