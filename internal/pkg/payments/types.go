package payments

// CreatePaymentInput starts a checkout for one pack.
type CreatePaymentInput struct {
	PackID    string
	UserEmail string
	Amount    float64
}

// PurchaseData is the client-supplied context attached to a capture call.
// For "single" the client names the story it bought; the trust boundary is
// accepted as-is, matching the storefront contract.
type PurchaseData struct {
	PackType  string
	UserEmail string
	StoryID   *uint64
}

// CaptureOutcome reports a recorded capture. AlreadyRecorded is true when
// the same external transaction id had been captured before; the original
// purchase row is returned in that case.
type CaptureOutcome struct {
	TransactionID   string
	PurchaseID      uint64
	AlreadyRecorded bool
}

// SimulatePurchaseInput is the admin/test shortcut that writes a ledger row
// without touching the gateway.
type SimulatePurchaseInput struct {
	UserEmail string
	PackType  string
	StoryID   *uint64
}
