package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
)

// LedgerExportSvc produces whole-ledger snapshots for download.
type LedgerExportSvc interface {
	// ExportLedger reads every account and transaction in one consistent window.
	ExportLedger(ctx context.Context) (domain.LedgerSnapshot, error)
	// TemplateLedger returns the starter chart with sample transactions.
	TemplateLedger() domain.LedgerSnapshot
}
