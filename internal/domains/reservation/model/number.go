package model

import (
	"fmt"
	"strings"
	"time"

	ledgerModel "tavola/internal/domains/ledger/model"
)

// Number renders the human readable reservation label, e.g. a two table
// booking on 14 March 2026 at slot 2 yields "20260314-1130-5-6". The label
// is informational and carries no uniqueness guarantee.
func Number(date time.Time, slot int, tables []int64) string {
	parts := make([]string, 0, len(tables)+2)
	parts = append(parts, date.Format("20060102"), ledgerModel.SlotLabel(slot))

	for _, table := range tables {
		parts = append(parts, fmt.Sprintf("%d", table))
	}

	return strings.Join(parts, "-")
}
