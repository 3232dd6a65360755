// Package reconcile merges the three supplier feeds into canonical hotels.
// It performs no I/O; callers fetch the payloads and persist the result.
package reconcile

import (
	"encoding/json"

	"hotel_merge/internal/domain"
)

// Report is the result of one reconciliation with per-supplier bookkeeping.
type Report struct {
	Hotels  []domain.Hotel
	Records map[Supplier]int // listings with an identity key
	Skipped map[Supplier]int // listings dropped for a missing key
}

// Reconcile builds one canonical hotel per identity found in any payload.
// A nil, empty or null payload counts as a supplier with no listings.
func Reconcile(acme, patagonia, paperflies json.RawMessage) ([]domain.Hotel, error) {
	r, err := ReconcileReport(acme, patagonia, paperflies)
	if err != nil {
		return nil, err
	}
	return r.Hotels, nil
}

func ReconcileReport(acme, patagonia, paperflies json.RawMessage) (Report, error) {
	rep := Report{Records: make(map[Supplier]int, 3), Skipped: make(map[Supplier]int, 3)}

	a, skipped, err := adaptAll(Acme, acme, adaptAcme)
	if err != nil {
		return Report{}, err
	}
	rep.Records[Acme], rep.Skipped[Acme] = len(a), skipped

	p, skipped, err := adaptAll(Patagonia, patagonia, adaptPatagonia)
	if err != nil {
		return Report{}, err
	}
	rep.Records[Patagonia], rep.Skipped[Patagonia] = len(p), skipped

	f, skipped, err := adaptAll(Paperflies, paperflies, adaptPaperflies)
	if err != nil {
		return Report{}, err
	}
	rep.Records[Paperflies], rep.Skipped[Paperflies] = len(f), skipped

	ids := Resolve(a, p, f)
	rep.Hotels = make([]domain.Hotel, 0, len(ids))
	for _, id := range ids {
		rep.Hotels = append(rep.Hotels, Build(id))
	}
	return rep, nil
}
