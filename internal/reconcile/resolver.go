package reconcile

// Identity is one distinct hotel across suppliers.
type Identity struct {
	HotelID       string
	DestinationID string
	Sources       Sources
}

// keyed is a supplier lookup map that remembers first-seen key order.
// A repeated key keeps its original position but takes the later record.
type keyed[T any] struct {
	order []string
	byID  map[string]*T
}

func index[T any](recs []T, key func(*T) string) keyed[T] {
	k := keyed[T]{order: make([]string, 0, len(recs)), byID: make(map[string]*T, len(recs))}
	for i := range recs {
		id := key(&recs[i])
		if _, seen := k.byID[id]; !seen {
			k.order = append(k.order, id)
		}
		k.byID[id] = &recs[i]
	}
	return k
}

// Resolve joins the three record sets into one identity per distinct key:
// Acme discoveries first, then Patagonia-only, then Paperflies-only, each in
// its own array order.
func Resolve(acme []AcmeHotel, patagonia []PatagoniaHotel, paperflies []PaperfliesHotel) []Identity {
	a := index(acme, func(h *AcmeHotel) string { return h.ID })
	p := index(patagonia, func(h *PatagoniaHotel) string { return h.ID })
	f := index(paperflies, func(h *PaperfliesHotel) string { return h.ID })

	out := make([]Identity, 0, len(a.order)+len(p.order)+len(f.order))
	seen := make(map[string]struct{}, cap(out))
	emit := func(id string, s Sources) {
		seen[id] = struct{}{}
		out = append(out, Identity{HotelID: id, DestinationID: MergeDestinationID(s), Sources: s})
	}

	for _, id := range a.order {
		emit(id, Sources{Acme: a.byID[id], Patagonia: p.byID[id], Paperflies: f.byID[id]})
	}
	for _, id := range p.order {
		if _, ok := seen[id]; ok {
			continue
		}
		emit(id, Sources{Patagonia: p.byID[id], Paperflies: f.byID[id]})
	}
	for _, id := range f.order {
		if _, ok := seen[id]; ok {
			continue
		}
		emit(id, Sources{Paperflies: f.byID[id]})
	}
	return out
}
