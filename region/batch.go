package region

import (
	"github.com/Neumenon/anvil/nbt"
	"golang.org/x/sync/errgroup"
)

// Entry is one decoded chunk produced by ReadAll.
type Entry struct {
	X, Z      int32
	Doc       *nbt.NamedTag
	Timestamp uint32
}

// ReadAll decodes every present chunk in the region, using up to workers
// goroutines. Decompression and parsing are pure functions of each chunk's
// byte range, so chunks decode independently; each result lands in its own
// slot and the first error cancels the rest. Results are ordered by header
// slot. workers < 1 means one worker.
func ReadAll(r *Region, workers int) ([]Entry, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]*Entry, 1024)

	var g errgroup.Group
	g.SetLimit(workers)
	for slot := 0; slot < 1024; slot++ {
		if !r.header.Locations[slot].Present() {
			continue
		}
		x := int32(slot % 32)
		z := int32(slot / 32)
		g.Go(func() error {
			doc, err := r.ChunkTag(x, z)
			if err != nil {
				return err
			}
			if doc == nil {
				// Location present but record empty; treat as absent.
				return nil
			}
			results[SlotFor(x, z)] = &Entry{
				X: x, Z: z,
				Doc:       doc,
				Timestamp: r.Timestamp(x, z),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(results))
	for _, e := range results {
		if e != nil {
			entries = append(entries, *e)
		}
	}
	return entries, nil
}
