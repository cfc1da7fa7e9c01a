package txsign

import (
	"encoding/json"
	"fmt"
)

// ParseItems decodes a batch input file: a JSON array of items.
func ParseItems(data []byte) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing batch file: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("batch file contains no items")
	}
	return items, nil
}

// ProcessBatch signs every item in order. The batch is all-or-nothing:
// a failing item aborts with its index so the operator can fix the input
// and rerun.
func ProcessBatch(items []Item, opts Options) ([]BatchEntry, error) {
	entries := make([]BatchEntry, 0, len(items))
	for i := range items {
		entry, err := ProcessItem(&items[i], opts)
		if err != nil {
			return nil, fmt.Errorf("item %d (%s): %w", i, items[i].FunctionToCall, err)
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

// MarshalEntries renders the batch output file.
func MarshalEntries(entries []BatchEntry) ([]byte, error) {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding batch output: %w", err)
	}
	return append(data, '\n'), nil
}
