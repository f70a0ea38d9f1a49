package fetcher

// Observation is the outcome of one symbol's fetch for the current run.
// A failed fetch degrades to an absent observation rather than an error:
// the trend recorder renders it as a blank field and the run continues.
type Observation struct {
	// Symbol is the uppercase ticker symbol this observation belongs to.
	Symbol string

	// Count is the fetched watcher count. Only meaningful when Present is true.
	Count int64

	// Present reports whether the fetch produced a value.
	Present bool
}

// Value returns a present observation carrying the fetched count.
func Value(symbol string, count int64) Observation {
	return Observation{Symbol: symbol, Count: count, Present: true}
}

// Absent returns an observation for a symbol whose fetch failed.
func Absent(symbol string) Observation {
	return Observation{Symbol: symbol}
}
