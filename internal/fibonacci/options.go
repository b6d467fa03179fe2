package fibonacci

// Options carries per-run tuning knobs. The zero value is valid; withDefaults
// fills in anything left unset.
type Options struct {
	// NaiveLimit is the largest index the naive recursive strategy accepts.
	// Zero means DefaultNaiveLimit. Negative disables the guard entirely,
	// which is only sane under a short context timeout.
	NaiveLimit int64

	// ArenaAllocation backs memo table slots with a single pre-sized arena
	// instead of individual heap allocations. Only engages for indices
	// large enough for allocation pressure to matter.
	ArenaAllocation bool
}

// withDefaults returns a copy of o with unset fields resolved.
func (o Options) withDefaults() Options {
	if o.NaiveLimit == 0 {
		o.NaiveLimit = DefaultNaiveLimit
	}
	return o
}
