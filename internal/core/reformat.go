package core

// DefaultSupportedField is the reserved field that carries tracked columns.
const DefaultSupportedField = "SUPPORTED"

// MissingKey is the key used for rows that have no key column.
const MissingKey = "undefined"

// ReformatOptions controls how rows are folded into a Mapping.
type ReformatOptions struct {
	// TrackSupported attaches the distinct non-key headers, in first-seen
	// order, under SupportedField.
	TrackSupported bool

	// SupportedField names the reserved field. Empty means DefaultSupportedField.
	// A key column value equal to this name is overwritten by the list.
	SupportedField string

	// RequireKeyColumn makes the pipeline reject documents whose header has
	// no key column instead of filing rows under MissingKey.
	RequireKeyColumn bool
}

// Reformatter folds parsed rows into a keyed Mapping. It holds no state
// between calls and is safe for concurrent use.
type Reformatter struct {
	opts ReformatOptions
}

// NewReformatter creates a Reformatter with the given options.
func NewReformatter(opts ReformatOptions) *Reformatter {
	if opts.SupportedField == "" {
		opts.SupportedField = DefaultSupportedField
	}
	return &Reformatter{opts: opts}
}

// Options returns the effective options.
func (f *Reformatter) Options() ReformatOptions {
	return f.opts
}

// Reformat removes the key column from each row and stores the rest of the
// row under that key. Later rows overwrite earlier rows with the same key.
// The rows passed in are modified.
func (f *Reformatter) Reformat(rows []*Row) *Mapping {
	m := newMapping(len(rows))

	var (
		supported []string
		seen      map[string]struct{}
	)
	if f.opts.TrackSupported {
		supported = []string{}
		seen = make(map[string]struct{})
	}

	for _, row := range rows {
		key, ok := row.Delete(KeyColumn)
		if !ok {
			key = MissingKey
		}

		if f.opts.TrackSupported {
			for _, col := range row.Columns() {
				if _, dup := seen[col]; dup {
					continue
				}
				seen[col] = struct{}{}
				supported = append(supported, col)
			}
		}

		m.put(key, row)
	}

	if f.opts.TrackSupported {
		m.setSupported(f.opts.SupportedField, supported)
	}
	return m
}
