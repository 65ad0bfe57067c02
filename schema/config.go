package schema

// IterPolicy decides how field iteration treats fields that cannot be read.
type IterPolicy int

const (
	// IterSwallowErrors reads every field and silently drops the ones that fail.
	IterSwallowErrors IterPolicy = iota
	// IterSkipAbsent reads only fields whose key is present.
	IterSkipAbsent
	// IterStrict reads every field and stops at the first failure.
	IterStrict
)

const (
	DefaultIterName = "field_items"
	// ItemsIterName makes the field iteration replace the mapping's items, keys and values views.
	ItemsIterName = "items"
)

type config struct {
	defaultFieldValue any
	detector          Detector
	createInit        bool
	createIter        bool
	iterName          string
	iterPolicy        IterPolicy
	itemsFieldOnly    bool
	registry          *Registry
}

// Option configures schema processing.
type Option func(*config)

func newConfig(opts ...Option) *config {
	c := &config{
		defaultFieldValue: Missing,
		detector:          DefaultDetector{},
		createInit:        true,
		createIter:        true,
		iterName:          DefaultIterName,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithDefaultFieldValue sets the fallback default of fields declared without value.
func WithDefaultFieldValue(value any) Option {
	return func(c *config) { c.defaultFieldValue = value }
}

func WithDetector(detector Detector) Option {
	return func(c *config) { c.detector = detector }
}

// WithoutInit leaves New as a plain mapping initializer: named values are stored raw under their names.
func WithoutInit() Option {
	return func(c *config) { c.createInit = false }
}

// WithoutIter makes FieldItems yield present fields raw, without getters.
func WithoutIter() Option {
	return func(c *config) { c.createIter = false }
}

func WithIterName(name string) Option {
	return func(c *config) { c.iterName = name }
}

func WithIterPolicy(policy IterPolicy) Option {
	return func(c *config) { c.iterPolicy = policy }
}

// IgnoreAbsentOnIter is a shortcut for WithIterPolicy(IterSkipAbsent).
func IgnoreAbsentOnIter() Option {
	return WithIterPolicy(IterSkipAbsent)
}

// WithItemsFieldOnly makes Items, Keys and Values field based regardless of the iteration name.
func WithItemsFieldOnly() Option {
	return func(c *config) { c.itemsFieldOnly = true }
}

// WithRegistry registers the processed schema.
func WithRegistry(r *Registry) Option {
	return func(c *config) { c.registry = r }
}
