package injective

import (
	"log/slog"
	"reflect"
	"sync"
)

type ContextConfiguration struct {
	Logger           *slog.Logger
	StrictProperties bool
}

type Option func(*ContextConfiguration)

var (
	WithLogger = func(logger *slog.Logger) Option {
		return func(conf *ContextConfiguration) { conf.Logger = logger }
	}

	// Properties not exposed by an instance fail instantiation with UnknownPropertyError
	// instead of being skipped.
	WithStrictProperties Option = func(conf *ContextConfiguration) { conf.StrictProperties = true }
)

// Context holds registrations and singleton instances.
// Registration and resolution are safe for concurrent use,
// singletons are constructed once even if first requested concurrently.
type Context struct {
	logger       *slog.Logger
	records      map[reflect.Type]*record
	capabilities map[reflect.Type][]reflect.Type
	tables       sync.Map
	built        []any
	nextID       int
	recordsRWM   sync.RWMutex
	builtMu      sync.Mutex
	strict       bool
}

// Returns new empty Context.
func New(opts ...Option) *Context {
	var conf ContextConfiguration
	for _, opt := range opts {
		opt(&conf)
	}

	return &Context{
		logger:       conf.Logger,
		strict:       conf.StrictProperties,
		records:      make(map[reflect.Type]*record),
		capabilities: make(map[reflect.Type][]reflect.Type),
		nextID:       1,
	}
}

func (c *Context) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}

	return logger()
}

// propertyTable returns cached table for types that are not registered directly,
// such as concrete types returned by factories of interface registrations.
func (c *Context) propertyTable(t reflect.Type) (*propertyTable, error) {
	if table, ok := c.tables.Load(t); ok {
		return table.(*propertyTable), nil
	}

	table, err := newPropertyTable(t)
	if err != nil {
		return nil, err
	}

	actual, _ := c.tables.LoadOrStore(t, table)

	return actual.(*propertyTable), nil
}

func (c *Context) track(instance any) {
	c.builtMu.Lock()
	c.built = append(c.built, instance)
	c.builtMu.Unlock()
}
