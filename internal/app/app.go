// Package app builds the HTTP applications a worker can serve. Applications
// are registered by name, the way an ASGI server resolves a module:attribute
// import path; workers look their application up at startup and fail when the
// name is unknown.
package app

import (
	"fmt"
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/atlas-128/convertDecimaltoBase32/internal/logging"
)

// Options carries the per-worker knobs an application factory may use.
type Options struct {
	Metrics bool
	Log     *logging.Logger
}

// Factory constructs a ready-to-serve fiber application.
type Factory func(Options) (*fiber.App, error)

var registry = map[string]Factory{
	"converter": NewConverter,
}

// Lookup resolves a registered application by name.
func Lookup(name string) (Factory, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown application %q (registered: %v)", name, Names())
	}
	return f, nil
}

// Names lists the registered application names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
