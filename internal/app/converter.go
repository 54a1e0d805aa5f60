package app

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/atlas-128/convertDecimaltoBase32/internal/metrics"
	"github.com/atlas-128/convertDecimaltoBase32/internal/pin32"
)

const invalidInputBody = "ERROR: Invalid Input"

// ConverterHandler serves the unified conversion route.
type ConverterHandler struct {
	log LogSink
}

// LogSink is the slice of the logger the handler needs.
type LogSink interface {
	Debugf(format string, args ...interface{})
}

// NewConverter builds the converter application: a single plain-text route
// that decides the conversion direction from the input itself.
func NewConverter(opts Options) (*fiber.App, error) {
	f := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "Ultra-Fast Base32 Converter",
	})

	h := &ConverterHandler{log: opts.Log}

	// The scrape route must be registered ahead of the catch-all parameter
	// route, otherwise "/metrics" would be treated as conversion input.
	if opts.Metrics {
		f.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	}

	f.Get("/:input", h.Convert)

	return f, nil
}

// Convert handles the unified route:
//   - a trailing "b32" (any case) forces base32 -> decimal;
//   - any non-digit character means base32 -> decimal;
//   - an all-digit input is encoded decimal -> base32.
func (h *ConverterHandler) Convert(c *fiber.Ctx) error {
	input := strings.TrimSpace(c.Params("input"))

	// Explicit suffix: strip it and decode whatever remains. An empty
	// remainder decodes to 0.
	if len(input) >= 3 && strings.EqualFold(input[len(input)-3:], "b32") {
		return h.decode(c, input[:len(input)-3])
	}

	if !isAllDigits(input) {
		return h.decode(c, input)
	}

	encoded, err := pin32.EncodeDecimal(input)
	if err != nil {
		metrics.RequestErrorsTotal.Inc()
		return c.SendString(invalidInputBody)
	}
	metrics.ConversionsTotal.WithLabelValues("encode").Inc()
	return c.SendString(encoded)
}

func (h *ConverterHandler) decode(c *fiber.Ctx, raw string) error {
	dec, err := pin32.DecodeToDecimal(pin32.Normalize(raw))
	if err != nil {
		if h.log != nil {
			h.log.Debugf("rejected input %q: %v", raw, err)
		}
		metrics.RequestErrorsTotal.Inc()
		return c.SendString(invalidInputBody)
	}
	metrics.ConversionsTotal.WithLabelValues("decode").Inc()
	return c.SendString(dec)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
