package app

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, opts Options) *fiber.App {
	t.Helper()
	f, err := NewConverter(opts)
	require.NoError(t, err)
	return f
}

func get(t *testing.T, f *fiber.App, path string) (int, string) {
	t.Helper()
	resp, err := f.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestConvertEncode(t *testing.T) {
	f := newTestApp(t, Options{})

	for path, want := range map[string]string{
		"/0":    "00",
		"/1":    "01",
		"/10":   "0A",
		"/31":   "0Y",
		"/32":   "10",
		"/1000": "Y8",
	} {
		code, body := get(t, f, path)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, want, body, "path %s", path)
	}
}

func TestConvertDecode(t *testing.T) {
	f := newTestApp(t, Options{})

	for path, want := range map[string]string{
		"/0A": "10", // non-digit => decode
		"/0a": "10", // lowercase normalized
		"/Y8": "1000",
		"/u":  "28",
		"/U":  "28", // uppercase U aliases u
	} {
		code, body := get(t, f, path)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, want, body, "path %s", path)
	}
}

func TestConvertSuffixForcesDecode(t *testing.T) {
	f := newTestApp(t, Options{})

	// "10" alone encodes; "10b32" is forced into the decode path.
	_, body := get(t, f, "/10")
	assert.Equal(t, "0A", body)
	_, body = get(t, f, "/10b32")
	assert.Equal(t, "32", body)
	_, body = get(t, f, "/10B32")
	assert.Equal(t, "32", body)

	// A bare suffix leaves an empty string, which decodes to 0.
	_, body = get(t, f, "/b32")
	assert.Equal(t, "0", body)
}

func TestConvertInvalid(t *testing.T) {
	f := newTestApp(t, Options{})

	for _, path := range []string{"/IL", "/zz9", "/-5", "/1.5"} {
		code, body := get(t, f, path)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ERROR: Invalid Input", body, "path %s", path)
	}

}

func TestConvertBigNumbers(t *testing.T) {
	f := newTestApp(t, Options{})

	// Decimal input past uint64 still encodes, like the original service.
	_, body := get(t, f, "/99999999999999999999999999")
	assert.Equal(t, "2JPY9DSJ0CTBHYYYYY", body)

	// And the encoded form decodes back.
	_, body = get(t, f, "/2JPY9DSJ0CTBHYYYYY")
	assert.Equal(t, "99999999999999999999999999", body)

	_, body = get(t, f, "/2jpy9dsj0ctbhyyyyyb32")
	assert.Equal(t, "99999999999999999999999999", body)
}

func TestMetricsRouteGated(t *testing.T) {
	// Disabled: "/metrics" is ordinary conversion input (and happens to be
	// invalid base32).
	f := newTestApp(t, Options{})
	code, body := get(t, f, "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ERROR: Invalid Input", body)

	// Enabled: the scrape route wins over the catch-all.
	f = newTestApp(t, Options{Metrics: true})
	_, _ = get(t, f, "/10") // ensure the conversion counter has a sample
	code, body = get(t, f, "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "b32d_conversions_total")
}

func TestLookup(t *testing.T) {
	_, err := Lookup("converter")
	assert.NoError(t, err)

	_, err = Lookup("nope")
	assert.Error(t, err)

	assert.Contains(t, Names(), "converter")
}
