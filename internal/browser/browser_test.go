package browser

import "testing"

func TestOpenRejectsUnsafeSchemes(t *testing.T) {
	// Article URLs come from provider output, so anything that is not
	// plain http(s) must be refused before reaching exec.
	unsafe := []string{
		"file:///etc/passwd",
		"javascript:alert(1)",
		"ftp://example.com",
		"data:text/html,hola",
		"",
	}
	for _, u := range unsafe {
		if err := Open(u); err == nil {
			t.Errorf("Open(%q): expected error, got nil", u)
		}
	}
}

func TestOpenAcceptsHTTP(t *testing.T) {
	// The launch itself may fail in a headless environment; this only
	// checks that scheme validation lets web URLs through, so a launch
	// error is not a failure here.
	for _, u := range []string{"https://example.com/noticia", "http://example.com"} {
		_ = Open(u)
	}
}
