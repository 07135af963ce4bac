package debug

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	Log("loaded %d items", 3)
	if !strings.Contains(buf.String(), "loaded 3 items") {
		t.Fatalf("missing log line: %q", buf.String())
	}

	SetOutput(nil)
	buf.Reset()
	Log("dropped")
	if buf.Len() != 0 {
		t.Fatalf("disabled logger wrote %q", buf.String())
	}
	if Enabled() {
		t.Fatalf("expected disabled")
	}
}
