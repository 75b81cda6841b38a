package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestSpinnerLifecycle_StopWithSuccess(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Connecting")
	s.start()
	// Let it spin briefly
	time.Sleep(50 * time.Millisecond)
	s.stopWithSuccess("done")

	if !strings.Contains(buf.String(), "done") {
		t.Errorf("Expected success message in output, got %q", buf.String())
	}
}

func TestSpinnerLifecycle_StopWithError(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Connecting")
	s.start()
	time.Sleep(30 * time.Millisecond)
	// Should stop cleanly on error (no panic)
	s.stopWithError()
	s.stopWithError()
}

func TestProgress_DisabledWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	p := &progress{out: &buf}

	p.start("Connecting")
	p.success("Connected")
	p.fail()

	if buf.Len() != 0 {
		t.Errorf("Expected no output, got %q", buf.String())
	}
}

func TestProgress_Enabled(t *testing.T) {
	var buf bytes.Buffer
	p := &progress{out: &buf, enabled: true}

	p.start("Connecting")
	p.success("Connected")
	p.fail()

	if !strings.Contains(buf.String(), "Connected") {
		t.Errorf("Expected success message, got %q", buf.String())
	}
}
