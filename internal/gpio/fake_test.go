package gpio

import (
	"errors"
	"testing"

	"github.com/sweeney/zero2-controller/internal/input"
)

func TestFakeButtonsDefaultsReleased(t *testing.T) {
	f := NewFakeButtons()
	for _, ch := range input.Channels {
		pressed, err := f.Sample(ch)
		if err != nil {
			t.Fatalf("Sample(%s) error: %v", ch, err)
		}
		if pressed {
			t.Errorf("channel %s should default to released", ch)
		}
	}
}

func TestFakeButtonsSetPressed(t *testing.T) {
	f := NewFakeButtons()
	f.SetPressed(input.ChannelSelect, true)

	pressed, err := f.Sample(input.ChannelSelect)
	if err != nil {
		t.Fatalf("Sample error: %v", err)
	}
	if !pressed {
		t.Error("expected SELECT pressed")
	}

	pressed, _ = f.Sample(input.ChannelUp)
	if pressed {
		t.Error("UP should stay released")
	}

	f.SetPressed(input.ChannelSelect, false)
	pressed, _ = f.Sample(input.ChannelSelect)
	if pressed {
		t.Error("expected SELECT released again")
	}
}

func TestFakeButtonsError(t *testing.T) {
	f := NewFakeButtons()
	wantErr := errors.New("read failed")
	f.SetError(input.ChannelA, wantErr)

	_, err := f.Sample(input.ChannelA)
	if !errors.Is(err, wantErr) {
		t.Errorf("expected configured error, got %v", err)
	}

	f.SetError(input.ChannelA, nil)
	if _, err := f.Sample(input.ChannelA); err != nil {
		t.Errorf("expected error cleared, got %v", err)
	}
}

func TestFakeButtonsClose(t *testing.T) {
	f := NewFakeButtons()
	if err := f.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if !f.Closed {
		t.Error("Closed should be true after Close")
	}
}

func TestFakeBattery(t *testing.T) {
	f := NewFakeBattery()

	low, err := f.IsLow()
	if err != nil {
		t.Fatalf("IsLow error: %v", err)
	}
	if low {
		t.Error("signal should default to deasserted")
	}

	f.SetLow(true)
	low, _ = f.IsLow()
	if !low {
		t.Error("expected low after SetLow(true)")
	}

	wantErr := errors.New("line closed")
	f.SetError(wantErr)
	if _, err := f.IsLow(); !errors.Is(err, wantErr) {
		t.Errorf("expected configured error, got %v", err)
	}

	if err := f.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if !f.Closed {
		t.Error("Closed should be true after Close")
	}
}
