package device

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSimulator_Fetch(t *testing.T) {
	sim := NewSimulator()
	ctx := context.Background()

	config, err := sim.Fetch(ctx, "Router1")
	if err != nil {
		t.Fatalf("Fetch(Router1): %v", err)
	}
	if !strings.Contains(config, "hostname Router1") {
		t.Error("router config missing hostname line")
	}
	if !strings.Contains(config, "enable secret") {
		t.Error("router config missing enable secret line")
	}

	config, err = sim.Fetch(ctx, "Switch1")
	if err != nil {
		t.Fatalf("Fetch(Switch1): %v", err)
	}
	if !strings.Contains(config, "transport input ssh") {
		t.Error("switch config missing ssh transport line")
	}
}

func TestSimulator_UnknownDevice(t *testing.T) {
	sim := NewSimulator()

	_, err := sim.Fetch(context.Background(), "Firewall9")
	if err == nil {
		t.Fatal("expected error for unknown device")
	}
	var rerr *RetrievalError
	if !errors.As(err, &rerr) {
		t.Fatalf("error type = %T, want *RetrievalError", err)
	}
	if rerr.Device != "Firewall9" {
		t.Errorf("Device = %q, want %q", rerr.Device, "Firewall9")
	}
}

func TestSimulator_AddAndDevices(t *testing.T) {
	sim := NewSimulator()
	sim.Add("Core1", "hostname Core1\n")

	ids := sim.Devices()
	if len(ids) != 3 {
		t.Fatalf("Devices() = %v, want 3 entries", ids)
	}
	if ids[0] != "Router1" || ids[1] != "Switch1" {
		t.Errorf("built-in devices must come first, got %v", ids)
	}

	config, err := sim.Fetch(context.Background(), "Core1")
	if err != nil {
		t.Fatalf("Fetch(Core1): %v", err)
	}
	if config != "hostname Core1\n" {
		t.Errorf("config = %q", config)
	}
}

func TestSimulator_CancelledContext(t *testing.T) {
	sim := NewSimulator()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Fetch(ctx, "Router1")
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}

func TestDirSource_Fetch(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "R1.txt"), []byte("hostname R1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "SW2.cfg"), []byte("hostname SW2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	src := NewDirSource(dir)
	ctx := context.Background()

	config, err := src.Fetch(ctx, "R1")
	if err != nil {
		t.Fatalf("Fetch(R1): %v", err)
	}
	if config != "hostname R1\n" {
		t.Errorf("config = %q", config)
	}

	// .cfg fallback
	config, err = src.Fetch(ctx, "SW2")
	if err != nil {
		t.Fatalf("Fetch(SW2): %v", err)
	}
	if config != "hostname SW2\n" {
		t.Errorf("config = %q", config)
	}
}

func TestDirSource_Missing(t *testing.T) {
	src := NewDirSource(t.TempDir())

	_, err := src.Fetch(context.Background(), "ghost")
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	var rerr *RetrievalError
	if !errors.As(err, &rerr) {
		t.Fatalf("error type = %T, want *RetrievalError", err)
	}
}
