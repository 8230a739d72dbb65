package worker

import (
	"os"
	"testing"
)

func TestBindDeviceNoopCases(t *testing.T) {
	os.Unsetenv("CUDA_VISIBLE_DEVICES")
	for _, device := range []string{"", "auto", "cpu"} {
		if err := BindDevice(device); err != nil {
			t.Fatalf("BindDevice(%q): unexpected error %v", device, err)
		}
		if v := os.Getenv("CUDA_VISIBLE_DEVICES"); v != "" {
			t.Fatalf("BindDevice(%q): expected no env var, got %q", device, v)
		}
	}
}

func TestBindDeviceSetsEnv(t *testing.T) {
	defer os.Unsetenv("CUDA_VISIBLE_DEVICES")
	if err := BindDevice("cuda:2"); err != nil {
		t.Fatal(err)
	}
	if v := os.Getenv("CUDA_VISIBLE_DEVICES"); v != "2" {
		t.Fatalf("expected CUDA_VISIBLE_DEVICES=2, got %q", v)
	}
}

func TestBindDeviceMalformed(t *testing.T) {
	if err := BindDevice("cuda"); err == nil {
		t.Fatal("expected error for malformed device spec")
	}
}
