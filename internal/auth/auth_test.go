package auth

import (
	"testing"

	"github.com/zalando/go-keyring"
)

func TestGetKeyFallsBackToEnv(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvVarName, "  AIzaFromEnv  ")

	key, source := GetKey(true)
	if key != "AIzaFromEnv" || source != SourceEnv {
		t.Fatalf("GetKey(true) = %q, %q", key, source)
	}
	if key, source := GetKey(false); key != "" || source != "" {
		t.Fatalf("GetKey(false) = %q, %q; want empty", key, source)
	}
}

func TestKeychainRoundTrip(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvVarName, "AIzaFromEnv")

	if GetStatus() {
		t.Fatalf("expected no stored key")
	}
	if err := SaveKey(" AIzaStored\n"); err != nil {
		t.Fatalf("SaveKey: %v", err)
	}
	key, source := GetKey(true)
	if key != "AIzaStored" || source != SourceKeychain {
		t.Fatalf("GetKey() = %q, %q", key, source)
	}
	if err := DeleteKey(); err != nil {
		t.Fatalf("DeleteKey: %v", err)
	}
	if GetStatus() {
		t.Fatalf("expected key to be deleted")
	}
}

func TestCloudCredentials(t *testing.T) {
	t.Setenv(CloudCredentialsEnvVar, "/env/sa.json")
	if p, src := CloudCredentials("/cfg/sa.json"); p != "/cfg/sa.json" || src != "Config" {
		t.Fatalf("configured path not preferred: %q %q", p, src)
	}
	if p, src := CloudCredentials(""); p != "/env/sa.json" || src != SourceEnv {
		t.Fatalf("env fallback = %q %q", p, src)
	}
	t.Setenv(CloudCredentialsEnvVar, "")
	if p, _ := CloudCredentials(""); p != "" {
		t.Fatalf("expected ADC fallback, got %q", p)
	}
}
