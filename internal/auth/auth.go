// Package auth resolves credentials for the translation backends.
package auth

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/zalando/go-keyring"
	"golang.org/x/term"
)

const (
	serviceName   = "glosst"
	geminiAccount = "gemini-api-key"

	// EnvVarName holds the Gemini API key when environment lookup is allowed.
	EnvVarName = "GEMINI_API_KEY"

	// CloudCredentialsEnvVar is the standard Application Default Credentials
	// variable honoured by the Cloud client.
	CloudCredentialsEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"
)

// Source names where a key came from.
const (
	SourceKeychain = "Keychain"
	SourceEnv      = "Environment Variable"
)

// GetKey retrieves the Gemini API key, preferring the OS keychain. If
// allowEnv is false, environment variables are ignored.
func GetKey(allowEnv bool) (string, string) {
	key, err := keyring.Get(serviceName, geminiAccount)
	if err == nil && strings.TrimSpace(key) != "" {
		return strings.TrimSpace(key), SourceKeychain
	}
	if allowEnv {
		if key, ok := GetEnvKey(); ok {
			return key, SourceEnv
		}
	}
	return "", ""
}

// SaveKey saves the Gemini API key to the OS keychain.
func SaveKey(key string) error {
	return keyring.Set(serviceName, geminiAccount, strings.TrimSpace(key))
}

// DeleteKey removes the Gemini API key from the OS keychain.
func DeleteKey() error {
	return keyring.Delete(serviceName, geminiAccount)
}

// GetStatus reports whether a Gemini key is stored in the keychain.
func GetStatus() bool {
	key, err := keyring.Get(serviceName, geminiAccount)
	return err == nil && key != ""
}

// PromptForAPIKey reads a key from the terminal without echo.
func PromptForAPIKey(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// GetEnvKey retrieves the Gemini key from the environment only.
func GetEnvKey() (string, bool) {
	key := strings.TrimSpace(os.Getenv(EnvVarName))
	return key, key != ""
}

// CloudCredentials returns the credentials file to use for Cloud Translation:
// the configured path if set, else GOOGLE_APPLICATION_CREDENTIALS. An empty
// result means the client falls back to Application Default Credentials.
func CloudCredentials(configured string) (string, string) {
	if p := strings.TrimSpace(configured); p != "" {
		return p, "Config"
	}
	if p := strings.TrimSpace(os.Getenv(CloudCredentialsEnvVar)); p != "" {
		return p, SourceEnv
	}
	return "", ""
}
