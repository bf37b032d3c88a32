// Package gpg provides GPG signature verification capabilities.
package gpg

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
)

const (
	// Armored keyrings and signatures start with this prefix
	armorPrefix = "-----BEGIN PGP"

	// Published KEYS files can hold many keys
	maxKeysSize = 10 * 1024 * 1024

	// Detached signatures are typically well below 1KB
	maxSignatureSize = 64 * 1024
)

// ErrEmptyKeyring is returned when verifying before any key was imported
var ErrEmptyKeyring = errors.New("no GPG keys imported")

// Verifier checks detached OpenPGP signatures against an in-memory keyring
// using ProtonMail's go-crypto
type Verifier struct {
	keyring    openpgp.EntityList
	httpClient *http.Client
}

// NewVerifier creates a new GPG verifier
func NewVerifier() *Verifier {
	return &Verifier{
		keyring: make(openpgp.EntityList, 0),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ImportKeyring reads armored or binary public keys from r
func (v *Verifier) ImportKeyring(r io.Reader) error {
	data, err := io.ReadAll(io.LimitReader(r, maxKeysSize))
	if err != nil {
		return fmt.Errorf("failed to read key: %w", err)
	}

	var entities openpgp.EntityList
	if isArmored(data) {
		entities, err = openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	} else {
		entities, err = openpgp.ReadKeyRing(bytes.NewReader(data))
	}
	if err != nil {
		return fmt.Errorf("failed to read key: %w", err)
	}

	if len(entities) == 0 {
		return fmt.Errorf("no keys found")
	}

	v.keyring = append(v.keyring, entities...)
	return nil
}

// ImportKeyFromFile imports GPG keys from a file
func (v *Verifier) ImportKeyFromFile(keyPath string) error {
	//nolint:gosec // G304: keyPath is user-provided for GPG key import
	f, err := os.Open(keyPath)
	if err != nil {
		return fmt.Errorf("failed to open key file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	return v.ImportKeyring(f)
}

// ImportKeysFromURL imports all GPG keys from a KEYS file URL
func (v *Verifier) ImportKeysFromURL(ctx context.Context, keysURL string) error {
	req, err := http.NewRequestWithContext(ctx, "GET", keysURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download KEYS file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("KEYS file download failed with status %d", resp.StatusCode)
	}

	return v.ImportKeyring(resp.Body)
}

// VerifyDetached verifies signature over signed. The signature may be
// armored or binary.
func (v *Verifier) VerifyDetached(signed, signature io.Reader) error {
	if len(v.keyring) == 0 {
		return ErrEmptyKeyring
	}

	sig := bufio.NewReaderSize(io.LimitReader(signature, maxSignatureSize), len(armorPrefix))
	peek, _ := sig.Peek(len(armorPrefix))

	var err error
	if isArmored(peek) {
		_, err = openpgp.CheckArmoredDetachedSignature(v.keyring, signed, sig, nil)
	} else {
		_, err = openpgp.CheckDetachedSignature(v.keyring, signed, sig, nil)
	}
	if err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}

	return nil
}

// VerifySignatureFromFile verifies a detached signature from a local file
func (v *Verifier) VerifySignatureFromFile(filePath, sigPath string) error {
	if len(v.keyring) == 0 {
		return ErrEmptyKeyring
	}

	//nolint:gosec // G304: sigPath is user-provided for GPG verification
	sigFile, err := os.Open(sigPath)
	if err != nil {
		return fmt.Errorf("failed to open signature file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer sigFile.Close()

	//nolint:gosec // G304: filePath is user-provided for GPG verification
	dataFile, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer dataFile.Close()

	return v.VerifyDetached(dataFile, sigFile)
}

// KeyringSize returns the number of keys in the keyring
func (v *Verifier) KeyringSize() int {
	return len(v.keyring)
}

// ClearKeyring clears all imported keys
func (v *Verifier) ClearKeyring() {
	v.keyring = make(openpgp.EntityList, 0)
}

func isArmored(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte(armorPrefix))
}
