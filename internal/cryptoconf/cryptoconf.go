// Package cryptoconf validates pakfile encryption keys and writes the
// crypto settings document the external tool expects.
package cryptoconf

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"regexp"
	"strings"
)

// KeyChecksum is the sha256 of the real pakfile encryption key, used to
// sanity-check user input before writing a config file with it.
const KeyChecksum = "45720b62a8a313ac59afe9792a0a1b8d034f6f65d37dd44a1caf578a832bdcba"

// ErrInvalidKey is returned for key input that is not 64 hex digits.
var ErrInvalidKey = errors.New("encryption key must consist of 64 hex digits")

var reHexKey = regexp.MustCompile(`^[0-9a-f]{64}$`)

// NormalizeKey lowercases the key, strips surrounding whitespace and an
// optional 0x prefix, and validates the shape.
func NormalizeKey(input string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(input))
	key = strings.TrimPrefix(key, "0x")
	if !reHexKey.MatchString(key) {
		return "", ErrInvalidKey
	}
	return key, nil
}

// Matches reports whether the normalized hex key hashes to the known
// checksum.
func Matches(key string) bool {
	raw, err := hex.DecodeString(key)
	if err != nil {
		return false
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]) == KeyChecksum
}

// The document below mirrors UnrealBuildTool's CryptoSettings JSON
// serialization; the tool rejects files without the $type bookkeeping.
type document struct {
	Types                        map[string]string `json:"$types"`
	Type                         string            `json:"$type"`
	EncryptionKey                encryptionKey     `json:"EncryptionKey"`
	SigningKey                   interface{}       `json:"SigningKey"`
	EnablePakSigning             bool              `json:"bEnablePakSigning"`
	EnablePakIndexEncryption     bool              `json:"bEnablePakIndexEncryption"`
	EnablePakIniEncryption       bool              `json:"bEnablePakIniEncryption"`
	EnablePakUAssetEncryption    bool              `json:"bEnablePakUAssetEncryption"`
	EnablePakFullAssetEncryption bool              `json:"bEnablePakFullAssetEncryption"`
	DataCryptoRequired           bool              `json:"bDataCryptoRequired"`
	SecondaryEncryptionKeys      []interface{}     `json:"SecondaryEncryptionKeys"`
}

type encryptionKey struct {
	Type string      `json:"$type"`
	Name interface{} `json:"Name"`
	Guid interface{} `json:"Guid"`
	Key  string      `json:"Key"`
}

const (
	typeCryptoSettings = "UnrealBuildTool.EncryptionAndSigning+CryptoSettings, UnrealBuildTool, Version=4.0.0.0, Culture=neutral, PublicKeyToken=null"
	typeEncryptionKey  = "UnrealBuildTool.EncryptionAndSigning+EncryptionKey, UnrealBuildTool, Version=4.0.0.0, Culture=neutral, PublicKeyToken=null"
)

// Write writes the crypto settings JSON to path with the key base64
// encoded. The key must already be normalized.
func Write(path, key string) error {
	raw, err := hex.DecodeString(key)
	if err != nil {
		return ErrInvalidKey
	}

	doc := document{
		Types: map[string]string{
			typeCryptoSettings: "1",
			typeEncryptionKey:  "2",
		},
		Type: "1",
		EncryptionKey: encryptionKey{
			Type: "2",
			Key:  base64.StdEncoding.EncodeToString(raw),
		},
		EnablePakIndexEncryption: true,
		EnablePakIniEncryption:   true,
		DataCryptoRequired:       true,
		SecondaryEncryptionKeys:  []interface{}{},
	}

	body, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(body, '\n'), 0o600)
}
