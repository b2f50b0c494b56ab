package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// =============================================================================
// Keyer
// =============================================================================

// GeometryKeyOpts are the settings besides the definition that change the
// computed geometry.
type GeometryKeyOpts struct {
	// Measurer names the text measurer ("estimate", "goregular", ...).
	Measurer string `json:"measurer"`

	// Version is the engine version; a new release invalidates old entries.
	Version string `json:"version"`
}

// Keyer derives cache keys.
type Keyer interface {
	// GeometryKey returns the key for the geometry of a definition.
	GeometryKey(definition []byte, opts GeometryKeyOpts) string
}

// DefaultKeyer hashes definitions with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GeometryKey implements Keyer.
func (DefaultKeyer) GeometryKey(definition []byte, opts GeometryKeyOpts) string {
	return hashKey("geometry", Hash(definition), opts)
}

var _ Keyer = DefaultKeyer{}
