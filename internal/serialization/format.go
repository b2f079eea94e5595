package serialization

import "time"

// Format constants.
const (
	MagicBytes      = "SYNP"
	FormatVersion   = 1
	FixedHeaderSize = 20 // magic(4) + version(4) + flags(4) + header size(8)
	MaxHeaderSize   = 1 << 20
	MaxPayloadSize  = 1 << 30
)

// Flags for the envelope.
const (
	FlagHasMetadata uint32 = 1 << 0 // bit 0: header carries custom metadata
)

// Header is the JSON header that precedes the payload.
type Header struct {
	FormatVersion int               `json:"format_version"`     // Version of the envelope format
	Kind          string            `json:"kind"`               // Payload type (e.g., "network")
	CreatedAt     time.Time         `json:"created_at"`         // When the file was written
	PayloadSize   int64             `json:"payload_size"`       // Size of the JSON payload in bytes
	Checksum      string            `json:"checksum"`           // Hex SHA-256 of the payload
	Metadata      map[string]string `json:"metadata,omitempty"` // Custom metadata
}
