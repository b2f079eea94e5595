package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Write encodes payload as JSON and writes it to w inside the envelope.
//
// Parameters:
//   - w: Destination
//   - kind: Payload type, checked again by Read
//   - payload: Any JSON-marshalable value
//   - metadata: Optional string metadata stored in the header
func Write(w io.Writer, kind string, payload any, metadata map[string]string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	if len(body) > MaxPayloadSize {
		return ErrPayloadTooLarge
	}

	header := Header{
		FormatVersion: FormatVersion,
		Kind:          kind,
		CreatedAt:     time.Now().UTC(),
		PayloadSize:   int64(len(body)),
		Checksum:      ChecksumHex(body),
		Metadata:      metadata,
	}

	var flags uint32
	if len(metadata) > 0 {
		flags |= FlagHasMetadata
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if len(headerJSON) > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	fixed := make([]byte, FixedHeaderSize)
	copy(fixed[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(fixed[4:8], FormatVersion)
	binary.LittleEndian.PutUint32(fixed[8:12], flags)
	binary.LittleEndian.PutUint64(fixed[12:20], uint64(len(headerJSON)))

	for _, chunk := range [][]byte{fixed, headerJSON, body} {
		if _, err := w.Write(chunk); err != nil {
			return fmt.Errorf("failed to write checkpoint: %w", err)
		}
	}
	return nil
}
