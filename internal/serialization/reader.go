package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// Read parses an envelope from r, verifies the checksum and decodes the
// payload into into.
//
// kind must match the kind given to Write; an empty kind accepts any.
// Returns the parsed header.
func Read(r io.Reader, kind string, into any) (*Header, error) {
	fixed := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return nil, fmt.Errorf("failed to read fixed header: %w", err)
	}

	if string(fixed[0:4]) != MagicBytes {
		return nil, ErrInvalidMagic
	}
	if v := binary.LittleEndian.Uint32(fixed[4:8]); v != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	headerSize := binary.LittleEndian.Uint64(fixed[12:20])
	if headerSize > MaxHeaderSize {
		return nil, ErrHeaderTooLarge
	}

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}
	if err := validateHeader(&header, kind); err != nil {
		return nil, err
	}

	body := make([]byte, header.PayloadSize)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}
	if err := ValidateChecksum(body, header.Checksum); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(body, into); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return &header, nil
}

func validateHeader(h *Header, kind string) error {
	if h.FormatVersion != FormatVersion {
		return &ValidationError{
			Field:   "format_version",
			Details: fmt.Sprintf("header declares %d", h.FormatVersion),
			Err:     ErrUnsupportedVersion,
		}
	}
	if kind != "" && h.Kind != kind {
		return &ValidationError{
			Field:   "kind",
			Details: fmt.Sprintf("want %q, got %q", kind, h.Kind),
			Err:     ErrKindMismatch,
		}
	}
	if h.PayloadSize < 0 || h.PayloadSize > MaxPayloadSize {
		return &ValidationError{
			Field:   "payload_size",
			Details: fmt.Sprintf("%d bytes", h.PayloadSize),
			Err:     ErrPayloadTooLarge,
		}
	}
	return nil
}
