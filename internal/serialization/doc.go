// Package serialization provides the on-disk envelope for synapse checkpoints.
//
//	Format Structure:
//	  [4 bytes: Magic "SYNP"]
//	  [4 bytes: Version (uint32 LE)]
//	  [4 bytes: Flags (uint32 LE)]
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON metadata, including the payload checksum]
//	  [Payload: JSON document]
//
// The payload is verified against the SHA-256 checksum in the header before
// it is decoded.
//
// Example usage:
//
//	if err := serialization.Write(f, "network", state, nil); err != nil {
//	    return err
//	}
//
//	var state checkpointState
//	header, err := serialization.Read(f, "network", &state)
package serialization
