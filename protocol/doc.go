// Package protocol implements the SAMA SM360 LCD serial command protocol.
//
// This package provides functions to build fixed-size command frames and
// interpret the variable-length replies the panel returns over its USB-serial
// channel. The wire format was reconstructed from captured Windows traffic.
//
// # Frame Overview
//
// Every command is a single 250-byte frame:
//
//	[OPCODE:1][MAGIC:2=EF69][RESERVED:3][SUBCMD:1][FLAG:1][RESERVED:2][PAYLOAD...][ZERO-PADDING]
//
// Where:
//   - OPCODE selects the operation (handshake, brightness, load, play, ...)
//   - MAGIC is the constant marker EF 69 present in every observed frame
//   - SUBCMD is an opcode variant; for load/play it selects a storage path
//   - FLAG carries the play flag (0x01) for PlayVideo, zero otherwise
//   - PAYLOAD starts at offset 10: a value byte, or a NUL-terminated UTF-8 path
//
// # Command Builders
//
// Use the Build* functions to create command frames:
//
//	frame, err := protocol.BuildBrightnessCmd(128)
//	frame, err := protocol.BuildLoadVideoCmd(protocol.PathSDCard, "/mnt/SDCARD/video/theme06.mp4")
//	// ... etc
//
// # Responses
//
// The device does not tag its replies; the command issued determines the
// expected shape. Wrap the raw bytes in a Response and pick the matching
// accessor:
//
//	resp := protocol.NewResponse(raw)
//	text := resp.AsText()            // device identity, readiness token
//	vals, err := resp.AsNumbers()    // "-"-delimited status tuple
//	size, err := resp.AsInteger()    // load result: file size, 0 = not found
//
// # Reference
//
// Offsets and opcodes follow the confirmed subset of the captured protocol.
// Opcodes whose semantics are unconfirmed are deliberately absent; send them
// through the device package's raw escape hatch if you are exploring.
package protocol
