// Package device provides a high-level API for driving the SAMA SM360 LCD
// over its USB-serial channel.
//
// # Overview
//
// A Session owns the serial channel to one physical panel and issues the
// ordered command sequences the device requires:
//   - three-step initialization ending in a readiness token
//   - brightness control and status polling
//   - the video lifecycle: stop, load with storage-path fallback, play
//
// A ThemeChanger composes those operations into a single theme change
// (stop, select, transfer, start) with rollback on failure.
//
// # Basic Usage
//
//	transport, err := device.OpenSerial("/dev/ttyACM0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	session := device.New(transport)
//	defer session.Close()
//
//	if _, err := session.Initialize(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := session.LoadVideo(ctx, theme.Candidates("theme06.mp4"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := session.PlayVideo(ctx, result.Selector, result.Path); err != nil {
//	    log.Fatal(err)
//	}
//
// # Concurrency
//
// There is exactly one in-flight command/response exchange per session at any
// time; all operations serialize on an internal mutex. Never open two
// transports to the same device.
//
// # Timing
//
// The panel needs a pause between frames and answers within roughly half a
// second. Both are empirical, not protocol-guaranteed, and are exposed as
// options (WithCommandDelay, WithResponseTimeout) rather than hard-coded.
package device
