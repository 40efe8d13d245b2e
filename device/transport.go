package device

import (
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// Transport is the byte-stream boundary between the driver and the panel.
// Implementations must deliver writes as a single uninterrupted frame; a
// partial write leaves the device in an undefined state and the connection
// must be re-established.
type Transport interface {
	io.ReadWriter

	// SetReadTimeout bounds the next Read calls. A Read that expires
	// returns 0 bytes and no error.
	SetReadTimeout(d time.Duration) error
}

// Baudrate of the SM360 serial channel, confirmed from the captures.
const Baudrate = 115200

// serialTransport adapts a serial.Port to the Transport interface.
type serialTransport struct {
	port serial.Port
}

// OpenSerial opens the panel's serial port at the fixed protocol baud rate
// (115200 8N1) and asserts RTS/DTR the way the vendor driver does. The
// returned transport also implements io.Closer.
func OpenSerial(path string) (Transport, error) {
	mode := &serial.Mode{
		BaudRate: Baudrate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	// Observed in the captured init: the Windows driver raises both lines
	// before the first frame.
	if err := port.SetRTS(true); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("set RTS on %s: %w", path, err)
	}
	if err := port.SetDTR(true); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("set DTR on %s: %w", path, err)
	}

	return &serialTransport{port: port}, nil
}

func (t *serialTransport) Read(p []byte) (int, error) {
	return t.port.Read(p)
}

func (t *serialTransport) Write(p []byte) (int, error) {
	return t.port.Write(p)
}

func (t *serialTransport) SetReadTimeout(d time.Duration) error {
	return t.port.SetReadTimeout(d)
}

func (t *serialTransport) Close() error {
	return t.port.Close()
}

// ListPorts returns the serial device paths visible on this host.
func ListPorts() ([]string, error) {
	return serial.GetPortsList()
}
