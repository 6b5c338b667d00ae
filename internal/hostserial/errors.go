package hostserial

import "errors"

var (
	// ErrInexactBaud indicates a rate the board cannot generate exactly.
	ErrInexactBaud = errors.New("baud rate not a multiple of 16")

	// ErrDataBits indicates an unsupported character length.
	ErrDataBits = errors.New("data bits must be 5 to 8")

	// ErrParity indicates an unknown parity name.
	ErrParity = errors.New("unknown parity")

	// ErrStopBits indicates an unsupported stop bit count.
	ErrStopBits = errors.New("stop bits must be 1, 1.5 or 2")

	// ErrNoPort indicates a profile without a port.
	ErrNoPort = errors.New("no port")

	// ErrUnknownProfile indicates a profile name not in the file.
	ErrUnknownProfile = errors.New("unknown profile")

	// ErrEmptyImage indicates a firmware image without data.
	ErrEmptyImage = errors.New("image holds no data")

	// ErrOutsideFlash indicates image data outside the flash array.
	ErrOutsideFlash = errors.New("data outside flash")

	// ErrUnknownCommand indicates a monitor command that does not exist.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrCommandArgs indicates bad arguments to a monitor command.
	ErrCommandArgs = errors.New("bad command arguments")
)
