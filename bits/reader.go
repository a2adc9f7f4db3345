package bits

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sigurn/crc16"
)

// Reader decodes a stream of newline-framed transmissions. A frame is a
// line of hex digits, optionally followed by "*CCCC" where CCCC is the
// CRC16/X-25 of the hex payload text.
type Reader interface {
	ReadTransmission() (*Transmission, error)
}

type transmissionReader struct {
	scanner  *bufio.Scanner
	crcTable *crc16.Table
}

func NewReader(r io.Reader) Reader {
	return &transmissionReader{
		scanner:  bufio.NewScanner(r),
		crcTable: crc16.MakeTable(crc16.CRC16_X_25),
	}
}

// ReadTransmission returns the next valid transmission in the stream.
// Invalid frames are skipped; a single frame still decodes
// all-or-nothing. I/O errors and EOF end the stream.
func (r *transmissionReader) ReadTransmission() (*Transmission, error) {
	for {
		transmission, err := r.readFrame()

		if err == nil {
			return transmission, nil
		}

		switch err.(type) {
		case *InvalidTransmission, *MalformedGroup, *OutOfBounds:
			continue
		}

		return nil, err
	}
}

func (r *transmissionReader) readFrame() (*Transmission, error) {
	for {
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return nil, err
			}

			return nil, io.EOF
		}

		line := strings.TrimSpace(r.scanner.Text())

		if len(line) == 0 {
			continue
		}

		return r.decodeFrame(line)
	}
}

func (r *transmissionReader) decodeFrame(line string) (*Transmission, error) {
	payload := line
	checksumIndex := strings.IndexByte(line, '*')

	if checksumIndex >= 0 {
		payload = line[:checksumIndex]
	}

	checksum := crc16.Checksum([]byte(payload), r.crcTable)

	if checksumIndex >= 0 {
		trailer := line[checksumIndex+1:]

		expected, err := strconv.ParseUint(trailer, 16, 16)

		if err != nil || len(trailer) != 4 {
			return nil, &InvalidTransmission{
				error: fmt.Errorf("invalid checksum trailer %q", trailer),
			}
		}

		if uint16(expected) != checksum {
			return nil, &InvalidTransmission{
				error: fmt.Errorf("checksum mismatch: expected %04x, calculated %04x", expected, checksum),
			}
		}
	}

	packet, err := Decode(payload)

	if err != nil {
		return nil, err
	}

	return &Transmission{
		Hex:             payload,
		Checksum:        checksum,
		VersionChecksum: SumVersions(packet),
		Value:           Eval(packet),
		Packet:          packet,
	}, nil
}
