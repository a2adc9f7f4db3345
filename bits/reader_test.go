package bits

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/sigurn/crc16"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frameWithChecksum(payload string) string {
	table := crc16.MakeTable(crc16.CRC16_X_25)

	return fmt.Sprintf("%s*%04x", payload, crc16.Checksum([]byte(payload), table))
}

func TestReadTransmissionStream(t *testing.T) {
	input := "D2FE28\n\nC200B40A82\n"

	reader := NewReader(strings.NewReader(input))

	first, err := reader.ReadTransmission()
	require.NoError(t, err)
	assert.Equal(t, "D2FE28", first.Hex)
	assert.Equal(t, uint64(6), first.VersionChecksum)
	assert.Equal(t, uint64(2021), first.Value)

	second, err := reader.ReadTransmission()
	require.NoError(t, err)
	assert.Equal(t, "C200B40A82", second.Hex)
	assert.Equal(t, uint64(3), second.Value)

	_, err = reader.ReadTransmission()
	assert.Equal(t, io.EOF, err)
}

func TestReadTransmissionSkipsInvalidFrames(t *testing.T) {
	input := strings.Join([]string{
		"not hex at all",
		"D2",     // truncated packet
		"D2FE28", // valid
	}, "\n")

	reader := NewReader(strings.NewReader(input))

	transmission, err := reader.ReadTransmission()
	require.NoError(t, err)
	assert.Equal(t, uint64(2021), transmission.Value)
}

func TestReadTransmissionVerifiesChecksumTrailer(t *testing.T) {
	input := strings.Join([]string{
		"D2FE28*0000", // wrong checksum
		"D2FE28*zzzz", // unparseable trailer
		frameWithChecksum("D2FE28"),
	}, "\n")

	reader := NewReader(strings.NewReader(input))

	transmission, err := reader.ReadTransmission()
	require.NoError(t, err)
	assert.Equal(t, "D2FE28", transmission.Hex)
	assert.Equal(t, uint64(2021), transmission.Value)

	// The fingerprint matches the verified trailer.
	table := crc16.MakeTable(crc16.CRC16_X_25)
	assert.Equal(t, crc16.Checksum([]byte("D2FE28"), table), transmission.Checksum)
}

func TestReadTransmissionWithoutTrailerStillFingerprints(t *testing.T) {
	reader := NewReader(strings.NewReader("D2FE28\n"))

	transmission, err := reader.ReadTransmission()
	require.NoError(t, err)

	table := crc16.MakeTable(crc16.CRC16_X_25)
	assert.Equal(t, crc16.Checksum([]byte("D2FE28"), table), transmission.Checksum)
}

func TestTransmissionString(t *testing.T) {
	reader := NewReader(strings.NewReader("D2FE28\n"))

	transmission, err := reader.ReadTransmission()
	require.NoError(t, err)

	rendered := transmission.String()

	assert.Contains(t, rendered, `"hex":"D2FE28"`)
	assert.Contains(t, rendered, `"value":2021`)
	assert.Contains(t, rendered, `"version":6`)
}

func TestTransmissionStringRendersOperators(t *testing.T) {
	reader := NewReader(strings.NewReader("C200B40A82\n"))

	transmission, err := reader.ReadTransmission()
	require.NoError(t, err)

	assert.Contains(t, transmission.String(), `"op":"sum"`)
}
