package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncoderModeCodecArgs(t *testing.T) {
	assert.Contains(t, EncoderSoftware.codecArgs(), "libx264")
	assert.Contains(t, EncoderNVENC.codecArgs(), "h264_nvenc")
	assert.Contains(t, EncoderQSV.codecArgs(), "h264_qsv")
	assert.Contains(t, EncoderAMF.codecArgs(), "h264_amf")
	assert.Contains(t, EncoderAuto.codecArgs(), "libx264")
}

func TestPutFloat32LERoundTrips(t *testing.T) {
	buf := make([]byte, 4)
	putFloat32LE(buf, 0.5)
	// 0.5f little-endian bytes: 00 00 00 3F
	assert.Equal(t, byte(0x00), buf[0])
	assert.Equal(t, byte(0x00), buf[1])
	assert.Equal(t, byte(0x00), buf[2])
	assert.Equal(t, byte(0x3F), buf[3])
}
