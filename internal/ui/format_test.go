package ui_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/trobanga/ladle/internal/ui"
)

func TestFormatPct(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{99.5, "99.50%"},
		{1, "1.00%"},
		{0.2563, "0.2563%"},
		{0.01, "0.0100%"},
		{0.0042, "4.200e-03%"},
		{0, "0.000e+00%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ui.FormatPct(tt.in))
	}
}

func TestFormatPPM(t *testing.T) {
	assert.Equal(t, "18.3 ppm", ui.FormatPPM(18.25001))
	assert.Equal(t, "0.0 ppm", ui.FormatPPM(0))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", ui.FormatDuration(250*time.Millisecond))
	assert.Equal(t, "1m30s", ui.FormatDuration(90*time.Second))
	assert.Equal(t, "2h5m", ui.FormatDuration(2*time.Hour+5*time.Minute))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", ui.FormatBytes(512))
	assert.Equal(t, "1.50 KB", ui.FormatBytes(1536))
	assert.Equal(t, "2.00 MB", ui.FormatBytes(2*1024*1024))
	assert.Equal(t, "1.00 GB", ui.FormatBytes(1024*1024*1024))
}
