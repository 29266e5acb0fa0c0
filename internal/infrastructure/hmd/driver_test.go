package hmd

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDevice struct {
	features [][]byte
	reports  [][]byte
	closed   bool
	readErr  error
}

func (f *fakeDevice) SetFeature(report []byte) error {
	f.features = append(f.features, append([]byte(nil), report...))
	return nil
}

func (f *fakeDevice) Read(buf []byte, _ time.Duration) (int, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	if len(f.reports) == 0 {
		return 0, errTimeout
	}
	n := copy(buf, f.reports[0])
	f.reports = f.reports[1:]
	return n, nil
}

func (f *fakeDevice) Close() error {
	f.closed = true
	return nil
}

func TestDriver_SetStereoSendsOnlyChanges(t *testing.T) {
	dev := &fakeDevice{}
	d := newDriver(dev)
	ctx := context.Background()

	require.NoError(t, d.SetStereo(ctx, true))
	require.NoError(t, d.SetStereo(ctx, true))
	require.NoError(t, d.SetStereo(ctx, false))

	assert.Equal(t, [][]byte{{reportStereo, 1}, {reportStereo, 0}}, dev.features)
}

func TestDriver_SetEye(t *testing.T) {
	dev := &fakeDevice{}
	d := newDriver(dev)

	require.NoError(t, d.SetEye(context.Background(), entity.ViewRight))
	require.NoError(t, d.SetEye(context.Background(), entity.ViewLeft))

	assert.Equal(t, [][]byte{{reportEye, 1}, {reportEye, 0}}, dev.features)
}

func TestDriver_WaitEyeAckSkipsOtherEye(t *testing.T) {
	dev := &fakeDevice{reports: [][]byte{
		{reportAck, 0},
		{0x7f},
		{reportAck, 1},
	}}
	d := newDriver(dev)

	err := d.WaitEyeAck(context.Background(), entity.ViewRight, time.Second)
	require.NoError(t, err)
	assert.Empty(t, dev.reports)
}

func TestDriver_WaitEyeAckTimesOut(t *testing.T) {
	d := newDriver(&fakeDevice{reports: [][]byte{{reportAck, 0}}})

	err := d.WaitEyeAck(context.Background(), entity.ViewRight, 10*time.Millisecond)
	assert.ErrorIs(t, err, ErrAckTimeout)
}

func TestDriver_WaitEyeAckPropagatesReadErrors(t *testing.T) {
	readErr := errors.New("device unplugged")
	d := newDriver(&fakeDevice{readErr: readErr})

	err := d.WaitEyeAck(context.Background(), entity.ViewLeft, time.Second)
	assert.ErrorIs(t, err, readErr)
}

func TestDriver_CloseRestoresMono(t *testing.T) {
	dev := &fakeDevice{}
	d := newDriver(dev)
	require.NoError(t, d.SetStereo(context.Background(), true))

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())

	assert.Equal(t, []byte{reportStereo, 0}, dev.features[len(dev.features)-1])
	assert.True(t, dev.closed)
	assert.False(t, d.Present())
}

func TestDriver_NotPresent(t *testing.T) {
	d := &Driver{}
	ctx := context.Background()

	assert.False(t, d.Present())
	assert.ErrorIs(t, d.SetStereo(ctx, true), ErrNotPresent)
	assert.ErrorIs(t, d.SetEye(ctx, entity.ViewLeft), ErrNotPresent)
	assert.ErrorIs(t, d.WaitEyeAck(ctx, entity.ViewLeft, time.Millisecond), ErrNotPresent)
	assert.NoError(t, d.Close())
}

func TestOpen_NoMatchingNodes(t *testing.T) {
	d, err := Open(context.Background(), Config{
		DeviceGlob: filepath.Join(t.TempDir(), "hidraw*"),
		VendorID:   "1bae",
	})
	require.NoError(t, err)
	assert.False(t, d.Present())
}

func TestParseVendorID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint16
		wantErr bool
	}{
		{in: "1bae", want: 0x1bae},
		{in: "0x1BAE", want: 0x1bae},
		{in: " 046d ", want: 0x046d},
		{in: "vuzix", wantErr: true},
		{in: "12345", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseVendorID(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIoctlNumbers(t *testing.T) {
	assert.Equal(t, uintptr(0x80084803), hidiocgrawinfo)
	assert.Equal(t, uintptr(0xC0024806), hidiocsfeature(2))
}
