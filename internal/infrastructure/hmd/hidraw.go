package hmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// hidraw ioctl request numbers from linux/hidraw.h.
const (
	iocWrite = 1
	iocRead  = 2

	hidrawType = 'H'
	// struct hidraw_devinfo { __u32 bustype; __s16 vendor; __s16 product; }
	hidrawDevInfoSize = 8
)

func ioc(dir, nr, size uintptr) uintptr {
	return dir<<30 | size<<16 | hidrawType<<8 | nr
}

var hidiocgrawinfo = ioc(iocRead, 0x03, hidrawDevInfoSize)

func hidiocsfeature(length int) uintptr {
	return ioc(iocWrite|iocRead, 0x06, uintptr(length))
}

type hidrawDevInfo struct {
	BusType uint32
	Vendor  int16
	Product int16
}

// errTimeout is returned by read when no report arrives in time.
var errTimeout = errors.New("hidraw read timed out")

// hidrawDevice is an open /dev/hidraw node.
type hidrawDevice struct {
	path string
	fd   int
}

func openHidraw(path string) (*hidrawDevice, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &hidrawDevice{path: path, fd: fd}, nil
}

func (d *hidrawDevice) info() (hidrawDevInfo, error) {
	var info hidrawDevInfo
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(d.fd), hidiocgrawinfo, uintptr(unsafe.Pointer(&info)))
	if errno != 0 {
		return info, fmt.Errorf("HIDIOCGRAWINFO %s: %w", d.path, errno)
	}
	return info, nil
}

func (d *hidrawDevice) SetFeature(report []byte) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(d.fd), hidiocsfeature(len(report)), uintptr(unsafe.Pointer(&report[0])))
	if errno != 0 {
		return fmt.Errorf("HIDIOCSFEATURE %s: %w", d.path, errno)
	}
	return nil
}

// Read waits up to timeout for one input report.
func (d *hidrawDevice) Read(buf []byte, timeout time.Duration) (int, error) {
	fds := []unix.PollFd{{Fd: int32(d.fd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, int(timeout.Milliseconds()))
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("poll %s: %w", d.path, err)
		}
		if n == 0 {
			return 0, errTimeout
		}
		break
	}
	n, err := unix.Read(d.fd, buf)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", d.path, err)
	}
	return n, nil
}

func (d *hidrawDevice) Close() error {
	return unix.Close(d.fd)
}

// parseVendorID accepts "1bae" or "0x1bae".
func parseVendorID(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid USB vendor id %q: %w", s, err)
	}
	return uint16(v), nil
}

// findHidraw opens the first node matching glob whose vendor is vendorID.
// It returns nil without error when no node matches.
func findHidraw(glob string, vendorID uint16) (*hidrawDevice, error) {
	paths, err := filepath.Glob(glob)
	if err != nil {
		return nil, fmt.Errorf("bad device glob %q: %w", glob, err)
	}
	for _, path := range paths {
		dev, err := openHidraw(path)
		if err != nil {
			continue
		}
		info, err := dev.info()
		if err == nil && uint16(info.Vendor) == vendorID {
			return dev, nil
		}
		_ = dev.Close()
	}
	return nil, nil
}
