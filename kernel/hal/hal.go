// Package hal probes the registered device drivers and initializes the ones
// whose hardware is present.
package hal

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"kdisplay/device"
	"kdisplay/kernel/kfmt"
	"kdisplay/kernel/klog"
)

var (
	// activeDrivers tracks all initialized device drivers.
	activeDrivers []device.Driver
	strBuf        bytes.Buffer

	driverListFn = device.DriverList
	initOutputFn = func() io.Writer { return klog.Writer(zapcore.InfoLevel) }
)

// ActiveDrivers returns the drivers that were successfully initialized.
func ActiveDrivers() []device.Driver {
	return activeDrivers
}

// DetectHardware probes for hardware devices and initializes the appropriate
// drivers. Drivers that fail to initialize are skipped; their errors are
// combined into the returned error.
func DetectHardware() error {
	// Get driver list and sort by detection priority
	drivers := driverListFn()
	sort.Stable(drivers)

	return probe(drivers)
}

// probe executes the probe function for each driver and initializes every
// driver it returns. Driver init output is tagged with the driver name and
// version.
func probe(driverInfoList device.DriverInfoList) error {
	var (
		w    = kfmt.PrefixWriter{Sink: initOutputFn()}
		errs error
	)

	for _, info := range driverInfoList {
		drv := info.Probe()
		if drv == nil {
			continue
		}

		strBuf.Reset()
		major, minor, patch := drv.DriverVersion()
		fmt.Fprintf(&strBuf, "[hal] %s(%d.%d.%d): ", drv.DriverName(), major, minor, patch)
		w.Prefix = strBuf.Bytes()

		if err := drv.DriverInit(&w); err != nil {
			fmt.Fprintf(&w, "init failed: %s\n", err.Message)
			klog.L().Error("driver init failed",
				zap.String("driver", drv.DriverName()),
				zap.String("module", err.Module),
				zap.String("reason", err.Message),
			)
			errs = multierr.Append(errs, err)
			continue
		}

		fmt.Fprintf(&w, "initialized\n")
		activeDrivers = append(activeDrivers, drv)
	}

	return errs
}
