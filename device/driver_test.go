package device

import (
	"io"
	"kdisplay/kernel"
	"sort"
	"testing"
)

type namedDriver string

func (d namedDriver) DriverName() string                      { return string(d) }
func (d namedDriver) DriverVersion() (uint16, uint16, uint16) { return 0, 0, 1 }
func (d namedDriver) DriverInit(_ io.Writer) *kernel.Error    { return nil }

func infoFor(order DetectOrder, name string) *DriverInfo {
	return &DriverInfo{
		Order: order,
		Probe: func() Driver { return namedDriver(name) },
	}
}

func nameOf(info *DriverInfo) string {
	return info.Probe().DriverName()
}

func TestDetectOrderValues(t *testing.T) {
	// The framebuffer must come up before the console, the console before
	// the compositor and input drivers last.
	chain := []DetectOrder{
		DetectOrderEarly,
		DetectOrderBeforeCompositor,
		DetectOrderCompositor,
		DetectOrderLast,
	}

	for i := 1; i < len(chain); i++ {
		if chain[i-1] >= chain[i] {
			t.Errorf("expected detect order %d to be lower than %d", chain[i-1], chain[i])
		}
	}
}

func TestDriverInfoListSorting(t *testing.T) {
	defer func() {
		registeredDrivers = nil
	}()

	specs := []struct {
		register []*DriverInfo
		exp      []string
	}{
		{
			nil,
			nil,
		},
		{
			[]*DriverInfo{
				infoFor(DetectOrderLast, "ps2mouse"),
				infoFor(DetectOrderCompositor, "compositor"),
				infoFor(DetectOrderLast, "ps2keyboard"),
				infoFor(DetectOrderBeforeCompositor, "console"),
				infoFor(DetectOrderEarly, "lfb"),
			},
			// drivers sharing an order keep their registration order
			[]string{"lfb", "console", "compositor", "ps2mouse", "ps2keyboard"},
		},
	}

	for specIndex, spec := range specs {
		registeredDrivers = nil
		for _, info := range spec.register {
			RegisterDriver(info)
		}

		list := DriverList()
		if exp, got := len(spec.register), len(list); got != exp {
			t.Errorf("[spec %d] expected DriverList() to return %d entries; got %d", specIndex, exp, got)
			continue
		}

		sort.Stable(list)
		for i, exp := range spec.exp {
			if got := nameOf(list[i]); got != exp {
				t.Errorf("[spec %d] expected sorted entry %d to be %q; got %q", specIndex, i, exp, got)
			}
		}
	}
}
