//go:build !linux

package main

import (
	"errors"

	"kdisplay/kernel/hal/bootinfo"
)

type device struct {
	buf  []byte
	info bootinfo.FramebufferInfo
}

func openDevice(string) (*device, error) {
	return nil, errors.New("framebuffer devices are only supported on linux")
}

func (d *device) Close() error { return nil }
