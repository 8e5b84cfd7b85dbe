package main

import (
	"fmt"
	"strconv"
	"strings"

	"kdisplay/device/input/mouse"
)

// parseMoves parses a list of "dx:dy" pairs separated by commas. Positive
// dy moves the cursor up, as reported by the device.
func parseMoves(s string) ([]mouse.Packet, error) {
	var packets []mouse.Packet
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		xs, ys, ok := strings.Cut(field, ":")
		if !ok {
			return nil, fmt.Errorf("move %q: expected dx:dy", field)
		}

		dx, err := strconv.Atoi(xs)
		if err != nil {
			return nil, fmt.Errorf("move %q: %w", field, err)
		}
		dy, err := strconv.Atoi(ys)
		if err != nil {
			return nil, fmt.Errorf("move %q: %w", field, err)
		}

		packets = append(packets, mouse.Packet{DX: dx, DY: dy})
	}
	return packets, nil
}
