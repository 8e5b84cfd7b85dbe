package bootinfo

import (
	"strconv"
	"strings"
)

var (
	cmdLine    string
	cmdLineKV  map[string]string
	cmdLineSet bool
)

// SetBootCmdLine records the raw kernel command line passed by the boot
// loader.
func SetBootCmdLine(line string) {
	cmdLine = line
	cmdLineKV = nil
	cmdLineSet = true
}

// GetBootCmdLine returns the command line key-value pairs passed to the
// kernel. Arguments are separated by whitespace. Arguments without a value
// such as "desktop" are reported with the value "on". If an argument appears
// more than once the last occurrence wins.
func GetBootCmdLine() map[string]string {
	if cmdLineKV != nil {
		return cmdLineKV
	}

	cmdLineKV = make(map[string]string)
	if !cmdLineSet {
		return cmdLineKV
	}

	for _, arg := range strings.Fields(cmdLine) {
		key, value, found := strings.Cut(arg, "=")
		if key == "" {
			continue
		}

		if !found {
			value = "on"
		}
		cmdLineKV[key] = value
	}

	return cmdLineKV
}

// CmdLineString returns the value of key or def if the key is missing.
func CmdLineString(key, def string) string {
	if v, ok := GetBootCmdLine()[key]; ok {
		return v
	}
	return def
}

// CmdLineUint returns the value of key parsed as an unsigned integer. The
// default is returned if the key is missing or its value is not a number.
func CmdLineUint(key string, def uint32) uint32 {
	v, ok := GetBootCmdLine()[key]
	if !ok {
		return def
	}

	n, err := strconv.ParseUint(v, 0, 32)
	if err != nil {
		return def
	}
	return uint32(n)
}

// CmdLineBool returns the value of key interpreted as a switch. The values
// "on", "true", "yes" and "1" enable the switch and "off", "false", "no" and
// "0" disable it; anything else yields def.
func CmdLineBool(key string, def bool) bool {
	switch strings.ToLower(GetBootCmdLine()[key]) {
	case "on", "true", "yes", "1":
		return true
	case "off", "false", "no", "0":
		return false
	default:
		return def
	}
}
