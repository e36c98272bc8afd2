//go:build linux

package linux

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// SysfsI2CDevPath is the sysfs class directory listing i2c-dev adapters.
const SysfsI2CDevPath = "/sys/class/i2c-dev"

// Adapter describes an I2C adapter exposed through i2c-dev.
type Adapter struct {
	Number int    // Adapter number N in /dev/i2c-N
	Name   string // Driver-provided adapter name
}

// Path returns the adapter's device node.
func (a Adapter) Path() string {
	return fmt.Sprintf(DevPath, a.Number)
}

// Adapters lists the i2c-dev adapters registered with the kernel, ordered
// by number.
func Adapters() ([]Adapter, error) {
	return scanAdapters(SysfsI2CDevPath)
}

// scanAdapters reads adapter entries named "i2c-N" under root. Entries whose
// name attribute cannot be read are listed with an empty name.
func scanAdapters(root string) ([]Adapter, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var adapters []Adapter
	for _, entry := range entries {
		num, ok := strings.CutPrefix(entry.Name(), "i2c-")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(num)
		if err != nil || n < 0 {
			continue
		}
		name, _ := readAttr(filepath.Join(root, entry.Name(), "name"))
		adapters = append(adapters, Adapter{Number: n, Name: name})
	}

	sort.Slice(adapters, func(i, j int) bool {
		return adapters[i].Number < adapters[j].Number
	})
	return adapters, nil
}

// readAttr reads a sysfs attribute, trimming the trailing newline.
func readAttr(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
