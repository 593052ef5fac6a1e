package util

import (
	"fmt"
	"os"
	"strings"
)

// AcpiCallPath is the control file exposed by the acpi_call kernel module.
const AcpiCallPath = "/proc/acpi/call"

// ExecuteAcpiCallAt performs an acpi_call round trip on the given control file.
func ExecuteAcpiCallAt(path, method string, args ...int64) (string, error) {
	return executeAcpiCallAt(path, path, method, args)
}

// executeAcpiCallAt writes the call to writePath and reads the result from readPath.
// In production both paths are the same (/proc/acpi/call). They are split for testing.
func executeAcpiCallAt(writePath, readPath, method string, args []int64) (string, error) {
	call := FormatAcpiCall(method, args...)

	if err := os.WriteFile(writePath, []byte(call), 0); err != nil {
		return "", fmt.Errorf("acpi_call: write failed: %w", err)
	}

	data, err := os.ReadFile(readPath)
	if err != nil {
		return "", fmt.Errorf("acpi_call: read failed: %w", err)
	}

	result := strings.TrimRight(strings.TrimSpace(string(data)), "\x00")
	return strings.TrimSpace(result), nil
}

// FormatAcpiCall renders a call line in the syntax understood by acpi_call,
// integer arguments are passed as hex literals.
func FormatAcpiCall(method string, args ...int64) string {
	var sb strings.Builder
	sb.WriteString(method)
	for _, arg := range args {
		sb.WriteString(fmt.Sprintf(" 0x%x", arg))
	}
	return sb.String()
}
