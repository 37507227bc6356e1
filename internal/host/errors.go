package host

import (
	"github.com/jsl-lang/jsl/internal/langerr"
)

// These constructors return the typed *langerr.Error the evaluator raises
// when a host command reports failure (spec §4.7, §6.2): HostError is
// always the Kind at the evaluator boundary, with the host-specific
// sub-type carried in Details, matching the wire envelope
// {"$jsl_host_error": {"type", "message", "details"}}.

func hostErr(subType, message string, details any) error {
	return langerr.New(langerr.HostError, "%s", message).WithDetails(map[string]any{
		"type":    subType,
		"details": details,
	})
}

// CommandNotFound is returned for any commandId with no registered
// handler (spec §6.2).
func CommandNotFound(commandID string) error {
	return hostErr("CommandNotFound", "host command '"+commandID+"' is not recognized", map[string]any{"command_id": commandID})
}

// InvalidArgumentCount is returned when a command receives the wrong
// number of arguments.
func InvalidArgumentCount(commandID string, expected, received int) error {
	return hostErr("InvalidArgumentCount", "'"+commandID+"' received the wrong number of arguments", map[string]any{
		"expected": expected, "received": received,
	})
}

// InvalidArgumentType is returned when an argument has the wrong JSL
// type.
func InvalidArgumentType(commandID string, index int, expected, received string) error {
	return hostErr("InvalidArgumentType", "'"+commandID+"' received an argument of the wrong type", map[string]any{
		"argument_index": index, "expected_type": expected, "received_type": received,
	})
}

// PermissionDenied is returned when commandID's namespace is recognized
// but not granted by the process's installed Capabilities (spec §6.2's
// "PermissionDenied" dispatcher-may-return kind).
func PermissionDenied(commandID, namespace string) error {
	return hostErr("PermissionDenied", "host command '"+commandID+"' requires ungranted capability '"+namespace+"'", map[string]any{
		"command_id": commandID, "capability": namespace,
	})
}

// UnhandledHostError wraps an unexpected underlying error.
func UnhandledHostError(commandID string, err error) error {
	return hostErr("UnhandledHostError", "an unexpected error occurred on the host: "+err.Error(), map[string]any{"command_id": commandID})
}
