package model

import "fmt"

// OperationClass is the semantic class of an operation label.
type OperationClass string

// Operation classes. Anything that is neither a sale nor a return is
// "other": fees, logistics, adjustments and the like.
const (
	OpSale   OperationClass = "sale"
	OpReturn OperationClass = "return"
	OpOther  OperationClass = "other"
)

// ParseOperationClass validates a stored or user-supplied class string.
func ParseOperationClass(s string) (OperationClass, error) {
	switch OperationClass(s) {
	case OpSale, OpReturn, OpOther:
		return OperationClass(s), nil
	default:
		return "", fmt.Errorf("unknown operation class %q", s)
	}
}

// OpsMap maps free-text operation labels to their class.
type OpsMap map[string]OperationClass

// Classify returns the class for a label, defaulting to OpOther for
// labels the map does not know.
func (m OpsMap) Classify(label string) OperationClass {
	if class, ok := m[label]; ok {
		return class
	}
	return OpOther
}

// Merge copies every entry of other into m, overwriting on conflict.
func (m OpsMap) Merge(other OpsMap) {
	for label, class := range other {
		m[label] = class
	}
}
