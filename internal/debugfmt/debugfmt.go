// Package debugfmt renders Values for trace output and test-failure
// messages, backed by kr/pretty the way the teacher's own test failures
// do (internal/encoding/yaml's encode_test.go calls pretty.Print on a
// decoded node; protobuf's tests call pretty.Diff between expected and
// actual output).
package debugfmt

import "github.com/kr/pretty"

// Dump renders v as a multi-line, field-labelled string, suitable for
// appending to a test failure message or a TraceCalls log line.
func Dump(v any) string {
	return pretty.Sprint(v)
}

// Diff reports the field-level differences between want and got, or nil
// if they are equal.
func Diff(want, got any) []string {
	return pretty.Diff(want, got)
}
