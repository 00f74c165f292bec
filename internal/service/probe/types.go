// Package probe defines domain types for startup probes.
package probe

import "fmt"

// Target is one store checked at startup.
type Target struct {
	Name    string // store label printed on the console, e.g. "Redis"
	Factory ConnectionFactory
}

// Console line markers.
const (
	MarkOK   = "OK"
	MarkFail = "FAIL"
)

// Line formats the console line for a probe outcome:
//
//	Sentinel-Java: Redis Connection [OK]
func Line(service, name string, ok bool) string {
	mark := MarkFail
	if ok {
		mark = MarkOK
	}
	return fmt.Sprintf("%s: %s Connection [%s]", service, name, mark)
}
