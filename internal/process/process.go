package process

import (
	"path/filepath"
	"strings"

	"github.com/google/gops/goprocess"
)

// Process is a running Go program as seen by gops.
type Process struct {
	PID   int
	PPID  int
	Exec  string
	Path  string
	Agent bool
}

// List returns every Go process visible to the current user.
func List() []Process {
	found := goprocess.FindAll()

	procs := make([]Process, 0, len(found))
	for _, p := range found {
		procs = append(procs, Process{
			PID:   p.PID,
			PPID:  p.PPID,
			Exec:  p.Exec,
			Path:  p.Path,
			Agent: p.Agent,
		})
	}

	return procs
}

// Find returns the processes whose executable name contains name.
func Find(name string) []Process {
	return filter(List(), name)
}

func filter(procs []Process, name string) []Process {
	name = strings.ToLower(name)

	var out []Process

	for _, p := range procs {
		exec := strings.ToLower(p.Exec)
		base := strings.ToLower(filepath.Base(p.Path))

		if strings.Contains(exec, name) || strings.Contains(base, name) {
			out = append(out, p)
		}
	}

	return out
}

// IsRunning reports whether pid belongs to a running Go process.
func IsRunning(pid int) bool {
	for _, p := range List() {
		if p.PID == pid {
			return true
		}
	}

	return false
}
