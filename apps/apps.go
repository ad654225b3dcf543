//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package apps contains the os3 sample applications.
package apps

import (
	"fmt"
	"sort"

	"github.com/markkurossi/os3/kernel"
	"github.com/markkurossi/os3/user"
)

// App defines a sample application.
type App struct {
	Name        string
	Description string
	Main        func(env *kernel.Env) int32
}

// Program returns the loadable program of the application.
func (app *App) Program() *kernel.Program {
	return &kernel.Program{
		Name: app.Name,
		Main: app.Main,
	}
}

var registry = []*App{
	{
		Name:        "hello",
		Description: "print a greeting",
		Main:        hello,
	},
	{
		Name:        "power_3",
		Description: "compute 3^200000 mod 998244353",
		Main:        power(3),
	},
	{
		Name:        "power_5",
		Description: "compute 5^140000 mod 998244353",
		Main:        power(5),
	},
	{
		Name:        "power_7",
		Description: "compute 7^160000 mod 998244353",
		Main:        power(7),
	},
	{
		Name:        "sleep",
		Description: "yield until 3 seconds have elapsed",
		Main:        sleep,
	},
	{
		Name:        "taskinfo",
		Description: "check task_info syscall counts and elapsed time",
		Main:        taskinfo,
	},
	{
		Name:        "badcall",
		Description: "issue unsupported system calls",
		Main:        badcall,
	},
	{
		Name:        "badptr",
		Description: "pass invalid user pointers to system calls",
		Main:        badptr,
	},
	{
		Name:        "fault",
		Description: "crash and get killed by the kernel",
		Main:        fault,
	},
}

// All returns all applications sorted by name.
func All() []*App {
	result := make([]*App, len(registry))
	copy(result, registry)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Names returns the names of all applications in registration
// order. This is the order in which the applications are loaded when
// no applications are named.
func Names() []string {
	var result []string
	for _, app := range registry {
		result = append(result, app.Name)
	}
	return result
}

// Lookup finds the application by its name.
func Lookup(name string) (*App, error) {
	for _, app := range registry {
		if app.Name == name {
			return app, nil
		}
	}
	return nil, fmt.Errorf("unknown application '%s'", name)
}

// Resolve finds the named applications. An empty list selects the
// applications that run by default: all except fault.
func Resolve(names []string) ([]*App, error) {
	if len(names) == 0 {
		for _, app := range registry {
			if app.Name != "fault" {
				names = append(names, app.Name)
			}
		}
	}
	var result []*App
	for _, name := range names {
		app, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, nil
}

// failf reports a failed check and returns the failure exit code.
func failf(env *kernel.Env, format string, a ...interface{}) int32 {
	msg := fmt.Sprintf(format, a...)
	user.NewConsole(env, user.Stderr).Write([]byte("FAIL: " + msg + "\n"))
	return 1
}
