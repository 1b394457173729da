package builtin

import (
	"bytes"
	"os"
	"os/exec"
	"strconv"

	"github.com/akovalkov/m4-processor/macro"
)

// shellCommand returns the platform shell invocation for a string
// command, grounded on the teacher's subprocess() in recipe.go, which
// likewise starts a named program with an explicit argument vector
// rather than shelling out through /bin/sh; here the shell itself is
// the program, since syscmd/esyscmd hand it a whole command line.
func shellCommand(cmd string) *exec.Cmd {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	return exec.Command(shell, "-c", cmd)
}

// bSyscmd implements syscmd(cmd) (spec §4.6): run cmd via the platform
// shell, inheriting stdout/stderr; nothing is pushed back as expansion
// text, only the exit code is recorded for sysval.
func bSyscmd(h macro.Host, args []macro.Value) (string, error) {
	c := shellCommand(args[1].Str())
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	h.SetReturnCode(exitCode(c.Run()))
	return "", nil
}

// bEsyscmd implements esyscmd(cmd): run cmd via the platform shell,
// capturing stdout+stderr and returning it as expansion text.
func bEsyscmd(h macro.Host, args []macro.Value) (string, error) {
	c := shellCommand(args[1].Str())
	var buf bytes.Buffer
	c.Stdout = &buf
	c.Stderr = &buf
	h.SetReturnCode(exitCode(c.Run()))
	return buf.String(), nil
}

// bSysval implements sysval: the last recorded exit code, as a string.
func bSysval(h macro.Host, args []macro.Value) (string, error) {
	return strconv.Itoa(h.ReturnCode()), nil
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return -1
}
