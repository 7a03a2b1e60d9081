package testutils

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
)

// RunSBXD runs the sbxd binary with whitespace separated arguments. Use
// RunSBXDArgs for arguments that have spaces.
func RunSBXD(ctx context.Context, env []string, binary, cmdArgs string, nolog bool) (stdout, stderr []byte, err error) {
	return RunSBXDArgs(ctx, env, binary, strings.Fields(cmdArgs), nil, nolog)
}

// RunSBXDArgs runs the sbxd binary, stdin is optional. The extra env
// overrides the test process env.
func RunSBXDArgs(ctx context.Context, env []string, binary string, args []string, stdin []byte, nolog bool) (stdout, stderr []byte, err error) {
	cmd := exec.CommandContext(ctx, binary, args...)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout, cmd.Stderr = &outBuf, &errBuf
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	cmd.Env = append(os.Environ(), env...)
	if nolog {
		cmd.Env = append(cmd.Env, "SBXD_NO_LOG=true")
	}

	err = cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}
