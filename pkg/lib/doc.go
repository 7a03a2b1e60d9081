// Package lib provides a Go SDK for managing sbxd sandboxes programmatically.
//
// The SDK talks directly to the container runtime, the same way the sbxd
// CLI does, so applications can create sandboxes, run commands and manage
// their files without shelling out to the binary.
//
// # Quick Start
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	sb, err := client.CreateSandbox(ctx, lib.CreateSandboxOpts{
//	    Name:         "my-sandbox",
//	    Image:        "ubuntu:24.04",
//	    Dependencies: []string{"node:20"},
//	    Ports:        []string{"3000:3000"},
//	})
//
//	res, err := client.Exec(ctx, "my-sandbox", []string{"node", "--version"}, nil)
//	fmt.Println(res.Stdout)
//
//	client.StopSandbox(ctx, "my-sandbox", 0)
//	client.RemoveSandbox(ctx, "my-sandbox", false)
//
// # Provisioning
//
// Dependencies are installed after the sandbox has started. When one of them
// fails the sandbox is kept running for inspection and [Client.CreateSandbox]
// returns both the sandbox and an error matching [ErrProvisioning].
//
// # Files
//
// Files inside a running sandbox can be listed, read, written and moved with
// absolute sandbox paths:
//
//	client.WriteFile(ctx, "my-sandbox", "/app/index.js", strings.NewReader(src))
//	entries, _ := client.ListFiles(ctx, "my-sandbox", "/app")
//
// Binary safe transfers between the host and the sandbox use [Client.CopyTo]
// and [Client.CopyFrom].
//
// # Errors
//
// Errors returned by the SDK can be checked with [errors.Is] against
// [ErrNotFound], [ErrAlreadyExists], [ErrNotValid], [ErrRuntimeUnavailable]
// and [ErrProvisioning].
package lib
