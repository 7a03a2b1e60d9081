package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/sbxd/internal/app/update"
	"github.com/slok/sbxd/internal/model"
)

type UpdateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	nameOrID      string
	restartPolicy string
	memory        string
	cpu           float64
	cpuSet        bool
}

// NewUpdateCommand returns the update command.
func NewUpdateCommand(rootCmd *RootCommand, app *kingpin.Application) *UpdateCommand {
	c := &UpdateCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("update", "Update the restart policy and resources of a sandbox.")
	c.Cmd.Arg("name-or-id", "Sandbox name or ID.").Required().StringVar(&c.nameOrID)
	c.Cmd.Flag("restart", "Restart policy.").EnumVar(&c.restartPolicy,
		string(model.RestartPolicyNo), string(model.RestartPolicyAlways), string(model.RestartPolicyOnFailure), string(model.RestartPolicyUnlessStopped))
	c.Cmd.Flag("memory", "Memory limit (e.g. 512m, 2g).").Short('m').StringVar(&c.memory)
	c.Cmd.Flag("cpu", "Number of CPUs (can be fractional).").IsSetByUser(&c.cpuSet).Float64Var(&c.cpu)

	return c
}

func (c UpdateCommand) Name() string { return c.Cmd.FullCommand() }

func (c UpdateCommand) Run(ctx context.Context) error {
	var upd model.SandboxUpdate
	if c.restartPolicy != "" {
		rp := model.RestartPolicy(c.restartPolicy)
		upd.RestartPolicy = &rp
	}
	if c.memory != "" {
		upd.Memory = &c.memory
	}
	if c.cpuSet {
		upd.CPU = &c.cpu
	}

	return c.rootCmd.withRuntime(func(rt *runtime) error {
		svc, err := update.NewService(update.ServiceConfig{Engine: rt.engine, Logger: c.rootCmd.Logger})
		if err != nil {
			return fmt.Errorf("could not create service: %w", err)
		}

		sb, err := svc.Run(ctx, update.Request{NameOrID: c.nameOrID, Update: upd})
		if err != nil {
			return fmt.Errorf("could not update sandbox: %w", err)
		}

		fmt.Fprintf(c.rootCmd.Stdout, "Sandbox %s updated\n", sb.Name)
		return nil
	})
}
