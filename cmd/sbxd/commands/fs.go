package commands

import (
	"context"
	"io"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/sbxd/internal/files"
)

// FsCommand is a file operation inside a sandbox, all of them share the
// files service and the output format.
type FsCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	nameOrID string
	format   string
	run      func(ctx context.Context, c *FsCommand, svc *files.Service) error
}

func (c FsCommand) Name() string { return c.Cmd.FullCommand() }

func (c *FsCommand) Run(ctx context.Context) error {
	return c.rootCmd.withRuntime(func(rt *runtime) error {
		return c.run(ctx, c, rt.files)
	})
}

func newFsCommand(rootCmd *RootCommand, parent *kingpin.CmdClause, name, help string) *FsCommand {
	c := &FsCommand{rootCmd: rootCmd}
	c.Cmd = parent.Command(name, help)
	c.Cmd.Arg("name-or-id", "Sandbox name or ID.").Required().StringVar(&c.nameOrID)
	return c
}

// NewFsCommands returns the `fs` subcommands.
func NewFsCommands(rootCmd *RootCommand, app *kingpin.Application) []Command {
	fsCmd := app.Command("fs", "Manage files inside a running sandbox.")

	var (
		lsDir                string
		catFile              string
		writeFile            string
		writeContent         string
		writeContentSet      bool
		mkdirDir             string
		rmPath               string
		rmRecursive          bool
		mvSrc, mvDst         string
		cpSrc, cpDst         string
		statPath             string
		findDir, findPattern string
	)

	ls := newFsCommand(rootCmd, fsCmd, "ls", "List a directory.")
	ls.Cmd.Arg("dir", "Absolute directory path.").Default("/").StringVar(&lsDir)
	formatFlag(ls.Cmd, &ls.format)
	ls.run = func(ctx context.Context, c *FsCommand, svc *files.Service) error {
		entries, err := svc.List(ctx, c.nameOrID, lsDir)
		if err != nil {
			return err
		}
		return c.rootCmd.printer(c.format).PrintFiles(entries)
	}

	cat := newFsCommand(rootCmd, fsCmd, "cat", "Print a text file.")
	cat.Cmd.Arg("file", "Absolute file path.").Required().StringVar(&catFile)
	cat.run = func(ctx context.Context, c *FsCommand, svc *files.Service) error {
		content, err := svc.Read(ctx, c.nameOrID, catFile)
		if err != nil {
			return err
		}
		_, err = io.WriteString(c.rootCmd.Stdout, content)
		return err
	}

	write := newFsCommand(rootCmd, fsCmd, "write", "Replace the content of a file, read from stdin unless --content is set.")
	write.Cmd.Arg("file", "Absolute file path.").Required().StringVar(&writeFile)
	write.Cmd.Flag("content", "File content.").IsSetByUser(&writeContentSet).StringVar(&writeContent)
	write.run = func(ctx context.Context, c *FsCommand, svc *files.Service) error {
		content := c.rootCmd.Stdin
		if writeContentSet {
			content = strings.NewReader(writeContent)
		}
		return svc.Write(ctx, c.nameOrID, writeFile, content)
	}

	mkdir := newFsCommand(rootCmd, fsCmd, "mkdir", "Create a directory and its parents.")
	mkdir.Cmd.Arg("dir", "Absolute directory path.").Required().StringVar(&mkdirDir)
	mkdir.run = func(ctx context.Context, c *FsCommand, svc *files.Service) error {
		return svc.Mkdir(ctx, c.nameOrID, mkdirDir)
	}

	rm := newFsCommand(rootCmd, fsCmd, "rm", "Remove a file or directory.")
	rm.Cmd.Arg("path", "Absolute path.").Required().StringVar(&rmPath)
	rm.Cmd.Flag("recursive", "Remove directories and their contents.").Short('r').BoolVar(&rmRecursive)
	rm.run = func(ctx context.Context, c *FsCommand, svc *files.Service) error {
		return svc.Delete(ctx, c.nameOrID, rmPath, rmRecursive)
	}

	mv := newFsCommand(rootCmd, fsCmd, "mv", "Move or rename a file or directory.")
	mv.Cmd.Arg("source", "Absolute source path.").Required().StringVar(&mvSrc)
	mv.Cmd.Arg("destination", "Absolute destination path.").Required().StringVar(&mvDst)
	mv.run = func(ctx context.Context, c *FsCommand, svc *files.Service) error {
		return svc.Move(ctx, c.nameOrID, mvSrc, mvDst)
	}

	cp := newFsCommand(rootCmd, fsCmd, "cp", "Copy a file or directory inside the sandbox.")
	cp.Cmd.Arg("source", "Absolute source path.").Required().StringVar(&cpSrc)
	cp.Cmd.Arg("destination", "Absolute destination path.").Required().StringVar(&cpDst)
	cp.run = func(ctx context.Context, c *FsCommand, svc *files.Service) error {
		return svc.Copy(ctx, c.nameOrID, cpSrc, cpDst)
	}

	stat := newFsCommand(rootCmd, fsCmd, "stat", "Show file information.")
	stat.Cmd.Arg("path", "Absolute path.").Required().StringVar(&statPath)
	formatFlag(stat.Cmd, &stat.format)
	stat.run = func(ctx context.Context, c *FsCommand, svc *files.Service) error {
		entry, err := svc.Stat(ctx, c.nameOrID, statPath)
		if err != nil {
			return err
		}
		return c.rootCmd.printer(c.format).PrintFile(*entry)
	}

	find := newFsCommand(rootCmd, fsCmd, "find", "Find regular files by name pattern.")
	find.Cmd.Arg("dir", "Absolute directory path.").Required().StringVar(&findDir)
	find.Cmd.Arg("pattern", "Shell name pattern (e.g. '*.js').").Required().StringVar(&findPattern)
	formatFlag(find.Cmd, &find.format)
	find.run = func(ctx context.Context, c *FsCommand, svc *files.Service) error {
		found, err := svc.Search(ctx, c.nameOrID, findDir, findPattern)
		if err != nil {
			return err
		}
		return c.rootCmd.printer(c.format).PrintPaths(found)
	}

	return []Command{ls, cat, write, mkdir, rm, mv, cp, stat, find}
}
