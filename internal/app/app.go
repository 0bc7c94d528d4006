//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/kobzarvs/texed/internal/buffer"
	"github.com/kobzarvs/texed/internal/clipboard"
	"github.com/kobzarvs/texed/internal/config"
	"github.com/kobzarvs/texed/internal/editor"
	"github.com/kobzarvs/texed/internal/gitinfo"
	"github.com/kobzarvs/texed/internal/logger"
	"github.com/kobzarvs/texed/internal/screen"
	"github.com/kobzarvs/texed/internal/syntax"
	"github.com/kobzarvs/texed/internal/terminal"
	"github.com/kobzarvs/texed/internal/treesitter"
)

const Version = "0.1.0"

var ErrUsage = errors.New("usage: texed <filename>")

const (
	helpMessage      = "HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find"
	gitCheckInterval = 2 * time.Second
	checkTimeout     = 2 * time.Second
	clearScreen      = "\x1b[2J\x1b[H"
)

// App is the top-level runtime for texed.
type App struct {
	args []string

	In  *os.File
	Out *os.File
}

func New(args []string) *App {
	return &App{args: args, In: os.Stdin, Out: os.Stdout}
}

func (a *App) Run() (err error) {
	if len(a.args) != 1 {
		return ErrUsage
	}
	path := a.args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	langs, err := config.LoadLanguages()
	if err != nil {
		return fmt.Errorf("languages: %w", err)
	}
	if err := logger.Init(os.Getenv("TEXED_DEBUG") == "1"); err != nil {
		fmt.Fprintln(os.Stderr, "texed: logging disabled:", err)
	}
	defer logger.Close()

	db := syntax.NewDB(langs.Descriptors()...)
	doc, err := buffer.Open(path, db)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	fileType := syntax.FileType(path, doc.FlatText())
	logger.Info("opened", "file", path, "rows", doc.NumRows(), "filetype", fileType)

	ed := editor.New(cfg, doc, clipboard.New(cfg.Editor.SystemClipboard))
	ed.SetFileType(fileType)

	var checks <-chan treesitter.Result
	if cfg.Editor.SyntaxCheck && treesitter.Supports(fileType) {
		ts := treesitter.New(checkTimeout)
		if err := ts.Start(); err != nil {
			return err
		}
		defer func() { _ = ts.Stop() }()
		checks = ts.Events()
		ed.OnSave = func(d *buffer.Document) {
			ts.Check(d.Filename, fileType, d.FlatText())
		}
		if doc.NumRows() > 0 {
			ts.Check(path, fileType, doc.FlatText())
		}
	}

	var git *gitinfo.Watcher
	if cfg.Editor.ShowGitBranch {
		git = gitinfo.NewWatcher(path, gitCheckInterval)
	}

	session, err := terminal.Open(a.In, a.Out)
	if err != nil {
		return err
	}
	defer session.Close()
	defer func() {
		if r := recover(); r != nil {
			_ = session.Close()
			logger.Error("panic", "value", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	rows, cols, err := session.WindowSize()
	if err != nil {
		return err
	}
	ed.SetSize(rows, cols)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP, syscall.SIGINT)
	defer stop()
	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer signal.Stop(winch)

	ed.SetMessage(helpMessage)
	defer func() { _, _ = session.Write([]byte(clearScreen)) }()

	for {
		select {
		case <-ctx.Done():
			logger.Info("terminated by signal")
			return nil
		case <-winch:
			rows, cols, err := session.WindowSize()
			if err != nil {
				return err
			}
			logger.Debug("resize", "rows", rows, "cols", cols)
			ed.SetSize(rows, cols)
		case res := <-checks:
			logger.Debug("syntax check", "file", res.Path, "errors", res.Errors, "err", res.Err)
			ed.SetMessage("%s", res.Summary())
		default:
		}
		if git != nil {
			ed.SetBranch(git.Branch())
		}

		v := ed.View()
		v.Version = Version
		if _, err := session.Write(screen.Compose(v)); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}

		k, err := session.ReadKey()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		quit, err := ed.HandleKey(k)
		if err != nil {
			return fmt.Errorf("edit: %w", err)
		}
		if quit {
			logger.Info("quit", "file", path, "dirty", doc.Dirty)
			return nil
		}
	}
}
