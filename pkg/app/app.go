package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/tebeka/atexit"
	"golang.org/x/term"

	"github.com/zurustar/basilc/pkg/cli"
	"github.com/zurustar/basilc/pkg/compiler"
	"github.com/zurustar/basilc/pkg/logger"
	"github.com/zurustar/basilc/pkg/program"
	"github.com/zurustar/basilc/pkg/script"
	"github.com/zurustar/basilc/pkg/vm"
)

// Application はアプリケーションのメインロジックを管理する
type Application struct {
	config *cli.Config
	log    *slog.Logger

	stdout     io.Writer
	stderr     io.Writer
	stdin      io.Reader
	isTerminal func() bool
	system     vm.System
}

// Option Applicationの設定
type Option func(*Application)

// WithStdout スクリプトの出力先を設定
func WithStdout(w io.Writer) Option {
	return func(app *Application) {
		app.stdout = w
	}
}

// WithStderr ログとシェルコマンドのエラー出力先を設定
func WithStderr(w io.Writer) Option {
	return func(app *Application) {
		app.stderr = w
	}
}

// WithStdin ask()の入力元を設定
func WithStdin(r io.Reader) Option {
	return func(app *Application) {
		app.stdin = r
	}
}

// WithTerminalCheck 出力先が端末かどうかの判定を差し替える
func WithTerminalCheck(f func() bool) Option {
	return func(app *Application) {
		app.isTerminal = f
	}
}

// WithSystem yolo()とnaptime()が使うホストシステムを差し替える
func WithSystem(s vm.System) Option {
	return func(app *Application) {
		app.system = s
	}
}

// New Applicationを作成
func New(opts ...Option) *Application {
	app := &Application{
		stdout: os.Stdout,
		stderr: os.Stderr,
		stdin:  os.Stdin,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
		system: vm.HostSystem{},
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Run アプリケーションを実行
func (app *Application) Run(args []string) error {
	// 1. コマンドライン引数の解析
	if err := app.parseArgs(args); err != nil {
		if errors.Is(err, cli.ErrNoScript) {
			cli.PrintHelp(app.stderr)
		}
		return fmt.Errorf("failed to parse args: %w", err)
	}

	if app.config.ShowHelp {
		cli.PrintHelp(app.stdout)
		return nil
	}

	// 2. ロガーの初期化
	if err := app.initLogger(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.log.Info("BasilC Interpreter", "script", app.config.ScriptPath)

	// 3. スクリプトファイルの読み込み
	s, err := script.NewLoader(app.config.Encoding).Load(app.config.ScriptPath)
	if err != nil {
		return fmt.Errorf("failed to load script: %w", err)
	}

	app.log.Info("Script file", "name", s.FileName, "size", s.Size, "lines", len(s.Lines))
	app.log.Debug("Script content preview", "name", s.FileName, "preview", truncate(s.Content, 100))

	// 4. プログラムの構築
	machine := app.newVM()
	if err := compiler.Compile(machine, s.Lines); err != nil {
		app.log.Error("Compilation failed", "error", err)
		return fmt.Errorf("failed to compile script: %w", err)
	}

	p := machine.Program()
	app.log.Info("Script compiled successfully", "instruction_count", p.Len())
	app.log.Debug("Instructions generated", "instructions", formatProgramPreview(p, 10))

	// --dump の場合はYAMLを出力して終了
	if app.config.Dump {
		return p.WriteYAML(app.stdout)
	}

	// 5. 実行
	atexit.Register(machine.ResetColors)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	runErr := machine.Run(ctx)
	elapsed := time.Since(start)

	// エラー時も色を戻す
	machine.ResetColors()

	if app.config.ShowTimer {
		fmt.Fprintf(app.stdout, "Execution Time: %f seconds\n", elapsed.Seconds())
	}

	if runErr != nil {
		return fmt.Errorf("failed to run script: %w", runErr)
	}

	app.log.Info("Application terminated normally", "elapsed", elapsed)
	return nil
}

// parseArgs コマンドライン引数を解析
func (app *Application) parseArgs(args []string) error {
	config, err := cli.ParseArgs(args)
	if err != nil {
		return err
	}
	app.config = config
	return nil
}

// initLogger ロガーを初期化（--quiet の場合はログを捨てる）
func (app *Application) initLogger() error {
	var w io.Writer = app.stderr
	if app.config.Quiet {
		w = io.Discard
	}
	if err := logger.InitLogger(app.config.LogLevel, w); err != nil {
		return err
	}
	app.log = logger.GetLogger()
	return nil
}

// newVM 設定に応じてVMを作成
func (app *Application) newVM() *vm.VM {
	monochrome := app.config.Monochrome || !app.isTerminal()
	if monochrome {
		app.log.Debug("Color output disabled")
	}

	return vm.New(
		vm.WithOutput(app.stdout),
		vm.WithErrorOutput(app.stderr),
		vm.WithInput(app.stdin),
		vm.WithSystem(app.system),
		vm.WithMonochrome(monochrome),
		vm.WithLogger(app.log),
	)
}

// truncate 文字列を指定した長さで切り詰める
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// formatProgramPreview 命令列のプレビューを生成（デバッグ用）
func formatProgramPreview(p *program.Program, maxCount int) string {
	if p.Len() == 0 {
		return "[]"
	}

	count := p.Len()
	if count > maxCount {
		count = maxCount
	}

	var b strings.Builder
	for i := 0; i < count; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "{Cmd: %s}", p.At(i).Command)
	}

	if p.Len() > maxCount {
		fmt.Fprintf(&b, ", ... (%d more)", p.Len()-maxCount)
	}

	return "[" + b.String() + "]"
}
