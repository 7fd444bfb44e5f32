package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoScript スクリプトパスが指定されていない
var ErrNoScript = errors.New("script path is required")

// Config はコマンドライン引数から解析された設定を保持する
type Config struct {
	ScriptPath string // 実行するスクリプトのパス
	LogLevel   string // ログレベル（debug, info, warn, error）
	Encoding   string // スクリプトの文字コード（WHATWGラベル）
	Monochrome bool   // ANSIカラーコードを出力しない
	Quiet      bool   // 診断ログを出力しない
	ShowTimer  bool   // 実行時間を表示
	Dump       bool   // プログラムをYAMLで出力して終了
	ShowHelp   bool   // ヘルプ表示フラグ
}

// 値を取るフラグ（reorderArgsで次の引数を一緒に移動する）
var valueFlags = map[string]bool{
	"-l": true, "-log-level": true, "--log-level": true,
	"-e": true, "-encoding": true, "--encoding": true,
}

// ParseArgs コマンドライン引数を解析してConfigを返す
func ParseArgs(args []string) (*Config, error) {
	// 引数を並べ替え：フラグを前に、位置引数を後ろに
	reorderedArgs := reorderArgs(args)

	fs := flag.NewFlagSet("basilc", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	config := &Config{}

	fs.BoolVar(&config.Monochrome, "monochrome", false, "ANSIカラーコードを出力しない")
	fs.BoolVar(&config.Monochrome, "m", false, "ANSIカラーコードを出力しない（短縮形）")
	fs.BoolVar(&config.Quiet, "quiet", false, "診断ログを出力しない")
	fs.BoolVar(&config.Quiet, "d", false, "診断ログを出力しない（短縮形）")
	fs.BoolVar(&config.ShowTimer, "timer", false, "実行時間を表示")
	fs.BoolVar(&config.ShowTimer, "t", false, "実行時間を表示（短縮形）")
	fs.StringVar(&config.LogLevel, "log-level", "info", "ログレベル（debug, info, warn, error）")
	fs.StringVar(&config.LogLevel, "l", "info", "ログレベル（短縮形）")
	fs.StringVar(&config.Encoding, "encoding", "utf-8", "スクリプトの文字コード")
	fs.StringVar(&config.Encoding, "e", "utf-8", "スクリプトの文字コード（短縮形）")
	fs.BoolVar(&config.Dump, "dump", false, "プログラムをYAMLで出力して終了")
	fs.BoolVar(&config.ShowHelp, "help", false, "ヘルプを表示")
	fs.BoolVar(&config.ShowHelp, "h", false, "ヘルプを表示（短縮形）")

	if err := fs.Parse(reorderedArgs); err != nil {
		return nil, err
	}

	// 環境変数からの設定（コマンドラインフラグが優先）
	if config.LogLevel == "info" {
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			config.LogLevel = strings.ToLower(logLevelEnv)
		}
	}
	if config.Encoding == "utf-8" {
		if encodingEnv := os.Getenv("BASILC_ENCODING"); encodingEnv != "" {
			config.Encoding = encodingEnv
		}
	}
	// https://no-color.org/
	if !config.Monochrome && os.Getenv("NO_COLOR") != "" {
		config.Monochrome = true
	}

	// ログレベルの検証
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[config.LogLevel] {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.LogLevel)
	}

	if config.ShowHelp {
		return config, nil
	}

	// 位置引数（スクリプトのパス）
	switch fs.NArg() {
	case 0:
		return nil, ErrNoScript
	case 1:
		config.ScriptPath = fs.Arg(0)
	default:
		return nil, fmt.Errorf("expected one script path, got %d: %v", fs.NArg(), fs.Args())
	}

	return config, nil
}

// reorderArgs 引数を並べ替えて、フラグを前に、位置引数を後ろに配置する
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// "--" 以降はすべて位置引数
		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}

		// フラグかどうかを判定（-または--で始まる）
		if len(arg) > 1 && arg[0] == '-' {
			flags = append(flags, arg)

			// 値を取るフラグ（-l debug のような場合）は次の引数も追加
			if valueFlags[arg] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			// 位置引数
			positional = append(positional, arg)
		}
	}

	// フラグを前に、位置引数を後ろに配置
	return append(flags, positional...)
}

// PrintHelp ヘルプメッセージを表示
func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `basilc - BasilC Interpreter

Usage:
  basilc [options] <script.basilc>

Options:
  -m, --monochrome            ANSIカラーコードを出力しない
  -d, --quiet                 診断ログを出力しない
  -t, --timer                 実行時間を表示
  -l, --log-level <level>     ログレベル: debug, info, warn, error（デフォルト: info）
  -e, --encoding <name>       スクリプトの文字コード（デフォルト: utf-8、例: shift_jis）
  --dump                      リンク済みプログラムをYAMLで出力して終了
  -h, --help                  このヘルプを表示

Environment Variables:
  LOG_LEVEL=<level>           ログレベル
  BASILC_ENCODING=<name>      スクリプトの文字コード
  NO_COLOR=1                  カラー出力を無効化

Examples:
  basilc hello.basilc
  basilc -m -t hello.basilc
  basilc --dump hello.basilc
`)
}
