package script

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/zurustar/basilc/pkg/fileutil"
)

// DefaultEncoding スクリプトの既定の文字コード
const DefaultEncoding = "utf-8"

// Script はスクリプトファイルを表す
type Script struct {
	Path     string   // 実際に読み込んだパス
	FileName string   // ファイル名
	Content  string   // UTF-8に変換された内容
	Lines    []string // 行末記号を除いた各行
	Size     int64    // ファイルサイズ
}

// Loader はスクリプトファイルの読み込みを行う
type Loader struct {
	encoding string
}

// NewLoader Loaderを作成（encodingはWHATWGの文字コード名、空ならUTF-8）
func NewLoader(encoding string) *Loader {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	return &Loader{
		encoding: encoding,
	}
}

// Load スクリプトファイルを読み込む
func (l *Loader) Load(path string) (*Script, error) {
	// 大文字小文字を無視してパスを解決
	resolved, err := fileutil.ResolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to find script %s: %w", path, err)
	}

	// ファイル情報を取得
	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", resolved)
	}

	// ファイルを読み込む
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// UTF-8に変換
	content, err := Decode(data, l.encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to convert encoding: %w", err)
	}

	return &Script{
		Path:     resolved,
		FileName: filepath.Base(resolved),
		Content:  content,
		Lines:    SplitLines(content),
		Size:     info.Size(),
	}, nil
}

// Decode 指定した文字コードからUTF-8に変換（BOMがあればそちらを優先）
func Decode(data []byte, encoding string) (string, error) {
	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return "", fmt.Errorf("unsupported encoding %q: %w", encoding, err)
	}

	decoder := unicode.BOMOverride(enc.NewDecoder())
	reader := transform.NewReader(bytes.NewReader(data), decoder)

	utf8Data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", encoding, err)
	}

	return string(utf8Data), nil
}

// SplitLines 内容を行に分割（\r\nにも対応、最終行は改行がなくても含める）
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}

	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
