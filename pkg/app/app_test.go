package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"

	"github.com/zurustar/basilc/pkg/cli"
	"github.com/zurustar/basilc/pkg/compiler"
	"github.com/zurustar/basilc/pkg/compiler/parser"
	"github.com/zurustar/basilc/pkg/vm"
)

// recordingSystem はyolo()とnaptime()の呼び出しを記録する
type recordingSystem struct {
	commands []string
	sleeps   []time.Duration
}

func (s *recordingSystem) Run(_ context.Context, command string, stdout, _ io.Writer) error {
	s.commands = append(s.commands, command)
	_, err := io.WriteString(stdout, "ran: "+command+"\n")
	return err
}

func (s *recordingSystem) Sleep(_ context.Context, d time.Duration) error {
	s.sleeps = append(s.sleeps, d)
	return nil
}

var _ = Describe("Application", func() {
	var (
		dir      string
		stdout   *bytes.Buffer
		stderr   *bytes.Buffer
		stdin    *strings.Reader
		terminal bool
		system   *recordingSystem
		app      *Application
	)

	writeScript := func(name, content string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		// 環境変数の影響を受けないようにする
		GinkgoT().Setenv("NO_COLOR", "")
		GinkgoT().Setenv("LOG_LEVEL", "")
		GinkgoT().Setenv("BASILC_ENCODING", "")

		dir = GinkgoT().TempDir()
		stdout = &bytes.Buffer{}
		stderr = &bytes.Buffer{}
		stdin = strings.NewReader("")
		terminal = false
		system = &recordingSystem{}
	})

	JustBeforeEach(func() {
		app = New(
			WithStdout(stdout),
			WithStderr(stderr),
			WithStdin(stdin),
			WithTerminalCheck(func() bool { return terminal }),
			WithSystem(system),
		)
	})

	It("should run a script end to end", func() {
		path := writeScript("hello.basilc", strings.Join([]string{
			"#!/usr/bin/env basilc",
			"BasilC#// greeting",
			"BasilC-define(name, World)",
			"BasilC-say(Hello $name)",
			"say(plain, with, commas)",
			"BasilC-end()",
			"BasilC-say(unreachable)",
		}, "\n"))

		Expect(app.Run([]string{"-d", path})).To(Succeed())
		Expect(stdout.String()).To(Equal("Hello World\nplain, with, commas\n"))
	})

	It("should jump over statements with goto", func() {
		path := writeScript("jump.basilc", strings.Join([]string{
			"say(a)",
			"goto(skip)",
			"say(b)",
			"label(skip)",
			"say(c)",
		}, "\n"))

		Expect(app.Run([]string{"-d", path})).To(Succeed())
		Expect(stdout.String()).To(Equal("a\nc\n"))
	})

	It("should run a block only when its condition holds", func() {
		path := writeScript("if.basilc", strings.Join([]string{
			"define(n, 3)",
			"if($n > 2)",
			"say(big)",
			"endif()",
			"if($n < 2)",
			"say(small)",
			"endif()",
			"say(done)",
		}, "\n"))

		Expect(app.Run([]string{"-d", path})).To(Succeed())
		Expect(stdout.String()).To(Equal("big\ndone\n"))
	})

	Context("with input", func() {
		BeforeEach(func() {
			stdin = strings.NewReader("Alice\r\n")
		})

		It("should read answers from stdin", func() {
			path := writeScript("ask.basilc", "define(who, nobody)\nask(Name? , who)\nsay(hi $who)\n")

			Expect(app.Run([]string{"-d", path})).To(Succeed())
			Expect(stdout.String()).To(Equal("Name? hi Alice\n"))
		})
	})

	It("should hand yolo and naptime to the host system", func() {
		path := writeScript("sys.basilc", "yolo(echo a, b)\nnaptime(2)\n")

		Expect(app.Run([]string{"-d", path})).To(Succeed())
		Expect(system.commands).To(Equal([]string{"echo a, b"}))
		Expect(system.sleeps).To(Equal([]time.Duration{2 * time.Second}))
		Expect(stdout.String()).To(Equal("ran: echo a, b\n"))
	})

	Context("with colours", func() {
		BeforeEach(func() {
			terminal = true
		})

		It("should emit escape sequences on a terminal", func() {
			path := writeScript("tint.basilc", "tint(red)\ntintbg(blue)\nsay(x)\n")

			Expect(app.Run([]string{"-d", path})).To(Succeed())
			Expect(stdout.String()).To(Equal("\033[31m\033[44mx\n\033[0m"))
		})

		It("should honour --monochrome", func() {
			path := writeScript("tint.basilc", "tint(red)\nsay(x)\n")

			Expect(app.Run([]string{"-d", "-m", path})).To(Succeed())
			Expect(stdout.String()).To(Equal("x\n"))
		})
	})

	It("should not colour output that is not a terminal", func() {
		path := writeScript("tint.basilc", "tint(green)\nsay(x)\n")

		Expect(app.Run([]string{"-d", path})).To(Succeed())
		Expect(stdout.String()).To(Equal("x\n"))
	})

	It("should print the execution time with --timer", func() {
		path := writeScript("timer.basilc", "say(x)\n")

		Expect(app.Run([]string{"-d", "--timer", path})).To(Succeed())
		Expect(stdout.String()).To(MatchRegexp(`^x\nExecution Time: [0-9]+\.[0-9]{6} seconds\n$`))
	})

	It("should dump the program as YAML without running it", func() {
		path := writeScript("dump.basilc", "if(1 = 1)\nsay(in)\nendif()\n")

		Expect(app.Run([]string{"--dump", "-d", path})).To(Succeed())

		var doc struct {
			Instructions []struct {
				Command string   `yaml:"command"`
				Args    []string `yaml:"args"`
				Execute bool     `yaml:"execute"`
			} `yaml:"instructions"`
		}
		Expect(yaml.Unmarshal(stdout.Bytes(), &doc)).To(Succeed())
		Expect(doc.Instructions).To(HaveLen(3))
		Expect(doc.Instructions[0].Command).To(Equal("if"))
		Expect(doc.Instructions[0].Execute).To(BeTrue())
		Expect(doc.Instructions[1].Args).To(Equal([]string{"in"}))
		Expect(doc.Instructions[1].Execute).To(BeFalse())
		Expect(doc.Instructions[2].Execute).To(BeFalse())
	})

	It("should write diagnostics to stderr unless quiet", func() {
		path := writeScript("log.basilc", "say(x)\n")

		Expect(app.Run([]string{path})).To(Succeed())
		Expect(stderr.String()).To(ContainSubstring("BasilC Interpreter"))
	})

	Describe("errors", func() {
		It("should print usage when no script is given", func() {
			err := app.Run([]string{})
			Expect(err).To(MatchError(cli.ErrNoScript))
			Expect(stderr.String()).To(ContainSubstring("Usage:"))
		})

		It("should print help with -h", func() {
			Expect(app.Run([]string{"-h"})).To(Succeed())
			Expect(stdout.String()).To(ContainSubstring("Usage:"))
		})

		It("should report a missing script", func() {
			err := app.Run([]string{"-d", filepath.Join(dir, "missing.basilc")})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("failed to load script"))
		})

		It("should stop at the first parse error", func() {
			path := writeScript("bad.basilc", "say(ok)\nshout(hello)\nsay(never)\n")

			err := app.Run([]string{"-d", path})
			Expect(err).To(MatchError(parser.ErrInvalidCommand))

			var ce *compiler.CompileError
			Expect(errors.As(err, &ce)).To(BeTrue())
			Expect(ce.Line).To(Equal(2))
			Expect(stdout.String()).To(BeEmpty())
		})

		It("should reject an unclosed if", func() {
			path := writeScript("open.basilc", "if(1 = 1)\nsay(x)\n")

			err := app.Run([]string{"-d", path})
			Expect(err).To(MatchError(compiler.ErrUnterminatedBlock))
		})

		It("should report a missing label at run time", func() {
			path := writeScript("goto.basilc", "say(before)\ngoto(nowhere)\nsay(after)\n")

			err := app.Run([]string{"-d", path})
			Expect(err).To(MatchError(vm.ErrLabelNotFound))
			Expect(stdout.String()).To(Equal("before\n"))
		})

		It("should classify a malformed condition", func() {
			path := writeScript("cond.basilc", "if(12)\nendif()\n")

			err := app.Run([]string{"-d", path})
			Expect(err).To(MatchError(vm.ErrInvalidConditional))

			var re *vm.RuntimeError
			Expect(errors.As(err, &re)).To(BeTrue())
			Expect(re.Type).To(Equal(vm.ErrorInvalidConditional))
		})
	})
})
