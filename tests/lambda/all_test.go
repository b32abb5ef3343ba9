package lambda_test

import (
	"bytes"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/WilliamRagstad/tlc-bidir/config"
)

var (
	testPath = func() string {
		cwd, err := os.Getwd()
		panicErr(err)
		return cwd
	}()
	projectRoot = filepath.Dir(filepath.Dir(testPath))
	testDir     = os.DirFS(testPath)
	inOut       = func() map[string]string {
		m := make(map[string]string)
		ins, err := fs.Glob(testDir, "*.in.txt")
		panicErr(err)
		for _, in := range ins {
			m[in] = strings.TrimSuffix(in, ".in.txt") + ".out.txt"
		}
		return m
	}()
)

func panicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// flags returns the arguments given on a leading "#!" line.
func flags(src []byte) []string {
	first, _, _ := bytes.Cut(src, []byte("\n"))
	if !bytes.HasPrefix(first, []byte("#!")) {
		return nil
	}
	return strings.Fields(string(first[2:]))
}

func TestLambda(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "lambda")
	build := exec.Command("go", "build", "-o", bin, "./cmd/lambda")
	build.Dir = projectRoot
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatal(err)
	}
	home := t.TempDir()
	for in, out := range inOut {
		in, out := in, out
		t.Run(strings.TrimSuffix(in, ".in.txt"), func(t *testing.T) {
			src, err := fs.ReadFile(testDir, in)
			if err != nil {
				t.Fatal(err)
			}
			cmd := exec.Command(bin, append(flags(src), in)...)
			cmd.Dir = testPath
			cmd.Env = append(os.Environ(), "HOME="+home, config.EnvVar+"=", "NO_COLOR=1")
			got, err := cmd.CombinedOutput()
			if _, ok := err.(*exec.ExitError); !ok && err != nil {
				t.Fatal(err)
			}
			want, err := fs.ReadFile(testDir, out)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, want) {
				t.Errorf("%s does not match output:\n`%s`", out, got)
			}
		})
	}
}

func TestExpr(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "lambda")
	build := exec.Command("go", "build", "-o", bin, "./cmd/lambda")
	build.Dir = projectRoot
	if err := build.Run(); err != nil {
		t.Fatal(err)
	}
	cmd := exec.Command(bin, "-e", "K = λx. λy. x;", "K", "a", "b")
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir(), config.EnvVar+"=", "NO_COLOR=1")
	got, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("%v: %s", err, got)
	}
	if string(got) != "a\n" {
		t.Errorf("got %q, want %q", got, "a\n")
	}

	cmd = exec.Command(bin, "-color", "sometimes", "-e", "a")
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir(), config.EnvVar+"=")
	err = cmd.Run()
	if exit, ok := err.(*exec.ExitError); !ok || exit.ExitCode() != 2 {
		t.Errorf("bad -color: got %v, want exit status 2", err)
	}
}

func TestConfigFile(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "lambda")
	build := exec.Command("go", "build", "-o", bin, "./cmd/lambda")
	build.Dir = projectRoot
	if err := build.Run(); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	cfg := filepath.Join(dir, "lambda.yaml")
	panicErr(os.WriteFile(cfg, []byte("std: true\ncolor: never\n"), 0o644))
	cmd := exec.Command(bin, "-config", cfg, "-e", "fst (pair a b)")
	cmd.Env = append(os.Environ(), "HOME="+dir)
	got, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("%v: %s", err, got)
	}
	if string(got) != "a\n" {
		t.Errorf("got %q, want %q", got, "a\n")
	}
}
