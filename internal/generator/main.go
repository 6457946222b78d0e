package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/consensys/bavard"
)

const copyrightHolder = "The go-rocdl Authors"

//go:generate go run main.go
func main() {
	bgen := bavard.NewBatchGenerator(copyrightHolder, 2026, "go-rocdl")

	data := struct {
		Intrinsics []intrinsic
	}{
		Intrinsics: []intrinsic{
			{
				Name:      "RawBufferLoad",
				Mnemonic:  "rocdl.raw.buffer.load",
				Doc:       "reads a value of the given type from a buffer resource",
				HasData:   false,
				HasResult: true,
			},
			{
				Name:      "RawBufferStore",
				Mnemonic:  "rocdl.raw.buffer.store",
				Doc:       "writes a value to a buffer resource",
				HasData:   true,
				HasResult: false,
			},
			{
				Name:      "RawBufferAtomicFadd",
				Mnemonic:  "rocdl.raw.buffer.atomic.fadd",
				Doc:       "atomically adds a floating point value to a buffer resource",
				HasData:   true,
				HasResult: false,
			},
		},
	}

	assertNoError(bgen.Generate(data, "rocdl", "templates",
		bavard.Entry{
			File:      "../../pkg/ir/rocdl/intrinsics.go",
			Templates: []string{"intrinsics.go.tmpl"},
		},
	))

	// run gofmt on the generated output
	runCmd("gofmt", "-w", "../../pkg/ir/rocdl/intrinsics.go")
}

// intrinsic describes a single raw buffer intrinsic.  All three share the
// resource / voffset / soffset / aux operand tail, differing only in whether
// a data operand leads and whether a result is produced.
type intrinsic struct {
	Name      string
	Mnemonic  string
	Doc       string
	HasData   bool
	HasResult bool
}

func runCmd(name string, arg ...string) {
	fmt.Println(name, strings.Join(arg, " "))
	cmd := exec.Command(name, arg...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	assertNoError(cmd.Run())
}

func assertNoError(err error) {
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
