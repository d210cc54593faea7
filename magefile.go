//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target to run when none is specified
var Default = Build

// Build compiles the project binaries into the bin/ directory.
func Build() error {
	fmt.Println("Building...")
	return sh.Run("go", "build", "-o", "./bin", "./...")
}

// Install copies the mkfixture binary to /usr/local/bin.
func Install() error {
	mg.Deps(Build)
	fmt.Println("Installing...")
	return sh.Run("cp", "bin/mkfixture", "/usr/local/bin/mkfixture")
}

// Test runs all tests in the project with verbose output.
func Test() error {
	fmt.Println("Running Tests...")
	return sh.Run("go", "test", "-v", "./...")
}

// TestInference runs the type inference and statement rendering tests only.
func TestInference() error {
	fmt.Println("Running Inference Tests...")
	return sh.Run("go", "test", "-test.fullpath=true", "-timeout", "30s", "-run", "^(TestInfer|TestGen)", "github.com/darianmavgo/mkfixture/converters/common")
}

// Fixtures regenerates the per-source fixtures and all.sql in the directory
// named by the FIXTURE_DIR environment variable (default testdata).
func Fixtures() error {
	mg.Deps(Build)
	dir := os.Getenv("FIXTURE_DIR")
	if dir == "" {
		dir = "testdata"
	}
	fmt.Printf("Generating fixtures in %s...\n", dir)
	return sh.RunV("./bin/mkfixture", "--log", dir)
}

// Clean removes the bin directory and test outputs.
func Clean() error {
	fmt.Println("Cleaning...")
	if err := os.RemoveAll("bin"); err != nil {
		return err
	}
	if err := os.RemoveAll("test_output"); err != nil {
		return err
	}
	return nil
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println("Running go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}

// Check runs formatting and linting checks (fmt, vet).
func Check() error {
	mg.Deps(Fmt, Vet)
	return nil
}

// Fmt runs go fmt ./...
func Fmt() error {
	fmt.Println("Running go fmt...")
	return sh.Run("go", "fmt", "./...")
}

// Vet runs go vet ./...
func Vet() error {
	fmt.Println("Running go vet...")
	return sh.Run("go", "vet", "./...")
}
