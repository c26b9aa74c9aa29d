//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binary    = "bin/village-viewer"
	shaderDir = "internal/engine/shader/shaders"
)

type Build mg.Namespace

// Builds the viewer binary into bin/.
func (Build) Viewer() error {
	mg.Deps(Shaders.Validate)
	if err := os.MkdirAll(filepath.Dir(binary), 0755); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("build", "-o", binary, "./cmd/viewer"), withStream())
	return err
}

// Removes build output.
func (Build) Clean() error {
	return sh.Rm(filepath.Dir(binary))
}

type Test mg.Namespace

// Runs every package test.
func (Test) All() error {
	return sh.RunV("go", "test", "./...")
}

// Runs the tests with the race detector.
func (Test) Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}

type Shaders mg.Namespace

// Checks the GLSL sources with glslangValidator when it is installed.
func (Shaders) Validate() error {
	if !hasCommand("glslangValidator") {
		fmt.Println("glslangValidator not found, skipping shader validation")
		return nil
	}
	files, err := shaderFiles()
	if err != nil {
		return err
	}
	for _, f := range files {
		if _, err := executeCmd("glslangValidator", withArgs(f)); err != nil {
			return err
		}
	}
	return nil
}

type Run mg.Namespace

// Runs the viewer with shaders loaded from disk and reloaded on save.
func (Run) Viewer() error {
	_, err := executeCmd("go", withArgs("run", "./cmd/viewer", "-shaders", shaderDir, "-debug"), withStream())
	return err
}
