package main

import (
	"os"

	"github.com/mappingstudio/mapping-studio/internal/pkg/cli/cmd"
	"github.com/mappingstudio/mapping-studio/internal/pkg/cli/prompt"
)

func main() {
	root := cmd.NewRootCommand(os.Stdin, os.Stdout, os.Stderr, prompt.NewSurvey())
	os.Exit(root.Execute())
}
