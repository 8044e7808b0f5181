package main

import (
	"fmt"
	"os"

	"github.com/example/visa/internal/cli"
)

func main() {
	env := &cli.Env{}
	rootCmd := cli.NewRootCmd(env)

	err := rootCmd.Execute()
	if closeErr := env.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}
