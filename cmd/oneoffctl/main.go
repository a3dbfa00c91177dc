package main

import (
	"errors"
	"os"

	cmd "github.com/meysam81/oneoffctl/internal"
	"github.com/meysam81/oneoffctl/internal/logger"
	"github.com/meysam81/oneoffctl/internal/middleware"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, middleware.ErrLogged) {
			logger.LogError("%v", err)
		}
		os.Exit(1)
	}
}
