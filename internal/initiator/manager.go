package initiator

import (
	"errors"
	"fmt"
	"os"

	"github.com/meysam81/oneoffctl/internal/config"
	"github.com/meysam81/oneoffctl/internal/logger"
	"github.com/meysam81/oneoffctl/internal/utils"
	"github.com/meysam81/oneoffctl/internal/utils/pathutils"
)

// ErrExists is returned when the config file is present and Force is unset.
var ErrExists = errors.New("config file already exists")

type Initiator struct {
	ConfigPath string
	Force      bool
}

func New(path string, force bool) *Initiator {
	return &Initiator{ConfigPath: path, Force: force}
}

// Execute writes the default configuration and creates the cache directory.
// It returns the path written.
func (i *Initiator) Execute() (string, error) {
	path := i.ConfigPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return "", err
		}
		path = p
	}

	exists, err := utils.FileExists(path)
	if err != nil {
		return "", err
	}
	if exists && !i.Force {
		return path, ErrExists
	}

	cfg := config.Default()
	if err := config.Save(&cfg, path); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	logger.Debug("wrote %s", path)

	stateDir, err := pathutils.StateDir(config.AppName)
	if err != nil {
		return path, err
	}
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return path, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return path, nil
}
