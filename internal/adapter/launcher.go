package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmcdole/scrub/internal/domain"
)

// Launcher starts an mpv-compatible player with a JSON IPC socket
type Launcher struct {
	command   string   // configured player command, empty to auto-detect
	args      []string // additional arguments for the player
	startFlag string   // offset flag prefix, e.g., "--start="
	ipcFlag   string   // IPC socket flag prefix, e.g., "--input-ipc-server="
	logger    *slog.Logger
}

// playerConfig defines how to drive a player that embeds mpv
type playerConfig struct {
	offsetFlag string              // Resume offset flag (e.g., "--start=")
	ipcFlag    string              // IPC socket flag (e.g., "--input-ipc-server=")
	platforms  map[string][]string // Platform -> commands to try in order
}

// players registry - single source of truth for all player configuration.
// Only players that expose mpv's IPC protocol can back the scrubber.
var players = map[string]playerConfig{
	"mpv": {
		offsetFlag: "--start=",
		ipcFlag:    "--input-ipc-server=",
		platforms: map[string][]string{
			"darwin":  {"mpv"},
			"linux":   {"mpv"},
			"freebsd": {"mpv"},
		},
	},
	"celluloid": {
		offsetFlag: "--mpv-start=",
		ipcFlag:    "--mpv-input-ipc-server=",
		platforms: map[string][]string{
			"linux": {"celluloid"},
		},
	},
	"iina": {
		offsetFlag: "--mpv-start=",
		ipcFlag:    "--mpv-input-ipc-server=",
		platforms: map[string][]string{
			"darwin": {"iina-cli", "/Applications/IINA.app/Contents/MacOS/iina-cli"},
		},
	},
}

// candidatePlayers defines the preferred player order for each platform
var candidatePlayers = map[string][]string{
	"darwin":  {"mpv", "iina"},
	"linux":   {"mpv", "celluloid"},
	"freebsd": {"mpv"},
}

// Process is a launched player
type Process struct {
	cmd    *exec.Cmd
	Player string
	Socket string
}

// Stop terminates the player and waits for it to exit
func (p *Process) Stop() error {
	if p == nil || p.cmd == nil || p.cmd.Process == nil {
		return nil
	}
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("failed to stop %s: %w", p.Player, err)
	}
	_ = p.cmd.Wait()
	return nil
}

// NewLauncher creates a new Launcher with auto-detection of known player flags
func NewLauncher(command string, args []string, startFlag, ipcFlag string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}

	// Auto-detect flags for known players if not explicitly configured
	if command != "" {
		if playerCfg, ok := players[playerName(command)]; ok {
			if startFlag == "" {
				startFlag = playerCfg.offsetFlag
				logger.Debug("auto-detected player offset flag", "player", playerName(command), "flag", startFlag)
			}
			if ipcFlag == "" {
				ipcFlag = playerCfg.ipcFlag
			}
		}
	}

	return &Launcher{
		command:   command,
		args:      args,
		startFlag: startFlag,
		ipcFlag:   ipcFlag,
		logger:    logger,
	}
}

// playerName normalizes a command path to a registry key
func playerName(command string) string {
	base := filepath.Base(command)
	// Strip any extension (for Windows .exe)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ToLower(base)
	return strings.TrimSuffix(base, "-cli")
}

// buildArgs assembles player arguments. The media path always goes last.
func buildArgs(extra []string, ipcFlag, socket, startFlag string, startOffset time.Duration, path string) []string {
	args := append([]string{}, extra...)
	if ipcFlag != "" && socket != "" {
		args = append(args, ipcFlag+socket)
	}
	if startOffset > 0 && startFlag != "" {
		// Handle flags that need a space (like "-ss 120") vs no space ("--start=120")
		if strings.HasSuffix(startFlag, " ") {
			args = append(args, strings.TrimSuffix(startFlag, " "))
			args = append(args, fmt.Sprintf("%.0f", startOffset.Seconds()))
		} else {
			args = append(args, fmt.Sprintf("%s%.0f", startFlag, startOffset.Seconds()))
		}
	}
	return append(args, path)
}

// tryLaunchWithCommand attempts to start a CLI command (Linux/macOS)
// Returns the running command if it exists in PATH, error otherwise
func tryLaunchWithCommand(command string, args []string) (*exec.Cmd, error) {
	// Check if command exists in PATH
	if _, err := exec.LookPath(command); err != nil {
		return nil, err
	}

	cmd := exec.Command(command, args...)
	if err := cmd.Start(); err != nil { // Start async, don't wait
		return nil, err
	}
	return cmd, nil
}

// detectAndLaunch tries candidate players in order
func (l *Launcher) detectAndLaunch(path, socket string, startOffset time.Duration) (*Process, error) {
	candidates, ok := candidatePlayers[runtime.GOOS]
	if !ok {
		candidates = candidatePlayers["linux"] // default
	}

	for _, name := range candidates {
		player, exists := players[name]
		if !exists {
			continue
		}

		commands, ok := player.platforms[runtime.GOOS]
		if !ok {
			l.logger.Debug("player not available on this platform", "player", name, "platform", runtime.GOOS)
			continue
		}

		args := buildArgs(l.args, player.ipcFlag, socket, player.offsetFlag, startOffset, path)
		for _, command := range commands {
			cmd, err := tryLaunchWithCommand(command, args)
			if err == nil {
				l.logger.Info("launched with detected player", "player", name, "path", command)
				return &Process{cmd: cmd, Player: name, Socket: socket}, nil
			}
			l.logger.Debug("launch path not available", "player", name, "path", command, "error", err)
		}
	}

	return nil, domain.ErrPlayerNotFound
}

// Launch opens a media file in the configured player or the first detected one
func (l *Launcher) Launch(path, socket string, startOffset time.Duration) (*Process, error) {
	if _, err := os.Stat(path); err != nil && !strings.Contains(path, "://") {
		return nil, fmt.Errorf("%w: %s", domain.ErrMediaNotFound, path)
	}

	// Tier 1: User configured a specific player
	if l.command != "" {
		if l.ipcFlag == "" {
			return nil, fmt.Errorf("%w: %s has no known IPC flag, configure player.ipc_flag", domain.ErrPlayerNotFound, l.command)
		}
		args := buildArgs(l.args, l.ipcFlag, socket, l.startFlag, startOffset, path)
		l.logger.Info("launching player", "command", l.command, "args", args)
		cmd, err := tryLaunchWithCommand(l.command, args)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrPlayerNotFound, l.command, err)
		}
		return &Process{cmd: cmd, Player: playerName(l.command), Socket: socket}, nil
	}

	// Tier 2: Try candidate chain
	return l.detectAndLaunch(path, socket, startOffset)
}

// DefaultSocketPath returns a per-process IPC socket path in the temp dir
func DefaultSocketPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("scrub-%d.sock", os.Getpid()))
}
