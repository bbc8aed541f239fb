package audio

import (
	"fmt"
	"os/exec"
	"sync"
)

// Cue plays the notification sound. Implementations must tolerate being
// stopped while idle.
type Cue interface {
	Play() error
	Stop()
}

// NopCue is used when no audio command is configured.
type NopCue struct{}

func (NopCue) Play() error { return nil }
func (NopCue) Stop()       {}

// ExecCue plays a sound by running an external player command
// (e.g. "paplay /usr/share/sounds/chime.wav"). Play is non-blocking; Stop
// kills a still-running player.
type ExecCue struct {
	command string
	args    []string

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewExecCue creates an ExecCue for the given player command.
func NewExecCue(command string, args ...string) *ExecCue {
	return &ExecCue{command: command, args: args}
}

// Play starts the player. A cue already playing is restarted.
func (c *ExecCue) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()

	cmd := exec.Command(c.command, c.args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start player: %w", err)
	}
	c.cmd = cmd

	go func() {
		_ = cmd.Wait()
		c.mu.Lock()
		if c.cmd == cmd {
			c.cmd = nil
		}
		c.mu.Unlock()
	}()

	return nil
}

// Stop kills the player if it is still running.
func (c *ExecCue) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *ExecCue) stopLocked() {
	if c.cmd != nil && c.cmd.Process != nil {
		_ = c.cmd.Process.Kill()
		c.cmd = nil
	}
}
