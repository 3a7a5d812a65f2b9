// Package audio plays the invitation soundtrack by driving an external
// player binary (mpv or ffplay). There is no in-process decoding; starting a
// track kills the previous player process first, so at most one source plays
// at any time. Volume changes restart the process at the new level.
package audio

import (
	"fmt"
	"os/exec"
	"sync"
	"syscall"

	"vowterm/internal/logging"
)

// DefaultVolume matches the guest view's initial music volume (0.0 to 1.0).
const DefaultVolume = 0.4

// Player is the control surface the guest view uses. Implementations must
// guarantee that Play replaces any current playback.
type Player interface {
	Play(track string, volume float64) error
	Stop() error
	Playing() bool
	Track() string
}

// ExecPlayer shells out to mpv or ffplay, whichever is on PATH.
type ExecPlayer struct {
	mu    sync.Mutex
	bin   string
	cmd   *exec.Cmd
	track string
}

// NewExecPlayer locates a player binary. Returns an error when neither mpv
// nor ffplay is installed; callers fall back to Nop.
func NewExecPlayer() (*ExecPlayer, error) {
	for _, candidate := range []string{"mpv", "ffplay"} {
		if path, err := exec.LookPath(candidate); err == nil {
			logging.Audio("using player binary %s", path)
			return &ExecPlayer{bin: path}, nil
		}
	}
	return nil, fmt.Errorf("no audio player found (need mpv or ffplay on PATH)")
}

// Play starts the track, replacing whatever is currently playing. The track
// may be a local file or an http(s) URL; both binaries stream either. Volume
// is 0.0 to 1.0 and is clamped.
func (p *ExecPlayer) Play(track string, volume float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	percent := int(volume * 100)

	var args []string
	switch {
	case isFFplay(p.bin):
		args = []string{"-nodisp", "-loglevel", "quiet", "-loop", "0", "-volume", fmt.Sprint(percent), track}
	default:
		args = []string{"--no-video", "--really-quiet", "--loop-file=inf", fmt.Sprintf("--volume=%d", percent), track}
	}

	cmd := exec.Command(p.bin, args...)
	// Own process group so Stop can kill the player and any children it forks.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		logging.AudioError("failed to start %s: %v", p.bin, err)
		return fmt.Errorf("start audio player: %w", err)
	}

	p.cmd = cmd
	p.track = track
	logging.Audio("playing %s at %d%%", track, percent)

	// Reap the process when it exits on its own.
	go func() { _ = cmd.Wait() }()

	return nil
}

// Stop kills the current player process, if any.
func (p *ExecPlayer) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	return nil
}

func (p *ExecPlayer) stopLocked() {
	if p.cmd == nil || p.cmd.Process == nil {
		p.cmd = nil
		p.track = ""
		return
	}
	// Negative pid signals the whole process group.
	_ = syscall.Kill(-p.cmd.Process.Pid, syscall.SIGTERM)
	logging.Audio("stopped %s", p.track)
	p.cmd = nil
	p.track = ""
}

// Playing reports whether a player process is running.
func (p *ExecPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cmd != nil
}

// Track returns the currently playing track, or "" when stopped.
func (p *ExecPlayer) Track() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.track
}

func isFFplay(bin string) bool {
	return len(bin) >= 6 && bin[len(bin)-6:] == "ffplay"
}

// Nop is the silent player used with --no-audio or when no binary exists.
// It tracks state so the UI still shows a coherent play/pause toggle.
type Nop struct {
	mu      sync.Mutex
	playing bool
	track   string
}

func (n *Nop) Play(track string, volume float64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.playing = true
	n.track = track
	return nil
}

func (n *Nop) Stop() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.playing = false
	n.track = ""
	return nil
}

func (n *Nop) Playing() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.playing
}

func (n *Nop) Track() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.track
}
