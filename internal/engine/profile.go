package engine

import (
	"strings"

	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/logger"
	"github.com/julianstephens/arise/internal/models"
)

func (e *Engine) Profile() models.Profile { return e.profile }

func (e *Engine) SetUsername(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyText
	}
	e.profile.Username = name
	e.write(constants.KeyUsername, name)
	return nil
}

// SetProfilePicture stores an image reference (a path or URL). An empty
// reference clears it.
func (e *Engine) SetProfilePicture(ref string) {
	ref = strings.TrimSpace(ref)
	e.profile.ProfilePicture = ref
	if ref == "" {
		if err := e.kv.Delete(constants.KeyProfilePicture); err != nil {
			logger.Warn("Failed to clear profile picture", "error", err)
		}
		return
	}
	e.write(constants.KeyProfilePicture, ref)
}

// NeedsAcceptance reports whether the player onboarding is still pending.
func (e *Engine) NeedsAcceptance() bool { return !e.profile.PlayerAccepted }

// Accept records the player's acceptance of the qualification.
func (e *Engine) Accept() {
	if e.profile.PlayerAccepted {
		return
	}
	e.profile.PlayerAccepted = true
	e.write(constants.KeyPlayerAccepted, "true")
}
