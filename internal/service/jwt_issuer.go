package service

import (
	"time"

	"github.com/wdotgonzales/trackjob-backend/internal/entity"
	"github.com/wdotgonzales/trackjob-backend/internal/utils"

	"github.com/google/uuid"
)

// SessionTokenIssuer issues the bearer token handed out at login. The token is
// only as good as the session it names.
type SessionTokenIssuer struct {
	Manager *utils.JWTManager
}

func (i SessionTokenIssuer) IssueAccessToken(user entity.User, sessionID uuid.UUID) (string, time.Duration, error) {
	if i.Manager == nil || user.ID == uuid.Nil || sessionID == uuid.Nil {
		return "", 0, ErrInvalidToken
	}
	return i.Manager.IssueAccessToken(user.ID.String(), sessionID.String())
}
