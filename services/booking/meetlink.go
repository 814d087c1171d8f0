package booking

import (
	"context"
	"fmt"
	"strings"

	"mindhaven/config"
	"mindhaven/models"

	"github.com/google/uuid"
)

// DefaultMeetLinkProvider synthesizes a meeting room URL under the
// configured base. Swappable for a real conferencing API client.
type DefaultMeetLinkProvider struct{}

func (p *DefaultMeetLinkProvider) CreateMeetLink(ctx context.Context, booking *models.Booking) (string, error) {
	base := strings.TrimRight(config.AppConfig.MeetLinkBaseURL, "/")
	if base == "" {
		return "", fmt.Errorf("meet link base URL is not configured")
	}
	return fmt.Sprintf("%s/%s", base, uuid.New().String()), nil
}
