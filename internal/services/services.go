// package services wraps the grief-support backend routers in typed Go APIs
package services

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/solace-cli/solace/internal/client"
	"github.com/solace-cli/solace/internal/shared"
)

// Services bundles one service per backend feature area, all sharing a
// single resilient [client.Client].
type Services struct {
	API       *client.Client
	Auth      *AuthService
	Chat      *ChatService
	Journal   *JournalService
	Mood      *MoodService
	Support   *SupportService
	Reminders *ReminderService
	Resources *ResourceService
	Analytics *AnalyticsService
	Voice     *VoiceService
	Uploads   *UploadService
}

// New wires every feature service to api.
func New(api *client.Client, logger *log.Logger) *Services {
	if logger == nil {
		logger = shared.NewLogger(os.Stderr)
	}

	return &Services{
		API:       api,
		Auth:      &AuthService{api: api, logger: logger},
		Chat:      &ChatService{api: api},
		Journal:   &JournalService{api: api},
		Mood:      &MoodService{api: api},
		Support:   &SupportService{api: api},
		Reminders: &ReminderService{api: api},
		Resources: &ResourceService{api: api},
		Analytics: &AnalyticsService{api: api},
		Voice:     &VoiceService{api: api},
		Uploads:   &UploadService{api: api},
	}
}
