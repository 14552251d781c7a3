package provisioning

import (
	"context"

	"advisorly/models"
)

// VideoRoomProvisioner creates a video room for an active session.
type VideoRoomProvisioner interface {
	ProvisionVideoRoom(ctx context.Context, sessionID string) (*models.ConnectionInfo, error)
}

// PhoneBridgeProvisioner creates a dial-in phone bridge for an active session.
type PhoneBridgeProvisioner interface {
	ProvisionPhoneBridge(ctx context.Context, sessionID string) (*models.ConnectionInfo, error)
}

// ChatRoomProvisioner creates a chat room for an active session.
type ChatRoomProvisioner interface {
	ProvisionChatRoom(ctx context.Context, sessionID string) (*models.ConnectionInfo, error)
}
