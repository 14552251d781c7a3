package provisioning

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"encoding/json"
	"fmt"
	"time"

	"advisorly/errs"
	"advisorly/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// roomTTL bounds how long an unclosed room stays registered.
const roomTTL = 6 * time.Hour

// RoomProvisioner implements all three provisioner interfaces. Rooms and
// bridges are registered in Redis so the media edge can authorize joins by
// room id and token.
type RoomProvisioner struct {
	Rooms  *redis.Client
	Logger *zap.Logger
}

func NewRoomProvisioner(rooms *redis.Client, logger *zap.Logger) *RoomProvisioner {
	return &RoomProvisioner{Rooms: rooms, Logger: logger}
}

type roomRecord struct {
	SessionID   string    `json:"sessionId"`
	Channel     string    `json:"channel"`
	JoinToken   string    `json:"joinToken"`
	ExpertToken string    `json:"expertToken"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProvisionVideoRoom registers a video room and returns its credentials.
func (p *RoomProvisioner) ProvisionVideoRoom(ctx context.Context, sessionID string) (*models.ConnectionInfo, error) {
	return p.provision(ctx, sessionID, models.SessionTypeVideo)
}

// ProvisionPhoneBridge registers a phone bridge with a dial-in number.
func (p *RoomProvisioner) ProvisionPhoneBridge(ctx context.Context, sessionID string) (*models.ConnectionInfo, error) {
	conn, err := p.provision(ctx, sessionID, models.SessionTypePhone)
	if err != nil {
		return nil, err
	}
	conn.DialNumber = bridgeDialNumber(conn.RoomID)
	return conn, nil
}

// ProvisionChatRoom registers a chat room and returns its credentials.
func (p *RoomProvisioner) ProvisionChatRoom(ctx context.Context, sessionID string) (*models.ConnectionInfo, error) {
	return p.provision(ctx, sessionID, models.SessionTypeChat)
}

func (p *RoomProvisioner) provision(ctx context.Context, sessionID, channel string) (*models.ConnectionInfo, error) {
	joinToken, err := generateJoinToken(24)
	if err != nil {
		return nil, &errs.ExternalServiceError{Service: "provisioning", Err: err}
	}
	expertToken, err := generateJoinToken(24)
	if err != nil {
		return nil, &errs.ExternalServiceError{Service: "provisioning", Err: err}
	}

	record := roomRecord{
		SessionID:   sessionID,
		Channel:     channel,
		JoinToken:   joinToken,
		ExpertToken: expertToken,
		CreatedAt:   time.Now(),
	}
	roomID := uuid.New().String()

	b, err := json.Marshal(record)
	if err != nil {
		return nil, &errs.ExternalServiceError{Service: "provisioning", Err: err}
	}
	if err := p.Rooms.Set(ctx, roomKey(roomID), b, roomTTL).Err(); err != nil {
		return nil, &errs.ExternalServiceError{Service: "provisioning", Err: err}
	}

	p.Logger.Info("room provisioned",
		zap.String("sessionId", sessionID),
		zap.String("channel", channel),
		zap.String("roomId", roomID))

	return &models.ConnectionInfo{
		Channel:     channel,
		RoomID:      roomID,
		JoinToken:   joinToken,
		ExpertToken: expertToken,
	}, nil
}

// CloseRoom deregisters a room once its session ends.
func (p *RoomProvisioner) CloseRoom(ctx context.Context, roomID string) error {
	if err := p.Rooms.Del(ctx, roomKey(roomID)).Err(); err != nil {
		return &errs.ExternalServiceError{Service: "provisioning", Err: err}
	}
	return nil
}

func roomKey(roomID string) string {
	return "room:" + roomID
}

// generateJoinToken returns a base32 token of the given length from a
// secure random source.
func generateJoinToken(length int) (string, error) {
	numBytes := (length*5 + 7) / 8
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	token := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(token) > length {
		token = token[:length]
	}
	return token, nil
}

// bridgeDialNumber derives a stable dial-in extension from the room id.
func bridgeDialNumber(roomID string) string {
	var ext uint32
	for _, c := range roomID {
		ext = ext*31 + uint32(c)
	}
	return fmt.Sprintf("+1-555-0%03d ext %04d", ext%1000, ext%10000)
}
