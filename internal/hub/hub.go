package hub

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/hackhub/hackhub-api/internal/models"
)

type Event struct {
	Type      string      `json:"type"`
	ProjectID *uuid.UUID  `json:"project_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

type ChatMessageData struct {
	Message *models.Message `json:"message"`
}

type MessagePinnedData struct {
	MessageID uuid.UUID `json:"message_id"`
	IsPinned  bool      `json:"is_pinned"`
	PinnedBy  uuid.UUID `json:"pinned_by"`
}

type TaskEventData struct {
	Task    *models.Task `json:"task"`
	ActorID uuid.UUID    `json:"actor_id"`
}

type TaskDeletedData struct {
	TaskID  uuid.UUID `json:"task_id"`
	ActorID uuid.UUID `json:"actor_id"`
}

type SnippetEventData struct {
	Snippet *models.Snippet `json:"snippet"`
	ActorID uuid.UUID       `json:"actor_id"`
}

type DecisionEventData struct {
	Decision *models.Decision `json:"decision"`
	ActorID  uuid.UUID        `json:"actor_id"`
}

type MemberEventData struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role,omitempty"`
}

type OnlineUser struct {
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
}

type PresenceUpdateData struct {
	OnlineUsers []OnlineUser `json:"online_users"`
}

type Client struct {
	ID        string
	UserID    uuid.UUID
	UserName  string
	AvatarURL *string
	Projects  map[uuid.UUID]bool
	Send      chan []byte
}

// Hub fans project-scoped events out to connected websocket clients. A
// client only receives events for projects it has joined.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *ProjectMessage
	mu         sync.RWMutex
}

type ProjectMessage struct {
	ProjectID uuid.UUID
	Event     Event
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *ProjectMessage, 256),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				projects := make([]uuid.UUID, 0, len(client.Projects))
				for pID := range client.Projects {
					projects = append(projects, pID)
				}
				delete(h.clients, client.ID)
				close(client.Send)
				h.mu.Unlock()

				for _, pID := range projects {
					h.broadcastPresence(pID)
				}
			} else {
				h.mu.Unlock()
			}

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Event)
			for _, client := range h.clients {
				if client.Projects[msg.ProjectID] {
					select {
					case client.Send <- data:
					default:
						// Client buffer full, skip
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) JoinProject(clientID string, projectID uuid.UUID) {
	h.mu.Lock()
	if client, ok := h.clients[clientID]; ok {
		client.Projects[projectID] = true
	}
	h.mu.Unlock()

	h.broadcastPresence(projectID)
}

func (h *Hub) LeaveProject(clientID string, projectID uuid.UUID) {
	h.mu.Lock()
	if client, ok := h.clients[clientID]; ok {
		delete(client.Projects, projectID)
	}
	h.mu.Unlock()

	h.broadcastPresence(projectID)
}

func (h *Hub) BroadcastChatMessage(projectID uuid.UUID, message *models.Message) {
	h.broadcast <- &ProjectMessage{
		ProjectID: projectID,
		Event: Event{
			Type:      "chat_message",
			ProjectID: &projectID,
			Data:      ChatMessageData{Message: message},
		},
	}
}

func (h *Hub) BroadcastMessagePinned(projectID, messageID, pinnedBy uuid.UUID, pinned bool) {
	h.broadcast <- &ProjectMessage{
		ProjectID: projectID,
		Event: Event{
			Type:      "message_pinned",
			ProjectID: &projectID,
			Data: MessagePinnedData{
				MessageID: messageID,
				IsPinned:  pinned,
				PinnedBy:  pinnedBy,
			},
		},
	}
}

func (h *Hub) BroadcastTaskCreated(projectID, actorID uuid.UUID, task *models.Task) {
	h.broadcast <- &ProjectMessage{
		ProjectID: projectID,
		Event: Event{
			Type:      "task_created",
			ProjectID: &projectID,
			Data:      TaskEventData{Task: task, ActorID: actorID},
		},
	}
}

func (h *Hub) BroadcastTaskUpdated(projectID, actorID uuid.UUID, task *models.Task) {
	h.broadcast <- &ProjectMessage{
		ProjectID: projectID,
		Event: Event{
			Type:      "task_updated",
			ProjectID: &projectID,
			Data:      TaskEventData{Task: task, ActorID: actorID},
		},
	}
}

func (h *Hub) BroadcastTaskDeleted(projectID, taskID, actorID uuid.UUID) {
	h.broadcast <- &ProjectMessage{
		ProjectID: projectID,
		Event: Event{
			Type:      "task_deleted",
			ProjectID: &projectID,
			Data:      TaskDeletedData{TaskID: taskID, ActorID: actorID},
		},
	}
}

func (h *Hub) BroadcastSnippetCreated(projectID, actorID uuid.UUID, snippet *models.Snippet) {
	h.broadcast <- &ProjectMessage{
		ProjectID: projectID,
		Event: Event{
			Type:      "snippet_created",
			ProjectID: &projectID,
			Data:      SnippetEventData{Snippet: snippet, ActorID: actorID},
		},
	}
}

func (h *Hub) BroadcastDecisionCreated(projectID, actorID uuid.UUID, decision *models.Decision) {
	h.broadcast <- &ProjectMessage{
		ProjectID: projectID,
		Event: Event{
			Type:      "decision_created",
			ProjectID: &projectID,
			Data:      DecisionEventData{Decision: decision, ActorID: actorID},
		},
	}
}

func (h *Hub) BroadcastMemberInvited(projectID, userID uuid.UUID, role string) {
	h.broadcast <- &ProjectMessage{
		ProjectID: projectID,
		Event: Event{
			Type:      "member_invited",
			ProjectID: &projectID,
			Data:      MemberEventData{UserID: userID, Role: role},
		},
	}
}

func (h *Hub) BroadcastMemberRoleChanged(projectID, userID uuid.UUID, role string) {
	h.broadcast <- &ProjectMessage{
		ProjectID: projectID,
		Event: Event{
			Type:      "member_role_changed",
			ProjectID: &projectID,
			Data:      MemberEventData{UserID: userID, Role: role},
		},
	}
}

func (h *Hub) BroadcastMemberRemoved(projectID, userID uuid.UUID) {
	h.broadcast <- &ProjectMessage{
		ProjectID: projectID,
		Event: Event{
			Type:      "member_removed",
			ProjectID: &projectID,
			Data:      MemberEventData{UserID: userID},
		},
	}
}

// broadcastPresence computes the current online users for a project and broadcasts it.
func (h *Hub) broadcastPresence(projectID uuid.UUID) {
	h.mu.RLock()
	seen := make(map[uuid.UUID]bool)
	var onlineUsers []OnlineUser
	for _, client := range h.clients {
		if client.Projects[projectID] && !seen[client.UserID] {
			seen[client.UserID] = true
			onlineUsers = append(onlineUsers, OnlineUser{
				UserID:    client.UserID,
				UserName:  client.UserName,
				AvatarURL: client.AvatarURL,
			})
		}
	}
	h.mu.RUnlock()

	if onlineUsers == nil {
		onlineUsers = []OnlineUser{}
	}

	event := Event{
		Type:      "presence_update",
		ProjectID: &projectID,
		Data: PresenceUpdateData{
			OnlineUsers: onlineUsers,
		},
	}

	data, _ := json.Marshal(event)

	h.mu.RLock()
	for _, client := range h.clients {
		if client.Projects[projectID] {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
	h.mu.RUnlock()
}
