package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostMessage_NonMemberForbidden(t *testing.T) {
	app, _ := setupTestServer(t)
	ada := registerUser(t, app, "Ada", "Lovelace", "ada")
	registerUser(t, app, "Alan", "Turing", "alan")
	groupID := createGroupWith(t, app, "Trip", ada, nil)

	status, body := doJSON(t, app, http.MethodPost, "/api/messages",
		map[string]any{"group_id": groupID, "sender": "alan", "message": "let me in"})
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "You are not a member of this group", body["error"])
}

func TestPostMessage_MissingFields(t *testing.T) {
	app, _ := setupTestServer(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/messages",
		map[string]any{"group_id": 1, "sender": "ada"})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestGetMessages_OrderedOldestFirst(t *testing.T) {
	app, _ := setupTestServer(t)
	ada := registerUser(t, app, "Ada", "Lovelace", "ada")
	groupID := createGroupWith(t, app, "Trip", ada, nil)

	for i := 0; i < 5; i++ {
		status, _ := doJSON(t, app, http.MethodPost, "/api/messages", map[string]any{
			"group_id": groupID,
			"sender":   "ada",
			"message":  fmt.Sprintf("message %d", i),
		})
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := doJSON(t, app, http.MethodGet,
		"/api/messages/"+itoa(groupID)+"?user_id="+itoa(ada), nil)
	require.Equal(t, http.StatusOK, status)

	messages := body["messages"].([]any)
	require.Len(t, messages, 5)
	// Insertion order survives the round trip: timestamps tie within a second,
	// so the id tiebreak decides.
	for i, raw := range messages {
		assert.Equal(t, fmt.Sprintf("message %d", i), raw.(map[string]any)["message"])
	}
}

func TestGetMessages_RequiresUserID(t *testing.T) {
	app, _ := setupTestServer(t)
	ada := registerUser(t, app, "Ada", "Lovelace", "ada")
	groupID := createGroupWith(t, app, "Trip", ada, nil)

	status, _ := doJSON(t, app, http.MethodGet, "/api/messages/"+itoa(groupID), nil)
	require.Equal(t, http.StatusBadRequest, status)
}
