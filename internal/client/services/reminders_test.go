package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/medreminder/internal/client/client"
	"github.com/dmitrijs2005/medreminder/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminders_GetByID(t *testing.T) {
	e := newEnv(t)
	e.api.reply("GET /reminders/42", http.StatusOK, `{"Id":42,"Title":"Aspirin","IsCompleted":false}`)
	e.signIn(t, "T1")

	r, err := NewReminderService(e.exec).Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), r.ID)
	assert.Equal(t, "Aspirin", r.Title)

	c := e.api.last()
	assert.Equal(t, http.MethodGet, c.Method)
	assert.Equal(t, "/reminders/42", c.Path)
	assert.Equal(t, "Bearer T1", c.Auth)
}

func TestReminders_Complete(t *testing.T) {
	e := newEnv(t)
	e.api.reply("PATCH /reminders/42/complete", http.StatusOK, `{"id":42,"isCompleted":true,"completedAt":"2025-03-01T10:00:00Z"}`)
	e.signIn(t, "T1")

	r, err := NewReminderService(e.exec).Complete(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, r.IsCompleted)
	require.NotNil(t, r.CompletedAt)

	c := e.api.last()
	assert.Equal(t, http.MethodPatch, c.Method)
	assert.Equal(t, "/reminders/42/complete", c.Path)
	assert.Empty(t, c.Body)
}

func TestReminders_List(t *testing.T) {
	e := newEnv(t)
	e.api.reply("GET /reminders", http.StatusOK, `[{"id":1,"title":"a"},{"Id":2,"Title":"b","IsCompleted":true}]`)
	e.signIn(t, "T1")

	list, err := NewReminderService(e.exec).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Title)
	assert.Equal(t, "b", list[1].Title)
	assert.True(t, list[1].IsCompleted)
}

func TestReminders_ListEmptyBody(t *testing.T) {
	e := newEnv(t)
	e.api.reply("GET /reminders", http.StatusOK, ``)
	e.signIn(t, "T1")

	list, err := NewReminderService(e.exec).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestReminders_CreateUpdateDelete(t *testing.T) {
	e := newEnv(t)
	e.api.reply("POST /reminders", http.StatusCreated, `{"id":5,"title":"Vitamin D"}`)
	e.api.reply("PUT /reminders/5", http.StatusOK, `{"id":5,"title":"Vitamin D3"}`)
	e.api.reply("DELETE /reminders/5", http.StatusNoContent, ``)
	e.signIn(t, "T1")
	ctx := context.Background()
	svc := NewReminderService(e.exec)

	in := models.ReminderInput{
		Title:        "Vitamin D",
		ReminderTime: models.NewTimestamp(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)),
	}
	r, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(5), r.ID)
	assert.JSONEq(t, `{"title":"Vitamin D","description":"","reminderTime":"2025-03-01T09:00:00Z","isCompleted":false,"completedAt":null}`,
		e.api.last().Body)

	in.Title = "Vitamin D3"
	r, err = svc.Update(ctx, 5, in)
	require.NoError(t, err)
	assert.Equal(t, "Vitamin D3", r.Title)
	assert.Equal(t, http.MethodPut, e.api.last().Method)

	require.NoError(t, svc.Delete(ctx, 5))
	assert.Equal(t, http.MethodDelete, e.api.last().Method)
	assert.Equal(t, "/reminders/5", e.api.last().Path)
}

func TestReminders_NotFound(t *testing.T) {
	e := newEnv(t)
	e.api.reply("GET /reminders/9", http.StatusNotFound, `{"message":"reminder not found"}`)
	e.signIn(t, "T1")

	_, err := NewReminderService(e.exec).Get(context.Background(), 9)
	require.ErrorIs(t, err, client.ErrNotFound)
	assert.EqualError(t, err, "get reminder 9: reminder not found")

	var herr *client.HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, http.StatusNotFound, herr.Status)
}

func TestReminders_RetriedAfterRefresh(t *testing.T) {
	e := newEnv(t)
	e.api.mux.HandleFunc("GET /reminders/42", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer T2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":42,"title":"Aspirin"}`))
	})
	e.api.reply("POST /auth/refresh", http.StatusOK, `{"accessToken":"T2","refreshToken":"R2"}`)
	e.signIn(t, "T1")
	ctx := context.Background()

	r, err := NewReminderService(e.exec).Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Aspirin", r.Title)

	calls := e.api.recorded()
	require.Len(t, calls, 3)
	assert.Equal(t, "Bearer T1", calls[0].Auth)
	assert.Equal(t, "/auth/refresh", calls[1].Path)
	assert.JSONEq(t, `{"refreshToken":"R1"}`, calls[1].Body)
	assert.Equal(t, "Bearer T2", calls[2].Auth)

	rt, err := e.store.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "R2", rt)
}

func TestReminders_RefreshRejectedLogsOut(t *testing.T) {
	e := newEnv(t)
	e.api.reply("GET /reminders", http.StatusUnauthorized, `{"error":"token expired"}`)
	e.api.reply("POST /auth/refresh", http.StatusUnauthorized, `{"error":"refresh token expired"}`)
	e.signIn(t, "T1")
	ctx := context.Background()

	_, err := NewReminderService(e.exec).List(ctx)
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Contains(t, err.Error(), "token expired")

	ok, err := e.store.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
