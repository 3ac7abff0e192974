package events

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/unidirectory-go/respond"
)

func TestPublishFansOutAndDropsForFullClients(t *testing.T) {
	b := NewBroadcaster()
	idA, a := b.Subscribe()
	_, slow := b.Subscribe()
	require.Equal(t, 2, b.Clients())

	for i := 0; i < clientBuffer; i++ {
		assert.Equal(t, 2, b.Publish(Event{Type: "tick"}))
		<-a
	}
	// slow never reads, so its buffer is now full.
	assert.Equal(t, 1, b.Publish(Event{Type: "tick"}))
	assert.Len(t, slow, clientBuffer)

	b.Unsubscribe(idA)
	b.Unsubscribe(idA)
	e, open := <-a
	require.True(t, open, "buffered event survives unsubscribe")
	assert.Equal(t, "tick", e.Type)
	_, open = <-a
	assert.False(t, open)
	assert.Equal(t, 1, b.Clients())
}

func TestStreamWritesEvents(t *testing.T) {
	b := NewBroadcaster()
	srv := httptest.NewServer(Stream(b, respond.New(false)))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, "text/event-stream", res.Header.Get("Content-Type"))

	reader := bufio.NewReader(res.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, ": connected\n", line)

	require.Eventually(t, func() bool { return b.Clients() == 1 }, time.Second, 10*time.Millisecond)
	b.Publish(Event{Type: "favorite.created", Data: map[string]int{"id": 5}})

	var got []string
	for len(got) < 2 {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if l := strings.TrimSpace(line); l != "" {
			got = append(got, l)
		}
	}
	assert.Equal(t, []string{"event: favorite.created", `data: {"id":5}`}, got)

	cancel()
	require.Eventually(t, func() bool { return b.Clients() == 0 }, time.Second, 10*time.Millisecond)
}
