package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/campus-market-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/campus-market-backend/internal/interface/http/middleware"
	"github.com/ignatzorin/campus-market-backend/internal/usecase/reservation"
	"github.com/ignatzorin/campus-market-backend/internal/ws"
)

func newSeededStore(t *testing.T) *persistence.ReservationStore {
	t.Helper()
	store := persistence.NewReservationStore()
	_, err := reservation.NewCreateReservationUseCase(store, nil).Execute(context.Background(), reservation.CreateReservationInput{
		ListingID:   "L1",
		BuyerID:     "B1",
		SellerID:    "S1",
		Amount:      4500,
		MeetupTime:  "Today 2:00 PM",
		MeetupPlace: "Library Entrance",
	})
	require.NoError(t, err)
	return store
}

func TestWSHandler_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := ws.NewHub(context.Background())
	r := gin.New()
	r.GET("/ws", NewWSHandler(hub, nil).Handle)

	req, _ := http.NewRequest("GET", "/ws", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWSHandler_ReceivesReservationEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := ws.NewHub(ctx)
	go hub.Run()

	store := persistence.NewReservationStore()
	create := reservation.NewCreateReservationUseCase(store, hub)

	r := gin.New()
	r.Use(middleware.ActorMiddleware())
	r.GET("/ws", NewWSHandler(hub, []string{"http://allowed.test"}).Handle)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?user_id=S1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	assert.Eventually(t, func() bool { return hub.ConnectedClients("S1") == 1 }, time.Second, 10*time.Millisecond)

	_, err = create.Execute(ctx, reservation.CreateReservationInput{
		ListingID:   "L1",
		BuyerID:     "B1",
		SellerID:    "S1",
		Amount:      4500,
		MeetupTime:  "Today 2:00 PM",
		MeetupPlace: "Library Entrance",
	})
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg struct {
		Type string `json:"type"`
		Data struct {
			SellerID string `json:"seller_id"`
			Total    int64  `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "reservation.created", msg.Type)
	assert.Equal(t, "S1", msg.Data.SellerID)
	assert.Equal(t, int64(4751), msg.Data.Total)
}

func TestWSHandler_RejectsForeignOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := ws.NewHub(ctx)
	go hub.Run()

	r := gin.New()
	r.GET("/ws", NewWSHandler(hub, []string{"http://allowed.test"}).Handle)
	srv := httptest.NewServer(r)
	defer srv.Close()

	header := http.Header{}
	header.Set("Origin", "http://evil.test")
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?user_id=S1"
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

