package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avashisht/homeplan-core/internal/controller"
	"github.com/avashisht/homeplan-core/internal/device"
	"github.com/avashisht/homeplan-core/internal/infrastructure/config"
	"github.com/avashisht/homeplan-core/internal/infrastructure/logging"
	"github.com/avashisht/homeplan-core/internal/layout"
	"github.com/avashisht/homeplan-core/internal/tinxy"
)

func newTestLogger() *logging.Logger {
	return logging.New(config.LoggingConfig{
		Level:  "error",
		Format: "text",
		Output: "stderr",
	}, "test")
}

func newMock() *controller.Mock {
	return controller.NewMock(newTestLogger())
}

// memoryLayouts is an in-memory layout.Repository for handler tests.
type memoryLayouts struct {
	saved map[device.Channel]device.Position
}

func newMemoryLayouts() *memoryLayouts {
	return &memoryLayouts{saved: make(map[device.Channel]device.Position)}
}

func (m *memoryLayouts) Save(_ context.Context, ch device.Channel, pos device.Position) error {
	m.saved[ch] = pos
	return nil
}

func (m *memoryLayouts) Get(_ context.Context, ch device.Channel) (device.Position, error) {
	pos, ok := m.saved[ch]
	if !ok {
		return device.Position{}, layout.ErrNotFound
	}
	return pos, nil
}

func (m *memoryLayouts) List(_ context.Context) ([]layout.Entry, error) {
	entries := make([]layout.Entry, 0, len(m.saved))
	for ch, pos := range m.saved {
		entries = append(entries, layout.Entry{Channel: ch, Position: pos})
	}
	return entries, nil
}

func (m *memoryLayouts) Delete(_ context.Context, ch device.Channel) error {
	delete(m.saved, ch)
	return nil
}

// failingBackend returns a fixed error from every operation.
type failingBackend struct {
	err error
}

func (b *failingBackend) GetStatus(context.Context, string, int) (device.Status, error) {
	return device.StatusUnknown, b.err
}

func (b *failingBackend) SetState(context.Context, string, int, device.State) error {
	return b.err
}

func (b *failingBackend) Toggle(context.Context, string, int) error {
	return b.err
}

func testCatalog(t *testing.T) *device.Catalog {
	t.Helper()

	catalog := device.NewCatalog()
	devices := []device.Device{
		{
			Name: "Living Room Fan", DeviceID: "dev-1", SwitchNumber: 1,
			Type: device.TypeFan, Room: device.RoomLiving,
			Position: device.Position{X: 0.6, Y: 0.6},
		},
		{
			Name: "Kitchen Light", DeviceID: "dev-1", SwitchNumber: 2,
			Type: device.TypeLight, Room: device.RoomKitchen,
			Position: device.Position{X: 0.3, Y: 0.4},
		},
	}
	for i := range devices {
		devices[i].DeriveCapabilities()
		if err := catalog.Add(devices[i]); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
	return catalog
}

// newTestServer builds a server over the given backend with an in-memory
// layout store, returning the router ready for httptest.
func newTestServer(t *testing.T, backend controller.Backend) (http.Handler, *device.Catalog, *memoryLayouts) {
	t.Helper()

	logger := newTestLogger()
	catalog := testCatalog(t)
	layouts := newMemoryLayouts()

	srv, err := New(Deps{
		Logger:     logger,
		Catalog:    catalog,
		Controller: controller.New(backend, logger),
		Layouts:    layouts,
		Version:    "test",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return srv.buildRouter(), catalog, layouts
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestNew_RequiredDeps(t *testing.T) {
	logger := newTestLogger()
	catalog := device.NewCatalog()
	ctrl := controller.New(newMock(), logger)

	tests := []struct {
		name string
		deps Deps
	}{
		{"missing logger", Deps{Catalog: catalog, Controller: ctrl}},
		{"missing catalog", Deps{Logger: logger, Controller: ctrl}},
		{"missing controller", Deps{Logger: logger, Catalog: catalog}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.deps); err == nil {
				t.Error("New() should fail with missing dependency")
			}
		})
	}
}

func TestHandleHealth(t *testing.T) {
	router, _, _ := newTestServer(t, newMock())

	rec := doRequest(t, router, http.MethodGet, "/api/v1/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
	if body["version"] != "test" {
		t.Errorf("version field = %v, want test", body["version"])
	}
}

func TestHandleListDevices(t *testing.T) {
	router, _, _ := newTestServer(t, newMock())

	rec := doRequest(t, router, http.MethodGet, "/api/v1/devices", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Devices []device.Device `json:"devices"`
		Count   int             `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Count != 2 {
		t.Errorf("count = %d, want 2", body.Count)
	}
}

func TestHandleListDevices_RoomFilter(t *testing.T) {
	router, _, _ := newTestServer(t, newMock())

	rec := doRequest(t, router, http.MethodGet, "/api/v1/devices?room=kitchen", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Devices []device.Device `json:"devices"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(body.Devices) != 1 || body.Devices[0].Name != "Kitchen Light" {
		t.Errorf("devices = %+v, want only Kitchen Light", body.Devices)
	}
}

func TestHandleGetDevice(t *testing.T) {
	router, _, _ := newTestServer(t, newMock())

	rec := doRequest(t, router, http.MethodGet, "/api/v1/devices/dev-1/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var dev device.Device
	if err := json.Unmarshal(rec.Body.Bytes(), &dev); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if dev.Name != "Living Room Fan" {
		t.Errorf("name = %q, want Living Room Fan", dev.Name)
	}
}

func TestHandleGetDevice_NotFound(t *testing.T) {
	router, _, _ := newTestServer(t, newMock())

	rec := doRequest(t, router, http.MethodGet, "/api/v1/devices/nope/1", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleGetDevice_BadSwitch(t *testing.T) {
	router, _, _ := newTestServer(t, newMock())

	for _, path := range []string{
		"/api/v1/devices/dev-1/zero",
		"/api/v1/devices/dev-1/0",
		"/api/v1/devices/dev-1/-3",
	} {
		rec := doRequest(t, router, http.MethodGet, path, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", path, rec.Code)
		}
	}
}

func TestHandleGetChannelState_UnseenIsOff(t *testing.T) {
	router, _, _ := newTestServer(t, newMock())

	rec := doRequest(t, router, http.MethodGet, "/api/v1/devices/dev-1/1/state", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body["status"] != "off" {
		t.Errorf("status = %v, want off", body["status"])
	}
}

func TestHandleGetChannelState_FailedReadIsUnknown(t *testing.T) {
	router, _, _ := newTestServer(t, &failingBackend{err: tinxy.ErrTimeout})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/devices/dev-1/1/state", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body["status"] != "unknown" {
		t.Errorf("status = %v, want unknown", body["status"])
	}
}

func TestHandleSetChannelState(t *testing.T) {
	mock := newMock()
	router, _, _ := newTestServer(t, mock)

	rec := doRequest(t, router, http.MethodPut, "/api/v1/devices/dev-1/1/state",
		stateRequest{State: "on"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	status, err := mock.GetStatus(context.Background(), "dev-1", 1)
	if err != nil {
		t.Fatalf("GetStatus() error = %v", err)
	}
	if status != device.StatusOn {
		t.Errorf("backend status = %v, want on", status)
	}
}

func TestHandleSetChannelState_InvalidState(t *testing.T) {
	router, _, _ := newTestServer(t, newMock())

	rec := doRequest(t, router, http.MethodPut, "/api/v1/devices/dev-1/1/state",
		stateRequest{State: "warp"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleSetChannelState_UpstreamFailure(t *testing.T) {
	backendErr := fmt.Errorf("%w: connect refused", tinxy.ErrConnectionFailed)
	router, _, _ := newTestServer(t, &failingBackend{err: backendErr})

	rec := doRequest(t, router, http.MethodPut, "/api/v1/devices/dev-1/1/state",
		stateRequest{State: "on"})
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestHandleSetChannelState_HTTPErrorMapsToBadGateway(t *testing.T) {
	backendErr := fmt.Errorf("setting state: %w",
		&tinxy.HTTPError{StatusCode: 500, Body: "server error"})
	router, _, _ := newTestServer(t, &failingBackend{err: backendErr})

	rec := doRequest(t, router, http.MethodPut, "/api/v1/devices/dev-1/1/state",
		stateRequest{State: "on"})
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestHandleToggle(t *testing.T) {
	mock := newMock()
	router, _, _ := newTestServer(t, mock)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/devices/dev-1/1/toggle", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	status, _ := mock.GetStatus(context.Background(), "dev-1", 1)
	if status != device.StatusOn {
		t.Errorf("backend status after toggle = %v, want on", status)
	}
}

func TestHandleToggle_UndeterminedStateConflicts(t *testing.T) {
	backendErr := fmt.Errorf("%w: %w", tinxy.ErrStateUndetermined, tinxy.ErrTimeout)
	router, _, _ := newTestServer(t, &failingBackend{err: backendErr})

	rec := doRequest(t, router, http.MethodPost, "/api/v1/devices/dev-1/1/toggle", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestHandleSetPosition(t *testing.T) {
	router, catalog, layouts := newTestServer(t, newMock())

	rec := doRequest(t, router, http.MethodPut, "/api/v1/devices/dev-1/2/position",
		positionRequest{X: 0.45, Y: 0.9})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	ch := device.Channel{DeviceID: "dev-1", SwitchNumber: 2}
	if pos, ok := layouts.saved[ch]; !ok || pos.X != 0.45 || pos.Y != 0.9 {
		t.Errorf("saved position = %+v (found %t), want {0.45 0.9}", layouts.saved[ch], ok)
	}

	dev, err := catalog.Get(ch)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if dev.Position.X != 0.45 || dev.Position.Y != 0.9 {
		t.Errorf("catalog position = %+v, want {0.45 0.9}", dev.Position)
	}
}

func TestHandleSetPosition_OutOfRange(t *testing.T) {
	router, _, _ := newTestServer(t, newMock())

	rec := doRequest(t, router, http.MethodPut, "/api/v1/devices/dev-1/1/position",
		positionRequest{X: 1.2, Y: 0.5})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleGetLayout(t *testing.T) {
	router, _, layouts := newTestServer(t, newMock())

	ch := device.Channel{DeviceID: "dev-1", SwitchNumber: 1}
	if err := layouts.Save(context.Background(), ch, device.Position{X: 0.1, Y: 0.2}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	rec := doRequest(t, router, http.MethodGet, "/api/v1/layout", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Positions []layout.Entry `json:"positions"`
		Count     int            `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Count != 1 {
		t.Errorf("count = %d, want 1", body.Count)
	}
}

func TestLayoutEndpoints_WithoutRepository(t *testing.T) {
	logger := newTestLogger()
	srv, err := New(Deps{
		Logger:     logger,
		Catalog:    testCatalog(t),
		Controller: controller.New(newMock(), logger),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	router := srv.buildRouter()

	rec := doRequest(t, router, http.MethodGet, "/api/v1/layout", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("GET /layout status = %d, want 503", rec.Code)
	}

	rec = doRequest(t, router, http.MethodPut, "/api/v1/devices/dev-1/1/position",
		positionRequest{X: 0.5, Y: 0.5})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("PUT /position status = %d, want 503", rec.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	router, _, _ := newTestServer(t, newMock())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header should be set")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "client-supplied" {
		t.Errorf("X-Request-ID = %q, want client-supplied", got)
	}
}

func TestErrorResponseShape(t *testing.T) {
	router, _, _ := newTestServer(t, newMock())

	rec := doRequest(t, router, http.MethodGet, "/api/v1/devices/nope/1", nil)

	var apiErr Error
	if err := json.Unmarshal(rec.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("unmarshal error response: %v", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Code != ErrCodeNotFound {
		t.Errorf("error = %+v, want status 404 code not_found", apiErr)
	}
	if apiErr.Message == "" {
		t.Error("error message should not be empty")
	}
}
