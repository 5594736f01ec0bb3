// InvoiceMe Organizer - Invoice intake and Drive folder organization
// Copyright 2026 InvoiceMe
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestExtractDriveFolderID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"https://drive.google.com/drive/folders/1AbC_d-9xYz?usp=sharing", "1AbC_d-9xYz"},
		{"https://drive.google.com/drive/u/0/folders/1AbC_d-9xYz", "1AbC_d-9xYz"},
		{"1AbC_d-9xYz", "1AbC_d-9xYz"},
		{"  1AbC_d-9xYz  ", "1AbC_d-9xYz"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := extractDriveFolderID(tt.in); got != tt.want {
			t.Errorf("extractDriveFolderID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func saveFolders(h *Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/drive/save-folders", strings.NewReader(body))
	h.SaveFolders(w, withSession(r, testSession))
	return w
}

func TestSaveFolders_Success(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addUser(userWithFolders())
	h, _ := newTestHandler(t, store, &fakeWorker{})

	w := saveFolders(h, `{
		"rawFolderId": "https://drive.google.com/drive/folders/raw123?usp=sharing",
		"docsFolderId": "docs456"
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	if len(store.folderCalls) != 1 {
		t.Fatalf("folder updates = %d, want 1", len(store.folderCalls))
	}
	call := store.folderCalls[0]
	if call.userID != "u-1" {
		t.Errorf("updated user = %q, want session user u-1", call.userID)
	}
	if call.rawID != "raw123" || call.docsID != "docs456" {
		t.Errorf("stored ids = %q/%q, want raw123/docs456", call.rawID, call.docsID)
	}
}

func TestSaveFolders_IgnoresBodyUserID(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addUser(userWithFolders())
	h, _ := newTestHandler(t, store, &fakeWorker{})

	w := saveFolders(h, `{"userId":"u-other","rawFolderId":"raw1","docsFolderId":"docs1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if store.folderCalls[0].userID != "u-1" {
		t.Errorf("updated user = %q, want u-1", store.folderCalls[0].userID)
	}
}

func TestSaveFolders_MissingFields(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addUser(userWithFolders())
	h, _ := newTestHandler(t, store, &fakeWorker{})

	bodies := []string{
		``,
		`{}`,
		`{"rawFolderId":"raw1"}`,
		`{"docsFolderId":"docs1"}`,
		`{"rawFolderId":"   ","docsFolderId":"docs1"}`,
	}
	for _, body := range bodies {
		w := saveFolders(h, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
	}
	if len(store.folderCalls) != 0 {
		t.Errorf("folder updates = %d, want 0", len(store.folderCalls))
	}
}
