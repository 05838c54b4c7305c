package model_test

import (
	"testing"

	"github.com/appdotbuilder/tele-vid-downloader/internal/model"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    model.LinkStatus
		to      model.LinkStatus
		allowed bool
	}{
		{model.StatusPending, model.StatusProcessing, true},
		{model.StatusProcessing, model.StatusDownloaded, true},
		{model.StatusDownloaded, model.StatusUploaded, true},
		{model.StatusPending, model.StatusFailed, true},
		{model.StatusProcessing, model.StatusFailed, true},
		{model.StatusDownloaded, model.StatusFailed, true},
		{model.StatusPending, model.StatusDownloaded, false},
		{model.StatusPending, model.StatusUploaded, false},
		{model.StatusProcessing, model.StatusUploaded, false},
		{model.StatusUploaded, model.StatusFailed, false},
		{model.StatusUploaded, model.StatusPending, false},
		{model.StatusFailed, model.StatusPending, false},
		{model.StatusFailed, model.StatusProcessing, false},
		// Self-transitions are allowed so partial updates can restate the status
		{model.StatusPending, model.StatusPending, true},
		{model.StatusUploaded, model.StatusUploaded, true},
		{model.StatusFailed, model.StatusFailed, true},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.allowed {
			t.Errorf("CanTransition(%s -> %s) = %v, expected %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := map[model.LinkStatus]bool{
		model.StatusPending:    false,
		model.StatusProcessing: false,
		model.StatusDownloaded: false,
		model.StatusUploaded:   true,
		model.StatusFailed:     true,
	}
	for status, expected := range terminal {
		if got := status.IsTerminal(); got != expected {
			t.Errorf("IsTerminal(%s) = %v, expected %v", status, got, expected)
		}
	}
}
