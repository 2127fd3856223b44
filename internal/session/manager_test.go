package session

import (
	"testing"
	"time"

	"xiangqi/internal/controller"
	"xiangqi/internal/enginebridge/enginetest"
)

func TestNewGameIsRetrievableByID(t *testing.T) {
	m := NewManager(enginetest.New(), 0)
	s, err := m.New(controller.Options{})
	if err != nil {
		t.Fatal(err)
	}
	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got != s {
		t.Fatalf("Get returned a different session than New created")
	}
	if m.Len() != 1 {
		t.Fatalf("expected exactly one hosted session, got %d", m.Len())
	}
}

func TestGetUnknownIDFails(t *testing.T) {
	m := NewManager(enginetest.New(), 0)
	if _, err := m.Get("does-not-exist"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTouchUpdatesTimestamp(t *testing.T) {
	m := NewManager(enginetest.New(), 0)
	s, err := m.New(controller.Options{})
	if err != nil {
		t.Fatal(err)
	}
	before := s.UpdatedAt
	time.Sleep(time.Millisecond)
	m.Touch(s.ID)
	if !s.UpdatedAt.After(before) {
		t.Fatalf("Touch did not advance UpdatedAt")
	}
}

func TestRemoveDropsSession(t *testing.T) {
	m := NewManager(enginetest.New(), 0)
	s, err := m.New(controller.Options{})
	if err != nil {
		t.Fatal(err)
	}
	m.Remove(s.ID)
	if _, err := m.Get(s.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after Remove, got %v", err)
	}
}
